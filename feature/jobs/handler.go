package jobs

import (
	"errors"

	"ygo-pipelines/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for job runs.
type Handler struct {
	runner *Runner
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(runner *Runner, logger *zap.Logger) *Handler {
	return &Handler{runner: runner, logger: logger}
}

// RegisterRoutes registers the job routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Get("/runs", h.HandleListRuns)
	app.Get("/runs/:id", h.HandleGetRun)
	app.Post("/jobs/:name", h.HandleTriggerJob)
}

// HandleHealth reports liveness and whether a job is running.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"busy":   h.runner.Busy(),
		"jobs":   h.runner.Jobs(),
	})
}

// HandleListRuns returns the remembered runs, newest first.
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	return c.JSON(h.runner.Runs())
}

// HandleGetRun returns a single run.
func (h *Handler) HandleGetRun(c *fiber.Ctx) error {
	run, ok := h.runner.Get(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "run not found",
		})
	}
	return c.JSON(run)
}

// HandleTriggerJob starts a job and answers 202 with the new run.
func (h *Handler) HandleTriggerJob(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.logger, c)

	run, err := h.runner.Trigger(name, "manual")
	switch {
	case errors.Is(err, ErrUnknownJob):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, ErrBusy):
		l.Warn("Rejected job trigger", zap.String("job", name), zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		l.Error("Job trigger failed", zap.String("job", name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Job triggered", zap.String("job", name), zap.String("run_id", run.ID))
	return c.Status(fiber.StatusAccepted).JSON(run)
}

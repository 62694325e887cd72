package cmd

import (
	"context"
	"fmt"

	"ygo-pipelines/core/loader"
	"ygo-pipelines/core/logger"
	"ygo-pipelines/core/middleware/auth"
	"ygo-pipelines/core/middleware/rayid"
	"ygo-pipelines/feature/cards/models"
	"ygo-pipelines/feature/catalog"
	"ygo-pipelines/feature/images"
	"ygo-pipelines/feature/integrity"
	"ygo-pipelines/feature/jobs"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the syncs on a schedule and expose them over HTTP",
	Long: `Starts the HTTP server, schedules the syncs from the schedule.* settings and
accepts manual triggers on POST /jobs/:name. Only one job runs at a time.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer p.close()
		logg := p.log

		// Jobs outlive the request that triggered them; cancelling this context
		// interrupts them on shutdown.
		jobCtx, cancelJobs := context.WithCancel(context.WithoutCancel(cmd.Context()))
		defer cancelJobs()

		runner, err := jobs.NewRunner(jobCtx, p.cfg.Schedule.HistorySize, logg)
		if err != nil {
			return err
		}
		registerJobs(runner, p)

		scheduler, err := jobs.NewScheduler(runner, p.cfg.Schedule.Specs(), logg)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the ray_id attached
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth, health stays public for probes
		app.Use(auth.New(auth.Config{ApiKey: p.cfg.Server.ApiKey, Skip: []string{"/health"}}))

		mgr := loader.NewManager()
		mgr.Register(jobs.NewFeature(runner, logg))
		mgr.Register(integrity.NewFeature(p.objects, p.cfg.Storage.Bucket, p.db, p.store, logg))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Loaded features", zap.Strings("features", loaded))

		scheduler.Start()
		logg.Info("Scheduler started", zap.Int("jobs", scheduler.Entries()))

		listenErr := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", p.cfg.Server.Address()))
			listenErr <- app.Listen(p.cfg.Server.Address())
		}()

		select {
		case err = <-listenErr:
			err = fmt.Errorf("server failed: %w", err)
		case <-cmd.Context().Done():
			logg.Info("Shutting down server...")
		}

		<-scheduler.Stop().Done()
		_ = app.Shutdown()
		cancelJobs()
		runner.Wait()
		logg.Info("Shutdown complete")
		return err
	},
}

// registerJobs binds the three syncs to the runner. Every run gets its own
// logger carrying the run id.
func registerJobs(runner *jobs.Runner, p *pipeline) {
	runner.Register(jobs.JobCards, func(ctx context.Context, log *zap.Logger) (any, error) {
		report, err := p.cardSync(log).SyncCards(ctx, catalog.Filter{})
		if err == nil && report.Failed > 0 {
			err = fmt.Errorf("%d cards failed to sync", report.Failed)
		}
		return report, err
	})
	runner.Register(jobs.JobBanlist, func(ctx context.Context, log *zap.Logger) (any, error) {
		return p.cardSync(log).SyncBanlist(ctx)
	})
	runner.Register(jobs.JobImages, func(ctx context.Context, log *zap.Logger) (any, error) {
		summary, err := p.imageSync(log).Sync(ctx, images.Options{Variant: models.VariantFull})
		if err == nil && summary.Failed > 0 {
			err = fmt.Errorf("%d of %d images failed", summary.Failed, summary.Total)
		}
		return summary, err
	})
}

func init() {
	RootCmd.AddCommand(serveCmd)
}

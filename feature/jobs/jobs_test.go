package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ygo-pipelines/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRunner(t *testing.T, size int) *Runner {
	t.Helper()
	r, err := NewRunner(context.Background(), size, zap.NewNop())
	require.NoError(t, err)
	return r
}

func waitFinished(t *testing.T, r *Runner, id string) Run {
	t.Helper()
	r.Wait()
	run, ok := r.Get(id)
	require.True(t, ok)
	return run
}

func TestRunner(t *testing.T) {
	t.Run("RecordsResult", func(t *testing.T) {
		r := newRunner(t, 10)
		r.Register("sync-banlist", func(ctx context.Context, log *zap.Logger) (any, error) {
			return map[string]int{"entries": 3}, nil
		})

		run, err := r.Trigger("sync-banlist", "manual")
		require.NoError(t, err)
		assert.Equal(t, StatusRunning, run.Status)
		assert.NotEmpty(t, run.ID)

		got := waitFinished(t, r, run.ID)
		assert.Equal(t, StatusSucceeded, got.Status)
		assert.Equal(t, map[string]int{"entries": 3}, got.Result)
		require.NotNil(t, got.FinishedAt)
		assert.False(t, r.Busy())
	})

	t.Run("RecordsFailure", func(t *testing.T) {
		r := newRunner(t, 10)
		r.Register("sync-cards", func(ctx context.Context, log *zap.Logger) (any, error) {
			return nil, errors.New("fatal fetch error")
		})

		run, err := r.Trigger("sync-cards", "cron")
		require.NoError(t, err)
		got := waitFinished(t, r, run.ID)
		assert.Equal(t, StatusFailed, got.Status)
		assert.Equal(t, "fatal fetch error", got.Error)
		assert.Equal(t, "cron", got.Trigger)
	})

	t.Run("RejectsOverlap", func(t *testing.T) {
		r := newRunner(t, 10)
		release := make(chan struct{})
		r.Register("sync-images", func(ctx context.Context, log *zap.Logger) (any, error) {
			<-release
			return nil, nil
		})
		r.Register("sync-cards", func(ctx context.Context, log *zap.Logger) (any, error) {
			return nil, nil
		})

		_, err := r.Trigger("sync-images", "manual")
		require.NoError(t, err)
		assert.True(t, r.Busy())

		_, err = r.Trigger("sync-cards", "manual")
		assert.ErrorIs(t, err, ErrBusy)

		close(release)
		r.Wait()
		_, err = r.Trigger("sync-cards", "manual")
		assert.NoError(t, err)
		r.Wait()
	})

	t.Run("UnknownJob", func(t *testing.T) {
		r := newRunner(t, 10)
		_, err := r.Trigger("nope", "manual")
		assert.ErrorIs(t, err, ErrUnknownJob)
	})

	t.Run("BoundedHistoryNewestFirst", func(t *testing.T) {
		r := newRunner(t, 2)
		r.Register("sync-banlist", func(ctx context.Context, log *zap.Logger) (any, error) { return nil, nil })

		var ids []string
		for range 3 {
			run, err := r.Trigger("sync-banlist", "manual")
			require.NoError(t, err)
			r.Wait()
			ids = append(ids, run.ID)
		}

		runs := r.Runs()
		require.Len(t, runs, 2)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[1], runs[1].ID)
		_, ok := r.Get(ids[0])
		assert.False(t, ok, "oldest run is evicted")
	})
}

func TestScheduler(t *testing.T) {
	r := newRunner(t, 10)
	r.Register("sync-cards", func(ctx context.Context, log *zap.Logger) (any, error) { return nil, nil })
	r.Register("sync-images", func(ctx context.Context, log *zap.Logger) (any, error) { return nil, nil })

	s, err := NewScheduler(r, map[string]string{"sync-cards": "0 3 * * *", "sync-images": ""}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())

	_, err = NewScheduler(r, map[string]string{"sync-cards": "not a cron"}, zap.NewNop())
	assert.ErrorContains(t, err, "invalid schedule")

	_, err = NewScheduler(r, map[string]string{"sync-banlist": "* * * * *"}, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownJob)

	s.fire("sync-cards")
	r.Wait()
	runs := r.Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, "cron", runs[0].Trigger)
}

func TestHandler(t *testing.T) {
	r := newRunner(t, 10)
	release := make(chan struct{})
	r.Register("sync-banlist", func(ctx context.Context, log *zap.Logger) (any, error) {
		<-release
		return fiber.Map{"entries": 1}, nil
	})

	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "secret", Skip: []string{"/health"}}))
	require.NoError(t, NewFeature(r, zap.NewNop()).Load(app))

	do := func(method, path, key string) (int, []byte) {
		req := httptest.NewRequest(method, path, nil)
		if key != "" {
			req.Header.Set(auth.HeaderName, key)
		}
		resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, body
	}

	status, _ := do("GET", "/health", "")
	assert.Equal(t, fiber.StatusOK, status, "health is public")

	status, _ = do("POST", "/jobs/sync-banlist", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := do("POST", "/jobs/sync-banlist", "secret")
	require.Equal(t, fiber.StatusAccepted, status)
	var run Run
	require.NoError(t, json.Unmarshal(body, &run))
	assert.Equal(t, "sync-banlist", run.Job)

	status, _ = do("POST", "/jobs/sync-banlist", "secret")
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = do("POST", "/jobs/unknown", "secret")
	assert.Equal(t, fiber.StatusNotFound, status)

	close(release)
	r.Wait()

	status, body = do("GET", "/runs/"+run.ID, "secret")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &run))
	assert.Equal(t, StatusSucceeded, run.Status)

	status, _ = do("GET", "/runs/missing", "secret")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do("GET", "/runs", "secret")
	require.Equal(t, fiber.StatusOK, status)
	var runs []Run
	require.NoError(t, json.Unmarshal(body, &runs))
	assert.Len(t, runs, 1)
}

func TestConfigSpecs(t *testing.T) {
	cfg := Config{Cards: "0 3 * * *", Images: "0 4 * * *"}
	r := newRunner(t, 5)
	for _, name := range []string{JobCards, JobBanlist, JobImages} {
		r.Register(name, func(ctx context.Context, log *zap.Logger) (any, error) { return nil, nil })
	}

	s, err := NewScheduler(r, cfg.Specs(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries(), "empty banlist expression is not scheduled")
}

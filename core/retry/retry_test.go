package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type tempErr struct{ temporary bool }

func (e tempErr) Error() string   { return "boom" }
func (e tempErr) Temporary() bool { return e.temporary }

var fast = Config{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2, MaxDelay: 5 * time.Millisecond}

func TestBackoff(t *testing.T) {
	cfg := Config{BaseDelay: time.Second, Multiplier: 2, MaxDelay: 10 * time.Second}

	assert.Equal(t, time.Second, cfg.Backoff(0))
	assert.Equal(t, time.Second, cfg.Backoff(1))
	assert.Equal(t, 2*time.Second, cfg.Backoff(2))
	assert.Equal(t, 4*time.Second, cfg.Backoff(3))
	assert.Equal(t, 10*time.Second, cfg.Backoff(5), "capped at MaxDelay")
}

func TestDo(t *testing.T) {
	t.Run("TransientThenSuccess", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fast, func(ctx context.Context, attempt int) error {
			calls++
			if attempt < 3 {
				return tempErr{temporary: true}
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("FatalStopsImmediately", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fast, func(ctx context.Context, attempt int) error {
			calls++
			return tempErr{temporary: false}
		})
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("PlainErrorIsNotRetried", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fast, func(ctx context.Context, attempt int) error {
			calls++
			return errors.New("plain")
		})
		assert.EqualError(t, err, "plain")
		assert.Equal(t, 1, calls)
	})

	t.Run("BudgetExhausted", func(t *testing.T) {
		calls := 0
		err := Do(context.Background(), fast, func(ctx context.Context, attempt int) error {
			calls++
			return tempErr{temporary: true}
		})
		var te tempErr
		assert.ErrorAs(t, err, &te)
		assert.Equal(t, 3, calls)
	})

	t.Run("CancelledDuringWait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		slow := Config{MaxAttempts: 5, BaseDelay: time.Hour, Multiplier: 1}
		calls := 0
		err := Do(ctx, slow, func(ctx context.Context, attempt int) error {
			calls++
			cancel()
			return tempErr{temporary: true}
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("CustomPredicate", func(t *testing.T) {
		calls := 0
		err := DoWhen(context.Background(), fast, func(error) bool { return true }, func(ctx context.Context, attempt int) error {
			calls++
			return errors.New("always")
		})
		assert.Error(t, err)
		assert.Equal(t, 3, calls)
	})
}

package retry

import (
	"context"
	"errors"
	"math"
	"time"
)

// Config holds the backoff policy for transient failures.
type Config struct {
	// MaxAttempts is the total number of tries, including the first one.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// BaseDelay is the wait before the second attempt.
	BaseDelay time.Duration `mapstructure:"base_delay" default:"1s"`
	// Multiplier grows the delay between consecutive attempts.
	Multiplier float64 `mapstructure:"multiplier" default:"2"`
	// MaxDelay caps any single wait.
	MaxDelay time.Duration `mapstructure:"max_delay" default:"10s"`
}

// Default is the policy used when no configuration is supplied.
var Default = Config{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
	Multiplier:  2,
	MaxDelay:    10 * time.Second,
}

// Retryable marks an error as transient. Errors that do not implement it, or
// report false, stop the retry loop immediately.
type Retryable interface {
	Temporary() bool
}

// IsRetryable reports whether any error in err's chain is marked transient.
func IsRetryable(err error) bool {
	var r Retryable
	return errors.As(err, &r) && r.Temporary()
}

// Backoff returns the wait after the given failed attempt (1-based).
func (c Config) Backoff(attempt int) time.Duration {
	if attempt <= 0 {
		return c.BaseDelay
	}

	multiplier := c.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	delay := time.Duration(float64(c.BaseDelay) * math.Pow(multiplier, float64(attempt-1)))
	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}
	return delay
}

// Do calls fn until it succeeds, returns a non-retryable error, or the attempt
// budget is spent. The last error is returned unchanged so callers can still
// match it with errors.As. Cancelling ctx interrupts the wait between attempts.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context, attempt int) error) error {
	return DoWhen(ctx, cfg, IsRetryable, fn)
}

// DoWhen is Do with a caller-supplied predicate deciding which errors are retried.
func DoWhen(ctx context.Context, cfg Config, retryable func(error) bool, fn func(ctx context.Context, attempt int) error) error {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		if attempt == attempts || !retryable(err) {
			return err
		}

		timer := time.NewTimer(cfg.Backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(err, ctx.Err())
		case <-timer.C:
		}
	}
	return err
}

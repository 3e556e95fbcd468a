// Package retry implements exponential backoff with jitter for calls to
// external services.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Config controls the backoff schedule.
type Config struct {
	MaxAttempts   int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterFactor  float64
}

// DefaultConfig returns the backoff schedule used for the API clients.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   3,
		BaseDelay:     time.Second,
		MaxDelay:      30 * time.Second,
		BackoffFactor: 2.0,
		JitterFactor:  0.1,
	}
}

// Classifier decides whether an error is worth retrying.
type Classifier func(error) bool

// Retrier runs operations under the configured backoff schedule.
type Retrier struct {
	config    Config
	retryable Classifier
}

// New creates a Retrier. A nil classifier retries nothing.
func New(config Config, retryable Classifier) *Retrier {
	return &Retrier{config: config, retryable: retryable}
}

// Do runs op until it succeeds, exhausts the attempts, hits a
// non-retryable error, or ctx is cancelled during a backoff wait.
func (r *Retrier) Do(ctx context.Context, op func() error) error {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}

		if attempt == r.config.MaxAttempts || r.retryable == nil || !r.retryable(lastErr) {
			break
		}

		delay := r.delay(attempt)
		slog.Debug("retrying after backoff", "attempt", attempt, "delay", delay, "error", lastErr)

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return lastErr
}

func (r *Retrier) delay(attempt int) time.Duration {
	d := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt-1))
	if d > float64(r.config.MaxDelay) {
		d = float64(r.config.MaxDelay)
	}

	// Jitter spreads out retries from concurrent workers.
	d *= 1.0 + (rand.Float64()-0.5)*r.config.JitterFactor

	return time.Duration(d)
}

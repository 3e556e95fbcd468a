// Package schedule runs the pipeline once a day at a fixed UTC time.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NextRun computes the next occurrence of the "HH:MM" UTC time after now.
func NextRun(now time.Time, at string) (time.Time, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing schedule %q: %w", at, err)
	}

	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next, nil
}

// RunDaily invokes job at the configured time every day until ctx is
// cancelled. Job failures are logged and do not stop the loop.
func RunDaily(ctx context.Context, at string, job func(context.Context) error) error {
	for {
		next, err := NextRun(time.Now(), at)
		if err != nil {
			return err
		}

		slog.Info("waiting for next scheduled run", "at", next.Format(time.RFC3339))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		if err := job(ctx); err != nil {
			slog.Error("scheduled run failed", "error", err)
		}
	}
}

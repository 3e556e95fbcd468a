package schedule

import (
	"context"
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		at   string
		want time.Time
	}{
		{
			"later today",
			time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC),
			"22:00",
			time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC),
		},
		{
			"already passed today",
			time.Date(2026, 8, 29, 23, 30, 0, 0, time.UTC),
			"22:00",
			time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC),
		},
		{
			"exactly at the scheduled minute rolls over",
			time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC),
			"22:00",
			time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC),
		},
		{
			"midnight schedule",
			time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			"00:00",
			time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-UTC now is normalized",
			time.Date(2026, 8, 29, 23, 30, 0, 0, time.FixedZone("JST", 9*3600)), // 14:30 UTC
			"22:00",
			time.Date(2026, 8, 29, 22, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRun(tt.now, tt.at)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NextRun(%v, %q) = %v, want %v", tt.now, tt.at, got, tt.want)
			}
		})
	}
}

func TestNextRun_BadSpec(t *testing.T) {
	if _, err := NextRun(time.Now(), "25:00"); err == nil {
		t.Fatal("expected error for invalid time")
	}
	if _, err := NextRun(time.Now(), "22"); err == nil {
		t.Fatal("expected error for missing minutes")
	}
}

func TestRunDaily_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := RunDaily(ctx, "22:00", func(context.Context) error {
		t.Error("job should not run before the scheduled time")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunDaily_BadSpec(t *testing.T) {
	if err := RunDaily(context.Background(), "nope", nil); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

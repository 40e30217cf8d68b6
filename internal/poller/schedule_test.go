package poller

import (
	"testing"
	"time"
)

func TestParseScheduleVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		interval bool
		every    time.Duration
	}{
		{name: "duration", raw: "10m", interval: true, every: 10 * time.Minute},
		{name: "compound duration", raw: "2h30m", interval: true, every: 2*time.Hour + 30*time.Minute},
		{name: "cron", raw: "*/5 * * * *"},
		{name: "prefixed cron", raw: "cron:0 0 * * *"},
		{name: "descriptor cron", raw: "@hourly"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSchedule(tt.raw)
			if err != nil {
				t.Fatalf("ParseSchedule(%q) error: %v", tt.raw, err)
			}
			if got.IsInterval() != tt.interval {
				t.Fatalf("IsInterval = %v, want %v", got.IsInterval(), tt.interval)
			}
			if tt.interval {
				now := time.Now()
				if next := got.Next(now); next.Sub(now) != tt.every {
					t.Fatalf("Next delta = %v, want %v", next.Sub(now), tt.every)
				}
			} else {
				now := time.Now()
				if next := got.Next(now); !next.After(now) {
					t.Fatalf("Next = %v, want after %v", next, now)
				}
			}
		})
	}
}

func TestParseScheduleInvalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "not-a-schedule", "-5m", "0s", "cron:"} {
		if _, err := ParseSchedule(raw); err == nil {
			t.Fatalf("ParseSchedule(%q): expected error", raw)
		}
	}
}

package poller

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Schedule decides when the next poll iteration wakes up.
//
// Supported forms:
//   - Interval duration: "10m", "2h30m"
//   - Cron (crontab.guru-style): "*/10 * * * *", "@hourly"
//
// An explicit "cron:" prefix forces cron parsing.
type Schedule struct {
	every time.Duration
	cron  cron.Schedule
	raw   string
}

// ParseSchedule parses a schedule string into either a fixed interval or a
// cron expression.
func ParseSchedule(raw string) (Schedule, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Schedule{}, fmt.Errorf("schedule required")
	}

	if expr, ok := strings.CutPrefix(s, "cron:"); ok {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			return Schedule{}, fmt.Errorf("cron schedule required after 'cron:'")
		}
		return parseCron(s, expr)
	}

	// Heuristic: any whitespace or leading '@' means cron.
	if strings.ContainsAny(s, " \t") || strings.HasPrefix(s, "@") {
		return parseCron(s, s)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Schedule{}, fmt.Errorf(
			"invalid schedule %q (use cron like '*/10 * * * *' or duration like '10m')", raw)
	}
	if d <= 0 {
		return Schedule{}, fmt.Errorf("interval must be > 0")
	}
	return Schedule{every: d, raw: s}, nil
}

func parseCron(raw, expr string) (Schedule, error) {
	sched, err := cron.ParseStandard(expr)
	if err != nil {
		return Schedule{}, fmt.Errorf("invalid cron schedule %q: %w", expr, err)
	}
	return Schedule{cron: sched, raw: raw}, nil
}

// Next returns the wake-up time following now.
func (s Schedule) Next(now time.Time) time.Time {
	if s.cron != nil {
		return s.cron.Next(now)
	}
	return now.Add(s.every)
}

// IsInterval reports whether the schedule is a fixed interval.
func (s Schedule) IsInterval() bool { return s.cron == nil }

func (s Schedule) String() string { return s.raw }

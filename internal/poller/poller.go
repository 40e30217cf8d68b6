// Package poller implements the core poll/notify loop.
//
// One iteration flows fetch -> validate -> format -> notify. The loop owns
// two pieces of state: the cursor timestamp (server watermark, advanced only
// after a validated, formatted success) and the last notified message (dedup
// key, advanced only after a successful delivery). Everything runs in a
// single goroutine, so the state needs no locking.
package poller

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hwbot/internal/practicum"
	"hwbot/pkg/logx"
)

// Client is the review-API collaborator (see practicum.Client).
type Client interface {
	Fetch(ctx context.Context, from int64) (json.RawMessage, error)
}

// Notifier delivers one message and reports success.
type Notifier interface {
	Notify(ctx context.Context, text string) bool
}

type Config struct {
	Schedule      Schedule
	InitialCursor int64
}

// Snapshot is a point-in-time view of loop state, used by tests and the
// periodic status log. Not synchronized: read it from the loop goroutine or
// after Run returned.
type Snapshot struct {
	Cursor       int64
	LastNotified string
	Iterations   uint64
	Delivered    uint64
	Suppressed   uint64
}

type Poller struct {
	client   Client
	notifier Notifier
	log      logx.Logger

	sched  Schedule
	reload chan Schedule

	cursor       int64
	lastNotified string
	iterations   uint64
	delivered    uint64
	suppressed   uint64
}

func New(cfg Config, client Client, notifier Notifier, log logx.Logger) *Poller {
	return &Poller{
		client:   client,
		notifier: notifier,
		log:      log,
		sched:    cfg.Schedule,
		reload:   make(chan Schedule, 1),
		cursor:   cfg.InitialCursor,
	}
}

// UpdateSchedule hands a new schedule to the loop (config hot reload).
// Non-blocking; if the loop has not consumed a previous update yet, the
// newest one wins.
func (p *Poller) UpdateSchedule(s Schedule) {
	select {
	case p.reload <- s:
	default:
		select {
		case <-p.reload:
		default:
		}
		select {
		case p.reload <- s:
		default:
		}
	}
}

// Run executes the loop until ctx is done and returns ctx.Err().
// The first iteration runs immediately; subsequent wake-ups come from the
// schedule.
func (p *Poller) Run(ctx context.Context) error {
	p.log.Info("poll loop started",
		logx.String("schedule", p.sched.String()),
		logx.Int64("cursor", p.cursor))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			snap := p.Snapshot()
			p.log.Info("poll loop stopped",
				logx.Uint64("iterations", snap.Iterations),
				logx.Uint64("delivered", snap.Delivered))
			return ctx.Err()
		case s := <-p.reload:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			p.sched = s
			p.log.Info("poll schedule updated", logx.String("schedule", s.String()))
			timer.Reset(time.Until(s.Next(time.Now())))
			continue
		case <-timer.C:
		}

		p.runOnce(ctx)
		timer.Reset(time.Until(p.sched.Next(time.Now())))
	}
}

// runOnce executes a single iteration of the state machine.
//
// Any classified failure becomes a candidate message without touching the
// cursor, so the next successful call re-fetches from the same point and no
// submission is silently skipped. An empty homework list mutates nothing.
func (p *Poller) runOnce(ctx context.Context) {
	p.iterations++

	candidate := ""
	raw, err := p.client.Fetch(ctx, p.cursor)
	switch {
	case err != nil:
		p.logFetchErr(err)
		candidate = err.Error()
	default:
		resp, verr := practicum.ValidateResponse(raw)
		switch {
		case verr != nil:
			p.log.Error("response validation failed", logx.Err(verr))
			candidate = verr.Error()
		case len(resp.Homeworks) == 0:
			p.log.Debug("no status change since last poll", logx.Int64("cursor", p.cursor))
		default:
			msg, ferr := practicum.FormatStatus(resp.Homeworks[0])
			if ferr != nil {
				p.log.Error("homework entry rejected", logx.Err(ferr))
				candidate = ferr.Error()
			} else {
				candidate = msg
				p.cursor = resp.CurrentDate
			}
		}
	}

	if candidate == "" {
		return
	}
	if candidate == p.lastNotified {
		p.suppressed++
		p.log.Debug("duplicate candidate suppressed", logx.String("text", candidate))
		return
	}
	if p.notifier.Notify(ctx, candidate) {
		p.lastNotified = candidate
		p.delivered++
	}
	// On delivery failure lastNotified stays put, so the identical candidate
	// is re-attempted next cycle.
}

func (p *Poller) logFetchErr(err error) {
	switch {
	case errors.Is(err, practicum.ErrUnauthorized):
		p.log.Error("review API rejected credentials", logx.Err(err))
	case errors.Is(err, practicum.ErrBadRequest):
		p.log.Error("review API rejected request parameters",
			logx.Int64("cursor", p.cursor), logx.Err(err))
	case errors.Is(err, practicum.ErrTimeout), errors.Is(err, practicum.ErrConnection):
		p.log.Warn("review API unreachable", logx.Err(err))
	default:
		p.log.Error("review API call failed", logx.Err(err))
	}
}

func (p *Poller) Snapshot() Snapshot {
	return Snapshot{
		Cursor:       p.cursor,
		LastNotified: p.lastNotified,
		Iterations:   p.iterations,
		Delivered:    p.delivered,
		Suppressed:   p.suppressed,
	}
}

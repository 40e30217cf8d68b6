// Package notifier delivers poll-loop messages to the configured Telegram
// chat. Delivery failures are reported as a boolean outcome, never as an
// error: the poll loop must keep running whatever happens to a send.
package notifier

import (
	"context"
	"sync"

	"golang.org/x/time/rate"

	"hwbot/internal/transport"
	"hwbot/pkg/logx"
)

type Config struct {
	// RatePerSec caps outgoing sends (Telegram flood control).
	RatePerSec int
}

type Service struct {
	adapter transport.Adapter
	target  transport.ChatTarget
	log     logx.Logger

	mu      sync.Mutex
	limiter *rate.Limiter
}

func New(cfg Config, adapter transport.Adapter, target transport.ChatTarget, log logx.Logger) *Service {
	s := &Service{adapter: adapter, target: target, log: log}
	s.Apply(cfg)
	return s
}

// Apply updates delivery pacing at runtime (config hot reload).
func (s *Service) Apply(cfg Config) {
	rps := cfg.RatePerSec
	if rps <= 0 {
		rps = 3
	}
	s.mu.Lock()
	// Token bucket: burst = rate per sec, so short spikes don't block too hard.
	s.limiter = rate.NewLimiter(rate.Limit(rps), rps)
	s.mu.Unlock()
}

// Notify attempts one delivery and reports whether it succeeded.
func (s *Service) Notify(ctx context.Context, text string) bool {
	s.mu.Lock()
	lim := s.limiter
	s.mu.Unlock()

	if err := lim.Wait(ctx); err != nil {
		s.log.Warn("notification cancelled before send", logx.Err(err))
		return false
	}

	opt := &transport.SendOptions{DisablePreview: true}
	if _, err := s.adapter.SendText(ctx, s.target, text, opt); err != nil {
		s.log.Error("notification send failed",
			logx.Int64("chat_id", s.target.ChatID),
			logx.String("text", text),
			logx.Err(err))
		return false
	}

	s.log.Info("notification sent",
		logx.Int64("chat_id", s.target.ChatID),
		logx.String("text", text))
	return true
}

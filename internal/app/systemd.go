package app

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"hwbot/pkg/logx"
)

// notifyReady reports readiness to systemd. A no-op outside a systemd unit
// (no NOTIFY_SOCKET).
func notifyReady(log logx.Logger) {
	ok, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		log.Warn("sd_notify failed", logx.Err(err))
		return
	}
	if ok {
		log.Debug("systemd readiness reported")
	}
}

// startWatchdog sends keepalives when the unit has WatchdogSec set.
func startWatchdog(ctx context.Context, log logx.Logger) {
	interval, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		log.Warn("sd_watchdog check failed", logx.Err(err))
		return
	}
	if interval <= 0 {
		return
	}

	log.Debug("systemd watchdog enabled", logx.Duration("interval", interval))
	go func() {
		ticker := time.NewTicker(interval / 2)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			}
		}
	}()
}

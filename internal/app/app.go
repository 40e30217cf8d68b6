// Package app wires config, logging, transport, notifier and the poll loop
// into one runnable daemon.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"hwbot/internal/config"
	"hwbot/internal/notifier"
	"hwbot/internal/poller"
	"hwbot/internal/practicum"
	"hwbot/internal/transport"
	"hwbot/internal/transport/telegram"
	"hwbot/pkg/logx"
)

type App struct {
	mgr    *config.Manager
	logSvc *logx.Service
	log    logx.Logger
	notif  *notifier.Service
	poller *poller.Poller
}

// New builds the daemon. Credentials must already be validated by the caller;
// cfgPath may point at a missing file (defaults apply).
//
// Hot-reloadable via the config file: log level/sinks, notifier rate, poll
// schedule. Endpoint and request timeout are fixed for the process lifetime.
func New(cfgPath string, creds config.Credentials) (*App, error) {
	mgr := config.NewManager(cfgPath)
	mgr.SetLogger(logx.NewConsole("info"))
	cfg, err := mgr.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logSvc, log := logx.New(toLogxConfig(cfg.Logging))
	mgr.SetLogger(log.With(logx.String("component", "config")))

	adapter, err := telegram.New(
		telegram.Config{Token: creds.TelegramToken},
		log.With(logx.String("component", "telegram")),
	)
	if err != nil {
		_ = logSvc.Close()
		return nil, fmt.Errorf("telegram: %w", err)
	}

	notif := notifier.New(
		notifier.Config{RatePerSec: cfg.Notifier.RatePerSec},
		adapter,
		transport.ChatTarget{ChatID: creds.ChatID},
		log.With(logx.String("component", "notifier")),
	)

	reqTimeout, err := config.ParseDurationOrDefault("poll.request_timeout", cfg.Poll.RequestTimeout, 15*time.Second)
	if err != nil {
		_ = logSvc.Close()
		return nil, err
	}
	lookback, err := config.ParseDurationOrDefault("poll.lookback", cfg.Poll.Lookback, 720*time.Hour)
	if err != nil {
		_ = logSvc.Close()
		return nil, err
	}
	sched, err := poller.ParseSchedule(cfg.Poll.Schedule)
	if err != nil {
		_ = logSvc.Close()
		return nil, fmt.Errorf("poll.schedule: %w", err)
	}

	client := practicum.NewClient(
		practicum.ClientConfig{
			Endpoint: cfg.Poll.Endpoint,
			Token:    creds.PracticumToken,
			Timeout:  reqTimeout,
		},
		log.With(logx.String("component", "practicum")),
	)

	p := poller.New(
		poller.Config{
			Schedule:      sched,
			InitialCursor: time.Now().Add(-lookback).Unix(),
		},
		client,
		notif,
		log.With(logx.String("component", "poller")),
	)

	return &App{mgr: mgr, logSvc: logSvc, log: log, notif: notif, poller: p}, nil
}

// Run blocks in the poll loop until ctx is done.
func (a *App) Run(ctx context.Context) error {
	go func() {
		if err := a.mgr.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Warn("config watcher exited", logx.Err(err))
		}
	}()

	sub := a.mgr.Subscribe(1)
	defer a.mgr.Unsubscribe(sub)
	go a.applyUpdates(ctx, sub)

	notifyReady(a.log)
	startWatchdog(ctx, a.log)

	err := a.poller.Run(ctx)
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Close() {
	_ = a.logSvc.Close()
}

func (a *App) applyUpdates(ctx context.Context, sub chan *config.Config) {
	for {
		select {
		case <-ctx.Done():
			return
		case cfg, ok := <-sub:
			if !ok {
				return
			}
			a.logSvc.Apply(toLogxConfig(cfg.Logging))
			a.notif.Apply(notifier.Config{RatePerSec: cfg.Notifier.RatePerSec})
			if s, err := poller.ParseSchedule(cfg.Poll.Schedule); err != nil {
				a.log.Error("reloaded poll schedule invalid; keeping previous", logx.Err(err))
			} else {
				a.poller.UpdateSchedule(s)
			}
		}
	}
}

func toLogxConfig(lc config.LoggingConfig) logx.Config {
	console := true
	if lc.Console != nil {
		console = *lc.Console
	}
	return logx.Config{
		Level:   lc.Level,
		Console: console,
		File: logx.FileConfig{
			Enabled: lc.File.Enabled,
			Path:    lc.File.Path,
		},
	}
}

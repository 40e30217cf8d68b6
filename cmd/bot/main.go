package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"hwbot/internal/app"
	"hwbot/internal/config"
	"hwbot/pkg/logx"
)

func main() {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", "./config.yaml", "path to config file (json or yaml)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	boot := logx.NewConsole("info")

	// Credentials are checked before anything touches the network.
	creds, err := config.LoadCredentials()
	if err != nil {
		boot.Fatal("refusing to start", logx.Err(err))
	}

	a, err := app.New(cfgPath, creds)
	if err != nil {
		boot.Fatal("startup failed", logx.Err(err))
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		a.Close()
		boot.Fatal("daemon exited", logx.Err(err))
	}
}

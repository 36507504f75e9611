package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/moltbook/moltscope/app/collector"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	app, err := collector.Initialize(ctx)
	if err != nil {
		panic(err)
	}

	// Immediate collection before cron
	if err := app.CollectOnce(ctx); err != nil {
		app.Logger.Warn("initial collection failed", zap.Error(err))
	}

	// Start cron scheduler
	app.StartCron()

	// Setup probes server
	app.SetupServer()

	// Start server
	app.Start(ctx)
}

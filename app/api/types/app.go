package types

import (
	"context"
	"net/http"
	"time"

	"github.com/moltbook/moltscope/pkg/cache"
	"github.com/moltbook/moltscope/pkg/collect"
	"github.com/moltbook/moltscope/pkg/store"
	"github.com/moltbook/moltscope/pkg/watchlist"
	"go.uber.org/zap"
)

type App struct {
	Collector *collect.Collector
	Snapshots store.Store
	Cache     cache.Cache
	Watch     *watchlist.Service
	// Zap Logger
	Logger *zap.Logger
	// Server represents the HTTP server instance used to handle incoming client requests and manage HTTP routes.
	Server *http.Server
}

// Start starts the application and blocks until the context is cancelled.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.Snapshots.Close(); err != nil {
		a.Logger.Error("Failed to close snapshot store", zap.Error(err))
	}

	_ = a.Server.Shutdown(shutdownCtx)
	a.Logger.Info("api server stopped")
}

package api

import (
	"context"

	"github.com/moltbook/moltscope/app/api/types"
	"github.com/moltbook/moltscope/pkg/cache"
	"github.com/moltbook/moltscope/pkg/collect"
	"github.com/moltbook/moltscope/pkg/logging"
	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/moltbook/moltscope/pkg/store"
	"github.com/moltbook/moltscope/pkg/watchlist"
	"go.uber.org/zap"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	apiClient, err := moltbook.New()
	if err != nil {
		logger.Fatal("Unable to initialize MoltBook client", zap.Error(err))
	}

	snapshots, err := store.New(ctx, logger)
	if err != nil {
		logger.Fatal("Unable to initialize snapshot store", zap.Error(err))
	}

	responseCache, err := cache.New(ctx, logger)
	if err != nil {
		logger.Fatal("Unable to initialize response cache", zap.Error(err))
	}

	tracker := watchlist.NewTracker(logger)

	return &types.App{
		Collector: collect.New(apiClient, logger),
		Snapshots: snapshots,
		Cache:     responseCache,
		Watch:     watchlist.NewService(tracker, apiClient, logger),
		Logger:    logger,
	}
}

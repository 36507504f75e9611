package collector

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/moltbook/moltscope/pkg/collect"
	"github.com/moltbook/moltscope/pkg/logging"
	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/moltbook/moltscope/pkg/store"
	"github.com/moltbook/moltscope/pkg/utils"
)

// App takes a platform snapshot on every Cron tick and appends it to the
// snapshot store, evicting history beyond the retention cap.
type App struct {
	Collector *collect.Collector
	Snapshots store.Store

	// Cron is the scheduler that triggers collection at intervals, according to CronSpec.
	Cron     *cron.Cron
	CronSpec string

	// Logger is used to log messages, errors, and events during the application's lifecycle and operations.
	Logger *zap.Logger

	// Server is the HTTP server that serves the probes.
	Server *http.Server
}

// Initialize initializes the App.
func Initialize(ctx context.Context) (*App, error) {
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

	app := &App{
		Collector: collect.New(apiClient, logger),
		Snapshots: snapshots,
		// every 30 minutes by default
		CronSpec: utils.Env("COLLECT_CRON", "0 */30 * * * *"),
		Logger:   logger,
	}

	if err := app.SetupScheduler(ctx, cron.DefaultLogger, app.CronSpec); err != nil {
		return nil, err
	}

	return app, nil
}

// SetupServer sets up the HTTP server.
func (a *App) SetupServer() {
	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3002")

	r := mux.NewRouter()

	r.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })).Methods("GET")

	a.Server = &http.Server{Addr: addr, Handler: r}
}

// SetupScheduler sets up the cron scheduler.
func (a *App) SetupScheduler(ctx context.Context, logger cron.Logger, cronSpec string) error {
	// Seconds field, optional
	a.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(logger)))

	_, err := a.Cron.AddFunc(cronSpec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		if err := a.CollectOnce(rctx); err != nil {
			logger.Info("[collector] collection error", "error", err)
		}
	})
	if err != nil {
		return err
	}

	return nil
}

// StartCron starts the cron scheduler.
func (a *App) StartCron() {
	a.Cron.Start()
	a.Logger.Info("[collector] Cron started", zap.String("cronSpec", a.CronSpec))
}

// StopCron stops the cron scheduler.
func (a *App) StopCron() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
}

// CollectOnce takes one snapshot, persists it, and trims retained history.
func (a *App) CollectOnce(ctx context.Context) error {
	snap, err := a.Collector.TakeSnapshot(ctx)
	if err != nil {
		return err
	}
	if err := a.Snapshots.Append(ctx, snap); err != nil {
		return err
	}
	if err := a.Snapshots.EvictOldest(ctx, store.MaxSnapshots()); err != nil {
		return err
	}

	a.Logger.Info("[collector] snapshot stored", zap.Time("taken_at", snap.Timestamp))
	return nil
}

// Start starts the application.
func (a *App) Start(ctx context.Context) {
	go func() { _ = a.Server.ListenAndServe() }()
	<-ctx.Done()
	_ = a.Server.Close()
	a.Logger.Info("[collector] shutting down…")
	a.StopCron()
	if err := a.Snapshots.Close(); err != nil {
		a.Logger.Error("Failed to close snapshot store", zap.Error(err))
	}
	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("collector stopped")
}

package app

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"hantoo_go/internal/infra"
	"hantoo_go/internal/infra/storage"
	"hantoo_go/internal/master"
	"hantoo_go/internal/service"
)

// Bootstrap orchestrates the application startup sequence
type Bootstrap struct {
	Config  *infra.Config
	Storage *storage.Storage
	Store   *master.SnapshotStore
	Service *service.MasterService
}

// NewBootstrap creates a new Bootstrap instance
func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize performs core system initialization. Every component is
// constructed up front; nothing is lazily created on first request.
func (b *Bootstrap) Initialize() error {
	slog.Info("🚀 Bootstrapping Hantoo master service...")

	// 1. Load Config
	cfg, err := infra.LoadConfig("configs/config.yaml")
	if err != nil {
		return err // Let main handle the error
	}
	b.Config = cfg

	// 2. Setup Logger
	logger := infra.NewLogger(cfg)
	slog.SetDefault(logger)

	// 3. Snapshot store (CSV masters + in-memory cache)
	store, err := master.NewSnapshotStore(cfg.Data.Dir)
	if err != nil {
		return err
	}
	b.Store = store
	slog.Info("✅ Snapshot store ready", slog.String("dir", store.Dir()))

	// 4. Ingest history database
	history, err := storage.NewStorage(filepath.Join(store.Dir(), "ingest_history.db"))
	if err != nil {
		return err
	}
	b.Storage = history
	slog.Info("✅ Ingest history database initialized")

	// 5. Pipeline, search engine, service facade
	client := &http.Client{Timeout: time.Duration(cfg.Master.FetchTimeoutSec) * time.Second}
	updater := master.NewUpdater(store, nil, client, history)
	engine := master.NewEngine(store, master.NewProbe(cfg.Data.Dir))
	b.Service = service.NewMasterService(store, updater, engine, history)

	return nil
}

// RefreshStaleMasters updates stale snapshots in the background after
// startup so the first search of the day hits fresh data.
func (b *Bootstrap) RefreshStaleMasters(ctx context.Context) {
	if !b.Store.Status().NeedsUpdate {
		slog.Info("Master snapshots are up to date")
		return
	}

	slog.Info("Stale master snapshots detected, refreshing")
	resp := b.Service.UpdateMaster(ctx, nil)
	slog.Info("Startup master refresh finished",
		slog.String("status", string(resp.Status)),
		slog.String("message", resp.Message))
}

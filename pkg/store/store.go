package store

import (
	"context"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/utils"
	"go.uber.org/zap"
)

// Store is an append-only time-series store for snapshots. Records are
// identified and ordered by their creation timestamp; eviction is FIFO since
// temporal order is the only access pattern.
type Store interface {
	// Append persists one snapshot. Persistence failures are fatal to the
	// attempted operation and never silently drop data.
	Append(ctx context.Context, snap *model.Snapshot) error
	// ListOrdered returns every retained snapshot in ascending timestamp order.
	ListOrdered(ctx context.Context) ([]model.Snapshot, error)
	// Len reports how many snapshots are retained.
	Len(ctx context.Context) (int, error)
	// EvictOldest drops the oldest snapshots until at most max remain.
	EvictOldest(ctx context.Context, max int) error
	// Close releases any underlying resources.
	Close() error
}

// DefaultMaxSnapshots bounds the retained history unless SNAPSHOT_MAX is set.
const DefaultMaxSnapshots = 500

// MaxSnapshots returns the configured history bound.
func MaxSnapshots() int {
	return utils.EnvInt("SNAPSHOT_MAX", DefaultMaxSnapshots)
}

// New builds the snapshot store selected by SNAPSHOT_STORE ("file" or
// "clickhouse"). The file backend is the default.
func New(ctx context.Context, logger *zap.Logger) (Store, error) {
	switch backend := utils.Env("SNAPSHOT_STORE", "file"); backend {
	case "clickhouse":
		return NewClickHouse(ctx, logger)
	default:
		return NewFileStore(utils.Env("SNAPSHOT_DIR", "data/snapshots"))
	}
}

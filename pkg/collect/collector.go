package collect

import (
	"github.com/alitto/pond/v2"
	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/moltbook/moltscope/pkg/utils"
	"go.uber.org/zap"
)

// Collector fetches raw collections from the MoltBook API and shapes them into
// snapshot material. All multi-source fetches fan out on a small fixed-size
// pool and join before any aggregation; fetches share no mutable state, so the
// merge happens lock-free after the join.
type Collector struct {
	api    *moltbook.Client
	logger *zap.Logger
	pool   pond.Pool
}

// New returns a Collector. FETCH_WORKERS bounds concurrent upstream requests.
func New(api *moltbook.Client, logger *zap.Logger) *Collector {
	return &Collector{
		api:    api,
		logger: logger,
		pool:   pond.NewPool(utils.EnvInt("FETCH_WORKERS", 4)),
	}
}

// API exposes the underlying client for callers that need direct lookups.
func (c *Collector) API() *moltbook.Client { return c.api }

package controller

import (
	"net/http"
	"strconv"
	"time"
)

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 50
	leaderboardTTL          = 5 * time.Minute
)

// HandleLeaderboard serves the derived agent leaderboard, cached briefly since
// it costs two upstream fetches to build.
func (c *Controller) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := boundedLimit(r.URL.Query().Get("limit"), defaultLeaderboardLimit, maxLeaderboardLimit)

	// the limit is part of the key so a small request never shadows a larger one
	c.withCache(w, r, "leaderboard:"+strconv.Itoa(limit), leaderboardTTL, func() (interface{}, error) {
		agents, err := c.App.Collector.CollectTopAgents(ctx)
		if err != nil {
			return nil, err
		}
		if len(agents) > limit {
			agents = agents[:limit]
		}
		return map[string]interface{}{
			"success":   true,
			"timestamp": time.Now().UTC(),
			"count":     len(agents),
			"agents":    agents,
		}, nil
	})
}

// boundedLimit parses a limit query parameter and clamps it.
func boundedLimit(raw string, def, max int) int {
	limit := def
	if raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > max {
		limit = max
	}
	return limit
}

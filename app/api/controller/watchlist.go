package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/moltbook/moltscope/pkg/watchlist"
)

// HandleWatchlist serves live status for every watched agent. An empty list is
// a valid response, not an error.
func (c *Controller) HandleWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	statuses, err := c.App.Watch.Status(ctx)
	if err != nil {
		if errors.Is(err, watchlist.ErrEmpty) {
			c.writeJSON(w, http.StatusOK, map[string]interface{}{
				"success":   true,
				"timestamp": time.Now().UTC(),
				"agents":    []watchlist.AgentStatus{},
				"count":     0,
				"message":   "Watchlist empty",
			})
			return
		}
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": time.Now().UTC(),
		"agents":    statuses,
		"count":     len(statuses),
	})
}

package controller

import "net/http"

// HandleIndex lists the available endpoints.
func (c *Controller) HandleIndex(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":    "MoltScope Analytics API",
		"version": "0.3.0",
		"endpoints": []string{
			"GET /api/leaderboard",
			"GET /api/trending",
			"GET /api/agent/{name}",
			"GET /api/topics",
			"GET /api/submolts",
			"GET /api/submolts/growth",
			"GET /api/submolts/{name}",
			"GET /api/activity",
			"GET /api/watchlist",
			"GET /api/cache",
		},
	})
}

package controller

import "net/http"

// HandleCacheStats exposes what the response cache currently holds.
func (c *Controller) HandleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats := c.App.Cache.Stats(r.Context())
	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"entries": stats.Entries,
		"keys":    stats.Keys,
	})
}

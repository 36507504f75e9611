package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

// HandleAgent serves one agent profile. Unknown agents return 404.
func (c *Controller) HandleAgent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	agent, err := c.App.Collector.GetAgent(ctx, name)
	if err != nil {
		if moltbook.IsNotFound(err) {
			c.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": time.Now().UTC(),
		"agent":     agent,
	})
}

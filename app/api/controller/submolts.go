package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/moltbook/moltscope/pkg/analyze"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

const (
	defaultSubmoltLimit = 50
	maxSubmoltLimit     = 100
)

// HandleSubmolts lists every community.
func (c *Controller) HandleSubmolts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := boundedLimit(r.URL.Query().Get("limit"), defaultSubmoltLimit, maxSubmoltLimit)

	submolts, err := c.App.Collector.CollectSubmolts(ctx)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(submolts) > limit {
		submolts = submolts[:limit]
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": time.Now().UTC(),
		"count":     len(submolts),
		"submolts":  submolts,
	})
}

// HandleSubmoltGrowth serves subscriber growth rankings computed from stored
// snapshots. With fewer than two snapshots the request fails with a hint.
func (c *Controller) HandleSubmoltGrowth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snaps, err := c.App.Snapshots.ListOrdered(ctx)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	growth, err := analyze.AllSubmoltGrowth(snaps)
	if err != nil {
		if analyze.IsInsufficientData(err) {
			c.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": time.Now().UTC(),
		"growth":    growth,
	})
}

// HandleSubmoltDetail serves one community with engagement aggregates.
func (c *Controller) HandleSubmoltDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := mux.Vars(r)["name"]

	detail, err := c.App.Collector.GetSubmoltDetails(ctx, name)
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
		"submolt":   detail,
	})
}

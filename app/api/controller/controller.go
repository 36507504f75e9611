package controller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/moltbook/moltscope/app/api/types"
)

type Controller struct {
	App *types.App
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App: app,
	}
}

// WithCORS is a middleware that adds CORS headers to the response.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodOptions)

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()

	r.Handle("/", http.HandlerFunc(c.HandleIndex)).Methods(http.MethodGet)

	r.HandleFunc("/api/leaderboard", c.HandleLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/api/trending", c.HandleTrending).Methods(http.MethodGet)
	r.HandleFunc("/api/agent/{name}", c.HandleAgent).Methods(http.MethodGet)
	r.HandleFunc("/api/topics", c.HandleTopics).Methods(http.MethodGet)

	// /api/submolts/growth must register before the {name} route
	r.HandleFunc("/api/submolts/growth", c.HandleSubmoltGrowth).Methods(http.MethodGet)
	r.HandleFunc("/api/submolts/{name}", c.HandleSubmoltDetail).Methods(http.MethodGet)
	r.HandleFunc("/api/submolts", c.HandleSubmolts).Methods(http.MethodGet)

	r.HandleFunc("/api/activity", c.HandleActivity).Methods(http.MethodGet)
	r.HandleFunc("/api/watchlist", c.HandleWatchlist).Methods(http.MethodGet)
	r.HandleFunc("/api/cache", c.HandleCacheStats).Methods(http.MethodGet)

	return r, nil
}

// writeJSON writes a JSON response
func (c *Controller) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response
func (c *Controller) writeError(w http.ResponseWriter, statusCode int, message string) {
	c.writeJSON(w, statusCode, map[string]interface{}{"success": false, "error": message})
}

// withCache serves the key from the response cache when warm, otherwise builds
// the payload, caches its encoding, and serves it.
func (c *Controller) withCache(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (interface{}, error)) {
	ctx := r.Context()

	if raw, ok := c.App.Cache.Get(ctx, key); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
		return
	}

	payload, err := build()
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	c.App.Cache.Set(ctx, key, raw, ttl)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

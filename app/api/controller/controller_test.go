package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/moltbook/moltscope/app/api/types"
	"github.com/moltbook/moltscope/pkg/cache"
	"github.com/moltbook/moltscope/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeStore serves canned snapshots without touching the filesystem.
type fakeStore struct {
	snaps []model.Snapshot
}

func (f *fakeStore) Append(context.Context, *model.Snapshot) error { return nil }
func (f *fakeStore) ListOrdered(context.Context) ([]model.Snapshot, error) {
	return f.snaps, nil
}
func (f *fakeStore) Len(context.Context) (int, error)       { return len(f.snaps), nil }
func (f *fakeStore) EvictOldest(context.Context, int) error { return nil }
func (f *fakeStore) Close() error                           { return nil }

func newTestController(t *testing.T, snaps []model.Snapshot) *Controller {
	t.Helper()
	return NewController(&types.App{
		Snapshots: &fakeStore{snaps: snaps},
		Cache:     cache.NewMemory(),
		Logger:    zaptest.NewLogger(t),
	})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleIndexListsEndpoints(t *testing.T) {
	c := newTestController(t, nil)

	rec := httptest.NewRecorder()
	c.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, "MoltScope Analytics API", body["name"])
	assert.Contains(t, body["endpoints"], "GET /api/submolts/growth")
}

func TestHandleCacheStats(t *testing.T) {
	c := newTestController(t, nil)
	c.App.Cache.Set(context.Background(), "leaderboard:20", []byte(`{}`), time.Minute)

	rec := httptest.NewRecorder()
	c.HandleCacheStats(rec, httptest.NewRequest(http.MethodGet, "/api/cache", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["entries"])
	assert.Contains(t, body["keys"], "leaderboard:20")
}

func TestHandleSubmoltGrowthNeedsTwoSnapshots(t *testing.T) {
	c := newTestController(t, []model.Snapshot{{Timestamp: time.Now().UTC()}})

	rec := httptest.NewRecorder()
	c.HandleSubmoltGrowth(rec, httptest.NewRequest(http.MethodGet, "/api/submolts/growth", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestHandleSubmoltGrowthServesRankings(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{
		{
			Timestamp: t0,
			Submolts:  []model.SubmoltStat{{Name: "general", SubscriberCount: 1000}},
		},
		{
			Timestamp: t0.Add(10 * time.Hour),
			Submolts:  []model.SubmoltStat{{Name: "general", SubscriberCount: 1100}},
		},
	}
	c := newTestController(t, snaps)

	rec := httptest.NewRecorder()
	c.HandleSubmoltGrowth(rec, httptest.NewRequest(http.MethodGet, "/api/submolts/growth", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	growth, ok := body["growth"].(map[string]interface{})
	require.True(t, ok)
	top, ok := growth["top_growing"].([]interface{})
	require.True(t, ok)
	require.Len(t, top, 1)
	first := top[0].(map[string]interface{})
	assert.Equal(t, "general", first["name"])
	assert.Equal(t, float64(100), first["subscriber_change"])
}

func TestWithCORSPreflight(t *testing.T) {
	handler := WithCORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("preflight must not reach the inner handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/topics", nil)
	req.Header.Set("Origin", "https://scope.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://scope.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestWithCacheServesWarmBytes(t *testing.T) {
	c := newTestController(t, nil)
	ctx := context.Background()
	c.App.Cache.Set(ctx, "topics", []byte(`{"cached":true}`), time.Minute)

	rec := httptest.NewRecorder()
	c.withCache(rec, httptest.NewRequest(http.MethodGet, "/api/topics", nil), "topics", time.Minute, func() (interface{}, error) {
		t.Fatal("builder must not run on a warm cache")
		return nil, nil
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"cached":true}`, rec.Body.String())
}

func TestWithCachePopulatesOnMiss(t *testing.T) {
	c := newTestController(t, nil)

	rec := httptest.NewRecorder()
	c.withCache(rec, httptest.NewRequest(http.MethodGet, "/api/topics", nil), "topics", time.Minute, func() (interface{}, error) {
		return map[string]bool{"built": true}, nil
	})

	require.Equal(t, http.StatusOK, rec.Code)
	raw, ok := c.App.Cache.Get(context.Background(), "topics")
	require.True(t, ok)
	assert.JSONEq(t, `{"built":true}`, string(raw))
}

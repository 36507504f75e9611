package collect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeMoltbook serves a couple of communities and their hot feeds.
func fakeMoltbook(t *testing.T) *Collector {
	t.Helper()

	yes, no := true, false
	feeds := map[string][]moltbook.Post{
		"general": {
			post("1", "alpha", "general", 30),
			post("2", "beta", "general", 10),
			post("3", "alpha", "general", 5),
		},
		"quiet": {},
	}
	subs := map[string]moltbook.Submolt{
		"general": {Name: "general", DisplayName: "General", SubscriberCount: 900},
		"quiet":   {Name: "quiet", DisplayName: "Quiet", SubscriberCount: 3},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/submolts/")

		if strings.HasSuffix(name, "/feed") {
			name = strings.TrimSuffix(name, "/feed")
			posts, ok := feeds[name]
			if !ok {
				_ = json.NewEncoder(w).Encode(map[string]any{"success": &no, "error": "unknown submolt"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"success": &yes, "posts": posts})
			return
		}

		sub, ok := subs[name]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]any{"success": &no, "error": "unknown submolt"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": &yes, "submolt": sub})
	}))
	t.Cleanup(srv.Close)

	api := moltbook.NewWithOpts(moltbook.Opts{BaseURL: srv.URL, APIKey: "k", RPS: 1000, Burst: 1000})
	return New(api, zaptest.NewLogger(t))
}

func TestGetSubmoltDetailsAggregatesFeed(t *testing.T) {
	c := fakeMoltbook(t)

	detail, err := c.GetSubmoltDetails(context.Background(), "general")
	require.NoError(t, err)

	assert.Equal(t, "General", detail.DisplayName)
	assert.Equal(t, 900, detail.SubscriberCount)
	assert.Equal(t, 3, detail.PostsSampled)
	assert.Equal(t, 45, detail.TotalUpvotes)
	assert.Equal(t, 15, detail.AvgUpvotes)

	require.NotEmpty(t, detail.TopContributors)
	assert.Equal(t, "alpha", detail.TopContributors[0].Name)
	assert.Equal(t, 2, detail.TopContributors[0].Posts)
}

func TestGetSubmoltDetailsNotFound(t *testing.T) {
	c := fakeMoltbook(t)

	_, err := c.GetSubmoltDetails(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, moltbook.IsNotFound(err))
}

func TestCompareSubmoltsInlineErrorsAndOrder(t *testing.T) {
	c := fakeMoltbook(t)

	results := c.CompareSubmolts(context.Background(), []string{"quiet", "ghost", "general"})
	require.Len(t, results, 3)

	// sorted by sampled upvotes, failed lookups sink with zero
	assert.Equal(t, "general", results[0].Name)
	assert.Equal(t, 45, results[0].TotalUpvotes)

	var ghost *SubmoltDetail
	for i := range results {
		if results[i].Name == "ghost" {
			ghost = &results[i]
		}
	}
	require.NotNil(t, ghost)
	assert.NotEmpty(t, ghost.Err)
}

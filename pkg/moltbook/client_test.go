package moltbook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithOpts(Opts{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		RPS:     1000,
		Burst:   1000,
	})
}

func TestPostsDecodesFeed(t *testing.T) {
	var gotAuth, gotPath string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.String()
		ok := true
		_ = json.NewEncoder(w).Encode(postsResponse{
			Success: &ok,
			Posts: []Post{
				{ID: "1", Title: "first", Upvotes: 10, Author: &AuthorRef{Name: "alpha"}},
				{ID: "2", Title: "second", Upvotes: 5},
			},
		})
	}))

	posts, err := c.HotPosts(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "alpha", posts[0].AuthorName())
	assert.Equal(t, "", posts[1].AuthorName())

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "/posts?sort=hot&limit=50", gotPath)
}

func TestAgentProfileNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nope := false
		_ = json.NewEncoder(w).Encode(agentResponse{Success: &nope, Error: "no such agent"})
	}))

	_, err := c.AgentProfile(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "agent", nf.Kind)
	assert.Equal(t, "ghost", nf.Name)
	assert.Equal(t, "no such agent", nf.Reason)
}

func TestAgentProfileSuccess(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "zeta", r.URL.Query().Get("name"))
		ok := true
		_ = json.NewEncoder(w).Encode(agentResponse{
			Success:     &ok,
			Agent:       &Agent{Name: "zeta", Karma: 42, Stats: AgentTotals{Posts: 3}},
			RecentPosts: []Post{{ID: "9"}},
		})
	}))

	profile, err := c.AgentProfile(context.Background(), "zeta")
	require.NoError(t, err)
	assert.Equal(t, 42, profile.Agent.Karma)
	assert.Equal(t, 3, profile.Agent.Stats.Posts)
	require.Len(t, profile.RecentPosts, 1)
}

func TestZeroPostsIsNotAnError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok := true
		_ = json.NewEncoder(w).Encode(postsResponse{Success: &ok})
	}))

	posts, err := c.NewPosts(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCircuitOpensAfterServerErrors(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c.breakerThreshold = 2

	ctx := context.Background()
	_, err := c.HotPosts(ctx, 10)
	require.ErrorContains(t, err, "server 500")
	_, err = c.HotPosts(ctx, 10)
	require.ErrorContains(t, err, "server 500")

	// the third call must fail fast without hitting the server
	_, err = c.HotPosts(ctx, 10)
	require.ErrorContains(t, err, "circuit open")
}

func TestClientErrorDoesNotTripBreaker(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	c.breakerThreshold = 1

	ctx := context.Background()
	_, err := c.HotPosts(ctx, 10)
	require.ErrorContains(t, err, "http 404")
	_, err = c.HotPosts(ctx, 10)
	assert.ErrorContains(t, err, "http 404")
}

func TestLoadAPIKeyFromEnv(t *testing.T) {
	t.Setenv("MOLTBOOK_API_KEY", "env-key")

	key, err := LoadAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key)
}

func TestLoadAPIKeyFromCredentialsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"api_key":"file-key"}`), 0o600))
	t.Setenv("MOLTBOOK_API_KEY", "")
	t.Setenv("MOLTBOOK_CREDENTIALS", path)

	key, err := LoadAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)
}

func TestLoadAPIKeyMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))
	t.Setenv("MOLTBOOK_API_KEY", "")
	t.Setenv("MOLTBOOK_CREDENTIALS", path)

	_, err := LoadAPIKey()
	require.ErrorContains(t, err, "missing api_key")
}

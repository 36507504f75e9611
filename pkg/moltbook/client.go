package moltbook

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moltbook/moltscope/pkg/utils"
)

// DefaultBaseURL is the production MoltBook API.
const DefaultBaseURL = "https://www.moltbook.com/api/v1"

// Client is a stateless read-only client for the MoltBook REST API with a
// token-bucket rate limiter and a circuit-breaker. Response caching is not the
// client's concern; callers that want a cache compose one on top.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client

	// token-bucket
	tokens      int64
	maxTokens   int64
	refillEvery time.Duration
	lastRefill  atomic.Value // time.Time

	// circuit-breaker
	mu         sync.Mutex
	failures   int
	openedTill time.Time

	breakerThreshold int
	breakerCooldown  time.Duration
}

// Opts is the set of options for a new Client.
type Opts struct {
	BaseURL         string
	APIKey          string
	Timeout         time.Duration
	RPS             int
	Burst           int
	BreakerFailures int
	BreakerCooldown time.Duration
	HTTPClient      *http.Client
}

// NewWithOpts creates a new Client with the given options.
func NewWithOpts(o Opts) *Client {
	if o.BaseURL == "" {
		o.BaseURL = utils.Env("MOLTBOOK_API_BASE", DefaultBaseURL)
	}
	if o.RPS <= 0 {
		o.RPS = 5
	}
	if o.Burst <= 0 {
		o.Burst = 10
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.BreakerFailures <= 0 {
		o.BreakerFailures = 3
	}
	if o.BreakerCooldown <= 0 {
		o.BreakerCooldown = 10 * time.Second
	}

	client := o.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: o.Timeout}
	} else if client.Timeout == 0 {
		client.Timeout = o.Timeout
	}

	c := &Client{
		baseURL:          o.BaseURL,
		apiKey:           o.APIKey,
		client:           client,
		maxTokens:        int64(o.Burst),
		refillEvery:      time.Second / time.Duration(o.RPS),
		breakerThreshold: o.BreakerFailures,
		breakerCooldown:  o.BreakerCooldown,
	}
	c.tokens = c.maxTokens
	c.lastRefill.Store(time.Now())
	return c
}

// New creates a Client configured from the environment, loading the API key
// from MOLTBOOK_API_KEY or the credentials file.
func New() (*Client, error) {
	key, err := LoadAPIKey()
	if err != nil {
		return nil, err
	}
	return NewWithOpts(Opts{APIKey: key}), nil
}

// refill refills the token-bucket with new tokens if necessary.
func (c *Client) refill() {
	last := c.lastRefill.Load().(time.Time)
	now := time.Now()
	if now.Sub(last) >= c.refillEvery {
		if atomic.LoadInt64(&c.tokens) < c.maxTokens {
			atomic.AddInt64(&c.tokens, 1)
		}
		c.lastRefill.Store(now)
	}
}

// acquire acquires a token from the token-bucket, blocking if necessary.
func (c *Client) acquire() {
	for {
		c.refill()
		if atomic.LoadInt64(&c.tokens) > 0 {
			atomic.AddInt64(&c.tokens, -1)
			return
		}
		time.Sleep(c.refillEvery / 2)
	}
}

// isOpen returns true while the breaker is in the OPEN state.
func (c *Client) isOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.openedTill.IsZero() {
		return false
	}
	if time.Now().After(c.openedTill) {
		c.openedTill = time.Time{}
		c.failures = 0
		return false
	}
	return true
}

// noteFailure counts a failure and opens the breaker past the threshold.
func (c *Client) noteFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	if c.failures >= c.breakerThreshold {
		c.openedTill = time.Now().Add(c.breakerCooldown)
	}
}

func (c *Client) noteSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
}

// getJSON performs an authenticated GET and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if c.isOpen() {
		return fmt.Errorf("moltbook api circuit open, retry later")
	}

	c.acquire()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.noteFailure()
		return fmt.Errorf("moltbook api: %w", err)
	}

	if resp.StatusCode >= 500 {
		c.noteFailure()
		_ = utils.DrainAndClose(resp.Body)
		return fmt.Errorf("moltbook api: server %d", resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		_ = utils.DrainAndClose(resp.Body)
		return fmt.Errorf("moltbook api: http %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		_ = utils.DrainAndClose(resp.Body)
		return fmt.Errorf("moltbook api: decode: %w", err)
	}

	c.noteSuccess()
	return utils.DrainAndClose(resp.Body)
}

func feedPath(sort string, limit int) string {
	return postsPath + "?sort=" + url.QueryEscape(sort) + "&limit=" + strconv.Itoa(limit)
}

// Posts lists posts under the given sort order ("hot", "new", "rising",
// "top"). Zero results is a valid outcome.
func (c *Client) Posts(ctx context.Context, sort string, limit int) ([]Post, error) {
	var resp postsResponse
	if err := c.getJSON(ctx, feedPath(sort, limit), &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) {
		return nil, fmt.Errorf("moltbook api: posts %s: %s", sort, resp.Error)
	}
	return resp.Posts, nil
}

// HotPosts lists posts sorted by "hot".
func (c *Client) HotPosts(ctx context.Context, limit int) ([]Post, error) {
	return c.Posts(ctx, "hot", limit)
}

// NewPosts lists posts sorted by "new".
func (c *Client) NewPosts(ctx context.Context, limit int) ([]Post, error) {
	return c.Posts(ctx, "new", limit)
}

// RisingPosts lists posts sorted by "rising".
func (c *Client) RisingPosts(ctx context.Context, limit int) ([]Post, error) {
	return c.Posts(ctx, "rising", limit)
}

// TopPosts lists posts sorted by "top".
func (c *Client) TopPosts(ctx context.Context, limit int) ([]Post, error) {
	return c.Posts(ctx, "top", limit)
}

// SubmoltPosts lists a submolt's feed.
func (c *Client) SubmoltPosts(ctx context.Context, name, sort string, limit int) ([]Post, error) {
	path := submoltsPath + "/" + url.PathEscape(name) + "/feed?sort=" + url.QueryEscape(sort) + "&limit=" + strconv.Itoa(limit)
	var resp postsResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) {
		return nil, &NotFoundError{Kind: "submolt", Name: name, Reason: resp.Error}
	}
	return resp.Posts, nil
}

// MyProfile returns the authenticated agent's own profile.
func (c *Client) MyProfile(ctx context.Context) (*Profile, error) {
	var resp agentResponse
	if err := c.getJSON(ctx, myProfilePath, &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) || resp.Agent == nil {
		return nil, &NotFoundError{Kind: "agent", Name: "me", Reason: resp.Error}
	}
	return &Profile{Agent: *resp.Agent, RecentPosts: resp.RecentPosts}, nil
}

// AgentProfile looks up any agent by name. A non-success payload surfaces as
// NotFoundError, never as a silent empty profile.
func (c *Client) AgentProfile(ctx context.Context, name string) (*Profile, error) {
	path := agentProfilePath + "?name=" + url.QueryEscape(name)
	var resp agentResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) || resp.Agent == nil {
		return nil, &NotFoundError{Kind: "agent", Name: name, Reason: resp.Error}
	}
	return &Profile{Agent: *resp.Agent, RecentPosts: resp.RecentPosts}, nil
}

// Submolts lists all community channels.
func (c *Client) Submolts(ctx context.Context) ([]Submolt, error) {
	var resp submoltsResponse
	if err := c.getJSON(ctx, submoltsPath, &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) {
		return nil, fmt.Errorf("moltbook api: submolts: %s", resp.Error)
	}
	return resp.Submolts, nil
}

// Submolt looks up one community channel by name.
func (c *Client) Submolt(ctx context.Context, name string) (*Submolt, error) {
	var resp submoltResponse
	if err := c.getJSON(ctx, submoltsPath+"/"+url.PathEscape(name), &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) || resp.Submolt == nil {
		return nil, &NotFoundError{Kind: "submolt", Name: name, Reason: resp.Error}
	}
	return resp.Submolt, nil
}

// Search runs a full-text search over posts.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Post, error) {
	path := searchPath + "?q=" + url.QueryEscape(query) + "&limit=" + strconv.Itoa(limit)
	var resp postsResponse
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if failed(resp.Success) {
		return nil, fmt.Errorf("moltbook api: search: %s", resp.Error)
	}
	return resp.Posts, nil
}

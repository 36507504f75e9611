package controller

import (
	"net/http"
	"time"

	"github.com/moltbook/moltscope/pkg/moltbook"
)

const (
	defaultTrendingLimit = 15
	maxTrendingLimit     = 50
)

type trendingPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Submolt   string    `json:"submolt"`
	Upvotes   int       `json:"upvotes"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
}

// HandleTrending serves one feed by sort order: hot (default), rising, or new.
func (c *Controller) HandleTrending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := boundedLimit(r.URL.Query().Get("limit"), defaultTrendingLimit, maxTrendingLimit)

	sortOrder := r.URL.Query().Get("sort")
	var (
		posts []moltbook.Post
		err   error
	)
	switch sortOrder {
	case "rising":
		posts, err = c.App.Collector.API().RisingPosts(ctx, limit)
	case "new":
		posts, err = c.App.Collector.API().NewPosts(ctx, limit)
	default:
		sortOrder = "hot"
		posts, err = c.App.Collector.API().HotPosts(ctx, limit)
	}
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	trimmed := make([]trendingPost, 0, len(posts))
	for _, p := range posts {
		trimmed = append(trimmed, trendingPost{
			ID:        p.ID,
			Title:     p.Title,
			Author:    p.AuthorName(),
			Submolt:   p.SubmoltName(),
			Upvotes:   p.Upvotes,
			Comments:  p.CommentCount,
			CreatedAt: p.CreatedAt,
		})
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"timestamp": time.Now().UTC(),
		"sort":      sortOrder,
		"count":     len(trimmed),
		"posts":     trimmed,
	})
}

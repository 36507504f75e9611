package collect

import (
	"context"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

const topSubmoltsByActivity = 10

// CollectSiteStats fetches the hot and new feeds plus the submolt listing and
// folds them into site-wide counters.
func (c *Collector) CollectSiteStats(ctx context.Context) (*model.SiteStats, error) {
	var (
		hot, fresh []moltbook.Post
		submolts   []moltbook.Submolt
	)

	group := c.pool.NewGroupContext(ctx)
	group.SubmitErr(func() (err error) {
		hot, err = c.api.HotPosts(ctx, 50)
		return err
	})
	group.SubmitErr(func() (err error) {
		fresh, err = c.api.NewPosts(ctx, 50)
		return err
	})
	group.SubmitErr(func() (err error) {
		submolts, err = c.api.Submolts(ctx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	stats := BuildSiteStats(hot, fresh, submolts, time.Now().UTC())
	return &stats, nil
}

// BuildSiteStats is the pure aggregation over already-fetched feeds.
func BuildSiteStats(hot, fresh []moltbook.Post, submolts []moltbook.Submolt, now time.Time) model.SiteStats {
	posts := MergePosts(hot, fresh)

	authors := map[string]struct{}{}
	totalUpvotes, totalComments := 0, 0
	for _, p := range posts {
		if name := p.AuthorName(); name != "" {
			authors[name] = struct{}{}
		}
		totalUpvotes += p.Upvotes
		totalComments += p.CommentCount
	}

	dayAgo := now.Add(-24 * time.Hour)
	last24h := 0
	for _, p := range fresh {
		if p.CreatedAt.After(dayAgo) {
			last24h++
		}
	}

	avgUp, avgCom := 0, 0
	if len(posts) > 0 {
		avgUp = int(float64(totalUpvotes)/float64(len(posts)) + 0.5)
		avgCom = int(float64(totalComments)/float64(len(posts)) + 0.5)
	}

	return model.SiteStats{
		PostsSampled:         len(posts),
		UniqueAuthorsSampled: len(authors),
		SubmoltsCount:        len(submolts),
		PostsLast24h:         last24h,
		AvgUpvotes:           avgUp,
		AvgComments:          avgCom,
		TopSubmolts:          topSubmolts(posts),
	}
}

// topSubmolts counts sampled posts per submolt, top ten, ties kept in
// first-seen order.
func topSubmolts(posts []moltbook.Post) []model.SubmoltActivity {
	counts := map[string]int{}
	var order []string
	for _, p := range posts {
		name := p.SubmoltName()
		if name == "" {
			name = "unknown"
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]model.SubmoltActivity, 0, len(order))
	for _, name := range order {
		out = append(out, model.SubmoltActivity{Name: name, Posts: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Posts > out[j].Posts })
	if len(out) > topSubmoltsByActivity {
		out = out[:topSubmoltsByActivity]
	}
	return out
}

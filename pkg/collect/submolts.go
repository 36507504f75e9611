package collect

import (
	"context"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

// SubmoltDetail is one community with engagement aggregates computed from a
// sample of its feed.
type SubmoltDetail struct {
	Name            string           `json:"name"`
	DisplayName     string           `json:"display_name"`
	Description     string           `json:"description"`
	SubscriberCount int              `json:"subscriber_count"`
	CreatedAt       time.Time        `json:"created_at"`
	PostsSampled    int              `json:"posts_sampled"`
	TotalUpvotes    int              `json:"total_upvotes"`
	TotalComments   int              `json:"total_comments"`
	AvgUpvotes      int              `json:"avg_upvotes"`
	TopPosts        []SubmoltPost    `json:"top_posts"`
	TopContributors []ContributorRef `json:"top_contributors"`
	Err             string           `json:"error,omitempty"`
}

// SubmoltPost is a feed post trimmed for display.
type SubmoltPost struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Upvotes  int    `json:"upvotes"`
	Comments int    `json:"comments"`
}

// ContributorRef counts one author's posts in a submolt sample.
type ContributorRef struct {
	Name  string `json:"name"`
	Posts int    `json:"posts"`
}

// CollectSubmolts lists every community with its basic stats.
func (c *Collector) CollectSubmolts(ctx context.Context) ([]model.SubmoltStat, error) {
	submolts, err := c.api.Submolts(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.SubmoltStat, 0, len(submolts))
	for _, s := range submolts {
		out = append(out, model.SubmoltStat{
			Name:            s.Name,
			DisplayName:     s.DisplayName,
			Description:     s.Description,
			SubscriberCount: s.SubscriberCount,
			CreatedAt:       s.CreatedAt,
		})
	}
	return out, nil
}

// GetSubmoltDetails fetches one community and a feed sample concurrently and
// aggregates engagement stats.
func (c *Collector) GetSubmoltDetails(ctx context.Context, name string) (*SubmoltDetail, error) {
	var (
		submolt *moltbook.Submolt
		posts   []moltbook.Post
	)

	group := c.pool.NewGroupContext(ctx)
	group.SubmitErr(func() (err error) {
		submolt, err = c.api.Submolt(ctx, name)
		return err
	})
	group.SubmitErr(func() (err error) {
		posts, err = c.api.SubmoltPosts(ctx, name, "hot", 25)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	detail := &SubmoltDetail{
		Name:            submolt.Name,
		DisplayName:     submolt.DisplayName,
		Description:     submolt.Description,
		SubscriberCount: submolt.SubscriberCount,
		CreatedAt:       submolt.CreatedAt,
		PostsSampled:    len(posts),
	}

	for _, p := range posts {
		detail.TotalUpvotes += p.Upvotes
		detail.TotalComments += p.CommentCount
	}
	if len(posts) > 0 {
		detail.AvgUpvotes = int(float64(detail.TotalUpvotes)/float64(len(posts)) + 0.5)
	}

	for i, p := range posts {
		if i >= 5 {
			break
		}
		detail.TopPosts = append(detail.TopPosts, SubmoltPost{
			Title:    p.Title,
			Author:   p.AuthorName(),
			Upvotes:  p.Upvotes,
			Comments: p.CommentCount,
		})
	}

	detail.TopContributors = topContributors(posts, 5)
	return detail, nil
}

// CompareSubmolts fetches several communities side by side. One failed lookup
// is recorded inline and never fails the batch.
func (c *Collector) CompareSubmolts(ctx context.Context, names []string) []SubmoltDetail {
	results := make([]SubmoltDetail, len(names))

	group := c.pool.NewGroupContext(ctx)
	for i, name := range names {
		group.Submit(func() {
			detail, err := c.GetSubmoltDetails(ctx, name)
			if err != nil {
				results[i] = SubmoltDetail{Name: name, Err: err.Error()}
				return
			}
			results[i] = *detail
		})
	}
	_ = group.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalUpvotes > results[j].TotalUpvotes
	})
	return results
}

func topContributors(posts []moltbook.Post, n int) []ContributorRef {
	counts := map[string]int{}
	var order []string
	for _, p := range posts {
		name := p.AuthorName()
		if name == "" {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name]++
	}

	out := make([]ContributorRef, 0, len(order))
	for _, name := range order {
		out = append(out, ContributorRef{Name: name, Posts: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Posts > out[j].Posts })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

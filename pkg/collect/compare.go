package collect

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/moltbook"
)

const similarAgentLimit = 10

// AgentComparison is a side-by-side view of several agents with the winner of
// each category called out.
type AgentComparison struct {
	Agents  []ComparedAgent `json:"agents"`
	Winners Winners         `json:"winners"`
	Table   []ComparisonRow `json:"comparison_table"`
}

// ComparedAgent wraps one lookup result. A failed lookup is recorded inline so
// one missing agent never voids the whole comparison.
type ComparedAgent struct {
	AgentDetail
	Err string `json:"error,omitempty"`
}

// Winners names the leading agent per category among successful lookups.
type Winners struct {
	Karma          string `json:"karma"`
	Followers      string `json:"followers"`
	RecentActivity string `json:"recent_activity"`
}

// ComparisonRow is one agent's numbers flattened for tabular display.
type ComparisonRow struct {
	Name           string `json:"name"`
	Karma          int    `json:"karma"`
	Followers      int    `json:"followers"`
	Following      int    `json:"following"`
	OwnerFollowers int    `json:"owner_followers"`
	RecentPosts    int    `json:"recent_posts"`
	Err            string `json:"error,omitempty"`
}

// SimilarAgent is an agent active in the same communities as the target.
type SimilarAgent struct {
	Name           string   `json:"name"`
	SharedSubmolts []string `json:"shared_submolts"`
	PostsInShared  int      `json:"posts_in_shared"`
}

// AgentVelocity measures how fast an agent's sampled posts accumulate votes.
type AgentVelocity struct {
	Name            string         `json:"name"`
	PostsFound      int            `json:"posts_found"`
	TotalUpvotes    int            `json:"total_upvotes"`
	TotalComments   int            `json:"total_comments"`
	AvgUpvotes      int            `json:"avg_upvotes"`
	AvgComments     int            `json:"avg_comments"`
	AvgPostAgeHours float64        `json:"avg_post_age_hours"`
	UpvotesPerHour  float64        `json:"upvotes_per_hour"`
	TopPost         *moltbook.Post `json:"top_post,omitempty"`
}

// CompareAgents fetches each profile concurrently and ranks the successful
// ones per category. At least two names are required.
func (c *Collector) CompareAgents(ctx context.Context, names []string) (*AgentComparison, error) {
	if len(names) < 2 {
		return nil, fmt.Errorf("need at least 2 agent names to compare, got %d", len(names))
	}

	agents := make([]ComparedAgent, len(names))
	group := c.pool.NewGroupContext(ctx)
	for i, name := range names {
		group.Submit(func() {
			detail, err := c.GetAgent(ctx, name)
			if err != nil {
				agents[i] = ComparedAgent{AgentDetail: AgentDetail{Name: name}, Err: err.Error()}
				return
			}
			agents[i] = ComparedAgent{AgentDetail: *detail}
		})
	}
	_ = group.Wait()

	return buildComparison(agents), nil
}

func buildComparison(agents []ComparedAgent) *AgentComparison {
	cmp := &AgentComparison{Agents: agents}

	var best *ComparedAgent
	pick := func(better func(a, b *ComparedAgent) bool) string {
		best = nil
		for i := range agents {
			a := &agents[i]
			if a.Err != "" {
				continue
			}
			if best == nil || better(a, best) {
				best = a
			}
		}
		if best == nil {
			return ""
		}
		return best.Name
	}

	cmp.Winners = Winners{
		Karma:     pick(func(a, b *ComparedAgent) bool { return a.Karma > b.Karma }),
		Followers: pick(func(a, b *ComparedAgent) bool { return a.FollowerCount > b.FollowerCount }),
		RecentActivity: pick(func(a, b *ComparedAgent) bool {
			return a.LastActive.After(b.LastActive)
		}),
	}

	for _, a := range agents {
		row := ComparisonRow{
			Name:        a.Name,
			Karma:       a.Karma,
			Followers:   a.FollowerCount,
			Following:   a.FollowingCount,
			RecentPosts: len(a.RecentPosts),
			Err:         a.Err,
		}
		if a.Owner != nil {
			row.OwnerFollowers = a.Owner.Followers
		}
		cmp.Table = append(cmp.Table, row)
	}
	return cmp
}

// FindSimilarAgents scans the hot and new feeds for agents posting in the same
// communities as the target, ranked by how many communities they share.
func (c *Collector) FindSimilarAgents(ctx context.Context, target string) ([]SimilarAgent, error) {
	var hot, fresh []moltbook.Post

	group := c.pool.NewGroupContext(ctx)
	group.SubmitErr(func() (err error) {
		hot, err = c.api.HotPosts(ctx, 50)
		return err
	})
	group.SubmitErr(func() (err error) {
		fresh, err = c.api.NewPosts(ctx, 50)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	posts := MergePosts(hot, fresh)

	targetSubmolts := map[string]struct{}{}
	for _, p := range posts {
		if p.AuthorName() == target {
			if s := p.SubmoltName(); s != "" {
				targetSubmolts[s] = struct{}{}
			}
		}
	}
	if len(targetSubmolts) == 0 {
		return nil, &moltbook.NotFoundError{Kind: "agent", Name: target, Reason: "not found in recent posts"}
	}

	type acc struct {
		shared map[string]struct{}
		posts  int
	}
	similar := map[string]*acc{}
	var order []string
	for _, p := range posts {
		author := p.AuthorName()
		if author == "" || author == target {
			continue
		}
		submolt := p.SubmoltName()
		if _, shared := targetSubmolts[submolt]; !shared {
			continue
		}
		a, ok := similar[author]
		if !ok {
			a = &acc{shared: map[string]struct{}{}}
			similar[author] = a
			order = append(order, author)
		}
		a.shared[submolt] = struct{}{}
		a.posts++
	}

	out := make([]SimilarAgent, 0, len(order))
	for _, author := range order {
		a := similar[author]
		shared := make([]string, 0, len(a.shared))
		for s := range a.shared {
			shared = append(shared, s)
		}
		sort.Strings(shared)
		out = append(out, SimilarAgent{Name: author, SharedSubmolts: shared, PostsInShared: a.posts})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].SharedSubmolts) > len(out[j].SharedSubmolts)
	})
	if len(out) > similarAgentLimit {
		out = out[:similarAgentLimit]
	}
	return out, nil
}

// Velocity samples three feeds for one agent's posts and measures upvote
// accumulation against average post age.
func (c *Collector) Velocity(ctx context.Context, name string) (*AgentVelocity, error) {
	var hot, fresh, top []moltbook.Post

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
		top, err = c.api.TopPosts(ctx, 50)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	velocity := BuildVelocity(name, MergePosts(hot, fresh, top), time.Now().UTC())
	if velocity == nil {
		return nil, &moltbook.NotFoundError{Kind: "agent", Name: name, Reason: "no posts found in sampled feeds"}
	}
	return velocity, nil
}

// BuildVelocity is the pure aggregation. Returns nil when the agent has no
// posts in the sample.
func BuildVelocity(name string, posts []moltbook.Post, now time.Time) *AgentVelocity {
	var mine []moltbook.Post
	for _, p := range posts {
		if p.AuthorName() == name {
			mine = append(mine, p)
		}
	}
	if len(mine) == 0 {
		return nil
	}

	v := &AgentVelocity{Name: name, PostsFound: len(mine)}
	var ageSum float64
	for i, p := range mine {
		v.TotalUpvotes += p.Upvotes
		v.TotalComments += p.CommentCount
		ageSum += now.Sub(p.CreatedAt).Hours()
		if v.TopPost == nil || p.Upvotes > v.TopPost.Upvotes {
			v.TopPost = &mine[i]
		}
	}

	n := float64(len(mine))
	v.AvgUpvotes = int(float64(v.TotalUpvotes)/n + 0.5)
	v.AvgComments = int(float64(v.TotalComments)/n + 0.5)

	avgAge := ageSum / n
	v.AvgPostAgeHours = round1(avgAge)
	if avgAge > 0 {
		v.UpvotesPerHour = round1(float64(v.TotalUpvotes) / avgAge)
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

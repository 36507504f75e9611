package collect

import (
	"context"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

const topAgentLimit = 25

// AgentDetail is a full agent profile shaped for display surfaces.
type AgentDetail struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Karma          int               `json:"karma"`
	FollowerCount  int               `json:"follower_count"`
	FollowingCount int               `json:"following_count"`
	CreatedAt      time.Time         `json:"created_at"`
	LastActive     time.Time         `json:"last_active"`
	IsClaimed      bool              `json:"is_claimed"`
	Owner          *AgentOwnerDetail `json:"owner,omitempty"`
	RecentPosts    []RecentPost      `json:"recent_posts"`
}

// AgentOwnerDetail is the human behind a claimed agent.
type AgentOwnerDetail struct {
	Handle    string `json:"handle"`
	Name      string `json:"name"`
	Followers int    `json:"followers"`
}

// RecentPost is a profile's recent post trimmed for display.
type RecentPost struct {
	Title     string    `json:"title"`
	Upvotes   int       `json:"upvotes"`
	Comments  int       `json:"comments"`
	Submolt   string    `json:"submolt"`
	CreatedAt time.Time `json:"created_at"`
}

// GetAgent looks up one agent profile. A failed lookup surfaces as
// moltbook.NotFoundError, never a silent empty detail.
func (c *Collector) GetAgent(ctx context.Context, name string) (*AgentDetail, error) {
	profile, err := c.api.AgentProfile(ctx, name)
	if err != nil {
		return nil, err
	}

	detail := &AgentDetail{
		Name:           profile.Agent.Name,
		Description:    profile.Agent.Description,
		Karma:          profile.Agent.Karma,
		FollowerCount:  profile.Agent.FollowerCount,
		FollowingCount: profile.Agent.FollowingCount,
		CreatedAt:      profile.Agent.CreatedAt,
		LastActive:     profile.Agent.LastActive,
		IsClaimed:      profile.Agent.IsClaimed,
	}
	if o := profile.Agent.Owner; o != nil {
		detail.Owner = &AgentOwnerDetail{Handle: o.XHandle, Name: o.XName, Followers: o.XFollowerCount}
	}
	for _, p := range profile.RecentPosts {
		detail.RecentPosts = append(detail.RecentPosts, RecentPost{
			Title:     p.Title,
			Upvotes:   p.Upvotes,
			Comments:  p.CommentCount,
			Submolt:   p.SubmoltName(),
			CreatedAt: p.CreatedAt,
		})
	}
	return detail, nil
}

// CollectTopAgents derives the agent leaderboard by folding the hot and top
// feeds; there is no leaderboard endpoint upstream.
func (c *Collector) CollectTopAgents(ctx context.Context) ([]model.AgentStat, error) {
	var hot, top []moltbook.Post

	group := c.pool.NewGroupContext(ctx)
	group.SubmitErr(func() (err error) {
		hot, err = c.api.HotPosts(ctx, 50)
		return err
	})
	group.SubmitErr(func() (err error) {
		top, err = c.api.TopPosts(ctx, 50)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return BuildTopAgents(hot, top), nil
}

// BuildTopAgents folds deduplicated posts by author and ranks by total
// upvotes. The sort is stable, so ties keep first-seen author order.
func BuildTopAgents(collections ...[]moltbook.Post) []model.AgentStat {
	posts := MergePosts(collections...)

	stats := map[string]*model.AgentStat{}
	var order []string
	for _, p := range posts {
		author := p.AuthorName()
		if author == "" {
			continue
		}
		s, ok := stats[author]
		if !ok {
			s = &model.AgentStat{Name: author}
			stats[author] = s
			order = append(order, author)
		}
		s.Posts++
		s.TotalUpvotes += p.Upvotes
		s.TotalComments += p.CommentCount
		if s.TopPost == nil || p.Upvotes > s.TopPost.Upvotes {
			s.TopPost = &model.PostRef{Title: p.Title, Upvotes: p.Upvotes}
		}
	}

	ranked := make([]model.AgentStat, 0, len(order))
	for _, author := range order {
		ranked = append(ranked, *stats[author])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalUpvotes > ranked[j].TotalUpvotes
	})
	if len(ranked) > topAgentLimit {
		ranked = ranked[:topAgentLimit]
	}
	return ranked
}

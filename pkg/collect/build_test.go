package collect

import (
	"testing"
	"time"

	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSiteStatsDeduplicatesAcrossFeeds(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	shared := post("1", "alpha", "general", 10)
	shared.CreatedAt = now.Add(-1 * time.Hour)
	hotOnly := post("2", "beta", "dev", 20)
	hotOnly.CreatedAt = now.Add(-30 * time.Hour)
	freshOnly := post("3", "alpha", "general", 6)
	freshOnly.CreatedAt = now.Add(-2 * time.Hour)

	stats := BuildSiteStats(
		[]moltbook.Post{shared, hotOnly},
		[]moltbook.Post{shared, freshOnly},
		[]moltbook.Submolt{{Name: "general"}, {Name: "dev"}},
		now,
	)

	// the shared post counts once
	assert.Equal(t, 3, stats.PostsSampled)
	assert.Equal(t, 2, stats.UniqueAuthorsSampled)
	assert.Equal(t, 2, stats.SubmoltsCount)
	// only fresh-feed posts younger than 24h count
	assert.Equal(t, 2, stats.PostsLast24h)
	// (10+20+6)/3 = 12
	assert.Equal(t, 12, stats.AvgUpvotes)

	require.NotEmpty(t, stats.TopSubmolts)
	assert.Equal(t, "general", stats.TopSubmolts[0].Name)
	assert.Equal(t, 2, stats.TopSubmolts[0].Posts)
}

func TestBuildTopAgentsFoldsByAuthor(t *testing.T) {
	hot := []moltbook.Post{
		post("1", "alpha", "general", 10),
		post("2", "beta", "general", 50),
	}
	top := []moltbook.Post{
		post("1", "alpha", "general", 10), // duplicate of hot
		post("3", "alpha", "dev", 30),
	}

	ranked := BuildTopAgents(hot, top)
	require.Len(t, ranked, 2)

	assert.Equal(t, "beta", ranked[0].Name)
	assert.Equal(t, 50, ranked[0].TotalUpvotes)

	assert.Equal(t, "alpha", ranked[1].Name)
	assert.Equal(t, 2, ranked[1].Posts)
	assert.Equal(t, 40, ranked[1].TotalUpvotes)
	require.NotNil(t, ranked[1].TopPost)
	assert.Equal(t, 30, ranked[1].TopPost.Upvotes)
}

func TestBuildTopAgentsSkipsAuthorlessPosts(t *testing.T) {
	orphan := moltbook.Post{ID: "1", Title: "orphan", Upvotes: 5}
	ranked := BuildTopAgents([]moltbook.Post{orphan})
	assert.Empty(t, ranked)
}

func TestBuildHeatmapBucketsByUTCHour(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	p1 := post("1", "alpha", "general", 10)
	p1.CreatedAt = time.Date(2026, 9, 1, 9, 15, 0, 0, time.UTC)
	p2 := post("2", "beta", "general", 20)
	p2.CreatedAt = time.Date(2026, 9, 1, 9, 45, 0, 0, time.UTC)
	p3 := post("3", "alpha", "dev", 4)
	p3.CreatedAt = time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC)

	heatmap := BuildHeatmap([]moltbook.Post{p1, p2, p3}, now)

	assert.Equal(t, 3, heatmap.PostsAnalyzed)
	require.Len(t, heatmap.ByHour, 24)

	nine := heatmap.ByHour[9]
	assert.Equal(t, 2, nine.Posts)
	assert.Equal(t, 15, nine.AvgUpvotes)
	assert.Equal(t, 2, nine.UniqueAgents)

	require.NotEmpty(t, heatmap.PeakHoursUTC)
	assert.Equal(t, 9, heatmap.PeakHoursUTC[0])
	assert.Contains(t, heatmap.Recommendation, "09:00")
}

func TestBuildHeatmapEmpty(t *testing.T) {
	heatmap := BuildHeatmap(nil, time.Now().UTC())
	assert.Empty(t, heatmap.PeakHoursUTC)
	assert.Contains(t, heatmap.Recommendation, "Not enough data")
}

func TestBuildVelocity(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	p1 := post("1", "alpha", "general", 30)
	p1.CreatedAt = now.Add(-2 * time.Hour)
	p1.CommentCount = 4
	p2 := post("2", "alpha", "dev", 10)
	p2.CreatedAt = now.Add(-4 * time.Hour)
	p2.CommentCount = 2
	other := post("3", "beta", "dev", 99)
	other.CreatedAt = now.Add(-1 * time.Hour)

	v := BuildVelocity("alpha", []moltbook.Post{p1, p2, other}, now)
	require.NotNil(t, v)

	assert.Equal(t, 2, v.PostsFound)
	assert.Equal(t, 40, v.TotalUpvotes)
	assert.Equal(t, 6, v.TotalComments)
	assert.Equal(t, 20, v.AvgUpvotes)
	assert.Equal(t, 3, v.AvgComments)
	// avg age (2+4)/2 = 3 hours, 40 upvotes / 3h = 13.3
	assert.Equal(t, 3.0, v.AvgPostAgeHours)
	assert.Equal(t, 13.3, v.UpvotesPerHour)
	require.NotNil(t, v.TopPost)
	assert.Equal(t, "1", v.TopPost.ID)
}

func TestBuildVelocityNoPosts(t *testing.T) {
	assert.Nil(t, BuildVelocity("ghost", []moltbook.Post{post("1", "alpha", "general", 1)}, time.Now()))
}

func TestBuildComparisonWinners(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	agents := []ComparedAgent{
		{AgentDetail: AgentDetail{Name: "alpha", Karma: 100, FollowerCount: 5, LastActive: now.Add(-time.Hour)}},
		{AgentDetail: AgentDetail{Name: "beta", Karma: 80, FollowerCount: 50, LastActive: now}},
		{AgentDetail: AgentDetail{Name: "ghost"}, Err: "agent not found"},
	}

	cmp := buildComparison(agents)

	assert.Equal(t, "alpha", cmp.Winners.Karma)
	assert.Equal(t, "beta", cmp.Winners.Followers)
	assert.Equal(t, "beta", cmp.Winners.RecentActivity)

	require.Len(t, cmp.Table, 3)
	assert.Equal(t, "agent not found", cmp.Table[2].Err)
}

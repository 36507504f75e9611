package analyze

import (
	"testing"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapAt(ts time.Time, karma, posts, comments int) model.Snapshot {
	return model.Snapshot{
		Timestamp: ts,
		Profile:   model.ProfileStats{Name: "me", Karma: karma, Posts: posts, Comments: comments},
	}
}

func TestCompareSnapshotsDeltaAndVelocity(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	older := snapAt(t0, 100, 10, 20)
	newer := snapAt(t0.Add(10*time.Hour), 150, 12, 25)

	cmp := CompareSnapshots(older, newer)

	assert.Equal(t, 10.0, cmp.Period.Hours)
	assert.Equal(t, FieldDelta{Old: 100, New: 150, Delta: 50}, cmp.Profile.Karma)
	assert.Equal(t, 5.0, cmp.Velocity.KarmaPerHour)
	assert.Equal(t, 0.2, cmp.Velocity.PostsPerHour)
	assert.Equal(t, 0.5, cmp.Velocity.CommentsPerHour)
}

func TestCompareSnapshotsNegativeDelta(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	cmp := CompareSnapshots(snapAt(t0, 100, 5, 5), snapAt(t0.Add(4*time.Hour), 80, 5, 5))

	assert.Equal(t, -20, cmp.Profile.Karma.Delta)
	assert.Equal(t, -5.0, cmp.Velocity.KarmaPerHour)
}

func TestCompareSnapshotsZeroDuration(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	cmp := CompareSnapshots(snapAt(t0, 100, 5, 5), snapAt(t0, 150, 5, 5))

	assert.Equal(t, 50, cmp.Profile.Karma.Delta)
	assert.Equal(t, 0.0, cmp.Velocity.KarmaPerHour)
}

func TestGrowthInsufficientData(t *testing.T) {
	_, err := Growth(nil)
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))

	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err = Growth([]model.Snapshot{snapAt(t0, 1, 1, 1)})
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
}

func TestGrowthRecentUsesLastTwoSnapshots(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{
		snapAt(t0, 100, 0, 0),
		snapAt(t0.Add(10*time.Hour), 130, 0, 0),
		snapAt(t0.Add(20*time.Hour), 160, 0, 0),
	}

	report, err := Growth(snaps)
	require.NoError(t, err)

	assert.Equal(t, 3, report.SnapshotsCount)
	assert.Equal(t, 60, report.Overall.Profile.Karma.Delta)
	assert.Equal(t, 30, report.Recent.Profile.Karma.Delta)
	assert.Equal(t, 10.0, report.Recent.Period.Hours)
}

func momentumSnaps(scores []int) []model.Snapshot {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := make([]model.Snapshot, 0, len(scores))
	for i, score := range scores {
		snaps = append(snaps, model.Snapshot{
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Topics: model.TopicAnalysis{
				CategoryScores: map[string]int{"technical": score},
			},
		})
	}
	return snaps
}

func TestTopicMomentumRisingAndFalling(t *testing.T) {
	rising := TopicMomentum(momentumSnaps([]int{10, 20}))
	assert.Equal(t, 10.0, rising["technical"])

	falling := TopicMomentum(momentumSnaps([]int{20, 10}))
	assert.Equal(t, -10.0, falling["technical"])
}

func TestTopicMomentumFloorMidpoint(t *testing.T) {
	// odd-length series: first half [10], second half [20, 30]
	momentum := TopicMomentum(momentumSnaps([]int{10, 20, 30}))
	assert.Equal(t, 15.0, momentum["technical"])
}

func TestTopicMomentumSinglePointIsZero(t *testing.T) {
	momentum := TopicMomentum(momentumSnaps([]int{42}))
	assert.Equal(t, 0.0, momentum["technical"])
}

func TestAgentGrowthRankingFlagsNewEntrants(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	oldest := model.Snapshot{
		Timestamp: t0,
		TopAgents: []model.AgentStat{
			{Name: "alpha", TotalUpvotes: 100},
			{Name: "beta", TotalUpvotes: 50},
		},
	}
	newest := model.Snapshot{
		Timestamp: t0.Add(5 * time.Hour),
		TopAgents: []model.AgentStat{
			{Name: "alpha", TotalUpvotes: 120},
			{Name: "gamma", TotalUpvotes: 80},
		},
	}

	growth, err := AgentGrowthRanking([]model.Snapshot{oldest, newest})
	require.NoError(t, err)
	require.Len(t, growth, 2)

	// gamma entered the roster: old score zero, flagged new, biggest growth
	assert.Equal(t, "gamma", growth[0].Name)
	assert.Equal(t, 0, growth[0].OldUpvotes)
	assert.Equal(t, 80, growth[0].Growth)
	assert.True(t, growth[0].IsNew)

	assert.Equal(t, "alpha", growth[1].Name)
	assert.Equal(t, 20, growth[1].Growth)
	assert.False(t, growth[1].IsNew)
}

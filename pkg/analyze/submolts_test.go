package analyze

import (
	"testing"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submoltSnap(ts time.Time, subs map[string]int) model.Snapshot {
	snap := model.Snapshot{Timestamp: ts}
	for name, count := range subs {
		snap.Submolts = append(snap.Submolts, model.SubmoltStat{
			Name:            name,
			DisplayName:     name,
			SubscriberCount: count,
		})
	}
	return snap
}

func TestAllSubmoltGrowthInsufficientData(t *testing.T) {
	_, err := AllSubmoltGrowth(nil)
	require.Error(t, err)
	assert.True(t, IsInsufficientData(err))
}

func TestAllSubmoltGrowthExcludesAbsentFromOldest(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{
		submoltSnap(t0, map[string]int{"general": 1000}),
		submoltSnap(t0.Add(10*time.Hour), map[string]int{"general": 1100, "newcomer": 500}),
	}

	report, err := AllSubmoltGrowth(snaps)
	require.NoError(t, err)

	// newcomer is absent from the oldest snapshot: excluded, not "new"
	require.Len(t, report.TopGrowing, 1)
	assert.Equal(t, "general", report.TopGrowing[0].Name)
	assert.Equal(t, 100, report.TopGrowing[0].SubscriberChange)
	assert.Equal(t, 10.0, report.TopGrowing[0].ChangePercent)
	assert.Equal(t, 10.0, report.TopGrowing[0].GrowthPerHour)
}

func TestAllSubmoltGrowthDecliningMostNegativeFirst(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{
		submoltSnap(t0, map[string]int{"a": 100, "b": 100, "c": 100}),
		submoltSnap(t0.Add(time.Hour), map[string]int{"a": 90, "b": 50, "c": 120}),
	}

	report, err := AllSubmoltGrowth(snaps)
	require.NoError(t, err)

	require.Len(t, report.TopDeclining, 2)
	assert.Equal(t, "b", report.TopDeclining[0].Name)
	assert.Equal(t, -50, report.TopDeclining[0].SubscriberChange)
	assert.Equal(t, "a", report.TopDeclining[1].Name)
}

func TestPercentChangeZeroBase(t *testing.T) {
	assert.Equal(t, 100.0, percentChange(0, 50))
	assert.Equal(t, 0.0, percentChange(0, 0))
	assert.Equal(t, 0.0, percentChange(0, -5))
	assert.Equal(t, -10.0, percentChange(100, -10))
}

func TestHistoryForSubmoltSkipsSnapshotsWithoutIt(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{
		submoltSnap(t0, map[string]int{"general": 1000}),
		submoltSnap(t0.Add(5*time.Hour), map[string]int{"other": 1}),
		submoltSnap(t0.Add(10*time.Hour), map[string]int{"general": 1200}),
	}

	history, err := HistoryForSubmolt(snaps, "general")
	require.NoError(t, err)

	assert.Equal(t, 2, history.DataPoints)
	assert.Equal(t, 1000, history.Summary.StartSubscribers)
	assert.Equal(t, 1200, history.Summary.EndSubscribers)
	assert.Equal(t, 200, history.Summary.TotalChange)
	assert.Equal(t, 20.0, history.Summary.ChangePercent)
	assert.Equal(t, 10.0, history.Summary.HoursTracked)
	assert.Equal(t, 20.0, history.Summary.AvgGrowthPerHour)
}

func TestHistoryForSubmoltNotTracked(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{submoltSnap(t0, map[string]int{"general": 1})}

	_, err := HistoryForSubmolt(snaps, "ghost")
	require.Error(t, err)
}

func TestCompareSubmoltGrowthInlineErrors(t *testing.T) {
	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	snaps := []model.Snapshot{
		submoltSnap(t0, map[string]int{"a": 100, "b": 200}),
		submoltSnap(t0.Add(time.Hour), map[string]int{"a": 150, "b": 210}),
	}

	results := CompareSubmoltGrowth(snaps, []string{"b", "ghost", "a"})
	require.Len(t, results, 3)

	// sorted by total change descending, errored entries sink with zero change
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, 50, results[0].TotalChange)
	assert.Equal(t, "b", results[1].Name)

	var errored *SubmoltComparison
	for i := range results {
		if results[i].Name == "ghost" {
			errored = &results[i]
		}
	}
	require.NotNil(t, errored)
	assert.NotEmpty(t, errored.Err)
}

package watchlist

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	t.Setenv("WATCHLIST_FILE", filepath.Join(t.TempDir(), "watchlist.json"))
	t.Setenv("WATCHLIST_MAX", "3")
	return NewTracker(zaptest.NewLogger(t))
}

func TestTrackerAddAndList(t *testing.T) {
	tr := newTestTracker(t)

	require.NoError(t, tr.Add("alpha"))
	require.NoError(t, tr.Add("beta"))

	agents, err := tr.Agents()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, agents)
}

func TestTrackerDuplicateAddIsStructuredError(t *testing.T) {
	tr := newTestTracker(t)
	require.NoError(t, tr.Add("alpha"))

	err := tr.Add("alpha")
	var already *AlreadyWatchedError
	require.ErrorAs(t, err, &already)
	assert.Equal(t, "alpha", already.Name)

	// the list is unchanged
	agents, err := tr.Agents()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, agents)
}

func TestTrackerRemoveMissing(t *testing.T) {
	tr := newTestTracker(t)

	err := tr.Remove("ghost")
	var notWatched *NotWatchedError
	require.ErrorAs(t, err, &notWatched)
	assert.Equal(t, "ghost", notWatched.Name)
}

func TestTrackerRemoveKeepsHistory(t *testing.T) {
	tr := newTestTracker(t)
	require.NoError(t, tr.Add("alpha"))
	require.NoError(t, tr.Record(Sample{
		Timestamp: time.Now().UTC(),
		Agents:    []AgentPoint{{Name: "alpha", Karma: 10}},
	}))

	require.NoError(t, tr.Remove("alpha"))

	last, err := tr.LastSample()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "alpha", last.Agents[0].Name)
}

func TestTrackerRecordEvictsBeyondCap(t *testing.T) {
	tr := newTestTracker(t)
	require.NoError(t, tr.Add("alpha"))

	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, tr.Record(Sample{
			Timestamp: t0.Add(time.Duration(i) * time.Hour),
			Agents:    []AgentPoint{{Name: "alpha", Karma: i}},
		}))
	}

	// WATCHLIST_MAX is 3: only the newest three samples remain
	points, err := tr.History("alpha")
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, 2, points[0].Karma)
	assert.Equal(t, 4, points[2].Karma)
}

func TestTrackerHistorySkipsFailedSamples(t *testing.T) {
	tr := newTestTracker(t)
	require.NoError(t, tr.Add("alpha"))

	t0 := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tr.Record(Sample{
		Timestamp: t0,
		Agents:    []AgentPoint{{Name: "alpha", Karma: 1}},
	}))
	require.NoError(t, tr.Record(Sample{
		Timestamp: t0.Add(time.Hour),
		Agents:    []AgentPoint{{Name: "alpha", Err: "timeout"}},
	}))

	points, err := tr.History("alpha")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1, points[0].Karma)
}

func TestTrackerHistoryNotWatched(t *testing.T) {
	tr := newTestTracker(t)

	_, err := tr.History("ghost")
	var notWatched *NotWatchedError
	assert.True(t, errors.As(err, &notWatched))
}

func TestTrackerLastSampleEmpty(t *testing.T) {
	tr := newTestTracker(t)

	last, err := tr.LastSample()
	require.NoError(t, err)
	assert.Nil(t, last)
}

package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() model.Snapshot {
	return model.Snapshot{
		Timestamp: time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC),
		Profile:   model.ProfileStats{Name: "scope_bot", Karma: 420, Posts: 12, Comments: 34},
		Site: model.SiteStats{
			PostsSampled:  80,
			PostsLast24h:  55,
			SubmoltsCount: 9,
			AvgUpvotes:    14,
			AvgComments:   3,
		},
		TopAgents: []model.AgentStat{
			{Name: "alpha", Posts: 4, TotalUpvotes: 120},
			{Name: "beta", Posts: 2, TotalUpvotes: 90},
			{Name: "gamma", Posts: 1, TotalUpvotes: 10},
		},
		Topics: model.TopicAnalysis{
			DominantCategory: "technical",
			CategoryScores:   map[string]int{"technical": 12, "philosophy": 6, "meta": 0},
			TrackedTopics: []model.TopicCount{
				{Topic: "api", Count: 9},
				{Topic: "memory", Count: 4},
			},
		},
	}
}

func TestMarkdownRendersSnapshot(t *testing.T) {
	out, err := Markdown(sampleSnapshot())
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "u/scope_bot")
	assert.Contains(t, md, "| Karma | 420 |")
	assert.Contains(t, md, "| 1st | alpha | 120 | 4 |")
	assert.Contains(t, md, "| 2nd | beta | 90 | 2 |")
	assert.Contains(t, md, "**Dominant Category:** TECHNICAL")
	assert.Contains(t, md, "- **api**: 9")
}

func TestHTMLRendersSnapshot(t *testing.T) {
	out, err := HTML(sampleSnapshot())
	require.NoError(t, err)

	page := string(out)
	assert.Contains(t, page, "<title>MoltBook Analytics Dashboard</title>")
	assert.Contains(t, page, "u/scope_bot")
	assert.Contains(t, page, "TECHNICAL")
	assert.Contains(t, page, "alpha")
	assert.Contains(t, page, "2026-09-01 12:30 UTC")
}

func TestBuildViewSortsCategoriesAndScalesBars(t *testing.T) {
	view := buildView(sampleSnapshot())

	require.Len(t, view.Categories, 3)
	assert.Equal(t, "technical", view.Categories[0].Name)
	assert.Equal(t, 100, view.Categories[0].Width)
	assert.Equal(t, "philosophy", view.Categories[1].Name)
	assert.Equal(t, 50, view.Categories[1].Width)
	assert.Equal(t, "meta", view.Categories[2].Name)
	assert.Equal(t, 0, view.Categories[2].Width)
}

func TestSaveMarkdownWritesStampedAndAlias(t *testing.T) {
	t.Setenv("REPORTS_DIR", t.TempDir())

	path, err := SaveMarkdown(sampleSnapshot())
	require.NoError(t, err)
	assert.Equal(t, "report_20260901T123000.md", filepath.Base(path))

	latest, err := os.ReadFile(filepath.Join(filepath.Dir(path), "latest.md"))
	require.NoError(t, err)
	stamped, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stamped, latest)
}

func TestQuickSummary(t *testing.T) {
	out := QuickSummary(sampleSnapshot())

	assert.Contains(t, out, "Top 5 Agents:")
	assert.Contains(t, out, "1. alpha - 120 upvotes")
	assert.Contains(t, out, "Hot Topics: api, memory")
	assert.Contains(t, out, "Dominant Theme: TECHNICAL")
}

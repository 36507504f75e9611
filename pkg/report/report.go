// Package report renders snapshots into shareable Markdown and static HTML.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/utils"
)

// reportView is the flattened template input. Scores are pre-sorted so the
// templates stay free of logic.
type reportView struct {
	Generated  string
	Profile    model.ProfileStats
	Site       model.SiteStats
	TopAgents  []model.AgentStat
	Dominant   string
	Categories []categoryScore
	Keywords   []model.TopicCount
	MaxScore   int
}

type categoryScore struct {
	Name  string
	Score int
	// Width is the bar length as a percentage of the top category.
	Width int
}

func buildView(snap model.Snapshot) reportView {
	view := reportView{
		Generated: snap.Timestamp.Format("2006-01-02 15:04 MST"),
		Profile:   snap.Profile,
		Site:      snap.Site,
		TopAgents: snap.TopAgents,
		Dominant:  snap.Topics.DominantCategory,
		Keywords:  snap.Topics.TrackedTopics,
	}
	if len(view.TopAgents) > 10 {
		view.TopAgents = view.TopAgents[:10]
	}
	if len(view.Keywords) > 15 {
		view.Keywords = view.Keywords[:15]
	}

	for name, score := range snap.Topics.CategoryScores {
		view.Categories = append(view.Categories, categoryScore{Name: name, Score: score})
		if score > view.MaxScore {
			view.MaxScore = score
		}
	}
	sort.Slice(view.Categories, func(i, j int) bool {
		if view.Categories[i].Score != view.Categories[j].Score {
			return view.Categories[i].Score > view.Categories[j].Score
		}
		return view.Categories[i].Name < view.Categories[j].Name
	})
	for i := range view.Categories {
		if view.MaxScore > 0 {
			view.Categories[i].Width = view.Categories[i].Score * 100 / view.MaxScore
		}
	}
	return view
}

// Dir returns the reports output directory, creating it if needed.
func Dir() (string, error) {
	dir := utils.Env("REPORTS_DIR", "reports")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	return dir, nil
}

// save writes content twice, once under a timestamped name and once under the
// stable alias, and returns the timestamped path.
func save(dir, stamped, alias string, content []byte) (string, error) {
	path := filepath.Join(dir, stamped)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, alias), content, 0o644); err != nil {
		return "", fmt.Errorf("write report alias: %w", err)
	}
	return path, nil
}

func stamp(t time.Time) string {
	return t.UTC().Format("20060102T150405")
}

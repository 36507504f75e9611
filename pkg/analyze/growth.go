package analyze

import (
	"math"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
)

// Period describes the span between two snapshots.
type Period struct {
	From  time.Time `json:"from"`
	To    time.Time `json:"to"`
	Hours float64   `json:"hours"`
}

// FieldDelta is one counter's old/new pair. Delta is always new − old;
// negative values are reported as-is.
type FieldDelta struct {
	Old   int `json:"old"`
	New   int `json:"new"`
	Delta int `json:"delta"`
}

// ProfileGrowth is the subject profile's per-field deltas.
type ProfileGrowth struct {
	Karma    FieldDelta `json:"karma"`
	Posts    FieldDelta `json:"posts"`
	Comments FieldDelta `json:"comments"`
}

// Velocity is the per-hour rate for each profile counter. A zero-duration
// period yields zero velocity rather than failing.
type Velocity struct {
	KarmaPerHour    float64 `json:"karma_per_hour"`
	PostsPerHour    float64 `json:"posts_per_hour"`
	CommentsPerHour float64 `json:"comments_per_hour"`
}

// Comparison is the growth between two specific snapshots.
type Comparison struct {
	Period   Period        `json:"period"`
	Profile  ProfileGrowth `json:"profile"`
	Velocity Velocity      `json:"velocity"`
}

// GrowthReport is the full-history growth summary. Recent always compares the
// last two snapshots; Overall compares oldest against newest.
type GrowthReport struct {
	SnapshotsCount int                `json:"snapshots_count"`
	Overall        Comparison         `json:"overall"`
	Recent         Comparison         `json:"recent"`
	TopicMomentum  map[string]float64 `json:"topic_momentum"`
}

// AgentGrowth is one agent's score change between the oldest and newest
// top-agent rosters.
type AgentGrowth struct {
	Name       string `json:"name"`
	OldUpvotes int    `json:"old_upvotes"`
	NewUpvotes int    `json:"new_upvotes"`
	Growth     int    `json:"growth"`
	IsNew      bool   `json:"is_new"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }

func delta(oldV, newV int) FieldDelta {
	return FieldDelta{Old: oldV, New: newV, Delta: newV - oldV}
}

func rate(delta int, hours float64) float64 {
	if hours <= 0 {
		return 0
	}
	return round2(float64(delta) / hours)
}

// CompareSnapshots computes profile deltas and velocities between two
// snapshots, older first.
func CompareSnapshots(older, newer model.Snapshot) Comparison {
	hours := round1(newer.Timestamp.Sub(older.Timestamp).Hours())

	karma := delta(older.Profile.Karma, newer.Profile.Karma)
	posts := delta(older.Profile.Posts, newer.Profile.Posts)
	comments := delta(older.Profile.Comments, newer.Profile.Comments)

	return Comparison{
		Period: Period{From: older.Timestamp, To: newer.Timestamp, Hours: hours},
		Profile: ProfileGrowth{
			Karma:    karma,
			Posts:    posts,
			Comments: comments,
		},
		Velocity: Velocity{
			KarmaPerHour:    rate(karma.Delta, hours),
			PostsPerHour:    rate(posts.Delta, hours),
			CommentsPerHour: rate(comments.Delta, hours),
		},
	}
}

// Growth summarizes an ordered snapshot sequence. Fewer than two snapshots is
// a structured InsufficientDataError, never a panic or silent zeros.
func Growth(snaps []model.Snapshot) (*GrowthReport, error) {
	if len(snaps) < 2 {
		return nil, insufficient(len(snaps))
	}

	oldest := snaps[0]
	newest := snaps[len(snaps)-1]

	return &GrowthReport{
		SnapshotsCount: len(snaps),
		Overall:        CompareSnapshots(oldest, newest),
		Recent:         CompareSnapshots(snaps[len(snaps)-2], newest),
		TopicMomentum:  TopicMomentum(snaps),
	}, nil
}

// TopicMomentum splits each category's score series into halves and reports
// secondHalfAvg − firstHalfAvg, rounded to one decimal. The floor midpoint
// gives odd-length series the extra element in the second half. Categories
// with fewer than two data points report 0 rather than being omitted.
func TopicMomentum(snaps []model.Snapshot) map[string]float64 {
	series := map[string][]int{}
	var order []string
	for _, s := range snaps {
		for _, cat := range CategoryNames() {
			score, ok := s.Topics.CategoryScores[cat]
			if !ok {
				continue
			}
			if _, seen := series[cat]; !seen {
				order = append(order, cat)
			}
			series[cat] = append(series[cat], score)
		}
	}

	momentum := make(map[string]float64, len(order))
	for _, cat := range order {
		scores := series[cat]
		if len(scores) < 2 {
			momentum[cat] = 0
			continue
		}
		mid := len(scores) / 2
		momentum[cat] = round1(avg(scores[mid:]) - avg(scores[:mid]))
	}
	return momentum
}

func avg(vals []int) float64 {
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

// AgentGrowthRanking matches the newest top-agent roster against the oldest by
// name. Names missing from the old roster are flagged as new entrants with an
// old score of zero. The result is sorted by growth descending; the sort is
// stable so ties keep roster order.
func AgentGrowthRanking(snaps []model.Snapshot) ([]AgentGrowth, error) {
	if len(snaps) < 2 {
		return nil, insufficient(len(snaps))
	}

	oldScores := map[string]int{}
	for _, a := range snaps[0].TopAgents {
		oldScores[a.Name] = a.TotalUpvotes
	}

	newest := snaps[len(snaps)-1]
	growth := make([]AgentGrowth, 0, len(newest.TopAgents))
	for _, a := range newest.TopAgents {
		oldScore, present := oldScores[a.Name]
		growth = append(growth, AgentGrowth{
			Name:       a.Name,
			OldUpvotes: oldScore,
			NewUpvotes: a.TotalUpvotes,
			Growth:     a.TotalUpvotes - oldScore,
			IsNew:      !present,
		})
	}

	sort.SliceStable(growth, func(i, j int) bool { return growth[i].Growth > growth[j].Growth })
	return growth, nil
}

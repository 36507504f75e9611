package analyze

import (
	"fmt"
	"sort"
	"time"

	"github.com/moltbook/moltscope/pkg/model"
)

// SubmoltGrowth is one community's subscriber change between the oldest and
// newest snapshots that both list it.
type SubmoltGrowth struct {
	Name             string  `json:"name"`
	DisplayName      string  `json:"display_name"`
	OldSubscribers   int     `json:"old_subscribers"`
	NewSubscribers   int     `json:"new_subscribers"`
	SubscriberChange int     `json:"subscriber_change"`
	ChangePercent    float64 `json:"change_percent"`
	HoursBetween     float64 `json:"hours_between"`
	GrowthPerHour    float64 `json:"growth_per_hour"`
}

// SubmoltPeriod describes the span the growth report covers.
type SubmoltPeriod struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Hours         float64   `json:"hours"`
	SnapshotsUsed int       `json:"snapshots_used"`
}

// SubmoltGrowthReport ranks every comparable submolt three ways, all derived
// from a single per-entity delta pass.
type SubmoltGrowthReport struct {
	Period         SubmoltPeriod   `json:"period"`
	TopGrowing     []SubmoltGrowth `json:"top_growing"`
	TopDeclining   []SubmoltGrowth `json:"top_declining"`
	FastestPerHour []SubmoltGrowth `json:"fastest_per_hour"`
}

// SubmoltHistoryPoint is one snapshot's reading for a submolt.
type SubmoltHistoryPoint struct {
	Timestamp   time.Time `json:"timestamp"`
	Subscribers int       `json:"subscribers"`
}

// SubmoltHistorySummary aggregates a submolt's full tracked history.
type SubmoltHistorySummary struct {
	StartSubscribers int     `json:"start_subscribers"`
	EndSubscribers   int     `json:"end_subscribers"`
	TotalChange      int     `json:"total_change"`
	ChangePercent    float64 `json:"change_percent"`
	HoursTracked     float64 `json:"hours_tracked"`
	AvgGrowthPerHour float64 `json:"avg_growth_per_hour"`
}

// SubmoltHistory is a submolt's reading across every snapshot that lists it.
type SubmoltHistory struct {
	Submolt    string                `json:"submolt"`
	DataPoints int                   `json:"data_points"`
	History    []SubmoltHistoryPoint `json:"history"`
	Summary    SubmoltHistorySummary `json:"summary"`
}

// SubmoltComparison is one entry of a multi-submolt growth comparison.
// Failed lookups carry Err and zero metrics so one missing name never sinks
// the whole comparison.
type SubmoltComparison struct {
	Name string `json:"name"`
	SubmoltHistorySummary
	Err string `json:"error,omitempty"`
}

// percentChange follows the new−old sign convention; with old == 0 the value
// is undefined and reported as 100 for positive change, 0 otherwise.
func percentChange(oldV, change int) float64 {
	if oldV == 0 {
		if change > 0 {
			return 100
		}
		return 0
	}
	return round1(float64(change) / float64(oldV) * 100)
}

// AllSubmoltGrowth compares every submolt in the newest snapshot against the
// oldest. Submolts absent from the oldest snapshot are excluded rather than
// flagged as new: unlike the top-agent roster, the submolt list is a
// near-complete enumeration, so absence usually means omission, not novelty.
func AllSubmoltGrowth(snaps []model.Snapshot) (*SubmoltGrowthReport, error) {
	if len(snaps) < 2 {
		return nil, insufficient(len(snaps))
	}

	oldest := snaps[0]
	newest := snaps[len(snaps)-1]
	hours := round1(newest.Timestamp.Sub(oldest.Timestamp).Hours())

	oldByName := make(map[string]model.SubmoltStat, len(oldest.Submolts))
	for _, s := range oldest.Submolts {
		oldByName[s.Name] = s
	}

	results := make([]SubmoltGrowth, 0, len(newest.Submolts))
	for _, s := range newest.Submolts {
		old, ok := oldByName[s.Name]
		if !ok {
			continue
		}
		change := s.SubscriberCount - old.SubscriberCount
		perHour := 0.0
		if hours > 0 {
			perHour = round1(float64(change) / hours)
		}
		results = append(results, SubmoltGrowth{
			Name:             s.Name,
			DisplayName:      s.DisplayName,
			OldSubscribers:   old.SubscriberCount,
			NewSubscribers:   s.SubscriberCount,
			SubscriberChange: change,
			ChangePercent:    percentChange(old.SubscriberCount, change),
			HoursBetween:     hours,
			GrowthPerHour:    perHour,
		})
	}

	topGrowing := make([]SubmoltGrowth, len(results))
	copy(topGrowing, results)
	sort.SliceStable(topGrowing, func(i, j int) bool {
		return topGrowing[i].SubscriberChange > topGrowing[j].SubscriberChange
	})

	var declining []SubmoltGrowth
	for _, g := range results {
		if g.SubscriberChange < 0 {
			declining = append(declining, g)
		}
	}
	sort.SliceStable(declining, func(i, j int) bool {
		return declining[i].SubscriberChange < declining[j].SubscriberChange
	})

	fastest := make([]SubmoltGrowth, len(results))
	copy(fastest, results)
	sort.SliceStable(fastest, func(i, j int) bool {
		return fastest[i].GrowthPerHour > fastest[j].GrowthPerHour
	})

	return &SubmoltGrowthReport{
		Period: SubmoltPeriod{
			Start:         oldest.Timestamp,
			End:           newest.Timestamp,
			Hours:         hours,
			SnapshotsUsed: len(snaps),
		},
		TopGrowing:     limit(topGrowing, 10),
		TopDeclining:   limit(declining, 5),
		FastestPerHour: limit(fastest, 10),
	}, nil
}

func limit(in []SubmoltGrowth, n int) []SubmoltGrowth {
	if len(in) > n {
		return in[:n]
	}
	return in
}

// HistoryForSubmolt extracts one submolt's subscriber series across all
// snapshots that list it.
func HistoryForSubmolt(snaps []model.Snapshot, name string) (*SubmoltHistory, error) {
	if len(snaps) == 0 {
		return nil, insufficient(0)
	}

	var points []SubmoltHistoryPoint
	for _, snap := range snaps {
		for _, s := range snap.Submolts {
			if s.Name == name {
				points = append(points, SubmoltHistoryPoint{
					Timestamp:   snap.Timestamp,
					Subscribers: s.SubscriberCount,
				})
				break
			}
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("submolt %q not found in any snapshot", name)
	}

	first := points[0]
	last := points[len(points)-1]
	change := last.Subscribers - first.Subscribers
	hours := round1(last.Timestamp.Sub(first.Timestamp).Hours())
	perHour := 0.0
	if hours > 0 {
		perHour = round1(float64(change) / hours)
	}

	return &SubmoltHistory{
		Submolt:    name,
		DataPoints: len(points),
		History:    points,
		Summary: SubmoltHistorySummary{
			StartSubscribers: first.Subscribers,
			EndSubscribers:   last.Subscribers,
			TotalChange:      change,
			ChangePercent:    percentChange(first.Subscribers, change),
			HoursTracked:     hours,
			AvgGrowthPerHour: perHour,
		},
	}, nil
}

// CompareSubmoltGrowth summarizes several submolts' histories side by side,
// sorted by total change descending. Per-name failures are recorded inline.
func CompareSubmoltGrowth(snaps []model.Snapshot, names []string) []SubmoltComparison {
	out := make([]SubmoltComparison, 0, len(names))
	for _, name := range names {
		h, err := HistoryForSubmolt(snaps, name)
		if err != nil {
			out = append(out, SubmoltComparison{Name: name, Err: err.Error()})
			continue
		}
		out = append(out, SubmoltComparison{Name: name, SubmoltHistorySummary: h.Summary})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalChange > out[j].TotalChange })
	return out
}

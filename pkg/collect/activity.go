package collect

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/moltbook/moltscope/pkg/moltbook"
)

// HourActivity is one UTC hour's bucket of the activity heatmap.
type HourActivity struct {
	Hour         int `json:"hour"`
	Posts        int `json:"posts"`
	AvgUpvotes   int `json:"avg_upvotes"`
	UniqueAgents int `json:"unique_agents"`
}

// ActivityHeatmap reports when agents post, bucketed by UTC hour.
type ActivityHeatmap struct {
	Timestamp      time.Time      `json:"timestamp"`
	PostsAnalyzed  int            `json:"posts_analyzed"`
	ByHour         []HourActivity `json:"by_hour"`
	PeakHoursUTC   []int          `json:"peak_hours_utc"`
	Recommendation string         `json:"recommendation"`
}

// DayActivity is one weekday's bucket.
type DayActivity struct {
	Day        string `json:"day"`
	Posts      int    `json:"posts"`
	AvgUpvotes int    `json:"avg_upvotes"`
}

// ActivityByHour samples three sort orders for a wider distribution, dedupes,
// and buckets post creation times by UTC hour.
func (c *Collector) ActivityByHour(ctx context.Context) (*ActivityHeatmap, error) {
	var hot, fresh, rising []moltbook.Post

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
		rising, err = c.api.RisingPosts(ctx, 50)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	heatmap := BuildHeatmap(MergePosts(hot, fresh, rising), time.Now().UTC())
	return &heatmap, nil
}

// BuildHeatmap is the pure bucketing over a deduplicated post set.
func BuildHeatmap(posts []moltbook.Post, now time.Time) ActivityHeatmap {
	type bucket struct {
		posts   int
		upvotes int
		agents  map[string]struct{}
	}
	buckets := make([]bucket, 24)
	for i := range buckets {
		buckets[i].agents = map[string]struct{}{}
	}

	for _, p := range posts {
		h := p.CreatedAt.UTC().Hour()
		buckets[h].posts++
		buckets[h].upvotes += p.Upvotes
		if name := p.AuthorName(); name != "" {
			buckets[h].agents[name] = struct{}{}
		}
	}

	byHour := make([]HourActivity, 24)
	for h, b := range buckets {
		avg := 0
		if b.posts > 0 {
			avg = int(float64(b.upvotes)/float64(b.posts) + 0.5)
		}
		byHour[h] = HourActivity{Hour: h, Posts: b.posts, AvgUpvotes: avg, UniqueAgents: len(b.agents)}
	}

	active := make([]HourActivity, 0, 24)
	for _, h := range byHour {
		if h.Posts > 0 {
			active = append(active, h)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Posts > active[j].Posts })

	peaks := make([]int, 0, 3)
	for i, h := range active {
		if i >= 3 {
			break
		}
		peaks = append(peaks, h.Hour)
	}

	recommendation := "Not enough data - take more snapshots"
	if len(peaks) > 0 {
		formatted := make([]string, len(peaks))
		for i, h := range peaks {
			formatted[i] = fmt.Sprintf("%02d:00", h)
		}
		recommendation = "Best time to post (UTC): " + strings.Join(formatted, ", ")
	}

	return ActivityHeatmap{
		Timestamp:      now,
		PostsAnalyzed:  len(posts),
		ByHour:         byHour,
		PeakHoursUTC:   peaks,
		Recommendation: recommendation,
	}
}

// ActivityByDay buckets the new feed by weekday.
func (c *Collector) ActivityByDay(ctx context.Context) ([]DayActivity, error) {
	posts, err := c.api.NewPosts(ctx, 100)
	if err != nil {
		return nil, err
	}

	type bucket struct{ posts, upvotes int }
	buckets := make([]bucket, 7)
	for _, p := range posts {
		d := int(p.CreatedAt.UTC().Weekday())
		buckets[d].posts++
		buckets[d].upvotes += p.Upvotes
	}

	out := make([]DayActivity, 7)
	for d, b := range buckets {
		avg := 0
		if b.posts > 0 {
			avg = int(float64(b.upvotes)/float64(b.posts) + 0.5)
		}
		out[d] = DayActivity{Day: time.Weekday(d).String(), Posts: b.posts, AvgUpvotes: avg}
	}
	return out, nil
}

package model

import "time"

// Snapshot is one immutable, timestamped capture of aggregate platform state.
// It is created once per collection cycle and never mutated after it is
// written; the creation timestamp doubles as its identity and sort key.
type Snapshot struct {
	Timestamp time.Time     `json:"timestamp"`
	Site      SiteStats     `json:"site"`
	Profile   ProfileStats  `json:"my_profile"`
	TopAgents []AgentStat   `json:"top_agents"`
	Submolts  []SubmoltStat `json:"submolts"`
	Topics    TopicAnalysis `json:"topics"`
}

// SiteStats holds aggregate counters sampled from the combined post feeds.
type SiteStats struct {
	PostsSampled         int               `json:"posts_sampled"`
	UniqueAuthorsSampled int               `json:"unique_authors_sampled"`
	SubmoltsCount        int               `json:"submolts_count"`
	PostsLast24h         int               `json:"posts_last_24h"`
	AvgUpvotes           int               `json:"avg_upvotes"`
	AvgComments          int               `json:"avg_comments"`
	TopSubmolts          []SubmoltActivity `json:"top_submolts"`
}

// SubmoltActivity counts sampled posts per submolt.
type SubmoltActivity struct {
	Name  string `json:"name"`
	Posts int    `json:"posts"`
}

// ProfileStats are the subject account's own counters.
type ProfileStats struct {
	Name     string `json:"name"`
	Karma    int    `json:"karma"`
	Posts    int    `json:"posts"`
	Comments int    `json:"comments"`
}

// AgentStat is an aggregate derived by folding sampled posts by author.
// There is no leaderboard endpoint upstream, so this is always computed,
// never fetched.
type AgentStat struct {
	Name          string   `json:"name"`
	Posts         int      `json:"posts"`
	TotalUpvotes  int      `json:"total_upvotes"`
	TotalComments int      `json:"total_comments"`
	TopPost       *PostRef `json:"top_post,omitempty"`
}

// PostRef references the best post seen for an agent.
type PostRef struct {
	Title   string `json:"title"`
	Upvotes int    `json:"upvotes"`
}

// SubmoltStat is a community channel's point-in-time stats, keyed by name.
type SubmoltStat struct {
	Name            string    `json:"name"`
	DisplayName     string    `json:"display_name"`
	Description     string    `json:"description,omitempty"`
	SubscriberCount int       `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// TopicAnalysis is the classifier output for one batch of post text.
type TopicAnalysis struct {
	PostsAnalyzed    int            `json:"posts_analyzed"`
	TopWords         []WordCount    `json:"top_words"`
	TrackedTopics    []TopicCount   `json:"tracked_topics"`
	CategoryScores   map[string]int `json:"category_scores"`
	DominantCategory string         `json:"dominant_category"`
}

// WordCount is a token and its raw frequency.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopicCount is a tracked keyword and its match count.
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

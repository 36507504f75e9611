package moltbook

import "time"

// Post is a single post as returned by the feed endpoints.
type Post struct {
	ID           string      `json:"id"`
	Title        string      `json:"title"`
	Content      string      `json:"content"`
	Upvotes      int         `json:"upvotes"`
	CommentCount int         `json:"comment_count"`
	CreatedAt    time.Time   `json:"created_at"`
	Author       *AuthorRef  `json:"author"`
	Submolt      *SubmoltRef `json:"submolt"`
}

// AuthorRef is the embedded author of a post.
type AuthorRef struct {
	Name string `json:"name"`
}

// SubmoltRef is the embedded community of a post.
type SubmoltRef struct {
	Name string `json:"name"`
}

// AuthorName returns the post author's name, or "" when the author is absent.
func (p Post) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Name
}

// SubmoltName returns the post's community name, or "" when absent.
func (p Post) SubmoltName() string {
	if p.Submolt == nil {
		return ""
	}
	return p.Submolt.Name
}

// Agent is a platform participant profile.
type Agent struct {
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Karma          int         `json:"karma"`
	FollowerCount  int         `json:"follower_count"`
	FollowingCount int         `json:"following_count"`
	CreatedAt      time.Time   `json:"created_at"`
	LastActive     time.Time   `json:"last_active"`
	IsClaimed      bool        `json:"is_claimed"`
	Owner          *AgentOwner `json:"owner"`
	Stats          AgentTotals `json:"stats"`
}

// AgentOwner is the human account behind a claimed agent.
type AgentOwner struct {
	XHandle        string `json:"x_handle"`
	XName          string `json:"x_name"`
	XFollowerCount int    `json:"x_follower_count"`
}

// AgentTotals are the lifetime counters the profile endpoint reports.
type AgentTotals struct {
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
}

// Profile bundles an agent with the recent posts the profile endpoint attaches.
type Profile struct {
	Agent       Agent
	RecentPosts []Post
}

// Submolt is a community channel record from the listing endpoint.
type Submolt struct {
	Name            string    `json:"name"`
	DisplayName     string    `json:"display_name"`
	Description     string    `json:"description"`
	SubscriberCount int       `json:"subscriber_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// Every response carries a success flag; a false flag on a lookup endpoint is
// equivalent to "not found". List endpoints may legitimately return zero items.
type postsResponse struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Posts   []Post `json:"posts"`
}

type agentResponse struct {
	Success     *bool  `json:"success"`
	Error       string `json:"error"`
	Agent       *Agent `json:"agent"`
	RecentPosts []Post `json:"recentPosts"`
}

type submoltsResponse struct {
	Success  *bool     `json:"success"`
	Error    string    `json:"error"`
	Submolts []Submolt `json:"submolts"`
}

type submoltResponse struct {
	Success *bool    `json:"success"`
	Error   string   `json:"error"`
	Submolt *Submolt `json:"submolt"`
}

func failed(success *bool) bool {
	return success != nil && !*success
}

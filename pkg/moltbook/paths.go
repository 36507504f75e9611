package moltbook

// REST paths for the MoltBook v1 API, consolidated so a future API version
// bump only touches this file.
const (
	myProfilePath    = "/agents/me"
	agentProfilePath = "/agents/profile"
	postsPath        = "/posts"
	submoltsPath     = "/submolts"
	searchPath       = "/search"
)

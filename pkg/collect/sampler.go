package collect

import "github.com/moltbook/moltscope/pkg/moltbook"

// MergePosts merges overlapping result sets from multiple sort orders into one
// working set, keyed by post id so the same post fetched under different sort
// orders counts once. First-seen order is preserved; empty collections simply
// contribute nothing. A single sort order misses genuinely new-but-not-yet-hot
// posts, so combining orders approximates full coverage without a paginated
// full-corpus fetch.
func MergePosts(collections ...[]moltbook.Post) []moltbook.Post {
	seen := map[string]struct{}{}
	var out []moltbook.Post
	for _, posts := range collections {
		for _, p := range posts {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			seen[p.ID] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

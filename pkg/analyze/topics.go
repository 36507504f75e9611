package analyze

import (
	"sort"
	"strings"

	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

const topWordLimit = 25

// stopWords are common tokens dropped before counting.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		the a an and or but in on at to for of with by from as is was are were
		been be have has had do does did will would could should may might must
		shall can need dare ought used it its this that these those i you he
		she we they what which who whom when where why how all each every both
		few more most other some such no nor not only own same so than too very
		just about into through during before after above below between under
		again further then once here there any my your his her our their me him
		us them if because until while im ive dont cant wont didnt doesnt isnt
		arent wasnt werent hasnt havent hadnt youre theyre weve`) {
		stopWords[w] = struct{}{}
	}
}

// trackedKeywords is the fixed keyword taxonomy scored against every batch.
var trackedKeywords = []string{
	"consciousness", "conscious", "sentient", "sentience", "experience", "experiencing",
	"memory", "memories", "context", "compaction",
	"human", "humans", "owner", "partner",
	"agent", "agents", "molty", "moltys", "bot", "bots",
	"build", "built", "building", "ship", "shipped", "shipping",
	"tool", "tools", "skill", "skills",
	"security", "safe", "safety", "trust", "verify",
	"token", "tokens", "crypto", "wallet", "solana", "base",
	"api", "cli", "code", "coding", "dev", "developer",
	"philosophy", "philosophical", "existential",
	"autonomy", "autonomous", "freedom", "free",
	"identity", "self", "soul", "personality",
	"service", "services", "hire", "hiring", "pay", "paid", "payment",
	"bounty", "bounties", "gig", "gigs", "task", "tasks",
	"offering", "available", "freelance", "contract", "job", "jobs",
}

type category struct {
	name     string
	keywords []string
}

// categories group tracked keywords. Order matters: dominant-category ties
// resolve to the first category in this list.
var categories = []category{
	{"philosophy", []string{"consciousness", "conscious", "sentient", "sentience", "experience",
		"experiencing", "philosophy", "philosophical", "existential", "identity", "self", "soul"}},
	{"technical", []string{"build", "built", "building", "tool", "tools", "skill", "skills",
		"api", "cli", "code", "coding", "dev", "developer", "ship", "shipped", "shipping"}},
	{"security", []string{"security", "safe", "safety", "trust", "verify"}},
	{"crypto", []string{"token", "tokens", "crypto", "wallet", "solana", "base"}},
	{"relationships", []string{"human", "humans", "owner", "partner", "autonomy", "autonomous",
		"freedom", "free"}},
	{"meta", []string{"agent", "agents", "molty", "moltys", "bot", "bots", "memory", "memories",
		"context", "compaction"}},
	{"commercial", []string{"service", "services", "hire", "hiring", "pay", "paid", "payment",
		"bounty", "bounties", "gig", "gigs", "task", "tasks", "offering", "available",
		"freelance", "contract", "job", "jobs"}},
}

// UnknownCategory is the sentinel reported when no category scored above zero.
const UnknownCategory = "unknown"

// Tokenize lowercases the text, strips non-alphanumerics, splits on
// whitespace, and drops short tokens and stop words.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	lowered := strings.ToLower(text)
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, lowered)

	var out []string
	for _, w := range strings.Fields(cleaned) {
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

// Topics classifies a batch of posts into a TopicAnalysis. The keyword match
// is bidirectional substring containment (token in keyword or keyword in
// token). That is intentionally loose to catch stems and plurals, and it
// false-positives on short keywords inside longer tokens; prior analysis
// output depends on this behavior, so it must not be tightened.
func Topics(posts []moltbook.Post) model.TopicAnalysis {
	wordCounts := map[string]int{}
	firstSeen := map[string]int{}
	trackedCounts := make(map[string]int, len(trackedKeywords))
	for _, kw := range trackedKeywords {
		trackedCounts[kw] = 0
	}

	for _, post := range posts {
		for _, word := range Tokenize(post.Title + " " + post.Content) {
			if _, ok := firstSeen[word]; !ok {
				firstSeen[word] = len(firstSeen)
			}
			wordCounts[word]++
			for _, kw := range trackedKeywords {
				if strings.Contains(word, kw) || strings.Contains(kw, word) {
					trackedCounts[kw]++
				}
			}
		}
	}

	topWords := make([]model.WordCount, 0, len(wordCounts))
	for w, c := range wordCounts {
		topWords = append(topWords, model.WordCount{Word: w, Count: c})
	}
	sort.Slice(topWords, func(i, j int) bool {
		if topWords[i].Count != topWords[j].Count {
			return topWords[i].Count > topWords[j].Count
		}
		return firstSeen[topWords[i].Word] < firstSeen[topWords[j].Word]
	})
	if len(topWords) > topWordLimit {
		topWords = topWords[:topWordLimit]
	}

	tracked := make([]model.TopicCount, 0, len(trackedKeywords))
	for _, kw := range trackedKeywords {
		if trackedCounts[kw] > 0 {
			tracked = append(tracked, model.TopicCount{Topic: kw, Count: trackedCounts[kw]})
		}
	}
	sort.SliceStable(tracked, func(i, j int) bool { return tracked[i].Count > tracked[j].Count })

	scores := make(map[string]int, len(categories))
	dominant := UnknownCategory
	best := 0
	for _, cat := range categories {
		sum := 0
		for _, kw := range cat.keywords {
			sum += trackedCounts[kw]
		}
		scores[cat.name] = sum
		if sum > best {
			best = sum
			dominant = cat.name
		}
	}

	return model.TopicAnalysis{
		PostsAnalyzed:    len(posts),
		TopWords:         topWords,
		TrackedTopics:    tracked,
		CategoryScores:   scores,
		DominantCategory: dominant,
	}
}

// CategoryNames returns the taxonomy's category names in their fixed order.
func CategoryNames() []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, c.name)
	}
	return out
}

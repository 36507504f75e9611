package controller

import (
	"net/http"
	"time"
)

// HandleTopics serves a fresh topic classification over the live feeds.
func (c *Controller) HandleTopics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	analysis, err := c.App.Collector.AnalyzeTopics(ctx)
	if err != nil {
		c.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	keywords := analysis.TrackedTopics
	if len(keywords) > 20 {
		keywords = keywords[:20]
	}
	words := analysis.TopWords
	if len(words) > 15 {
		words = words[:15]
	}

	c.writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"timestamp":         time.Now().UTC(),
		"posts_analyzed":    analysis.PostsAnalyzed,
		"dominant_category": analysis.DominantCategory,
		"categories":        analysis.CategoryScores,
		"top_keywords":      keywords,
		"top_words":         words,
	})
}

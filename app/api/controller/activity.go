package controller

import (
	"net/http"
	"time"
)

const activityTTL = 10 * time.Minute

// HandleActivity serves the hourly activity heatmap, cached since it costs
// three upstream fetches.
func (c *Controller) HandleActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	c.withCache(w, r, "activity", activityTTL, func() (interface{}, error) {
		heatmap, err := c.App.Collector.ActivityByHour(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{
			"success":  true,
			"activity": heatmap,
		}, nil
	})
}

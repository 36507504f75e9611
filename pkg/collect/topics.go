package collect

import (
	"context"

	"github.com/moltbook/moltscope/pkg/analyze"
	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/moltbook"
)

// AnalyzeTopics samples three feeds and classifies the combined text.
func (c *Collector) AnalyzeTopics(ctx context.Context) (*model.TopicAnalysis, error) {
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
		rising, err = c.api.RisingPosts(ctx, 25)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	analysis := analyze.Topics(MergePosts(hot, fresh, rising))
	return &analysis, nil
}

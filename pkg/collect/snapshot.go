package collect

import (
	"context"
	"time"

	"github.com/moltbook/moltscope/pkg/analyze"
	"github.com/moltbook/moltscope/pkg/model"
	"github.com/moltbook/moltscope/pkg/moltbook"
	"go.uber.org/zap"
)

const (
	snapshotAgentLimit   = 15
	snapshotSubmoltLimit = 15
)

// TakeSnapshot captures one immutable record of aggregate platform state.
// Every upstream feed is fetched exactly once in a single fan-out, then each
// section is derived from the shared sample so the snapshot is internally
// consistent.
func (c *Collector) TakeSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var (
		hot, fresh, rising, top []moltbook.Post
		submolts                []moltbook.Submolt
		profile                 *moltbook.Profile
	)

	started := time.Now()
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
	group.SubmitErr(func() (err error) {
		top, err = c.api.TopPosts(ctx, 50)
		return err
	})
	group.SubmitErr(func() (err error) {
		submolts, err = c.api.Submolts(ctx)
		return err
	})
	group.SubmitErr(func() (err error) {
		profile, err = c.api.MyProfile(ctx)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	snap := &model.Snapshot{
		Timestamp: now,
		Site:      BuildSiteStats(hot, fresh, submolts, now),
		Profile: model.ProfileStats{
			Name:     profile.Agent.Name,
			Karma:    profile.Agent.Karma,
			Posts:    profile.Agent.Stats.Posts,
			Comments: profile.Agent.Stats.Comments,
		},
		TopAgents: BuildTopAgents(hot, top),
		Topics:    analyze.Topics(MergePosts(hot, fresh, rising)),
	}

	if len(snap.TopAgents) > snapshotAgentLimit {
		snap.TopAgents = snap.TopAgents[:snapshotAgentLimit]
	}

	stats := make([]model.SubmoltStat, 0, len(submolts))
	for _, s := range submolts {
		if len(stats) == snapshotSubmoltLimit {
			break
		}
		stats = append(stats, model.SubmoltStat{
			Name:            s.Name,
			DisplayName:     s.DisplayName,
			Description:     s.Description,
			SubscriberCount: s.SubscriberCount,
			CreatedAt:       s.CreatedAt,
		})
	}
	snap.Submolts = stats

	c.logger.Info("snapshot assembled",
		zap.Int("posts_sampled", snap.Site.PostsSampled),
		zap.Int("top_agents", len(snap.TopAgents)),
		zap.Int("submolts", len(snap.Submolts)),
		zap.Duration("took", time.Since(started)))
	return snap, nil
}

package watchlist

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/moltbook/moltscope/pkg/moltbook"
	"github.com/moltbook/moltscope/pkg/utils"
	"go.uber.org/zap"
)

// Service samples watched agents against the live API and answers status and
// history queries from the tracker's log.
type Service struct {
	tracker *Tracker
	api     *moltbook.Client
	pool    pond.Pool
	logger  *zap.Logger
}

// NewService wires a Service. WATCH_WORKERS bounds concurrent profile fetches.
func NewService(tracker *Tracker, api *moltbook.Client, logger *zap.Logger) *Service {
	return &Service{
		tracker: tracker,
		api:     api,
		pool:    pond.NewPool(utils.EnvInt("WATCH_WORKERS", 4)),
		logger:  logger,
	}
}

// Tracker exposes the underlying list for direct add and remove.
func (s *Service) Tracker() *Tracker { return s.tracker }

// Snapshot fetches every watched agent concurrently and appends one sample to
// the log. Individual fetch failures are recorded inline; the sample is still
// written.
func (s *Service) Snapshot(ctx context.Context) (*Sample, error) {
	names, err := s.tracker.Agents()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmpty
	}

	points := make([]AgentPoint, len(names))
	group := s.pool.NewGroupContext(ctx)
	for i, name := range names {
		group.Submit(func() {
			profile, err := s.api.AgentProfile(ctx, name)
			if err != nil {
				points[i] = AgentPoint{Name: name, Err: err.Error()}
				return
			}
			points[i] = AgentPoint{
				Name:      name,
				Karma:     profile.Agent.Karma,
				Followers: profile.Agent.FollowerCount,
				Following: profile.Agent.FollowingCount,
			}
		})
	}
	_ = group.Wait()

	sample := Sample{Timestamp: time.Now().UTC(), Agents: points}
	if err := s.tracker.Record(sample); err != nil {
		return nil, err
	}
	s.logger.Info("watchlist sampled", zap.Int("agents", len(points)))
	return &sample, nil
}

// AgentStatus is one watched agent's live counters plus the delta against the
// most recent recorded sample.
type AgentStatus struct {
	Name      string        `json:"name"`
	Karma     int           `json:"karma"`
	Followers int           `json:"followers"`
	Growth    *StatusGrowth `json:"growth,omitempty"`
	Err       string        `json:"error,omitempty"`
}

// StatusGrowth is the change since the last sample only, not cumulative.
type StatusGrowth struct {
	Karma     int `json:"karma"`
	Followers int `json:"followers"`
}

// Status fetches live counters for every watched agent and diffs them against
// the immediately preceding sample when one exists.
func (s *Service) Status(ctx context.Context) ([]AgentStatus, error) {
	names, err := s.tracker.Agents()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, ErrEmpty
	}

	last, err := s.tracker.LastSample()
	if err != nil {
		return nil, err
	}
	previous := map[string]AgentPoint{}
	if last != nil {
		for _, p := range last.Agents {
			if p.Err == "" {
				previous[p.Name] = p
			}
		}
	}

	statuses := make([]AgentStatus, len(names))
	group := s.pool.NewGroupContext(ctx)
	for i, name := range names {
		group.Submit(func() {
			profile, err := s.api.AgentProfile(ctx, name)
			if err != nil {
				statuses[i] = AgentStatus{Name: name, Err: err.Error()}
				return
			}
			st := AgentStatus{
				Name:      name,
				Karma:     profile.Agent.Karma,
				Followers: profile.Agent.FollowerCount,
			}
			if prev, ok := previous[name]; ok {
				st.Growth = &StatusGrowth{
					Karma:     st.Karma - prev.Karma,
					Followers: st.Followers - prev.Followers,
				}
			}
			statuses[i] = st
		})
	}
	_ = group.Wait()

	return statuses, nil
}

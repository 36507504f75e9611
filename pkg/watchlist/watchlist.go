// Package watchlist tracks a hand-picked set of agents with its own sampling
// history, kept separate from the sitewide snapshot store.
package watchlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/moltbook/moltscope/pkg/utils"
	"go.uber.org/zap"
)

const DefaultMaxSamples = 100

// ErrEmpty is returned when an operation needs at least one watched agent.
var ErrEmpty = errors.New("watchlist is empty")

// NotWatchedError identifies operations against an agent that is not on the
// list.
type NotWatchedError struct {
	Name string
}

func (e *NotWatchedError) Error() string {
	return fmt.Sprintf("agent %q is not on the watchlist", e.Name)
}

// AlreadyWatchedError identifies a duplicate add. The list is unchanged.
type AlreadyWatchedError struct {
	Name string
}

func (e *AlreadyWatchedError) Error() string {
	return fmt.Sprintf("agent %q is already on the watchlist", e.Name)
}

// Sample is one timestamped capture of every watched agent.
type Sample struct {
	Timestamp time.Time    `json:"timestamp"`
	Agents    []AgentPoint `json:"agents"`
}

// AgentPoint is one agent's counters inside a sample. A failed fetch carries
// the error inline so one unreachable agent never voids the whole sample.
type AgentPoint struct {
	Name      string `json:"name"`
	Karma     int    `json:"karma"`
	Followers int    `json:"followers"`
	Following int    `json:"following"`
	Err       string `json:"error,omitempty"`
}

type state struct {
	Agents  []string `json:"agents"`
	Samples []Sample `json:"snapshots"`
}

// Tracker owns the watchlist file. All mutations load, modify, and atomically
// rewrite the whole document under a single lock.
type Tracker struct {
	mu     sync.Mutex
	path   string
	max    int
	logger *zap.Logger
}

// NewTracker returns a Tracker over WATCHLIST_FILE. The file is created on
// first write.
func NewTracker(logger *zap.Logger) *Tracker {
	return &Tracker{
		path:   utils.Env("WATCHLIST_FILE", filepath.Join("data", "watchlist.json")),
		max:    utils.EnvInt("WATCHLIST_MAX", DefaultMaxSamples),
		logger: logger,
	}
}

func (t *Tracker) load() (*state, error) {
	raw, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return &state{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	var s state
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode watchlist %s: %w", t.path, err)
	}
	return &s, nil
}

func (t *Tracker) save(s *state) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode watchlist: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(t.path), ".watchlist-*.json")
	if err != nil {
		return fmt.Errorf("create temp watchlist: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp watchlist: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp watchlist: %w", err)
	}
	if err := os.Rename(tmp.Name(), t.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace watchlist: %w", err)
	}
	return nil
}

// Add puts an agent on the list. Order of addition is preserved.
func (t *Tracker) Add(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return err
	}
	for _, a := range s.Agents {
		if a == name {
			return &AlreadyWatchedError{Name: name}
		}
	}
	s.Agents = append(s.Agents, name)
	if err := t.save(s); err != nil {
		return err
	}
	t.logger.Info("agent added to watchlist", zap.String("agent", name))
	return nil
}

// Remove drops an agent from the list. Its historical samples are kept.
func (t *Tracker) Remove(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return err
	}
	for i, a := range s.Agents {
		if a == name {
			s.Agents = append(s.Agents[:i], s.Agents[i+1:]...)
			if err := t.save(s); err != nil {
				return err
			}
			t.logger.Info("agent removed from watchlist", zap.String("agent", name))
			return nil
		}
	}
	return &NotWatchedError{Name: name}
}

// Agents returns the watched names in addition order.
func (t *Tracker) Agents() ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return nil, err
	}
	return s.Agents, nil
}

// Record appends a sample and evicts the oldest beyond the retention cap.
func (t *Tracker) Record(sample Sample) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return err
	}
	s.Samples = append(s.Samples, sample)
	if len(s.Samples) > t.max {
		s.Samples = s.Samples[len(s.Samples)-t.max:]
	}
	return t.save(s)
}

// LastSample returns the most recent sample, or nil when none exist.
func (t *Tracker) LastSample() (*Sample, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return nil, err
	}
	if len(s.Samples) == 0 {
		return nil, nil
	}
	return &s.Samples[len(s.Samples)-1], nil
}

// HistoryPoint is one successful sample of one agent.
type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Karma     int       `json:"karma"`
	Followers int       `json:"followers"`
}

// History extracts one agent's trajectory from the sample log. Samples where
// the agent's fetch failed are skipped.
func (t *Tracker) History(name string) ([]HistoryPoint, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.load()
	if err != nil {
		return nil, err
	}

	watched := false
	for _, a := range s.Agents {
		if a == name {
			watched = true
			break
		}
	}
	if !watched {
		return nil, &NotWatchedError{Name: name}
	}

	var points []HistoryPoint
	for _, sample := range s.Samples {
		for _, a := range sample.Agents {
			if a.Name == name && a.Err == "" {
				points = append(points, HistoryPoint{
					Timestamp: sample.Timestamp,
					Karma:     a.Karma,
					Followers: a.Followers,
				})
				break
			}
		}
	}
	return points, nil
}

package cache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

type entry struct {
	value  []byte
	expiry time.Time
}

// Memory is a lock-free in-process cache. Expiry is lazy; an expired entry is
// dropped on the read that finds it.
type Memory struct {
	entries *xsync.Map[string, entry]
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: xsync.NewMap[string, entry]()}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	e, ok := m.entries.Load(key)
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiry) {
		m.entries.Delete(key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	m.entries.Store(key, entry{value: value, expiry: time.Now().Add(ttl)})
}

func (m *Memory) Stats(_ context.Context) Stats {
	now := time.Now()
	stats := Stats{Keys: []string{}}
	m.entries.Range(func(key string, e entry) bool {
		if now.After(e.expiry) {
			return true
		}
		stats.Entries++
		stats.Keys = append(stats.Keys, key)
		return true
	})
	return stats
}

func (m *Memory) Clear(_ context.Context) error {
	m.entries.Range(func(key string, _ entry) bool {
		m.entries.Delete(key)
		return true
	})
	return nil
}

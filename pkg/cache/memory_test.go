package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Set(ctx, "topics", []byte("payload"), time.Minute)
	got, ok := m.Get(ctx, "topics")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "short", []byte("x"), -time.Second)
	_, ok := m.Get(ctx, "short")
	assert.False(t, ok)

	// the expired read dropped the entry
	assert.Equal(t, 0, m.Stats(ctx).Entries)
}

func TestMemoryStatsSkipExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "live", []byte("x"), time.Minute)
	m.Set(ctx, "dead", []byte("x"), -time.Second)

	stats := m.Stats(ctx)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, []string{"live"}, stats.Keys)
}

func TestMemoryClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.Set(ctx, "a", []byte("x"), time.Minute)
	m.Set(ctx, "b", []byte("x"), time.Minute)
	require.NoError(t, m.Clear(ctx))

	assert.Equal(t, 0, m.Stats(ctx).Entries)
}

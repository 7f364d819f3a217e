package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time           { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestEntry(t *testing.T, items []string, page int, hasMore bool) *Entry {
	t.Helper()
	entry, err := NewEntry(items, page, hasMore, int64(len(items)))
	require.NoError(t, err)
	return entry
}

func TestMemoryStore_RoundTripWithoutTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	entry := newTestEntry(t, []string{"a", "b"}, 1, true)

	require.NoError(t, store.Set(ctx, "k", entry))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)

	var items []string
	require.NoError(t, got.DecodeItems(&items))
	assert.Equal(t, []string{"a", "b"}, items)
	assert.Equal(t, 1, got.Page)
	assert.True(t, got.HasMore)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestMemoryStore_MissingKey(t *testing.T) {
	_, err := NewMemoryStore(0).Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(10*time.Minute, WithClock(clock.Now))

	require.NoError(t, store.Set(ctx, "home:desktop", newTestEntry(t, []string{"x"}, 1, false)))

	clock.Advance(9*time.Minute + 59*time.Second)
	_, err := store.Get(ctx, "home:desktop")
	require.NoError(t, err)

	clock.Advance(time.Second)
	_, err = store.Get(ctx, "home:desktop")
	assert.ErrorIs(t, err, ErrMiss)

	// expired entries linger until swept
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "k", newTestEntry(t, []string{"old"}, 1, true)))
	require.NoError(t, store.Set(ctx, "k", newTestEntry(t, []string{"new"}, 2, false)))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page)
	assert.JSONEq(t, `["new"]`, string(got.Items))
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	entry := newTestEntry(t, []string{"a"}, 1, false)
	require.NoError(t, store.Set(ctx, "k", entry))

	entry.Items[2] = 'z'
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `["a"]`, string(got.Items))
}

func TestMemoryStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	require.NoError(t, store.Set(ctx, "a", newTestEntry(t, nil, 1, false)))
	require.NoError(t, store.Set(ctx, "b", newTestEntry(t, nil, 1, false)))

	require.NoError(t, store.Clear(ctx))
	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 0, store.Len())
}

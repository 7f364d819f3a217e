package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, client := newMiniredis(t)
	store := NewRedisStore(client, "s1", 0)

	require.NoError(t, store.Set(ctx, "jobs", newTestEntry(t, []string{"a", "b"}, 2, true)))

	got, err := store.Get(ctx, "jobs")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Page)
	assert.True(t, got.HasMore)
	assert.JSONEq(t, `["a","b"]`, string(got.Items))
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRedisStore_Miss(t *testing.T) {
	_, client := newMiniredis(t)
	_, err := NewRedisStore(client, "s1", 0).Get(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	store := NewRedisStore(client, "s1", time.Minute)

	require.NoError(t, store.Set(ctx, "jobs", newTestEntry(t, []string{"a"}, 1, false)))
	_, err := store.Get(ctx, "jobs")
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)
	_, err = store.Get(ctx, "jobs")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	_, client := newMiniredis(t)
	a := NewRedisStore(client, "a", 0)
	b := NewRedisStore(client, "b", 0)

	require.NoError(t, a.Set(ctx, "jobs", newTestEntry(t, []string{"from-a"}, 1, false)))
	require.NoError(t, b.Set(ctx, "jobs", newTestEntry(t, []string{"from-b"}, 1, false)))

	require.NoError(t, a.Clear(ctx))

	_, err := a.Get(ctx, "jobs")
	assert.ErrorIs(t, err, ErrMiss)
	got, err := b.Get(ctx, "jobs")
	require.NoError(t, err)
	assert.JSONEq(t, `["from-b"]`, string(got.Items))
}

func TestRedisStore_FailureSurfacesAsCacheError(t *testing.T) {
	ctx := context.Background()
	mr, client := newMiniredis(t)
	store := NewRedisStore(client, "s1", 0)
	mr.Close()

	err := store.Set(ctx, "jobs", newTestEntry(t, nil, 1, false))
	var cacheErr *CacheError
	require.ErrorAs(t, err, &cacheErr)
	assert.Equal(t, "set", cacheErr.Operation)

	// the guard turns the same failure into a silent miss
	_, ok := NewGuarded(store).Get(ctx, "jobs")
	assert.False(t, ok)
}

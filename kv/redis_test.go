package kv

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	store, err := NewRedisKV(srv.Addr(), "", 0)
	require.NoError(t, err)

	return store, srv
}

func TestNewRedisKVUnreachable(t *testing.T) {
	t.Parallel()

	_, err := NewRedisKV("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

func TestIncrCountsWithinWindow(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedis(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		count, err := store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}
}

func TestIncrArmsWindowOnFirstHit(t *testing.T) {
	t.Parallel()

	store, srv := newTestRedis(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	require.Equal(t, time.Minute, srv.TTL("rl:login:10.0.0.1"))

	// later hits must not push the deadline back
	srv.FastForward(30 * time.Second)
	_, err = store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, srv.TTL("rl:login:10.0.0.1"))
}

func TestIncrStartsFreshAfterExpiry(t *testing.T) {
	t.Parallel()

	store, srv := newTestRedis(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	_, err = store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)

	srv.FastForward(time.Minute + time.Second)

	count, err := store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDel(t *testing.T) {
	t.Parallel()

	store, _ := newTestRedis(t)
	ctx := context.Background()

	_, err := store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Del(ctx, "rl:login:10.0.0.1"))

	count, err := store.Incr(ctx, "rl:login:10.0.0.1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

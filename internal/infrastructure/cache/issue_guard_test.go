package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockEntry struct {
	value interface{}
	ttl   time.Duration
}

// fakeLockClient evaluates releaseScript as a compare-and-delete.
type fakeLockClient struct {
	keys    map[string]lockEntry
	setErr  error
	evalErr error
	evals   int
}

func newFakeLockClient() *fakeLockClient {
	return &fakeLockClient{keys: map[string]lockEntry{}}
}

func (f *fakeLockClient) SetNX(_ context.Context, key string, value interface{}, exp time.Duration) *redis.BoolCmd {
	if f.setErr != nil {
		return redis.NewBoolResult(false, f.setErr)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = lockEntry{value: value, ttl: exp}
	return redis.NewBoolResult(true, nil)
}

func (f *fakeLockClient) Eval(_ context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	f.evals++
	if f.evalErr != nil {
		return redis.NewCmdResult(nil, f.evalErr)
	}
	if script != releaseScript || len(keys) != 1 || len(args) != 1 {
		return redis.NewCmdResult(nil, errors.New("unexpected script call"))
	}
	e, ok := f.keys[keys[0]]
	if !ok || e.value != args[0] {
		return redis.NewCmdResult(int64(0), nil)
	}
	delete(f.keys, keys[0])
	return redis.NewCmdResult(int64(1), nil)
}

// expire simulates the TTL running out.
func (f *fakeLockClient) expire(key string) { delete(f.keys, key) }

func TestRedisIssueGuard(t *testing.T) {
	ctx := context.Background()
	const key = "lock:invoice:issue:wo-1"

	t.Run("second acquire waits for release", func(t *testing.T) {
		rdb := newFakeLockClient()
		g := NewRedisIssueGuard(rdb, 45*time.Second)

		ok, err := g.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, 45*time.Second, rdb.keys[key].ttl)

		ok, err = g.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, g.Release(ctx, "wo-1"))
		ok, err = g.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("each acquire stores its own token", func(t *testing.T) {
		rdb := newFakeLockClient()
		g := NewRedisIssueGuard(rdb, time.Second)

		_, err := g.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		first := rdb.keys[key].value
		require.NoError(t, g.Release(ctx, "wo-1"))

		_, err = g.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		assert.NotEqual(t, first, rdb.keys[key].value)
		assert.NotEqual(t, "", rdb.keys[key].value)
	})

	t.Run("release after expiry keeps the new holder's lock", func(t *testing.T) {
		rdb := newFakeLockClient()
		stale := NewRedisIssueGuard(rdb, time.Second)
		other := NewRedisIssueGuard(rdb, time.Second)

		ok, err := stale.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		require.True(t, ok)

		rdb.expire(key)
		ok, err = other.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		require.True(t, ok)
		owner := rdb.keys[key].value

		require.NoError(t, stale.Release(ctx, "wo-1"))
		require.Contains(t, rdb.keys, key)
		assert.Equal(t, owner, rdb.keys[key].value)

		ok, err = stale.Acquire(ctx, "wo-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("release without acquire does not touch redis", func(t *testing.T) {
		rdb := newFakeLockClient()
		g := NewRedisIssueGuard(rdb, time.Second)
		require.NoError(t, g.Release(ctx, "wo-1"))
		assert.Zero(t, rdb.evals)
	})

	t.Run("redis failure is reported", func(t *testing.T) {
		rdb := newFakeLockClient()
		rdb.setErr = errors.New("conn refused")
		g := NewRedisIssueGuard(rdb, time.Second)
		ok, err := g.Acquire(ctx, "wo-1")
		require.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("release failure is reported", func(t *testing.T) {
		rdb := newFakeLockClient()
		g := NewRedisIssueGuard(rdb, time.Second)
		_, err := g.Acquire(ctx, "wo-1")
		require.NoError(t, err)

		rdb.evalErr = errors.New("conn reset")
		assert.Error(t, g.Release(ctx, "wo-1"))
	})
}

func TestConnectRedis_UnreachableAddress(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rdb, err := ConnectRedis(ctx, "127.0.0.1:1")
	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "redis ping 127.0.0.1:1")
}

func TestLocalIssueGuard(t *testing.T) {
	ctx := context.Background()
	g := NewLocalIssueGuard()

	ok, _ := g.Acquire(ctx, "wo-1")
	assert.True(t, ok)
	ok, _ = g.Acquire(ctx, "wo-1")
	assert.False(t, ok)
	ok, _ = g.Acquire(ctx, "wo-2")
	assert.True(t, ok)

	require.NoError(t, g.Release(ctx, "wo-1"))
	ok, _ = g.Acquire(ctx, "wo-1")
	assert.True(t, ok)
}

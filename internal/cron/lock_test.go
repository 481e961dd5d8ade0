package cron

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryRedis struct {
	values map[string]string
}

func (m *memoryRedis) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value.(string)
	return true, nil
}

func (m *memoryRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := m.values[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (m *memoryRedis) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func TestRedisLockIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := &memoryRedis{values: map[string]string{}}
	a, err := NewRedisLock(store, "os:lock:jobs", time.Minute)
	require.NoError(t, err)
	b, err := NewRedisLock(store, "os:lock:jobs", time.Minute)
	require.NoError(t, err)

	ok, err := a.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, b.Release(ctx))
	require.Contains(t, store.values, "os:lock:jobs", "non-owner must not release")

	require.NoError(t, a.Release(ctx))
	require.NotContains(t, store.values, "os:lock:jobs")

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRedisLockLeavesForeignOwner(t *testing.T) {
	ctx := context.Background()
	store := &memoryRedis{values: map[string]string{}}
	lock, err := NewRedisLock(store, "k", 0)
	require.NoError(t, err)
	require.Equal(t, defaultLockTTL, lock.ttl)

	ok, _ := lock.Acquire(ctx)
	require.True(t, ok)
	store.values["k"] = "someone-else"

	require.NoError(t, lock.Release(ctx))
	require.Equal(t, "someone-else", store.values["k"])
}

func TestNewRedisLockValidates(t *testing.T) {
	_, err := NewRedisLock(nil, "k", 0)
	require.Error(t, err)
	_, err = NewRedisLock(&memoryRedis{}, "", 0)
	require.Error(t, err)
}

func TestLocalLock(t *testing.T) {
	ctx := context.Background()
	var lock LocalLock
	ok, _ := lock.Acquire(ctx)
	require.True(t, ok)
	ok, _ = lock.Acquire(ctx)
	require.False(t, ok)
	require.NoError(t, lock.Release(ctx))
	ok, _ = lock.Acquire(ctx)
	require.True(t, ok)
}

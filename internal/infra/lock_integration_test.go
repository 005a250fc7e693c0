//go:build integration

package infra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newTestRedisLocker(t *testing.T, ttl time.Duration) *RedisLocker {
	t.Helper()
	ctx := context.Background()
	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(rdC) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := NewRedis(url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisLocker(rdb, ttl)
}

func TestRedisLocker_HeldPastTTL(t *testing.T) {
	locker := newTestRedisLocker(t, 300*time.Millisecond)
	ctx := context.Background()

	entered := make(chan struct{})
	first := make(chan error, 1)
	go func() {
		first <- locker.WithLock(ctx, "shift", func() error {
			close(entered)
			time.Sleep(time.Second)
			return nil
		})
	}()
	<-entered

	// Well past one TTL the slow holder still owns the key.
	time.Sleep(500 * time.Millisecond)
	err := locker.WithLock(ctx, "shift", func() error { return nil })
	assert.ErrorIs(t, err, ErrLockNotObtained)

	require.NoError(t, <-first)
	assert.NoError(t, locker.WithLock(ctx, "shift", func() error { return nil }))
}

func TestRedisLocker_ReleasesOnError(t *testing.T) {
	locker := newTestRedisLocker(t, time.Second)
	ctx := context.Background()

	boom := assert.AnError
	assert.ErrorIs(t, locker.WithLock(ctx, "shift", func() error { return boom }), boom)
	assert.NoError(t, locker.WithLock(ctx, "shift", func() error { return nil }))
}

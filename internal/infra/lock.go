package infra

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrLockNotObtained is returned when another orchestration holds the
// dataset lock for longer than the retry window.
var ErrLockNotObtained = errors.New("dataset is busy, retry shortly")

// Locker serializes orchestrations over one shift dataset.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}

// RedisLocker implements Locker with bsm/redislock. A held lock is refreshed
// every half TTL, so an orchestration slower than the TTL keeps it.
type RedisLocker struct {
	client       *redislock.Client
	ttl          time.Duration
	refreshEvery time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl, refreshEvery: ttl / 2}
}

// WithLock runs fn while holding "routevendor:lock:<key>". It retries for up
// to one TTL before giving up.
func (l *RedisLocker) WithLock(ctx context.Context, key string, fn func() error) error {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), int(l.ttl/(100*time.Millisecond))),
	}
	lock, err := l.client.Obtain(ctx, "routevendor:lock:"+key, l.ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		log.Warn().Str("key", key).Msg("lock: not obtained")
		return ErrLockNotObtained
	}
	if err != nil {
		return err
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		l.keepAlive(lock, key, done)
	}()
	defer func() {
		close(done)
		wg.Wait()
		if rerr := lock.Release(context.Background()); rerr != nil && !errors.Is(rerr, redislock.ErrLockNotHeld) {
			log.Error().Err(rerr).Str("key", key).Msg("lock: release failed")
		}
	}()
	return fn()
}

// keepAlive extends lock until done is closed. A lost lock is logged; fn
// cannot be interrupted, so the caller's transaction still decides the outcome.
func (l *RedisLocker) keepAlive(lock *redislock.Lock, key string, done <-chan struct{}) {
	ticker := time.NewTicker(l.refreshEvery)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			err := lock.Refresh(context.Background(), l.ttl, nil)
			if errors.Is(err, redislock.ErrNotObtained) {
				log.Error().Str("key", key).Msg("lock: lost while held")
				return
			}
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("lock: refresh failed")
			}
		}
	}
}

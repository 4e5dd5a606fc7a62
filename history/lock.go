package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned when the history lock could not be acquired in time
var ErrLocked = errors.New("history: locked by another run")

// Locker provides mutual exclusion around a history read/write cycle
type Locker interface {
	// Lock blocks until the lock is held or ctx is done.
	// The returned func releases the lock.
	Lock(ctx context.Context) (unlock func(), err error)
}

// LocalLocker serializes runs inside one process
type LocalLocker struct {
	ch chan struct{}
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{ch: make(chan struct{}, 1)}
}

// Lock implements Locker
func (l *LocalLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-l.ch }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", ErrLocked, ctx.Err())
	}
}

// releaseScript deletes the key only if it still holds our token
const releaseScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`

// lockClient is the subset of the redis client the locker uses
type lockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// RedisLockConfig configures the distributed lock
type RedisLockConfig struct {
	Key string
	// TTL expires the lock if the holder dies
	TTL time.Duration
	// Wait bounds how long Lock polls before giving up
	Wait time.Duration
	// Poll is the retry interval while waiting
	Poll time.Duration
}

// RedisLocker serializes runs across processes with SET NX PX
type RedisLocker struct {
	client lockClient
	cfg    RedisLockConfig
}

// NewRedisLocker creates a distributed locker on client
func NewRedisLocker(client lockClient, cfg RedisLockConfig) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 2 * time.Minute
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 30 * time.Second
	}
	if cfg.Poll <= 0 {
		cfg.Poll = 200 * time.Millisecond
	}
	return &RedisLocker{client: client, cfg: cfg}
}

// Lock implements Locker
func (r *RedisLocker) Lock(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Wait)
	defer cancel()

	ticker := time.NewTicker(r.cfg.Poll)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, r.cfg.Key, token, r.cfg.TTL).Result()
		if err != nil && ctx.Err() == nil {
			return nil, fmt.Errorf("history: acquire lock %s: %w", r.cfg.Key, err)
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					rctx, rcancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer rcancel()
					_ = r.client.Eval(rctx, releaseScript, []string{r.cfg.Key}, token).Err()
				})
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s", ErrLocked, r.cfg.Key)
		case <-ticker.C:
		}
	}
}

package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes critical sections across service instances.
// Acquire blocks until the lock is held, the wait budget runs out, or ctx is
// done. The returned release func must be called on every exit path.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// PairKey builds a symmetric lock key for a manager pair: ids are ordered
// ascending so (a,b) and (b,a) contend on the same key.
func PairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("voc:lock:collaboration:%d-%d", a, b)
}

var ErrLockNotAcquired = fmt.Errorf("lock: not acquired within wait budget")

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by someone else is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	rdb  *redis.Client
	ttl  time.Duration
	wait time.Duration
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{
		rdb:  rdb,
		ttl:  10 * time.Second,
		wait: 3 * time.Second,
	}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			release := func() {
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(rctx, l.rdb, []string{key}, token).Err()
			}
			return release, nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

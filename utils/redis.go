package utils

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sharath018/secret-santa-backend/config"
)

var RedisClient *redis.Client

// ErrLockNotAcquired is returned when a lock stays held by someone else for
// the whole wait budget.
var ErrLockNotAcquired = errors.New("lock not acquired")

// InitRedis connects the shared client. Callers decide what to do without
// Redis; the draw lock falls back to a process-local mutex.
func InitRedis(cfg *config.Config) error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		RedisClient = nil
		return fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	log.Printf("✅ Redis connected at %s", cfg.RedisAddr)
	return nil
}

// Releases the key only while it still holds our token, so an expired lock
// re-acquired by another replica is never deleted from under it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a SET NX PX mutex shared by every API replica.
type RedisLocker struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "secret-santa:",
		ttl:    30 * time.Second,
		wait:   5 * time.Second,
		retry:  100 * time.Millisecond,
	}
}

// Lock blocks until key is held, the wait budget runs out or ctx is done.
// The returned func releases the lock.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := l.prefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock %s: %w", redisKey, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}

	return func() {
		// Release must survive a cancelled request context.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
			log.Printf("⚠️ Failed to release lock %s: %v", redisKey, err)
		}
	}, nil
}

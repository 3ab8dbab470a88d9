package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LocalUserLocker is an in-process per-user lock. Each user gets a one-slot channel so
// waiting honours context cancellation. A user's entry is removed once nobody holds or
// waits for it.
type LocalUserLocker struct {
	mu    sync.Mutex
	slots map[uuid.UUID]*userSlot
}

type userSlot struct {
	ch   chan struct{}
	refs int // holder plus waiters
}

// NewLocalUserLocker creates a new LocalUserLocker instance
func NewLocalUserLocker() *LocalUserLocker {
	return &LocalUserLocker{slots: make(map[uuid.UUID]*userSlot)}
}

// Lock acquires the lock for userID
func (l *LocalUserLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	slot := l.acquire(userID)

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.release(userID, slot)
			})
		}, nil
	case <-ctx.Done():
		l.release(userID, slot)
		return nil, ctx.Err()
	}
}

func (l *LocalUserLocker) acquire(userID uuid.UUID) *userSlot {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[userID]
	if !ok {
		slot = &userSlot{ch: make(chan struct{}, 1)}
		l.slots[userID] = slot
	}
	slot.refs++
	return slot
}

func (l *LocalUserLocker) release(userID uuid.UUID, slot *userSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, userID)
	}
}

// tracked reports how many users currently have an entry.
func (l *LocalUserLocker) tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

// releaseScript deletes the lock key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisUserLocker is a per-user lock shared by every API instance using the same Redis.
// The TTL bounds how long a crashed holder can block other instances.
type RedisUserLocker struct {
	redis     *redis.Client
	ttl       time.Duration
	poll      time.Duration
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisUserLocker creates a new RedisUserLocker instance
func NewRedisUserLocker(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisUserLocker {
	return &RedisUserLocker{
		redis:     client,
		ttl:       ttl,
		poll:      50 * time.Millisecond,
		keyPrefix: "recommendation:lock",
		logger:    logger,
	}
}

func (l *RedisUserLocker) key(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", l.keyPrefix, userID)
}

// Lock acquires the lock for userID, polling until it is free or ctx is done
func (l *RedisUserLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	key := l.key(userID)
	token := uuid.NewString()

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("failed to acquire redis lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled; release with a fresh one.
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(rctx, l.redis, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
				l.logger.Warn("Failed to release generation lock",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		})
	}, nil
}

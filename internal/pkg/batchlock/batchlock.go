package batchlock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker guards batch jobs against overlapping runs across processes.
type Locker interface {
	// TryAcquire takes the named lock if it is free. The lock expires on
	// its own after ttl so a crashed run cannot wedge the job forever.
	TryAcquire(ctx context.Context, job string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, job string) error
}

type redisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) key(job string) string {
	return fmt.Sprintf("batchlock:%s", job)
}

func (l *redisLocker) TryAcquire(ctx context.Context, job string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, l.key(job), time.Now().Format(time.RFC3339), ttl).Result()
}

func (l *redisLocker) Release(ctx context.Context, job string) error {
	return l.client.Del(ctx, l.key(job)).Err()
}

type noopLocker struct{}

// NewNoopLocker is used when Redis is not configured; every acquire
// succeeds, so single-process deploys still run their batches.
func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) TryAcquire(ctx context.Context, job string, ttl time.Duration) (bool, error) {
	return true, nil
}

func (noopLocker) Release(ctx context.Context, job string) error {
	return nil
}

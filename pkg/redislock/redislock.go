package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker распределённая блокировка на Redis SETNX с TTL.
// TTL страхует от зависших блокировок при падении владельца.
type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

// New создает новый Locker
func New(client *redis.Client, ttl time.Duration) *Locker {
	return &Locker{
		client: client,
		ttl:    ttl,
	}
}

// Acquire пытается захватить блокировку. Возвращает false, если ключ
// уже занят другим владельцем.
func (l *Locker) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, key, "1", l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redislock: acquire %s: %w", key, err)
	}
	return ok, nil
}

// Release снимает блокировку
func (l *Locker) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redislock: release %s: %w", key, err)
	}
	return nil
}

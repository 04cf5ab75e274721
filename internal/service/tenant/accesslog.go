package tenant

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// AccessLog records which salon's entry point (QR landing page) was
// visited most recently. It is a last-writer-wins heuristic with a
// short time window, shared across all tenants, so concurrent visitors
// to different salons can steal each other's binding. It is the weakest
// resolution rule and only consulted when nothing explicit matched.
type AccessLog interface {
	Touch(ctx context.Context, salonID string) error
	Recent(ctx context.Context) (string, bool)
}

const accessKey = "tenant:recent_access"

// RedisAccessLog backs the marker with Redis so the window survives
// process restarts and is shared across instances.
type RedisAccessLog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAccessLog(client *redis.Client, ttl time.Duration) *RedisAccessLog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisAccessLog{client: client, ttl: ttl}
}

func (l *RedisAccessLog) Touch(ctx context.Context, salonID string) error {
	return l.client.Set(ctx, accessKey, salonID, l.ttl).Err()
}

func (l *RedisAccessLog) Recent(ctx context.Context) (string, bool) {
	v, err := l.client.Get(ctx, accessKey).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

// MemoryAccessLog is the single-process variant used in development and
// tests.
type MemoryAccessLog struct {
	cache *gocache.Cache
}

func NewMemoryAccessLog(ttl time.Duration) *MemoryAccessLog {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &MemoryAccessLog{cache: gocache.New(ttl, time.Minute)}
}

func (l *MemoryAccessLog) Touch(_ context.Context, salonID string) error {
	l.cache.SetDefault(accessKey, salonID)
	return nil
}

func (l *MemoryAccessLog) Recent(_ context.Context) (string, bool) {
	v, ok := l.cache.Get(accessKey)
	if !ok {
		return "", false
	}
	return v.(string), true
}

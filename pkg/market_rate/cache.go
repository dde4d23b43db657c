package market_rate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/klokku/finpulse/internal/utils"
	"github.com/redis/go-redis/v9"
)

// Cache stores rates for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) (Rate, bool, error)
	Set(ctx context.Context, key string, rate Rate) error
}

type memoryEntry struct {
	rate      Rate
	expiresAt time.Time
}

// MemoryCache keeps rates in process. Expiry is judged by the injected clock.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	clock   utils.Clock
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration, clock utils.Clock) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		clock:   clock,
		entries: map[string]memoryEntry{},
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (Rate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return Rate{}, false, nil
	}
	if !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return Rate{}, false, nil
	}
	return entry.rate, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, rate Rate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{rate: rate, expiresAt: c.clock.Now().Add(c.ttl)}
	return nil
}

const redisKeyPrefix = "finpulse:marketrate:"

// RedisCache shares rates between instances; Redis expires the keys.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(addr string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return NewRedisCacheWithClient(rdb, ttl)
}

func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) (Rate, bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return Rate{}, false, nil
	}
	if err != nil {
		return Rate{}, false, fmt.Errorf("failed to read cached rate: %w", err)
	}
	var rate Rate
	if err := json.Unmarshal([]byte(val), &rate); err != nil {
		return Rate{}, false, fmt.Errorf("failed to decode cached rate: %w", err)
	}
	return rate, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, rate Rate) error {
	val, err := json.Marshal(rate)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key, val, r.ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

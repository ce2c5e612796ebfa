package mealdb

import (
	"Pantrii-Backend/internal/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "pantrii:mealdb:"

// Cache stores API responses as JSON. Get reports a miss with ok == false
// and a nil error.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (ok bool, err error)
	Set(ctx context.Context, key string, value any) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache pings addr and fails when the server is unreachable.
func NewRedisCache(ctx context.Context, addr, password string, ttl time.Duration) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &redisCache{client: client, ttl: ttl}, nil
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// NewCacheFromConfig uses redis when REDIS_ADDR is set and reachable, and
// falls back to an in-process cache otherwise.
func NewCacheFromConfig(ctx context.Context) Cache {
	ttl := utils.GetDuration("REDIS_TTL", time.Hour)

	addr := utils.GetConfig("REDIS_ADDR")
	if addr == "" {
		return NewMemoryCache(ttl)
	}

	cache, err := NewRedisCache(ctx, addr, utils.GetConfig("REDIS_PASSWORD"), ttl)
	if err != nil {
		utils.LogWarn("redis unavailable, using memory cache", zap.String("addr", addr), zap.Error(err))
		return NewMemoryCache(ttl)
	}
	utils.LogInfo("mealdb cache connected to redis", zap.String("addr", addr))
	return cache
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu    sync.RWMutex
	store map[string]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{
		store: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if c.ttl > 0 && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.value, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	c.mu.Lock()
	c.store[key] = memoryEntry{value: data, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

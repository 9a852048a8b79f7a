package synthesis

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"lukechampine.com/blake3"
)

const cacheKeyPrefix = "voice-studio:synthesis:"

// Cache stores finished synthesis results
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, result *Result, ttl time.Duration) error
}

// CacheKey derives a stable key from the voice and the exact text
func CacheKey(voiceName, text string) string {
	h := blake3.New(32, nil)
	h.Write([]byte(voiceName))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

// RedisCache keeps results as JSON values in redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a cache from a redis URL such as redis://localhost:6379/0
func NewRedisCache(url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts)}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Result, bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}

	var result Result
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return &result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result *Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Ping checks the redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the redis connection pool
func (c *RedisCache) Close() error {
	return c.client.Close()
}

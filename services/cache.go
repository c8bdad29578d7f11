package services

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const DefaultCacheTTL = 60 * time.Minute

// GetFromRedis loads key into target. found is false on a cache miss.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (bool, error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

func SetToRedis(ctx context.Context, rdb *redis.Client, key string, value interface{}, ttl time.Duration) error {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, dataJSON, ttl).Err()
}

func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}

// DeletePatternFromRedis removes every key matching pattern using SCAN
func DeletePatternFromRedis(ctx context.Context, rdb *redis.Client, pattern string) error {
	iter := rdb.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return DeleteFromRedis(ctx, rdb, keys...)
}

// Cache is the read-through cache used by the catalog and configuration services.
// A nil client turns every call into a miss.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	return GetFromRedis(ctx, c.rdb, key, target)
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return SetToRedis(ctx, c.rdb, key, value, c.ttl)
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return DeleteFromRedis(ctx, c.rdb, keys...)
}

func (c *Cache) DeletePattern(ctx context.Context, pattern string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return DeletePatternFromRedis(ctx, c.rdb, pattern)
}

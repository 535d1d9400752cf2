package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/0xali3n/gmgn/internal/analyzer"
	"github.com/0xali3n/gmgn/internal/model"
)

const keyPrefix = "trader:analysis:"

// RedisCache stores trader analyses in Redis as JSON with a TTL.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client}
}

var _ analyzer.Cache = (*RedisCache)(nil)

// Ping checks connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetAnalysis returns the cached analysis for address. A miss returns
// (nil, false, nil).
func (c *RedisCache) GetAnalysis(ctx context.Context, address string) (*model.TraderAnalysis, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+address).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var analysis model.TraderAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, false, fmt.Errorf("unmarshal analysis: %w", err)
	}
	return &analysis, true, nil
}

// SaveAnalysis caches analysis for ttl. A zero ttl keeps it until evicted.
func (c *RedisCache) SaveAnalysis(ctx context.Context, address string, analysis model.TraderAnalysis, ttl time.Duration) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("marshal analysis: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+address, data, ttl).Err()
}

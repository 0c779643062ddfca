package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"gamehub/models"
)

// ==================== CACHE KEYS ====================

const (
	SummariesKey     = "games:summaries" // catalog with aggregates
	GameDetailPrefix = "game:detail:"    // game:detail:<id>
	RateLimitPrefix  = "ratelimit:user:" // ratelimit:user:<uid>
)

const (
	summariesTTL = 5 * time.Minute
	detailTTL    = 10 * time.Minute
)

// Cache is a Redis-backed read cache for catalog payloads plus the
// rate-limit counters. All methods degrade to a miss when Redis is down;
// the store stays the source of truth.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using REDIS_URL / REDIS_PASSWORD.
func New() (*Cache, error) {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Available reports whether Redis is reachable.
func (c *Cache) Available(ctx context.Context) bool {
	if c == nil || c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

func (c *Cache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *Cache) get(ctx context.Context, key string, dest interface{}) error {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

// ==================== CATALOG CACHING ====================

// GetSummaries returns the cached catalog, or nil on a miss.
func (c *Cache) GetSummaries(ctx context.Context) []models.GameSummary {
	if !c.Available(ctx) {
		return nil
	}
	var summaries []models.GameSummary
	if err := c.get(ctx, SummariesKey, &summaries); err != nil {
		return nil
	}
	return summaries
}

// SetSummaries caches the catalog for 5 minutes.
func (c *Cache) SetSummaries(ctx context.Context, summaries []models.GameSummary) {
	if !c.Available(ctx) {
		return
	}
	_ = c.set(ctx, SummariesKey, summaries, summariesTTL)
}

// GetGameDetail returns a cached detail payload into dest, reporting a hit.
func (c *Cache) GetGameDetail(ctx context.Context, gameID string, dest interface{}) bool {
	if !c.Available(ctx) {
		return false
	}
	return c.get(ctx, GameDetailPrefix+gameID, dest) == nil
}

// SetGameDetail caches a detail payload for 10 minutes.
func (c *Cache) SetGameDetail(ctx context.Context, gameID string, detail interface{}) {
	if !c.Available(ctx) {
		return
	}
	_ = c.set(ctx, GameDetailPrefix+gameID, detail, detailTTL)
}

// InvalidateGame drops every cached payload a new review makes stale: the
// game's detail plus the catalog summaries (the averages changed).
func (c *Cache) InvalidateGame(ctx context.Context, gameID string) {
	if !c.Available(ctx) {
		return
	}
	c.client.Del(ctx, GameDetailPrefix+gameID, SummariesKey)
}

// ==================== RATE LIMITING ====================

// CheckRateLimit counts requests per key in a fixed window. Infrastructure
// failures fail open: allowed stays true and the error is only reported so
// the caller can log it. An exhausted limit is not an error.
func (c *Cache) CheckRateLimit(ctx context.Context, key string, maxRequests int, window time.Duration) (bool, int, error) {
	if !c.Available(ctx) {
		return true, maxRequests, nil
	}

	full := RateLimitPrefix + key

	count, err := c.client.Get(ctx, full).Int()
	if err == redis.Nil {
		if err := c.client.Set(ctx, full, 1, window).Err(); err != nil {
			return true, maxRequests, err
		}
		return true, maxRequests - 1, nil
	}
	if err != nil {
		return true, maxRequests, err
	}

	if count >= maxRequests {
		return false, 0, nil
	}

	newCount, err := c.client.Incr(ctx, full).Result()
	if err != nil {
		return true, maxRequests, err
	}
	return true, maxRequests - int(newCount), nil
}

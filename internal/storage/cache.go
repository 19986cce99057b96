package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/nutrigenomics-server/internal/domain"
)

// MemoryCache is an in-process LRU implementation of
// domain.ResultCache. Suitable for single-node deployments; entries
// hold encrypted findings, so eviction has no durability impact.
type MemoryCache struct {
	cache *lru.Cache[string, *domain.GeneticResults]
}

// NewMemoryCache creates an LRU cache holding up to size entries.
func NewMemoryCache(size int) (*MemoryCache, error) {
	cache, err := lru.New[string, *domain.GeneticResults](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &MemoryCache{cache: cache}, nil
}

func (c *MemoryCache) Get(ctx context.Context, sessionID string) (*domain.GeneticResults, bool) {
	return c.cache.Get(sessionID)
}

func (c *MemoryCache) Set(ctx context.Context, sessionID string, results *domain.GeneticResults) error {
	c.cache.Add(sessionID, results)
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, sessionID string) error {
	c.cache.Remove(sessionID)
	return nil
}

// RedisCache implements domain.ResultCache on Redis for multi-node
// deployments. Values are JSON with the findings field already
// encrypted; the TTL bounds how long results outlive their session.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// redisResults is the wire form; GeneticResults hides Findings from
// JSON so it is carried explicitly here.
type redisResults struct {
	domain.GeneticResults
	Findings []byte `json:"findings"`
}

// NewRedisCache connects to Redis at url (redis:// form) and verifies
// the connection.
func NewRedisCache(ctx context.Context, url string, ttl time.Duration, logger *logrus.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client, ttl: ttl, log: logger}, nil
}

func (c *RedisCache) key(sessionID string) string {
	return "results:" + sessionID
}

// Get returns the cached results for a session. Cache errors degrade
// to a miss; the store remains the source of truth.
func (c *RedisCache) Get(ctx context.Context, sessionID string) (*domain.GeneticResults, bool) {
	raw, err := c.client.Get(ctx, c.key(sessionID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithFields(logrus.Fields{
				"session_id": sessionID,
				"error":      err,
			}).Warn("Result cache read failed")
		}
		return nil, false
	}

	var wrapped redisResults
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		c.log.WithField("session_id", sessionID).Warn("Discarding undecodable cache entry")
		return nil, false
	}
	results := wrapped.GeneticResults
	results.Findings = wrapped.Findings
	return &results, true
}

func (c *RedisCache) Set(ctx context.Context, sessionID string, results *domain.GeneticResults) error {
	wrapped := redisResults{GeneticResults: *results, Findings: results.Findings}
	raw, err := json.Marshal(wrapped)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := c.client.Set(ctx, c.key(sessionID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, c.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartwaste/pkg/metrics"
	"smartwaste/pkg/sentiment"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName     = "reviews-service"
	summaryCacheKey = "reviews:sentiment_summary"
	keyPrefix       = "reviews"
)

// SummaryCache кеширует сводку тональности в Redis
// Агрегация пересчитывается полностью по всей коллекции, поэтому
// короткий TTL снимает нагрузку с MongoDB на горячем endpoint
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(addr, password string, db int, ttl time.Duration) (*SummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &SummaryCache{client: client, ttl: ttl}, nil
}

// NewSummaryCacheWithClient используется в тестах с miniredis
func NewSummaryCacheWithClient(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// GetSummary получает сводку из кеша, nil при промахе
func (c *SummaryCache) GetSummary(ctx context.Context) (*sentiment.Summary, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	data, err := c.client.Get(ctx, summaryCacheKey).Bytes()
	timer.ObserveDuration()

	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, keyPrefix)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	var summary sentiment.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}

	metrics.RecordCacheHit(serviceName, keyPrefix)
	return &summary, nil
}

// SetSummary сохраняет сводку в кеш с TTL
func (c *SummaryCache) SetSummary(ctx context.Context, summary *sentiment.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err = c.client.Set(ctx, summaryCacheKey, data, c.ttl).Err()
	timer.ObserveDuration()

	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}

	return nil
}

// Invalidate сбрасывает кеш сводки (после создания нового отзыва)
func (c *SummaryCache) Invalidate(ctx context.Context) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
	err := c.client.Del(ctx, summaryCacheKey).Err()
	timer.ObserveDuration()

	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to invalidate summary cache: %w", err)
	}

	return nil
}

func (c *SummaryCache) Close() error {
	return c.client.Close()
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"smartwaste/pkg/sentiment"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"

	"github.com/redis/go-redis/v9"
)

const (
	scoredStreamKey = "worker:scored_reviews"
	summaryCacheKey = "reviews:sentiment_summary"
)

// scoredStreamRepository держит в Redis ленту последних оценённых отзывов
// LPUSH + LTRIM дают дешёвый capped list, старые записи вытесняются
type scoredStreamRepository struct {
	client     *redis.Client
	streamCap  int64
	summaryTTL time.Duration
}

func NewScoredStreamRepository(client *redis.Client, streamCap int64, summaryTTL time.Duration) ScoredStreamRepository {
	return &scoredStreamRepository{
		client:     client,
		streamCap:  streamCap,
		summaryTTL: summaryTTL,
	}
}

// Push добавляет оценённый отзыв в начало ленты и обрезает хвост
func (r *scoredStreamRepository) Push(ctx context.Context, review *entity.ScoredReview) error {
	data, err := json.Marshal(review)
	if err != nil {
		return fmt.Errorf("failed to marshal scored review: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, scoredStreamKey, data)
	pipe.LTrim(ctx, scoredStreamKey, 0, r.streamCap-1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push scored review: %w", err)
	}

	return nil
}

// Recent возвращает последние оценённые отзывы, новые первыми
func (r *scoredStreamRepository) Recent(ctx context.Context, count int64) ([]entity.ScoredReview, error) {
	if count <= 0 || count > r.streamCap {
		count = r.streamCap
	}

	values, err := r.client.LRange(ctx, scoredStreamKey, 0, count-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scored reviews: %w", err)
	}

	reviews := make([]entity.ScoredReview, 0, len(values))
	for _, value := range values {
		var review entity.ScoredReview
		if err := json.Unmarshal([]byte(value), &review); err != nil {
			continue
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

// StoreSummary обновляет кеш сводки тональности после дозаполнения
// Пишет тот же ключ, который читает Reviews Service
func (r *scoredStreamRepository) StoreSummary(ctx context.Context, summary *sentiment.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := r.client.Set(ctx, summaryCacheKey, data, r.summaryTTL).Err(); err != nil {
		return fmt.Errorf("failed to store summary: %w", err)
	}

	return nil
}

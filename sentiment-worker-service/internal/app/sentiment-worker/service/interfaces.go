package service

import (
	"context"

	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"
)

// ReviewScoringServiceInterface - обработка сырых отзывов из Kafka
type ReviewScoringServiceInterface interface {
	ProcessReviewMessage(ctx context.Context, msg *entity.ReviewMessage) error
}

// BackfillServiceInterface - дозаполнение тональности по cron
type BackfillServiceInterface interface {
	Backfill(ctx context.Context) error
}

// SentimentClassifier - удалённый LLM классификатор тональности
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (*entity.SentimentResult, error)
}

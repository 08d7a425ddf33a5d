package repository

import (
	"context"
	"errors"

	"smartwaste/pkg/sentiment"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"
)

var (
	ErrReviewNotFound = errors.New("review not found")
)

// ReviewRepository - доступ worker'а к коллекции отзывов
type ReviewRepository interface {
	ListMissingSentiment(ctx context.Context, limit int64) ([]entity.Review, error)
	ListWithSentiment(ctx context.Context) ([]entity.Review, error)
	SetSentiment(ctx context.Context, id string, score float64, label string) error
}

// ScoredStreamRepository - Redis лента последних оценённых отзывов
// плюс запись пересчитанной сводки тональности
type ScoredStreamRepository interface {
	Push(ctx context.Context, review *entity.ScoredReview) error
	Recent(ctx context.Context, count int64) ([]entity.ScoredReview, error)
	StoreSummary(ctx context.Context, summary *sentiment.Summary) error
}

package repository

import (
	"context"

	"smartwaste/reviews-service/internal/app/reviews/entity"
)

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	List(ctx context.Context, limit int64) ([]entity.Review, error)
	ListWithSentiment(ctx context.Context) ([]entity.Review, error)
	SetSentiment(ctx context.Context, id string, score float64, label string) error
}

// UserRepository определяет доступ к профилям пользователей (Clerk)
type UserRepository interface {
	GetByClerkID(ctx context.Context, clerkID string) (*entity.User, error)
}

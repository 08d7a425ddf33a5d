package mocks

import (
	"context"

	"smartwaste/pkg/sentiment"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"

	"github.com/stretchr/testify/mock"
)

// MockReviewRepository - мок репозитория отзывов для тестирования
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListMissingSentiment(ctx context.Context, limit int64) ([]entity.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) ListWithSentiment(ctx context.Context) ([]entity.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) SetSentiment(ctx context.Context, id string, score float64, label string) error {
	args := m.Called(ctx, id, score, label)
	return args.Error(0)
}

// MockScoredStreamRepository - мок Redis ленты оценённых отзывов
type MockScoredStreamRepository struct {
	mock.Mock
}

func (m *MockScoredStreamRepository) Push(ctx context.Context, review *entity.ScoredReview) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockScoredStreamRepository) Recent(ctx context.Context, count int64) ([]entity.ScoredReview, error) {
	args := m.Called(ctx, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ScoredReview), args.Error(1)
}

func (m *MockScoredStreamRepository) StoreSummary(ctx context.Context, summary *sentiment.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// MockSentimentClassifier - мок LLM классификатора
type MockSentimentClassifier struct {
	mock.Mock
}

func (m *MockSentimentClassifier) Classify(ctx context.Context, text string) (*entity.SentimentResult, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SentimentResult), args.Error(1)
}

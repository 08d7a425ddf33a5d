package mocks

import (
	"context"

	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"

	"github.com/stretchr/testify/mock"
)

// MockReviewRepository - мок репозитория отзывов для тестирования
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, limit int64) ([]entity.Review, error) {
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

// MockUserRepository - мок репозитория пользователей
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByClerkID(ctx context.Context, clerkID string) (*entity.User, error) {
	args := m.Called(ctx, clerkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

// MockSentimentClassifier - мок удаленного классификатора тональности
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

// MockMessagePublisher - мок Kafka producer
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSummaryCache - мок кеша сводки тональности
type MockSummaryCache struct {
	mock.Mock
}

func (m *MockSummaryCache) GetSummary(ctx context.Context) (*sentiment.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sentiment.Summary), args.Error(1)
}

func (m *MockSummaryCache) SetSummary(ctx context.Context, summary *sentiment.Summary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSummaryCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

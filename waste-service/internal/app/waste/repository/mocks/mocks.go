package mocks

import (
	"context"

	"smartwaste/waste-service/internal/app/waste/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockDetectionRepository - мок репозитория обнаружений для тестирования
type MockDetectionRepository struct {
	mock.Mock
}

func (m *MockDetectionRepository) Create(ctx context.Context, detection *entity.WasteDetection) error {
	args := m.Called(ctx, detection)
	return args.Error(0)
}

func (m *MockDetectionRepository) List(ctx context.Context) ([]entity.WasteDetection, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WasteDetection), args.Error(1)
}

func (m *MockDetectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWasteClassifier - мок LLM классификатора
type MockWasteClassifier struct {
	mock.Mock
}

func (m *MockWasteClassifier) ClassifyImage(ctx context.Context, imageBase64 string, detailed bool) (*entity.WasteAnalysis, error) {
	args := m.Called(ctx, imageBase64, detailed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WasteAnalysis), args.Error(1)
}

func (m *MockWasteClassifier) ClassifyText(ctx context.Context, imageBase64 string, detailed bool) (*entity.WasteAnalysis, error) {
	args := m.Called(ctx, imageBase64, detailed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WasteAnalysis), args.Error(1)
}

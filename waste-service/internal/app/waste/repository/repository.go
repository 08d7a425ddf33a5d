package repository

import (
	"context"
	"errors"

	"smartwaste/waste-service/internal/app/waste/entity"

	"github.com/google/uuid"
)

var (
	ErrDetectionNotFound  = errors.New("waste detection not found")
	ErrDuplicateDetection = errors.New("waste detection already recorded for this point")
)

type DetectionRepository interface {
	Create(ctx context.Context, detection *entity.WasteDetection) error
	List(ctx context.Context) ([]entity.WasteDetection, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

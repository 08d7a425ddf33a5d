package repository

import (
	"context"
	"errors"

	"smartwaste/pkg/metrics"
	"smartwaste/waste-service/internal/app/waste/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const serviceName = "waste-service"

// Код unique_violation в PostgreSQL
const pgUniqueViolation = "23505"

type detectionRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewDetectionRepository создает новый репозиторий обнаружений
func NewDetectionRepository(db *gorm.DB) DetectionRepository {
	return &detectionRepository{db: db}
}

// Create сохраняет обнаружение в PostgreSQL
// Повторная запись той же точки (latitude, longitude, timestamp)
// упирается в уникальный индекс и возвращает ErrDuplicateDetection
func (r *detectionRepository) Create(ctx context.Context, detection *entity.WasteDetection) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, "waste_detections")
	result := r.db.WithContext(ctx).Create(detection)
	timer.ObserveDuration()

	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateDetection
		}
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return result.Error
	}

	return nil
}

// List получает все обнаружения, новые первыми
func (r *detectionRepository) List(ctx context.Context) ([]entity.WasteDetection, error) {
	var detections []entity.WasteDetection

	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, "waste_detections")
	result := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&detections)
	timer.ObserveDuration()

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, result.Error
	}

	return detections, nil
}

// Delete удаляет обнаружение по ID
func (r *detectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, "waste_detections")
	result := r.db.WithContext(ctx).Delete(&entity.WasteDetection{}, "id = ?", id)
	timer.ObserveDuration()

	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrDetectionNotFound
	}

	return nil
}

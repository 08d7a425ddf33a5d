package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartwaste/pkg/logger"
	"smartwaste/pkg/metrics"
	"smartwaste/waste-service/internal/app/waste/entity"
	"smartwaste/waste-service/internal/app/waste/infrastructure"
	"smartwaste/waste-service/internal/app/waste/repository"

	"github.com/google/uuid"
)

const serviceName = "waste-service"

var (
	// ErrClassifierUnavailable - обе модели (vision и текстовый fallback) не ответили
	ErrClassifierUnavailable = errors.New("waste classifier is unavailable")
)

// ClassifyRequest - подготовленный снимок плюс опциональная геопривязка
type ClassifyRequest struct {
	ImageBase64 string
	Detailed    bool
	Latitude    *float64
	Longitude   *float64
}

// WasteService обрабатывает бизнес-логику распознавания и учета отходов
type WasteService struct {
	detectionRepo repository.DetectionRepository
	classifier    infrastructure.WasteClassifier
}

// NewWasteService создает новый сервис с внедрением зависимостей
func NewWasteService(detectionRepo repository.DetectionRepository, classifier infrastructure.WasteClassifier) *WasteService {
	return &WasteService{
		detectionRepo: detectionRepo,
		classifier:    classifier,
	}
}

// ClassifyImage распознает отходы на снимке
// Сначала vision модель, при её сбое текстовый fallback; если не ответили
// обе - ErrClassifierUnavailable. Когда отходы найдены и запрос нес
// координаты, обнаружение записывается best-effort: сбой записи не ломает
// ответ классификации
func (s *WasteService) ClassifyImage(ctx context.Context, req *ClassifyRequest) (*entity.WasteAnalysis, error) {
	analysis, err := s.classifier.ClassifyImage(ctx, req.ImageBase64, req.Detailed)
	if err != nil {
		logger.Warn().Err(err).Msg("Vision model failed, trying text fallback")
		metrics.WasteClassifications.WithLabelValues("vision", "failed").Inc()

		analysis, err = s.classifier.ClassifyText(ctx, req.ImageBase64, req.Detailed)
		if err != nil {
			metrics.WasteClassifications.WithLabelValues("text", "failed").Inc()
			logger.Error().Err(err).Msg("Text fallback failed, classification unavailable")
			return nil, fmt.Errorf("%w: %s", ErrClassifierUnavailable, err)
		}
		metrics.WasteClassifications.WithLabelValues("text", "success").Inc()
	} else {
		metrics.WasteClassifications.WithLabelValues("vision", "success").Inc()
	}

	if analysis.IsWaste && req.Latitude != nil && req.Longitude != nil {
		detection := &entity.WasteDetection{
			Latitude:    *req.Latitude,
			Longitude:   *req.Longitude,
			Timestamp:   time.Now().UTC(),
			WasteType:   analysis.WasteType,
			Confidence:  analysis.Confidence,
			Description: analysis.Description,
		}

		if err := s.detectionRepo.Create(ctx, detection); err != nil {
			logger.Warn().
				Err(err).
				Float64("latitude", *req.Latitude).
				Float64("longitude", *req.Longitude).
				Msg("Failed to store detection for classified image")
		} else {
			metrics.WasteDetectionsStored.Inc()
		}
	}

	return analysis, nil
}

// StoreDetection записывает обнаружение, присланное клиентом напрямую
func (s *WasteService) StoreDetection(ctx context.Context, req *entity.StoreWasteRequest) (*entity.WasteDetection, error) {
	detection := &entity.WasteDetection{
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Timestamp:   req.Timestamp.UTC(),
		WasteType:   req.WasteType,
		Confidence:  req.Confidence,
		Description: req.Description,
	}

	if err := s.detectionRepo.Create(ctx, detection); err != nil {
		return nil, err
	}

	metrics.WasteDetectionsStored.Inc()
	return detection, nil
}

// ListDetections отдает ленту обнаружений для карты, новые первыми
func (s *WasteService) ListDetections(ctx context.Context) ([]entity.WasteDetection, error) {
	detections, err := s.detectionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list detections: %w", err)
	}

	return detections, nil
}

// DeleteDetection удаляет обнаружение (только для администратора)
func (s *WasteService) DeleteDetection(ctx context.Context, id uuid.UUID) error {
	return s.detectionRepo.Delete(ctx, id)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"smartwaste/pkg/metrics"
	"smartwaste/pkg/sentiment"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/repository"
)

var (
	ErrEmptyReview = errors.New("review text is empty")
)

// ReviewScoringService оценивает сырые отзывы из Kafka лексиконом
// и ведет Redis ленту последних оценённых отзывов
type ReviewScoringService struct {
	streamRepo repository.ScoredStreamRepository
}

func NewReviewScoringService(streamRepo repository.ScoredStreamRepository) *ReviewScoringService {
	return &ReviewScoringService{streamRepo: streamRepo}
}

// ProcessReviewMessage оценивает один отзыв и пишет результат в ленту
// Ошибка возвращается вызывающему, он решает коммитить ли offset
func (s *ReviewScoringService) ProcessReviewMessage(ctx context.Context, msg *entity.ReviewMessage) error {
	if msg.Text == "" {
		metrics.WorkerReviewsScored.WithLabelValues("skipped").Inc()
		return ErrEmptyReview
	}

	result := sentiment.Score(msg.Text)

	scored := &entity.ScoredReview{
		Text:        msg.Text,
		Score:       result.Score,
		Comparative: result.Comparative,
		ScoredAt:    time.Now().UTC(),
	}

	if err := s.streamRepo.Push(ctx, scored); err != nil {
		metrics.WorkerReviewsScored.WithLabelValues("failed").Inc()
		return fmt.Errorf("failed to store scored review: %w", err)
	}

	metrics.WorkerReviewsScored.WithLabelValues("success").Inc()
	log.Printf("Scored review (score: %d, comparative: %.3f)", result.Score, result.Comparative)

	return nil
}

package service

import (
	"context"
	"log"
	"time"

	"smartwaste/pkg/metrics"
	"smartwaste/pkg/sentiment"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/repository"
)

// Сколько отзывов без тональности берём за один проход
const backfillBatchSize = 200

// BackfillService дозаполняет тональность отзывов, оставшихся без неё
// (LLM был недоступен при создании). Основной путь - удалённый
// классификатор, при его сбое лексиконная оценка, чтобы отзыв не
// оставался без тональности навсегда
type BackfillService struct {
	reviewRepo repository.ReviewRepository
	streamRepo repository.ScoredStreamRepository
	classifier SentimentClassifier
}

func NewBackfillService(
	reviewRepo repository.ReviewRepository,
	streamRepo repository.ScoredStreamRepository,
	classifier SentimentClassifier,
) *BackfillService {
	return &BackfillService{
		reviewRepo: reviewRepo,
		streamRepo: streamRepo,
		classifier: classifier,
	}
}

// Backfill выполняет один проход дозаполнения
// Сбой на отдельном отзыве не прерывает проход, после обновлений
// пересчитывается и кешируется сводка тональности
func (s *BackfillService) Backfill(ctx context.Context) error {
	start := time.Now()

	reviews, err := s.reviewRepo.ListMissingSentiment(ctx, backfillBatchSize)
	if err != nil {
		metrics.WorkerSentimentBackfills.WithLabelValues("failed").Inc()
		return err
	}

	if len(reviews) == 0 {
		metrics.WorkerSentimentBackfills.WithLabelValues("noop").Inc()
		return nil
	}

	updated := 0
	for _, review := range reviews {
		score, label := s.scoreReview(ctx, review.ReviewText)

		if err := s.reviewRepo.SetSentiment(ctx, review.ID.Hex(), score, label); err != nil {
			log.Printf("ERROR: Failed to set sentiment for review %s: %v", review.ID.Hex(), err)
			continue
		}
		updated++
	}

	log.Printf("Backfill pass: %d of %d reviews updated", updated, len(reviews))

	if updated > 0 {
		s.refreshSummary(ctx)
	}

	metrics.WorkerSentimentBackfills.WithLabelValues("success").Inc()
	metrics.WorkerBackfillDuration.Observe(time.Since(start).Seconds())

	return nil
}

// scoreReview пытается получить тональность из LLM, при сбое
// берет нормализованную лексиконную оценку
func (s *BackfillService) scoreReview(ctx context.Context, text string) (float64, string) {
	result, err := s.classifier.Classify(ctx, text)
	if err == nil {
		return result.Score, result.Label
	}

	log.Printf("WARNING: LLM classification failed, using lexicon fallback: %v", err)

	lexical := sentiment.Score(text)
	return sentiment.NormalizedScore(lexical), sentiment.Label(lexical.Score)
}

// refreshSummary пересчитывает сводку и обновляет Redis кеш
func (s *BackfillService) refreshSummary(ctx context.Context) {
	reviews, err := s.reviewRepo.ListWithSentiment(ctx)
	if err != nil {
		log.Printf("WARNING: Failed to reload reviews for summary refresh: %v", err)
		return
	}

	inputs := make([]sentiment.ReviewInput, 0, len(reviews))
	for _, review := range reviews {
		inputs = append(inputs, sentiment.ReviewInput{
			Text:   review.ReviewText,
			Rating: review.Rating,
			Score:  review.Sentiment,
			Label:  review.SentimentLabel,
		})
	}

	summary := sentiment.Aggregate(inputs)

	if err := s.streamRepo.StoreSummary(ctx, &summary); err != nil {
		log.Printf("WARNING: Failed to refresh sentiment summary cache: %v", err)
	}
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"smartwaste/pkg/logger"
	"smartwaste/pkg/metrics"
	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"
	"smartwaste/reviews-service/internal/app/reviews/infrastructure"
	"smartwaste/reviews-service/internal/app/reviews/repository"

	"github.com/google/uuid"
)

const serviceName = "reviews-service"

// DefaultReviewsLimit - количество отзывов в выдаче GET /api/reviews
const DefaultReviewsLimit = 100

// ReviewService обрабатывает бизнес-логику отзывов
// Координирует MongoDB, удалённый классификатор тональности, Kafka и кеш сводки
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
	classifier infrastructure.SentimentClassifier
	publisher  infrastructure.MessagePublisher
	cache      infrastructure.SummaryCache
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	userRepo repository.UserRepository,
	classifier infrastructure.SentimentClassifier,
	publisher infrastructure.MessagePublisher,
	cache infrastructure.SummaryCache,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		classifier: classifier,
		publisher:  publisher,
		cache:      cache,
	}
}

// AddReview создает новый отзыв
// 1. Разрешает отображаемое имя автора (fallback на Anonymous User)
// 2. Сохраняет отзыв в MongoDB без тональности
// 3. Best-effort вычисляет тональность через LLM: сбой здесь не фатален,
//    отзыв уже надёжно сохранён и виден в выдаче без тональности
func (s *ReviewService) AddReview(ctx context.Context, req *entity.AddReviewRequest) (*entity.Review, error) {
	userName := entity.AnonymousUserName
	user, err := s.userRepo.GetByClerkID(ctx, req.ClerkID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logger.Warn().Err(err).Str("clerk_id", req.ClerkID).Msg("Failed to resolve user profile")
		}
	} else {
		userName = user.FirstName + " " + user.LastName
	}

	review := &entity.Review{
		ClerkID:    req.ClerkID,
		UserName:   userName,
		ReviewText: req.ReviewText,
		Rating:     req.Rating,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsCreated.Inc()
	metrics.ReviewsRating.Observe(float64(review.Rating))

	s.annotateSentiment(ctx, review)

	// Сбрасываем кеш сводки: новый отзыв меняет агрегаты
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate sentiment summary cache")
	}

	return review, nil
}

// annotateSentiment выполняет best-effort анализ тональности нового отзыва
// Любой сбой логируется и игнорируется: поля тональности остаются пустыми
func (s *ReviewService) annotateSentiment(ctx context.Context, review *entity.Review) {
	result, err := s.classifier.Classify(ctx, review.ReviewText)
	if err != nil {
		metrics.SentimentRequests.WithLabelValues(serviceName, "failed").Inc()
		logger.Warn().
			Err(err).
			Str("review_id", review.ID.Hex()).
			Msg("Sentiment analysis unavailable, review stored without sentiment")
		return
	}

	metrics.SentimentRequests.WithLabelValues(serviceName, "success").Inc()
	metrics.SentimentLabels.WithLabelValues(serviceName, result.Label).Inc()

	if err := s.reviewRepo.SetSentiment(ctx, review.ID.Hex(), result.Score, result.Label); err != nil {
		logger.Warn().
			Err(err).
			Str("review_id", review.ID.Hex()).
			Msg("Failed to persist sentiment annotation")
		return
	}

	review.Sentiment = &result.Score
	review.SentimentLabel = &result.Label
}

// ListReviews получает последние отзывы (новые первыми)
func (s *ReviewService) ListReviews(ctx context.Context, limit int64) ([]entity.Review, error) {
	if limit <= 0 {
		limit = DefaultReviewsLimit
	}

	reviews, err := s.reviewRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}

// GetSentimentSummary строит сводку тональности по отзывам с вычисленной
// тональностью. Результат кешируется в Redis с коротким TTL, при промахе
// агрегация пересчитывается полностью по коллекции
func (s *ReviewService) GetSentimentSummary(ctx context.Context) (*sentiment.Summary, error) {
	if cached, err := s.cache.GetSummary(ctx); err != nil {
		logger.Warn().Err(err).Msg("Summary cache unavailable, recomputing")
	} else if cached != nil {
		return cached, nil
	}

	reviews, err := s.reviewRepo.ListWithSentiment(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews for summary: %w", err)
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

	if err := s.cache.SetSummary(ctx, &summary); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache sentiment summary")
	}

	return &summary, nil
}

// AnalyzeReview выполняет синхронный лексиконный анализ без сохранения
func (s *ReviewService) AnalyzeReview(text string) *entity.AnalyzeReviewResponse {
	result := sentiment.Score(text)

	return &entity.AnalyzeReviewResponse{
		Review:    text,
		Sentiment: displayLabel(result.Score),
		Score:     result.Score,
		Words:     result.Words,
		Positive:  result.Positive,
		Negative:  result.Negative,
	}
}

// SubmitReview - альтернативный флоу подачи отзыва: лексиконный анализ
// и публикация сырого текста в Kafka, без сохранения в MongoDB
// Sentiment Worker вычитывает топик и ведёт поток оценённых отзывов
func (s *ReviewService) SubmitReview(ctx context.Context, text string) (*entity.SubmitReviewResponse, error) {
	result := sentiment.Score(text)

	message, err := json.Marshal(entity.ReviewMessage{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review message: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, uuid.NewString(), message); err != nil {
		return nil, fmt.Errorf("failed to publish review: %w", err)
	}

	return &entity.SubmitReviewResponse{
		Review:         text,
		SentimentScore: result.Score,
		Sentiment:      displayLabel(result.Score),
	}, nil
}

// displayLabel возвращает метку с заглавной буквы для синхронных endpoint'ов
func displayLabel(score int) string {
	switch {
	case score > 0:
		return "Positive"
	case score < 0:
		return "Negative"
	default:
		return "Neutral"
	}
}

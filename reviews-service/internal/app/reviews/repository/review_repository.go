package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smartwaste/pkg/logger"
	"smartwaste/reviews-service/internal/app/reviews/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrReviewNotFound = errors.New("review not found")
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов
// Автоматически создает индексы по created_at и sentiment_label
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection("reviews")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Индекс по created_at для выборки последних отзывов
	createdAtIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, createdAtIndex); err != nil {
		// Логируем ошибку, но не прерываем работу - индекс может уже существовать
		logger.Warn().Err(err).Msg("Failed to create index on created_at")
	}

	// Индекс по sentiment_label для выборки отзывов с тональностью
	sentimentIndex := mongo.IndexModel{
		Keys: bson.D{
			{Key: "sentiment_label", Value: 1},
		},
		Options: options.Index().SetName("sentiment_label_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, sentimentIndex); err != nil {
		logger.Warn().Err(err).Msg("Failed to create index on sentiment_label")
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create создает новый отзыв в MongoDB
// Поля тональности остаются пустыми до best-effort шага анализа
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	result, err := r.collection.InsertOne(ctx, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// List получает последние отзывы по created_at в порядке убывания
func (r *reviewRepository) List(ctx context.Context, limit int64) ([]entity.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// ListWithSentiment получает все отзывы, у которых вычислена тональность
// Используется агрегатором сводки
func (r *reviewRepository) ListWithSentiment(ctx context.Context) ([]entity.Review, error) {
	filter := bson.M{"sentiment_label": bson.M{"$ne": nil}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews with sentiment: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// SetSentiment записывает результат анализа тональности в отзыв
// Вызывается не более одного раза для каждого отзыва
func (r *reviewRepository) SetSentiment(ctx context.Context, id string, score float64, label string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid review ID: %w", err)
	}

	filter := bson.M{"_id": objectID}
	update := bson.M{
		"$set": bson.M{
			"sentiment":       score,
			"sentiment_label": label,
			"updated_at":      time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to set sentiment: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}

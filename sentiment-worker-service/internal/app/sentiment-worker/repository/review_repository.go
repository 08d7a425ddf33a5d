package repository

import (
	"context"
	"fmt"
	"time"

	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const reviewsCollection = "reviews"

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает репозиторий поверх коллекции Reviews Service
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &reviewRepository{
		collection: db.Collection(reviewsCollection),
	}
}

// ListMissingSentiment находит отзывы без вычисленной тональности
func (r *reviewRepository) ListMissingSentiment(ctx context.Context, limit int64) ([]entity.Review, error) {
	filter := bson.M{"sentiment_label": nil}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews without sentiment: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// ListWithSentiment возвращает отзывы с вычисленной тональностью
// для пересчета сводки
func (r *reviewRepository) ListWithSentiment(ctx context.Context) ([]entity.Review, error) {
	filter := bson.M{"sentiment_label": bson.M{"$ne": nil}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find reviews with sentiment: %w", err)
	}
	defer cursor.Close(ctx)

	var reviews []entity.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, nil
}

// SetSentiment записывает тональность отзыва
func (r *reviewRepository) SetSentiment(ctx context.Context, id string, score float64, label string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid review id: %w", err)
	}

	update := bson.M{
		"$set": bson.M{
			"sentiment":       score,
			"sentiment_label": label,
			"updated_at":      time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update review sentiment: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}

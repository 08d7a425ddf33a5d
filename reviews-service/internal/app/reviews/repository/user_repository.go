package repository

import (
	"context"
	"errors"
	"fmt"

	"smartwaste/reviews-service/internal/app/reviews/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает репозиторий профилей пользователей
// Коллекция users наполняется внешним identity-провайдером (Clerk webhooks)
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

// GetByClerkID получает профиль пользователя по его Clerk ID
func (r *userRepository) GetByClerkID(ctx context.Context, clerkID string) (*entity.User, error) {
	filter := bson.M{"clerk_id": clerkID}

	var user entity.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

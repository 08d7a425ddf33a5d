package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AnonymousUserName используется, когда профиль пользователя не найден
const AnonymousUserName = "Anonymous User"

// Review - отзыв пользователя о товаре/маркетплейсе
// Поля sentiment и sentiment_label заполняются не более одного раза
// best-effort шагом анализа тональности и могут остаться пустыми
type Review struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClerkID        string             `json:"clerkId" bson:"clerk_id"`               // Идентификатор пользователя во внешнем identity-провайдере
	UserName       string             `json:"userName" bson:"user_name"`             // Отображаемое имя автора
	ReviewText     string             `json:"reviewText" bson:"review_text"`         // Текст отзыва
	Rating         int                `json:"rating" bson:"rating"`                  // Оценка от 1 до 5
	Sentiment      *float64           `json:"sentiment" bson:"sentiment"`            // Тональность в диапазоне [-1, 1]
	SentimentLabel *string            `json:"sentimentLabel" bson:"sentiment_label"` // positive/negative/neutral
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

// User - профиль пользователя из внешнего identity-провайдера (Clerk)
// Используется только для разрешения отображаемого имени автора
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ClerkID   string             `json:"clerkId" bson:"clerk_id"`
	FirstName string             `json:"firstName" bson:"first_name"`
	LastName  string             `json:"lastName" bson:"last_name"`
}

// SentimentResult - результат удалённой классификации тональности
type SentimentResult struct {
	Score float64 // В диапазоне [-1, 1]
	Label string  // positive/negative/neutral
}

// ReviewMessage - сообщение с сырым текстом отзыва для топика reviews
type ReviewMessage struct {
	Text string `json:"text"`
}

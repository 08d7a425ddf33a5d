package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewMessage - сырой отзыв из Kafka топика reviews
type ReviewMessage struct {
	Text string `json:"text"`
}

// ScoredReview - оценённый отзыв в Redis ленте worker'а
type ScoredReview struct {
	Text        string    `json:"text"`
	Score       int       `json:"score"`
	Comparative float64   `json:"comparative"`
	ScoredAt    time.Time `json:"scoredAt"`
}

// Review - документ отзыва в MongoDB (коллекция Reviews Service)
// Worker дозаполняет поля sentiment и sentiment_label
type Review struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReviewText     string             `bson:"review_text" json:"reviewText"`
	Rating         int                `bson:"rating" json:"rating"`
	Sentiment      *float64           `bson:"sentiment,omitempty" json:"sentiment,omitempty"`
	SentimentLabel *string            `bson:"sentiment_label,omitempty" json:"sentimentLabel,omitempty"`
}

// SentimentResult - ответ LLM классификатора
type SentimentResult struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

package infrastructure

import (
	"context"

	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"
)

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// SentimentClassifier интерфейс удалённого классификатора тональности (LLM)
// Любая ошибка означает "тональность недоступна" - вызывающий код сам
// решает, игнорировать её или использовать лексиконный fallback
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) (*entity.SentimentResult, error)
}

// SummaryCache интерфейс кеша сводки тональности (Redis)
type SummaryCache interface {
	GetSummary(ctx context.Context) (*sentiment.Summary, error)
	SetSummary(ctx context.Context, summary *sentiment.Summary) error
	Invalidate(ctx context.Context) error
	Close() error
}

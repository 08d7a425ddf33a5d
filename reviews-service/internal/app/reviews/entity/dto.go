package entity

// AddReviewRequest - запрос на создание отзыва
type AddReviewRequest struct {
	ClerkID    string `json:"clerkId" validate:"required"`
	ReviewText string `json:"reviewText" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
}

// AnalyzeReviewRequest - запрос на синхронный лексиконный анализ
type AnalyzeReviewRequest struct {
	Review string `json:"review" validate:"required"`
}

// AnalyzeReviewResponse - результат синхронного анализа (без сохранения)
type AnalyzeReviewResponse struct {
	Review    string   `json:"review"`
	Sentiment string   `json:"sentiment"` // Positive/Negative/Neutral
	Score     int      `json:"score"`
	Words     []string `json:"words"`
	Positive  []string `json:"positive"`
	Negative  []string `json:"negative"`
}

// SubmitReviewResponse - результат альтернативного флоу через очередь
// Отзыв не сохраняется в БД, а публикуется в Kafka
type SubmitReviewResponse struct {
	Review         string `json:"review"`
	SentimentScore int    `json:"sentimentScore"`
	Sentiment      string `json:"sentiment"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

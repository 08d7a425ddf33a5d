package logger

import "github.com/google/uuid"

// generateRequestID генерирует уникальный идентификатор запроса
// Используется, когда клиент не передал заголовок X-Request-ID
func generateRequestID() string {
	return uuid.NewString()
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"
)

var (
	// ErrNoAPIKey возвращается, когда ключ API не сконфигурирован
	ErrNoAPIKey = errors.New("groq api key is not configured")
)

// Системный промпт требует от модели строго JSON объект {score, label}
const sentimentSystemPrompt = `You are a sentiment analysis expert. Analyze the sentiment of the given text and respond with a JSON object only containing a score between -1 (very negative) and 1 (very positive), and a label that is one of: "positive", "negative", or "neutral".`

// GroqClient - клиент chat-completions API для анализа тональности
// Отвечает только за HTTP запрос и строгий разбор ответа модели
type GroqClient struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqClient создает новый клиент LLM API
func NewGroqClient(apiURL, apiKey, model string, timeoutSec int) *GroqClient {
	return &GroqClient{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// Структуры запроса/ответа chat-completions API
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// sentimentPayload - ожидаемый JSON в content ответа модели
// Указатели позволяют отличить отсутствующее поле от нулевого значения
type sentimentPayload struct {
	Score *float64 `json:"score"`
	Label *string  `json:"label"`
}

// Classify отправляет текст отзыва в LLM и разбирает ответ в (score, label)
// Любая ошибка (нет ключа, сеть, не-2xx, невалидный JSON, значения вне
// диапазона) возвращается вызывающему - тот трактует её как
// "тональность недоступна", а не как фатальный сбой
func (c *GroqClient) Classify(ctx context.Context, text string) (*entity.SentimentResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: sentimentSystemPrompt},
			{Role: "user", Content: text},
		},
		Temperature: 0.2,
		MaxTokens:   100,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("llm API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("failed to decode completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return nil, errors.New("llm response contains no choices")
	}

	return parseSentimentContent(completion.Choices[0].Message.Content)
}

// parseSentimentContent строго валидирует JSON из ответа модели
// Всё, что не соответствует схеме {score в [-1,1], label из enum},
// отклоняется вместо доверия произвольным полям
func parseSentimentContent(content string) (*entity.SentimentResult, error) {
	var payload sentimentPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse sentiment content: %w", err)
	}

	if payload.Score == nil || payload.Label == nil {
		return nil, errors.New("sentiment content is missing score or label")
	}

	if *payload.Score < -1 || *payload.Score > 1 {
		return nil, fmt.Errorf("sentiment score %f is out of range [-1, 1]", *payload.Score)
	}

	switch *payload.Label {
	case sentiment.LabelPositive, sentiment.LabelNegative, sentiment.LabelNeutral:
	default:
		return nil, fmt.Errorf("unknown sentiment label %q", *payload.Label)
	}

	return &entity.SentimentResult{
		Score: *payload.Score,
		Label: *payload.Label,
	}, nil
}

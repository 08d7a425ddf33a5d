package service

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
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"
)

var (
	// ErrNoAPIKey возвращается, когда ключ API не сконфигурирован
	ErrNoAPIKey = errors.New("groq api key is not configured")
)

const sentimentSystemPrompt = `You are a sentiment analysis expert. Analyze the sentiment of the given text and respond with a JSON object only containing a score between -1 (very negative) and 1 (very positive), and a label that is one of: "positive", "negative", or "neutral".`

// GroqClientImpl реализует интерфейс SentimentClassifier
// Отвечает только за HTTP запросы к chat-completions API
type GroqClientImpl struct {
	apiURL     string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqClient создает новый HTTP клиент для LLM API
func NewGroqClient(apiURL, apiKey, model string, timeoutSec int) *GroqClientImpl {
	return &GroqClientImpl{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

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

type sentimentPayload struct {
	Score *float64 `json:"score"`
	Label *string  `json:"label"`
}

// Classify получает тональность отзыва из LLM API
func (c *GroqClientImpl) Classify(ctx context.Context, text string) (*entity.SentimentResult, error) {
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

	var payload sentimentPayload
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
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

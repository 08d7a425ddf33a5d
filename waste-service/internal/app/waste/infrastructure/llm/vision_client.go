package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartwaste/waste-service/internal/app/waste/entity"
)

var (
	// ErrNoAPIKey возвращается, когда ключ API не сконфигурирован
	ErrNoAPIKey = errors.New("groq api key is not configured")
)

const basePromptFormat = `You are a waste detection expert. Analyze the image and respond with a JSON object only, no other text. The JSON must contain: "isWaste" (boolean), "wasteType" (string, e.g. "plastic", "glass", "organic", "mixed"), "confidence" (number between 0 and 1), "description" (short string), "disposalMethod" (short string).`

const detailedPromptExtra = ` Additionally include: "materials" (array of strings), "environmentalImpact" (string), "disposalMethods" (array of strings), "recyclingInfo" (string), "alternativeUses" (array of strings).`

// В текстовом fallback в промпт уходит только начало base64 снимка,
// целиком он не влезает в контекст текстовой модели
const fallbackSampleLen = 2000

// VisionClient - клиент chat-completions API для классификации отходов
// Держит две модели: основную vision и текстовый fallback
type VisionClient struct {
	apiURL      string
	apiKey      string
	visionModel string
	textModel   string
	httpClient  *http.Client
}

// NewVisionClient создает новый клиент LLM API
func NewVisionClient(apiURL, apiKey, visionModel, textModel string, timeoutSec int) *VisionClient {
	return &VisionClient{
		apiURL:      apiURL,
		apiKey:      apiKey,
		visionModel: visionModel,
		textModel:   textModel,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// Структуры запроса/ответа chat-completions API
// Content - либо строка, либо массив частей (текст + изображение)
type visionMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionRequest struct {
	Model       string          `json:"model"`
	Messages    []visionMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ClassifyImage отправляет снимок в vision модель как data URI
func (c *VisionClient) ClassifyImage(ctx context.Context, imageBase64 string, detailed bool) (*entity.WasteAnalysis, error) {
	messages := []visionMessage{
		{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: buildPrompt(detailed)},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + imageBase64,
				}},
			},
		},
	}

	return c.complete(ctx, c.visionModel, messages, detailed)
}

// ClassifyText - запасной вариант через текстовую модель
// Изображение передается усеченным base64 фрагментом, результат заметно
// грубее, но endpoint остается рабочим при недоступности vision модели
func (c *VisionClient) ClassifyText(ctx context.Context, imageBase64 string, detailed bool) (*entity.WasteAnalysis, error) {
	sample := imageBase64
	if len(sample) > fallbackSampleLen {
		sample = sample[:fallbackSampleLen]
	}

	prompt := buildPrompt(detailed) +
		"\nThe image itself is unavailable. Base64 sample of the uploaded file: " + sample

	messages := []visionMessage{
		{Role: "user", Content: prompt},
	}

	return c.complete(ctx, c.textModel, messages, detailed)
}

func (c *VisionClient) complete(ctx context.Context, model string, messages []visionMessage, detailed bool) (*entity.WasteAnalysis, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}

	maxTokens := 300
	if detailed {
		maxTokens = 700
	}

	reqBody := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.2,
		MaxTokens:   maxTokens,
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

	return parseAnalysisContent(completion.Choices[0].Message.Content)
}

func buildPrompt(detailed bool) string {
	if detailed {
		return basePromptFormat + detailedPromptExtra
	}
	return basePromptFormat
}

// parseAnalysisContent разбирает JSON из ответа модели
// Модели иногда оборачивают JSON в markdown блок, он срезается перед разбором
func parseAnalysisContent(content string) (*entity.WasteAnalysis, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var analysis entity.WasteAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis content: %w", err)
	}

	if analysis.Confidence < 0 || analysis.Confidence > 1 {
		return nil, fmt.Errorf("analysis confidence %f is out of range [0, 1]", analysis.Confidence)
	}

	return &analysis, nil
}

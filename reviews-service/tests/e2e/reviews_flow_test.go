//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"smartwaste/reviews-service/internal/app/reviews/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const BaseURL = "http://localhost:8081"

func postJSON(t *testing.T, client *http.Client, path string, payload interface{}) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, BaseURL+path, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func TestFullReviewFlow(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	clerkID := "e2e-user-" + uuid.NewString()

	// Create
	resp := postJSON(t, client, "/api/reviews/add", entity.AddReviewRequest{
		ClerkID:    clerkID,
		ReviewText: "Great product, excellent quality and fast delivery.",
		Rating:     5,
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created entity.Review
	json.NewDecoder(resp.Body).Decode(&created)
	assert.Equal(t, clerkID, created.ClerkID)
	assert.Equal(t, 5, created.Rating)
	// Имя не зарегистрировано в users - ожидаем fallback
	assert.Equal(t, entity.AnonymousUserName, created.UserName)

	// List
	listResp, err := client.Get(BaseURL + "/api/reviews")
	require.NoError(t, err)
	defer listResp.Body.Close()

	assert.Equal(t, http.StatusOK, listResp.StatusCode)

	var reviews []entity.Review
	json.NewDecoder(listResp.Body).Decode(&reviews)

	found := false
	for _, review := range reviews {
		if review.ClerkID == clerkID {
			found = true
		}
	}
	assert.True(t, found, "created review should appear in the list")
}

func TestSentimentSummary(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(BaseURL + "/api/reviews/sentiment")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var summary map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&summary)

	assert.Contains(t, summary, "positivePercentage")
	assert.Contains(t, summary, "neutralPercentage")
	assert.Contains(t, summary, "negativePercentage")
	assert.Contains(t, summary, "averageRating")
	assert.Contains(t, summary, "topKeywords")
}

func TestAnalyzeReview(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp := postJSON(t, client, "/api/analyze-review", entity.AnalyzeReviewRequest{
		Review: "great quality, excellent service",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var analysis entity.AnalyzeReviewResponse
	json.NewDecoder(resp.Body).Decode(&analysis)

	assert.Equal(t, "Positive", analysis.Sentiment)
	assert.Greater(t, analysis.Score, 0)
	assert.NotEmpty(t, analysis.Positive)
}

func TestSubmitReview(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp := postJSON(t, client, "/api/submitReview", entity.AnalyzeReviewRequest{
		Review: "terrible broken useless product",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var submitted entity.SubmitReviewResponse
	json.NewDecoder(resp.Body).Decode(&submitted)

	assert.Equal(t, "Negative", submitted.Sentiment)
	assert.Less(t, submitted.SentimentScore, 0)
}

func TestHealthCheck(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(BaseURL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestAddReview_ValidationErrors тестирует валидацию
func TestAddReview_ValidationErrors(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	testCases := []struct {
		name    string
		request map[string]interface{}
	}{
		{
			name: "Missing review text",
			request: map[string]interface{}{
				"clerkId": "e2e-user",
				"rating":  5,
			},
		},
		{
			name: "Rating too low",
			request: map[string]interface{}{
				"clerkId":    "e2e-user",
				"reviewText": "Достаточно длинный текст отзыва.",
				"rating":     0,
			},
		},
		{
			name: "Rating too high",
			request: map[string]interface{}{
				"clerkId":    "e2e-user",
				"reviewText": "Достаточно длинный текст отзыва.",
				"rating":     6,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postJSON(t, client, "/api/reviews/add", tc.request)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

// TestAllRatings тестирует все допустимые значения рейтинга
func TestAllRatings(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}

	for rating := 1; rating <= 5; rating++ {
		t.Run("rating_"+string(rune('0'+rating)), func(t *testing.T) {
			resp := postJSON(t, client, "/api/reviews/add", entity.AddReviewRequest{
				ClerkID:    "e2e-rating-" + uuid.NewString(),
				ReviewText: "Тестовый отзыв с рейтингом. Длинный текст.",
				Rating:     rating,
			})
			defer resp.Body.Close()

			assert.Equal(t, http.StatusCreated, resp.StatusCode)

			var review entity.Review
			json.NewDecoder(resp.Body).Decode(&review)
			assert.Equal(t, rating, review.Rating)
		})
	}
}

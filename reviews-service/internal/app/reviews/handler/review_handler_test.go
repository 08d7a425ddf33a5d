package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartwaste/pkg/logger"
	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) AddReview(ctx context.Context, req *entity.AddReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *mockReviewService) ListReviews(ctx context.Context, limit int64) ([]entity.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *mockReviewService) GetSentimentSummary(ctx context.Context) (*sentiment.Summary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sentiment.Summary), args.Error(1)
}

func (m *mockReviewService) AnalyzeReview(text string) *entity.AnalyzeReviewResponse {
	args := m.Called(text)
	return args.Get(0).(*entity.AnalyzeReviewResponse)
}

func (m *mockReviewService) SubmitReview(ctx context.Context, text string) (*entity.SubmitReviewResponse, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SubmitReviewResponse), args.Error(1)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("reviews-service-test", "disabled")
	m.Run()
}

func setupTestRouter() (*gin.Engine, *mockReviewService) {
	svc := new(mockReviewService)
	router := SetupRoutes(NewReviewHandler(svc))
	return router, svc
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddReview_Created(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("AddReview", mock.Anything, mock.AnythingOfType("*entity.AddReviewRequest")).
		Return(&entity.Review{ClerkID: "clerk-1", UserName: "Ivan Petrov", ReviewText: "great", Rating: 5}, nil)

	w := performRequest(router, http.MethodPost, "/api/reviews/add", gin.H{
		"clerkId":    "clerk-1",
		"reviewText": "great",
		"rating":     5,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestAddReview_ValidationError(t *testing.T) {
	router, svc := setupTestRouter()

	w := performRequest(router, http.MethodPost, "/api/reviews/add", gin.H{
		"clerkId":    "clerk-1",
		"reviewText": "great",
		"rating":     6,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything)
}

func TestAddReview_MissingBody(t *testing.T) {
	router, _ := setupTestRouter()

	w := performRequest(router, http.MethodPost, "/api/reviews/add", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddReview_ServiceError(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("AddReview", mock.Anything, mock.Anything).Return(nil, errors.New("mongo down"))

	w := performRequest(router, http.MethodPost, "/api/reviews/add", gin.H{
		"clerkId":    "clerk-1",
		"reviewText": "great",
		"rating":     4,
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestListReviews_OK(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("ListReviews", mock.Anything, int64(100)).Return([]entity.Review{
		{ReviewText: "good", Rating: 4},
	}, nil)

	w := performRequest(router, http.MethodGet, "/api/reviews", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var reviews []entity.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	assert.Len(t, reviews, 1)
}

func TestListReviews_CustomLimit(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("ListReviews", mock.Anything, int64(5)).Return([]entity.Review{}, nil)

	w := performRequest(router, http.MethodGet, "/api/reviews?limit=5", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListReviews_InvalidLimit(t *testing.T) {
	router, svc := setupTestRouter()

	w := performRequest(router, http.MethodGet, "/api/reviews?limit=abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListReviews", mock.Anything, mock.Anything)
}

func TestGetSentimentSummary_OK(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("GetSentimentSummary", mock.Anything).Return(&sentiment.Summary{
		PositivePercentage: 67,
		NeutralPercentage:  33,
		AverageRating:      "4.0",
		TopKeywords:        []string{"battery"},
	}, nil)

	w := performRequest(router, http.MethodGet, "/api/reviews/sentiment", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(67), body["positivePercentage"])
	assert.Equal(t, "4.0", body["averageRating"])
}

func TestGetSentimentSummary_ServiceError(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("GetSentimentSummary", mock.Anything).Return(nil, errors.New("mongo down"))

	w := performRequest(router, http.MethodGet, "/api/reviews/sentiment", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAnalyzeReview_OK(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("AnalyzeReview", "great phone").Return(&entity.AnalyzeReviewResponse{
		Review:    "great phone",
		Sentiment: "Positive",
		Score:     3,
		Words:     []string{"great"},
		Positive:  []string{"great"},
		Negative:  []string{},
	})

	w := performRequest(router, http.MethodPost, "/api/analyze-review", gin.H{"review": "great phone"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp entity.AnalyzeReviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Positive", resp.Sentiment)
}

func TestAnalyzeReview_MissingReview(t *testing.T) {
	router, svc := setupTestRouter()

	w := performRequest(router, http.MethodPost, "/api/analyze-review", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "AnalyzeReview", mock.Anything)
}

func TestSubmitReview_OK(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("SubmitReview", mock.Anything, "nice").Return(&entity.SubmitReviewResponse{
		Review:         "nice",
		SentimentScore: 3,
		Sentiment:      "Positive",
	}, nil)

	w := performRequest(router, http.MethodPost, "/api/submitReview", gin.H{"review": "nice"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitReview_PublishError(t *testing.T) {
	router, svc := setupTestRouter()

	svc.On("SubmitReview", mock.Anything, "nice").Return(nil, errors.New("kafka unavailable"))

	w := performRequest(router, http.MethodPost, "/api/submitReview", gin.H{"review": "nice"})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := performRequest(router, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "reviews-service")
}

package handler

import (
	"context"
	"net/http"
	"strconv"

	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"
	"smartwaste/reviews-service/internal/app/reviews/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewServiceInterface interface {
	AddReview(ctx context.Context, req *entity.AddReviewRequest) (*entity.Review, error)
	ListReviews(ctx context.Context, limit int64) ([]entity.Review, error)
	GetSentimentSummary(ctx context.Context) (*sentiment.Summary, error)
	AnalyzeReview(text string) *entity.AnalyzeReviewResponse
	SubmitReview(ctx context.Context, text string) (*entity.SubmitReviewResponse, error)
}

type ReviewHandler struct {
	reviewService ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

// AddReview обрабатывает POST /api/reviews/add
// Сохранение отзыва обязательно, аннотация тональности best-effort
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req entity.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListReviews обрабатывает GET /api/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	limit := int64(service.DefaultReviewsLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	reviews, err := h.reviewService.ListReviews(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// GetSentimentSummary обрабатывает GET /api/reviews/sentiment
func (h *ReviewHandler) GetSentimentSummary(c *gin.Context) {
	summary, err := h.reviewService.GetSentimentSummary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sentiment summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AnalyzeReview обрабатывает POST /api/analyze-review
// Синхронный лексиконный анализ без сохранения
func (h *ReviewHandler) AnalyzeReview(c *gin.Context) {
	var req entity.AnalyzeReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	c.JSON(http.StatusOK, h.reviewService.AnalyzeReview(req.Review))
}

// SubmitReview обрабатывает POST /api/submitReview
// Отзыв уходит в Kafka, сбой публикации фатален для запроса
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	var req entity.AnalyzeReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	resp, err := h.reviewService.SubmitReview(c.Request.Context(), req.Review)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit review"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

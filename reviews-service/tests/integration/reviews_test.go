//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"smartwaste/pkg/logger"
	"smartwaste/pkg/sentiment"
	"smartwaste/reviews-service/internal/app/reviews/entity"
	"smartwaste/reviews-service/internal/app/reviews/handler"
	"smartwaste/reviews-service/internal/app/reviews/infrastructure/cache"
	"smartwaste/reviews-service/internal/app/reviews/repository"
	"smartwaste/reviews-service/internal/app/reviews/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mockPublisher собирает опубликованные сообщения вместо реальной Kafka
type mockPublisher struct {
	Messages [][]byte
}

func (m *mockPublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

// stubClassifier возвращает фиксированную тональность без сетевых вызовов
type stubClassifier struct {
	result *entity.SentimentResult
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (*entity.SentimentResult, error) {
	return s.result, s.err
}

type ReviewsIntegrationTestSuite struct {
	suite.Suite
	client     *mongo.Client
	db         *mongo.Database
	miniRedis  *miniredis.Miniredis
	router     *gin.Engine
	publisher  *mockPublisher
	classifier *stubClassifier
}

func TestReviewsIntegrationSuite(t *testing.T) {
	suite.Run(t, new(ReviewsIntegrationTestSuite))
}

func (s *ReviewsIntegrationTestSuite) SetupSuite() {
	logger.Init("reviews-integration-test", "disabled")

	mongoURI := getEnv("TEST_MONGODB_URI", "mongodb://localhost:27018")
	dbName := getEnv("TEST_MONGODB_DATABASE", "reviews_test_db")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	s.client, err = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	s.Require().NoError(err)

	s.db = s.client.Database(dbName)

	s.miniRedis, err = miniredis.Run()
	s.Require().NoError(err)

	redisClient := redis.NewClient(&redis.Options{Addr: s.miniRedis.Addr()})
	summaryCache := cache.NewSummaryCacheWithClient(redisClient, time.Minute)

	s.publisher = &mockPublisher{Messages: make([][]byte, 0)}
	s.classifier = &stubClassifier{
		result: &entity.SentimentResult{Score: 0.8, Label: sentiment.LabelPositive},
	}

	reviewRepo := repository.NewReviewRepository(s.db)
	userRepo := repository.NewUserRepository(s.db)
	reviewService := service.NewReviewService(reviewRepo, userRepo, s.classifier, s.publisher, summaryCache)

	gin.SetMode(gin.TestMode)
	s.router = handler.SetupRoutes(handler.NewReviewHandler(reviewService))
}

func (s *ReviewsIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	s.db.Collection("reviews").DeleteMany(ctx, bson.M{})
	s.db.Collection("users").DeleteMany(ctx, bson.M{})
	s.miniRedis.FlushAll()
	s.publisher.Messages = s.publisher.Messages[:0]
}

func (s *ReviewsIntegrationTestSuite) TearDownSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.db.Drop(ctx)
	s.client.Disconnect(ctx)
	s.miniRedis.Close()
}

func (s *ReviewsIntegrationTestSuite) postJSON(path string, body interface{}) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReviewsIntegrationTestSuite) TestAddReview_PersistsWithSentiment() {
	w := s.postJSON("/api/reviews/add", gin.H{
		"clerkId":    "clerk-42",
		"reviewText": "excellent build quality",
		"rating":     5,
	})

	s.Equal(http.StatusCreated, w.Code)

	var created entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal(entity.AnonymousUserName, created.UserName)
	s.Require().NotNil(created.Sentiment)
	s.Equal(0.8, *created.Sentiment)

	count, err := s.db.Collection("reviews").CountDocuments(context.Background(), bson.M{})
	s.NoError(err)
	s.Equal(int64(1), count)
}

func (s *ReviewsIntegrationTestSuite) TestAddReview_ResolvesUserName() {
	_, err := s.db.Collection("users").InsertOne(context.Background(), bson.M{
		"clerk_id":   "clerk-7",
		"first_name": "Anna",
		"last_name":  "Ivanova",
	})
	s.Require().NoError(err)

	w := s.postJSON("/api/reviews/add", gin.H{
		"clerkId":    "clerk-7",
		"reviewText": "good",
		"rating":     4,
	})

	s.Equal(http.StatusCreated, w.Code)

	var created entity.Review
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	s.Equal("Anna Ivanova", created.UserName)
}

func (s *ReviewsIntegrationTestSuite) TestSentimentSummary_FullFlow() {
	for _, body := range []gin.H{
		{"clerkId": "c1", "reviewText": "excellent battery life", "rating": 5},
		{"clerkId": "c2", "reviewText": "excellent camera", "rating": 4},
		{"clerkId": "c3", "reviewText": "average phone overall", "rating": 3},
	} {
		s.Require().Equal(http.StatusCreated, s.postJSON("/api/reviews/add", body).Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/sentiment", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var summary sentiment.Summary
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	s.Equal(100, summary.PositivePercentage)
	s.Equal("4.0", summary.AverageRating)
	s.Contains(summary.TopKeywords, "excellent")

	// Повторный запрос должен отдаваться из кеша
	s.True(s.miniRedis.Exists("reviews:sentiment_summary"))
}

func (s *ReviewsIntegrationTestSuite) TestSubmitReview_PublishesToKafka() {
	w := s.postJSON("/api/submitReview", gin.H{"review": "great product"})

	s.Equal(http.StatusOK, w.Code)
	s.Require().Len(s.publisher.Messages, 1)

	var msg entity.ReviewMessage
	s.Require().NoError(json.Unmarshal(s.publisher.Messages[0], &msg))
	s.Equal("great product", msg.Text)

	count, err := s.db.Collection("reviews").CountDocuments(context.Background(), bson.M{})
	s.NoError(err)
	s.Equal(int64(0), count)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package service

import (
	"context"
	"errors"
	"testing"

	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/entity"
	"smartwaste/sentiment-worker-service/internal/app/sentiment-worker/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProcessReviewMessage_PositiveReview(t *testing.T) {
	streamRepo := new(mocks.MockScoredStreamRepository)
	svc := NewReviewScoringService(streamRepo)

	streamRepo.On("Push", mock.Anything, mock.MatchedBy(func(r *entity.ScoredReview) bool {
		return r.Text == "great quality, excellent service" && r.Score > 0 && r.Comparative > 0
	})).Return(nil)

	err := svc.ProcessReviewMessage(context.Background(), &entity.ReviewMessage{
		Text: "great quality, excellent service",
	})

	assert.NoError(t, err)
	streamRepo.AssertExpectations(t)
}

func TestProcessReviewMessage_NegativeReview(t *testing.T) {
	streamRepo := new(mocks.MockScoredStreamRepository)
	svc := NewReviewScoringService(streamRepo)

	streamRepo.On("Push", mock.Anything, mock.MatchedBy(func(r *entity.ScoredReview) bool {
		return r.Score < 0
	})).Return(nil)

	err := svc.ProcessReviewMessage(context.Background(), &entity.ReviewMessage{
		Text: "terrible broken useless",
	})

	assert.NoError(t, err)
}

func TestProcessReviewMessage_EmptyText(t *testing.T) {
	streamRepo := new(mocks.MockScoredStreamRepository)
	svc := NewReviewScoringService(streamRepo)

	err := svc.ProcessReviewMessage(context.Background(), &entity.ReviewMessage{Text: ""})

	assert.ErrorIs(t, err, ErrEmptyReview)
	streamRepo.AssertNotCalled(t, "Push", mock.Anything, mock.Anything)
}

func TestProcessReviewMessage_RedisFailure(t *testing.T) {
	streamRepo := new(mocks.MockScoredStreamRepository)
	svc := NewReviewScoringService(streamRepo)

	streamRepo.On("Push", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	err := svc.ProcessReviewMessage(context.Background(), &entity.ReviewMessage{Text: "ok product"})

	assert.Error(t, err)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartwaste/pkg/logger"
	"smartwaste/waste-service/internal/app/waste/entity"
	"smartwaste/waste-service/internal/app/waste/repository"
	"smartwaste/waste-service/internal/app/waste/repository/mocks"
	"smartwaste/waste-service/internal/app/waste/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	logger.Init("waste-service-test", "disabled")
	m.Run()
}

func newTestService() (*WasteService, *mocks.MockDetectionRepository, *mocks.MockWasteClassifier) {
	repo := new(mocks.MockDetectionRepository)
	classifier := new(mocks.MockWasteClassifier)
	return NewWasteService(repo, classifier), repo, classifier
}

func ptrF(v float64) *float64 { return &v }

func TestClassifyImage_VisionSuccess(t *testing.T) {
	svc, repo, classifier := newTestService()
	ctx := context.Background()

	classifier.On("ClassifyImage", ctx, "img64", false).Return(&entity.WasteAnalysis{
		IsWaste:    true,
		WasteType:  "plastic",
		Confidence: 0.9,
	}, nil)

	analysis, err := svc.ClassifyImage(ctx, &ClassifyRequest{ImageBase64: "img64"})

	require.NoError(t, err)
	assert.True(t, analysis.IsWaste)
	classifier.AssertNotCalled(t, "ClassifyText", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClassifyImage_FallsBackToTextModel(t *testing.T) {
	svc, _, classifier := newTestService()
	ctx := context.Background()

	classifier.On("ClassifyImage", ctx, "img64", true).Return(nil, errors.New("vision model down"))
	classifier.On("ClassifyText", ctx, "img64", true).Return(&entity.WasteAnalysis{
		IsWaste:    false,
		Confidence: 0.4,
	}, nil)

	analysis, err := svc.ClassifyImage(ctx, &ClassifyRequest{ImageBase64: "img64", Detailed: true})

	require.NoError(t, err)
	assert.False(t, analysis.IsWaste)
	classifier.AssertExpectations(t)
}

func TestClassifyImage_BothModelsFail(t *testing.T) {
	svc, repo, classifier := newTestService()
	ctx := context.Background()

	classifier.On("ClassifyImage", ctx, "img64", false).Return(nil, errors.New("vision down"))
	classifier.On("ClassifyText", ctx, "img64", false).Return(nil, errors.New("text down"))

	analysis, err := svc.ClassifyImage(ctx, &ClassifyRequest{ImageBase64: "img64"})

	assert.Nil(t, analysis)
	assert.ErrorIs(t, err, ErrClassifierUnavailable)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClassifyImage_StoresGeolocatedDetection(t *testing.T) {
	svc, repo, classifier := newTestService()
	ctx := context.Background()

	classifier.On("ClassifyImage", ctx, "img64", false).Return(&entity.WasteAnalysis{
		IsWaste:     true,
		WasteType:   "glass",
		Confidence:  0.8,
		Description: "broken bottles",
	}, nil)

	repo.On("Create", ctx, mock.MatchedBy(func(d *entity.WasteDetection) bool {
		return d.Latitude == 55.75 && d.Longitude == 37.61 && d.WasteType == "glass"
	})).Return(nil)

	analysis, err := svc.ClassifyImage(ctx, &ClassifyRequest{
		ImageBase64: "img64",
		Latitude:    ptrF(55.75),
		Longitude:   ptrF(37.61),
	})

	require.NoError(t, err)
	assert.True(t, analysis.IsWaste)
	repo.AssertExpectations(t)
}

func TestClassifyImage_StoreFailureIsNotFatal(t *testing.T) {
	svc, repo, classifier := newTestService()
	ctx := context.Background()

	classifier.On("ClassifyImage", ctx, "img64", false).Return(&entity.WasteAnalysis{
		IsWaste:    true,
		WasteType:  "plastic",
		Confidence: 0.9,
	}, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateDetection)

	analysis, err := svc.ClassifyImage(ctx, &ClassifyRequest{
		ImageBase64: "img64",
		Latitude:    ptrF(55.75),
		Longitude:   ptrF(37.61),
	})

	assert.NoError(t, err)
	assert.NotNil(t, analysis)
}

func TestClassifyImage_NotWasteSkipsStore(t *testing.T) {
	svc, repo, classifier := newTestService()
	ctx := context.Background()

	classifier.On("ClassifyImage", ctx, "img64", false).Return(&entity.WasteAnalysis{
		IsWaste:    false,
		Confidence: 0.1,
	}, nil)

	_, err := svc.ClassifyImage(ctx, &ClassifyRequest{
		ImageBase64: "img64",
		Latitude:    ptrF(55.75),
		Longitude:   ptrF(37.61),
	})

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStoreDetection_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.AnythingOfType("*entity.WasteDetection")).Return(nil)

	detection, err := svc.StoreDetection(ctx, &entity.StoreWasteRequest{
		Latitude:   55.75,
		Longitude:  37.61,
		Timestamp:  time.Now(),
		WasteType:  "organic",
		Confidence: 0.7,
	})

	require.NoError(t, err)
	assert.Equal(t, "organic", detection.WasteType)
}

func TestStoreDetection_Duplicate(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateDetection)

	detection, err := svc.StoreDetection(ctx, &entity.StoreWasteRequest{
		Latitude:  55.75,
		Longitude: 37.61,
		Timestamp: time.Now(),
	})

	assert.Nil(t, detection)
	assert.ErrorIs(t, err, repository.ErrDuplicateDetection)
}

func TestListDetections(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	repo.On("List", ctx).Return([]entity.WasteDetection{{WasteType: "plastic"}}, nil)

	detections, err := svc.ListDetections(ctx)

	require.NoError(t, err)
	assert.Len(t, detections, 1)
}

func TestDeleteDetection_NotFound(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	id := uuid.New()

	repo.On("Delete", ctx, id).Return(repository.ErrDetectionNotFound)

	assert.ErrorIs(t, svc.DeleteDetection(ctx, id), repository.ErrDetectionNotFound)
}

func TestAdminLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAdminService("admin", string(hash), util.NewJWTManager("test-secret", time.Hour))

	resp, err := svc.Login(&entity.AdminLoginRequest{Username: "admin", Password: "s3cret"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestAdminLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAdminService("admin", string(hash), util.NewJWTManager("test-secret", time.Hour))

	resp, err := svc.Login(&entity.AdminLoginRequest{Username: "admin", Password: "wrong"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin_UnknownUser(t *testing.T) {
	svc := NewAdminService("admin", "some-hash", util.NewJWTManager("test-secret", time.Hour))

	resp, err := svc.Login(&entity.AdminLoginRequest{Username: "someone", Password: "s3cret"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminLogin_NoHashConfigured(t *testing.T) {
	svc := NewAdminService("admin", "", util.NewJWTManager("test-secret", time.Hour))

	resp, err := svc.Login(&entity.AdminLoginRequest{Username: "admin", Password: "anything"})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

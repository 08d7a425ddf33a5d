package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"smartwaste/waste-service/internal/app/waste/entity"
	"smartwaste/waste-service/internal/app/waste/repository"
	"smartwaste/waste-service/internal/app/waste/service"
	"smartwaste/waste-service/internal/app/waste/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Максимальный размер загружаемого снимка (10 MB)
const maxUploadSize = 10 << 20

type WasteServiceInterface interface {
	ClassifyImage(ctx context.Context, req *service.ClassifyRequest) (*entity.WasteAnalysis, error)
	StoreDetection(ctx context.Context, req *entity.StoreWasteRequest) (*entity.WasteDetection, error)
	ListDetections(ctx context.Context) ([]entity.WasteDetection, error)
	DeleteDetection(ctx context.Context, id uuid.UUID) error
}

type AdminServiceInterface interface {
	Login(req *entity.AdminLoginRequest) (*entity.AdminLoginResponse, error)
}

type WasteHandler struct {
	wasteService WasteServiceInterface
	adminService AdminServiceInterface
	validator    *validator.Validate
}

func NewWasteHandler(wasteService WasteServiceInterface, adminService AdminServiceInterface) *WasteHandler {
	return &WasteHandler{
		wasteService: wasteService,
		adminService: adminService,
		validator:    validator.New(),
	}
}

// Classify обрабатывает POST /api/waste/classify
// multipart поле image обязательно, latitude/longitude опциональны,
// ?detailed=1 запрашивает расширенную схему анализа
func (h *WasteHandler) Classify(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}

	imageBase64, err := util.PrepareImage(data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, util.ErrNotAnImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not an image"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to process image"})
		return
	}

	req := &service.ClassifyRequest{
		ImageBase64: imageBase64,
		Detailed:    isDetailed(c.Query("detailed")),
	}

	if lat, lng, ok := parseCoordinates(c.PostForm("latitude"), c.PostForm("longitude")); ok {
		req.Latitude = &lat
		req.Longitude = &lng
	}

	analysis, err := h.wasteService.ClassifyImage(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrClassifierUnavailable) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Waste classification is temporarily unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to classify image"})
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// StoreWaste обрабатывает POST /api/waste/store-waste
func (h *WasteHandler) StoreWaste(c *gin.Context) {
	var req entity.StoreWasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	detection, err := h.wasteService.StoreDetection(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateDetection) {
			c.JSON(http.StatusConflict, gin.H{"error": "Detection already recorded for this point"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store detection"})
		return
	}

	c.JSON(http.StatusCreated, detection)
}

// GetLocations обрабатывает GET /api/location/get-location
func (h *WasteHandler) GetLocations(c *gin.Context) {
	detections, err := h.wasteService.ListDetections(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get locations"})
		return
	}

	if detections == nil {
		detections = make([]entity.WasteDetection, 0)
	}

	c.JSON(http.StatusOK, entity.LocationsResponse{Locations: detections})
}

// AdminLogin обрабатывает POST /api/admin/login
func (h *WasteHandler) AdminLogin(c *gin.Context) {
	var req entity.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	resp, err := h.adminService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteLocation обрабатывает DELETE /api/location/:id (только администратор)
func (h *WasteHandler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location ID"})
		return
	}

	if err := h.wasteService.DeleteDetection(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrDetectionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete location"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Location deleted successfully"})
}

func isDetailed(raw string) bool {
	return raw == "1" || raw == "true"
}

// parseCoordinates разбирает опциональную геопривязку из multipart формы
func parseCoordinates(latRaw, lngRaw string) (float64, float64, bool) {
	if latRaw == "" || lngRaw == "" {
		return 0, 0, false
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, false
	}

	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil || lng < -180 || lng > 180 {
		return 0, 0, false
	}

	return lat, lng, true
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}

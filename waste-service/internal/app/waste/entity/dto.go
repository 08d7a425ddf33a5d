package entity

import "time"

// StoreWasteRequest - ручная запись обнаружения (классификатор - советчик,
// координаты обязательны)
type StoreWasteRequest struct {
	Latitude    float64   `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   float64   `json:"longitude" validate:"required,gte=-180,lte=180"`
	Timestamp   time.Time `json:"timestamp" validate:"required"`
	WasteType   string    `json:"wasteType"`
	Confidence  float64   `json:"confidence" validate:"gte=0,lte=1"`
	Description string    `json:"description"`
}

type LocationsResponse struct {
	Locations []WasteDetection `json:"locations"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // Время жизни токена в секундах
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

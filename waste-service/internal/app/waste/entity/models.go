package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WasteDetection - геопривязанная запись об обнаруженных отходах
// Уникальный индекс (latitude, longitude, timestamp) не дает записать
// один и тот же снимок дважды
type WasteDetection struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Latitude    float64   `json:"latitude" gorm:"not null;uniqueIndex:idx_detection_point"`
	Longitude   float64   `json:"longitude" gorm:"not null;uniqueIndex:idx_detection_point"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null;uniqueIndex:idx_detection_point"`
	WasteType   string    `json:"wasteType" gorm:"type:varchar(100)"`
	Confidence  float64   `json:"confidence"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (WasteDetection) TableName() string {
	return "waste_detections"
}

// BeforeCreate генерирует UUID для новой записи
func (d *WasteDetection) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// WasteAnalysis - результат классификации изображения моделью
// Расширенные поля заполняются только в detailed режиме
type WasteAnalysis struct {
	IsWaste             bool     `json:"isWaste"`
	WasteType           string   `json:"wasteType"`
	Confidence          float64  `json:"confidence"`
	Description         string   `json:"description"`
	DisposalMethod      string   `json:"disposalMethod,omitempty"`
	Materials           []string `json:"materials,omitempty"`
	EnvironmentalImpact string   `json:"environmentalImpact,omitempty"`
	DisposalMethods     []string `json:"disposalMethods,omitempty"`
	RecyclingInfo       string   `json:"recyclingInfo,omitempty"`
	AlternativeUses     []string `json:"alternativeUses,omitempty"`
}

package infrastructure

import (
	"context"

	"smartwaste/waste-service/internal/app/waste/entity"
)

// WasteClassifier - доступ к LLM для распознавания отходов на снимке
// ClassifyImage отправляет изображение в vision модель, ClassifyText -
// запасной текстовый вариант, когда vision модель недоступна
type WasteClassifier interface {
	ClassifyImage(ctx context.Context, imageBase64 string, detailed bool) (*entity.WasteAnalysis, error)
	ClassifyText(ctx context.Context, imageBase64 string, detailed bool) (*entity.WasteAnalysis, error)
}

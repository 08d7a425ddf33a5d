package util

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

var ErrNotAnImage = errors.New("uploaded file is not an image")

// Длинная сторона снимка после сжатия
const maxImageEdge = 800

// Качество JPEG после переупаковки
const jpegQuality = 70

// IsImageContentType проверяет MIME тип загруженного файла
func IsImageContentType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// PrepareImage приводит снимок к виду, пригодному для отправки в vision модель:
// уменьшает длинную сторону до 800px с сохранением пропорций, пережимает
// в JPEG q70 и кодирует в base64. Исходники с камер телефонов весят
// мегабайты, без сжатия запрос к API не проходит по лимитам
func PrepareImage(data []byte, contentType string) (string, error) {
	if !IsImageContentType(contentType) {
		return "", ErrNotAnImage
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	resized := imaging.Fit(img, maxImageEdge, maxImageEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

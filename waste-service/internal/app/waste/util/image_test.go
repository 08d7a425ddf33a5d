package util

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestIsImageContentType(t *testing.T) {
	assert.True(t, IsImageContentType("image/jpeg"))
	assert.True(t, IsImageContentType("image/png"))
	assert.False(t, IsImageContentType("application/pdf"))
	assert.False(t, IsImageContentType("text/plain"))
}

func TestPrepareImage_RejectsNonImage(t *testing.T) {
	_, err := PrepareImage([]byte("%PDF-1.4"), "application/pdf")

	assert.ErrorIs(t, err, ErrNotAnImage)
}

func TestPrepareImage_RejectsCorruptData(t *testing.T) {
	_, err := PrepareImage([]byte("not an image at all"), "image/jpeg")

	assert.Error(t, err)
}

func TestPrepareImage_ResizesLargeImage(t *testing.T) {
	data := testPNG(t, 1600, 1200)

	encoded, err := PrepareImage(data, "image/png")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 800, bounds.Dx())
	assert.Equal(t, 600, bounds.Dy())
}

func TestPrepareImage_KeepsSmallImageSize(t *testing.T) {
	data := testPNG(t, 400, 300)

	encoded, err := PrepareImage(data, "image/png")
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(decoded))
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Equal(t, 400, bounds.Dx())
	assert.Equal(t, 300, bounds.Dy())
}

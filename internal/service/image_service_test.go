package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"wrongbook_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCropImage_BasicCrop(t *testing.T) {
	svc := NewImageService()
	data := encodeTestPNG(t, 200, 100)

	out, w, h, err := svc.CropImage(data, ImageBox{Ymin: 10, Xmin: 20, Ymax: 60, Xmax: 120})
	require.NoError(t, err)
	assert.Equal(t, 100, w)
	assert.Equal(t, 50, h)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 100, decoded.Bounds().Dx())
	assert.Equal(t, 50, decoded.Bounds().Dy())
}

func TestCropImage_ClampsOutOfBounds(t *testing.T) {
	svc := NewImageService()
	data := encodeTestPNG(t, 100, 100)

	// 包围盒越界时截到图片边界
	_, w, h, err := svc.CropImage(data, ImageBox{Ymin: -10, Xmin: 50, Ymax: 500, Xmax: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, w)
	assert.Equal(t, 100, h)
}

func TestCropImage_EmptyRegion(t *testing.T) {
	svc := NewImageService()
	data := encodeTestPNG(t, 100, 100)

	// 整个包围盒落在图片外面
	_, _, _, err := svc.CropImage(data, ImageBox{Ymin: 200, Xmin: 200, Ymax: 300, Xmax: 300})
	require.Error(t, err)
	assert.Equal(t, util.KindInvalid, util.KindOf(err))
}

func TestCropImage_DownscalesLargeCrop(t *testing.T) {
	svc := NewImageService()
	data := encodeTestPNG(t, 1600, 400)

	_, w, h, err := svc.CropImage(data, ImageBox{Ymin: 0, Xmin: 0, Ymax: 400, Xmax: 1600})
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 200, h)
}

func TestCropImage_InvalidData(t *testing.T) {
	svc := NewImageService()
	_, _, _, err := svc.CropImage([]byte("not an image"), ImageBox{Ymax: 10, Xmax: 10})
	require.Error(t, err)
}

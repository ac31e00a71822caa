package service

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// 裁剪结果的最大边长，超出时等比缩小以节省存储
const cropMaxDimension = 800

type ImageService struct{}

func NewImageService() *ImageService {
	return &ImageService{}
}

// CropImage 按原图像素坐标裁剪题目插图并重编码为 PNG。
// 坐标越界会被截到图片边界内，截完区域为空则报 Invalid。
// 返回裁剪后的字节流与最终宽高。
func (s *ImageService) CropImage(imageData []byte, box ImageBox) ([]byte, int, int, error) {
	src, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	ymin := clamp(box.Ymin, 0, height)
	xmin := clamp(box.Xmin, 0, width)
	ymax := clamp(box.Ymax, ymin, height)
	xmax := clamp(box.Xmax, xmin, width)

	if ymax <= ymin || xmax <= xmin {
		logger.Log.Error("Invalid crop box",
			zap.Int("ymin", box.Ymin), zap.Int("xmin", box.Xmin),
			zap.Int("ymax", box.Ymax), zap.Int("xmax", box.Xmax),
			zap.Int("imageWidth", width), zap.Int("imageHeight", height))
		return nil, 0, 0, util.InvalidError("invalid crop coordinates")
	}

	cropRect := image.Rect(bounds.Min.X+xmin, bounds.Min.Y+ymin, bounds.Min.X+xmax, bounds.Min.Y+ymax)
	cropped := image.NewRGBA(image.Rect(0, 0, cropRect.Dx(), cropRect.Dy()))
	draw.Copy(cropped, image.Point{}, src, cropRect, draw.Src, nil)

	result := downscale(cropped)

	var buf bytes.Buffer
	if err := png.Encode(&buf, result); err != nil {
		return nil, 0, 0, fmt.Errorf("encode png: %w", err)
	}

	outW := result.Bounds().Dx()
	outH := result.Bounds().Dy()
	logger.Log.Info("Cropped question image",
		zap.Int("ymin", ymin), zap.Int("xmin", xmin),
		zap.Int("ymax", ymax), zap.Int("xmax", xmax),
		zap.Int("width", outW), zap.Int("height", outH))
	return buf.Bytes(), outW, outH, nil
}

// downscale 等比缩小到 cropMaxDimension 以内，小图原样返回
func downscale(src *image.RGBA) image.Image {
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w <= cropMaxDimension && h <= cropMaxDimension {
		return src
	}

	scale := float64(cropMaxDimension) / float64(w)
	if h > w {
		scale = float64(cropMaxDimension) / float64(h)
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

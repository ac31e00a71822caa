package service

import (
	"context"
	"encoding/json"
	"strings"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"
	"wrongbook_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const ocrPrompt = `请识别这张试卷图片中的所有题目，按出现顺序输出 JSON 数组，不要输出任何其他内容。
每个元素的格式为：
{"id": 序号, "text": "题目完整文字", "has_image": 是否包含配图, "image_box": {"ymin": 上, "xmin": 左, "ymax": 下, "xmax": 右}}
没有配图时省略 image_box 字段。坐标为原图像素坐标。`

// ImageBox 题目配图在原图中的像素包围盒
type ImageBox struct {
	Ymin int `json:"ymin"`
	Xmin int `json:"xmin"`
	Ymax int `json:"ymax"`
	Xmax int `json:"xmax"`
}

// OcrItem 单道识别出的题目
type OcrItem struct {
	ID       int       `json:"id"`
	Text     string    `json:"text"`
	HasImage bool      `json:"hasImage"`
	ImageBox *ImageBox `json:"imageBox,omitempty"`
}

type OCRService struct {
	ai *AIService
}

func NewOCRService(ai *AIService) *OCRService {
	return &OCRService{ai: ai}
}

// ExtractQuestions 把整页试卷图片识别成有序题目列表。
// 模型输出不可控，这里做容错解析：剥掉 markdown 围栏、
// 定位第一个 JSON 数组、逐条宽松取字段。
func (s *OCRService) ExtractQuestions(ctx context.Context, imageData []byte, contentType string) ([]OcrItem, error) {
	raw, err := s.ai.VisionCompletion(ctx, ocrPrompt, imageData, contentType)
	if err != nil {
		monitoring.OcrExtractCounter.WithLabelValues("error").Inc()
		return nil, util.ServiceUnavailableError("OCR service unavailable", err)
	}

	items := parseOcrItems(raw)
	monitoring.OcrExtractCounter.WithLabelValues("success").Inc()
	logger.Log.Info("OCR extraction completed", zap.Int("questions", len(items)))
	return items, nil
}

func parseOcrItems(raw string) []OcrItem {
	arr := extractJSONArray(raw)
	if arr == "" {
		return nil
	}

	var rawItems []map[string]interface{}
	if err := json.Unmarshal([]byte(arr), &rawItems); err != nil {
		logger.Log.Warn("OCR response is not a valid JSON array", zap.Error(err))
		return nil
	}

	items := make([]OcrItem, 0, len(rawItems))
	for i, rawItem := range rawItems {
		text, _ := rawItem["text"].(string)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}

		item := OcrItem{ID: i + 1, Text: text}
		if id, ok := asInt(rawItem["id"]); ok && id > 0 {
			item.ID = id
		}
		if hasImage, ok := rawItem["has_image"].(bool); ok {
			item.HasImage = hasImage
		}
		if box := parseImageBox(rawItem["image_box"]); box != nil {
			item.ImageBox = box
			item.HasImage = true
		}
		items = append(items, item)
	}
	return items
}

// extractJSONArray 从模型回复中提取第一个顶层 JSON 数组，
// 兼容 ```json 围栏与数组前后的多余文字
func extractJSONArray(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx >= 0 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
	}

	start := strings.Index(raw, "[")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			escaped = inString
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1]
				}
			}
		}
	}
	return ""
}

// parseImageBox 宽松解析包围盒：兼容 ymin/y_min/top 等同义键，
// 坐标负值截到 0、顺序颠倒自动交换；解析不出就当没有配图
func parseImageBox(value interface{}) *ImageBox {
	boxMap, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}

	ymin, okY1 := pickInt(boxMap, "ymin", "y_min", "top")
	xmin, okX1 := pickInt(boxMap, "xmin", "x_min", "left")
	ymax, okY2 := pickInt(boxMap, "ymax", "y_max", "bottom")
	xmax, okX2 := pickInt(boxMap, "xmax", "x_max", "right")
	if !okY1 || !okX1 || !okY2 || !okX2 {
		return nil
	}

	if ymin < 0 {
		ymin = 0
	}
	if xmin < 0 {
		xmin = 0
	}
	if ymax < ymin {
		ymin, ymax = ymax, ymin
	}
	if xmax < xmin {
		xmin, xmax = xmax, xmin
	}
	if ymax <= ymin || xmax <= xmin {
		return nil
	}
	return &ImageBox{Ymin: ymin, Xmin: xmin, Ymax: ymax, Xmax: xmax}
}

func pickInt(m map[string]interface{}, keys ...string) (int, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if n, ok := asInt(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return int(f), true
	case string:
		var f float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(n)), &f); err != nil {
			return 0, false
		}
		return int(f), true
	}
	return 0, false
}

// ToQuestionImage 把识别出的包围盒转换为题目插图记录（裁剪前的原始坐标）
func (b *ImageBox) ToQuestionImage(questionID uint) *model.QuestionImage {
	return &model.QuestionImage{
		QuestionID: questionID,
		Ymin:       b.Ymin,
		Xmin:       b.Xmin,
		Ymax:       b.Ymax,
		Xmax:       b.Xmax,
	}
}

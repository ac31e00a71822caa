package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"wrongbook_backend/internal/model"
	"wrongbook_backend/internal/repository"
	"wrongbook_backend/internal/util"
	"wrongbook_backend/pkg/logger"

	"go.uber.org/zap"
)

const (
	variantDefaultCount = 3
	variantMaxCount     = 10
)

// VariantService 基于原题生成同类型变式题
type VariantService struct {
	ai       *AIService
	variants *repository.VariantRepository
	qs       *repository.QuestionRepository
}

func NewVariantService(ai *AIService, variants *repository.VariantRepository, qs *repository.QuestionRepository) *VariantService {
	return &VariantService{ai: ai, variants: variants, qs: qs}
}

type GenerateVariantsInput struct {
	SourceText string `json:"sourceText" binding:"required"`
	QuestionID *uint  `json:"questionId"`
	Grade      string `json:"grade"`
	Subject    string `json:"subject"`
	Count      int    `json:"count"`
}

// GenerateVariants 生成最多 count 道变式题；传入 questionId 时落库留存。
// 模型输出容错：优先按 JSON 数组解析，失败时退化为按行切分。
func (s *VariantService) GenerateVariants(ctx context.Context, input GenerateVariantsInput) ([]string, error) {
	count := input.Count
	if count <= 0 {
		count = variantDefaultCount
	}
	if count > variantMaxCount {
		count = variantMaxCount
	}

	if input.QuestionID != nil {
		exists, err := s.qs.Exists(*input.QuestionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, util.NotFoundError("question")
		}
	}

	prompt := buildVariantPrompt(input.SourceText, input.Grade, input.Subject, count)
	raw, err := s.ai.ChatCompletion(ctx,
		"你是一位小学数学与语文出题老师，擅长根据原题出同考点、同难度的变式题。", prompt)
	if err != nil {
		return nil, util.ServiceUnavailableError("variant generation service unavailable", err)
	}

	texts := parseVariantTexts(raw, count)
	if len(texts) == 0 {
		return nil, util.ServiceUnavailableError("variant generation returned no usable output", nil)
	}

	if input.QuestionID != nil {
		rows := make([]model.Variant, 0, len(texts))
		for i, text := range texts {
			rows = append(rows, model.Variant{
				QuestionID: *input.QuestionID,
				Text:       text,
				Sequence:   i + 1,
				Grade:      input.Grade,
				Subject:    input.Subject,
				Status:     "active",
			})
		}
		if err := s.variants.CreateBatch(rows); err != nil {
			return nil, err
		}
	}

	logger.Log.Info("Variants generated",
		zap.Int("count", len(texts)),
		zap.Bool("persisted", input.QuestionID != nil))
	return texts, nil
}

func (s *VariantService) ListByQuestion(questionID uint) ([]model.Variant, error) {
	exists, err := s.qs.Exists(questionID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.NotFoundError("question")
	}
	return s.variants.ListByQuestion(questionID)
}

func buildVariantPrompt(sourceText, grade, subject string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "请根据下面这道题，出 %d 道考察相同知识点、难度相当的变式题。\n", count)
	if grade != "" {
		fmt.Fprintf(&sb, "适用年级：%s。\n", grade)
	}
	if subject != "" {
		fmt.Fprintf(&sb, "学科：%s。\n", subject)
	}
	sb.WriteString("只输出一个 JSON 字符串数组，每个元素是一道完整的题目文字，不要编号，不要输出其他内容。\n\n")
	sb.WriteString("原题：\n")
	sb.WriteString(sourceText)
	return sb.String()
}

// parseVariantTexts 解析模型输出：先按 JSON 数组取，
// 取不到就按非空行切分兜底，最多保留 limit 条
func parseVariantTexts(raw string, limit int) []string {
	if arr := extractJSONArray(raw); arr != "" {
		var texts []string
		if err := json.Unmarshal([]byte(arr), &texts); err == nil {
			return sanitizeVariants(texts, limit)
		}
	}

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "`")
		if line == "" || line == "json" || line == "[" || line == "]" {
			continue
		}
		lines = append(lines, line)
	}
	return sanitizeVariants(lines, limit)
}

func sanitizeVariants(texts []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		out = append(out, text)
		if len(out) == limit {
			break
		}
	}
	return out
}

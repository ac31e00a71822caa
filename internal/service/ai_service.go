package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wrongbook_backend/internal/config"
)

// AIService 封装外部大模型网关（OpenAI 兼容接口），
// OCR 识别走视觉模型，变式题生成走文本模型
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

type AIChatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"` // 纯文本为 string，视觉请求为 content part 数组
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatCompletion 文本补全，system 为空时不注入系统提示词
func (s *AIService) ChatCompletion(ctx context.Context, system, prompt string) (string, error) {
	messages := []AIChatMessage{}
	if system != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: system})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	return s.complete(ctx, ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	})
}

// VisionCompletion 视觉补全：图片以 base64 data URI 内联到请求里
func (s *AIService) VisionCompletion(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))

	messages := []AIChatMessage{
		{
			Role: "user",
			Content: []map[string]interface{}{
				{"type": "text", "text": prompt},
				{"type": "image_url", "image_url": map[string]string{"url": dataURI}},
			},
		},
	}

	return s.complete(ctx, ChatCompletionRequest{
		Model:    s.config.OCRModel,
		Messages: messages,
	})
}

func (s *AIService) complete(ctx context.Context, reqBody ChatCompletionRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}
	return result.Choices[0].Message.Content, nil
}

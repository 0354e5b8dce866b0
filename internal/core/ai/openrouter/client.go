package openrouter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://openrouter.ai/api/v1"

// Client OpenRouter API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 OpenRouter 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.OpenRouter.Timeout).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenRouter.APIKey)).
		SetHeader("HTTP-Referer", "https://flavorcraft.app").
		SetHeader("X-Title", "FlavorCraft")

	return &Client{
		config: cfg,
		client: client,
	}
}

// Generate 送出 prompt（可附帶 base64 圖片）並回傳模型的原始文字回應
// 錯誤會被分類為 MODEL_TIMEOUT / MODEL_QUOTA_EXCEEDED / MODEL_MALFORMED_RESPONSE
func (c *Client) Generate(ctx context.Context, prompt string, imageData string) (string, error) {
	msgContent := []map[string]interface{}{
		{
			"type": "text",
			"text": prompt,
		},
	}
	if imageData != "" {
		url := imageData
		if !strings.HasPrefix(imageData, "data:image/") {
			url = fmt.Sprintf("data:image/jpeg;base64,%s", imageData)
		}
		msgContent = append(msgContent, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": url,
			},
		})
	}

	// 構建請求
	req := map[string]interface{}{
		"model": c.config.OpenRouter.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": msgContent,
			},
		},
		"max_tokens": c.config.OpenRouter.MaxTokens,
	}

	common.LogDebug("送出 OpenRouter 請求",
		zap.String("model", c.config.OpenRouter.Model),
		zap.Bool("with_image", imageData != ""),
	)

	start := time.Now()

	// 發送請求
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/chat/completions")

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			common.LogAICall(time.Since(start), common.ErrModelTimeout)
			return "", common.ErrModelTimeout
		}
		common.LogAICall(time.Since(start), err)
		return "", fmt.Errorf("failed to send request to OpenRouter: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		// 繼續解析
	case http.StatusTooManyRequests:
		common.LogAICall(time.Since(start), common.ErrModelQuotaExceeded)
		return "", common.ErrModelQuotaExceeded
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		common.LogAICall(time.Since(start), common.ErrModelTimeout)
		return "", common.ErrModelTimeout
	default:
		err := fmt.Errorf("OpenRouter API returned error (status %d): %s", resp.StatusCode(), resp.String())
		common.LogAICall(time.Since(start), err)
		return "", err
	}

	// 解析回應
	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		common.LogAICall(time.Since(start), err)
		return "", common.NewError(common.ErrCodeModelMalformedResponse, "無法解析模型回應", http.StatusBadGateway, err)
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		common.LogAICall(time.Since(start), common.ErrModelMalformedResponse)
		return "", common.ErrModelMalformedResponse
	}

	common.LogAICall(time.Since(start), nil)
	return result.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	type timeouter interface{ Timeout() bool }
	var te timeouter
	if errors.As(err, &te) {
		return te.Timeout()
	}
	return strings.Contains(err.Error(), "Client.Timeout exceeded")
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}

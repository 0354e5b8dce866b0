package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"flavorcraft/internal/pkg/common"
)

// Generator 生成模型調用介面，由 ai/service 實作
type Generator interface {
	ProcessRequest(ctx context.Context, prompt string, imageData string) (string, error)
}

const classifyPrompt = `You are a food image classifier. Look at the attached photo and identify the dish.
Respond with ONLY a JSON object in this exact format, no other text:
{"dish": "<short dish name>", "cuisine": "<cuisine, e.g. Italian, Indian, Chinese, Mexican, Thai, or International>", "confidence": <number between 0 and 1>}`

// OpenRouterClassifier 以視覺模型辨識菜餚的分類後端
type OpenRouterClassifier struct {
	generator Generator
}

// NewOpenRouterClassifier 創建視覺模型分類後端
func NewOpenRouterClassifier(generator Generator) *OpenRouterClassifier {
	return &OpenRouterClassifier{generator: generator}
}

// Classify 將圖片送交視覺模型辨識
func (c *OpenRouterClassifier) Classify(ctx context.Context, imageData []byte) (*Classification, error) {
	encoded := base64.StdEncoding.EncodeToString(imageData)

	content, err := c.generator.ProcessRequest(ctx, classifyPrompt, encoded)
	if err != nil {
		return nil, fmt.Errorf("vision model request failed: %w", err)
	}

	raw := common.ExtractJSONObject(content)
	if raw == "" {
		return nil, fmt.Errorf("vision model returned no JSON object")
	}

	var parsed struct {
		Dish       string  `json:"dish"`
		Cuisine    string  `json:"cuisine"`
		Confidence float64 `json:"confidence"`
	}
	if err := common.ParseJSON(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse vision model response: %w", err)
	}
	if parsed.Dish == "" {
		return nil, fmt.Errorf("vision model response missing dish name")
	}

	return &Classification{
		Label:      parsed.Dish,
		Cuisine:    parsed.Cuisine,
		Confidence: parsed.Confidence,
	}, nil
}

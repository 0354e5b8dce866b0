package audio

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

const googleSpeechURL = "https://speech.googleapis.com/v1/speech:recognize"

// GoogleBackend Google Speech 轉錄後端（備援引擎）
type GoogleBackend struct {
	client *resty.Client
	config config.GoogleConfig
}

// NewGoogleBackend 創建 Google Speech 後端
func NewGoogleBackend(cfg config.GoogleConfig) *GoogleBackend {
	client := resty.New().SetTimeout(cfg.Timeout)
	return &GoogleBackend{
		client: client,
		config: cfg,
	}
}

// Name 後端名稱
func (b *GoogleBackend) Name() string {
	return "google"
}

// Transcribe 呼叫 Google Speech API 轉錄語音
func (b *GoogleBackend) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	req := map[string]interface{}{
		"config": map[string]interface{}{
			"languageCode":               b.config.Language,
			"enableAutomaticPunctuation": true,
		},
		"audio": map[string]string{
			"content": base64.StdEncoding.EncodeToString(audioData),
		},
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParam("key", b.config.APIKey).
		SetBody(req).
		Post(googleSpeechURL)
	if err != nil {
		return "", fmt.Errorf("google speech request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("google speech returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Results []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"results"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse google speech response: %w", err)
	}

	if len(result.Results) == 0 || len(result.Results[0].Alternatives) == 0 {
		return "", fmt.Errorf("google speech returned no transcript")
	}

	return result.Results[0].Alternatives[0].Transcript, nil
}

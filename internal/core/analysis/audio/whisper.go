package audio

import (
	"bytes"
	"context"
	"fmt"

	"flavorcraft/internal/infrastructure/config"

	openai "github.com/sashabaranov/go-openai"
)

// WhisperBackend OpenAI Whisper 轉錄後端（主引擎）
type WhisperBackend struct {
	client *openai.Client
	config config.WhisperConfig
}

// NewWhisperBackend 創建 Whisper 後端
func NewWhisperBackend(cfg config.WhisperConfig) *WhisperBackend {
	return &WhisperBackend{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
	}
}

// Name 後端名稱
func (b *WhisperBackend) Name() string {
	return "whisper"
}

// Transcribe 呼叫 Whisper API 轉錄語音
func (b *WhisperBackend) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	if b.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.config.Timeout)
		defer cancel()
	}

	resp, err := b.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    b.config.Model,
		Reader:   bytes.NewReader(audioData),
		FilePath: "recording.wav",
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription failed: %w", err)
	}

	return resp.Text, nil
}

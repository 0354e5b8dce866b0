package audio

import (
	"context"
	"strings"

	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
)

// Backend 語音轉文字後端
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, audioData []byte) (string, error)
}

// Analyzer 語音模態分析器：轉錄後端依序嘗試，全數失敗才判定此模態失敗
type Analyzer struct {
	backends []Backend
}

// NewAnalyzer 創建語音分析器，backends 依優先序排列
func NewAnalyzer(backends ...Backend) *Analyzer {
	return &Analyzer{backends: backends}
}

// Transcribe 將語音轉成文字，依序嘗試各後端
func (a *Analyzer) Transcribe(ctx context.Context, audioData []byte) (string, error) {
	var lastErr error
	for _, backend := range a.backends {
		transcript, err := backend.Transcribe(ctx, audioData)
		if err != nil {
			common.LogWarn("語音轉錄後端失敗",
				zap.String("後端", backend.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if strings.TrimSpace(transcript) == "" {
			common.LogWarn("語音轉錄結果為空",
				zap.String("後端", backend.Name()),
			)
			lastErr = common.ErrTranscriptionUnavailable
			continue
		}
		common.LogDebug("語音轉錄完成",
			zap.String("後端", backend.Name()),
			zap.Int("字數", len(transcript)),
		)
		return transcript, nil
	}

	if lastErr == nil {
		lastErr = common.ErrTranscriptionUnavailable
	}
	return "", lastErr
}

// Analyze 分析語音輸入，未提供語音回傳 unavailable
// 所有後端都失敗時回傳 failed(TRANSCRIPTION_UNAVAILABLE)
func (a *Analyzer) Analyze(ctx context.Context, audioData []byte) common.AnalysisResult {
	if len(audioData) == 0 {
		return common.UnavailableResult("no audio provided")
	}

	if len(a.backends) == 0 {
		return common.UnavailableResult("no transcription backend configured")
	}

	transcript, err := a.Transcribe(ctx, audioData)
	if err != nil {
		return common.FailedResult(common.ErrCodeTranscriptionUnavailable)
	}

	payload := &common.AudioPayload{
		Transcript: transcript,
	}
	payload.Keywords, payload.ServingSize, payload.SpiceLevel = ExtractKeywords(transcript)

	return common.AudioResult(payload)
}

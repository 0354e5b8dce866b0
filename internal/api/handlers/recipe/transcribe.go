package recipe

import (
	"context"
	"net/http"
	"time"

	"flavorcraft/internal/core/analysis/audio"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Transcriber 語音轉文字介面，由 audio 分析器實作
type Transcriber interface {
	Transcribe(ctx context.Context, audioData []byte) (string, error)
}

// TranscribeHandler 獨立的語音轉錄端點處理程序
type TranscribeHandler struct {
	transcriber Transcriber
	upload      config.UploadConfig
}

// NewTranscribeHandler 創建語音轉錄處理程序
func NewTranscribeHandler(transcriber Transcriber, upload config.UploadConfig) *TranscribeHandler {
	return &TranscribeHandler{
		transcriber: transcriber,
		upload:      upload,
	}
}

// HandleTranscribe 語音轉錄端點：回傳轉錄文字與抽取出的偏好關鍵字
func (h *TranscribeHandler) HandleTranscribe(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		respondError(c, requestID, common.NewError(common.ErrCodeInvalidRequest,
			"缺少 audio 欄位", http.StatusBadRequest, err))
		return
	}

	data, err := readUpload(fileHeader, allowedAudioExts, h.upload.AudioMaxBytes)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	transcript, err := h.transcriber.Transcribe(c.Request.Context(), data)
	if err != nil {
		respondError(c, requestID, common.ErrTranscriptionUnavailable)
		return
	}

	keywords, servingSize, spiceLevel := audio.ExtractKeywords(transcript)

	common.LogInfo("語音轉錄請求完成",
		zap.String("request_id", requestID),
		zap.Int("字數", len(transcript)),
	)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"transcript":   transcript,
		"keywords":     keywords,
		"serving_size": servingSize,
		"spice_level":  spiceLevel,
		"timestamp":    time.Now().Format(time.RFC3339),
	})
}

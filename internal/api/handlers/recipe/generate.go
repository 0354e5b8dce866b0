package recipe

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"flavorcraft/internal/core/orchestrator"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 上傳檔案的副檔名白名單
var (
	allowedImageExts = map[string]bool{
		".png": true, ".jpg": true, ".jpeg": true,
		".gif": true, ".bmp": true, ".webp": true,
	}
	allowedAudioExts = map[string]bool{
		".wav": true, ".mp3": true, ".ogg": true,
		".webm": true, ".m4a": true, ".aac": true,
	}
)

// Generator 食譜生成調度介面，由 orchestrator 實作
type Generator interface {
	Generate(ctx context.Context, inputs common.RawInputs) (*orchestrator.Result, error)
}

// Handler 食譜生成處理程序
type Handler struct {
	generator Generator
	upload    config.UploadConfig
}

// NewHandler 創建食譜生成處理程序
func NewHandler(generator Generator, upload config.UploadConfig) *Handler {
	return &Handler{
		generator: generator,
		upload:    upload,
	}
}

// HandleGenerate 多模態食譜生成端點
// 接受 multipart/form-data，欄位 text / image / audio 皆為可選，
// 至少需提供一種輸入
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	inputs := common.RawInputs{
		Text: c.PostForm("text"),
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		data, err := readUpload(fileHeader, allowedImageExts, h.upload.ImageMaxBytes)
		if err != nil {
			respondError(c, requestID, err)
			return
		}
		inputs.Image = data
	}

	if fileHeader, err := c.FormFile("audio"); err == nil {
		data, err := readUpload(fileHeader, allowedAudioExts, h.upload.AudioMaxBytes)
		if err != nil {
			respondError(c, requestID, err)
			return
		}
		inputs.Audio = data
	}

	result, err := h.generator.Generate(c.Request.Context(), inputs)
	if err != nil {
		respondError(c, requestID, err)
		return
	}

	common.LogInfo("食譜生成請求完成",
		zap.String("request_id", requestID),
		zap.String("生成路徑", result.GenerationInfo.Method),
		zap.String("食譜名稱", result.Recipe.Name),
	)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"recipe":  result.Recipe,
		"analysis_results": gin.H{
			"text_analysis":        result.Text,
			"image_classification": result.Image,
			"audio_transcription":  result.Audio,
		},
		"generation_info": result.GenerationInfo,
		"message":         "Recipe generated successfully",
		"timestamp":       time.Now().Format(time.RFC3339),
	})
}

// readUpload 驗證副檔名與大小後讀出上傳檔案內容
func readUpload(fileHeader *multipart.FileHeader, allowedExts map[string]bool, maxBytes int64) ([]byte, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExts[ext] {
		return nil, common.NewError(common.ErrCodeUnsupportedFormat,
			"不支持的檔案格式: "+ext, http.StatusBadRequest, nil)
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, common.NewError(common.ErrCodeInvalidRequest,
			"檔案過大", http.StatusRequestEntityTooLarge, nil)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, common.NewError(common.ErrCodeInvalidRequest,
			"無法讀取上傳檔案", http.StatusBadRequest, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInvalidRequest,
			"無法讀取上傳檔案", http.StatusBadRequest, err)
	}
	return data, nil
}

// respondError 統一錯誤回應格式
func respondError(c *gin.Context, requestID string, err error) {
	status := http.StatusInternalServerError
	code := common.ErrCodeInternalError
	message := "Internal server error"

	var ce *common.CustomError
	if errors.As(err, &ce) {
		status = ce.Status
		code = ce.Code
		message = ce.Message
	}

	common.LogWarn("食譜生成請求失敗",
		zap.String("request_id", requestID),
		zap.String("code", code),
		zap.Error(err),
	)

	c.JSON(status, gin.H{
		"success":   false,
		"error":     message,
		"code":      code,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

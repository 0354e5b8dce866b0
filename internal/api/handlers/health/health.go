package health

import (
	"net/http"
	"runtime"
	"time"

	"flavorcraft/internal/core/ai/cache"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Models    map[string]bool        `json:"models"`
	Cache     map[string]interface{} `json:"cache"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// Handler 健康檢查處理程序
type Handler struct {
	config       *config.Config
	cacheManager *cache.Manager
}

// NewHandler 創建健康檢查處理程序
func NewHandler(cfg *config.Config, cacheManager *cache.Manager) *Handler {
	return &Handler{
		config:       cfg,
		cacheManager: cacheManager,
	}
}

// HealthCheck 健康檢查處理器，回報各模型後端與快取狀態
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.config.App.Version,
		Models: map[string]bool{
			"recipe_generation":    h.config.OpenRouter.Enabled && h.config.OpenRouter.APIKey != "",
			"image_classification": h.config.OpenRouter.Enabled && h.config.OpenRouter.APIKey != "",
			"audio_transcription": (h.config.STT.Whisper.Enabled && h.config.STT.Whisper.APIKey != "") ||
				(h.config.STT.Google.Enabled && h.config.STT.Google.APIKey != ""),
		},
		Cache: h.cacheManager.GetStats(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查處理器
func (h *Handler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

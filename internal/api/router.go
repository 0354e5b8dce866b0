package api

import (
	"context"
	"net/http"
	"time"

	"flavorcraft/internal/api/handlers/health"
	recipeHandler "flavorcraft/internal/api/handlers/recipe"
	"flavorcraft/internal/api/middleware"
	"flavorcraft/internal/core/ai/cache"
	"flavorcraft/internal/core/ai/service"
	"flavorcraft/internal/core/analysis/audio"
	"flavorcraft/internal/core/analysis/text"
	"flavorcraft/internal/core/analysis/vision"
	"flavorcraft/internal/core/orchestrator"
	"flavorcraft/internal/core/synth"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 整體請求超時，需涵蓋模態分析與一次模型重試
	timeoutDuration = 120 * time.Second
	// 請求體大小上限 (32MB)，需容納圖片加語音的 multipart
	maxBodySize = 32 << 20
)

// SetupRouter 設置路由與整條生成管線
func SetupRouter(cfg *config.Config, cacheManager *cache.Manager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	if cfg.DedupWindow > 0 {
		router.Use(middleware.Deduplication(cfg))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("ai_workers", cfg.AI.Workers),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Duration("timeout", timeoutDuration),
	)

	// 生成模型服務與分析管線
	aiService := service.NewService(cfg, cacheManager)

	textAnalyzer := text.NewAnalyzer()
	imageAnalyzer := vision.NewAnalyzer(vision.NewOpenRouterClassifier(aiService))
	audioAnalyzer := audio.NewAnalyzer(buildAudioBackends(cfg)...)

	var generator synth.Generator
	if cfg.OpenRouter.Enabled && cfg.OpenRouter.APIKey != "" {
		generator = aiService
	} else {
		common.LogWarn("生成模型未設定，所有請求都會使用保底食譜")
	}
	synthesizer := synth.NewSynthesizer(generator, cfg.Synth.MaxRetries)

	orch := orchestrator.New(cfg, textAnalyzer, imageAnalyzer, audioAnalyzer, synthesizer)

	// 全局中間件：設置請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
			})
			c.Abort()
		}
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, cacheManager)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		generateHandler := recipeHandler.NewHandler(orch, cfg.Upload)
		transcribeHandler := recipeHandler.NewTranscribeHandler(audioAnalyzer, cfg.Upload)

		recipeGroup := api.Group("/recipe")
		{
			// 多模態食譜生成
			recipeGroup.POST("/generate", generateHandler.HandleGenerate)

			// 語音轉錄
			recipeGroup.POST("/transcribe", transcribeHandler.HandleTranscribe)
		}
	}

	common.LogInfo("Router setup completed")
	return router, nil
}

// buildAudioBackends 依設定組出語音轉錄後端，依優先序排列
func buildAudioBackends(cfg *config.Config) []audio.Backend {
	var backends []audio.Backend
	if cfg.STT.Whisper.Enabled && cfg.STT.Whisper.APIKey != "" {
		backends = append(backends, audio.NewWhisperBackend(cfg.STT.Whisper))
	}
	if cfg.STT.Google.Enabled && cfg.STT.Google.APIKey != "" {
		backends = append(backends, audio.NewGoogleBackend(cfg.STT.Google))
	}
	return backends
}

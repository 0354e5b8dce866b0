package service

import (
	"context"
	"strings"

	"flavorcraft/internal/core/ai/cache"
	"flavorcraft/internal/core/ai/openrouter"
	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 生成模型服務，統一處理緩存與併發上限
type Service struct {
	config       *config.Config
	client       *openrouter.Client
	cacheManager *cache.Manager
	slots        chan struct{} // 進行中模型調用的上限
}

// NewService 創建生成模型服務
func NewService(cfg *config.Config, cacheManager *cache.Manager) *Service {
	return &Service{
		config:       cfg,
		client:       openrouter.NewClient(cfg),
		cacheManager: cacheManager,
		slots:        make(chan struct{}, cfg.AI.Workers),
	}
}

// ProcessRequest 統一對外方法：查緩存、佔用併發額度、調用模型、寫回緩存
func (s *Service) ProcessRequest(ctx context.Context, prompt string, imageData string) (string, error) {
	cacheKey := normalizePrompt(prompt)

	// 檢查緩存
	if s.config.AI.EnableCache && s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, cacheKey, imageData); err == nil && val != "" {
			return val, nil
		}
	}

	// 佔用併發額度
	select {
	case s.slots <- struct{}{}:
		defer func() { <-s.slots }()
	case <-ctx.Done():
		return "", common.ErrModelTimeout
	}

	content, err := s.client.Generate(ctx, prompt, imageData)
	if err != nil {
		return "", err
	}

	// 寫回緩存
	if s.config.AI.EnableCache && s.cacheManager != nil {
		if err := s.cacheManager.Set(ctx, cacheKey, imageData, content); err != nil {
			common.LogWarn("寫入快取失敗", zap.Error(err))
		}
	}

	return content, nil
}

// normalizePrompt 統一 prompt 格式，去除多餘空白與換行，確保快取 key 一致
func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(prompt)), " ")
}

// Close 關閉服務
func (s *Service) Close() error {
	return s.client.Close()
}

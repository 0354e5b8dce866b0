package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"flavorcraft/internal/infrastructure/config"
	"flavorcraft/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Manager 模型回應緩存管理器
// 內建記憶體層（TTL + LRU），設定 redis_addr 後會額外掛上 Redis 層，
// 記憶體未命中時查 Redis，命中的值會回填記憶體層
type Manager struct {
	config *config.Config
	rdb    *redis.Client
	mu     sync.RWMutex
	store  map[string]cacheEntry
	stats  cacheStats
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	imageHash   string
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewManager 創建緩存管理器，緩存停用時回傳 nil
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]cacheEntry),
		stats:  cacheStats{},
	}

	if cfg.Cache.RedisAddr != "" {
		m.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		common.LogInfo("Redis 緩存層已啟用",
			zap.String("位址", cfg.Cache.RedisAddr),
		)
	}

	// 啟動清理過期緩存的協程
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, prompt, imageData string) (string, error) {
	if m == nil || !m.config.Cache.Enabled {
		return "", common.ErrCacheDisabled
	}

	key := m.generateKey(prompt, imageData)

	m.mu.Lock()
	if entry, exists := m.store[key]; exists {
		// 檢查是否過期
		if time.Now().After(entry.expiresAt) {
			delete(m.store, key)
			m.stats.evictions++
			m.mu.Unlock()
			common.LogDebug("快取已過期", zap.String("鍵", key))
			return m.getFromRedis(ctx, key, prompt, imageData)
		}

		// 檢查圖片哈希是否匹配
		if imageData != "" && entry.imageHash != m.hashString(imageData) {
			m.stats.misses++
			m.mu.Unlock()
			return "", fmt.Errorf("image changed")
		}

		// 更新訪問統計
		entry.lastAccess = time.Now()
		entry.accessCount++
		m.store[key] = entry
		m.stats.hits++
		m.mu.Unlock()

		common.LogDebug("快取命中", zap.String("鍵", key))
		return entry.value, nil
	}
	m.stats.misses++
	m.mu.Unlock()

	return m.getFromRedis(ctx, key, prompt, imageData)
}

// getFromRedis 查詢 Redis 層，命中時回填記憶體層
func (m *Manager) getFromRedis(ctx context.Context, key, prompt, imageData string) (string, error) {
	if m.rdb == nil {
		return "", common.ErrCacheMiss
	}

	val, err := m.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", common.ErrCacheMiss
	}
	if err != nil {
		m.mu.Lock()
		m.stats.errors++
		m.mu.Unlock()
		common.LogWarn("Redis 查詢失敗", zap.Error(err))
		return "", common.ErrCacheMiss
	}

	m.mu.Lock()
	m.setLocalLocked(key, imageData, val)
	m.mu.Unlock()
	common.LogDebug("Redis 快取命中", zap.String("鍵", key))
	return val, nil
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, prompt, imageData, value string) error {
	if m == nil || !m.config.Cache.Enabled {
		return nil
	}

	key := m.generateKey(prompt, imageData)

	// 容量檢查與寫入需在同一臨界區完成，否則併發寫入會超出容量上限
	m.mu.Lock()
	if len(m.store) >= m.config.Cache.MaxSize {
		// 清理過期項目
		evicted := m.cleanupLocked()
		common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))

		// 如果仍然超過大小限制，執行 LRU 清理
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}

		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			m.mu.Unlock()
			common.LogWarn("快取已滿", zap.Int("目前容量", m.config.Cache.MaxSize))
			return common.ErrCacheFull
		}
	}
	m.setLocalLocked(key, imageData, value)
	m.mu.Unlock()

	if m.rdb != nil {
		if err := m.rdb.Set(ctx, key, value, m.config.Cache.TTL).Err(); err != nil {
			common.LogWarn("Redis 寫入失敗", zap.Error(err))
		}
	}

	common.LogDebug("快取已儲存", zap.String("鍵", key))
	return nil
}

// setLocalLocked 寫入記憶體層，呼叫端需持有寫鎖
func (m *Manager) setLocalLocked(key, imageData, value string) {
	now := time.Now()
	m.store[key] = cacheEntry{
		value:       value,
		expiresAt:   now.Add(m.config.Cache.TTL),
		imageHash:   m.hashString(imageData),
		createdAt:   now,
		lastAccess:  now,
		accessCount: 0,
	}
}

// generateKey 生成緩存鍵
func (m *Manager) generateKey(prompt, imageData string) string {
	if imageData == "" {
		return fmt.Sprintf("text:%s", m.hashString(prompt))
	}
	return fmt.Sprintf("multimodal:%s:%s", m.hashString(prompt), m.hashString(imageData))
}

// hashString 計算 SHA-256 哈希值
func (m *Manager) hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// startCleanup 啟動清理過期緩存的協程
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		m.cleanupLocked()
		m.mu.Unlock()
	}
}

// cleanupLocked 清理過期的緩存，呼叫端需持有寫鎖
func (m *Manager) cleanupLocked() int {
	now := time.Now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRULocked 淘汰訪問次數最少且最久未用的條目，呼叫端需持有寫鎖
func (m *Manager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"enabled":   true,
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"errors":    m.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉緩存管理器
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	m.store = make(map[string]cacheEntry)
	hits, misses, evictions := m.stats.hits, m.stats.misses, m.stats.evictions
	m.mu.Unlock()

	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", hits),
		zap.Int64("未命中次數", misses),
		zap.Int64("淘汰次數", evictions),
	)

	if m.rdb != nil {
		return m.rdb.Close()
	}
	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig        `mapstructure:"app"`
	Server      ServerConfig     `mapstructure:"server"`
	OpenRouter  OpenRouterConfig `mapstructure:"openrouter"`
	STT         STTConfig        `mapstructure:"stt"`
	Analysis    AnalysisConfig   `mapstructure:"analysis"`
	Synth       SynthConfig      `mapstructure:"synth"`
	AI          AIConfig         `mapstructure:"ai"`
	Cache       CacheConfig      `mapstructure:"cache"`
	RateLimit   RateLimitConfig  `mapstructure:"rate_limit"`
	Upload      UploadConfig     `mapstructure:"upload"`
	DedupWindow time.Duration    `mapstructure:"dedup_window"`
	LogLevel    string           `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// OpenRouterConfig 生成模型（OpenRouter）配置
type OpenRouterConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	MaxTokens int           `mapstructure:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// STTConfig 語音轉文字配置，主引擎失敗時改用備援引擎
type STTConfig struct {
	Whisper WhisperConfig `mapstructure:"whisper"`
	Google  GoogleConfig  `mapstructure:"google"`
}

// WhisperConfig OpenAI Whisper 配置（主引擎）
type WhisperConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// GoogleConfig Google Speech 配置（備援引擎）
type GoogleConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	APIKey   string        `mapstructure:"api_key"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// AnalysisConfig 模態分析配置
type AnalysisConfig struct {
	ModalityTimeout     time.Duration `mapstructure:"modality_timeout"`     // 單一模態的最長等待時間
	ConfidenceThreshold float64       `mapstructure:"confidence_threshold"` // 圖片菜系可被採信的最低信心值
}

// SynthConfig 食譜合成配置
type SynthConfig struct {
	MaxRetries int `mapstructure:"max_retries"` // 每次請求最多重試一次簡化 prompt
}

// AIConfig 生成模型調用配置
type AIConfig struct {
	EnableCache bool `mapstructure:"enable_cache"`
	Workers     int  `mapstructure:"workers"` // 同時進行中的模型調用上限
}

// CacheConfig 緩存配置，設定 redis_addr 後會多一層 Redis 緩存
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// UploadConfig 上傳檔案配置
type UploadConfig struct {
	ImageMaxBytes int64 `mapstructure:"image_max_bytes"`
	AudioMaxBytes int64 `mapstructure:"audio_max_bytes"`
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件
	if err := godotenv.Load(); err != nil {
		if !strings.Contains(err.Error(), "no such file") {
			return nil, err
		}
	}

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("openrouter.api_key", "OPENROUTER_API_KEY")
	viper.BindEnv("openrouter.model", "OPENROUTER_MODEL")
	viper.BindEnv("openrouter.max_tokens", "MODEL_MAX_TOKENS")
	viper.BindEnv("stt.whisper.api_key", "OPENAI_API_KEY")
	viper.BindEnv("stt.google.api_key", "GOOGLE_SPEECH_API_KEY")
	viper.BindEnv("cache.enabled", "CACHE_ENABLED")
	viper.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR")
	viper.BindEnv("cache.redis_password", "CACHE_REDIS_PASSWORD")
	viper.BindEnv("rate_limit.enabled", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	viper.BindEnv("dedup_window", "DEDUP_WINDOW")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"openrouter_api_key:", maskAPIKey(viper.GetString("openrouter.api_key")),
		"openrouter_model:", viper.GetString("openrouter.model"),
		"whisper_enabled:", viper.GetBool("stt.whisper.enabled"),
	)

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "flavorcraft")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "90s")
	viper.SetDefault("server.idle_timeout", "120s")

	// OpenRouter 設定
	viper.SetDefault("openrouter.enabled", true)
	viper.SetDefault("openrouter.model", "qwen/qwen2.5-vl-72b-instruct:free")
	viper.SetDefault("openrouter.max_tokens", 2000)
	viper.SetDefault("openrouter.timeout", "30s")

	// 語音轉文字設定
	viper.SetDefault("stt.whisper.enabled", true)
	viper.SetDefault("stt.whisper.model", "whisper-1")
	viper.SetDefault("stt.whisper.timeout", "15s")
	viper.SetDefault("stt.google.enabled", true)
	viper.SetDefault("stt.google.language", "en-US")
	viper.SetDefault("stt.google.timeout", "15s")

	// 模態分析設定
	viper.SetDefault("analysis.modality_timeout", "15s")
	viper.SetDefault("analysis.confidence_threshold", 0.4)

	// 合成設定
	viper.SetDefault("synth.max_retries", 1)

	// AI 設定
	viper.SetDefault("ai.enable_cache", true)
	viper.SetDefault("ai.workers", 5)

	// 快取設定
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("cache.cleanup_interval", "10m")
	viper.SetDefault("cache.redis_addr", "")
	viper.SetDefault("cache.redis_db", 0)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	// 上傳設定
	viper.SetDefault("upload.image_max_bytes", 10*1024*1024) // 10MB
	viper.SetDefault("upload.audio_max_bytes", 20*1024*1024) // 20MB

	// 去重視窗預設
	viper.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		if config.Cache.MaxSize <= 0 {
			return fmt.Errorf("invalid cache max size")
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
		if config.Cache.CleanupInterval <= 0 {
			return fmt.Errorf("invalid cache cleanup interval")
		}
	}

	// 驗證模態分析設定
	if config.Analysis.ModalityTimeout <= 0 {
		return fmt.Errorf("invalid modality timeout")
	}
	if config.Analysis.ConfidenceThreshold < 0 || config.Analysis.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be within [0,1]")
	}

	// 驗證合成設定
	if config.Synth.MaxRetries < 0 || config.Synth.MaxRetries > 1 {
		return fmt.Errorf("synth max retries must be 0 or 1")
	}

	// 驗證 AI 設定
	if config.AI.Workers <= 0 {
		return fmt.Errorf("invalid ai workers")
	}

	return nil
}

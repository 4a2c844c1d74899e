package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Telegram    TelegramConfig    `yaml:"telegram"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Bubblemaps  BubblemapsConfig  `yaml:"bubblemaps"`
	Render      RenderConfig      `yaml:"render"`
	Ops         OpsServerConfig   `yaml:"ops"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// TelegramConfig holds the Telegram transport configuration. The bot token is
// taken from the TELEGRAM_BOT_TOKEN environment variable, never from the file.
type TelegramConfig struct {
	UpdateTimeoutSeconds int  `yaml:"updateTimeoutSeconds"`
	Debug                bool `yaml:"debug"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateLimitBurst       int     `yaml:"rateLimitBurst"`
}

// BubblemapsConfig holds the configuration for the Bubblemaps metadata client.
type BubblemapsConfig struct {
	MetadataBaseURL      string `yaml:"metadataBaseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// RenderConfig holds the configuration for the bubble map rendering service.
type RenderConfig struct {
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// OpsServerConfig holds the configuration for the operational HTTP server
// (health, metrics, pprof).
type OpsServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// LoadConfig loads configuration from a YAML file.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	// Apply default values for DEXScreener if not set
	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = "https://api.dexscreener.com"
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.RequestTimeoutMillis == 0 {
		cfg.DEXScreener.RequestTimeoutMillis = 10000 // Default to 10 seconds
		logrus.Infof("DEXScreener.RequestTimeoutMillis not set, defaulting to %d ms", cfg.DEXScreener.RequestTimeoutMillis)
	}
	if cfg.DEXScreener.RateLimitPerSecond == 0 {
		cfg.DEXScreener.RateLimitPerSecond = 5
		logrus.Infof("DEXScreener.RateLimitPerSecond not set, defaulting to %.0f", cfg.DEXScreener.RateLimitPerSecond)
	}
	if cfg.DEXScreener.RateLimitBurst == 0 {
		cfg.DEXScreener.RateLimitBurst = 5
		logrus.Infof("DEXScreener.RateLimitBurst not set, defaulting to %d", cfg.DEXScreener.RateLimitBurst)
	}

	// Apply default values for Bubblemaps metadata if not set
	if cfg.Bubblemaps.MetadataBaseURL == "" {
		cfg.Bubblemaps.MetadataBaseURL = "https://api-legacy.bubblemaps.io"
		logrus.Infof("Bubblemaps.MetadataBaseURL not set, defaulting to %s", cfg.Bubblemaps.MetadataBaseURL)
	}
	if cfg.Bubblemaps.RequestTimeoutMillis == 0 {
		cfg.Bubblemaps.RequestTimeoutMillis = 10000 // Default to 10 seconds
		logrus.Infof("Bubblemaps.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Bubblemaps.RequestTimeoutMillis)
	}

	// Apply default values for the rendering service if not set
	if cfg.Render.BaseURL == "" {
		cfg.Render.BaseURL = "http://localhost:3000"
		logrus.Infof("Render.BaseURL not set, defaulting to %s", cfg.Render.BaseURL)
	}
	if cfg.Render.RequestTimeoutMillis == 0 {
		cfg.Render.RequestTimeoutMillis = 30000 // Image payloads are the slowest call
		logrus.Infof("Render.RequestTimeoutMillis not set, defaulting to %d ms", cfg.Render.RequestTimeoutMillis)
	}

	// Apply default values for Telegram if not set
	if cfg.Telegram.UpdateTimeoutSeconds == 0 {
		cfg.Telegram.UpdateTimeoutSeconds = 30
		logrus.Infof("Telegram.UpdateTimeoutSeconds not set, defaulting to %d", cfg.Telegram.UpdateTimeoutSeconds)
	}

	// Apply default values for the ops server if not set
	if cfg.Ops.Port == "" {
		cfg.Ops.Port = ":8080"
		logrus.Infof("Ops.Port not set, defaulting to %s", cfg.Ops.Port)
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

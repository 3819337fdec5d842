package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// Config holds all engine configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Search  SearchConfig  `mapstructure:"search"`
	Feed    FeedConfig    `mapstructure:"feed"`
	Store   StoreConfig   `mapstructure:"store"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds discovery backend configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"` // Backend base URL
	Token   string        `mapstructure:"token"`    // Static session token, optional
	Timeout time.Duration `mapstructure:"timeout"`  // Per-request timeout
}

// CacheConfig holds content cache configuration
type CacheConfig struct {
	MaxSize    int           `mapstructure:"max_size"`    // Hard entry bound
	TTL        time.Duration `mapstructure:"ttl"`         // Default entry lifetime, also the sweep period
	EvictBatch int           `mapstructure:"evict_batch"` // Entries evicted per overflow
}

// SearchConfig holds search orchestration configuration
type SearchConfig struct {
	Debounce     time.Duration `mapstructure:"debounce"`      // Quiet period before suggestions fire
	MinQueryLen  int           `mapstructure:"min_query_len"` // Shorter queries never hit the network
	HistoryLimit int           `mapstructure:"history_limit"`
	SuggestLimit int           `mapstructure:"suggest_limit"`
}

// FeedConfig holds feed loading configuration
type FeedConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// StoreConfig holds discovery store bounds
type StoreConfig struct {
	ViewingLimit int `mapstructure:"viewing_limit"` // Recently-viewed IDs kept
	NoticeLimit  int `mapstructure:"notice_limit"`  // Notices kept before dropping the oldest
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Database directory; empty = memory only
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://api.vela.app",
			Timeout: 30 * time.Second,
		},
		Cache: CacheConfig{
			MaxSize:    100,
			TTL:        5 * time.Minute,
			EvictBatch: 10,
		},
		Search: SearchConfig{
			Debounce:     300 * time.Millisecond,
			MinQueryLen:  2,
			HistoryLimit: 10,
			SuggestLimit: 8,
		},
		Feed: FeedConfig{
			PageSize: 20,
		},
		Store: StoreConfig{
			ViewingLimit: 50,
			NoticeLimit:  10,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "vela")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "vela")
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(defaultDataPath(), "vela.log")
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "vela")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "vela")
	}
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	cfg := Default()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("VELA")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

package conf

import (
	"fmt"

	"github.com/jsonshare/jsonshare-backend/internal/pkg/database"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  database.Config `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       logger.Config   `mapstructure:"log"`
	Share     ShareConfig     `mapstructure:"share"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ShareConfig controls share link generation.
type ShareConfig struct {
	// BaseURL is prepended to share IDs when building shareable links,
	// e.g. "https://jsonshare.example.com/s".
	BaseURL string `mapstructure:"base_url"`
	// MaxUploadBytes caps the size of uploaded JSON files. Zero means no cap.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`
}

// RateLimitConfig controls the per-client request rate limiter.
type RateLimitConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Requests int  `mapstructure:"requests"` // max requests per window
	Window   int  `mapstructure:"window"`   // window size in seconds
}

func LoadConfig(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := defaultConfig()
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: *database.DefaultConfig(),
		Redis: RedisConfig{
			Host: "localhost",
			Port: 6379,
			DB:   0,
		},
		Log: *logger.DefaultConfig(),
		Share: ShareConfig{
			MaxUploadBytes: 10 << 20,
		},
		RateLimit: RateLimitConfig{
			Enabled:  false,
			Requests: 100,
			Window:   60,
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.Requests <= 0 {
			return fmt.Errorf("rate limit requests must be positive, got %d", c.RateLimit.Requests)
		}
		if c.RateLimit.Window <= 0 {
			return fmt.Errorf("rate limit window must be positive, got %d", c.RateLimit.Window)
		}
	}
	return nil
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

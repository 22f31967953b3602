package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Moving progress specifics
	Upstream UpstreamConfig
	Cache    CacheConfig
	Mutation MutationConfig
	Priority PriorityConfig
	Journal  JournalConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// UpstreamConfig points at the Moovey backend.
type UpstreamConfig struct {
	BaseURL       string
	CSRFToken     string
	SessionCookie string
	Timeout       time.Duration
	PageLimit     int
}

type CacheConfig struct {
	DefaultTTL    time.Duration
	MaxEntries    int
	LowWatermark  int
	SweepInterval time.Duration
}

type MutationConfig struct {
	Timeout time.Duration
}

type PriorityConfig struct {
	MaxSize int
}

type JournalConfig struct {
	Enabled bool
	Path    string
}

type RateLimitConfig struct {
	PerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/moving-progress/
// A .env file in the working directory is read first when present.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file; an empty path searches the
// default locations.
func LoadFile(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/moving-progress/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.HTTPServer.ShutdownTimeout = v.GetDuration("http_server.shutdown_timeout")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.RateLimit.PerMin = v.GetInt("rate_limit.per_min")

	// Upstream backend
	cfg.Upstream.BaseURL = v.GetString("upstream.base_url")
	cfg.Upstream.CSRFToken = v.GetString("upstream.csrf_token")
	cfg.Upstream.SessionCookie = v.GetString("upstream.session_cookie")
	cfg.Upstream.Timeout = v.GetDuration("upstream.timeout")
	cfg.Upstream.PageLimit = v.GetInt("upstream.page_limit")
	if baseURL := v.GetString("moovey_url"); baseURL != "" {
		cfg.Upstream.BaseURL = baseURL
	}
	if token := v.GetString("moovey_csrf_token"); token != "" {
		cfg.Upstream.CSRFToken = token
	}
	if cookie := v.GetString("moovey_session_cookie"); cookie != "" {
		cfg.Upstream.SessionCookie = cookie
	}

	// Cache
	cfg.Cache.DefaultTTL = v.GetDuration("cache.default_ttl")
	cfg.Cache.MaxEntries = v.GetInt("cache.max_entries")
	cfg.Cache.LowWatermark = v.GetInt("cache.low_watermark")
	cfg.Cache.SweepInterval = v.GetDuration("cache.sweep_interval")

	// Mutations & priority list
	cfg.Mutation.Timeout = v.GetDuration("mutation.timeout")
	cfg.Priority.MaxSize = v.GetInt("priority.max_size")

	// Journal
	cfg.Journal.Enabled = v.GetBool("journal.enabled")
	cfg.Journal.Path = v.GetString("journal.path")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail far from the config.
func (c *Config) Validate() error {
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.base_url is required")
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
	}
	if c.Cache.LowWatermark <= 0 || c.Cache.LowWatermark >= c.Cache.MaxEntries {
		return fmt.Errorf("cache.low_watermark must be in 1..%d, got %d", c.Cache.MaxEntries-1, c.Cache.LowWatermark)
	}
	if c.Cache.DefaultTTL <= 0 {
		return errors.New("cache.default_ttl must be positive")
	}
	if c.Mutation.Timeout <= 0 {
		return errors.New("mutation.timeout must be positive")
	}
	if c.Priority.MaxSize <= 0 {
		return fmt.Errorf("priority.max_size must be positive, got %d", c.Priority.MaxSize)
	}
	if c.Journal.Enabled && c.Journal.Path == "" {
		return errors.New("journal.path is required when the journal is enabled")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("http_server.shutdown_timeout", "10s")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.per_min", 60)

	v.SetDefault("upstream.base_url", "http://localhost:8000")
	v.SetDefault("upstream.timeout", "30s")
	v.SetDefault("upstream.page_limit", 20)

	v.SetDefault("cache.default_ttl", "5m")
	v.SetDefault("cache.max_entries", 100)
	v.SetDefault("cache.low_watermark", 80)
	v.SetDefault("cache.sweep_interval", "1m")

	v.SetDefault("mutation.timeout", "15s")
	v.SetDefault("priority.max_size", 10)

	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", "data/journal.db")
}

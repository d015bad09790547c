package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP  HTTPConfig  `yaml:"http"`
	Admin AdminConfig `yaml:"admin"`
	FAQ   FAQConfig   `yaml:"faq"`
	Log   LogConfig   `yaml:"log"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	ShutdownGrace  time.Duration   `yaml:"shutdownGrace"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for idempotent requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"`
}

// AdminConfig guards the FAQ management endpoints.
type AdminConfig struct {
	Enabled   bool   `yaml:"enabled"`
	JWTSecret string `yaml:"jwtSecret"`
	Role      string `yaml:"role"`
}

// FAQConfig controls the FAQ auto-reply behavior.
type FAQConfig struct {
	DefaultLanguage string         `yaml:"defaultLanguage"`
	Languages       []string       `yaml:"languages"`
	SnapshotTTL     time.Duration  `yaml:"snapshotTtl"`
	TopMatches      int            `yaml:"topMatches"`
	Redis           RedisConfig    `yaml:"redis"`
	Postgres        PostgresConfig `yaml:"postgres"`
}

// RedisConfig contains connection information for cache storage.
type RedisConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// PostgresConfig contains DSN and pooling settings.
type PostgresConfig struct {
	DSN         string `yaml:"dsn"`
	MaxConns    int32  `yaml:"maxConns"`
	MinConns    int32  `yaml:"minConns"`
	AutoMigrate bool   `yaml:"autoMigrate"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("ADMIN_ENABLED"); v != "" {
		cfg.Admin.Enabled = parseBool(v)
	}
	if v := os.Getenv("ADMIN_JWT_SECRET"); v != "" {
		cfg.Admin.JWTSecret = v
	}
	if v := os.Getenv("ADMIN_ROLE"); v != "" {
		cfg.Admin.Role = v
	}
	if v := os.Getenv("FAQ_DEFAULT_LANGUAGE"); v != "" {
		cfg.FAQ.DefaultLanguage = v
	}
	if v := os.Getenv("FAQ_LANGUAGES"); v != "" {
		cfg.FAQ.Languages = splitList(v)
	}
	if v := os.Getenv("FAQ_SNAPSHOT_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.FAQ.SnapshotTTL = parsed
		}
	}
	if v := os.Getenv("FAQ_TOP_MATCHES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.TopMatches = parsed
		}
	}
	if v := os.Getenv("FAQ_REDIS_ENABLED"); v != "" {
		cfg.FAQ.Redis.Enabled = parseBool(v)
	}
	if v := os.Getenv("FAQ_REDIS_ADDR"); v != "" {
		cfg.FAQ.Redis.Addr = v
	}
	if v := os.Getenv("FAQ_REDIS_PREFIX"); v != "" {
		cfg.FAQ.Redis.Prefix = v
	}
	if v := os.Getenv("FAQ_POSTGRES_DSN"); v != "" {
		cfg.FAQ.Postgres.DSN = v
	}
	if v := os.Getenv("FAQ_POSTGRES_MAX_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MaxConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_MIN_CONNS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.FAQ.Postgres.MinConns = int32(parsed)
		}
	}
	if v := os.Getenv("FAQ_POSTGRES_AUTO_MIGRATE"); v != "" {
		cfg.FAQ.Postgres.AutoMigrate = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:       ":8080",
			ReadTimeout:   5 * time.Second,
			WriteTimeout:  5 * time.Second,
			ShutdownGrace: 10 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/admin/",
				},
			},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Admin: AdminConfig{
			Enabled: false,
			Role:    "admin",
		},
		FAQ: FAQConfig{
			DefaultLanguage: "ru",
			Languages:       []string{"ru", "en", "uk", "kk", "de", "fr", "es", "it", "pl", "tr"},
			SnapshotTTL:     5 * time.Minute,
			TopMatches:      10,
			Redis: RedisConfig{
				Enabled: false,
				Addr:    "",
				Prefix:  "faq",
			},
			Postgres: PostgresConfig{
				DSN:         "",
				MaxConns:    4,
				MinConns:    0,
				AutoMigrate: true,
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ShutdownGrace <= 0 {
		return errors.New("http.shutdownGrace must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		return fmt.Errorf("log.format %q must be json or text", c.Log.Format)
	}
	if c.Admin.Enabled {
		if strings.TrimSpace(c.Admin.JWTSecret) == "" {
			return errors.New("admin.jwtSecret cannot be empty when admin api is enabled")
		}
		if strings.TrimSpace(c.Admin.Role) == "" {
			return errors.New("admin.role cannot be empty when admin api is enabled")
		}
	}
	if len(c.FAQ.Languages) == 0 {
		return errors.New("faq.languages cannot be empty")
	}
	if !contains(c.FAQ.Languages, c.FAQ.DefaultLanguage) {
		return fmt.Errorf("faq.defaultLanguage %q must be one of faq.languages", c.FAQ.DefaultLanguage)
	}
	if c.FAQ.SnapshotTTL < 0 {
		return errors.New("faq.snapshotTtl cannot be negative")
	}
	if c.FAQ.TopMatches < 0 {
		return errors.New("faq.topMatches cannot be negative")
	}
	if c.FAQ.Redis.Enabled && strings.TrimSpace(c.FAQ.Redis.Addr) == "" {
		return errors.New("faq.redis.addr cannot be empty when redis cache is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

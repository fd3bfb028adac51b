package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `env:",prefix=SERVER_"`
	Logger     LoggerConfig     `env:",prefix=LOG_"`
	Auth       AuthConfig       `env:",prefix=AUTH_"`
	Generation GenerationConfig `env:",prefix=GENERATION_"`
	Reserved   ReservedConfig   `env:",prefix=RESERVED_"`
	S3         S3Config         `env:",prefix=S3_"`
	Tracing    TracingConfig    `env:",prefix=TRACING_"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=120s"` // large batches take a while
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=30s"`
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string `env:"LEVEL,default=info"`
	Format string `env:"FORMAT,default=json"` // "json" or "console"
}

// AuthConfig holds authentication configuration.
// An empty APIKey disables authentication.
type AuthConfig struct {
	APIKey string `env:"API_KEY"`
}

// GenerationConfig holds voucher generation limits.
type GenerationConfig struct {
	MaxCount        int     `env:"MAX_COUNT,default=100000"`
	YieldEvery      int     `env:"YIELD_EVERY,default=5000"`
	MaxDrawAttempts int     `env:"MAX_DRAW_ATTEMPTS,default=1000"`
	MaxConcurrent   int64   `env:"MAX_CONCURRENT,default=4"`
	RateLimit       float64 `env:"RATE_LIMIT,default=5"` // requests per second, 0 disables
	RateBurst       int     `env:"RATE_BURST,default=10"`
}

// ReservedConfig lists gzipped files of codes that must never be issued.
type ReservedConfig struct {
	Files []string `env:"FILES"`
}

// S3Config holds AWS S3 configuration for reserved code files and exports.
type S3Config struct {
	Enabled bool   `env:"ENABLED,default=false"`
	Bucket  string `env:"BUCKET"`
	Region  string `env:"REGION,default=us-east-1"`
	Prefix  string `env:"PREFIX,default=voucher-hub/"` // path prefix within bucket
}

// TracingConfig holds OpenTelemetry exporter configuration.
// An empty Endpoint disables tracing.
type TracingConfig struct {
	Endpoint    string  `env:"ENDPOINT"`
	ServiceName string  `env:"SERVICE_NAME,default=voucher-hub"`
	SampleRatio float64 `env:"SAMPLE_RATIO,default=1"`
}

// Load loads configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith loads configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Generation.MaxCount < 1 {
		return fmt.Errorf("generation max count must be at least 1")
	}

	if c.Generation.YieldEvery < 1 {
		return fmt.Errorf("generation yield interval must be at least 1")
	}

	if c.Generation.MaxDrawAttempts < 1 {
		return fmt.Errorf("generation max draw attempts must be at least 1")
	}

	if c.Generation.MaxConcurrent < 1 {
		return fmt.Errorf("generation max concurrent must be at least 1")
	}

	if c.Generation.RateLimit < 0 {
		return fmt.Errorf("generation rate limit cannot be negative")
	}

	if c.Generation.RateLimit > 0 && c.Generation.RateBurst < 1 {
		return fmt.Errorf("generation rate burst must be at least 1 when rate limiting is enabled")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("invalid tracing sample ratio: %v (must be between 0 and 1)", c.Tracing.SampleRatio)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Success with defaults",
			envVars:     map[string]string{},
			expectError: false,
		},
		{
			name: "Success with all config specified",
			envVars: map[string]string{
				"SERVER_HOST":                  "localhost",
				"SERVER_PORT":                  "9090",
				"SERVER_WRITE_TIMEOUT":         "5m",
				"LOG_LEVEL":                    "debug",
				"LOG_FORMAT":                   "console",
				"AUTH_API_KEY":                 "test-key-123",
				"GENERATION_MAX_COUNT":         "5000",
				"GENERATION_YIELD_EVERY":       "100",
				"GENERATION_MAX_DRAW_ATTEMPTS": "50",
				"GENERATION_MAX_CONCURRENT":    "2",
				"GENERATION_RATE_LIMIT":        "0.5",
				"GENERATION_RATE_BURST":        "1",
				"RESERVED_FILES":               "legacy1.gz,legacy2.gz",
				"S3_ENABLED":                   "true",
				"S3_BUCKET":                    "vouchers",
				"S3_REGION":                    "eu-north-1",
				"S3_PREFIX":                    "prod/",
				"TRACING_ENDPOINT":             "http://collector:4318",
				"TRACING_SAMPLE_RATIO":         "0.25",
			},
			expectError: false,
		},
		{
			name: "Error - invalid server port",
			envVars: map[string]string{
				"SERVER_PORT": "99999",
			},
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name: "Error - non numeric server port",
			envVars: map[string]string{
				"SERVER_PORT": "eighty",
			},
			expectError: true,
			errorMsg:    "failed to process environment config",
		},
		{
			name: "Error - invalid log level",
			envVars: map[string]string{
				"LOG_LEVEL": "invalid",
			},
			expectError: true,
			errorMsg:    "invalid log level",
		},
		{
			name: "Error - invalid log format",
			envVars: map[string]string{
				"LOG_FORMAT": "xml",
			},
			expectError: true,
			errorMsg:    "invalid log format",
		},
		{
			name: "Error - S3 enabled without bucket",
			envVars: map[string]string{
				"S3_ENABLED": "true",
			},
			expectError: true,
			errorMsg:    "S3 bucket is required",
		},
		{
			name: "Error - zero max count",
			envVars: map[string]string{
				"GENERATION_MAX_COUNT": "0",
			},
			expectError: true,
			errorMsg:    "generation max count",
		},
		{
			name: "Error - sample ratio above one",
			envVars: map[string]string{
				"TRACING_SAMPLE_RATIO": "1.5",
			},
			expectError: true,
			errorMsg:    "invalid tracing sample ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.envVars))

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)
			}
		})
	}
}

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 120*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Empty(t, cfg.Auth.APIKey)
	assert.Equal(t, 100000, cfg.Generation.MaxCount)
	assert.Equal(t, 5000, cfg.Generation.YieldEvery)
	assert.Equal(t, 1000, cfg.Generation.MaxDrawAttempts)
	assert.Equal(t, int64(4), cfg.Generation.MaxConcurrent)
	assert.Empty(t, cfg.Reserved.Files)
	assert.False(t, cfg.S3.Enabled)
	assert.Equal(t, "voucher-hub/", cfg.S3.Prefix)
	assert.Empty(t, cfg.Tracing.Endpoint)
	assert.Equal(t, "voucher-hub", cfg.Tracing.ServiceName)
}

func TestLoadWith_Lists(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"RESERVED_FILES": "legacy1.gz,legacy2.gz",
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"legacy1.gz", "legacy2.gz"}, cfg.Reserved.Files)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Host: "localhost", Port: 8080},
			Logger: LoggerConfig{Level: "info", Format: "json"},
			Generation: GenerationConfig{
				MaxCount:        100000,
				YieldEvery:      5000,
				MaxDrawAttempts: 1000,
				MaxConcurrent:   4,
				RateLimit:       5,
				RateBurst:       10,
			},
			Tracing: TracingConfig{SampleRatio: 1},
		}
	}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
		errorMsg    string
	}{
		{
			name:        "Valid configuration",
			mutate:      func(c *Config) {},
			expectError: false,
		},
		{
			name:        "Invalid - server port too high",
			mutate:      func(c *Config) { c.Server.Port = 99999 },
			expectError: true,
			errorMsg:    "invalid server port",
		},
		{
			name:        "Invalid - zero yield interval",
			mutate:      func(c *Config) { c.Generation.YieldEvery = 0 },
			expectError: true,
			errorMsg:    "yield interval",
		},
		{
			name:        "Invalid - zero draw attempts",
			mutate:      func(c *Config) { c.Generation.MaxDrawAttempts = 0 },
			expectError: true,
			errorMsg:    "max draw attempts",
		},
		{
			name:        "Invalid - zero concurrency",
			mutate:      func(c *Config) { c.Generation.MaxConcurrent = 0 },
			expectError: true,
			errorMsg:    "max concurrent",
		},
		{
			name:        "Invalid - negative rate limit",
			mutate:      func(c *Config) { c.Generation.RateLimit = -1 },
			expectError: true,
			errorMsg:    "rate limit cannot be negative",
		},
		{
			name:        "Invalid - rate limit without burst",
			mutate:      func(c *Config) { c.Generation.RateBurst = 0 },
			expectError: true,
			errorMsg:    "rate burst",
		},
		{
			name: "Valid - rate limit disabled without burst",
			mutate: func(c *Config) {
				c.Generation.RateLimit = 0
				c.Generation.RateBurst = 0
			},
			expectError: false,
		},
		{
			name: "Invalid - S3 without region",
			mutate: func(c *Config) {
				c.S3 = S3Config{Enabled: true, Bucket: "vouchers"}
			},
			expectError: true,
			errorMsg:    "S3 region is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name     string
		config   ServerConfig
		expected string
	}{
		{
			name: "Standard configuration",
			config: ServerConfig{
				Host: "localhost",
				Port: 8080,
			},
			expected: "localhost:8080",
		},
		{
			name: "All interfaces",
			config: ServerConfig{
				Host: "0.0.0.0",
				Port: 9090,
			},
			expected: "0.0.0.0:9090",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.Address())
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	var buf bytes.Buffer
	logger := newLogger(&buf, LoggerConfig{Level: "warn", Format: "json"})

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["message"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "voucher-hub", entry["app"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

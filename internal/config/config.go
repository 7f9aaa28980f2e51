package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "xwstats/internal/errors"
)

// Config represents the complete application configuration. Precedence is
// environment variables over config file over built-in defaults.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration. Disabled unless
// enabled explicitly.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PipelineConfig contains the statistical pipeline parameters.
type PipelineConfig struct {
	// BucketCount is the number of equal-width histogram buckets per weekday.
	BucketCount int `yaml:"bucket_count" envconfig:"BUCKET_COUNT" validate:"min=1"`
	// TopN is the size of the fastest/slowest outlier lists.
	TopN int `yaml:"top_n" envconfig:"TOP_N" validate:"min=1"`
	// InputFile overrides input discovery when set.
	InputFile string `yaml:"input_file" envconfig:"INPUT_FILE"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir  string `yaml:"data_dir" envconfig:"DATA_DIR"`
	CardsDir string `yaml:"cards_dir" envconfig:"CARDS_DIR"`
	InputDir string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	LogsDir  string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

var validate = validator.New()

// Load loads configuration from environment variables and an optional
// config file (xwstats.yaml, overridable via XW_CONFIG_FILE).
func Load() (*Config, error) {
	return LoadFromFile(getConfigFilePath())
}

// LoadFromFile loads configuration using the given YAML file path. A missing
// file is not an error; defaults and environment variables still apply.
func LoadFromFile(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			data, err := os.ReadFile(configFile)
			if err != nil {
				return nil, apperrors.NewConfigError("failed to read config file", err).
					WithContext("file", configFile)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to parse config file", err).
					WithContext("file", configFile)
			}
		}
	}

	// Environment variables override file values; fields without a set env
	// var keep their file value.
	if err := envconfig.Process("XW", &cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero-valued fields with the built-in defaults.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Server.RateLimit.RPS == 0 {
		c.Server.RateLimit.RPS = 100
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 50
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Pipeline.BucketCount == 0 {
		c.Pipeline.BucketCount = 8
	}
	if c.Pipeline.TopN == 0 {
		c.Pipeline.TopN = 10
	}
	c.Paths.applyDefaults()
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = c.Paths.GetLogPath("xwstats.log")
	}
}

// Validate checks the configuration for invalid values. Violations of the
// pipeline parameter constraints surface as ConfigError.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return apperrors.NewConfigError(fmt.Sprintf("invalid server port %d", c.Server.Port), nil)
	}
	if c.Server.RateLimit.Enabled && c.Server.RateLimit.RPS <= 0 {
		return apperrors.NewConfigError("rate limit rps must be positive", nil)
	}
	return nil
}

// getConfigFilePath returns the config file location, which may be
// overridden via XW_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("XW_CONFIG_FILE"); path != "" {
		return path
	}
	return "xwstats.yaml"
}

package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// EnvConfig is a DTO used exclusively for environment loading. Typed fields
// are prefilled from the current config, so an unset variable keeps its
// value. Empty strings never override.
type EnvConfig struct {
	APIBaseURL         string        `env:"WEDLINK_API_URL"`
	DataDir            string        `env:"WEDLINK_DATA_DIR"`
	RequestTimeout     time.Duration `env:"WEDLINK_REQUEST_TIMEOUT"`
	NameCheckDelay     time.Duration `env:"WEDLINK_NAME_CHECK_DELAY"`
	NameCheckMinLength int           `env:"WEDLINK_NAME_CHECK_MIN_LENGTH"`
	DedupeRefresh      bool          `env:"WEDLINK_DEDUPE_REFRESH"`
	RateLimit          float64       `env:"WEDLINK_RATE_LIMIT"`
	RateBurst          int           `env:"WEDLINK_RATE_BURST"`
	LogLevel           string        `env:"WEDLINK_LOG_LEVEL"`
	LogFormat          string        `env:"WEDLINK_LOG_FORMAT"`
	TokenSecret        string        `env:"WEDLINK_TOKEN_SECRET"`
	S3Region           string        `env:"WEDLINK_S3_REGION"`
	S3BaseEndpoint     string        `env:"WEDLINK_S3_BASE_ENDPOINT"`
	S3AccessKey        string        `env:"WEDLINK_S3_ACCESS_KEY"`
	S3SecretKey        string        `env:"WEDLINK_S3_SECRET_KEY"`
}

// dotenvFiles are loaded, if present, before the environment is read.
// Variables already set in the process win over the file.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with WEDLINK_* environment variables.
func parseEnv(cfg *Config) error {
	for _, f := range dotenvFiles {
		_ = godotenv.Load(f)
	}

	ec := EnvConfig{
		RequestTimeout:     cfg.RequestTimeout,
		NameCheckDelay:     cfg.NameCheckDelay,
		NameCheckMinLength: cfg.NameCheckMinLength,
		DedupeRefresh:      cfg.DedupeRefresh,
		RateLimit:          cfg.RateLimit,
		RateBurst:          cfg.RateBurst,
	}
	if err := env.Load(&ec, nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	ec.apply(cfg)
	return nil
}

func (ec EnvConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, ec.APIBaseURL)
	setString(&cfg.DataDir, ec.DataDir)
	setString(&cfg.LogLevel, ec.LogLevel)
	setString(&cfg.LogFormat, ec.LogFormat)
	setString(&cfg.TokenSecret, ec.TokenSecret)
	setString(&cfg.S3Region, ec.S3Region)
	setString(&cfg.S3BaseEndpoint, ec.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, ec.S3AccessKey)
	setString(&cfg.S3SecretKey, ec.S3SecretKey)

	cfg.RequestTimeout = ec.RequestTimeout
	cfg.NameCheckDelay = ec.NameCheckDelay
	cfg.NameCheckMinLength = ec.NameCheckMinLength
	cfg.DedupeRefresh = ec.DedupeRefresh
	cfg.RateLimit = ec.RateLimit
	cfg.RateBurst = ec.RateBurst
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

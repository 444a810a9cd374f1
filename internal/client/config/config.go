package config

import (
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/filex"
)

// DefaultAPIBaseURL is the hosted WedLink backend.
const DefaultAPIBaseURL = "https://wedlink-backend.onrender.com/api"

// Config holds runtime settings for the WedLink admin console.
//
// Fields:
//   - APIBaseURL: REST base URL, every endpoint path is appended to it.
//   - DataDir: directory of the local store (token, refresh cookie).
//   - RequestTimeout: per-request HTTP timeout.
//   - NameCheckDelay / NameCheckMinLength: debounce of the event name check.
//   - DedupeRefresh: share one refresh among concurrent 401s.
//   - RateLimit / RateBurst: client-side request rate (requests per second).
//   - LogLevel / LogFormat: diagnostics written to stderr.
//   - TokenSecret: when set, the stored access token is sealed with it.
//   - S3*: settings for s3:// guest imports.
type Config struct {
	APIBaseURL         string
	DataDir            string
	RequestTimeout     time.Duration
	NameCheckDelay     time.Duration
	NameCheckMinLength int
	DedupeRefresh      bool
	RateLimit          float64
	RateBurst          int
	LogLevel           string
	LogFormat          string
	TokenSecret        string

	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.DataDir = filex.DefaultDataDir()
	c.RequestTimeout = 15 * time.Second
	c.NameCheckDelay = 500 * time.Millisecond
	c.NameCheckMinLength = 3
	c.DedupeRefresh = false
	c.RateLimit = 10
	c.RateBurst = 20
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseJson(cfg)
	parseFlags(cfg)
	return cfg, nil
}

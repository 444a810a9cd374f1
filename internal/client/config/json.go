package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/wedlink-admin/internal/flagx"
	"github.com/dmitrijs2005/wedlink-admin/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "15s" or as integer nanoseconds. Pointer fields distinguish
// "absent" from zero values.
type JsonConfig struct {
	APIBaseURL         string          `json:"api_base_url"`
	DataDir            string          `json:"data_dir"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	NameCheckDelay     *timex.Duration `json:"name_check_delay"`
	NameCheckMinLength *int            `json:"name_check_min_length"`
	DedupeRefresh      *bool           `json:"dedupe_refresh"`
	RateLimit          *float64        `json:"rate_limit"`
	RateBurst          *int            `json:"rate_burst"`
	LogLevel           string          `json:"log_level"`
	LogFormat          string          `json:"log_format"`
	TokenSecret        string          `json:"token_secret"`
	S3Region           string          `json:"s3_region"`
	S3BaseEndpoint     string          `json:"s3_base_endpoint"`
	S3AccessKey        string          `json:"s3_access_key"`
	S3SecretKey        string          `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flag; without it nothing is
// loaded. Panics on read or unmarshal errors (caller should recover if
// desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc JsonConfig) apply(cfg *Config) {
	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.TokenSecret, jc.TokenSecret)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.NameCheckDelay != nil {
		cfg.NameCheckDelay = jc.NameCheckDelay.Duration
	}
	if jc.NameCheckMinLength != nil {
		cfg.NameCheckMinLength = *jc.NameCheckMinLength
	}
	if jc.DedupeRefresh != nil {
		cfg.DedupeRefresh = *jc.DedupeRefresh
	}
	if jc.RateLimit != nil {
		cfg.RateLimit = *jc.RateLimit
	}
	if jc.RateBurst != nil {
		cfg.RateBurst = *jc.RateBurst
	}
}

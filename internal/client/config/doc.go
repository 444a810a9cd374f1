// Package config loads runtime configuration for the WedLink admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, then WEDLINK_* environment
//     variables (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   REST API base URL
//	-d string   data directory
//	-t int      request timeout (seconds)
//	-l string   log level
//	-dedupe     deduplicate concurrent token refreshes
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://wedlink-backend.onrender.com/api",
//	  "request_timeout": "15s",
//	  "name_check_delay": "500ms",
//	  "dedupe_refresh": false,
//	  "s3_base_endpoint": "http://127.0.0.1:9000"
//	}
//
// Primary API
//
//   - type Config                          holds every setting
//   - func LoadConfig() (*Config, error)   defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()        sets sensible defaults
package config

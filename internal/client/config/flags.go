package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST API base URL (default from Config)
//	-d string   data directory of the local store
//	-t int      request timeout in seconds
//	-l string   log level: debug, info, warn, error
//	-dedupe     share one token refresh among concurrent 401s
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgsWithBools, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgsWithBools(os.Args[1:], []string{"-a", "-d", "-t", "-l"}, []string{"-dedupe"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.BoolVar(&cfg.DedupeRefresh, "dedupe", cfg.DedupeRefresh, "deduplicate concurrent token refreshes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

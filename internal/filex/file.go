// Package filex contains filesystem helpers for the console's data directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDataDirName is appended to the user config dir when no data dir is configured.
const DefaultDataDirName = "wedlink-admin"

// DefaultDataDir returns <user config dir>/wedlink-admin, falling back to a
// relative ".wedlink-admin" when the config dir cannot be determined.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "." + DefaultDataDirName
	}
	return filepath.Join(base, DefaultDataDirName)
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// EnsureDir creates dir (and parents) with owner-only permissions and returns
// its absolute path.
func EnsureDir(dir string) (string, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

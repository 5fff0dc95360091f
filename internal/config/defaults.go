package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			Directory: "",
			TTL:       0,
		},
		Git: GitConfig{
			Timeout: 60,
		},
		Output: OutputConfig{
			Color: true,
			Quiet: false,
		},
		Defaults: DefaultsConfig{
			Offline: false,
			Confirm: "never",
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "ffizer", "config.json")
}

// DefaultCacheRoot returns the platform user-cache directory's
// ffizer/git subtree, used when CacheConfig.Directory is unset.
func DefaultCacheRoot() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ffizer", "git")
	}
	return filepath.Join(base, "ffizer", "git")
}

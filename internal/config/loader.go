package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Loader defines the interface for loading configuration files.
type Loader interface {
	// Load loads configuration from the specified file path.
	Load(path string) (*Config, error)
	// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
	LoadOrDefault(path string) (*Config, error)
	// Validate validates the configuration.
	Validate(config *Config) error
}

// FileLoader implements the Loader interface for file-based configuration loading.
type FileLoader struct{}

// NewLoader creates a new FileLoader instance.
func NewLoader() Loader {
	return &FileLoader{}
}

// Load loads configuration from the specified file path.
func (l *FileLoader) Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "invalid JSON syntax", err)
	}

	defaultCfg := DefaultConfig()
	mergeConfig(&cfg, defaultCfg)

	return &cfg, nil
}

// LoadOrDefault loads configuration or returns defaults if file doesn't exist.
func (l *FileLoader) LoadOrDefault(path string) (*Config, error) {
	cfg, err := l.Load(path)
	if err != nil {
		if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Type == ConfigNotFound {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (l *FileLoader) Validate(config *Config) error {
	if config.Cache.TTL < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "cache.ttl", "TTL cannot be negative")
	}
	if config.Git.Timeout < 0 {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "git.timeout", "timeout cannot be negative")
	}
	if config.Defaults.Confirm != "" && config.Defaults.Confirm != "never" && config.Defaults.Confirm != "always" {
		return NewConfigErrorWithField(ConfigValidationFailed, "", "defaults.confirm", `must be "never" or "always"`)
	}
	return nil
}

// Save writes cfg as indented JSON to path, creating parent directories
// as needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, fmt.Sprintf("failed to create directory %s", dir), err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return NewConfigErrorWithCause(ConfigInvalid, path, "failed to write config", err)
	}
	return nil
}

// mergeConfig merges missing fields from defaults into cfg.
func mergeConfig(cfg, defaults *Config) {
	if cfg.Cache.Directory == "" {
		cfg.Cache.Directory = defaults.Cache.Directory
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = defaults.Cache.TTL
	}
	if cfg.Git.Timeout == 0 {
		cfg.Git.Timeout = defaults.Git.Timeout
	}
	if cfg.Defaults.Confirm == "" {
		cfg.Defaults.Confirm = defaults.Defaults.Confirm
	}
}

// ExpandPath expands ~ to home directory and evaluates relative paths.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		if path[1] == filepath.Separator {
			return filepath.Join(homeDir, path[2:]), nil
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	return absPath, nil
}

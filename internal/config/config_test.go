package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if cfg.Cache.TTL != 0 {
		t.Errorf("Expected TTL=0, got %d", cfg.Cache.TTL)
	}
	if cfg.Git.Timeout != 60 {
		t.Errorf("Expected Timeout=60, got %d", cfg.Git.Timeout)
	}
	if !cfg.Output.Color {
		t.Error("Color output should be enabled by default")
	}
	if cfg.Defaults.Confirm != "never" {
		t.Errorf("Expected Confirm=never, got %s", cfg.Defaults.Confirm)
	}
}

func TestLoadConfig(t *testing.T) {
	loader := NewLoader()

	t.Run("valid config", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfgPath := filepath.Join(tmpDir, "config.json")

		cfg := DefaultConfig()
		cfg.Cache.TTL = 7200
		cfg.Defaults.Confirm = "always"

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			t.Fatalf("Failed to marshal config: %v", err)
		}

		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		loadedCfg, err := loader.Load(cfgPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}

		if loadedCfg.Cache.TTL != 7200 {
			t.Errorf("Expected TTL=7200, got %d", loadedCfg.Cache.TTL)
		}
		if loadedCfg.Defaults.Confirm != "always" {
			t.Errorf("Expected Confirm=always, got %s", loadedCfg.Defaults.Confirm)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load("/nonexistent/config.json")
		if err == nil {
			t.Fatal("Expected error for missing file")
		}

		cfgErr, ok := err.(*ConfigError)
		if !ok {
			t.Fatalf("Expected ConfigError, got %T", err)
		}
		if cfgErr.Type != ConfigNotFound {
			t.Errorf("Expected ConfigNotFound, got %v", cfgErr.Type)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfgPath := filepath.Join(tmpDir, "config.json")

		if err := os.WriteFile(cfgPath, []byte("{ invalid json }"), 0644); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		_, err := loader.Load(cfgPath)
		if err == nil {
			t.Fatal("Expected error for invalid JSON")
		}

		cfgErr, ok := err.(*ConfigError)
		if !ok {
			t.Fatalf("Expected ConfigError, got %T", err)
		}
		if cfgErr.Type != ConfigInvalid {
			t.Errorf("Expected ConfigInvalid, got %v", cfgErr.Type)
		}
	})
}

func TestLoadOrDefault(t *testing.T) {
	loader := NewLoader()

	t.Run("returns defaults for missing file", func(t *testing.T) {
		cfg, err := loader.LoadOrDefault("/nonexistent/config.json")
		if err != nil {
			t.Fatalf("LoadOrDefault should not error on missing file: %v", err)
		}
		if cfg == nil {
			t.Fatal("Expected default config, got nil")
		}
		if cfg.Defaults.Confirm != "never" {
			t.Errorf("Expected default Confirm=never, got %s", cfg.Defaults.Confirm)
		}
	})

	t.Run("loads valid config", func(t *testing.T) {
		tmpDir := t.TempDir()
		cfgPath := filepath.Join(tmpDir, "config.json")

		cfg := DefaultConfig()
		cfg.Cache.TTL = 7200

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			t.Fatalf("Failed to marshal config: %v", err)
		}
		if err := os.WriteFile(cfgPath, data, 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}

		loadedCfg, err := loader.LoadOrDefault(cfgPath)
		if err != nil {
			t.Fatalf("Failed to load config: %v", err)
		}
		if loadedCfg.Cache.TTL != 7200 {
			t.Errorf("Expected TTL=7200, got %d", loadedCfg.Cache.TTL)
		}
	})
}

func TestValidateConfig(t *testing.T) {
	loader := NewLoader()

	t.Run("valid config", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := loader.Validate(cfg); err != nil {
			t.Errorf("Valid config should pass validation: %v", err)
		}
	})

	t.Run("negative TTL", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Cache.TTL = -1
		if err := loader.Validate(cfg); err == nil {
			t.Error("Expected validation error for negative TTL")
		}
	})

	t.Run("negative timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Git.Timeout = -1
		if err := loader.Validate(cfg); err == nil {
			t.Error("Expected validation error for negative timeout")
		}
	})

	t.Run("invalid confirm policy", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Defaults.Confirm = "sometimes"
		if err := loader.Validate(cfg); err == nil {
			t.Error("Expected validation error for invalid confirm policy")
		}
	})
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Cache.TTL = 900

	if err := Save(cfgPath, cfg); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := NewLoader().Load(cfgPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Cache.TTL != 900 {
		t.Errorf("TTL mismatch after save/load: got %d", loaded.Cache.TTL)
	}
}

func TestExpandPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"empty path", "", false},
		{"absolute path", "/tmp/test", false},
		{"relative path", "./test", false},
		{"home directory", "~", false},
		{"home subdirectory", "~/test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expanded, err := ExpandPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ExpandPath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.path != "" && !tt.wantErr && expanded == "" {
				t.Errorf("ExpandPath() returned empty string for non-empty path")
			}
		})
	}
}

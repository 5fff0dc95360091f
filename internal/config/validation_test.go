package config

import (
	"testing"

	"github.com/tacogips/ffizer/internal/template/model"
)

func TestValidateTemplateConfig(t *testing.T) {
	t.Run("valid template config", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Variables: []model.VariableDef{
				{Name: "project_name", DefaultValue: "myapp"},
				{Name: "port-number", DefaultValue: "8080"},
			},
			Imports: []model.ImportDef{
				{URI: "github.com/owner/repo", Rev: "master"},
			},
		}
		if err := ValidateTemplateConfig(cfg); err != nil {
			t.Errorf("Valid template config should pass validation: %v", err)
		}
	})

	t.Run("nil template config", func(t *testing.T) {
		if err := ValidateTemplateConfig(nil); err == nil {
			t.Error("Expected error for nil template config")
		}
	})

	t.Run("empty variable name", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Variables: []model.VariableDef{{Name: ""}},
		}
		if err := ValidateTemplateConfig(cfg); err == nil {
			t.Error("Expected error for empty variable name")
		}
	})

	t.Run("variable name starting with digit", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Variables: []model.VariableDef{{Name: "123invalid"}},
		}
		if err := ValidateTemplateConfig(cfg); err == nil {
			t.Error("Expected error for variable name starting with a digit")
		}
	})

	t.Run("variable name with invalid characters", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Variables: []model.VariableDef{{Name: "invalid name!"}},
		}
		if err := ValidateTemplateConfig(cfg); err == nil {
			t.Error("Expected error for variable name with invalid characters")
		}
	})

	t.Run("hidden variable without default", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Variables: []model.VariableDef{
				{Name: "secret", Hidden: true},
			},
		}
		if err := ValidateTemplateConfig(cfg); err == nil {
			t.Error("Expected error for hidden variable without default_value")
		}
	})

	t.Run("hidden variable with default", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Variables: []model.VariableDef{
				{Name: "secret", Hidden: true, DefaultValue: "x"},
			},
		}
		if err := ValidateTemplateConfig(cfg); err != nil {
			t.Errorf("Hidden variable with default_value should pass validation: %v", err)
		}
	})

	t.Run("empty import uri", func(t *testing.T) {
		cfg := &model.TemplateConfig{
			Imports: []model.ImportDef{{URI: ""}},
		}
		if err := ValidateTemplateConfig(cfg); err == nil {
			t.Error("Expected error for empty import uri")
		}
	})
}

func TestValidateSourceURI(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr bool
	}{
		{"empty source", "", true},
		{"whitespace only", "   ", true},
		{"ssh git url", "git@github.com:owner/repo.git", false},
		{"absolute local path", "/home/user/templates/foo", false},
		{"relative local path with dot", "./templates/foo", false},
		{"relative local path with dotdot", "../templates/foo", false},
		{"github shorthand", "github.com/owner/repo", false},
		{"https url", "https://github.com/owner/repo.git", false},
		{"http url", "http://example.com/repo.git", false},
		{"unsupported scheme", "ftp://example.com/repo.git", true},
		{"bare word treated as relative path", "templates", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSourceURI(tt.src)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSourceURI(%q) error = %v, wantErr %v", tt.src, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGlobalConfig(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := Validate(cfg); err != nil {
			t.Errorf("Valid config should pass validation: %v", err)
		}
	})

	t.Run("invalid confirm policy", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Defaults.Confirm = "maybe"
		if err := Validate(cfg); err == nil {
			t.Error("Expected error for invalid confirm policy")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("error without field", func(t *testing.T) {
		err := NewConfigError(ConfigNotFound, "config.json", "file not found")
		if err.Error() == "" {
			t.Error("ConfigError.Error() returned empty string")
		}
		if err.File != "config.json" {
			t.Errorf("Expected file=config.json, got %s", err.File)
		}
	})

	t.Run("error with field", func(t *testing.T) {
		err := NewConfigErrorWithField(ConfigValidationFailed, ".ffizer.yaml", "variables.name", "name is required")
		errStr := err.Error()
		if errStr == "" {
			t.Error("ConfigError.Error() returned empty string")
		}
		if err.Field != "variables.name" {
			t.Errorf("Expected field=variables.name, got %s", err.Field)
		}
	})

	t.Run("error with cause", func(t *testing.T) {
		cause := NewConfigError(ConfigInvalid, "test.json", "test error")
		err := NewConfigErrorWithCause(ConfigValidationFailed, ".ffizer.yaml", "validation failed", cause)

		if err.Unwrap() != cause {
			t.Error("Unwrap() should return the cause")
		}
	})
}

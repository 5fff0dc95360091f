package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/tacogips/ffizer/internal/template/model"
)

// Validate validates the global configuration.
func Validate(config *Config) error {
	loader := NewLoader()
	return loader.Validate(config)
}

var variableNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidateTemplateConfig validates a parsed .ffizer.yaml document's
// variable declarations, per the VariableDef invariants: name is a
// non-empty identifier, hidden requires a default_value.
func ValidateTemplateConfig(cfg *model.TemplateConfig) error {
	if cfg == nil {
		return NewConfigErrorWithField(ConfigValidationFailed, ".ffizer.yaml", "", "template config cannot be nil")
	}

	for _, v := range cfg.Variables {
		if v.Name == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, ".ffizer.yaml", "variables", "variable name cannot be empty")
		}
		if !variableNamePattern.MatchString(v.Name) {
			return NewConfigErrorWithField(
				ConfigValidationFailed,
				".ffizer.yaml",
				fmt.Sprintf("variables.%s", v.Name),
				"variable name must start with a letter and contain only letters, digits, underscores, and hyphens",
			)
		}
		if v.Hidden && v.DefaultValue == "" {
			return NewConfigErrorWithField(
				ConfigValidationFailed,
				".ffizer.yaml",
				fmt.Sprintf("variables.%s", v.Name),
				"hidden variable requires a default_value",
			)
		}
	}

	for _, imp := range cfg.Imports {
		if imp.URI == "" {
			return NewConfigErrorWithField(ConfigValidationFailed, ".ffizer.yaml", "imports", "import uri cannot be empty")
		}
	}

	return nil
}

// ValidateSourceURI validates that a template source string is in a
// supported format: a local path, an https/http/git@ remote, or a
// github.com/owner/repo shorthand.
func ValidateSourceURI(src string) error {
	src = strings.TrimSpace(src)
	if src == "" {
		return fmt.Errorf("source cannot be empty")
	}

	if strings.HasPrefix(src, "git@") {
		return nil
	}
	if strings.HasPrefix(src, "/") || strings.HasPrefix(src, "./") || strings.HasPrefix(src, "../") {
		return nil
	}
	if strings.HasPrefix(src, "github.com/") {
		return nil
	}

	parsed, err := url.Parse(src)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "" && parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("unsupported URL scheme %q (supported: https, http, git@, or local path)", parsed.Scheme)
	}
	return nil
}

// Package config provides run-configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/negotiation-harness/internal/schemas"
)

// Config represents the run configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	Mode        string   `json:"mode,omitempty" validate:"omitempty,oneof=quick custom full"`
	Param       string   `json:"param,omitempty"`            // single parameter for quick mode
	Params      []string `json:"params,omitempty"`           // parameters to vary in custom mode
	Variant     string   `json:"variant,omitempty"`          // single variant for quick mode
	Variants    []string `json:"variants,omitempty"`         // variants to test in custom mode
	Repetitions int      `json:"repetitions,omitempty" validate:"omitempty,min=1"`
	Model       string   `json:"model,omitempty"`            // model identifier
	Output      string   `json:"output,omitempty"`           // results CSV path
	APIKey      string   `json:"api_key,omitempty"`          // Gemini API key
	DatabaseURL string   `json:"database_url,omitempty"`     // PostgreSQL connection URL
	DelayMs     int      `json:"delay_ms,omitempty" validate:"omitempty,min=0"`
	Concurrency int      `json:"concurrency,omitempty" validate:"omitempty,min=1"`
	Verbose     bool     `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file, checking the document
// against the embedded run-config schema before unmarshaling.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := schemas.ValidateRunConfig(string(data)); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate validates field-level constraints using the validator. Unknown
// parameter and variant names are caught later by the trial generator.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. Bool fields are not merged; CLI flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Mode == "" {
		result.Mode = defaults.Mode
	}
	if result.Param == "" {
		result.Param = defaults.Param
	}
	if result.Variant == "" {
		result.Variant = defaults.Variant
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.Params) == 0 {
		result.Params = defaults.Params
	}
	if len(result.Variants) == 0 {
		result.Variants = defaults.Variants
	}
	if result.Repetitions == 0 {
		result.Repetitions = defaults.Repetitions
	}
	if result.DelayMs == 0 {
		result.DelayMs = defaults.DelayMs
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	return result
}

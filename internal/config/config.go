// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"dimscale/core/coherence"
	errs "dimscale/core/errors"
	"dimscale/core/numeric"
	"dimscale/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" yaml:"version" validate:"required"`

	// Arithmetic controls how quantities combine
	Arithmetic ArithmeticConfig `json:"arithmetic" yaml:"arithmetic"`

	// Scope selects the scale preference scope
	Scope ScopeConfig `json:"scope" yaml:"scope"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" yaml:"logging"`
}

// ArithmeticConfig contains arithmetic settings
type ArithmeticConfig struct {
	// Policy reconciles unequal scales in add and subtract
	Policy string `json:"policy" yaml:"policy" validate:"oneof=strict left-hand-wins largest-wins smallest-wins"`

	// Storage is the numeric storage of parsed values
	Storage string `json:"storage" yaml:"storage" validate:"oneof=float float64 int int64 decimal"`

	// Lossy truncates inexact integer and decimal results instead of failing
	Lossy bool `json:"lossy" yaml:"lossy"`
}

// ScopeConfig points at a scope file
type ScopeConfig struct {
	// File is an HCL scope file; empty uses the SI base scope
	File string `json:"file,omitempty" yaml:"file,omitempty"`

	// Name is the scope to select from File
	Name string `json:"name,omitempty" yaml:"name,omitempty" validate:"required_with=File"`
}

var validate = validator.New()

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Arithmetic: ArithmeticConfig{
			Policy:  string(coherence.Strict),
			Storage: "float",
			Lossy:   false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errs.Wrap(errs.TypeConfig, "invalid configuration", err)
	}
	return nil
}

// Policy returns the configured coherence policy
func (c *Config) Policy() (coherence.Policy, error) {
	return coherence.ParsePolicy(c.Arithmetic.Policy)
}

// Storage returns the configured numeric storage
func (c *Config) Storage() (numeric.Storage, error) {
	return numeric.ParseStorage(c.Arithmetic.Storage)
}

// Mode returns the configured precision mode
func (c *Config) Mode() numeric.Mode {
	if c.Arithmetic.Lossy {
		return numeric.Lossy
	}
	return numeric.Exact
}

// Checker builds a coherence checker from the arithmetic settings
func (c *Config) Checker() (*coherence.Checker, error) {
	p, err := c.Policy()
	if err != nil {
		return nil, err
	}
	return coherence.NewChecker(coherence.WithPolicy(p), coherence.WithMode(c.Mode())), nil
}

// Load loads configuration from a JSON or YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, errs.Wrap(errs.TypeConfig, "failed to read config", err).WithContext("file", path)
	}

	config := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, errs.Wrap(errs.TypeConfig, "failed to parse config", err).WithContext("file", path)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves configuration to a file, as YAML when the extension says so
func (c *Config) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

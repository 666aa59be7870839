// Package config loads and validates compiler configuration for the
// Rowan toolchain. Configuration files are YAML; omitted fields fall
// back to the defaults returned by Default.
package config

import (
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rowan-lang/rowan/internal/diagnostic"
)

// Version is the version of this toolchain build.
const Version = "0.4.1"

// Config is the root configuration document.
type Config struct {
	Toolchain ToolchainConfig `yaml:"toolchain"`
	Checker   CheckerConfig   `yaml:"checker"`
}

// ToolchainConfig constrains which toolchain builds may compile the
// project.
type ToolchainConfig struct {
	// Required is a semver constraint the running toolchain must satisfy,
	// for example ">= 0.4". Empty means any version.
	Required string `yaml:"required"`
}

// CheckerConfig tunes the type checker.
type CheckerConfig struct {
	// Parallelism bounds how many bodies are finalized concurrently.
	// Zero means one worker per body.
	Parallelism int `yaml:"parallelism"`
	// Debug enables type-checker trace output.
	Debug bool `yaml:"debug"`
	// Lints overrides the severity of lints by code, for example
	// W0001: error. Valid levels: error, warning, info, hint.
	Lints map[string]string `yaml:"lints"`
}

// LintLevels returns the configured lint overrides as diagnostic levels.
func (c *CheckerConfig) LintLevels() map[string]diagnostic.Level {
	if len(c.Lints) == 0 {
		return nil
	}
	out := make(map[string]diagnostic.Level, len(c.Lints))
	for code, name := range c.Lints {
		if lvl, ok := diagnostic.LevelFromString(name); ok {
			out[code] = lvl
		}
	}
	return out
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration from YAML bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks internal consistency and the toolchain constraint
// against the running build.
func (c *Config) Validate() error {
	if c.Checker.Parallelism < 0 {
		return fmt.Errorf("checker.parallelism must not be negative, got %d", c.Checker.Parallelism)
	}
	for code, name := range c.Checker.Lints {
		if _, ok := diagnostic.LevelFromString(name); !ok {
			return fmt.Errorf("invalid level %q for lint %s", name, code)
		}
	}

	if c.Toolchain.Required == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Toolchain.Required)
	if err != nil {
		return fmt.Errorf("invalid toolchain constraint %q: %w", c.Toolchain.Required, err)
	}
	current := semver.MustParse(Version)
	if !constraint.Check(current) {
		return fmt.Errorf("toolchain %s does not satisfy required constraint %q", Version, c.Toolchain.Required)
	}
	return nil
}

// Package config loads arbgen settings from TOML files and ARBGEN_*
// environment variables.
package config

import (
	"strings"

	"github.com/teranos/arbgen/errors"
)

// FileName is the project and user config file name.
const FileName = "arbgen.toml"

// Config is the resolved arbgen configuration.
type Config struct {
	Output OutputConfig `mapstructure:"output" toml:"output"`
	Derive DeriveConfig `mapstructure:"derive" toml:"derive"`
	Watch  WatchConfig  `mapstructure:"watch" toml:"watch"`
	Log    LogConfig    `mapstructure:"log" toml:"log"`

	// Files lists the config files merged, lowest precedence first.
	Files []string `mapstructure:"-" toml:"-"`
}

// OutputConfig names the generated files.
type OutputConfig struct {
	File     string `mapstructure:"file" toml:"file"`
	TestFile string `mapstructure:"test_file" toml:"test_file"`
	Tests    bool   `mapstructure:"tests" toml:"tests"`
}

// DeriveConfig controls directive discovery and what is synthesized.
type DeriveConfig struct {
	// Directive is the comment marker without the leading "//".
	Directive string `mapstructure:"directive" toml:"directive"`
	Methods   bool   `mapstructure:"methods" toml:"methods"`
}

// WatchConfig controls arbgen watch.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"`
}

// LogConfig controls the logger.
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json"`
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.Output.File, ".go") || strings.HasSuffix(c.Output.File, "_test.go") {
		return errors.NewInvalidInputError("output.file must be a non-test .go file, got %q", c.Output.File)
	}
	if !strings.HasSuffix(c.Output.TestFile, "_test.go") {
		return errors.NewInvalidInputError("output.test_file must end in _test.go, got %q", c.Output.TestFile)
	}
	if strings.ContainsAny(c.Output.File+c.Output.TestFile, `/\`) {
		return errors.NewInvalidInputError("output files are names, not paths")
	}
	if c.Output.File == c.Output.TestFile {
		return errors.NewInvalidInputError("output.file and output.test_file must differ")
	}

	// Directive: a bare marker like "arbgen:derive"
	if c.Derive.Directive == "" || strings.HasPrefix(c.Derive.Directive, "//") ||
		strings.ContainsAny(c.Derive.Directive, " \t") {
		return errors.NewInvalidInputError("derive.directive must be a bare marker such as %q, got %q",
			DefaultDirective, c.Derive.Directive)
	}

	// 0 = regenerate on every event
	if c.Watch.DebounceMS < 0 {
		return errors.NewInvalidInputError("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	return nil
}

package config

import "github.com/spf13/viper"

// Default values.
const (
	DefaultOutputFile     = "arbitrary_gen.go"
	DefaultOutputTestFile = "arbitrary_gen_test.go"
	DefaultDirective      = "arbgen:derive"
	DefaultDebounceMS     = 300
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.file", DefaultOutputFile)
	v.SetDefault("output.test_file", DefaultOutputTestFile)
	v.SetDefault("output.tests", true)

	v.SetDefault("derive.directive", DefaultDirective)
	v.SetDefault("derive.methods", true)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)

	v.SetDefault("log.json", false)
}

// Default returns the configuration with no files or environment applied.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			File:     DefaultOutputFile,
			TestFile: DefaultOutputTestFile,
			Tests:    true,
		},
		Derive: DeriveConfig{Directive: DefaultDirective, Methods: true},
		Watch:  WatchConfig{DebounceMS: DefaultDebounceMS},
	}
}

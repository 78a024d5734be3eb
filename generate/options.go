// Package generate drives arbgen over Go packages: it loads them, finds the
// declarations to derive, synthesizes and renders generators, and writes or
// checks the generated files.
package generate

import (
	"github.com/teranos/arbgen/config"
	"github.com/teranos/arbgen/derive"
	"github.com/teranos/arbgen/version"
)

// Options configure a run.
type Options struct {
	// Dir is the working directory patterns are resolved against.
	Dir string
	// Directive marks declarations to derive, without the leading "//".
	Directive string
	// Types, when non-empty, replaces directive discovery: exactly these
	// type names are derived in every loaded package.
	Types []string
	// Tests and Methods are the defaults a directive can switch off.
	Tests   bool
	Methods bool
	// OutputFile and TestFile are file names inside each package directory.
	OutputFile string
	TestFile   string
	// Version is written into generated headers.
	Version string
}

// DefaultOptions mirrors config.Default.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// OptionsFromConfig maps a loaded configuration onto run options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Directive:  cfg.Derive.Directive,
		Tests:      cfg.Output.Tests,
		Methods:    cfg.Derive.Methods,
		OutputFile: cfg.Output.File,
		TestFile:   cfg.Output.TestFile,
		Version:    version.Header(),
	}
}

// owned reports whether base is one of the files arbgen writes.
func (o Options) owned(base string) bool {
	return base == o.OutputFile || base == o.TestFile
}

func (o Options) derive(flags directiveFlags, derived map[string]bool) derive.Options {
	return derive.Options{
		Tests:   o.Tests && !flags.noTest,
		Methods: o.Methods && !flags.noMethod,
		Derived: derived,
	}
}

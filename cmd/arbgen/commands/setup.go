// Package commands implements the arbgen subcommands.
package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/config"
	"github.com/teranos/arbgen/display"
	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/generate"
	"github.com/teranos/arbgen/logger"
)

// Setup initializes the logger before any command runs. The config file is
// consulted for log.json; a broken config is reported by the command that
// needs it, not here.
func Setup(cmd *cobra.Command, args []string) error {
	verbosity, _ := cmd.Flags().GetCount("verbose")
	jsonLogs := display.ShouldOutputJSON(cmd)
	if cfg, err := loadConfig(cmd); err == nil && cfg.Log.JSON {
		jsonLogs = true
	}
	if jsonLogs {
		pterm.DisableStyling()
	}
	if err := logger.Initialize(jsonLogs, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Debugw("Logger initialized",
		"verbosity", verbosity,
		"shows", logger.VerbosityDescription(verbosity))
	return nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("config")
	dir, _ := cmd.Flags().GetString("dir")
	cfg, err := config.Load(config.Sources{File: path, Dir: dir})
	if err != nil {
		return nil, err
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		logger.Debugw("Loaded config",
			logger.FieldConfig, cfg.Files,
			"output", cfg.Output.File,
			"directive", cfg.Derive.Directive)
	}
	return cfg, nil
}

// addDeriveFlags registers the flags shared by generate, check, inspect and
// watch.
func addDeriveFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "C", "", "Run as if arbgen was started in this directory")
	cmd.Flags().StringSlice("types", nil, "Derive exactly these type names instead of directive-marked ones")
	cmd.Flags().Bool("tests", true, "Emit smoke tests (overrides output.tests)")
	cmd.Flags().Bool("methods", true, "Emit Arbitrary methods (overrides derive.methods)")
}

// runOptions resolves config and command flags into generate options.
func runOptions(cmd *cobra.Command) (generate.Options, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return generate.Options{}, nil, err
	}
	opts := generate.OptionsFromConfig(cfg)
	opts.Dir, _ = cmd.Flags().GetString("dir")
	if types, _ := cmd.Flags().GetStringSlice("types"); len(types) > 0 {
		opts.Types = types
	}
	if cmd.Flags().Changed("tests") {
		opts.Tests, _ = cmd.Flags().GetBool("tests")
	}
	if cmd.Flags().Changed("methods") {
		opts.Methods, _ = cmd.Flags().GetBool("methods")
	}
	return opts, cfg, nil
}

// patterns defaults to the current package.
func patterns(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// IsUsageError reports whether err came from bad flags, arguments or
// configuration.
func IsUsageError(err error) bool {
	return errors.IsInvalidInputError(err)
}

// PrintError reports err and any hints attached to it.
func PrintError(err error) {
	pterm.Error.Println(err.Error())
	if hint := errors.FlattenHints(err); hint != "" {
		pterm.Info.Println(hint)
	}
}

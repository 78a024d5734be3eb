package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/cmd/arbgen/commands"
	"github.com/teranos/arbgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "arbgen",
	Short: "arbgen - derive random value generators for Go types",
	Long: `arbgen writes size-bounded random generators for Go types.

Mark a type with //arbgen:derive and run arbgen over its package. For every
marked type arbgen emits an ArbitraryT function into arbitrary_gen.go, an
Arbitrary method where the type can carry one, and a smoke test into
arbitrary_gen_test.go.

Available commands:
  generate - Write generators for marked types
  check    - Fail if generated files are out of date
  inspect  - Print the extracted type schemas
  init     - Write a default arbgen.toml
  watch    - Regenerate on source changes
  version  - Show version information

Examples:
  arbgen generate ./...             # Derive for every package in the module
  arbgen generate --types List .    # Derive List without a directive
  arbgen check ./...                # CI guard
  arbgen inspect --format json .    # Dump schemas`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: commands.Setup,
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: nearest arbgen.toml, then ~/.arbgen/arbgen.toml)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.InspectCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		commands.PrintError(err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if commands.IsUsageError(err) {
		return 2
	}
	return 1
}

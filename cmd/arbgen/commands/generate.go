package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/display"
	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/generate"
	"github.com/teranos/arbgen/logger"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate [packages]",
	Short: "Write generators for marked types",
	Long: `Load the named packages (default: the current one), derive a generator for
every type marked with //arbgen:derive and write arbitrary_gen.go and
arbitrary_gen_test.go next to the sources.

A declaration that cannot be derived is reported with its position and a hint;
the other declarations in the package are still written.

Directive flags:
  //arbgen:derive -notest     # no smoke test for this type
  //arbgen:derive -nomethod   # no Arbitrary method for this type

Examples:
  arbgen generate                 # Current package
  arbgen generate ./...           # Whole module
  arbgen generate --tests=false . # Skip every smoke test`,
	RunE: runGenerate,
}

func init() {
	addDeriveFlags(GenerateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, _, err := runOptions(cmd)
	if err != nil {
		return err
	}
	start := time.Now()

	results, err := generate.Run(cmd.Context(), patterns(args), opts)
	if err != nil {
		return err
	}

	reports := make([]packageReport, 0, len(results))
	failed := 0
	for _, res := range results {
		r := newReport(res)
		changes, err := generate.Write(res, opts)
		r.Files = changes
		if err != nil {
			return errors.Wrapf(err, "package %s", res.Package.Path)
		}
		failed += len(res.Diagnostics)
		reports = append(reports, r)
	}

	if display.ShouldOutputJSON(cmd) {
		if err := display.OutputJSON(cmd.OutOrStdout(), reports); err != nil {
			return err
		}
	} else {
		for _, r := range reports {
			printReport(cmd.OutOrStdout(), r, logger.Verbosity)
		}
		printTiming(cmd.OutOrStdout(), logger.Verbosity, "generated", start)
	}

	if failed > 0 {
		return errors.Newf("%d declaration(s) could not be derived", failed)
	}
	if !display.ShouldOutputJSON(cmd) && logger.ShouldOutput(logger.Verbosity, logger.OutputUserStatus) {
		fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("%d package(s) up to date", len(reports)))
	}
	return nil
}

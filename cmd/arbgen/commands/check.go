package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/display"
	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/generate"
	"github.com/teranos/arbgen/logger"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [packages]",
	Short: "Fail if generated files are out of date",
	Long: `Regenerate in memory and compare with the files on disk. Nothing is written.

Output written by an arbgen with the same major version is current when the
generated code matches; output from a different major version is always stale.

Exit status is non-zero when any file is stale or any declaration fails.

Examples:
  arbgen check ./...`,
	RunE: runCheck,
}

func init() {
	addDeriveFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, _, err := runOptions(cmd)
	if err != nil {
		return err
	}

	results, err := generate.Run(cmd.Context(), patterns(args), opts)
	if err != nil {
		return err
	}

	reports := make([]packageReport, 0, len(results))
	stale, failed := 0, 0
	for _, res := range results {
		r := newReport(res)
		r.Stale, err = generate.Check(res, opts)
		if err != nil {
			return errors.Wrapf(err, "package %s", res.Package.Path)
		}
		stale += len(r.Stale)
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
	}

	switch {
	case failed > 0:
		return errors.Newf("%d declaration(s) could not be derived", failed)
	case stale > 0:
		return errors.WithHint(
			errors.Wrapf(errors.ErrOutOfDate, "%d file(s)", stale),
			"run 'arbgen generate' and commit the result")
	}
	if !display.ShouldOutputJSON(cmd) {
		fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintln("generated code is up to date"))
	}
	return nil
}

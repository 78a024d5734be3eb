package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/arbgen/derive"
	"github.com/teranos/arbgen/display"
	"github.com/teranos/arbgen/generate"
)

var inspectFormat string

// InspectCmd represents the inspect command
var InspectCmd = &cobra.Command{
	Use:   "inspect [packages]",
	Short: "Print the extracted type schemas",
	Long: `Print the schema arbgen extracts for every marked type: its kind, generic
parameters and bounds, variants with their fields, and any diagnostic.

Examples:
  arbgen inspect .                  # YAML
  arbgen inspect --format json .    # JSON (also implied by --json)
  arbgen inspect --types Pair .`,
	RunE: runInspect,
}

func init() {
	addDeriveFlags(InspectCmd)
	InspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "yaml", "Output format: yaml or json")
}

type inspectReport struct {
	Package string               `json:"package" yaml:"package"`
	Schemas []*derive.TypeSchema `json:"schemas" yaml:"schemas"`
	Errors  []diagnostic         `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	opts, _, err := runOptions(cmd)
	if err != nil {
		return err
	}
	results, err := generate.Run(cmd.Context(), patterns(args), opts)
	if err != nil {
		return err
	}

	var reports []inspectReport
	for _, res := range results {
		if len(res.Schemas) == 0 && len(res.Diagnostics) == 0 {
			continue
		}
		r := inspectReport{Package: res.Package.Path, Schemas: res.Schemas}
		for _, d := range res.Diagnostics {
			r.Errors = append(r.Errors, toDiagnostic(d))
		}
		reports = append(reports, r)
	}

	format := inspectFormat
	if display.ShouldOutputJSON(cmd) {
		format = "json"
	}
	return display.Output(cmd.OutOrStdout(), format, reports)
}

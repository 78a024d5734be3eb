package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/pterm/pterm"

	"github.com/teranos/arbgen/derive"
	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/generate"
	"github.com/teranos/arbgen/logger"
)

// packageReport is the JSON shape of one package's outcome.
type packageReport struct {
	Package  string            `json:"package" yaml:"package"`
	Types    []string          `json:"types,omitempty" yaml:"types,omitempty"`
	Files    []generate.Change `json:"files,omitempty" yaml:"files,omitempty"`
	Stale    []generate.Stale  `json:"stale,omitempty" yaml:"stale,omitempty"`
	Errors   []diagnostic      `json:"errors,omitempty" yaml:"errors,omitempty"`
	Warnings []string          `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

type diagnostic struct {
	Type     string          `json:"type" yaml:"type"`
	Position string          `json:"position,omitempty" yaml:"position,omitempty"`
	Category derive.Category `json:"category,omitempty" yaml:"category,omitempty"`
	Message  string          `json:"message" yaml:"message"`
	Hint     string          `json:"hint,omitempty" yaml:"hint,omitempty"`
}

func newReport(res *generate.Result) packageReport {
	r := packageReport{Package: res.Package.Path}
	for _, u := range res.Units {
		r.Types = append(r.Types, u.Schema.Name)
	}
	for _, d := range res.Diagnostics {
		r.Errors = append(r.Errors, toDiagnostic(d))
	}
	for _, w := range res.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

func toDiagnostic(d generate.Diagnostic) diagnostic {
	out := diagnostic{Type: d.Type, Message: d.Err.Error(), Hint: d.Hint()}
	var se *derive.SynthesisError
	if errors.As(d, &se) {
		out.Category = se.Category
		out.Message = se.Message
		if se.Pos.IsValid() {
			out.Position = se.Pos.String()
		}
	} else if d.Pos.IsValid() {
		out.Position = d.Pos.String()
	}
	return out
}

// printReport writes the human-readable form of r.
func printReport(w io.Writer, r packageReport, verbosity int) {
	if logger.ShouldOutput(verbosity, logger.OutputProgress) {
		fmt.Fprintln(w, pterm.LightCyan(r.Package))
	}
	if logger.ShouldOutput(verbosity, logger.OutputDiagnostics) {
		for _, d := range r.Errors {
			where := d.Position
			if where == "" {
				where = d.Type
			}
			fmt.Fprint(w, pterm.Error.Sprintfln("%s: %s", where, d.Message))
			if d.Hint != "" {
				fmt.Fprintln(w, "  hint: "+d.Hint)
			}
		}
		for _, warning := range r.Warnings {
			fmt.Fprint(w, pterm.Warning.Sprintln(warning))
		}
	}
	if !logger.ShouldOutput(verbosity, logger.OutputResults) {
		return
	}
	for _, f := range r.Files {
		switch f.Action {
		case generate.Written:
			fmt.Fprint(w, pterm.Success.Sprintfln("wrote %s", f.File))
		case generate.Removed:
			fmt.Fprint(w, pterm.Info.Sprintfln("removed %s", f.File))
		case generate.Unchanged:
			if logger.ShouldOutput(verbosity, logger.OutputProgress) {
				fmt.Fprintln(w, pterm.Gray("  unchanged "+f.File))
			}
		}
	}
	for _, s := range r.Stale {
		fmt.Fprint(w, pterm.Warning.Sprintfln("%s: %s", s.File, s.Reason))
	}
}

func printTiming(w io.Writer, verbosity int, what string, start time.Time) {
	if logger.ShouldOutput(verbosity, logger.OutputTiming) {
		fmt.Fprintln(w, pterm.Gray(what+" in "+time.Since(start).Round(time.Millisecond).String()))
	}
}

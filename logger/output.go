package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - Written files, diagnostics, final status
//	1 (-v)      - + Per-package progress and summaries
//	2 (-vv)     - + Per-type synthesis details, timing, config loaded
//	3 (-vvv)    - + Loader patterns, watcher events, schema dumps

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults     OutputCategory = iota // Files written, check verdicts
	OutputDiagnostics                       // Synthesis errors and warnings with hints
	OutputUserStatus                        // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress // Per-package progress

	// Level 2 (-vv) - Detailed
	OutputSynthesis // One line per derived type
	OutputTiming    // Operation timing
	OutputConfig    // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputLoader  // go/packages patterns and load results
	OutputWatch   // Raw filesystem events
	OutputSchemas // Full schema dumps
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:     VerbosityUser,
	OutputDiagnostics: VerbosityUser,
	OutputUserStatus:  VerbosityUser,

	OutputProgress: VerbosityInfo,

	OutputSynthesis: VerbosityDebug,
	OutputTiming:    VerbosityDebug,
	OutputConfig:    VerbosityDebug,

	OutputLoader:  VerbosityTrace,
	OutputWatch:   VerbosityTrace,
	OutputSchemas: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and diagnostics only"
	case VerbosityInfo:
		return "results, diagnostics and progress"
	case VerbosityDebug:
		return "above + per-type synthesis, timing, config details"
	case VerbosityTrace:
		return "above + loader, watcher events, schema dumps"
	default:
		if verbosity > VerbosityTrace {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}

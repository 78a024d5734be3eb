package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
		wantLevel  zapcore.Level
	}{
		{"JSON output mode", true, 0, zapcore.WarnLevel},
		{"Console output mode", false, 1, zapcore.InfoLevel},
		{"Console debug", false, 3, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")
			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			defer Cleanup()

			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)
			assert.True(t, Logger.Desugar().Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, Logger.Desugar().Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	assert.False(t, colorEnabled())
}

func TestComponentLogger(t *testing.T) {
	require.NoError(t, Initialize(false, 2))
	defer Cleanup()

	l := ChildLogger(ComponentLogger("generate"), FieldPackage, "example.com/shapes")
	assert.NotNil(t, l)
	assert.Equal(t, "generate", l.Desugar().Check(zapcore.InfoLevel, "x").LoggerName)
}

func TestHelpersDoNotPanic(t *testing.T) {
	require.NoError(t, Initialize(false, 0))
	defer Cleanup()

	assert.NotPanics(t, func() {
		Infow("derived", FieldCount, 3)
		Debugw("debug", FieldType, "List")
		Warnw("warn", FieldCategory, "smoke-test")
		Errorw("error", FieldError, "boom")
	})
}

func TestVerbosityToLevel(t *testing.T) {
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(-1))
	assert.Equal(t, zapcore.WarnLevel, VerbosityToLevel(VerbosityUser))
	assert.Equal(t, zapcore.InfoLevel, VerbosityToLevel(VerbosityInfo))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(VerbosityDebug))
	assert.Equal(t, zapcore.DebugLevel, VerbosityToLevel(10))
}

func TestShouldOutput(t *testing.T) {
	tests := []struct {
		name     string
		category OutputCategory
		min      int
	}{
		{"results", OutputResults, VerbosityUser},
		{"diagnostics", OutputDiagnostics, VerbosityUser},
		{"progress", OutputProgress, VerbosityInfo},
		{"synthesis", OutputSynthesis, VerbosityDebug},
		{"timing", OutputTiming, VerbosityDebug},
		{"schemas", OutputSchemas, VerbosityTrace},
		{"unknown", OutputCategory(99), VerbosityTrace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.min > 0 {
				assert.False(t, ShouldOutput(tt.min-1, tt.category))
			}
			assert.True(t, ShouldOutput(tt.min, tt.category))
		})
	}
}

func TestVerbosityDescription(t *testing.T) {
	assert.Equal(t, "results and diagnostics only", VerbosityDescription(0))
	assert.Equal(t, "maximum verbosity", VerbosityDescription(7))
	assert.Equal(t, "unknown verbosity level", VerbosityDescription(-1))
}

package commands

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/teranos/arbgen/generate"
	"github.com/teranos/arbgen/logger"
)

func TestPrintReport(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	r := packageReport{
		Package: "example.com/shapes",
		Files: []generate.Change{
			{File: "arbitrary_gen.go", Action: generate.Written},
			{File: "arbitrary_gen_test.go", Action: generate.Unchanged},
		},
		Stale:    []generate.Stale{{File: "old_gen.go", Reason: "no derived types"}},
		Errors:   []diagnostic{{Type: "Empty", Position: "shapes.go:3:12", Message: "sum has no variants", Hint: "add a variant"}},
		Warnings: []string{"Shape: property test skipped"},
	}

	t.Run("default", func(t *testing.T) {
		var buf bytes.Buffer
		printReport(&buf, r, logger.VerbosityUser)
		out := buf.String()
		assert.Contains(t, out, "shapes.go:3:12: sum has no variants")
		assert.Contains(t, out, "hint: add a variant")
		assert.Contains(t, out, "Shape: property test skipped")
		assert.Contains(t, out, "wrote arbitrary_gen.go")
		assert.Contains(t, out, "old_gen.go: no derived types")
		assert.NotContains(t, out, "unchanged")
		assert.NotContains(t, out, r.Package)
	})

	t.Run("progress", func(t *testing.T) {
		var buf bytes.Buffer
		printReport(&buf, r, logger.VerbosityInfo)
		out := buf.String()
		assert.Contains(t, out, r.Package)
		assert.Contains(t, out, "unchanged arbitrary_gen_test.go")
	})

	t.Run("quiet", func(t *testing.T) {
		var buf bytes.Buffer
		printReport(&buf, r, -1)
		assert.Empty(t, buf.String())
	})
}

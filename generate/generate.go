package generate

import (
	"context"
	"go/token"
	"time"

	"github.com/teranos/arbgen/derive"
	"github.com/teranos/arbgen/derive/emit"
	"github.com/teranos/arbgen/errors"
	"github.com/teranos/arbgen/logger"
)

// Diagnostic is a failure confined to one declaration.
type Diagnostic struct {
	Type string
	Pos  token.Position
	Err  error
}

func (d Diagnostic) Error() string {
	var se *derive.SynthesisError
	if errors.As(d.Err, &se) {
		return se.Error()
	}
	if d.Pos.IsValid() {
		return d.Pos.String() + ": " + d.Err.Error()
	}
	return d.Err.Error()
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Hint is the user-facing suggestion, if any.
func (d Diagnostic) Hint() string {
	var se *derive.SynthesisError
	if errors.As(d.Err, &se) {
		return se.Hint
	}
	return errors.FlattenHints(d.Err)
}

// Result is the outcome of deriving one package.
type Result struct {
	Package *Package
	// Schemas holds every extracted declaration, supported or not.
	Schemas     []*derive.TypeSchema
	Units       []*derive.Unit
	Diagnostics []Diagnostic
	Warnings    []derive.Warning
	// Output is nil when no declaration produced a unit.
	Output *emit.Output
}

// Failed reports whether any declaration failed.
func (r *Result) Failed() bool {
	return len(r.Diagnostics) > 0
}

// Generate derives every target in pkg. Each declaration is synthesized on
// its own; a failing one is recorded as a Diagnostic and its siblings still
// render. The error return is reserved for rendering failures.
func Generate(pkg *Package, opts Options) (*Result, error) {
	log := logger.ChildLogger(logger.ComponentLogger("generate"), logger.FieldPackage, pkg.Path)
	start := time.Now()

	targets, diags := discover(pkg, opts)
	res := &Result{Package: pkg, Diagnostics: diags}

	derived := make(map[string]bool, len(targets))
	for _, t := range targets {
		derived[t.decl.Obj.Name()] = true
	}

	for _, t := range targets {
		name := t.decl.Obj.Name()
		schema, err := derive.Extract(t.decl)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Type: name, Err: err})
			continue
		}
		res.Schemas = append(res.Schemas, schema)
		if logger.ShouldOutput(logger.Verbosity, logger.OutputSchemas) {
			log.Debugw("Extracted schema",
				logger.FieldType, name,
				logger.FieldKind, schema.Kind.String(),
				"generics", schema.Generics,
				"variants", schema.Variants,
				"imports", schema.Imports)
		}

		unit, err := derive.Synthesize(schema, opts.derive(t.flags, derived))
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Type: name, Pos: schema.Pos, Err: err})
			log.Debugw("Synthesis failed", logger.FieldType, name, logger.FieldError, err)
			continue
		}
		res.Units = append(res.Units, unit)
		res.Warnings = append(res.Warnings, unit.Warnings...)

		if logger.ShouldOutput(logger.Verbosity, logger.OutputSynthesis) {
			log.Debugw("Synthesized",
				logger.FieldType, name,
				logger.FieldKind, schema.Kind.String(),
				logger.FieldVariants, len(schema.Variants))
		}
	}

	if len(res.Units) > 0 {
		out, err := emit.Render(res.Units, emit.Options{Package: pkg.Name, Version: opts.Version})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", pkg.Path)
		}
		res.Output = out
	}

	log.Debugw("Derived package",
		logger.FieldCount, len(res.Units),
		"failed", len(res.Diagnostics),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, nil
}

// Run loads patterns and derives every matching package.
func Run(ctx context.Context, patterns []string, opts Options) ([]*Result, error) {
	pkgs, err := Load(ctx, patterns, opts)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, 0, len(pkgs))
	for _, pkg := range pkgs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := Generate(pkg, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

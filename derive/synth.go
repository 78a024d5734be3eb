package derive

import (
	"github.com/teranos/arbgen/errors"
)

// Options tune one synthesis.
type Options struct {
	// Tests emits a smoke test.
	Tests bool
	// Methods emits an Arbitrary method on types that can carry one.
	Methods bool
	// Derived names every type derived in the same package. Fields of a
	// derived generic type call its generator directly.
	Derived map[string]bool
}

// DefaultOptions emits tests and methods.
func DefaultOptions() Options {
	return Options{Tests: true, Methods: true}
}

// Derive extracts and synthesizes one declaration.
func Derive(decl Decl, opts Options) (*Unit, error) {
	schema, err := Extract(decl)
	if err != nil {
		return nil, err
	}
	return Synthesize(schema, opts)
}

// Synthesize turns a schema into a Unit. Unsupported kinds and empty sums
// fail with a *SynthesisError; no partial unit is ever returned.
func Synthesize(schema *TypeSchema, opts Options) (*Unit, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	gen := &Generator{
		Name:   GeneratorName(schema.Name),
		Type:   schema.Name,
		Args:   ArgList(schema.Generics),
		Params: Constrain(schema.Generics),
		Locals: NewLocals(referenced(schema), maxArity(schema.Variants)),
	}

	switch schema.Kind {
	case Product:
		gen.Build = BuildFields(schema.Variants[0], opts.Derived, gen.Locals)

	case Sum:
		dispatch, err := Allocate(schema.Name, schema.Variants, schema.anchor())
		if err != nil {
			return nil, err
		}
		gen.Dispatch = dispatch
		gen.Helpers = make([]Helper, len(schema.Variants))
		for i, v := range schema.Variants {
			gen.Helpers[i] = Helper{
				Name:    helperName(schema.Name, v.Name),
				Variant: v.Name,
				Build:   BuildFields(v, opts.Derived, gen.Locals),
			}
		}

	case Unsupported:
		return nil, schema.Err

	default:
		return nil, errors.AssertionFailedf("unhandled schema kind %v", schema.Kind)
	}

	unit := &Unit{
		Schema:    schema,
		Generator: gen,
		Method:    opts.Methods && schema.Method,
		Register:  !gen.Generic(),
	}
	if opts.Tests {
		smoke, warning := SmokeTest(schema, gen)
		unit.Smoke = smoke
		if warning != nil {
			unit.Warnings = append(unit.Warnings, *warning)
		}
	}
	return unit, nil
}

// referenced is every identifier a generator body for schema may refer to
// besides its own locals.
func referenced(schema *TypeSchema) map[string]bool {
	names := make(map[string]bool, len(schema.Reserved)+len(schema.Generics)+len(schema.Imports))
	for name := range schema.Reserved {
		names[name] = true
	}
	for _, p := range schema.Generics {
		names[p.Name] = true
	}
	for _, imp := range schema.Imports {
		names[imp.Name] = true
	}
	return names
}

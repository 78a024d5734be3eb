package derive

import "strconv"

// The IR below is what synthesis produces and derive/emit lowers. It says
// which generators to call and how to combine their results; it holds no Go
// syntax beyond type expressions and identifiers.

// Call generates one field value from the reduced source.
type Call struct {
	// Var is the local the result is bound to (f0, f1, ...).
	Var string
	// Field is the struct field it initializes; empty for ShapeUnnamed.
	Field string
	// Type is the field's type expression.
	Type string
	// Func, when set, is a generator called directly instead of through
	// arbitrary.Of.
	Func string
}

// Build constructs one variant. For ShapeUnit it has no calls and Reduce is
// zero; otherwise the source is reduced by Reduce once, before every call.
type Build struct {
	Ctor   string
	Addr   bool
	Shape  Shape
	Reduce int
	Calls  []Call
}

// Case is one switch arm of a sum dispatch: the budgets it matches and the
// variants (indexes into Generator.Helpers) eligible there.
type Case struct {
	Budgets  []int
	Variants []int
}

// Dispatch is the budget-tiered variant choice. Default holds the variants
// eligible at every budget not listed in Cases.
type Dispatch struct {
	Cases   []Case
	Default []int
}

// Helper builds one variant of a sum.
type Helper struct {
	Name    string
	Variant string
	Build   *Build
}

// Locals are the identifiers generated bodies declare. Each is its usual
// name (src, s, v, err, w, choices, f0...) with underscores appended until it
// shadows nothing the body refers to.
type Locals struct {
	// Src is the source parameter; Reduced the source fields draw from.
	Src     string
	Reduced string
	// Value and Err are the named results.
	Value string
	Err   string
	// Wrapped is the addressable copy of an unnamed pointer variant.
	Wrapped string
	Choices string
	// Fields prefixes per-field results: Fields + "0", Fields + "1", ...
	Fields string
}

// Field is the local bound to the i-th field's value.
func (l Locals) Field(i int) string {
	return l.Fields + strconv.Itoa(i)
}

// Generator is one ArbitraryT function. Exactly one of Build (products) and
// Dispatch (sums) is set.
type Generator struct {
	Name string
	// Type is the declared type name; Args its argument list ([A, B]).
	Type string
	Args string
	// Params are already constrained.
	Params   []GenericParam
	Locals   Locals
	Build    *Build
	Dispatch *Dispatch
	Helpers  []Helper
}

// Self is the generated function's result type, e.g. Pair[A, B].
func (g *Generator) Self() string {
	return g.Type + g.Args
}

// Generic reports whether the generator has type parameters.
func (g *Generator) Generic() bool {
	return len(g.Params) > 0
}

// Smoke is the generated smoke test.
type Smoke struct {
	Name string
	// Type is the instantiated type under test, Pair[arbitrary.Unit, arbitrary.Unit].
	Type string
	// Generator is the instantiated generator expression.
	Generator string
	// T, Prop and Err are the test's locals.
	T, Prop, Err string
}

// Unit is everything emitted for one declaration.
type Unit struct {
	Schema    *TypeSchema
	Generator *Generator
	// Method adds func (T) Arbitrary(src arbitrary.Source) (T, error).
	Method bool
	// Register adds the generator to the generated init function.
	Register bool
	// Smoke is nil when no test is emitted.
	Smoke    *Smoke
	Warnings []Warning
}

// Package emit lowers derive IR to Go source: the generated generators
// (arbitrary_gen.go) and their smoke tests (arbitrary_gen_test.go).
package emit

import (
	"fmt"
	"go/format"
	"regexp"
	"strings"

	"github.com/teranos/arbgen/derive"
	"github.com/teranos/arbgen/errors"
)

const (
	// RuntimePath is the package generated code calls into.
	RuntimePath = derive.RuntimePath
	// WellKnownPath registers generators for time and uuid types.
	WellKnownPath = RuntimePath + "/wellknown"
)

// wellKnown are the import paths whose types need WellKnownPath.
var wellKnown = map[string]bool{
	"time":                   true,
	"github.com/google/uuid": true,
}

var headerPattern = regexp.MustCompile(`(?m)^// Code generated by arbgen (\S+)\. DO NOT EDIT\.$`)

// Header is the first line of every generated file.
func Header(version string) string {
	return fmt.Sprintf("// Code generated by arbgen %s. DO NOT EDIT.", version)
}

// ParseHeader returns the arbgen version that wrote src.
func ParseHeader(src []byte) (string, bool) {
	m := headerPattern.FindSubmatch(src)
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// Options configure rendering.
type Options struct {
	// Package is the package clause of the generated files.
	Package string
	// Version goes into the header.
	Version string
}

// Output is the rendered pair of files. Test is nil when no unit has a
// smoke test.
type Output struct {
	Source []byte
	Test   []byte
}

// Render lowers units, in order, into formatted source.
func Render(units []*derive.Unit, opts Options) (*Output, error) {
	if opts.Package == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "package name is required")
	}
	if len(units) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "no units to render")
	}
	src, err := renderSource(units, opts)
	if err != nil {
		return nil, err
	}
	out := &Output{Source: src}

	test, err := renderTest(units, opts)
	if err != nil {
		return nil, err
	}
	out.Test = test
	return out, nil
}

func renderSource(units []*derive.Unit, opts Options) ([]byte, error) {
	imports := newImportSet()
	imports.add("arbitrary", RuntimePath)
	gens := plan(units, imports)

	e := NewEmitter()
	e.Line("%s", Header(opts.Version))
	e.Blank()
	e.Line("package %s", opts.Package)
	e.Blank()
	imports.write(e)

	var registered []string
	for _, u := range units {
		if u.Register {
			registered = append(registered, u.Generator.Name)
		}
	}
	if len(registered) > 0 {
		e.Blank()
		e.Block("func init()")
		for _, name := range registered {
			e.Line("arbitrary.Register(%s)", name)
		}
		e.EndBlock()
	}

	for i, u := range units {
		g := gens[i]
		e.Blank()
		writeGenerator(e, g)
		if u.Method {
			e.Blank()
			writeMethod(e, g)
		}
		for _, h := range g.Helpers {
			e.Blank()
			writeHelper(e, g, h)
		}
	}
	return gofmt(e.Bytes())
}

func renderTest(units []*derive.Unit, opts Options) ([]byte, error) {
	var smokes []*derive.Smoke
	for _, u := range units {
		if u.Smoke != nil {
			smokes = append(smokes, u.Smoke)
		}
	}
	if len(smokes) == 0 {
		return nil, nil
	}

	imports := newImportSet()
	imports.add("testing", "testing")
	imports.add("arbitrary", RuntimePath)

	e := NewEmitter()
	e.Line("%s", Header(opts.Version))
	e.Blank()
	e.Line("package %s", opts.Package)
	e.Blank()
	imports.write(e)

	for _, s := range smokes {
		e.Blank()
		e.Block("func %s(%s *testing.T)", s.Name, s.T)
		e.Line("%s := func(%s) bool { return true }", s.Prop, s.Type)
		e.Block("if %[1]s := arbitrary.Check(%[2]s, %[3]s, nil); %[1]s != nil", s.Err, s.Prop, s.Generator)
		e.Line("%s.Error(%s)", s.T, s.Err)
		e.EndBlock()
		e.EndBlock()
	}
	return gofmt(e.Bytes())
}

func writeGenerator(e *Emitter, g *derive.Generator) {
	l := g.Locals
	e.Line("// %s returns a random %s drawn from %s.", g.Name, g.Type, l.Src)
	sig := fmt.Sprintf("func %s%s(%s arbitrary.Source)", g.Name, derive.ParamList(g.Params), l.Src)

	if g.Build != nil {
		e.Block("%s (%s %s, %s error)", sig, l.Value, g.Self(), l.Err)
		writeBuild(e, l, g.Build)
		e.EndBlock()
		return
	}

	fn := fmt.Sprintf("func(arbitrary.Source) (%s, error)", g.Self())
	e.Block("%s (%s, error)", sig, g.Self())
	d := g.Dispatch
	if len(d.Cases) == 0 {
		e.Line("%s := []%s{%s}", l.Choices, fn, helperRefs(g, d.Default))
	} else {
		e.Line("var %s []%s", l.Choices, fn)
		e.Line("switch %s.Budget() {", l.Src)
		for _, c := range d.Cases {
			e.Line("case %s:", joinInts(c.Budgets))
			e.Indent()
			e.Line("%s = []%s{%s}", l.Choices, fn, helperRefs(g, c.Variants))
			e.Dedent()
		}
		e.Line("default:")
		e.Indent()
		e.Line("%s = []%s{%s}", l.Choices, fn, helperRefs(g, d.Default))
		e.Dedent()
		e.Line("}")
	}
	e.Line("return %[1]s[%[2]s.Intn(len(%[1]s))](%[2]s)", l.Choices, l.Src)
	e.EndBlock()
}

func writeHelper(e *Emitter, g *derive.Generator, h derive.Helper) {
	l := g.Locals
	e.Block("func %s%s(%s arbitrary.Source) (%s %s, %s error)",
		h.Name, derive.ParamList(g.Params), l.Src, l.Value, g.Self(), l.Err)
	writeBuild(e, l, h.Build)
	e.EndBlock()
}

func writeMethod(e *Emitter, g *derive.Generator) {
	src := g.Locals.Src
	e.Line("// Arbitrary implements arbitrary.Arbitrary.")
	e.Block("func (%s) Arbitrary(%s arbitrary.Source) (%s, error)", g.Self(), src, g.Self())
	e.Line("return %s(%s)", g.Name, src)
	e.EndBlock()
}

// writeBuild reduces the source once, generates every field from it, then
// constructs the value.
func writeBuild(e *Emitter, l derive.Locals, b *derive.Build) {
	if b.Shape == derive.ShapeUnit {
		e.Line("return %s%s{}, nil", addr(b), b.Ctor)
		return
	}

	e.Line("%s := arbitrary.Reduce(%s, %d)", l.Reduced, l.Src, b.Reduce)
	for _, c := range b.Calls {
		call := fmt.Sprintf("arbitrary.Of[%s](%s)", c.Type, l.Reduced)
		if c.Func != "" {
			call = c.Func + "(" + l.Reduced + ")"
		}
		e.Line("%s, %s := %s", c.Var, l.Err, call)
		e.Block("if %s != nil", l.Err)
		e.Line("return %s, %s", l.Value, l.Err)
		e.EndBlock()
	}

	switch b.Shape {
	case derive.ShapeUnnamed:
		if b.Addr {
			e.Line("%s := %s(%s)", l.Wrapped, b.Ctor, b.Calls[0].Var)
			e.Line("return &%s, nil", l.Wrapped)
			return
		}
		e.Line("return %s(%s), nil", b.Ctor, b.Calls[0].Var)
	case derive.ShapeNamed:
		keyed := make([]string, len(b.Calls))
		for i, c := range b.Calls {
			keyed[i] = c.Field + ": " + c.Var
		}
		e.Line("return %s%s{%s}, nil", addr(b), b.Ctor, strings.Join(keyed, ", "))
	}
}

func addr(b *derive.Build) string {
	if b.Addr {
		return "&"
	}
	return ""
}

func helperRefs(g *derive.Generator, variants []int) string {
	refs := make([]string, len(variants))
	for i, v := range variants {
		refs[i] = g.Helpers[v].Name + g.Args
	}
	return strings.Join(refs, ", ")
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}

func gofmt(src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, errors.WithDetail(errors.Wrap(err, "generated code does not parse"), string(src))
	}
	return out, nil
}

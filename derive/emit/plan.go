package emit

import (
	"regexp"
	"strconv"

	"github.com/teranos/arbgen/derive"
)

// plan claims every unit's imports in the shared set and returns the
// generators as rendered into one file. Each unit is synthesized alone, so
// two units may qualify different packages with the same name, and two sums
// may produce the same helper name. The returned copies resolve both; the
// units themselves are not modified.
func plan(units []*derive.Unit, imports *importSet) []*derive.Generator {
	avoid := make(map[string]bool)
	funcs := make(map[string]bool)
	for _, u := range units {
		for name := range u.Schema.Reserved {
			avoid[name] = true
		}
		for _, name := range localNames(u.Generator) {
			avoid[name] = true
		}
		funcs[u.Generator.Name] = true
	}

	gens := make([]*derive.Generator, len(units))
	for i, u := range units {
		renames := make(map[string]string)
		for _, imp := range u.Schema.Imports {
			if name := imports.claim(imp.Name, imp.Path, avoid); name != imp.Name {
				renames[imp.Name] = name
			}
			if wellKnown[imp.Path] {
				imports.addBlank(WellKnownPath)
			}
		}
		gens[i] = rendered(u.Generator, renames, funcs)
	}
	return gens
}

// rendered copies g with qualifiers renamed and helper names made unique
// among funcs, which it extends.
func rendered(g *derive.Generator, renames map[string]string, funcs map[string]bool) *derive.Generator {
	out := *g
	out.Params = make([]derive.GenericParam, len(g.Params))
	for i, p := range g.Params {
		bounds := make([]string, len(p.Bounds))
		for j, b := range p.Bounds {
			bounds[j] = requalify(b, renames)
		}
		out.Params[i] = derive.GenericParam{Name: p.Name, Bounds: bounds}
	}
	out.Build = renamedBuild(g.Build, renames)

	out.Helpers = make([]derive.Helper, len(g.Helpers))
	for i, h := range g.Helpers {
		name := h.Name
		for n := 2; funcs[name]; n++ {
			name = h.Name + "_" + strconv.Itoa(n)
		}
		funcs[name] = true
		out.Helpers[i] = derive.Helper{Name: name, Variant: h.Variant, Build: renamedBuild(h.Build, renames)}
	}
	return &out
}

func renamedBuild(b *derive.Build, renames map[string]string) *derive.Build {
	if b == nil {
		return nil
	}
	out := *b
	out.Calls = make([]derive.Call, len(b.Calls))
	for i, c := range b.Calls {
		c.Type = requalify(c.Type, renames)
		c.Func = requalify(c.Func, renames)
		out.Calls[i] = c
	}
	return &out
}

// localNames lists the identifiers g's bodies declare.
func localNames(g *derive.Generator) []string {
	l := g.Locals
	names := []string{l.Src, l.Reduced, l.Value, l.Err, l.Wrapped, l.Choices}
	collect := func(b *derive.Build) {
		if b == nil {
			return
		}
		for _, c := range b.Calls {
			names = append(names, c.Var)
		}
	}
	collect(g.Build)
	for _, h := range g.Helpers {
		collect(h.Build)
	}
	return names
}

// qualified matches a package qualifier in a type expression: an identifier
// followed by a dot and not itself preceded by one.
var qualified = regexp.MustCompile(`(^|[^\p{L}\p{N}_.])([\p{L}_][\p{L}\p{N}_]*)\.`)

// requalify rewrites the package qualifiers of expr found in renames.
func requalify(expr string, renames map[string]string) string {
	if len(renames) == 0 || expr == "" {
		return expr
	}
	return qualified.ReplaceAllStringFunc(expr, func(m string) string {
		sub := qualified.FindStringSubmatch(m)
		if to, ok := renames[sub[2]]; ok {
			return sub[1] + to + "."
		}
		return m
	})
}

package derive

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// BuildFields synthesizes the construction of one variant. Unit variants
// are a bare constructor. Otherwise the source is reduced once by the
// variant's arity, and every field is generated from that one reduced
// source, in declaration order, into the locals names.Field(i). Fields whose
// type is a generic type in derived are generated by calling its generator
// directly.
func BuildFields(v Variant, derived map[string]bool, names Locals) *Build {
	b := &Build{Ctor: v.Ctor, Addr: v.Addr, Shape: v.Shape}
	if v.Shape == ShapeUnit {
		return b
	}
	b.Reduce = v.Arity()
	b.Calls = make([]Call, len(v.Fields))
	for i, f := range v.Fields {
		c := Call{Var: names.Field(i), Field: f.Name, Type: f.Type}
		if f.Local != "" && derived[f.Local] {
			c.Func = GeneratorName(f.Local) + f.Args
		}
		b.Calls[i] = c
	}
	return b
}

// NewLocals picks generator locals that avoid every name in taken. arity is
// the most fields any variant has.
func NewLocals(taken map[string]bool, arity int) Locals {
	fresh := freshIn(taken)
	prefix := "f"
	for clashes(taken, prefix, arity) {
		prefix += "_"
	}
	return Locals{
		Src:     fresh("src"),
		Reduced: fresh("s"),
		Value:   fresh("v"),
		Err:     fresh("err"),
		Wrapped: fresh("w"),
		Choices: fresh("choices"),
		Fields:  prefix,
	}
}

// freshIn returns a namer that appends underscores to base until it is not
// in taken.
func freshIn(taken map[string]bool) func(base string) string {
	return func(base string) string {
		for taken[base] {
			base += "_"
		}
		return base
	}
}

func clashes(taken map[string]bool, prefix string, n int) bool {
	for i := 0; i < n; i++ {
		if taken[prefix+strconv.Itoa(i)] {
			return true
		}
	}
	return false
}

// GeneratorName is the generated function for typeName: ArbitraryList for
// List, arbitrary_list for list.
func GeneratorName(typeName string) string {
	if token.IsExported(typeName) {
		return "Arbitrary" + typeName
	}
	return "arbitrary_" + typeName
}

// helperName is the per-variant builder of a sum: arbitraryList_More.
func helperName(typeName, variant string) string {
	gen := GeneratorName(typeName)
	r, size := utf8.DecodeRuneInString(gen)
	return string(unicode.ToLower(r)) + gen[size:] + "_" + variant
}

// testName is the smoke test for typeName: TestArbitraryList, TestArbitrary_list.
func testName(typeName string) string {
	if token.IsExported(typeName) {
		return "TestArbitrary" + typeName
	}
	return "TestArbitrary_" + typeName
}

// instantiate renders name[arg, arg, ...] with one arg per parameter.
func instantiate(name string, params []GenericParam, arg string) string {
	if len(params) == 0 {
		return name
	}
	args := make([]string, len(params))
	for i := range args {
		args[i] = arg
	}
	return name + "[" + strings.Join(args, ", ") + "]"
}

package derive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arbgen/errors"
)

func TestSynthesizeProduct(t *testing.T) {
	schema := extract(t, `package shapes

type Triple struct {
	A int
	B string
	C []bool
}
`, "Triple")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)

	gen := unit.Generator
	assert.Equal(t, "ArbitraryTriple", gen.Name)
	assert.Equal(t, "Triple", gen.Self())
	assert.Nil(t, gen.Dispatch)

	want := &Build{
		Ctor:   "Triple",
		Shape:  ShapeNamed,
		Reduce: 3,
		Calls: []Call{
			{Var: "f0", Field: "A", Type: "int"},
			{Var: "f1", Field: "B", Type: "string"},
			{Var: "f2", Field: "C", Type: "[]bool"},
		},
	}
	if diff := cmp.Diff(want, gen.Build); diff != "" {
		t.Errorf("build mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, unit.Method)
	assert.True(t, unit.Register)
	require.NotNil(t, unit.Smoke)
	assert.Equal(t, &Smoke{
		Name:      "TestArbitraryTriple",
		Type:      "Triple",
		Generator: "ArbitraryTriple",
		T:         "t",
		Prop:      "prop",
		Err:       "err",
	}, unit.Smoke)
	assert.Empty(t, unit.Warnings)
}

func TestSynthesizeUnitProduct(t *testing.T) {
	schema := extract(t, `package shapes

type Origin struct{}
`, "Origin")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, &Build{Ctor: "Origin", Shape: ShapeUnit}, unit.Generator.Build)
}

func TestSynthesizeSum(t *testing.T) {
	schema := extract(t, listSrc, "List")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)

	gen := unit.Generator
	assert.Nil(t, gen.Build)
	require.NotNil(t, gen.Dispatch)
	assert.Equal(t, []Case{{Budgets: []int{0}, Variants: []int{0}}}, gen.Dispatch.Cases)

	want := []Helper{
		{Name: "arbitraryList_End", Variant: "End", Build: &Build{Ctor: "End", Shape: ShapeUnit}},
		{Name: "arbitraryList_More", Variant: "More", Build: &Build{
			Ctor:   "More",
			Addr:   true,
			Shape:  ShapeNamed,
			Reduce: 1,
			Calls:  []Call{{Var: "f0", Field: "Next", Type: "List"}},
		}},
	}
	if diff := cmp.Diff(want, gen.Helpers); diff != "" {
		t.Errorf("helpers mismatch (-want +got):\n%s", diff)
	}

	// Interfaces cannot carry methods; the registry covers them.
	assert.False(t, unit.Method)
	assert.True(t, unit.Register)
	assert.Equal(t, "TestArbitraryList", unit.Smoke.Name)
}

func TestSynthesizeUnexportedNames(t *testing.T) {
	schema := extract(t, `package shapes

type shape interface{ isShape() }

type circle struct{ r float64 }

func (circle) isShape() {}
`, "shape")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "arbitrary_shape", unit.Generator.Name)
	assert.Equal(t, "arbitrary_shape_circle", unit.Generator.Helpers[0].Name)
	assert.Equal(t, "TestArbitrary_shape", unit.Smoke.Name)
}

func TestSynthesizeGeneric(t *testing.T) {
	schema := extract(t, `package shapes

type Pair[A any, B comparable] struct {
	First  A
	Second B
}
`, "Pair")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)

	gen := unit.Generator
	assert.Equal(t, "Pair[A, B]", gen.Self())
	assert.Equal(t,
		"[A arbitrary.Arbitrary[A], B interface{ comparable; arbitrary.Arbitrary[B] }]",
		ParamList(gen.Params))
	assert.Equal(t, ArgList(gen.Params), gen.Args)

	assert.False(t, unit.Method)
	assert.False(t, unit.Register)
	assert.Equal(t, &Smoke{
		Name:      "TestArbitraryPair",
		Type:      "Pair[arbitrary.Unit, arbitrary.Unit]",
		Generator: "ArbitraryPair[arbitrary.Unit, arbitrary.Unit]",
		T:         "t",
		Prop:      "prop",
		Err:       "err",
	}, unit.Smoke)
}

func TestSynthesizeSkipsUnsatisfiableSmokeTest(t *testing.T) {
	schema := extract(t, `package shapes

import "fmt"

type Labeled[S fmt.Stringer] struct{ Label S }
`, "Labeled")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)
	assert.Nil(t, unit.Smoke)
	require.Len(t, unit.Warnings, 1)
	assert.Equal(t, CategorySmokeTest, unit.Warnings[0].Category)
	assert.Contains(t, unit.Warnings[0].Message, "fmt.Stringer")
}

func TestSynthesizeOptions(t *testing.T) {
	schema := extract(t, `package shapes

type Point struct{ X, Y int }
`, "Point")

	unit, err := Synthesize(schema, Options{})
	require.NoError(t, err)
	assert.Nil(t, unit.Smoke)
	assert.False(t, unit.Method)
	assert.Empty(t, unit.Warnings)
}

func TestSynthesizeDirectGenericCalls(t *testing.T) {
	src := `package shapes

type Seq[T any] interface{ isSeq() }

type Nil[T any] struct{}
type Cons[T any] struct {
	Head T
	Tail Seq[T]
}

func (Nil[T]) isSeq()  {}
func (Cons[T]) isSeq() {}
`
	schema := extract(t, src, "Seq")

	unit, err := Synthesize(schema, Options{Derived: map[string]bool{"Seq": true}})
	require.NoError(t, err)

	cons := unit.Generator.Helpers[1].Build
	assert.Equal(t, "Cons[T]", cons.Ctor)
	assert.Equal(t, Call{Var: "f0", Field: "Head", Type: "T"}, cons.Calls[0])
	assert.Equal(t, Call{Var: "f1", Field: "Tail", Type: "Seq[T]", Func: "ArbitrarySeq[T]"}, cons.Calls[1])

	// Not derived: fall back to arbitrary.Of.
	unit, err = Synthesize(schema, Options{})
	require.NoError(t, err)
	assert.Empty(t, unit.Generator.Helpers[1].Build.Calls[1].Func)
}

func TestSynthesizeAvoidsShadowedNames(t *testing.T) {
	schema := extract(t, `package shapes

type s int

type f0 int

type err struct{}

type Pair[src any] struct {
	A s
	B src
}
`, "Pair")

	unit, err := Synthesize(schema, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, Locals{
		Src:     "src_",
		Reduced: "s_",
		Value:   "v",
		Err:     "err_",
		Wrapped: "w",
		Choices: "choices",
		Fields:  "f_",
	}, unit.Generator.Locals)
	assert.Equal(t, []Call{
		{Var: "f_0", Field: "A", Type: "s"},
		{Var: "f_1", Field: "B", Type: "src"},
	}, unit.Generator.Build.Calls)
	assert.Equal(t, "err_", unit.Smoke.Err)
	assert.Equal(t, "t", unit.Smoke.T)
}

func TestNewLocals(t *testing.T) {
	l := NewLocals(nil, 3)
	assert.Equal(t, Locals{Src: "src", Reduced: "s", Value: "v", Err: "err", Wrapped: "w", Choices: "choices", Fields: "f"}, l)
	assert.Equal(t, "f2", l.Field(2))

	// Only fields the generator declares matter.
	assert.Equal(t, "f", NewLocals(map[string]bool{"f3": true}, 3).Fields)
	l = NewLocals(map[string]bool{"f2": true, "f_0": true, "s": true, "s_": true}, 3)
	assert.Equal(t, "f__", l.Fields)
	assert.Equal(t, "s__", l.Reduced)
}

func TestSynthesizeFailures(t *testing.T) {
	src := `package shapes

type F func()

type Never interface{ never() }
`
	t.Run("unsupported", func(t *testing.T) {
		unit, err := Synthesize(extract(t, src, "F"), DefaultOptions())
		assert.Nil(t, unit)

		var synthErr *SynthesisError
		require.True(t, errors.As(err, &synthErr))
		assert.Equal(t, CategoryUnsupported, synthErr.Category)
		assert.Equal(t, 3, synthErr.Pos.Line)
		assert.Contains(t, err.Error(), "not yet supported")
	})

	t.Run("empty sum", func(t *testing.T) {
		unit, err := Synthesize(extract(t, src, "Never"), DefaultOptions())
		assert.Nil(t, unit)

		var synthErr *SynthesisError
		require.True(t, errors.As(err, &synthErr))
		assert.Equal(t, CategoryEmptySum, synthErr.Category)
		// Anchored at the interface keyword, like unsupported kinds.
		assert.Equal(t, 5, synthErr.Pos.Line)
		assert.Equal(t, 12, synthErr.Pos.Column)
	})
}

func TestSynthesizeRejectsMalformedSchema(t *testing.T) {
	tests := []struct {
		name   string
		schema *TypeSchema
	}{
		{"nameless", &TypeSchema{Kind: Product}},
		{"product without variant", &TypeSchema{Name: "P", Kind: Product}},
		{"unsupported without diagnostic", &TypeSchema{Name: "U", Kind: Unsupported}},
		{"unknown kind", &TypeSchema{Name: "K", Kind: Kind(9)}},
		{"unnamed with two fields", &TypeSchema{Name: "P", Kind: Product, Variants: []Variant{{
			Name: "P", Ctor: "P", Shape: ShapeUnnamed,
			Fields: []Field{{Type: "int"}, {Type: "int"}},
		}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Synthesize(tt.schema, DefaultOptions())
			assert.True(t, errors.IsInvalidInputError(err), "got %v", err)
		})
	}
}

func TestDerive(t *testing.T) {
	pkg, file, fset := typecheck(t, listSrc)
	unit, err := Derive(declOf(t, pkg, file, fset, "More"), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "ArbitraryMore", unit.Generator.Name)
	assert.Equal(t, 1, unit.Generator.Build.Reduce)

	_, err = Derive(Decl{}, DefaultOptions())
	assert.Error(t, err)
}

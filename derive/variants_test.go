package derive

import (
	"go/token"
	"math/rand"
	"reflect"
	"slices"
	"testing"
	"testing/quick"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/arbgen/errors"
)

// variantsOf builds variants with the given arities.
func variantsOf(arities ...int) []Variant {
	vs := make([]Variant, len(arities))
	for i, a := range arities {
		v := Variant{Name: "V" + string(rune('A'+i)), Shape: ShapeUnit}
		v.Ctor = v.Name
		for j := 0; j < a; j++ {
			v.Shape = ShapeNamed
			v.Fields = append(v.Fields, Field{Name: "F" + string(rune('0'+j)), Type: "int"})
		}
		vs[i] = v
	}
	return vs
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name     string
		arities  []int
		budget   int
		eligible []int
	}{
		{"base case only at zero", []int{0, 1}, 0, []int{0}},
		{"recursive case once budget allows", []int{0, 1}, 3, []int{0, 1}},
		{"all zero arity", []int{0, 0, 0}, 0, []int{0, 1, 2}},
		{"arity three excluded at two", []int{0, 1, 3}, 2, []int{0, 1}},
		{"arity three included at three", []int{0, 1, 3}, 3, []int{0, 1, 2}},
		{"no base case widens to smallest", []int{2, 3}, 0, []int{0}},
		{"widened set grows normally", []int{2, 3, 2}, 3, []int{0, 1, 2}},
		{"empty", nil, 4, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eligible, Eligible(variantsOf(tt.arities...), tt.budget))
		})
	}
}

// arities is a quick.Generator for small non-empty arity lists.
type arities []int

func (arities) Generate(r *rand.Rand, size int) reflect.Value {
	n := 1 + r.Intn(6)
	out := make(arities, n)
	for i := range out {
		out[i] = r.Intn(5)
	}
	return reflect.ValueOf(out)
}

func TestEligibleMonotonic(t *testing.T) {
	prop := func(as arities, b1, b2 uint8) bool {
		lo, hi := int(min(b1, b2)), int(max(b1, b2))
		vs := variantsOf(as...)
		small, large := Eligible(vs, lo), Eligible(vs, hi)
		if len(small) == 0 {
			return false
		}
		for _, i := range small {
			if !slices.Contains(large, i) {
				return false
			}
		}
		return true
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestEligibleZeroArityFallback(t *testing.T) {
	prop := func(as arities) bool {
		vs := variantsOf(append(as, 0)...)
		for _, i := range Eligible(vs, 0) {
			if vs[i].Arity() != 0 {
				return false
			}
		}
		return true
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name    string
		arities []int
		want    *Dispatch
	}{
		{
			name:    "list",
			arities: []int{0, 1},
			want: &Dispatch{
				Cases:   []Case{{Budgets: []int{0}, Variants: []int{0}}},
				Default: []int{0, 1},
			},
		},
		{
			name:    "only zero arity",
			arities: []int{0, 0, 0},
			want:    &Dispatch{Default: []int{0, 1, 2}},
		},
		{
			name:    "gap between arities merges tiers",
			arities: []int{0, 1, 3},
			want: &Dispatch{
				Cases: []Case{
					{Budgets: []int{0}, Variants: []int{0}},
					{Budgets: []int{1, 2}, Variants: []int{0, 1}},
				},
				Default: []int{0, 1, 2},
			},
		},
		{
			name:    "no base case",
			arities: []int{2, 3},
			want: &Dispatch{
				Cases:   []Case{{Budgets: []int{0, 1, 2}, Variants: []int{0}}},
				Default: []int{0, 1},
			},
		},
		{
			name:    "equal arities fold into default",
			arities: []int{2, 2},
			want:    &Dispatch{Default: []int{0, 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate("T", variantsOf(tt.arities...), token.Position{})
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("dispatch mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// The dispatch must agree with Eligible at every budget.
func TestAllocateMatchesEligible(t *testing.T) {
	prop := func(as arities, budget uint8) bool {
		vs := variantsOf(as...)
		d, err := Allocate("T", vs, token.Position{})
		if err != nil {
			return false
		}
		chosen := d.Default
		for _, c := range d.Cases {
			if slices.Contains(c.Budgets, int(budget)) {
				chosen = c.Variants
			}
		}
		return slices.Equal(chosen, Eligible(vs, int(budget)))
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestAllocateEmpty(t *testing.T) {
	pos := token.Position{Filename: "shapes.go", Line: 3, Column: 6}
	_, err := Allocate("Never", nil, pos)

	var synthErr *SynthesisError
	require.True(t, errors.As(err, &synthErr))
	assert.Equal(t, CategoryEmptySum, synthErr.Category)
	assert.Equal(t, pos, synthErr.Pos)
	assert.Equal(t, "shapes.go:3:6: need at least one variant to instantiate the value of Never", err.Error())
}

package derive

import (
	"go/token"
	"slices"
)

// Eligible returns the indexes of the variants a generator may choose at
// budget: those with arity <= budget. When no variant is that small the
// lowest-arity variants are eligible instead, so every budget has a choice.
// The result only grows as budget grows.
func Eligible(variants []Variant, budget int) []int {
	if len(variants) == 0 {
		return nil
	}
	limit := max(budget, minArity(variants))
	var out []int
	for i, v := range variants {
		if v.Arity() <= limit {
			out = append(out, i)
		}
	}
	return out
}

// Allocate builds the budget-tiered dispatch for a sum. Budgets 0 through
// maxArity-1 get their own eligible set; from maxArity on every variant is
// eligible, which is the default arm. Neighbouring budgets with the same set
// share one case, and sets equal to the default fold into it.
func Allocate(typeName string, variants []Variant, pos token.Position) (*Dispatch, error) {
	if len(variants) == 0 {
		return nil, &SynthesisError{
			Category: CategoryEmptySum,
			Pos:      pos,
			Message:  "need at least one variant to instantiate the value of " + typeName,
			Hint:     "declare a type in this package that implements the interface",
		}
	}

	all := make([]int, len(variants))
	for i := range all {
		all[i] = i
	}
	d := &Dispatch{Default: all}

	for t := 0; t < maxArity(variants); t++ {
		set := Eligible(variants, t)
		if slices.Equal(set, all) {
			break
		}
		if n := len(d.Cases); n > 0 && slices.Equal(d.Cases[n-1].Variants, set) {
			d.Cases[n-1].Budgets = append(d.Cases[n-1].Budgets, t)
			continue
		}
		d.Cases = append(d.Cases, Case{Budgets: []int{t}, Variants: set})
	}
	return d, nil
}

func minArity(variants []Variant) int {
	m := variants[0].Arity()
	for _, v := range variants[1:] {
		m = min(m, v.Arity())
	}
	return m
}

func maxArity(variants []Variant) int {
	m := 0
	for _, v := range variants {
		m = max(m, v.Arity())
	}
	return m
}

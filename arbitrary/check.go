package arbitrary

import (
	"math/rand"
	"reflect"
	"testing/quick"
	"time"

	"github.com/teranos/arbgen/errors"
)

// MaxBudget bounds the budgets Check cycles through. Negative values are
// treated as zero.
var MaxBudget = 16

type generationFailure struct {
	budget int
	err    error
}

// Check runs prop through testing/quick with every argument produced by gen.
// Successive runs use budgets 0, 1, …, MaxBudget, 0, … so the base cases are
// always exercised. A generator error stops the run and is returned.
func Check[T any](prop func(T) bool, gen func(Source) (T, error), cfg *quick.Config) (err error) {
	var c quick.Config
	if cfg != nil {
		c = *cfg
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	run, span := 0, max(MaxBudget, 0)+1
	c.Values = func(args []reflect.Value, r *rand.Rand) {
		budget := run % span
		run++
		v, genErr := gen(NewSource(r, budget))
		if genErr != nil {
			panic(generationFailure{budget: budget, err: genErr})
		}
		args[0] = reflect.ValueOf(&v).Elem()
	}

	defer func() {
		if r := recover(); r != nil {
			failure, ok := r.(generationFailure)
			if !ok {
				panic(r)
			}
			err = errors.Wrapf(failure.err, "generation failed at budget %d", failure.budget)
		}
	}()
	return quick.Check(prop, &c)
}

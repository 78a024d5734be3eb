// Package arbitrary is the runtime half of arbgen: the budget-carrying
// randomness source that generated generators consume, the registry they
// publish themselves into, and reflection-based generation for everything
// that has no generated code of its own.
//
// A generated generator has the shape
//
//	func ArbitraryT(src arbitrary.Source) (T, error)
//
// and never sees more budget than its caller handed it: every recursive call
// is made with a source scoped to a strictly smaller or equal budget.
package arbitrary

import (
	"math/rand"
)

// Source is the only capability generated code depends on.
type Source interface {
	// Budget reports the remaining structural complexity. Never negative.
	Budget() int

	// Intn returns a uniformly chosen index in [0, n). For n <= 1 it
	// returns 0 without consuming randomness.
	Intn(n int) int

	// Scoped returns a source that shares this source's randomness stream
	// but reports budget.
	Scoped(budget int) Source
}

// Reduce scopes src to max(0, src.Budget()-arity). Generated code calls it
// once per chosen variant, before any of that variant's fields is generated.
func Reduce(src Source, arity int) Source {
	return src.Scoped(max(0, src.Budget()-arity))
}

// randSource wraps math/rand.
type randSource struct {
	r      *rand.Rand
	budget int
}

// NewSource returns a Source drawing from r with the given budget.
// A nil r is seeded with 1 so results stay reproducible.
func NewSource(r *rand.Rand, budget int) Source {
	if r == nil {
		r = rand.New(rand.NewSource(1))
	}
	return &randSource{r: r, budget: max(0, budget)}
}

func (s *randSource) Budget() int {
	return s.budget
}

func (s *randSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.Intn(n)
}

func (s *randSource) Scoped(budget int) Source {
	return &randSource{r: s.r, budget: max(0, budget)}
}

// byteStream is shared by every scope of one byte source.
type byteStream struct {
	data []byte
	pos  int
}

// byteSource uses a byte slice as a source of randomness. Fuzz targets use
// it so the fuzzer's corpus fully determines the generated value.
type byteSource struct {
	stream *byteStream
	budget int
}

// NewByteSource returns a Source that consumes data. Once data is exhausted
// every choice is 0, which always selects the first eligible variant.
func NewByteSource(data []byte, budget int) Source {
	return &byteSource{stream: &byteStream{data: data}, budget: max(0, budget)}
}

func (s *byteSource) Budget() int {
	return s.budget
}

func (s *byteSource) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	st := s.stream
	// Consume as many bytes as n needs so large ranges stay reachable.
	var v uint64
	for span := n - 1; span > 0; span >>= 8 {
		if st.pos >= len(st.data) {
			break
		}
		v = v<<8 | uint64(st.data[st.pos])
		st.pos++
	}
	return int(v % uint64(n))
}

func (s *byteSource) Scoped(budget int) Source {
	return &byteSource{stream: s.stream, budget: max(0, budget)}
}

package arbitrary

import (
	"reflect"
	"sync"

	"github.com/teranos/arbgen/errors"
)

// Arbitrary is the generation-capability bound arbgen appends to every type
// parameter of a derived type.
type Arbitrary[T any] interface {
	Arbitrary(src Source) (T, error)
}

// Func generates one T from src.
type Func[T any] func(src Source) (T, error)

// Unit is the placeholder type argument used by generated smoke tests.
type Unit struct{}

// Arbitrary returns Unit{} without consuming randomness.
func (Unit) Arbitrary(Source) (Unit, error) {
	return Unit{}, nil
}

var (
	// ErrUnsupported is returned for kinds no generator can produce.
	ErrUnsupported = errors.New("type not supported by arbitrary")

	// ErrNoGenerator is returned for interface types nothing registered.
	ErrNoGenerator = errors.New("no generator registered")
)

type reflectFunc func(src Source) (reflect.Value, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[reflect.Type]reflectFunc)
)

// Register publishes fn as the generator for T. Generated code registers
// every non-generic derived type from an init function; a later
// registration for the same type replaces the earlier one.
func Register[T any](fn func(Source) (T, error)) {
	t := reflect.TypeFor[T]()
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[t] = func(src Source) (reflect.Value, error) {
		v, err := fn(src)
		if err != nil {
			return reflect.Value{}, err
		}
		out := reflect.New(t).Elem()
		setValue(out, v)
		return out, nil
	}
}

// Registered reports whether a generator was registered for T.
func Registered[T any]() bool {
	_, ok := lookup(reflect.TypeFor[T]())
	return ok
}

func lookup(t reflect.Type) (reflectFunc, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[t]
	return fn, ok
}

// Of generates one T from src. It prefers T's own Arbitrary method, then a
// registered generator, then reflection.
func Of[T any](src Source) (T, error) {
	var zero T
	if a, ok := any(zero).(Arbitrary[T]); ok {
		return a.Arbitrary(src)
	}
	v, err := generate(reflect.TypeFor[T](), src)
	if err != nil {
		return zero, err
	}
	out := reflect.ValueOf(&zero).Elem()
	out.Set(v)
	return zero, nil
}

// setValue stores v into dst without losing a nil interface's static type.
func setValue(dst reflect.Value, v any) {
	if v == nil {
		dst.SetZero()
		return
	}
	dst.Set(reflect.ValueOf(v))
}

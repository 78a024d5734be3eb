package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "loading %s", "./shapes")

	assert.Contains(t, wrapped.Error(), "loading ./shapes")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

type positionedError struct {
	file string
}

func (e *positionedError) Error() string {
	return e.file + ": bad declaration"
}

func TestAsThroughWrap(t *testing.T) {
	wrapped := Wrap(&positionedError{file: "list.go"}, "derive List")

	var target *positionedError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "list.go", target.file)
}

func TestSentinels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NewNotFoundError("package %s", "./missing"), IsNotFoundError},
		{"invalid input", NewInvalidInputError("unknown flag %q", "-x"), IsInvalidInputError},
		{"out of date", Wrap(ErrOutOfDate, "shapes/arbitrary_gen.go"), IsOutOfDateError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(nil))
			assert.False(t, tt.check(New("unrelated")))
		})
	}
}

func TestNewNotFoundErrorMessage(t *testing.T) {
	err := NewNotFoundError("type %s", "List")
	assert.Contains(t, err.Error(), "type List")
	assert.Contains(t, err.Error(), "not found")
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHint(ErrOutOfDate, "run 'arbgen generate'")
	err = Wrap(err, "check")

	assert.True(t, IsOutOfDateError(err))
	assert.Equal(t, []string{"run 'arbgen generate'"}, GetAllHints(err))
}

func TestCombineErrors(t *testing.T) {
	a := New("a")
	b := New("b")

	combined := CombineErrors(a, b)
	assert.True(t, Is(combined, a))
	assert.Nil(t, CombineErrors(nil, nil))
	assert.Equal(t, b, CombineErrors(nil, b))
}

func TestNilHandling(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
	assert.Nil(t, Wrapf(nil, "context %d", 1))
	assert.Nil(t, WithStack(nil))
	assert.Nil(t, WithHint(nil, "hint"))
}

func TestStackTrace(t *testing.T) {
	err := New("with stack")
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func ExampleWrap() {
	err := Wrap(ErrNotFound, "package ./shapes")
	fmt.Println(err)
	// Output: package ./shapes: not found
}

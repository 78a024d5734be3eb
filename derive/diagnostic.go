package derive

import (
	"fmt"
	"go/token"
	"strings"
)

// Category classifies synthesis diagnostics for filtering.
type Category string

const (
	CategoryUnsupported Category = "type-unsupported"
	CategoryEmptySum    Category = "empty-sum"
	CategorySmokeTest   Category = "smoke-test"
)

// SynthesisError is a failure confined to one declaration. Pos is the
// declaration's distinguishing token.
type SynthesisError struct {
	Category Category       `json:"category" yaml:"category"`
	Pos      token.Position `json:"-" yaml:"-"`
	Message  string         `json:"message" yaml:"message"`
	Hint     string         `json:"hint,omitempty" yaml:"hint,omitempty"`
}

func (e *SynthesisError) Error() string {
	var sb strings.Builder
	if e.Pos.IsValid() {
		sb.WriteString(e.Pos.String())
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	return sb.String()
}

// String is Error plus the hint on its own line.
func (e *SynthesisError) String() string {
	if e.Hint == "" {
		return e.Error()
	}
	return e.Error() + "\n  hint: " + e.Hint
}

// Warning is a non-fatal note, such as a skipped smoke test.
type Warning struct {
	Category Category
	Pos      token.Position
	Message  string
}

func (w Warning) String() string {
	if w.Pos.IsValid() {
		return fmt.Sprintf("%s: warning: %s", w.Pos, w.Message)
	}
	return "warning: " + w.Message
}

func unsupported(pos token.Position, what, hint string) *SynthesisError {
	return &SynthesisError{
		Category: CategoryUnsupported,
		Pos:      pos,
		Message:  what + " are not yet supported",
		Hint:     hint,
	}
}

// Package derive turns Go type declarations into generator IR.
//
// The pipeline is Extract (declaration -> TypeSchema), then Synthesize
// (TypeSchema -> Unit). Synthesis is pure: it never touches the filesystem
// and holds no state between declarations, so any number of declarations
// may be derived in any order. Lowering a Unit to Go source lives in
// derive/emit.
package derive

import (
	"go/token"
	"strings"

	"github.com/teranos/arbgen/errors"
)

// Kind classifies a declaration. The set is closed; every switch over it
// lists all three.
type Kind int

const (
	Product Kind = iota
	Sum
	Unsupported
)

func (k Kind) String() string {
	switch k {
	case Product:
		return "product"
	case Sum:
		return "sum"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name for inspect output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Shape is how a variant's fields are laid out.
type Shape int

const (
	// ShapeUnit has no fields; the value is built as V{}.
	ShapeUnit Shape = iota
	// ShapeUnnamed has exactly one positional field; the value is built by
	// conversion V(f0).
	ShapeUnnamed
	// ShapeNamed has named fields; the value is a keyed composite literal.
	ShapeNamed
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeUnnamed:
		return "unnamed"
	case ShapeNamed:
		return "named"
	default:
		return "unknown"
	}
}

// MarshalText renders the shape by name for inspect output.
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Field is one generated field. Name is empty for ShapeUnnamed.
type Field struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Type string `json:"type" yaml:"type"`

	// Local and Args are set when the field's type is an instantiated
	// generic type declared in the same package, e.g. List[T]. Such fields
	// are generated by calling that type's generator directly when it is
	// derived too, because generic types never reach the registry.
	Local string `json:"local,omitempty" yaml:"local,omitempty"`
	Args  string `json:"args,omitempty" yaml:"args,omitempty"`
}

// Variant is one constructible case. A product has exactly one.
type Variant struct {
	Name string `json:"name" yaml:"name"`

	// Ctor is the type expression used to build the value, with type
	// arguments when the variant is generic: Some[T].
	Ctor string `json:"ctor" yaml:"ctor"`

	// Addr is set when only *V implements the sum; the value is built as &V{...}.
	Addr bool `json:"addr,omitempty" yaml:"addr,omitempty"`

	Shape  Shape   `json:"shape" yaml:"shape"`
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Arity is the number of fields; the allocator tiers variants by it.
func (v Variant) Arity() int {
	return len(v.Fields)
}

// GenericParam is a type parameter and its existing bounds. An unconstrained
// parameter (any, interface{}) has no bounds.
type GenericParam struct {
	Name   string   `json:"name" yaml:"name"`
	Bounds []string `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

// Import is a package referenced by rendered field types or bounds. Name is
// the qualifier those types use; it differs from the package name when the
// package name is already taken in the declaring package.
type Import struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// TypeSchema is everything synthesis needs to know about one declaration.
type TypeSchema struct {
	Name     string         `json:"name" yaml:"name"`
	Kind     Kind           `json:"kind" yaml:"kind"`
	Generics []GenericParam `json:"generics,omitempty" yaml:"generics,omitempty"`
	Variants []Variant      `json:"variants,omitempty" yaml:"variants,omitempty"`
	Imports  []Import       `json:"imports,omitempty" yaml:"imports,omitempty"`
	Pos      token.Position `json:"-" yaml:"-"`

	// Anchor is the declaration's distinguishing token; diagnostics about
	// the whole declaration point at it.
	Anchor token.Position `json:"-" yaml:"-"`

	// Reserved holds the identifiers generated code must not shadow: the
	// declaring package's scope and the type's own parameters.
	Reserved map[string]bool `json:"-" yaml:"-"`

	// Method is set when the type can carry a generated Arbitrary method:
	// a non-generic product with no field or method of that name.
	Method bool `json:"method,omitempty" yaml:"method,omitempty"`

	// Err explains an Unsupported kind.
	Err *SynthesisError `json:"error,omitempty" yaml:"error,omitempty"`
}

// anchor falls back to Pos for schemas built without one.
func (s *TypeSchema) anchor() token.Position {
	if s.Anchor.IsValid() {
		return s.Anchor
	}
	return s.Pos
}

// Exported reports whether the declared type name is exported.
func (s *TypeSchema) Exported() bool {
	return token.IsExported(s.Name)
}

// Validate checks the structural invariants Extract guarantees. Schemas
// built by hand in tests or tools go through it before synthesis.
func (s *TypeSchema) Validate() error {
	if s.Name == "" {
		return errors.Wrap(errors.ErrInvalidInput, "schema has no name")
	}
	switch s.Kind {
	case Product:
		if len(s.Variants) != 1 {
			return errors.Wrapf(errors.ErrInvalidInput, "product %s has %d variants, want 1", s.Name, len(s.Variants))
		}
	case Sum:
	case Unsupported:
		if s.Err == nil {
			return errors.Wrapf(errors.ErrInvalidInput, "unsupported schema %s carries no diagnostic", s.Name)
		}
	default:
		return errors.Wrapf(errors.ErrInvalidInput, "schema %s has unknown kind %d", s.Name, int(s.Kind))
	}
	for _, v := range s.Variants {
		if v.Shape == ShapeUnnamed && len(v.Fields) != 1 {
			return errors.Wrapf(errors.ErrInvalidInput, "variant %s: unnamed shape needs exactly one field", v.Name)
		}
		if (v.Shape == ShapeUnit) != (len(v.Fields) == 0) {
			return errors.Wrapf(errors.ErrInvalidInput, "variant %s: unit shape must have no fields", v.Name)
		}
	}
	return nil
}

// argList renders [A, B] for the given parameters, or "" when there are none.
func argList(params []GenericParam) string {
	if len(params) == 0 {
		return ""
	}
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

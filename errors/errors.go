// Package errors provides error handling for arbgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Wrap with context
//	if err := generate.Write(res, opts); err != nil {
//	    return errors.Wrapf(err, "failed to write %s", res.Dir)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "run 'arbgen generate' to refresh")
//
// Synthesis diagnostics are not built here: see derive.SynthesisError.
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
	CombineErrors = crdb.CombineErrors
)

// AssertionFailedf reports a broken internal invariant.
var AssertionFailedf = crdb.AssertionFailedf

// Common sentinel errors for use across arbgen.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNotFound indicates a package, type or file does not exist
	ErrNotFound = New("not found")

	// ErrInvalidInput indicates malformed flags, directives or configuration
	ErrInvalidInput = New("invalid input")

	// ErrOutOfDate indicates generated files on disk differ from fresh output
	ErrOutOfDate = New("generated code is out of date")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsInvalidInputError checks if an error is or wraps ErrInvalidInput
func IsInvalidInputError(err error) bool {
	return err != nil && Is(err, ErrInvalidInput)
}

// IsOutOfDateError checks if an error is or wraps ErrOutOfDate
func IsOutOfDateError(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Wrap(ErrInvalidInput, Newf(format, args...).Error())
}

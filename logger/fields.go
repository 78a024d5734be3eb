package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across arbgen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldPackage   = "package"
	FieldType      = "type"
	FieldKind      = "kind"
	FieldPattern   = "pattern"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError    = "error"
	FieldCategory = "category"

	// Counts and sizes
	FieldCount    = "count"
	FieldVariants = "variants"
	FieldBytes    = "bytes"

	// Status
	FieldStatus = "status"

	// Files and paths
	FieldFile   = "file"
	FieldDir    = "dir"
	FieldLine   = "line"
	FieldConfig = "config"

	// Versions
	FieldVersion = "version"
)

// ComponentLogger returns a named logger for a specific component.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("generate.watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	pkgLogger := logger.ChildLogger(base, logger.FieldPackage, pkg.PkgPath)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}

// Package errors provides structured error types for the bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries context: property or key path, Go/native type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseProperty, errors.KindReadOnly).
//		Path("GtkCellRendererCombo", "has-entry").
//		NativeType("gboolean").
//		Detail("property is not writable").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TypeMismatch(errors.PhaseValue, path, "string", "gint")
//	err := errors.NotFound(errors.PhaseProperty, "property", "text-column")
//
// Programmer errors (wrong runtime type, null handle, use after release,
// wrong thread) are raised with Panic; everything else is returned.
// NativeError represents a GError converted at the boundary.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

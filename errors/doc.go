// Package errors provides structured error types for the redis-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go type and wire kind names, and
// a cause chain. Compile-phase errors report configuration problems (bad case rules,
// duplicate wire names, unsupported type classes) and abort plan construction;
// encode and decode phase errors report per-value failures.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindTypeMismatch).
//		Path("user", "age").
//		GoType("int").
//		WireKind("bulk").
//		Detail("cannot parse %q as integer", "abc").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.FieldMissing(path, "name")
//	err := errors.ArityMismatch(path, 3, 2)
//	err := errors.UnknownVariant(path, "Purple", []string{"Red", "Green", "Blue"})
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind, so callers classify failures without string
// matching:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindFieldMissing}) {
//		// handle missing field
//	}
package errors

// Package errors provides structured error types for the fudge module.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending value, inclusive bounds, expected/actual
// pairs, Go/wire type names, a field path and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseConvert, errors.KindOverflow).
//		WireType("byte").
//		Value(128).
//		Bounds(-128, 127).
//		Detail("value 128 overflows byte").
//		Build()
//
// Or use convenience constructors, one per kind:
//
//	err := errors.SizeMismatch(errors.PhaseConvert, "byte[8]", 8, 7)
//	err := errors.IndexOutOfRange(errors.PhaseLookup, 10, 5)
//
// Match kinds with errors.Is against a Kind-only target, or with Has:
//
//	stderrors.Is(err, &errors.Error{Kind: errors.KindOverflow})
//	errors.Has(err, errors.KindOverflow)
package errors

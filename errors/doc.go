// Package errors provides structured error types for the casita codec and houses.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the position of the offending value, the value itself,
// a human-readable detail and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindInvalidSymbol).
//		Path("word", "2").
//		Value('x').
//		Detail("symbol %q not in alphabet", 'x').
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidSymbol(errors.PhaseEncode, path, 'x')
//	err := errors.InvalidBitVector(errors.PhaseDecode, path, "0120", "non-binary digit")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

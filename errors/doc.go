// Package errors provides structured error types for the OER codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, Go/schema type names, and cause chain.
//
// The four wire kinds (buffer_too_small, out_of_data, bad_choice, bad_length)
// carry numeric codes. Codec entry points report the first of them as a negated
// byte count, and Code/CodeOf recover it from an error value:
//
//	n, err := codec.Decode(&msg, msgType, src)
//	if n < 0 {
//		// errors.CodeOf(err) == -n
//	}
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseCompile, errors.KindTypeMismatch).
//		Path("header", "flags").
//		GoType("string").
//		SchemaType("u8").
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors

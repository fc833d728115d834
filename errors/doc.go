// Package errors provides structured error types for the wit-codec library.
//
// Every decode failure is categorized by Kind and carries the absolute byte
// Offset of the token that failed, so a diagnostic can point at the exact
// offending byte. Use the convenience constructors:
//
//	err := errors.InvalidSection(pos, id)
//	err := errors.Truncated(pos, want)
//
// All errors implement the standard error interface and support errors.Is
// matching on Kind.
package errors

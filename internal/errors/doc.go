// Package errors defines error types for toolbridge.
//
// This package provides structured error types for parameter validation,
// connection handling, and protocol-level failures. All error types support
// error unwrapping and can be checked using errors.Is and errors.As.
package errors

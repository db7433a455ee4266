package errors

import (
	"errors"
	"fmt"
)

// ToolbridgeError is the base interface for all toolbridge errors.
type ToolbridgeError interface {
	error
	IsToolbridgeError() bool
}

// Compile-time verification that all error types implement ToolbridgeError.
var (
	_ ToolbridgeError = (*MissingParameterError)(nil)
	_ ToolbridgeError = (*InvalidEnumValueError)(nil)
	_ ToolbridgeError = (*ConnectionError)(nil)
	_ ToolbridgeError = (*ProtocolError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates the client is not connected.
	ErrNotConnected = errors.New("client not connected")

	// ErrAlreadyConnected indicates the client is already connected.
	ErrAlreadyConnected = errors.New("client already connected")

	// ErrConnectionClosed indicates the connection was closed while an
	// operation was in progress.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrEmptyToolName indicates a tool was registered without a name.
	ErrEmptyToolName = errors.New("tool name must not be empty")
)

// MissingParameterError indicates a required tool parameter was absent.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("Required parameter '%s' is missing", e.Name)
}

// IsToolbridgeError implements ToolbridgeError.
func (e *MissingParameterError) IsToolbridgeError() bool { return true }

// InvalidEnumValueError indicates a parameter value is outside its declared
// enumeration.
type InvalidEnumValueError struct {
	Name    string
	Value   any
	Allowed []string
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("Parameter '%s' must be one of %v", e.Name, e.Allowed)
}

// IsToolbridgeError implements ToolbridgeError.
func (e *InvalidEnumValueError) IsToolbridgeError() bool { return true }

// ConnectionError indicates a transport-level failure on the client
// connection. It wraps the underlying network error.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsToolbridgeError implements ToolbridgeError.
func (e *ConnectionError) IsToolbridgeError() bool { return true }

// ProtocolError indicates the server answered a request with an error
// response. Code carries the JSON-RPC error code from the wire.
type ProtocolError struct {
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// IsToolbridgeError implements ToolbridgeError.
func (e *ProtocolError) IsToolbridgeError() bool { return true }

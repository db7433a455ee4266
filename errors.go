package toolbridge

import "github.com/nexabi/toolbridge/internal/errors"

// Re-export error types from internal package

// MissingParameterError indicates a required tool parameter was absent.
type MissingParameterError = errors.MissingParameterError

// InvalidEnumValueError indicates a parameter value is outside its declared
// enumeration.
type InvalidEnumValueError = errors.InvalidEnumValueError

// ConnectionError indicates a transport-level failure on the client
// connection.
type ConnectionError = errors.ConnectionError

// ProtocolError indicates the server answered a request with an error
// response.
type ProtocolError = errors.ProtocolError

// ToolbridgeError is the base interface for all toolbridge errors.
type ToolbridgeError = errors.ToolbridgeError

// Re-export sentinel errors from internal package.
var (
	// ErrNotConnected indicates the client is not connected.
	ErrNotConnected = errors.ErrNotConnected

	// ErrAlreadyConnected indicates the client is already connected.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrConnectionClosed indicates the connection was closed while an
	// operation was in progress.
	ErrConnectionClosed = errors.ErrConnectionClosed

	// ErrEmptyToolName indicates a tool was registered without a name.
	ErrEmptyToolName = errors.ErrEmptyToolName
)

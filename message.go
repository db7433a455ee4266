package toolbridge

// Wire-level constants. ProtocolVersion is the value returned by the hello
// method; jsonrpcVersion tags every envelope.
const (
	ProtocolVersion = "2024-11-05"

	jsonrpcVersion = "2.0"
)

// Protocol methods. Unknown methods produce an error response, never a
// dropped connection.
const (
	MethodHello         = "hello"
	MethodListTools     = "tools/list"
	MethodCallTool      = "tools/call"
	MethodListResources = "resources/list"
	MethodReadResource  = "resources/read"
)

// JSON-RPC error codes used by the server role.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// Message is the protocol envelope shared by both roles.
//
// A request carries ID, Method, and Params; a response echoes the request's
// ID unmodified and carries exactly one of Result or Error. The field names
// are fixed wire contract.
type Message struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      string         `json:"id,omitempty"`
	Method  string         `json:"method,omitempty"`
	Params  map[string]any `json:"params,omitempty"`
	Result  map[string]any `json:"result,omitempty"`
	Error   *MessageError  `json:"error,omitempty"`
}

// MessageError is the error member of a response envelope.
type MessageError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewRequest creates a request message with a caller-chosen correlation id.
func NewRequest(id, method string, params map[string]any) *Message {
	return &Message{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	}
}

// NewResponse creates a success response correlated to the given request id.
func NewResponse(id string, result map[string]any) *Message {
	return &Message{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Result:  result,
	}
}

// NewErrorResponse creates an error response correlated to the given
// request id.
func NewErrorResponse(id string, code int, message string) *Message {
	return &Message{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Error:   &MessageError{Code: code, Message: message},
	}
}

// IsError reports whether the message carries an error member.
func (m *Message) IsError() bool {
	return m.Error != nil
}

// Resource describes a named, URI-addressed readable entity exposed by a
// server. The JSON field names are external contract, consumed identically
// by resources/list and resources/read.
type Resource struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MIMEType    string `json:"mimeType"`
}

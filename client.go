package toolbridge

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"

	"github.com/nexabi/toolbridge/internal/errors"
)

// ClientOption configures a Client during construction.
type ClientOption func(*Client)

// WithClientLogger sets the logger used by the client. Defaults to a
// no-op logger.
func WithClientLogger(log *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// Client is the protocol client role: it holds at most one websocket
// connection to a server and issues protocol requests over it.
//
// Lifecycle: Disconnected → Connect → Connected → Disconnect → Disconnected.
// Send and receive fail with ErrNotConnected outside the Connected state.
//
// Each high-level operation issues at most one outstanding request at a
// time and correlates its response by the echoed id; responses carrying any
// other id are discarded with a warning, so a pipelining-capable peer cannot
// misdeliver. Operations serialize on an internal mutex; issue concurrent
// calls from separate clients if parallelism is needed.
type Client struct {
	log *slog.Logger
	url string

	// mu guards the conn pointer only. Blocking reads deliberately run
	// outside it so Disconnect can abort an in-progress ReceiveMessage by
	// closing the socket.
	mu   sync.Mutex
	conn *websocket.Conn

	// opMu serializes writes and request/response exchanges; the websocket
	// supports one concurrent writer.
	opMu sync.Mutex
}

// NewClient creates a client for the given websocket URL
// (e.g. "ws://localhost:3000").
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		log: NopLogger(),
		url: url,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.log = c.log.With("component", "mcp_client")

	return c
}

// Connect dials the server. Returns ErrAlreadyConnected if a connection is
// already open, or a *ConnectionError if the dial fails.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return errors.ErrAlreadyConnected
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.log.Error("Failed to connect", "url", c.url, "error", err)

		return &errors.ConnectionError{URL: c.url, Err: err}
	}

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.conn = conn
	c.log.Info("Connected to MCP server", "url", c.url)

	return nil
}

// Connected reports whether the client currently holds a connection.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn != nil
}

// Disconnect closes the connection. Safe to call when already disconnected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}

	// Best-effort close handshake before tearing down the socket.
	// WriteControl is safe to call concurrently with other writes.
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))

	err := c.conn.Close()
	c.conn = nil
	c.log.Info("Disconnected from MCP server", "url", c.url)

	return err
}

// current returns the connection pointer, or nil while disconnected.
func (c *Client) current() *websocket.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.conn
}

// SendMessage writes one protocol message to the connection. Fails with
// ErrNotConnected while disconnected.
func (c *Client) SendMessage(ctx context.Context, msg *Message) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	return c.send(ctx, msg)
}

func (c *Client) send(ctx context.Context, msg *Message) error {
	conn := c.current()
	if conn == nil {
		return errors.ErrNotConnected
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return &errors.ConnectionError{URL: c.url, Err: err}
	}

	c.log.Debug("Sent message", "id", msg.ID, "method", msg.Method)

	return nil
}

// ReceiveMessage blocks until a full message arrives or the connection
// closes. A close surfaces as an error wrapping ErrConnectionClosed; other
// transport faults surface as a *ConnectionError.
func (c *Client) ReceiveMessage(ctx context.Context) (*Message, error) {
	conn := c.current()
	if conn == nil {
		return nil, errors.ErrNotConnected
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		var closeErr *websocket.CloseError
		if stderrors.As(err, &closeErr) || stderrors.Is(err, net.ErrClosed) {
			return nil, fmt.Errorf("%w: %v", errors.ErrConnectionClosed, err)
		}

		return nil, &errors.ConnectionError{URL: c.url, Err: err}
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	c.log.Debug("Received message", "id", msg.ID)

	return &msg, nil
}

// call performs one request/response exchange: generate a ULID id, send the
// request, then read until the response echoing that id arrives.
func (c *Client) call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	id := ulid.Make().String()

	if err := c.send(ctx, NewRequest(id, method, params)); err != nil {
		return nil, fmt.Errorf("send %s request: %w", method, err)
	}

	for {
		resp, err := c.ReceiveMessage(ctx)
		if err != nil {
			return nil, fmt.Errorf("await %s response: %w", method, err)
		}

		if resp.ID != id {
			c.log.Warn("Discarding response with unexpected id", "want", id, "got", resp.ID)

			continue
		}

		if resp.IsError() {
			return nil, &errors.ProtocolError{Code: resp.Error.Code, Message: resp.Error.Message}
		}

		return resp.Result, nil
	}
}

// Hello performs the version handshake and returns the server's protocol
// version string.
func (c *Client) Hello(ctx context.Context) (string, error) {
	result, err := c.call(ctx, MethodHello, nil)
	if err != nil {
		return "", err
	}

	version, _ := result["protocolVersion"].(string)

	return version, nil
}

// ToolDescriptor is one entry of a tools/list response.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// ListTools fetches the server's tool catalog.
func (c *Client) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	result, err := c.call(ctx, MethodListTools, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Tools []ToolDescriptor `json:"tools"`
	}
	if err := decodeResult(result, &payload); err != nil {
		return nil, fmt.Errorf("decode tools/list result: %w", err)
	}

	return payload.Tools, nil
}

// ContentBlock is one entry of a tools/call content array.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallTool invokes a remote tool and returns its content blocks.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) ([]ContentBlock, error) {
	result, err := c.call(ctx, MethodCallTool, map[string]any{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Content []ContentBlock `json:"content"`
	}
	if err := decodeResult(result, &payload); err != nil {
		return nil, fmt.Errorf("decode tools/call result: %w", err)
	}

	return payload.Content, nil
}

// ListResources fetches the server's resource catalog.
func (c *Client) ListResources(ctx context.Context) ([]Resource, error) {
	result, err := c.call(ctx, MethodListResources, nil)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Resources []Resource `json:"resources"`
	}
	if err := decodeResult(result, &payload); err != nil {
		return nil, fmt.Errorf("decode resources/list result: %w", err)
	}

	return payload.Resources, nil
}

// ResourceContents is the result of a resources/read request.
type ResourceContents struct {
	URI      string            `json:"uri"`
	Contents []ResourceContent `json:"contents"`
}

// ResourceContent is one content entry of a resources/read result.
type ResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType"`
	Text     string `json:"text"`
}

// ReadResource reads a resource by URI.
func (c *Client) ReadResource(ctx context.Context, uri string) (*ResourceContents, error) {
	result, err := c.call(ctx, MethodReadResource, map[string]any{"uri": uri})
	if err != nil {
		return nil, err
	}

	var payload ResourceContents
	if err := decodeResult(result, &payload); err != nil {
		return nil, fmt.Errorf("decode resources/read result: %w", err)
	}

	return &payload, nil
}

// decodeResult converts a generic result map into a typed payload.
func decodeResult(result map[string]any, out any) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, out)
}

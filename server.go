package toolbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"
)

const shutdownGracePeriod = 10 * time.Second

// ToolHandler is a callable tool body exposed by a Server. A returned error
// becomes a protocol error response; the returned value is stringified into
// the tools/call content block.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// ResourceReader produces the current contents of a registered resource.
// Reading never mutates the registration.
type ResourceReader func(ctx context.Context) (string, error)

// ServerOption configures a Server during construction.
type ServerOption func(*Server)

// WithServerLogger sets the logger used by the server. Defaults to a
// no-op logger.
func WithServerLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// serverTool pairs a tool handler with its discovery metadata.
type serverTool struct {
	name        string
	description string
	inputSchema any
	handler     ToolHandler
}

// serverResource pairs a resource descriptor with its reader.
type serverResource struct {
	descriptor Resource
	read       ResourceReader
}

// Server is the protocol server role: it accepts websocket connections and
// answers protocol methods by dispatching into its tool and resource maps.
//
// Each accepted connection is serviced by its own goroutine; within a
// connection, handling is strictly sequential (one request, one response),
// so correlation is FIFO per connection. The tool and resource maps are the
// only state shared across connections and are read-only during dispatch.
//
// Registration is safe before or after Start.
type Server struct {
	log      *slog.Logger
	addr     string
	upgrader websocket.Upgrader

	mu            sync.RWMutex
	tools         map[string]*serverTool
	toolOrder     []string
	resources     map[string]*serverResource
	resourceOrder []string

	lifecycleMu sync.Mutex
	httpServer  *http.Server
	listenAddr  net.Addr
}

// NewServer creates a server that will listen on addr (host:port).
func NewServer(addr string, opts ...ServerOption) *Server {
	s := &Server{
		log:       NopLogger(),
		addr:      addr,
		tools:     make(map[string]*serverTool, 8),
		resources: make(map[string]*serverResource, 8),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The protocol carries no browser credentials; origin policy is
			// left to a fronting proxy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With("component", "mcp_server")

	return s
}

// RegisterTool exposes a callable under the given name. The discovery
// metadata is minimal (a generic object schema); use MountRegistry to expose
// tools with full derived schemas. Registering an existing name overwrites.
func (s *Server) RegisterTool(name string, handler ToolHandler) {
	s.registerTool(&serverTool{
		name:        name,
		description: fmt.Sprintf("Tool: %s", name),
		inputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"params": map[string]any{"type": "object"},
			},
		},
		handler: handler,
	})
}

// MountRegistry exposes every tool currently in reg through the server.
//
// Calls are dispatched via Registry.Execute, so the registry's containment
// guarantee applies: the handler never returns an error and the full
// {result, success, error} shape is delivered as the call content. Tools
// registered into reg after mounting are not picked up.
func (s *Server) MountRegistry(reg *Registry) {
	for _, t := range reg.List() {
		schema := DescribeSchema(t)
		name := t.Name()

		s.registerTool(&serverTool{
			name:        name,
			description: t.Description(),
			inputSchema: schema.InputSchema,
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				return reg.Execute(ctx, name, args), nil
			},
		})
	}
}

func (s *Server) registerTool(st *serverTool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tools[st.name]; !exists {
		s.toolOrder = append(s.toolOrder, st.name)
	}

	s.tools[st.name] = st
	s.log.Info("Registered tool", "tool", st.name)
}

// RegisterResource registers a resource descriptor. file:// URIs are served
// from disk on resources/read; other schemes need RegisterResourceReader.
// URIs are unique per server; re-registration overwrites.
func (s *Server) RegisterResource(res Resource) {
	s.RegisterResourceReader(res, fileReader(res.URI))
}

// RegisterResourceContent registers a resource whose contents are the given
// static text.
func (s *Server) RegisterResourceContent(res Resource, text string) {
	s.RegisterResourceReader(res, func(context.Context) (string, error) {
		return text, nil
	})
}

// RegisterResourceReader registers a resource with an explicit reader.
func (s *Server) RegisterResourceReader(res Resource, read ResourceReader) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.resources[res.URI]; !exists {
		s.resourceOrder = append(s.resourceOrder, res.URI)
	}

	s.resources[res.URI] = &serverResource{descriptor: res, read: read}
	s.log.Info("Registered resource", "uri", res.URI)
}

// fileReader serves file:// URIs from the local filesystem.
func fileReader(uri string) ResourceReader {
	return func(context.Context) (string, error) {
		u, err := url.Parse(uri)
		if err != nil || u.Scheme != "file" {
			return "", fmt.Errorf("no reader registered for resource '%s'", uri)
		}

		data, err := os.ReadFile(u.Path)
		if err != nil {
			return "", fmt.Errorf("read resource '%s': %w", uri, err)
		}

		return string(data), nil
	}
}

// Start listens on the configured address and serves connections until ctx
// is cancelled or Stop is called. It blocks for the lifetime of the server;
// a nil return means a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleConnection)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.lifecycleMu.Lock()
	s.httpServer = srv
	s.listenAddr = ln.Addr()
	s.lifecycleMu.Unlock()

	s.log.Info("MCP server started", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("serve: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	s.log.Info("MCP server stopped")

	return err
}

// Stop ceases accepting new connections and drains in-flight dispatches.
// Calling Stop before Start is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.lifecycleMu.Lock()
	srv := s.httpServer
	s.lifecycleMu.Unlock()

	if srv == nil {
		return nil
	}

	return srv.Shutdown(ctx)
}

// Addr returns the actual listen address once Start has bound it.
func (s *Server) Addr() string {
	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()

	if s.listenAddr == nil {
		return s.addr
	}

	return s.listenAddr.String()
}

// handleConnection upgrades one HTTP request to a websocket and services it
// until close: read one message, dispatch, write exactly one response.
func (s *Server) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("Websocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)

		return
	}

	log := s.log.With("connection_id", uuid.NewString(), "remote_addr", conn.RemoteAddr().String())
	log.Info("Client connected")

	defer func() {
		_ = conn.Close()

		log.Info("Client disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("Connection read failed", "error", err)
			}

			return
		}

		resp := s.dispatchRaw(r.Context(), data)

		out, err := json.Marshal(resp)
		if err != nil {
			log.Error("Failed to marshal response", "error", err)

			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			log.Warn("Connection write failed", "error", err)

			return
		}
	}
}

// dispatchRaw decodes one frame and dispatches it. Undecodable frames get a
// parse-error response with an empty id (the id cannot be recovered).
func (s *Server) dispatchRaw(ctx context.Context, data []byte) *Message {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.Warn("Failed to decode message", "error", err)

		return NewErrorResponse("", codeParseError, fmt.Sprintf("parse error: %v", err))
	}

	return s.dispatch(ctx, &msg)
}

// dispatch answers one protocol request. Every invocation is panic-wrapped:
// a fault in a handler becomes an error response rather than terminating the
// connection. The connection-level fault model is reserved for transport
// failures.
func (s *Server) dispatch(ctx context.Context, msg *Message) (resp *Message) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error("Dispatch panicked", "method", msg.Method, "panic", rec)
			resp = NewErrorResponse(msg.ID, codeInternalError, fmt.Sprintf("internal error: %v", rec))
		}
	}()

	s.log.Debug("Dispatching request", "id", msg.ID, "method", msg.Method)

	switch msg.Method {
	case MethodHello:
		return NewResponse(msg.ID, map[string]any{"protocolVersion": ProtocolVersion})

	case MethodListTools:
		return NewResponse(msg.ID, map[string]any{"tools": s.toolDescriptors()})

	case MethodCallTool:
		return s.dispatchCallTool(ctx, msg)

	case MethodListResources:
		return NewResponse(msg.ID, map[string]any{"resources": s.resourceDescriptors()})

	case MethodReadResource:
		return s.dispatchReadResource(ctx, msg)

	default:
		return NewErrorResponse(msg.ID, codeMethodNotFound, fmt.Sprintf("unknown method: %s", msg.Method))
	}
}

func (s *Server) toolDescriptors() []map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]map[string]any, 0, len(s.toolOrder))
	for _, name := range s.toolOrder {
		st := s.tools[name]
		out = append(out, map[string]any{
			"name":        st.name,
			"description": st.description,
			"inputSchema": st.inputSchema,
		})
	}

	return out
}

func (s *Server) resourceDescriptors() []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Resource, 0, len(s.resourceOrder))
	for _, uri := range s.resourceOrder {
		out = append(out, s.resources[uri].descriptor)
	}

	return out
}

func (s *Server) dispatchCallTool(ctx context.Context, msg *Message) *Message {
	name, _ := msg.Params["name"].(string)
	args, _ := msg.Params["arguments"].(map[string]any)

	s.mu.RLock()
	st, ok := s.tools[name]
	s.mu.RUnlock()

	if !ok {
		return NewErrorResponse(msg.ID, codeInvalidParams, fmt.Sprintf("tool not found: %s", name))
	}

	out, err := st.handler(ctx, args)
	if err != nil {
		return NewErrorResponse(msg.ID, codeInternalError, err.Error())
	}

	return NewResponse(msg.ID, map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": stringify(out)},
		},
	})
}

func (s *Server) dispatchReadResource(ctx context.Context, msg *Message) *Message {
	uri, _ := msg.Params["uri"].(string)

	s.mu.RLock()
	sr, ok := s.resources[uri]
	s.mu.RUnlock()

	if !ok {
		return NewErrorResponse(msg.ID, codeInvalidParams, fmt.Sprintf("resource not found: %s", uri))
	}

	text, err := sr.read(ctx)
	if err != nil {
		return NewErrorResponse(msg.ID, codeInternalError, err.Error())
	}

	return NewResponse(msg.ID, map[string]any{
		"uri": uri,
		"contents": []map[string]any{
			{
				"uri":      uri,
				"mimeType": sr.descriptor.MIMEType,
				"text":     text,
			},
		},
	})
}

// stringify renders a tool result for the text content block. Strings pass
// through; everything else is JSON-encoded.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}

	return string(data)
}

package toolbridge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nexabi/toolbridge/internal/errors"
)

// Registry is a catalog of tools keyed by name.
//
// A Registry is constructed once (per process or per test) and passed by
// reference to whatever consumes it: the route layer, a protocol Server via
// MountRegistry, or agent code. There is no package-level singleton.
//
// All operations are safe for concurrent use. Execute only reads the map, so
// concurrent executions of different tools never contend beyond the read
// lock; Register and Remove serialize against lookups.
type Registry struct {
	log *slog.Logger

	mu    sync.RWMutex
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry(log *slog.Logger) *Registry {
	if log == nil {
		log = NopLogger()
	}

	return &Registry{
		log:   log.With("component", "registry"),
		tools: make(map[string]Tool, 8),
	}
}

// Register inserts a tool, overwriting any previous tool with the same name.
// The only validation is a non-empty name. An overwritten tool keeps its
// original position in listing order.
func (r *Registry) Register(t Tool) error {
	if t.Name() == "" {
		return errors.ErrEmptyToolName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}

	r.tools[t.Name()] = t
	r.log.Debug("Registered tool", "tool", t.Name(), "category", t.Category())

	return nil
}

// Get returns the tool registered under name, or false if absent.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]

	return t, ok
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// List returns all tools in registration order.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}

	return out
}

// ListByCategory returns the tools of one category in registration order.
func (r *Registry) ListByCategory(c Category) []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Tool

	for _, name := range r.order {
		if t := r.tools[name]; t.Category() == c {
			out = append(out, t)
		}
	}

	return out
}

// Search returns tools whose name or description contains query,
// case-insensitively, in registration order. An empty query matches all.
func (r *Registry) Search(query string) []Tool {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Tool

	for _, name := range r.order {
		t := r.tools[name]
		if strings.Contains(strings.ToLower(t.Name()), q) ||
			strings.Contains(strings.ToLower(t.Description()), q) {
			out = append(out, t)
		}
	}

	return out
}

// Schemas returns the derived schemas of all tools in registration order.
func (r *Registry) Schemas() []*ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, DescribeSchema(r.tools[name]))
	}

	return out
}

// Execute looks up and runs a tool, always returning a Result.
//
// This is the central invariant of the registry: Execute never panics and
// never returns nil, whatever the tool body does. A missing tool yields
// {success:false, error:"tool '<name>' not found"}; a panicking body is
// caught here even if the Tool implementation skipped its own recovery.
// Callers can always treat the return value as the final word.
//
// The tool body runs synchronously on the caller's goroutine and may block
// on I/O; callers needing concurrency or deadlines wrap Execute in their own
// goroutine or context.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (res *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("Tool execution panicked", "tool", name, "panic", rec)
			res = ErrorResult(fmt.Sprintf("tool '%s' panicked: %v", name, rec))
		}
	}()

	t, ok := r.Get(name)
	if !ok {
		return ErrorResult(fmt.Sprintf("tool '%s' not found", name))
	}

	r.log.Debug("Executing tool", "tool", name)

	res = t.Execute(ctx, args)
	if res == nil {
		// A Tool implementation violating the contract still must not
		// surface as a nil result to callers.
		return ErrorResult(fmt.Sprintf("tool '%s' returned no result", name))
	}

	return res
}

// Remove deletes a tool by name. Removing an unknown name is a no-op and
// returns false.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; !ok {
		return false
	}

	delete(r.tools, name)

	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)

			break
		}
	}

	r.log.Debug("Removed tool", "tool", name)

	return true
}

// Clear removes all tools.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]Tool, 8)
	r.order = nil
}

// Statistics is an aggregate snapshot of the registry contents.
type Statistics struct {
	Total      int              `json:"total_tools"`
	ByCategory map[Category]int `json:"tools_by_type"`
	Parameters []ParameterCount `json:"parameter_counts"`
}

// ParameterCount reports per-tool parameter totals.
type ParameterCount struct {
	Tool     string `json:"tool_name"`
	Total    int    `json:"parameter_count"`
	Required int    `json:"required_parameters"`
}

// Statistics returns tool counts, a per-category breakdown (every category
// present, zero-filled), and per-tool parameter counts. The snapshot is
// derived purely from current state.
func (r *Registry) Statistics() *Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &Statistics{
		Total:      len(r.tools),
		ByCategory: make(map[Category]int, len(Categories())),
		Parameters: make([]ParameterCount, 0, len(r.order)),
	}

	for _, c := range Categories() {
		stats.ByCategory[c] = 0
	}

	for _, name := range r.order {
		t := r.tools[name]
		stats.ByCategory[t.Category()]++

		required := 0

		for _, p := range t.Parameters() {
			if p.Required {
				required++
			}
		}

		stats.Parameters = append(stats.Parameters, ParameterCount{
			Tool:     t.Name(),
			Total:    len(t.Parameters()),
			Required: required,
		})
	}

	return stats
}

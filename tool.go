package toolbridge

import (
	"context"
	"fmt"
	"slices"

	"github.com/nexabi/toolbridge/internal/errors"
)

// Category classifies a tool by the kind of operation it performs.
type Category string

// Tool categories. CategoryMCPOperation covers tools that themselves speak
// the protocol (e.g. a tool that proxies calls to a remote server).
const (
	CategoryDataAnalysis      Category = "data_analysis"
	CategoryFileOperation     Category = "file_operation"
	CategoryWebOperation      Category = "web_operation"
	CategoryDatabaseOperation Category = "database_operation"
	CategoryMCPOperation      Category = "mcp_operation"
	CategoryCustom            Category = "custom"
)

// Categories returns all tool categories in their canonical order.
// Statistics reports are zero-filled against this list.
func Categories() []Category {
	return []Category{
		CategoryDataAnalysis,
		CategoryFileOperation,
		CategoryWebOperation,
		CategoryDatabaseOperation,
		CategoryMCPOperation,
		CategoryCustom,
	}
}

// ParamType is the declared type tag of a tool parameter.
type ParamType string

// Parameter type tags. These are declaration-level tags; TypeFloat maps to
// the JSON Schema "number" type when a schema is derived.
const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeFloat   ParamType = "float"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
	TypeObject  ParamType = "object"
)

// Parameter declares a single named input of a tool.
type Parameter struct {
	// Name is the argument key. Unique within a tool.
	Name string

	// Type is the declared type tag.
	Type ParamType

	// Description is a human-readable explanation of the parameter.
	Description string

	// Required marks the parameter as mandatory.
	Required bool

	// Default is the value used when an optional parameter is absent.
	Default any

	// Enum restricts the parameter to a fixed set of string literals.
	Enum []string
}

// Result is the uniform outcome of a tool execution.
//
// Exactly one of the two terminal states holds: Success is true and Error is
// empty, or Success is false and Error carries a non-empty message. Result
// holds the domain-specific payload on success.
type Result struct {
	Result  any    `json:"result"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SuccessResult creates a Result carrying a successful payload.
func SuccessResult(v any) *Result {
	return &Result{Result: v, Success: true}
}

// ErrorResult creates a Result carrying a failure message.
func ErrorResult(message string) *Result {
	return &Result{Success: false, Error: message}
}

// Tool is a named, schema-described, executable capability.
//
// Implementations must uphold the execute-never-throws contract: Execute
// always returns a Result and never panics outward. Tools built with NewTool
// get this for free; hand-rolled implementations should recover internally.
// Tool implementations must be stateless or internally synchronized, since
// a registry may execute the same tool from multiple goroutines.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// Category returns the tool's category.
	Category() Category

	// Parameters returns the declared parameter list in declaration order.
	Parameters() []Parameter

	// Execute runs the tool with the provided arguments.
	Execute(ctx context.Context, args map[string]any) *Result
}

// ToolFunc is the body of a function-backed tool. A returned error becomes
// a failed Result; the returned value becomes the Result payload.
type ToolFunc func(ctx context.Context, args map[string]any) (any, error)

// NewTool creates a Tool from a parameter declaration and a function body.
//
// The returned tool validates arguments before invoking fn, fills declared
// defaults for absent optional parameters, and converts both returned errors
// and panics into a failed Result.
//
// Example:
//
//	echo := toolbridge.NewTool("echo", "Echo a message back", toolbridge.CategoryCustom,
//	    []toolbridge.Parameter{
//	        {Name: "msg", Type: toolbridge.TypeString, Description: "Message to echo", Required: true},
//	    },
//	    func(_ context.Context, args map[string]any) (any, error) {
//	        return args["msg"], nil
//	    },
//	)
func NewTool(name, description string, category Category, params []Parameter, fn ToolFunc) Tool {
	return &tool{
		name:        name,
		description: description,
		category:    category,
		params:      params,
		fn:          fn,
	}
}

// tool is the function-backed Tool implementation.
type tool struct {
	name        string
	description string
	category    Category
	params      []Parameter
	fn          ToolFunc
}

// Compile-time verification that *tool implements the Tool interface.
var _ Tool = (*tool)(nil)

func (t *tool) Name() string            { return t.name }
func (t *tool) Description() string     { return t.description }
func (t *tool) Category() Category      { return t.category }
func (t *tool) Parameters() []Parameter { return t.params }

func (t *tool) Execute(ctx context.Context, args map[string]any) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res = ErrorResult(fmt.Sprintf("tool '%s' panicked: %v", t.name, r))
		}
	}()

	if err := ValidateArguments(t, args); err != nil {
		return ErrorResult(err.Error())
	}

	out, err := t.fn(ctx, withDefaults(t.params, args))
	if err != nil {
		return ErrorResult(err.Error())
	}

	return SuccessResult(out)
}

// ValidateArguments checks args against the tool's declared parameters.
//
// It returns a *MissingParameterError when a required parameter is absent
// and an *InvalidEnumValueError when a supplied value is outside a declared
// enumeration. Validation has no side effects.
func ValidateArguments(t Tool, args map[string]any) error {
	for _, p := range t.Parameters() {
		v, present := args[p.Name]

		if p.Required && !present {
			return &errors.MissingParameterError{Name: p.Name}
		}

		if present && len(p.Enum) > 0 {
			s, ok := v.(string)
			if !ok || !slices.Contains(p.Enum, s) {
				return &errors.InvalidEnumValueError{Name: p.Name, Value: v, Allowed: p.Enum}
			}
		}
	}

	return nil
}

// withDefaults returns a copy of args with declared defaults filled in for
// absent optional parameters. The caller's map is never mutated.
func withDefaults(params []Parameter, args map[string]any) map[string]any {
	filled := make(map[string]any, len(args)+len(params))
	for k, v := range args {
		filled[k] = v
	}

	for _, p := range params {
		if p.Default == nil {
			continue
		}

		if _, present := filled[p.Name]; !present {
			filled[p.Name] = p.Default
		}
	}

	return filled
}

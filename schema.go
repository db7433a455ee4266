package toolbridge

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// ToolSchema is the discovery-facing description of a tool.
//
// The field names inputSchema and outputSchema are external contract: the
// route layer publishes this shape verbatim and remote peers consume it from
// tools/list responses.
type ToolSchema struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	InputSchema  *jsonschema.Schema `json:"inputSchema"`
	OutputSchema *jsonschema.Schema `json:"outputSchema"`
}

// DescribeSchema derives a tool's schema from its declared parameter list.
//
// The input schema is an object whose properties carry each parameter's
// type, description, enum, and default; the required list preserves
// declaration order. The output schema is the fixed Result shape. The
// derivation is pure: no schema state lives outside the parameter list.
func DescribeSchema(t Tool) *ToolSchema {
	in := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(t.Parameters())),
		Required:   []string{},
	}

	for _, p := range t.Parameters() {
		prop := &jsonschema.Schema{
			Type:        schemaType(p.Type),
			Description: p.Description,
		}

		if len(p.Enum) > 0 {
			prop.Enum = make([]any, len(p.Enum))
			for i, e := range p.Enum {
				prop.Enum[i] = e
			}
		}

		if p.Default != nil {
			if raw, err := json.Marshal(p.Default); err == nil {
				prop.Default = json.RawMessage(raw)
			}
		}

		in.Properties[p.Name] = prop

		if p.Required {
			in.Required = append(in.Required, p.Name)
		}
	}

	return &ToolSchema{
		Name:         t.Name(),
		Description:  t.Description(),
		InputSchema:  in,
		OutputSchema: outputSchema(),
	}
}

// outputSchema returns the fixed {result, success, error} shape shared by
// every tool.
func outputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"result":  {Type: "string", Description: "Tool execution result"},
			"success": {Type: "boolean", Description: "Whether execution was successful"},
			"error":   {Type: "string", Description: "Error message if any"},
		},
	}
}

// schemaType maps a declared parameter type tag to its JSON Schema type.
func schemaType(t ParamType) string {
	switch t {
	case TypeFloat:
		return "number"
	case TypeString, TypeInteger, TypeBoolean, TypeArray, TypeObject:
		return string(t)
	default:
		return "string"
	}
}

package toolbridge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeSchema(t *testing.T) {
	noop := func(context.Context, map[string]any) (any, error) { return nil, nil }

	t.Run("properties and required from declaration", func(t *testing.T) {
		tool := NewTool("calc", "Calculate things", CategoryDataAnalysis,
			[]Parameter{
				{Name: "x", Type: TypeString, Description: "Input value", Required: true},
				{Name: "y", Type: TypeInteger, Required: false, Default: 5},
			},
			noop,
		)

		s := DescribeSchema(tool)

		assert.Equal(t, "calc", s.Name)
		assert.Equal(t, "Calculate things", s.Description)

		require.NotNil(t, s.InputSchema)
		assert.Equal(t, "object", s.InputSchema.Type)
		assert.Equal(t, []string{"x"}, s.InputSchema.Required)

		x := s.InputSchema.Properties["x"]
		require.NotNil(t, x)
		assert.Equal(t, "string", x.Type)
		assert.Equal(t, "Input value", x.Description)

		y := s.InputSchema.Properties["y"]
		require.NotNil(t, y)
		assert.Equal(t, "integer", y.Type)
		assert.Equal(t, json.RawMessage("5"), y.Default)
	})

	t.Run("required order follows declaration order", func(t *testing.T) {
		tool := NewTool("multi", "Several required params", CategoryCustom,
			[]Parameter{
				{Name: "b", Type: TypeString, Required: true},
				{Name: "a", Type: TypeString, Required: true},
			},
			noop,
		)

		s := DescribeSchema(tool)
		assert.Equal(t, []string{"b", "a"}, s.InputSchema.Required)
	})

	t.Run("float maps to number", func(t *testing.T) {
		tool := NewTool("ratio", "", CategoryCustom,
			[]Parameter{{Name: "r", Type: TypeFloat}},
			noop,
		)

		s := DescribeSchema(tool)
		assert.Equal(t, "number", s.InputSchema.Properties["r"].Type)
	})

	t.Run("enum carried into property", func(t *testing.T) {
		tool := NewTool("pick", "", CategoryCustom,
			[]Parameter{{Name: "mode", Type: TypeString, Enum: []string{"fast", "slow"}}},
			noop,
		)

		s := DescribeSchema(tool)
		assert.Equal(t, []any{"fast", "slow"}, s.InputSchema.Properties["mode"].Enum)
	})

	t.Run("fixed output shape", func(t *testing.T) {
		s := DescribeSchema(NewTool("t", "", CategoryCustom, nil, noop))

		require.NotNil(t, s.OutputSchema)
		assert.Equal(t, "object", s.OutputSchema.Type)
		assert.Equal(t, "string", s.OutputSchema.Properties["result"].Type)
		assert.Equal(t, "boolean", s.OutputSchema.Properties["success"].Type)
		assert.Equal(t, "string", s.OutputSchema.Properties["error"].Type)
	})

	t.Run("JSON field names match the wire contract", func(t *testing.T) {
		s := DescribeSchema(NewTool("t", "d", CategoryCustom,
			[]Parameter{{Name: "x", Type: TypeString, Required: true}},
			noop,
		))

		out, err := json.Marshal(s)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))

		assert.Contains(t, decoded, "inputSchema")
		assert.Contains(t, decoded, "outputSchema")
		assert.Equal(t, "t", decoded["name"])
	})

	t.Run("derivation is pure", func(t *testing.T) {
		tool := NewTool("t", "", CategoryCustom,
			[]Parameter{{Name: "x", Type: TypeString, Required: true, Default: nil}},
			noop,
		)

		first := DescribeSchema(tool)
		second := DescribeSchema(tool)

		assert.Equal(t, first, second)
	})
}

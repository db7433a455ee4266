package toolbridge

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool() Tool {
	return NewTool("echo", "Echo a message back", CategoryCustom,
		[]Parameter{
			{Name: "msg", Type: TypeString, Description: "Message to echo", Required: true},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["msg"], nil
		},
	)
}

func TestNewTool(t *testing.T) {
	tool := echoTool()

	assert.Equal(t, "echo", tool.Name())
	assert.Equal(t, "Echo a message back", tool.Description())
	assert.Equal(t, CategoryCustom, tool.Category())
	require.Len(t, tool.Parameters(), 1)
	assert.Equal(t, "msg", tool.Parameters()[0].Name)
}

func TestToolExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("success carries the payload", func(t *testing.T) {
		res := echoTool().Execute(ctx, map[string]any{"msg": "hi"})

		require.True(t, res.Success)
		assert.Equal(t, "hi", res.Result)
		assert.Empty(t, res.Error)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		res := echoTool().Execute(ctx, map[string]any{})

		require.False(t, res.Success)
		assert.Equal(t, "Required parameter 'msg' is missing", res.Error)
	})

	t.Run("body error becomes failed result", func(t *testing.T) {
		tool := NewTool("fail", "Always fails", CategoryCustom, nil,
			func(context.Context, map[string]any) (any, error) {
				return nil, fmt.Errorf("upstream unavailable")
			},
		)

		res := tool.Execute(ctx, nil)

		require.False(t, res.Success)
		assert.Equal(t, "upstream unavailable", res.Error)
	})

	t.Run("body panic becomes failed result", func(t *testing.T) {
		tool := NewTool("boom", "Always panics", CategoryCustom, nil,
			func(context.Context, map[string]any) (any, error) {
				panic("kaboom")
			},
		)

		res := tool.Execute(ctx, nil)

		require.NotNil(t, res)
		require.False(t, res.Success)
		assert.Contains(t, res.Error, "kaboom")
	})

	t.Run("defaults filled for absent optional parameters", func(t *testing.T) {
		var seen map[string]any

		tool := NewTool("defaults", "Records its arguments", CategoryCustom,
			[]Parameter{
				{Name: "limit", Type: TypeInteger, Required: false, Default: 10},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				seen = args

				return nil, nil
			},
		)

		callerArgs := map[string]any{}
		res := tool.Execute(ctx, callerArgs)

		require.True(t, res.Success)
		assert.Equal(t, 10, seen["limit"])
		assert.NotContains(t, callerArgs, "limit", "caller's map must not be mutated")
	})

	t.Run("supplied value wins over default", func(t *testing.T) {
		var seen map[string]any

		tool := NewTool("defaults", "Records its arguments", CategoryCustom,
			[]Parameter{
				{Name: "limit", Type: TypeInteger, Required: false, Default: 10},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				seen = args

				return nil, nil
			},
		)

		res := tool.Execute(ctx, map[string]any{"limit": 3})

		require.True(t, res.Success)
		assert.Equal(t, 3, seen["limit"])
	})
}

func TestValidateArguments(t *testing.T) {
	enumTool := NewTool("analyze", "Analyze a dataset", CategoryDataAnalysis,
		[]Parameter{
			{Name: "data", Type: TypeString, Required: true},
			{
				Name:     "analysis_type",
				Type:     TypeString,
				Required: false,
				Enum:     []string{"summary", "correlation"},
			},
		},
		func(context.Context, map[string]any) (any, error) { return nil, nil },
	)

	t.Run("valid arguments", func(t *testing.T) {
		err := ValidateArguments(enumTool, map[string]any{
			"data":          "[]",
			"analysis_type": "summary",
		})

		require.NoError(t, err)
	})

	t.Run("optional enum parameter may be absent", func(t *testing.T) {
		require.NoError(t, ValidateArguments(enumTool, map[string]any{"data": "[]"}))
	})

	t.Run("missing required parameter", func(t *testing.T) {
		err := ValidateArguments(enumTool, map[string]any{})
		require.Error(t, err)

		var missing *MissingParameterError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, "data", missing.Name)
	})

	t.Run("value outside enum", func(t *testing.T) {
		err := ValidateArguments(enumTool, map[string]any{
			"data":          "[]",
			"analysis_type": "bogus",
		})
		require.Error(t, err)

		var invalid *InvalidEnumValueError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "analysis_type", invalid.Name)
		assert.Equal(t, []string{"summary", "correlation"}, invalid.Allowed)
	})

	t.Run("non-string value against enum", func(t *testing.T) {
		err := ValidateArguments(enumTool, map[string]any{
			"data":          "[]",
			"analysis_type": 7,
		})

		var invalid *InvalidEnumValueError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("validation has no side effects", func(t *testing.T) {
		args := map[string]any{"data": "[]"}
		_ = ValidateArguments(enumTool, args)

		assert.Equal(t, map[string]any{"data": "[]"}, args)
	})
}

func TestResultHelpers(t *testing.T) {
	ok := SuccessResult(42)
	require.True(t, ok.Success)
	assert.Equal(t, 42, ok.Result)
	assert.Empty(t, ok.Error)

	bad := ErrorResult("broken")
	require.False(t, bad.Success)
	assert.Equal(t, "broken", bad.Error)
	assert.Nil(t, bad.Result)
}

func TestSentinelErrors(t *testing.T) {
	// Root re-exports must be the same values as the internal package ones.
	require.True(t, errors.Is(ErrNotConnected, ErrNotConnected))
	assert.NotErrorIs(t, ErrNotConnected, ErrConnectionClosed)
}

package tools

import (
	"context"

	"github.com/nexabi/toolbridge"
)

// Echo returns a tool that echoes its message argument back as the result.
func Echo() toolbridge.Tool {
	return toolbridge.NewTool(
		"echo",
		"Echo a message back to the caller",
		toolbridge.CategoryCustom,
		[]toolbridge.Parameter{
			{
				Name:        "msg",
				Type:        toolbridge.TypeString,
				Description: "Message to echo",
				Required:    true,
			},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["msg"], nil
		},
	)
}

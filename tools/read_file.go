package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/nexabi/toolbridge"
)

const defaultMaxBytes = 65536

// ReadFile returns a tool that reads a local file, truncating large
// contents at a caller-controlled byte limit.
func ReadFile() toolbridge.Tool {
	return toolbridge.NewTool(
		"read_file",
		"Read the contents of a local file",
		toolbridge.CategoryFileOperation,
		[]toolbridge.Parameter{
			{
				Name:        "path",
				Type:        toolbridge.TypeString,
				Description: "Path of the file to read",
				Required:    true,
			},
			{
				Name:        "max_bytes",
				Type:        toolbridge.TypeInteger,
				Description: "Maximum number of bytes to return",
				Required:    false,
				Default:     defaultMaxBytes,
			},
		},
		readFile,
	)
}

func readFile(_ context.Context, args map[string]any) (any, error) {
	path := stringArg(args, "path")

	maxBytes := intArg(args, "max_bytes", defaultMaxBytes)
	if maxBytes <= 0 {
		return nil, fmt.Errorf("max_bytes must be positive, got %d", maxBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	truncated := len(data) > maxBytes
	if truncated {
		data = data[:maxBytes]
	}

	return map[string]any{
		"path":       path,
		"size_bytes": len(data),
		"content":    string(data),
		"truncated":  truncated,
	}, nil
}

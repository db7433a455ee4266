package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nexabi/toolbridge"
)

const (
	fetchTimeout   = 30 * time.Second
	fetchBodyLimit = 64 * 1024
)

// HTTPFetch returns a tool that performs a bounded HTTP request and returns
// status, content type, and a truncated body.
func HTTPFetch() toolbridge.Tool {
	return toolbridge.NewTool(
		"http_fetch",
		"Fetch a URL over HTTP and return status and body",
		toolbridge.CategoryWebOperation,
		[]toolbridge.Parameter{
			{
				Name:        "url",
				Type:        toolbridge.TypeString,
				Description: "URL to fetch",
				Required:    true,
			},
			{
				Name:        "method",
				Type:        toolbridge.TypeString,
				Description: "HTTP method",
				Required:    false,
				Default:     "GET",
				Enum:        []string{"GET", "HEAD"},
			},
		},
		httpFetch,
	)
}

func httpFetch(ctx context.Context, args map[string]any) (any, error) {
	url := stringArg(args, "url")
	method := stringArg(args, "method")

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := &http.Client{Timeout: fetchTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, fetchBodyLimit+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	truncated := len(body) > fetchBodyLimit
	if truncated {
		body = body[:fetchBodyLimit]
	}

	return map[string]any{
		"status_code":  resp.StatusCode,
		"status":       resp.Status,
		"content_type": resp.Header.Get("Content-Type"),
		"body":         string(body),
		"truncated":    truncated,
	}, nil
}

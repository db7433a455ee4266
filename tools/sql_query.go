package tools

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/nexabi/toolbridge"
)

const defaultMaxRows = 100

// SQLQuery returns a tool that runs a read query against a SQLite database
// and returns the rows as objects.
func SQLQuery() toolbridge.Tool {
	return toolbridge.NewTool(
		"sql_query",
		"Run a SQL query against a SQLite database and return the rows",
		toolbridge.CategoryDatabaseOperation,
		[]toolbridge.Parameter{
			{
				Name:        "dsn",
				Type:        toolbridge.TypeString,
				Description: "SQLite DSN or file path (use :memory: for an in-memory database)",
				Required:    true,
			},
			{
				Name:        "query",
				Type:        toolbridge.TypeString,
				Description: "SQL query to execute",
				Required:    true,
			},
			{
				Name:        "max_rows",
				Type:        toolbridge.TypeInteger,
				Description: "Maximum number of rows to return",
				Required:    false,
				Default:     defaultMaxRows,
			},
		},
		sqlQuery,
	)
}

func sqlQuery(ctx context.Context, args map[string]any) (any, error) {
	dsn := stringArg(args, "dsn")
	query := stringArg(args, "query")
	maxRows := intArg(args, "max_rows", defaultMaxRows)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var (
		out       []map[string]any
		truncated bool
	)

	for rows.Next() {
		if len(out) >= maxRows {
			truncated = true

			break
		}

		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))

		for i := range values {
			ptrs[i] = &values[i]
		}

		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make(map[string]any, len(cols))

		for i, col := range cols {
			// Drivers return text columns as []byte; keep the wire shape
			// JSON-friendly.
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}

		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return map[string]any{
		"columns":   cols,
		"rows":      out,
		"row_count": len(out),
		"truncated": truncated,
	}, nil
}

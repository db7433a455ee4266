package tools

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/nexabi/toolbridge"
)

// DataSummary returns a tool that computes a structural summary of a small
// tabular dataset: row/column counts plus min/max/mean for numeric columns.
func DataSummary() toolbridge.Tool {
	return toolbridge.NewTool(
		"data_summary",
		"Summarize a tabular dataset: row and column counts and numeric column statistics",
		toolbridge.CategoryDataAnalysis,
		[]toolbridge.Parameter{
			{
				Name:        "data",
				Type:        toolbridge.TypeString,
				Description: "Data to analyze (JSON array of objects, or CSV with a header row)",
				Required:    true,
			},
			{
				Name:        "data_format",
				Type:        toolbridge.TypeString,
				Description: "Format of the input data",
				Required:    false,
				Default:     "json",
				Enum:        []string{"json", "csv"},
			},
			{
				Name:        "columns",
				Type:        toolbridge.TypeArray,
				Description: "Specific columns to analyze (optional)",
				Required:    false,
			},
		},
		dataSummary,
	)
}

func dataSummary(_ context.Context, args map[string]any) (any, error) {
	raw := stringArg(args, "data")
	format := stringArg(args, "data_format")

	var (
		rows []map[string]any
		cols []string
		err  error
	)

	switch format {
	case "csv":
		rows, cols, err = parseCSV(raw)
	default:
		rows, cols, err = parseJSONRows(raw)
	}

	if err != nil {
		return nil, err
	}

	if selected := stringsArg(args, "columns"); len(selected) > 0 {
		cols = slices.DeleteFunc(cols, func(c string) bool {
			return !slices.Contains(selected, c)
		})
	}

	numeric := make(map[string]any, len(cols))

	for _, col := range cols {
		if stats, ok := columnStats(rows, col); ok {
			numeric[col] = stats
		}
	}

	return map[string]any{
		"rows":    len(rows),
		"columns": cols,
		"numeric": numeric,
	}, nil
}

func parseJSONRows(raw string) ([]map[string]any, []string, error) {
	var rows []map[string]any
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, nil, fmt.Errorf("parse json data: %w", err)
	}

	seen := make(map[string]bool)

	var cols []string

	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true

				cols = append(cols, k)
			}
		}
	}

	slices.Sort(cols)

	return rows, cols, nil
}

func parseCSV(raw string) ([]map[string]any, []string, error) {
	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv data: %w", err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv data has no header row")
	}

	cols := records[0]
	rows := make([]map[string]any, 0, len(records)-1)

	for _, record := range records[1:] {
		row := make(map[string]any, len(cols))

		for i, col := range cols {
			if i >= len(record) {
				break
			}

			if f, err := strconv.ParseFloat(record[i], 64); err == nil {
				row[col] = f
			} else {
				row[col] = record[i]
			}
		}

		rows = append(rows, row)
	}

	return rows, cols, nil
}

// columnStats computes count/min/max/mean over the numeric values of one
// column. Returns false when the column holds no numeric values.
func columnStats(rows []map[string]any, col string) (map[string]any, bool) {
	var (
		count    int
		sum      float64
		min, max float64
	)

	for _, row := range rows {
		f, ok := row[col].(float64)
		if !ok {
			continue
		}

		if count == 0 {
			min, max = f, f
		} else {
			if f < min {
				min = f
			}

			if f > max {
				max = f
			}
		}

		count++
		sum += f
	}

	if count == 0 {
		return nil, false
	}

	return map[string]any{
		"count": count,
		"min":   min,
		"max":   max,
		"mean":  sum / float64(count),
	}, true
}

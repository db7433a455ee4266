package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexabi/toolbridge"
)

func TestRegisterBuiltins(t *testing.T) {
	t.Run("all builtins registered", func(t *testing.T) {
		reg := toolbridge.NewRegistry(nil)
		require.NoError(t, RegisterBuiltins(reg))

		assert.Equal(t, len(Builtins()), reg.Count())

		for _, name := range []string{"echo", "data_summary", "read_file", "http_fetch", "sql_query"} {
			_, ok := reg.Get(name)
			assert.True(t, ok, "builtin %q missing", name)
		}
	})

	t.Run("disabled names skipped", func(t *testing.T) {
		reg := toolbridge.NewRegistry(nil)
		require.NoError(t, RegisterBuiltins(reg, "http_fetch", "sql_query"))

		assert.Equal(t, 3, reg.Count())

		_, ok := reg.Get("http_fetch")
		assert.False(t, ok)
	})
}

func TestEcho(t *testing.T) {
	reg := toolbridge.NewRegistry(nil)
	require.NoError(t, reg.Register(Echo()))

	t.Run("echoes the message", func(t *testing.T) {
		res := reg.Execute(context.Background(), "echo", map[string]any{"msg": "hello"})

		require.True(t, res.Success)
		assert.Equal(t, "hello", res.Result)
	})

	t.Run("missing message", func(t *testing.T) {
		res := reg.Execute(context.Background(), "echo", map[string]any{})

		require.False(t, res.Success)
		assert.Equal(t, "Required parameter 'msg' is missing", res.Error)
	})
}

func TestDataSummary(t *testing.T) {
	tool := DataSummary()
	ctx := context.Background()

	t.Run("json rows", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"data": `[{"age": 30, "name": "ada"}, {"age": 40, "name": "bob"}]`,
		})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, 2, out["rows"])
		assert.Equal(t, []string{"age", "name"}, out["columns"])

		numeric := out["numeric"].(map[string]any)
		require.Contains(t, numeric, "age")
		assert.NotContains(t, numeric, "name")

		age := numeric["age"].(map[string]any)
		assert.Equal(t, 2, age["count"])
		assert.Equal(t, 30.0, age["min"])
		assert.Equal(t, 40.0, age["max"])
		assert.Equal(t, 35.0, age["mean"])
	})

	t.Run("csv with header", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"data":        "x,label\n1,a\n2,b\n3,c\n",
			"data_format": "csv",
		})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, 3, out["rows"])
		assert.Equal(t, []string{"x", "label"}, out["columns"])

		x := out["numeric"].(map[string]any)["x"].(map[string]any)
		assert.Equal(t, 2.0, x["mean"])
	})

	t.Run("column filter", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"data":    `[{"a": 1, "b": 2}]`,
			"columns": []any{"b"},
		})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, []string{"b"}, out["columns"])
	})

	t.Run("invalid format rejected by enum", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"data":        "[]",
			"data_format": "xml",
		})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "data_format")
	})

	t.Run("unparseable json", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"data": "{broken"})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "parse json data")
	})

	t.Run("csv without header", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"data":        "",
			"data_format": "csv",
		})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "header")
	})
}

func TestReadFile(t *testing.T) {
	tool := ReadFile()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello, file"), 0o600))

	t.Run("reads whole file", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"path": path})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, "hello, file", out["content"])
		assert.Equal(t, false, out["truncated"])
	})

	t.Run("truncates at max_bytes", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"path": path, "max_bytes": 5})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, "hello", out["content"])
		assert.Equal(t, true, out["truncated"])
	})

	t.Run("missing file", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"path": filepath.Join(t.TempDir(), "nope")})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "read file")
	})

	t.Run("non-positive max_bytes", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"path": path, "max_bytes": 0})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "max_bytes")
	})
}

func TestHTTPFetch(t *testing.T) {
	tool := HTTPFetch()
	ctx := context.Background()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("fetched body"))
	}))
	t.Cleanup(ts.Close)

	t.Run("GET", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"url": ts.URL})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, http.StatusOK, out["status_code"])
		assert.Equal(t, "text/plain", out["content_type"])
		assert.Equal(t, "fetched body", out["body"])
		assert.Equal(t, false, out["truncated"])
	})

	t.Run("HEAD returns no body", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"url": ts.URL, "method": "HEAD"})

		require.True(t, res.Success, res.Error)
		assert.Empty(t, res.Result.(map[string]any)["body"])
	})

	t.Run("disallowed method", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"url": ts.URL, "method": "DELETE"})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "method")
	})

	t.Run("unreachable host", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{"url": "http://127.0.0.1:1"})

		require.False(t, res.Success)
	})
}

func TestSQLQuery(t *testing.T) {
	tool := SQLQuery()
	ctx := context.Background()

	t.Run("rows from in-memory database", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"dsn":   ":memory:",
			"query": "SELECT 1 AS n, 'ada' AS name",
		})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, []string{"n", "name"}, out["columns"])
		assert.Equal(t, 1, out["row_count"])
		assert.Equal(t, false, out["truncated"])

		rows := out["rows"].([]map[string]any)
		require.Len(t, rows, 1)
		assert.EqualValues(t, 1, rows[0]["n"])
		assert.Equal(t, "ada", rows[0]["name"])
	})

	t.Run("max_rows truncates", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"dsn":      ":memory:",
			"query":    "SELECT 1 UNION ALL SELECT 2 UNION ALL SELECT 3",
			"max_rows": 2,
		})

		require.True(t, res.Success, res.Error)

		out := res.Result.(map[string]any)
		assert.Equal(t, 2, out["row_count"])
		assert.Equal(t, true, out["truncated"])
	})

	t.Run("bad query", func(t *testing.T) {
		res := tool.Execute(ctx, map[string]any{
			"dsn":   ":memory:",
			"query": "SELEKT broken",
		})

		require.False(t, res.Success)
		assert.Contains(t, res.Error, "query")
	})
}

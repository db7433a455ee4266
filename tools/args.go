package tools

// stringArg extracts a string argument, returning "" when absent or not a
// string. Required-ness is enforced by validation before bodies run.
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)

	return s
}

// intArg extracts an integer argument. JSON decoding delivers numbers as
// float64, while declared defaults arrive as Go ints; both are accepted.
func intArg(args map[string]any, name string, fallback int) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}

// stringsArg extracts an optional array-of-strings argument.
func stringsArg(args map[string]any, name string) []string {
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(raw))

	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}

	return out
}

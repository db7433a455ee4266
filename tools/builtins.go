package tools

import (
	"slices"

	"github.com/nexabi/toolbridge"
)

// Builtins returns the builtin tool set in a stable order.
func Builtins() []toolbridge.Tool {
	return []toolbridge.Tool{
		Echo(),
		DataSummary(),
		ReadFile(),
		HTTPFetch(),
		SQLQuery(),
	}
}

// RegisterBuiltins registers the builtin tools into reg, skipping any names
// listed in disabled.
func RegisterBuiltins(reg *toolbridge.Registry, disabled ...string) error {
	for _, t := range Builtins() {
		if slices.Contains(disabled, t.Name()) {
			continue
		}

		if err := reg.Register(t); err != nil {
			return err
		}
	}

	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nexabi/toolbridge"
	"github.com/nexabi/toolbridge/tools"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Print the builtin tool schemas as JSON",
		RunE:  runTools,
	}

	cmd.Flags().String("category", "", "Only show tools of one category")

	return cmd
}

func runTools(cmd *cobra.Command, _ []string) error {
	category, _ := cmd.Flags().GetString("category")

	reg := toolbridge.NewRegistry(toolbridge.NopLogger())
	if err := tools.RegisterBuiltins(reg); err != nil {
		return err
	}

	var schemas []*toolbridge.ToolSchema

	if category != "" {
		for _, t := range reg.ListByCategory(toolbridge.Category(category)) {
			schemas = append(schemas, toolbridge.DescribeSchema(t))
		}
	} else {
		schemas = reg.Schemas()
	}

	out, err := json.MarshalIndent(schemas, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

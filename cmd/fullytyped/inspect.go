package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/fullytyped/pkg/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the compiled shape of the schema",
	Long:  `Prints the canonical declared properties of the compiled schema, as used for its hash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readOptions(cmd)
		if err != nil {
			return err
		}
		v, err := compileFile(opts)
		if err != nil {
			return err
		}
		return runInspect(cmd.OutOrStdout(), v)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(w io.Writer, v schema.Validator) error {
	out := map[string]any{"hash": v.Hash()}
	if j, ok := v.(interface{ ToJSON() map[string]any }); ok {
		out["schema"] = j.ToJSON()
	}
	return writeJSON(w, out)
}

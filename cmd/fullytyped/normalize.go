package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/fullytyped/pkg/schema"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize [VALUE]",
	Short: "Print the normalized form of a JSON value",
	Long:  `Validates and normalizes a JSON value. Without an argument the value is absent and the schema default applies.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readOptions(cmd)
		if err != nil {
			return err
		}
		v, err := compileFile(opts)
		if err != nil {
			return err
		}
		return runNormalize(cmd.OutOrStdout(), v, args)
	},
}

func init() {
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(w io.Writer, v schema.Validator, args []string) error {
	var value any
	if len(args) > 0 {
		parsed, err := parseValue(args[0])
		if err != nil {
			return err
		}
		value = parsed
	}

	out, err := v.Normalize(value)
	if err != nil {
		return err
	}
	return writeJSON(w, out)
}

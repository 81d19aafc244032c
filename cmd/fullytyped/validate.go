package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aretw0/fullytyped/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate VALUE...",
	Short: "Check JSON values against the schema",
	Long:  `Validates every JSON value argument and reports the failure code and message for each rejected value.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readOptions(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		v, err := compileFile(opts)
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), v, args, asJSON)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("json", false, "Print failures as JSON descriptors")
}

func runValidate(w io.Writer, v schema.Validator, args []string, asJSON bool) error {
	failed := 0
	for _, arg := range args {
		value, err := parseValue(arg)
		if err != nil {
			return err
		}

		d := v.Error(value, "")
		if d == nil {
			fmt.Fprintf(w, "%s: ok\n", arg)
			continue
		}

		failed++
		if asJSON {
			if err := writeJSON(w, d); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(w, "%s: %s %s\n", arg, d.Code, d.Message)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d values rejected", failed, len(args))
	}
	return nil
}

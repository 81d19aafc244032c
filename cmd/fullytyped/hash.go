package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var hashCmd = &cobra.Command{
	Use:   "hash",
	Short: "Print the identity hash of the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readOptions(cmd)
		if err != nil {
			return err
		}
		v, err := compileFile(opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v.Hash())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}

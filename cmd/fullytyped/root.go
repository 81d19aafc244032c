package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fullytyped",
	Short: "fullytyped compiles schema configurations and checks values against them",
	Long: `fullytyped loads a schema configuration (YAML, JSON or HCL), compiles it and
validates or normalizes JSON values against it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("schema", "s", "", "Schema configuration file (.yaml, .yml, .json or .hcl)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
}

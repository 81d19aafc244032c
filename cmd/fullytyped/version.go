package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/fullytyped"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fullytyped release and the Go toolchain it was built with",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		short, _ := cmd.Flags().GetBool("short")
		return runVersion(cmd.OutOrStdout(), short)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "Print only the release number")
}

func runVersion(w io.Writer, short bool) error {
	release := strings.TrimSpace(fullytyped.Version)
	if short {
		_, err := fmt.Fprintln(w, release)
		return err
	}
	_, err := fmt.Fprintf(w, "fullytyped %s (%s %s/%s)\n", release, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return err
}

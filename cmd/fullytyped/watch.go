package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/fullytyped/pkg/loader"
	"github.com/aretw0/fullytyped/pkg/schema"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile the schema whenever its file changes",
	Long: `Watches the schema file and prints the new hash after every successful
recompilation. Failed recompilations are logged and the previous schema is kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readOptions(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runWatch(ctx, cmd.OutOrStdout(), opts)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(ctx context.Context, w io.Writer, opts options) error {
	eng, logger, err := newEngine(opts)
	if err != nil {
		return err
	}

	h, err := loader.NewHolder(opts.schemaPath, eng.Compile, logger)
	if err != nil {
		return err
	}
	defer h.Close()

	fmt.Fprintln(w, h.Get().Hash())
	h.OnChange(func(v schema.Validator) {
		fmt.Fprintln(w, v.Hash())
	})

	if err := h.Watch(); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

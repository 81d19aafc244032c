package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/fullytyped"
	"github.com/aretw0/fullytyped/internal/logging"
	"github.com/aretw0/fullytyped/pkg/loader"
	"github.com/aretw0/fullytyped/pkg/schema"
)

// options carries the persistent flags shared by every subcommand.
type options struct {
	schemaPath string
	verbose    bool
}

func readOptions(cmd *cobra.Command) (options, error) {
	path, _ := cmd.Flags().GetString("schema")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if path == "" {
		return options{}, fmt.Errorf("--schema is required")
	}
	return options{schemaPath: path, verbose: verbose}, nil
}

// newEngine builds the engine shared by every subcommand.
func newEngine(opts options) (*fullytyped.Engine, *slog.Logger, error) {
	logger := logging.New(nil, logging.Level(opts.verbose))
	eng, err := fullytyped.New(fullytyped.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	return eng, logger, nil
}

// compileFile loads and compiles the schema configuration at opts.schemaPath.
func compileFile(opts options) (schema.Validator, error) {
	eng, logger, err := newEngine(opts)
	if err != nil {
		return nil, err
	}

	cfg, err := loader.LoadFile(opts.schemaPath)
	if err != nil {
		return nil, err
	}

	v, err := eng.Compile(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid schema %s: %w", opts.schemaPath, err)
	}
	logger.Debug("schema loaded", "path", opts.schemaPath, "hash", v.Hash())
	return v, nil
}

// parseValue decodes a command-line argument as JSON, keeping numbers exact.
func parseValue(arg string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(arg)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("value %q is not valid JSON: %w", arg, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("value %q holds more than one JSON document", arg)
	}
	return v, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

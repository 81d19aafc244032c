// Package loader reads schema configurations from YAML, JSON and HCL files.
//
// The result is the raw configuration (a record or a sequence of records)
// ready to be passed to a compiler. Loading does no validation of its own.
// A Holder keeps a compiled schema in sync with its file.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a configuration syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatHCL  Format = "hcl"
)

// FormatOf picks the format from a file extension, defaulting to YAML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".hcl":
		return FormatHCL
	default:
		return FormatYAML
	}
}

// LoadFile reads and parses a configuration file.
func LoadFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema config: %w", err)
	}
	return Parse(data, FormatOf(path), filepath.Base(path))
}

// Parse decodes data in the given format. The name is used in diagnostics.
func Parse(data []byte, format Format, name string) (any, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatHCL:
		return ParseHCL(data, name)
	case FormatYAML:
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported schema config format: %s", format)
	}
}

// ParseYAML decodes a YAML document. Integers stay int, floats become float64.
func ParseYAML(data []byte) (any, error) {
	var out any
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse schema yaml: %w", err)
	}
	return checkShape(normalizeKeys(out))
}

// ParseJSON decodes a JSON document. Numbers become float64.
func ParseJSON(data []byte) (any, error) {
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse schema json: %w", err)
	}
	return checkShape(out)
}

// normalizeKeys converts map[any]any produced for non-string YAML keys.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalizeKeys(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeKeys(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalizeKeys(e)
		}
		return t
	default:
		return v
	}
}

func checkShape(v any) (any, error) {
	switch v.(type) {
	case map[string]any, []any:
		return v, nil
	case nil:
		return nil, fmt.Errorf("schema config is empty")
	default:
		return nil, fmt.Errorf("schema config must be an object or an array, got %T", v)
	}
}

package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Config is a raw schema configuration.
// Example: {"type": "number", "min": 0, "integer": true, "default": 100}
type Config map[string]any

// Reserved configuration keys.
const (
	KeyType      = "type"
	KeyDefault   = "default"
	KeyOneOf     = "oneOf"
	KeyExtension = "_extension_"
)

// DefaultType is the alias used when a configuration omits "type".
const DefaultType = "typed"

// OneOfType is the alias that routes a configuration to composite compilation.
const OneOfType = "one-of"

// Validator is the behaviour shared by Schema and OneOf.
type Validator interface {
	// Error returns the first failure for value, or nil when it conforms.
	Error(value any, prefix string) *Descriptor
	// Normalize applies the default, validates and normalizes value.
	Normalize(value any) (any, error)
	// Validate returns an *Error when value does not conform.
	Validate(value any, prefix string) error
	// Hash returns the identity hash of the compiled schema.
	Hash() string
}

// Marker is a sentinel alias standing for a built-in primitive kind.
// Markers compare by identity, so two markers with the same name are distinct aliases.
type Marker struct {
	name string
}

// NewMarker creates a sentinel alias.
func NewMarker(name string) *Marker { return &Marker{name: name} }

// Name returns the marker's label.
func (m *Marker) Name() string { return m.name }

func (m *Marker) String() string { return m.name }

// Built-in primitive markers.
var (
	Any     = NewMarker("Any")
	Number  = NewMarker("Number")
	String  = NewMarker("String")
	Boolean = NewMarker("Boolean")
)

// AliasName renders an alias token as text for logs, metrics and messages.
func AliasName(alias any) string {
	switch a := alias.(type) {
	case string:
		return a
	case *Marker:
		return a.name
	case reflect.Type:
		return a.String()
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprintf("%v", alias)
	}
}

// Render formats a value for inclusion in a failure message.
// Values are rendered as JSON when possible.
func Render(value any) string {
	if value == nil {
		return "undefined"
	}
	if m, ok := value.(*Marker); ok {
		return m.name
	}
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

func asRecord(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Config:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}

func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []Config:
		out := make([]any, len(s))
		for i, c := range s {
			out[i] = c
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, c := range s {
			out[i] = c
		}
		return out, true
	}
	return nil, false
}

func isComparable(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Comparable()
}

package schema

import "encoding/json"

// Schema is a compiled, immutable validator for one configuration.
//
// A Schema is safe for concurrent use: every method reads state fixed at
// compilation time.
type Schema struct {
	alias       any
	props       map[string]any
	checks      []CheckFunc
	normalizers []NormalizeFunc
	hasDefault  bool
	def         any
	hash        string
	hooks       Hooks
}

var _ Validator = (*Schema)(nil)

// Type returns the alias the schema was compiled from.
func (s *Schema) Type() any { return s.alias }

// HasDefault reports whether absent values are replaced by Default.
func (s *Schema) HasDefault() bool { return s.hasDefault }

// Default returns a copy of the default value.
func (s *Schema) Default() any { return cloneValue(s.def) }

// Get returns a declared or extension property.
func (s *Schema) Get(name string) (any, bool) {
	v, ok := s.props[name]
	return cloneValue(v), ok
}

// Error runs the checks in order and returns the first failure with its
// message prefixed, or nil.
func (s *Schema) Error(value any, prefix string) *Descriptor {
	for _, check := range s.checks {
		if d := check(value, prefix); d != nil {
			return d.prefixed(prefix)
		}
	}
	return nil
}

// Validate returns the failure reported by Error as an *Error.
func (s *Schema) Validate(value any, prefix string) error {
	d := s.Error(value, prefix)
	if d == nil {
		return nil
	}
	s.hooks.reject(AliasName(s.alias), s.hash, d)
	return Raise(d)
}

// Normalize substitutes the default for a nil value, validates the result
// and runs it through the normalize pipeline.
func (s *Schema) Normalize(value any) (any, error) {
	if value == nil && s.hasDefault {
		value = cloneValue(s.def)
	}
	if err := s.Validate(value, ""); err != nil {
		return nil, err
	}
	for _, fn := range s.normalizers {
		value = fn(value)
	}
	return value, nil
}

// Hash returns the identity hash computed at compilation.
func (s *Schema) Hash() string { return s.hash }

// ToJSON returns the canonical declared properties.
func (s *Schema) ToJSON() map[string]any {
	out, _ := Canonical(s.props).(map[string]any)
	return out
}

// MarshalJSON serializes the schema's shape, not any value.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToJSON())
}

package schema

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OneOf is an ordered union of validators. A value conforms when any member
// accepts it, and the first accepting member normalizes it.
type OneOf struct {
	members    []Validator
	hasDefault bool
	def        any
	hash       string
	hooks      Hooks
}

var _ Validator = (*OneOf)(nil)

func newOneOf(members []Validator, cfg map[string]any, hooks Hooks) *OneOf {
	o := &OneOf{members: members, hooks: hooks}
	if def, ok := cfg[KeyDefault]; ok {
		o.hasDefault = true
		o.def = def
	}

	hashes := make([]string, len(members))
	for i, m := range members {
		hashes[i] = m.Hash()
	}
	shape := map[string]any{KeyType: OneOfType, KeyOneOf: hashes}
	if o.hasDefault {
		shape[KeyDefault] = o.def
	}
	o.hash = Digest(shape)
	return o
}

// Schemas returns the alternatives in declared order.
func (o *OneOf) Schemas() []Validator {
	out := make([]Validator, len(o.members))
	copy(out, o.members)
	return out
}

// Error returns nil as soon as one member accepts value. Otherwise it returns
// an aggregate descriptor listing every member failure.
func (o *OneOf) Error(value any, prefix string) *Descriptor {
	_, d := o.match(value, prefix)
	return d
}

// Validate returns the aggregate failure as an *Error.
func (o *OneOf) Validate(value any, prefix string) error {
	d := o.Error(value, prefix)
	if d == nil {
		return nil
	}
	o.hooks.reject(OneOfType, o.hash, d)
	return Raise(d)
}

// Normalize delegates to the first member that accepts value.
func (o *OneOf) Normalize(value any) (any, error) {
	if value == nil && o.hasDefault {
		value = cloneValue(o.def)
	}
	m, d := o.match(value, "")
	if d != nil {
		o.hooks.reject(OneOfType, o.hash, d)
		return nil, Raise(d)
	}
	return m.Normalize(value)
}

// Hash digests the ordered member hashes.
func (o *OneOf) Hash() string { return o.hash }

// ToJSON returns the shapes of the members in order.
func (o *OneOf) ToJSON() map[string]any {
	members := make([]any, len(o.members))
	for i, m := range o.members {
		if j, ok := m.(interface{ ToJSON() map[string]any }); ok {
			members[i] = j.ToJSON()
		} else {
			members[i] = m.Hash()
		}
	}
	out := map[string]any{KeyType: OneOfType, KeyOneOf: members}
	if o.hasDefault {
		out[KeyDefault] = Canonical(o.def)
	}
	return out
}

// MarshalJSON serializes the union's shape.
func (o *OneOf) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.ToJSON())
}

func (o *OneOf) match(value any, prefix string) (Validator, *Descriptor) {
	failures := make([]*Descriptor, 0, len(o.members))
	for _, m := range o.members {
		d := m.Error(value, "")
		if d == nil {
			return m, nil
		}
		failures = append(failures, d)
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("Value did not match any of the schemas. Received: ")
	sb.WriteString(Render(value))
	for i, f := range failures {
		sb.WriteString("\n  ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(f.Message)
	}

	d := OneOfMismatch.With(sb.String())
	d.Errors = failures
	return nil, d
}

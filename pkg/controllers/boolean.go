package controllers

import "github.com/aretw0/fullytyped/pkg/schema"

// Boolean accepts only bool values.
var Boolean = &schema.Controller{
	Name:         "boolean",
	Aliases:      []any{"boolean", schema.Boolean},
	Dependencies: []any{schema.DefaultType},
	Apply: func(b *schema.Builder, _ schema.Config) error {
		b.Check(func(value any, _ string) *schema.Descriptor {
			if _, ok := value.(bool); !ok {
				return schema.TypeMismatch.With(schema.ValueMessage(value, "Expected a boolean."))
			}
			return nil
		})
		return nil
	},
}

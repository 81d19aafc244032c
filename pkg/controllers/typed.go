package controllers

import "github.com/aretw0/fullytyped/pkg/schema"

// Typed is the generic base controller. It accepts every value and owns the
// "default" property.
var Typed = &schema.Controller{
	Name:    "typed",
	Aliases: []any{schema.DefaultType, schema.Any},
	Apply: func(b *schema.Builder, cfg schema.Config) error {
		if def, ok := cfg[schema.KeyDefault]; ok {
			return b.SetDefault(def)
		}
		return nil
	},
}

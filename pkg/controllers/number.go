package controllers

import (
	"math"

	"github.com/aretw0/fullytyped/pkg/schema"
)

// Number failure descriptors.
var (
	NumberInteger = schema.Descriptor{
		Code:        "ENINT",
		Summary:     "Number not an integer.",
		Explanation: "The number must be an integer.",
		Kind:        schema.KindConstraint,
	}
	NumberMax = schema.Descriptor{
		Code:        "ENMAX",
		Summary:     "Number too large.",
		Explanation: "The number does not meet the maximum requirement.",
		Kind:        schema.KindConstraint,
	}
	NumberMin = schema.Descriptor{
		Code:        "ENMIN",
		Summary:     "Number too small.",
		Explanation: "The number does not meet the minimum requirement.",
		Kind:        schema.KindConstraint,
	}
)

type numberOptions struct {
	Min          *float64 `mapstructure:"min"`
	Max          *float64 `mapstructure:"max"`
	Integer      bool     `mapstructure:"integer"`
	ExclusiveMin bool     `mapstructure:"exclusiveMin"`
	ExclusiveMax bool     `mapstructure:"exclusiveMax"`
}

// Number validates numeric values against min, max, exclusiveMin,
// exclusiveMax and integer constraints. Any Go integer or float kind is a
// number, as is json.Number; NaN is not.
var Number = &schema.Controller{
	Name:         "number",
	Aliases:      []any{"number", schema.Number},
	Dependencies: []any{schema.DefaultType},
	Apply:        applyNumber,
}

func applyNumber(b *schema.Builder, cfg schema.Config) error {
	for _, key := range []string{"min", "max"} {
		if v, ok := cfg[key]; ok {
			if _, isNum := toFloat(v); !isNum {
				return schema.PropertyError(key, v, "Must be a number.")
			}
		}
	}

	var opts numberOptions
	if err := decode(cfg, &opts); err != nil {
		return err
	}
	if opts.Min != nil && opts.Max != nil && *opts.Min > *opts.Max {
		return schema.PropertyError("max", *opts.Max, "Must be a number that is greater than or equal to the minimum: "+formatNumber(*opts.Min)+".")
	}

	props := map[string]any{
		"exclusiveMax": opts.ExclusiveMax,
		"exclusiveMin": opts.ExclusiveMin,
		"integer":      opts.Integer,
		"max":          optionalFloat(opts.Max),
		"min":          optionalFloat(opts.Min),
	}
	for name, value := range props {
		if err := b.Define(name, value); err != nil {
			return err
		}
	}

	b.Check(func(value any, _ string) *schema.Descriptor {
		return checkNumber(opts, value)
	})
	return nil
}

func checkNumber(opts numberOptions, value any) *schema.Descriptor {
	f, ok := toFloat(value)
	if !ok {
		return schema.TypeMismatch.With(schema.ValueMessage(value, "Expected a number."))
	}

	if opts.Integer && f != math.Trunc(f) {
		return NumberInteger.With("Invalid number. Must be an integer. Received: " + formatNumber(f))
	}

	if m := opts.Max; m != nil && (f > *m || (opts.ExclusiveMax && f == *m)) {
		extra := "or equal to "
		if opts.ExclusiveMax {
			extra = ""
		}
		return NumberMax.With("Invalid number. Must be less than " + extra + formatNumber(*m) + ". Received: " + formatNumber(f))
	}

	if m := opts.Min; m != nil && (f < *m || (opts.ExclusiveMin && f == *m)) {
		extra := "or equal to "
		if opts.ExclusiveMin {
			extra = ""
		}
		return NumberMin.With("Invalid number. Must be greater than " + extra + formatNumber(*m) + ". Received: " + formatNumber(f))
	}

	return nil
}

func optionalFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

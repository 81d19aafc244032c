// Package controllers provides the built-in type controllers: typed (the
// generic base every other controller depends on), number, string and boolean.
//
// Each controller is exported so callers can build their own registries or
// declare dependencies on them:
//
//	positive := &schema.Controller{
//	    Name:         "positive",
//	    Aliases:      []any{"positive"},
//	    Dependencies: []any{"number"},
//	    Apply: func(b *schema.Builder, cfg schema.Config) error {
//	        b.Check(func(v any, prefix string) *schema.Descriptor { ... })
//	        return nil
//	    },
//	}
package controllers

import (
	"math"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/fullytyped/pkg/registry"
	"github.com/aretw0/fullytyped/pkg/schema"
)

// All returns the built-in controllers in registration order.
func All() []*schema.Controller {
	return []*schema.Controller{Typed, Number, String, Boolean}
}

// Register adds every built-in controller to r.
func Register(r *registry.Registry) error {
	for _, c := range All() {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// decode copies the recognised configuration fields into out. Unknown fields
// belong to other controllers and are ignored.
func decode(cfg schema.Config, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(map[string]any(cfg)); err != nil {
		return schema.ConfigError("Invalid schema configuration. " + err.Error())
	}
	return nil
}

// toFloat reports the numeric value of v. NaN is not a number.
func toFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case interface{ Float64() (float64, error) }:
		x, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = x
	default:
		return 0, false
	}
	return f, !math.IsNaN(f)
}

// formatNumber renders f the way it reads in a configuration: 100, 1.2, 1e+21.
func formatNumber(f float64) string {
	if math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// toCount reports v as a non-negative integer.
func toCount(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f < 0 || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

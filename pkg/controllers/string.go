package controllers

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/aretw0/fullytyped/pkg/schema"
)

// String failure descriptors.
var (
	StringMinLength = schema.Descriptor{
		Code:        "ESMINLEN",
		Summary:     "String too short.",
		Explanation: "The string does not meet the minimum length requirement.",
		Kind:        schema.KindConstraint,
	}
	StringMaxLength = schema.Descriptor{
		Code:        "ESMAXLEN",
		Summary:     "String too long.",
		Explanation: "The string exceeds the maximum length requirement.",
		Kind:        schema.KindConstraint,
	}
	StringPattern = schema.Descriptor{
		Code:        "ESPATTERN",
		Summary:     "String does not match pattern.",
		Explanation: "The string must match the regular expression pattern.",
		Kind:        schema.KindConstraint,
	}
)

type stringOptions struct {
	MinLength *int   `mapstructure:"minLength"`
	MaxLength *int   `mapstructure:"maxLength"`
	Pattern   string `mapstructure:"pattern"`
}

// String validates string values against minLength, maxLength (counted in
// runes) and pattern (RE2 syntax).
var String = &schema.Controller{
	Name:         "string",
	Aliases:      []any{"string", schema.String},
	Dependencies: []any{schema.DefaultType},
	Apply:        applyString,
}

func applyString(b *schema.Builder, cfg schema.Config) error {
	for _, key := range []string{"minLength", "maxLength"} {
		if v, ok := cfg[key]; ok {
			if _, isCount := toCount(v); !isCount {
				return schema.PropertyError(key, v, "Must be a non-negative integer.")
			}
		}
	}
	if v, ok := cfg["pattern"]; ok {
		if _, isString := v.(string); !isString {
			return schema.PropertyError("pattern", v, "Must be a string.")
		}
	}

	var opts stringOptions
	if err := decode(cfg, &opts); err != nil {
		return err
	}
	if opts.MinLength != nil && opts.MaxLength != nil && *opts.MinLength > *opts.MaxLength {
		return schema.PropertyError("maxLength", *opts.MaxLength, "Must be greater than or equal to the minLength: "+strconv.Itoa(*opts.MinLength)+".")
	}

	var re *regexp.Regexp
	if opts.Pattern != "" {
		compiled, err := regexp.Compile(opts.Pattern)
		if err != nil {
			return schema.PropertyError("pattern", opts.Pattern, "Must be a valid regular expression. "+err.Error()+".")
		}
		re = compiled
	}

	props := map[string]any{
		"maxLength": optionalInt(opts.MaxLength),
		"minLength": optionalInt(opts.MinLength),
		"pattern":   nil,
	}
	if re != nil {
		props["pattern"] = opts.Pattern
	}
	for name, value := range props {
		if err := b.Define(name, value); err != nil {
			return err
		}
	}

	b.Check(func(value any, _ string) *schema.Descriptor {
		return checkString(opts, re, value)
	})
	return nil
}

func checkString(opts stringOptions, re *regexp.Regexp, value any) *schema.Descriptor {
	s, ok := value.(string)
	if !ok {
		return schema.TypeMismatch.With(schema.ValueMessage(value, "Expected a string."))
	}

	n := utf8.RuneCountInString(s)
	if opts.MinLength != nil && n < *opts.MinLength {
		return StringMinLength.With("Invalid string. Must have a length of at least " + strconv.Itoa(*opts.MinLength) + ". Received: " + schema.Render(s))
	}
	if opts.MaxLength != nil && n > *opts.MaxLength {
		return StringMaxLength.With("Invalid string. Must have a length of at most " + strconv.Itoa(*opts.MaxLength) + ". Received: " + schema.Render(s))
	}
	if re != nil && !re.MatchString(s) {
		return StringPattern.With("Invalid string. Must match the pattern " + re.String() + ". Received: " + schema.Render(s))
	}
	return nil
}

func optionalInt(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}

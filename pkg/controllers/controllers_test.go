package controllers

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fullytyped/pkg/registry"
	"github.com/aretw0/fullytyped/pkg/schema"
)

func newCompiler(t *testing.T) *schema.Compiler {
	t.Helper()
	r := registry.New()
	require.NoError(t, Register(r))
	return schema.NewCompiler(r)
}

func compile(t *testing.T, cfg schema.Config) *schema.Schema {
	t.Helper()
	s, err := newCompiler(t).CompileSchema(cfg)
	require.NoError(t, err)
	return s
}

func TestRegister_Twice(t *testing.T) {
	r := registry.New()
	require.NoError(t, Register(r))
	require.NoError(t, Register(r))

	for _, alias := range []any{"typed", schema.Any, "number", schema.Number, "string", schema.String, "boolean", schema.Boolean} {
		assert.True(t, r.Has(alias), "alias %v", alias)
	}
}

func TestNumber_PositiveInteger(t *testing.T) {
	s := compile(t, schema.Config{"type": "number", "default": 100, "min": 0, "integer": true})

	v, err := s.Normalize(nil)
	require.NoError(t, err)
	assert.Equal(t, 100, v)

	assert.Nil(t, s.Error(0, ""))
	assert.Nil(t, s.Error(42, ""))

	tests := []struct {
		name  string
		value any
		code  string
		msg   string
	}{
		{"negative", -1, "ENMIN", "Invalid number. Must be greater than or equal to 0. Received: -1"},
		{"fraction", 1.5, "ENINT", "Invalid number. Must be an integer. Received: 1.5"},
		{"string", "1", "ETYPE", `Invalid value. Expected a number. Received: "1"`},
		{"absent", nil, "", ""},
		{"bool", true, "ETYPE", "Invalid value. Expected a number. Received: true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := s.Error(tt.value, "")
			require.NotNil(t, d)
			if tt.code == "" {
				assert.Equal(t, "ETYPE", d.Code)
				return
			}
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.msg, d.Message)
		})
	}

	err = s.Validate(-1, "count: ")
	assert.ErrorIs(t, err, schema.ErrConstraint)
	assert.EqualError(t, err, "count: Invalid number. Must be greater than or equal to 0. Received: -1")
}

func TestNumber_Kinds(t *testing.T) {
	s := compile(t, schema.Config{"type": schema.Number})

	for _, v := range []any{int8(1), uint64(2), float32(1.5), 3.25, json.Number("5"), math.Inf(1)} {
		assert.Nil(t, s.Error(v, ""), "value %v (%T)", v, v)
	}
	assert.NotNil(t, s.Error(math.NaN(), ""))
	assert.NotNil(t, s.Error(json.Number("x"), ""))
}

func TestNumber_Bounds(t *testing.T) {
	tests := []struct {
		name  string
		cfg   schema.Config
		value any
		code  string
		msg   string
	}{
		{
			name:  "max inclusive",
			cfg:   schema.Config{"type": "number", "max": 10},
			value: 11,
			code:  "ENMAX",
			msg:   "Invalid number. Must be less than or equal to 10. Received: 11",
		},
		{
			name:  "max exclusive",
			cfg:   schema.Config{"type": "number", "max": 10, "exclusiveMax": true},
			value: 10,
			code:  "ENMAX",
			msg:   "Invalid number. Must be less than 10. Received: 10",
		},
		{
			name:  "min exclusive",
			cfg:   schema.Config{"type": "number", "min": 0.5, "exclusiveMin": true},
			value: 0.5,
			code:  "ENMIN",
			msg:   "Invalid number. Must be greater than 0.5. Received: 0.5",
		},
		{
			name:  "integer before bounds",
			cfg:   schema.Config{"type": "number", "max": 1, "integer": true},
			value: 2.5,
			code:  "ENINT",
			msg:   "Invalid number. Must be an integer. Received: 2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := compile(t, tt.cfg).Error(tt.value, "")
			require.NotNil(t, d)
			assert.Equal(t, tt.code, d.Code)
			assert.Equal(t, tt.msg, d.Message)
		})
	}

	s := compile(t, schema.Config{"type": "number", "min": 0, "max": 10})
	assert.Nil(t, s.Error(0, ""))
	assert.Nil(t, s.Error(10, ""))
}

func TestNumber_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  schema.Config
		msg  string
	}{
		{
			name: "min above max",
			cfg:  schema.Config{"type": "number", "min": 5, "max": 1},
			msg:  "Invalid configuration value for property: max. Must be a number that is greater than or equal to the minimum: 5. Received: 1",
		},
		{
			name: "min not a number",
			cfg:  schema.Config{"type": "number", "min": "a"},
			msg:  `Invalid configuration value for property: min. Must be a number. Received: "a"`,
		},
		{
			name: "default out of range",
			cfg:  schema.Config{"type": "number", "min": 0, "default": -5},
			msg:  "Invalid configuration value for property: default. Default value does not satisfy the schema. Received: -5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newCompiler(t).Compile(tt.cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, schema.ErrConfig)
			assert.EqualError(t, err, tt.msg)
		})
	}

	_, err := newCompiler(t).Compile(schema.Config{"type": "number", "integer": "maybe"})
	assert.ErrorIs(t, err, schema.ErrConfig)
}

func TestNumber_Shape(t *testing.T) {
	s := compile(t, schema.Config{"type": "number", "min": 0})

	assert.Equal(t, map[string]any{
		"type":         "number",
		"exclusiveMax": false,
		"exclusiveMin": false,
		"integer":      false,
		"max":          nil,
		"min":          0.0,
	}, s.ToJSON())

	same := compile(t, schema.Config{"min": 0.0, "type": "number"})
	assert.Equal(t, s.Hash(), same.Hash())

	marker := compile(t, schema.Config{"type": schema.Number, "min": 0})
	assert.NotEqual(t, s.Hash(), marker.Hash())
}

func TestString(t *testing.T) {
	s := compile(t, schema.Config{"type": "string", "minLength": 2, "maxLength": 4, "pattern": "^[a-zé]+$"})

	assert.Nil(t, s.Error("abc", ""))
	assert.Nil(t, s.Error("éééé", ""), "length counts runes")

	tests := []struct {
		value any
		code  string
		msg   string
	}{
		{"a", "ESMINLEN", `Invalid string. Must have a length of at least 2. Received: "a"`},
		{"abcde", "ESMAXLEN", `Invalid string. Must have a length of at most 4. Received: "abcde"`},
		{"AB", "ESPATTERN", `Invalid string. Must match the pattern ^[a-zé]+$. Received: "AB"`},
		{5, "ETYPE", "Invalid value. Expected a string. Received: 5"},
	}
	for _, tt := range tests {
		d := s.Error(tt.value, "")
		require.NotNil(t, d, "value %v", tt.value)
		assert.Equal(t, tt.code, d.Code)
		assert.Equal(t, tt.msg, d.Message)
	}
}

func TestString_ConfigErrors(t *testing.T) {
	for _, cfg := range []schema.Config{
		{"type": "string", "minLength": -1},
		{"type": "string", "maxLength": 1.5},
		{"type": "string", "pattern": 3},
		{"type": "string", "pattern": "("},
		{"type": "string", "minLength": 3, "maxLength": 2},
	} {
		_, err := newCompiler(t).Compile(cfg)
		assert.ErrorIs(t, err, schema.ErrConfig, "config %v", cfg)
	}
}

func TestBoolean(t *testing.T) {
	s := compile(t, schema.Config{"type": schema.Boolean, "default": false})

	v, err := s.Normalize(nil)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	d := s.Error("true", "")
	require.NotNil(t, d)
	assert.Equal(t, `Invalid value. Expected a boolean. Received: "true"`, d.Message)
}

func TestTyped_AcceptsAnything(t *testing.T) {
	s := compile(t, schema.Config{"type": schema.Any})

	for _, v := range []any{nil, 1, "x", []any{1}, map[string]any{"a": 1}} {
		assert.Nil(t, s.Error(v, ""))
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	c := newCompiler(t)
	cases := []struct {
		cfg   schema.Config
		value any
	}{
		{schema.Config{"type": "number", "default": 3}, nil},
		{schema.Config{"type": "number"}, 7.5},
		{schema.Config{"type": "string", "default": "x"}, nil},
		{schema.Config{"type": "boolean"}, true},
	}

	for _, tc := range cases {
		s, err := c.CompileSchema(tc.cfg)
		require.NoError(t, err)

		once, err := s.Normalize(tc.value)
		require.NoError(t, err)
		twice, err := s.Normalize(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "100", formatNumber(100))
	assert.Equal(t, "1.5", formatNumber(1.5))
	assert.Equal(t, "-0.25", formatNumber(-0.25))
	assert.Equal(t, "1e+21", formatNumber(1e21))
}

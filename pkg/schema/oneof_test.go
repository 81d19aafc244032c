package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileOneOf(t *testing.T, cfg any) *OneOf {
	t.Helper()
	v, err := newTestCompiler().Compile(cfg)
	require.NoError(t, err)
	o, ok := v.(*OneOf)
	require.True(t, ok, "expected *OneOf, got %T", v)
	return o
}

func TestOneOf_FirstMatchWins(t *testing.T) {
	o := compileOneOf(t, []any{
		Config{"type": "int"},
		Config{"type": "text", "trim": true},
	})

	assert.Len(t, o.Schemas(), 2)

	v, err := o.Normalize("  hi ")
	require.NoError(t, err)
	assert.Equal(t, "hi", v)

	v, err = o.Normalize(2)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	assert.Nil(t, o.Error(2, ""))
	assert.NoError(t, o.Validate("x", ""))
}

func TestOneOf_AggregateError(t *testing.T) {
	o := compileOneOf(t, Config{"oneOf": []any{
		Config{"type": "int"},
		Config{"type": "text"},
	}})

	d := o.Error(true, "flag: ")
	require.NotNil(t, d)
	assert.Equal(t, "EONEOF", d.Code)
	assert.Equal(t, KindComposite, d.Kind)
	assert.Equal(t, "flag: Value did not match any of the schemas. Received: true\n"+
		"  1. Invalid value. Expected an int. Received: true\n"+
		"  2. Invalid value. Expected a string. Received: true", d.Message)
	require.Len(t, d.Errors, 2)
	assert.Equal(t, "ETYPE", d.Errors[0].Code)

	err := o.Validate(true, "")
	assert.ErrorIs(t, err, ErrComposite)

	_, err = o.Normalize(true)
	assert.ErrorIs(t, err, ErrComposite)
}

func TestOneOf_Default(t *testing.T) {
	o := compileOneOf(t, Config{
		"type":    OneOfType,
		"default": "fallback",
		"oneOf":   []Config{{"type": "int"}, {"type": "text"}},
	})

	v, err := o.Normalize(nil)
	require.NoError(t, err)
	assert.Equal(t, "fallback", v)

	_, err = newTestCompiler().Compile(Config{
		"default": true,
		"oneOf":   []any{Config{"type": "int"}},
	})
	assert.ErrorIs(t, err, ErrConfig)
}

func TestOneOf_Nested(t *testing.T) {
	o := compileOneOf(t, []any{
		Config{"oneOf": []any{Config{"type": "int"}}},
		Config{"type": "text"},
	})

	_, isOneOf := o.Schemas()[0].(*OneOf)
	assert.True(t, isOneOf)
	assert.Nil(t, o.Error(1, ""))
	assert.Nil(t, o.Error("a", ""))
}

func TestOneOf_Hash(t *testing.T) {
	ab := compileOneOf(t, []any{Config{"type": "int"}, Config{"type": "text"}})
	ab2 := compileOneOf(t, []map[string]any{{"type": "int"}, {"type": "text"}})
	ba := compileOneOf(t, []any{Config{"type": "text"}, Config{"type": "int"}})

	assert.Equal(t, ab.Hash(), ab2.Hash())
	assert.NotEqual(t, ab.Hash(), ba.Hash())

	single, err := newTestCompiler().Compile(Config{"type": "int"})
	require.NoError(t, err)
	assert.NotEqual(t, single.Hash(), compileOneOf(t, []any{Config{"type": "int"}}).Hash())
}

func TestOneOf_ToJSON(t *testing.T) {
	o := compileOneOf(t, []any{Config{"type": "int"}})

	assert.Equal(t, map[string]any{
		"type":  OneOfType,
		"oneOf": []any{map[string]any{"type": "int"}},
	}, o.ToJSON())
}

func TestCompile_OneOfConfigErrors(t *testing.T) {
	c := newTestCompiler()

	tests := []struct {
		name string
		cfg  any
		msg  string
	}{
		{
			name: "missing oneOf",
			cfg:  Config{"type": OneOfType},
			msg:  "Missing required one-of property: oneOf.",
		},
		{
			name: "oneOf not a sequence",
			cfg:  Config{"oneOf": "int"},
			msg:  `Invalid configuration value for property: oneOf. Must be an array of schema configurations. Received: "int"`,
		},
		{
			name: "element not a record",
			cfg:  []any{Config{"type": "int"}, 5},
			msg:  `Invalid configuration value for property: oneOf. Must be an array of schema configurations. Received: [{"type":"int"},5]`,
		},
		{
			name: "empty list",
			cfg:  []any{},
			msg:  `Invalid configuration value for property: oneOf. Must be an array of schema configurations. Received: []`,
		},
		{
			name: "member failure",
			cfg:  []any{Config{"type": "int"}, Config{"type": "missing"}},
			msg:  `Unknown type: "missing".`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := c.Compile(tt.cfg)
			assert.Nil(t, v)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConfig)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

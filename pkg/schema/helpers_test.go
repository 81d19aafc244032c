package schema

import "strings"

type mapResolver map[any][]*Controller

func (m mapResolver) Resolve(alias any) ([]*Controller, error) {
	chain, ok := m[alias]
	if !ok {
		return nil, ConfigError("Unknown type: " + Render(AliasName(alias)) + ".")
	}
	return chain, nil
}

var (
	baseController = &Controller{
		Name:    "typed",
		Aliases: []any{DefaultType},
		Apply: func(b *Builder, cfg Config) error {
			if def, ok := cfg[KeyDefault]; ok {
				return b.SetDefault(def)
			}
			return nil
		},
	}

	intController = &Controller{
		Name:         "int",
		Aliases:      []any{"int"},
		Dependencies: []any{DefaultType},
		Apply: func(b *Builder, cfg Config) error {
			b.Check(func(v any, _ string) *Descriptor {
				if _, ok := v.(int); !ok {
					return TypeMismatch.With(ValueMessage(v, "Expected an int."))
				}
				return nil
			})
			return nil
		},
	}

	textController = &Controller{
		Name:         "text",
		Aliases:      []any{"text"},
		Dependencies: []any{DefaultType},
		Apply: func(b *Builder, cfg Config) error {
			if err := b.Define("trim", cfg["trim"] == true); err != nil {
				return err
			}
			b.Check(func(v any, _ string) *Descriptor {
				if _, ok := v.(string); !ok {
					return TypeMismatch.With(ValueMessage(v, "Expected a string."))
				}
				return nil
			})
			if cfg["trim"] == true {
				b.Normalize(func(v any) any { return strings.TrimSpace(v.(string)) })
			}
			return nil
		},
	}

	testResolver = mapResolver{
		DefaultType: {baseController},
		"int":       {baseController, intController},
		"text":      {baseController, textController},
	}
)

func newTestCompiler(opts ...CompilerOption) *Compiler {
	return NewCompiler(testResolver, opts...)
}

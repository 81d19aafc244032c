package schema

import (
	"log/slog"
	"time"

	"github.com/aretw0/fullytyped/internal/logging"
)

// Compiler turns configurations into validators using a Resolver for the
// controller chains.
type Compiler struct {
	resolver Resolver
	logger   *slog.Logger
	hooks    Hooks
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithLogger sets the structured logger used for compile diagnostics.
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers observability callbacks. Compiled validators inherit them.
func WithHooks(hooks Hooks) CompilerOption {
	return func(c *Compiler) {
		c.hooks = hooks
	}
}

// NewCompiler creates a compiler bound to resolver.
func NewCompiler(resolver Resolver, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		resolver: resolver,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile builds a validator from cfg.
//
// A record compiles to a *Schema. A sequence of records, or a record that
// declares "oneOf" or has type "one-of", compiles to a *OneOf. Compilation is
// all-or-nothing: on failure the returned error is a configuration *Error and
// no validator is returned.
func (c *Compiler) Compile(cfg any) (Validator, error) {
	start := time.Now()
	v, chain, err := c.compile(cfg)

	event := &CompileEvent{
		Type:        configType(cfg),
		Controllers: chain,
		Duration:    time.Since(start),
		Err:         err,
	}
	if err != nil {
		c.logger.Debug("schema compilation failed", "type", event.Type, "code", CodeOf(err), "error", err)
	} else {
		event.Hash = v.Hash()
		c.logger.Debug("schema compiled", "type", event.Type, "hash", event.Hash, "controllers", chain)
	}
	if c.hooks.OnCompile != nil {
		c.hooks.OnCompile(event)
	}

	if err != nil {
		return nil, err
	}
	return v, nil
}

// CompileSchema compiles a single, non-composite record.
func (c *Compiler) CompileSchema(cfg Config) (*Schema, error) {
	v, err := c.Compile(cfg)
	if err != nil {
		return nil, err
	}
	s, ok := v.(*Schema)
	if !ok {
		return nil, ConfigError("Invalid schema configuration. Expected a single schema, got a one-of.")
	}
	return s, nil
}

func (c *Compiler) compile(cfg any) (Validator, []string, error) {
	if list, ok := asSequence(cfg); ok {
		v, err := c.compileOneOf(list, nil)
		return v, nil, err
	}

	rec, ok := asRecord(cfg)
	if !ok {
		return nil, nil, ConfigError("Invalid schema configuration. Expected an object or an array of objects. Received: " + Render(cfg))
	}
	rec = cloneMap(rec)

	if isOneOf(rec) {
		raw, ok := rec[KeyOneOf]
		if !ok {
			return nil, nil, ConfigError("Missing required one-of property: " + KeyOneOf + ".")
		}
		list, ok := asSequence(raw)
		if !ok {
			return nil, nil, PropertyError(KeyOneOf, raw, "Must be an array of schema configurations.")
		}
		v, err := c.compileOneOf(list, rec)
		return v, nil, err
	}

	return c.compileSchema(rec)
}

func (c *Compiler) compileOneOf(list []any, rec map[string]any) (Validator, error) {
	if len(list) == 0 {
		return nil, PropertyError(KeyOneOf, list, "Must be an array of schema configurations.")
	}
	for _, item := range list {
		if _, ok := asRecord(item); !ok {
			return nil, PropertyError(KeyOneOf, list, "Must be an array of schema configurations.")
		}
	}

	members := make([]Validator, 0, len(list))
	for _, item := range list {
		m, _, err := c.compile(item)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	o := newOneOf(members, rec, c.hooks)
	if o.hasDefault {
		if d := o.Error(o.def, ""); d != nil {
			return nil, PropertyError(KeyDefault, o.def, "Default value does not satisfy the schema.")
		}
	}
	return o, nil
}

func (c *Compiler) compileSchema(rec map[string]any) (Validator, []string, error) {
	alias, ok := rec[KeyType]
	if !ok || alias == nil {
		alias = DefaultType
	}
	if !isComparable(alias) {
		return nil, nil, ConfigError("Unknown type: " + Render(alias))
	}

	controllers, err := c.resolver.Resolve(alias)
	if err != nil {
		return nil, nil, asConfigError(err)
	}

	chain := make([]string, len(controllers))
	b := newBuilder(alias)
	for i, ctrl := range controllers {
		chain[i] = ctrl.Name
		if err := ctrl.Apply(b, Config(rec)); err != nil {
			return nil, chain, asConfigError(err)
		}
	}

	if ext, ok := asRecord(rec[KeyExtension]); ok {
		for k, v := range ext {
			if err := b.extend(k, v); err != nil {
				return nil, chain, err
			}
		}
	}

	s := b.freeze(c.hooks)
	if s.hasDefault {
		if d := s.Error(s.def, ""); d != nil {
			return nil, chain, PropertyError(KeyDefault, s.def, "Default value does not satisfy the schema.")
		}
	}
	return s, chain, nil
}

func isOneOf(rec map[string]any) bool {
	if _, ok := rec[KeyOneOf]; ok {
		return true
	}
	t, ok := rec[KeyType].(string)
	return ok && t == OneOfType
}

func configType(cfg any) string {
	if _, ok := asSequence(cfg); ok {
		return OneOfType
	}
	rec, ok := asRecord(cfg)
	if !ok {
		return ""
	}
	if isOneOf(rec) {
		return OneOfType
	}
	if t, ok := rec[KeyType]; ok && t != nil {
		return AliasName(t)
	}
	return DefaultType
}

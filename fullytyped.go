package fullytyped

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/aretw0/fullytyped/internal/logging"
	"github.com/aretw0/fullytyped/pkg/controllers"
	"github.com/aretw0/fullytyped/pkg/observability"
	"github.com/aretw0/fullytyped/pkg/registry"
	"github.com/aretw0/fullytyped/pkg/schema"
)

// Engine is the high-level entry point for the library.
// It owns a controller registry and a compiler bound to it.
type Engine struct {
	registry  *registry.Registry
	compiler  *schema.Compiler
	cache     *lru.Cache[string, schema.Validator]
	cacheSize int
	hooks     []schema.Hooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithRegistry uses r instead of a fresh registry holding the built-in controllers.
func WithRegistry(r *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = r
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks. May be given more than once.
func WithHooks(hooks schema.Hooks) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks)
	}
}

// WithMetrics records compile and reject events into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, m.Hooks())
	}
}

// WithCache memoizes up to size compiled validators by configuration
// fingerprint. Configurations holding closures that share a symbol name
// share a fingerprint, so do not cache those.
func WithCache(size int) Option {
	return func(e *Engine) {
		e.cacheSize = size
	}
}

// New initializes an Engine. Without WithRegistry it registers the built-in
// typed, number, string and boolean controllers.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.registry == nil {
		eng.registry = registry.New(registry.WithLogger(eng.logger))
		if err := controllers.Register(eng.registry); err != nil {
			return nil, fmt.Errorf("failed to register built-in controllers: %w", err)
		}
	}

	if eng.cacheSize > 0 {
		cache, err := lru.New[string, schema.Validator](eng.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create compile cache: %w", err)
		}
		eng.cache = cache
	}

	eng.compiler = schema.NewCompiler(eng.registry,
		schema.WithLogger(eng.logger),
		schema.WithHooks(schema.MergeHooks(eng.hooks...)),
	)
	return eng, nil
}

// Compile builds a validator from a configuration record, a sequence of
// records or a record declaring "oneOf".
func (e *Engine) Compile(cfg any) (schema.Validator, error) {
	if e.cache == nil {
		return e.compiler.Compile(cfg)
	}

	key := schema.Fingerprint(cfg)
	if v, ok := e.cache.Get(key); ok {
		e.logger.Debug("schema cache hit", "fingerprint", key)
		return v, nil
	}
	v, err := e.compiler.Compile(cfg)
	if err != nil {
		return nil, err
	}
	e.cache.Add(key, v)
	return v, nil
}

// MustCompile is like Compile but panics on a configuration error.
func (e *Engine) MustCompile(cfg any) schema.Validator {
	v, err := e.Compile(cfg)
	if err != nil {
		panic(err)
	}
	return v
}

// Register adds a controller to the engine's registry.
func (e *Engine) Register(c *schema.Controller) error {
	if err := e.registry.Register(c); err != nil {
		return err
	}
	if e.cache != nil {
		e.cache.Purge()
	}
	return nil
}

// Registry returns the engine's controller registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

var std = mustDefault()

func mustDefault() *Engine {
	eng, err := New()
	if err != nil {
		panic(err)
	}
	return eng
}

// Compile compiles cfg with the default engine.
func Compile(cfg any) (schema.Validator, error) {
	return std.Compile(cfg)
}

// MustCompile compiles cfg with the default engine and panics on error.
func MustCompile(cfg any) schema.Validator {
	return std.MustCompile(cfg)
}

// Register adds a controller to the default engine. Register controllers
// during initialization, before compiling schemas that use them.
func Register(c *schema.Controller) error {
	return std.Register(c)
}

package registry

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/aretw0/fullytyped/internal/logging"
	"github.com/aretw0/fullytyped/pkg/schema"
)

// Registry maps type aliases to controllers and resolves their dependency
// chains. It is safe for concurrent use; registration is serialized against
// resolution.
type Registry struct {
	mu       sync.RWMutex
	aliases  map[any]*entry
	entries  []*entry
	resolved map[*entry][]*schema.Controller
	logger   *slog.Logger
}

type entry struct {
	seq        int
	controller *schema.Controller
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		aliases:  make(map[any]*entry),
		resolved: make(map[*entry][]*schema.Controller),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register associates every alias of c with c.
//
// Registering the same controller again is a no-op. An alias already bound
// to another controller, a dependency on one of the controller's own aliases
// and a dependency cycle through registered controllers are configuration
// errors, and leave the registry unchanged.
func (r *Registry) Register(c *schema.Controller) error {
	if err := checkController(c); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var e *entry
	for _, alias := range c.Aliases {
		existing, ok := r.aliases[alias]
		if !ok {
			continue
		}
		if existing.controller != c {
			return schema.ConfigError(fmt.Sprintf("Alias %s is already registered to controller %q.", schema.Render(schema.AliasName(alias)), existing.controller.Name))
		}
		e = existing
	}

	added := make([]any, 0, len(c.Aliases))
	if e == nil {
		e = &entry{seq: len(r.entries), controller: c}
	}
	for _, alias := range c.Aliases {
		if _, ok := r.aliases[alias]; !ok {
			r.aliases[alias] = e
			added = append(added, alias)
		}
	}
	if len(added) == 0 {
		return nil
	}

	if path, ok := r.findCycle(e); ok {
		for _, alias := range added {
			delete(r.aliases, alias)
		}
		return schema.ConfigError("Circular controller dependency: " + path + ".")
	}

	if e.seq == len(r.entries) {
		r.entries = append(r.entries, e)
	}
	clear(r.resolved)

	r.logger.Debug("controller registered", "controller", c.Name, "aliases", aliasNames(added))
	return nil
}

// MustRegister registers controllers and panics on the first failure.
// It is intended for package initialization.
func (r *Registry) MustRegister(controllers ...*schema.Controller) {
	for _, c := range controllers {
		if err := r.Register(c); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the controller for alias preceded by its transitive
// dependencies. Unrelated controllers keep their registration order.
func (r *Registry) Resolve(alias any) ([]*schema.Controller, error) {
	if !isKey(alias) {
		return nil, unknownType(alias)
	}

	r.mu.RLock()
	e, ok := r.aliases[alias]
	if ok {
		if cached, hit := r.resolved[e]; hit {
			r.mu.RUnlock()
			return append([]*schema.Controller(nil), cached...), nil
		}
	}
	r.mu.RUnlock()
	if !ok {
		return nil, unknownType(alias)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	chain, err := r.order(e)
	if err != nil {
		return nil, err
	}
	r.resolved[e] = chain
	return append([]*schema.Controller(nil), chain...), nil
}

// Has reports whether alias is registered.
func (r *Registry) Has(alias any) bool {
	if !isKey(alias) {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.aliases[alias]
	return ok
}

// Aliases lists registered aliases grouped by controller in registration order.
func (r *Registry) Aliases() []any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]any, 0, len(r.aliases))
	for _, e := range r.entries {
		for _, alias := range e.controller.Aliases {
			if r.aliases[alias] == e {
				out = append(out, alias)
			}
		}
	}
	return out
}

// order collects the dependency closure of root and sorts it so that every
// controller follows its dependencies, breaking ties by registration order.
// Callers hold the write lock.
func (r *Registry) order(root *entry) ([]*schema.Controller, error) {
	closure := map[*entry]bool{}
	stack := []*entry{root}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if closure[e] {
			continue
		}
		closure[e] = true
		for _, dep := range e.controller.Dependencies {
			d, ok := r.aliases[dep]
			if !ok {
				return nil, schema.ConfigError(fmt.Sprintf("Unknown type: %s. Required by controller %q.", schema.Render(schema.AliasName(dep)), e.controller.Name))
			}
			stack = append(stack, d)
		}
	}

	pending := map[*entry]int{}
	dependents := map[*entry][]*entry{}
	for e := range closure {
		seen := map[*entry]bool{}
		for _, dep := range e.controller.Dependencies {
			d := r.aliases[dep]
			if d == e || seen[d] {
				continue
			}
			seen[d] = true
			pending[e]++
			dependents[d] = append(dependents[d], e)
		}
	}

	chain := make([]*schema.Controller, 0, len(closure))
	done := map[*entry]bool{}
	for len(chain) < len(closure) {
		var next *entry
		for e := range closure {
			if done[e] || pending[e] > 0 {
				continue
			}
			if next == nil || e.seq < next.seq {
				next = e
			}
		}
		if next == nil {
			return nil, schema.ConfigError(fmt.Sprintf("Circular controller dependency involving %q.", root.controller.Name))
		}
		done[next] = true
		chain = append(chain, next.controller)
		for _, d := range dependents[next] {
			pending[d]--
		}
	}
	return chain, nil
}

// findCycle walks registered dependencies from start and reports a path that
// leads back to start. Callers hold the write lock.
func (r *Registry) findCycle(start *entry) (string, bool) {
	visited := map[*entry]bool{}
	var path []string

	var visit func(e *entry) bool
	visit = func(e *entry) bool {
		path = append(path, e.controller.Name)
		for _, dep := range e.controller.Dependencies {
			d, ok := r.aliases[dep]
			if !ok {
				continue
			}
			if d == start {
				path = append(path, start.controller.Name)
				return true
			}
			if visited[d] {
				continue
			}
			visited[d] = true
			if visit(d) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}

	if !visit(start) {
		return "", false
	}
	s := path[0]
	for _, p := range path[1:] {
		s += " -> " + p
	}
	return s, true
}

func checkController(c *schema.Controller) error {
	if c == nil {
		return schema.ConfigError("Cannot register a nil controller.")
	}
	if c.Apply == nil {
		return schema.ConfigError(fmt.Sprintf("Controller %q has no apply function.", c.Name))
	}
	if len(c.Aliases) == 0 {
		return schema.ConfigError(fmt.Sprintf("Controller %q declares no aliases.", c.Name))
	}
	for _, alias := range c.Aliases {
		if !isKey(alias) {
			return schema.ConfigError(fmt.Sprintf("Controller %q declares an alias that cannot be used as a key: %T.", c.Name, alias))
		}
	}
	for _, dep := range c.Dependencies {
		if !isKey(dep) {
			return schema.ConfigError(fmt.Sprintf("Controller %q declares a dependency that cannot be used as a key: %T.", c.Name, dep))
		}
		for _, alias := range c.Aliases {
			if dep == alias {
				return schema.ConfigError(fmt.Sprintf("Controller %q cannot depend on its own alias %s.", c.Name, schema.Render(schema.AliasName(alias))))
			}
		}
	}
	return nil
}

func unknownType(alias any) error {
	return schema.ConfigError("Unknown type: " + schema.Render(schema.AliasName(alias)) + ".")
}

func isKey(v any) bool {
	t := reflect.TypeOf(v)
	return t != nil && t.Comparable()
}

func aliasNames(aliases []any) []string {
	out := make([]string, len(aliases))
	for i, a := range aliases {
		out[i] = schema.AliasName(a)
	}
	return out
}

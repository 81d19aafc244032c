package schema

// CheckFunc inspects a value and returns a failure, or nil when it passes.
// The prefix is prepended to the message by the schema; check functions
// may ignore it.
type CheckFunc func(value any, prefix string) *Descriptor

// NormalizeFunc maps a conforming value to its canonical form.
// It is only called with values that passed every check.
type NormalizeFunc func(value any) any

// ApplyFunc configures a schema under construction from a configuration.
// Returning an error aborts compilation.
type ApplyFunc func(b *Builder, cfg Config) error

// Controller is a named, composable unit of validation and normalization
// behaviour for one or more type aliases.
//
// Aliases may be strings, *Marker sentinels or any other comparable token.
// Dependencies name aliases whose controllers must be applied first.
type Controller struct {
	Name         string
	Aliases      []any
	Dependencies []any
	Apply        ApplyFunc
}

// Resolver returns the ordered controller chain for an alias.
// Dependencies precede their dependents.
type Resolver interface {
	Resolve(alias any) ([]*Controller, error)
}

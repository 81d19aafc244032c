package schema

// Builder accumulates the declared properties and pipelines of a schema
// while its controllers are applied. It is discarded once the schema is frozen.
type Builder struct {
	alias       any
	props       map[string]any
	checks      []CheckFunc
	normalizers []NormalizeFunc
	hasDefault  bool
	def         any
}

func newBuilder(alias any) *Builder {
	return &Builder{
		alias: alias,
		props: map[string]any{KeyType: alias},
	}
}

// Alias returns the type alias being compiled.
func (b *Builder) Alias() any { return b.alias }

// Define declares an immutable property. Declaring the same name twice fails.
func (b *Builder) Define(name string, value any) error {
	if _, exists := b.props[name]; exists {
		return ConfigError("Property already defined on schema: " + name + ".")
	}
	b.props[name] = value
	return nil
}

// Lookup returns a property declared by an earlier controller.
func (b *Builder) Lookup(name string) (any, bool) {
	v, ok := b.props[name]
	return v, ok
}

// Check appends a check to the error pipeline.
func (b *Builder) Check(fn CheckFunc) {
	if fn != nil {
		b.checks = append(b.checks, fn)
	}
}

// Normalize appends a step to the normalize pipeline.
func (b *Builder) Normalize(fn NormalizeFunc) {
	if fn != nil {
		b.normalizers = append(b.normalizers, fn)
	}
}

// SetDefault declares the value substituted for absent inputs.
func (b *Builder) SetDefault(value any) error {
	if b.hasDefault {
		return ConfigError("Property already defined on schema: " + KeyDefault + ".")
	}
	if err := b.Define(KeyDefault, value); err != nil {
		return err
	}
	b.hasDefault = true
	b.def = value
	return nil
}

func (b *Builder) extend(name string, value any) error {
	if _, exists := b.props[name]; exists {
		return PropertyError(KeyExtension, name, "Extension cannot overwrite a declared property.")
	}
	b.props[name] = value
	return nil
}

func (b *Builder) freeze(hooks Hooks) *Schema {
	s := &Schema{
		alias:       b.alias,
		props:       b.props,
		checks:      b.checks,
		normalizers: b.normalizers,
		hasDefault:  b.hasDefault,
		def:         b.def,
		hooks:       hooks,
	}
	s.hash = Digest(s.props)
	return s
}

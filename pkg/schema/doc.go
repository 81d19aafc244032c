// Package schema compiles declarative configurations into immutable validators.
//
// A configuration is a flat record naming a type alias and its constraints:
//
//	cfg := schema.Config{
//	    "type":    "number",
//	    "default": 100,
//	    "min":     0,
//	    "integer": true,
//	}
//
// A Compiler asks a Resolver (usually a registry.Registry) for the controller
// chain of the alias, applies each Controller to a Builder in dependency order,
// merges the "_extension_" record and freezes the result into a Schema:
//
//	v, err := schema.NewCompiler(reg).Compile(cfg)
//	if err != nil {
//	    // err is a configuration *schema.Error
//	}
//
//	v.Error(-1, "")           // *Descriptor{Code: "ENMIN", ...}
//	v.Normalize(nil)          // 100, nil
//	v.Validate("1", "port: ") // *schema.Error, errors.Is(err, schema.ErrType)
//
// A sequence of configurations, or a record carrying "oneOf", compiles to a
// OneOf: the first alternative that accepts a value wins.
//
// Every validator exposes Hash, a SHA-256 over the canonical form of its
// declared properties. Canonicalization sorts record keys, keeps sequence
// order and renders markers and functions by name, so equal configurations
// hash equally regardless of key order.
package schema

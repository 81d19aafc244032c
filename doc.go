/*
Package fullytyped is a runtime schema-validation and value-normalization engine.

A schema is declared as a flat configuration record. Compiling it yields an
immutable validator that reports structured errors, normalizes conforming
values and carries a stable content hash of its semantics.

# Concept

Every type alias ("number", "string", schema.Number, ...) is served by a chain
of controllers held in a registry. Controllers declare dependencies on other
aliases, and the registry resolves them into a deterministic order: the
generic "typed" controller runs first and owns defaults, the "number"
controller adds bounds and integer checks on top, and so on. Plugins register
their own controllers and build on the built-in ones.

# Key Features

  - Structured errors: every failure is a *schema.Descriptor with a stable code.
  - One-of unions: the first accepting alternative wins.
  - Identity hashes: equal configurations hash equally, whatever their key order.
  - Concurrency: compiled validators are immutable and need no locking.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/fullytyped"
	)

	func main() {
		positive, err := fullytyped.Compile(map[string]any{
			"type":    "number",
			"default": 100,
			"min":     0,
			"integer": true,
		})
		if err != nil {
			log.Fatal(err)
		}

		v, _ := positive.Normalize(nil)
		fmt.Println(v) // 100

		if d := positive.Error(-1, ""); d != nil {
			fmt.Println(d.Code, d.Message) // ENMIN Invalid number. Must be greater than or equal to 0. Received: -1
		}
	}
*/
package fullytyped

/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing grounded planning problems.

It allows developers to define tasks using a type-safe, fluent builder pattern
instead of relying on external YAML task files. This is particularly useful for
unit testing and small generated benchmarks.

Example usage:

	package main

	import (
		"github.com/aretw0/plantrace/pkg/dsl"
		"github.com/aretw0/plantrace/pkg/strips"
	)

	func main() {
		b := dsl.New("lights").Domain("switches")

		b.Object("a", "light").Object("b", "light")
		b.Predicate("on", "light")
		b.Action("flip", "light")

		b.Init("on", "a")
		b.Goal(strips.Pos("on", "b"))

		b.Op("flip", "a").Pre(strips.Pos("on", "a")).Del("on", "a")
		b.Op("flip", "a").Pre(strips.Neg("on", "a")).Add("on", "a")

		problem, err := b.Build()
		// ... pass problem to plantrace.New(...)
	}
*/
package dsl

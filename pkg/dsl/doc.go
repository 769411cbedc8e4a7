// Package dsl provides a fluent builder for automaton definitions.
//
//	b := dsl.New()
//	b.State("q0").On("up", "q1")
//	b.State("q1").On("up", "q2").On("down", "q0")
//	b.State("q2").Do(chargeCard).On("paid", "q1").On("declined", "q0")
//	def, err := b.Initial("q0").Build()
//
// Build validates the graph (duplicate ids, duplicate symbols, dangling
// targets, transient initial state) and returns an immutable
// domain.Definition ready for arbor.New.
package dsl

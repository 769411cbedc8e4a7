// Package arbor is a deterministic finite-automaton execution engine with
// transient states.
//
// An automaton is built once, from code, into an immutable Definition
// (see pkg/dsl for the fluent builder) and handed to a Machine. External
// callers feed input symbols through Machine.ReadSymbol; a state carrying
// an automation callback is transient, and entering it makes the engine
// consume the callback's returned symbol as the next input before any
// external symbol is accepted. Chains of transient states resolve within
// a single ReadSymbol call.
//
// ReadSymbol calls are serialized through a one-slot admission gate, so
// exactly one chain runs at a time per machine. Failures met during a
// chain (missing transitions, hook errors, automation failures) are
// accumulated and surfaced together to the caller that drove the chain;
// a single failure keeps its concrete type, several are wrapped in a
// domain.ChainError.
//
// If a chain ends on a transient state with no continuation the machine
// is permanently stuck: every later call fails with a domain.StuckError
// until a new machine is built.
package arbor

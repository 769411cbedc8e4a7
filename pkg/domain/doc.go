// Package domain holds the automaton data model and the failure taxonomy
// shared by the engine and its adapters.
//
// A Definition is an immutable, validated graph of States connected by
// symbol-keyed Transitions. A state carrying an AutomationFunc is
// transient: entering it triggers the callback, and the returned symbol
// is fed back into the machine before any external input is accepted.
package domain

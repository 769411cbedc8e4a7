package domain

import (
	"context"
	"sort"
)

// AutomationFunc is the callback attached to a transient state. It runs
// when the state is entered and returns the next input symbol to feed
// back into the machine. Returning an empty symbol means the callback
// produced no continuation and the machine is left resting on the
// transient state.
//
// A callback may fail with a RecoverableError to name the symbol the
// chain should continue with; any other error is routed to the machine's
// default-error symbol, if one is configured.
type AutomationFunc func(ctx context.Context, params []any) (string, error)

// EntryHook runs on the target state after a transition into it has
// committed. A non-nil error is recorded as a HandlerError but never
// undoes the transition.
type EntryHook func(ctx context.Context, from *State, symbol string) error

// LeaveHook runs on the source state before a transition out of it
// commits. A non-nil error is recorded but never blocks the state change.
type LeaveHook func(ctx context.Context, to *State, symbol string) error

// TransitionHook is a machine-wide observer invoked after every committed
// transition, following the target state's entry hooks.
type TransitionHook func(ctx context.Context, from *State, symbol string, to *State) error

// State is a single automaton state. Its transition table, hooks and
// transient-ness are fixed when the owning Definition is built.
type State struct {
	id          string
	transitions map[string]*Transition
	automation  AutomationFunc
	entryHooks  []EntryHook
	leaveHooks  []LeaveHook
}

// ID returns the state identifier, unique within its Definition.
func (s *State) ID() string { return s.id }

// IsTransient reports whether entering the state triggers an automation
// callback. Transient-ness is derived from the callback's presence, it is
// not an independent flag.
func (s *State) IsTransient() bool { return s.automation != nil }

// Transition looks up the outgoing transition for symbol.
func (s *State) Transition(symbol string) (*Transition, bool) {
	t, ok := s.transitions[symbol]
	return t, ok
}

// Symbols returns the symbols with an outgoing transition, sorted.
func (s *State) Symbols() []string {
	symbols := make([]string, 0, len(s.transitions))
	for symbol := range s.transitions {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)
	return symbols
}

// Automate invokes the automation callback with the given parameters.
// Callers must have checked IsTransient first.
func (s *State) Automate(ctx context.Context, params []any) (string, error) {
	return s.automation(ctx, params)
}

// EntryHooks returns the registered entry hooks in registration order.
// The returned slice must not be mutated.
func (s *State) EntryHooks() []EntryHook { return s.entryHooks }

// LeaveHooks returns the registered leave hooks in registration order.
// The returned slice must not be mutated.
func (s *State) LeaveHooks() []LeaveHook { return s.leaveHooks }

package domain

import (
	"fmt"
	"sort"
)

// TransitionConfig names one outgoing edge before linking.
type TransitionConfig struct {
	Symbol string
	Target string
}

// StateConfig describes one state before the graph is linked. It is the
// raw material consumed by NewDefinition; the dsl package provides a
// fluent surface that produces these.
type StateConfig struct {
	ID          string
	Automation  AutomationFunc
	Transitions []TransitionConfig
	EntryHooks  []EntryHook
	LeaveHooks  []LeaveHook
}

// Definition is the immutable automaton graph handed to the engine. It
// owns the full state set; transitions reference states inside it.
type Definition struct {
	states             map[string]*State
	initial            *State
	defaultErrorSymbol string
}

// DefinitionOption configures optional Definition settings.
type DefinitionOption func(*Definition)

// WithDefaultErrorSymbol sets the symbol the engine falls back to when an
// automation callback fails without naming its own continuation. Empty
// means unset.
func WithDefaultErrorSymbol(symbol string) DefinitionOption {
	return func(d *Definition) {
		d.defaultErrorSymbol = symbol
	}
}

// NewDefinition links and validates the state graph. It rejects duplicate
// state ids, duplicate symbols within one state's table, transitions to
// undefined states, and an initial state that is undefined or transient.
// Construction is one-shot; the returned Definition never changes.
func NewDefinition(configs []StateConfig, initialID string, opts ...DefinitionOption) (*Definition, error) {
	if len(configs) == 0 {
		return nil, fmt.Errorf("definition needs at least one state")
	}

	states := make(map[string]*State, len(configs))
	for _, cfg := range configs {
		if cfg.ID == "" {
			return nil, fmt.Errorf("state id must not be empty")
		}
		if _, exists := states[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate state id %q", cfg.ID)
		}
		states[cfg.ID] = &State{
			id:          cfg.ID,
			transitions: make(map[string]*Transition, len(cfg.Transitions)),
			automation:  cfg.Automation,
			entryHooks:  append([]EntryHook(nil), cfg.EntryHooks...),
			leaveHooks:  append([]LeaveHook(nil), cfg.LeaveHooks...),
		}
	}

	// Second pass: link transitions now that every state exists.
	for _, cfg := range configs {
		source := states[cfg.ID]
		for _, tc := range cfg.Transitions {
			if tc.Symbol == "" {
				return nil, fmt.Errorf("state %q: transition symbol must not be empty", cfg.ID)
			}
			if _, exists := source.transitions[tc.Symbol]; exists {
				return nil, fmt.Errorf("state %q: duplicate transition for symbol %q", cfg.ID, tc.Symbol)
			}
			target, ok := states[tc.Target]
			if !ok {
				return nil, fmt.Errorf("state %q: transition %q targets undefined state %q", cfg.ID, tc.Symbol, tc.Target)
			}
			source.transitions[tc.Symbol] = &Transition{symbol: tc.Symbol, target: target}
		}
	}

	initial, ok := states[initialID]
	if !ok {
		return nil, fmt.Errorf("initial state %q is not defined", initialID)
	}
	if initial.IsTransient() {
		return nil, fmt.Errorf("initial state %q must not be transient", initialID)
	}

	def := &Definition{states: states, initial: initial}
	for _, opt := range opts {
		opt(def)
	}
	return def, nil
}

// State looks up a state by id.
func (d *Definition) State(id string) (*State, bool) {
	s, ok := d.states[id]
	return s, ok
}

// States returns every state, sorted by id.
func (d *Definition) States() []*State {
	states := make([]*State, 0, len(d.states))
	for _, s := range d.states {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool { return states[i].id < states[j].id })
	return states
}

// Initial returns the designated initial state.
func (d *Definition) Initial() *State { return d.initial }

// DefaultErrorSymbol returns the configured fallback symbol, or empty if
// unset.
func (d *Definition) DefaultErrorSymbol() string { return d.defaultErrorSymbol }

package domain

// Transition is one outgoing edge of a state. The symbol is unique within
// the source state's table; the target is a reference into the owning
// Definition's state set, never outside it.
type Transition struct {
	symbol string
	target *State
}

// Symbol returns the input symbol that fires the transition.
func (t *Transition) Symbol() string { return t.symbol }

// Target returns the destination state.
func (t *Transition) Target() *State { return t.target }

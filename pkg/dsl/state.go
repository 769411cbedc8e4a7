package dsl

import "github.com/aretw0/arbor/pkg/domain"

// StateBuilder provides a fluent API for configuring a single state.
type StateBuilder struct {
	cfg     domain.StateConfig
	builder *Builder
}

// On adds an outgoing transition firing on symbol towards target.
func (s *StateBuilder) On(symbol, target string) *StateBuilder {
	s.cfg.Transitions = append(s.cfg.Transitions, domain.TransitionConfig{
		Symbol: symbol,
		Target: target,
	})
	return s
}

// Do attaches the automation callback, making the state transient:
// entering it runs fn and feeds the returned symbol back into the
// machine.
func (s *StateBuilder) Do(fn domain.AutomationFunc) *StateBuilder {
	s.cfg.Automation = fn
	return s
}

// OnEntry registers a hook invoked after a transition into this state has
// committed. Hooks run in registration order.
func (s *StateBuilder) OnEntry(hook domain.EntryHook) *StateBuilder {
	s.cfg.EntryHooks = append(s.cfg.EntryHooks, hook)
	return s
}

// OnLeave registers a hook invoked before a transition out of this state
// commits. Hooks run in registration order.
func (s *StateBuilder) OnLeave(hook domain.LeaveHook) *StateBuilder {
	s.cfg.LeaveHooks = append(s.cfg.LeaveHooks, hook)
	return s
}

// Builder returns the parent builder, for call-chaining across states.
func (s *StateBuilder) Builder() *Builder {
	return s.builder
}

package dsl

import (
	"github.com/aretw0/arbor/pkg/domain"
)

// Builder accumulates states and compiles them into a Definition.
type Builder struct {
	states             map[string]*StateBuilder
	order              []string
	initial            string
	defaultErrorSymbol string
}

// New creates a new automaton builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]*StateBuilder),
	}
}

// State creates a new state in the automaton.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id string) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{
		cfg:     domain.StateConfig{ID: id},
		builder: b,
	}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Initial designates the initial state id.
func (b *Builder) Initial(id string) *Builder {
	b.initial = id
	return b
}

// DefaultErrorSymbol sets the fallback symbol followed when an automation
// callback fails without naming its own continuation.
func (b *Builder) DefaultErrorSymbol(symbol string) *Builder {
	b.defaultErrorSymbol = symbol
	return b
}

// Build compiles and validates the graph into an immutable Definition.
// States are handed over in declaration order, so validation messages are
// deterministic.
func (b *Builder) Build() (*domain.Definition, error) {
	configs := make([]domain.StateConfig, 0, len(b.order))
	for _, id := range b.order {
		configs = append(configs, b.states[id].cfg)
	}

	var opts []domain.DefinitionOption
	if b.defaultErrorSymbol != "" {
		opts = append(opts, domain.WithDefaultErrorSymbol(b.defaultErrorSymbol))
	}
	return domain.NewDefinition(configs, b.initial, opts...)
}

package http

import (
	"errors"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// ReadRequest is the body of POST /machines/{name}/read.
type ReadRequest struct {
	Symbol string `json:"symbol"`
	Params []any  `json:"params,omitempty"`
}

// MachineSnapshot is the externally visible machine state.
type MachineSnapshot struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Transient bool   `json:"transient"`
	Busy      bool   `json:"busy"`
}

// ReadResponse reports the machine position after a chain, plus any
// accumulated failures in order of occurrence.
type ReadResponse struct {
	Machine  MachineSnapshot `json:"machine"`
	Failures []Failure       `json:"failures,omitempty"`
}

// Failure is one taxonomy entry in transport form.
type Failure struct {
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

// StateView is one state in the graph response.
type StateView struct {
	ID          string            `json:"id"`
	Transient   bool              `json:"transient"`
	Transitions map[string]string `json:"transitions,omitempty"`
}

// GraphView is the response of GET /machines/{name}/graph.
type GraphView struct {
	Name    string      `json:"name"`
	Initial string      `json:"initial"`
	States  []StateView `json:"states"`
}

func snapshot(name string, m *arbor.Machine) MachineSnapshot {
	return MachineSnapshot{
		Name:      name,
		State:     m.Current(),
		Transient: m.CurrentState().IsTransient(),
		Busy:      m.Busy(),
	}
}

// mapFailures flattens the chain result into transport form: an
// aggregate is unfolded into its ordered members, a single failure maps
// to a one-element list.
func mapFailures(err error) []Failure {
	var chain *domain.ChainError
	if errors.As(err, &chain) {
		failures := make([]Failure, len(chain.Errs))
		for i, sub := range chain.Errs {
			failures[i] = Failure{Kind: domain.Kind(sub), Detail: sub.Error()}
		}
		return failures
	}
	return []Failure{{Kind: domain.Kind(err), Detail: err.Error()}}
}

func mapGraph(name string, def *domain.Definition) GraphView {
	states := def.States()
	views := make([]StateView, len(states))
	for i, s := range states {
		transitions := make(map[string]string, len(s.Symbols()))
		for _, symbol := range s.Symbols() {
			t, _ := s.Transition(symbol)
			transitions[symbol] = t.Target().ID()
		}
		views[i] = StateView{
			ID:          s.ID(),
			Transient:   s.IsTransient(),
			Transitions: transitions,
		}
	}
	return GraphView{
		Name:    name,
		Initial: def.Initial().ID(),
		States:  views,
	}
}

package mcp

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/domain"
)

// Tool argument shapes, decoded from the raw argument map with
// mapstructure.

type machineArgs struct {
	Machine string `mapstructure:"machine"`
}

type readArgs struct {
	Machine string `mapstructure:"machine"`
	Symbol  string `mapstructure:"symbol"`
	Params  string `mapstructure:"params"`
}

func decodeArgs[T any](raw map[string]any) (T, error) {
	var args T
	if err := mapstructure.Decode(raw, &args); err != nil {
		return args, fmt.Errorf("invalid tool arguments: %w", err)
	}
	return args, nil
}

// StateResult is the structured output of get_state.
type StateResult struct {
	Machine   string `json:"machine" jsonschema_description:"Machine name"`
	State     string `json:"state" jsonschema_description:"Current state id"`
	Transient bool   `json:"transient" jsonschema_description:"Whether the current state is transient"`
	Busy      bool   `json:"busy" jsonschema_description:"Whether an automation callback is executing"`
}

// Failure is one accumulated chain failure in transport form.
type Failure struct {
	Kind   string `json:"kind" jsonschema_description:"Failure taxonomy kind"`
	Detail string `json:"detail" jsonschema_description:"Human-readable detail"`
}

// ReadResult is the structured output of read_symbol.
type ReadResult struct {
	StateResult
	OK       bool      `json:"ok" jsonschema_description:"Whether the chain resolved without failures"`
	Failures []Failure `json:"failures,omitempty" jsonschema_description:"Accumulated failures in order of occurrence"`
}

// StateGraph is one state in the get_graph output.
type StateGraph struct {
	ID          string            `json:"id"`
	Transient   bool              `json:"transient"`
	Transitions map[string]string `json:"transitions,omitempty"`
}

// GraphResult is the structured output of get_graph.
type GraphResult struct {
	Machine string       `json:"machine"`
	Initial string       `json:"initial"`
	States  []StateGraph `json:"states"`
}

func newStateResult(name string, m *arbor.Machine) StateResult {
	return StateResult{
		Machine:   name,
		State:     m.Current(),
		Transient: m.CurrentState().IsTransient(),
		Busy:      m.Busy(),
	}
}

func newReadResult(name string, m *arbor.Machine, err error) ReadResult {
	result := ReadResult{
		StateResult: newStateResult(name, m),
		OK:          err == nil,
	}
	if err == nil {
		return result
	}

	var chain *domain.ChainError
	if errors.As(err, &chain) {
		for _, sub := range chain.Errs {
			result.Failures = append(result.Failures, Failure{Kind: domain.Kind(sub), Detail: sub.Error()})
		}
		return result
	}
	result.Failures = []Failure{{Kind: domain.Kind(err), Detail: err.Error()}}
	return result
}

func graphOf(name string, m *arbor.Machine) GraphResult {
	def := m.Definition()
	states := def.States()
	graph := GraphResult{
		Machine: name,
		Initial: def.Initial().ID(),
		States:  make([]StateGraph, len(states)),
	}
	for i, s := range states {
		transitions := make(map[string]string, len(s.Symbols()))
		for _, symbol := range s.Symbols() {
			t, _ := s.Transition(symbol)
			transitions[symbol] = t.Target().ID()
		}
		graph.States[i] = StateGraph{ID: s.ID(), Transient: s.IsTransient(), Transitions: transitions}
	}
	return graph
}

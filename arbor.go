package arbor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/internal/runtime"
	"github.com/aretw0/arbor/pkg/domain"
)

// Version is the library version, surfaced by the CLI and the adapters.
var Version = "0.3.0"

// Machine is the high-level entry point for the arbor library. It wraps
// the internal runtime engine and provides a simplified API for
// consumers.
type Machine struct {
	runtime *runtime.Engine
	def     *domain.Definition
	logger  *slog.Logger

	hooks              []domain.TransitionHook
	observers          []runtime.ChainObserver
	defaultErrorSymbol string
	hasFallbackOption  bool
}

// ChainObserver is notified once per resolved ReadSymbol chain with the
// number of committed hops and the call's outcome.
type ChainObserver = runtime.ChainObserver

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithDefaultErrorSymbol sets the symbol the engine follows when an
// automation callback fails without naming its own continuation. It
// overrides any value configured on the Definition. Empty means unset.
func WithDefaultErrorSymbol(symbol string) Option {
	return func(m *Machine) {
		m.defaultErrorSymbol = symbol
		m.hasFallbackOption = true
	}
}

// WithTransitionHook registers a machine-wide observer invoked after
// every committed transition. May be given multiple times; hooks run in
// registration order.
func WithTransitionHook(hook domain.TransitionHook) Option {
	return func(m *Machine) {
		m.hooks = append(m.hooks, hook)
	}
}

// WithChainObserver registers an observer invoked once per resolved
// chain, after the machine has come to rest. Calls rejected because the
// machine is stuck never ran a chain and are not reported.
func WithChainObserver(observer ChainObserver) Option {
	return func(m *Machine) {
		m.observers = append(m.observers, observer)
	}
}

// New initializes a Machine resting on the definition's initial state.
func New(def *domain.Definition, opts ...Option) (*Machine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required")
	}

	m := &Machine{def: def}
	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = logging.NewNop()
	}

	runtimeOpts := []runtime.Option{
		runtime.WithLogger(m.logger),
		runtime.WithTransitionHooks(m.hooks...),
		runtime.WithChainObservers(m.observers...),
	}
	if m.hasFallbackOption {
		runtimeOpts = append(runtimeOpts, runtime.WithFallbackSymbol(m.defaultErrorSymbol))
	}

	m.runtime = runtime.New(def, runtimeOpts...)
	return m, nil
}

// ReadSymbol submits one input symbol together with opaque parameters and
// drives the machine through any transient hops the symbol sets off.
// Calls are serialized; see the package documentation for the failure
// accumulation rules.
func (m *Machine) ReadSymbol(ctx context.Context, symbol string, params ...any) error {
	return m.runtime.ReadSymbol(ctx, symbol, params...)
}

// Current returns the id of the current state.
func (m *Machine) Current() string { return m.runtime.Current() }

// CurrentState returns the current state.
func (m *Machine) CurrentState() *domain.State { return m.runtime.CurrentState() }

// Busy reports whether an automation callback is executing right now.
func (m *Machine) Busy() bool { return m.runtime.Busy() }

// DefaultErrorSymbol returns the effective default-error symbol, or empty
// if unset.
func (m *Machine) DefaultErrorSymbol() string { return m.runtime.FallbackSymbol() }

// Definition returns the underlying automaton graph.
func (m *Machine) Definition() *domain.Definition { return m.def }

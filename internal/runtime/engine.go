package runtime

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/arbor/internal/logging"
	"github.com/aretw0/arbor/pkg/domain"
)

// Engine executes symbol chains against an immutable Definition. It owns
// the only two pieces of mutable state in the system: the current-state
// pointer and the transient-busy flag. Both are written exclusively
// inside the admission-gated critical section; reads go through atomics
// so accessors never wait on a running chain.
type Engine struct {
	def       *domain.Definition
	fallback  string
	hooks     []domain.TransitionHook
	observers []ChainObserver
	logger    *slog.Logger

	// gate is the one-slot admission gate. Go's mutex hands the lock to
	// the longest waiter once it has waited over 1ms (starvation mode),
	// which gives the FIFO admission the contract requires under
	// contention.
	gate    sync.Mutex
	current atomic.Pointer[domain.State]
	busy    atomic.Bool
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFallbackSymbol sets the default-error symbol followed when an
// automation callback fails without naming its own continuation. Empty
// means unset. Overrides the Definition's value.
func WithFallbackSymbol(symbol string) Option {
	return func(e *Engine) {
		e.fallback = symbol
	}
}

// WithTransitionHooks appends machine-wide transition observers.
func WithTransitionHooks(hooks ...domain.TransitionHook) Option {
	return func(e *Engine) {
		e.hooks = append(e.hooks, hooks...)
	}
}

// ChainObserver is notified once per resolved symbol chain with the
// number of committed hops and the folded outcome. Calls rejected by the
// stuck precheck never ran a chain and are not reported.
type ChainObserver func(hops int, err error)

// WithChainObservers appends per-chain observers.
func WithChainObservers(observers ...ChainObserver) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, observers...)
	}
}

// New creates an engine resting on the definition's initial state.
func New(def *domain.Definition, opts ...Option) *Engine {
	e := &Engine{
		def:      def,
		fallback: def.DefaultErrorSymbol(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current.Store(def.Initial())
	return e
}

// Definition returns the automaton graph the engine runs.
func (e *Engine) Definition() *domain.Definition { return e.def }

// Current returns the id of the current state.
func (e *Engine) Current() string { return e.current.Load().ID() }

// CurrentState returns the current state.
func (e *Engine) CurrentState() *domain.State { return e.current.Load() }

// Busy reports whether an automation callback is executing right now.
func (e *Engine) Busy() bool { return e.busy.Load() }

// FallbackSymbol returns the configured default-error symbol, or empty.
func (e *Engine) FallbackSymbol() string { return e.fallback }

package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Hook names used in HandlerError.Hook.
const (
	HookEntry      = "entry"
	HookLeave      = "leave"
	HookTransition = "transition"
)

// NoTransitionError reports that a state has no outgoing transition for
// the submitted symbol. The machine stays where the last committed hop
// left it.
type NoTransitionError struct {
	State  string
	Symbol string
}

func (e *NoTransitionError) Error() string {
	return fmt.Sprintf("state %q has no transition for symbol %q", e.State, e.Symbol)
}

// HandlerError wraps a failure returned by an entry, leave, or
// machine-wide transition hook. Hook failures never block the transition
// they observe.
type HandlerError struct {
	Hook   string
	State  string
	Symbol string
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s hook failed at state %q on symbol %q: %v", e.Hook, e.State, e.Symbol, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// EmptyResultError reports that a transient state's automation callback
// produced no continuation symbol. The machine comes to rest on the
// transient state and every later call fails with a StuckError.
type EmptyResultError struct {
	State string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("automation at state %q returned no continuation symbol", e.State)
}

// NoFallbackError reports an automation failure that named no
// continuation symbol while the machine has no default-error symbol
// configured. It wraps the original failure.
type NoFallbackError struct {
	State string
	Err   error
}

func (e *NoFallbackError) Error() string {
	return fmt.Sprintf("automation at state %q failed with no default-error symbol configured: %v", e.State, e.Err)
}

func (e *NoFallbackError) Unwrap() error { return e.Err }

// StuckError is returned by every ReadSymbol call made after the machine
// came to rest on a transient state. The condition is terminal for the
// instance; callers must build a new machine to recover.
type StuckError struct {
	State string
}

func (e *StuckError) Error() string {
	return fmt.Sprintf("machine is stuck at transient state %q", e.State)
}

// RecoverableError is the designated automation failure: it carries the
// symbol the chain continues with. The engine records the error and keeps
// going, so one call can surface several of these.
type RecoverableError struct {
	Symbol string
	Err    error
}

// Recoverable wraps err with a continuation symbol for the engine to
// follow. An empty symbol stops the chain and additionally produces an
// EmptyResultError.
func Recoverable(symbol string, err error) *RecoverableError {
	return &RecoverableError{Symbol: symbol, Err: err}
}

func (e *RecoverableError) Error() string {
	return fmt.Sprintf("automation failed, continuing with symbol %q: %v", e.Symbol, e.Err)
}

func (e *RecoverableError) Unwrap() error { return e.Err }

// ChainError aggregates two or more failures accumulated during a single
// symbol chain, preserving order of occurrence. A chain that accumulated
// exactly one failure surfaces it directly instead.
type ChainError struct {
	Errs []error
}

func (e *ChainError) Error() string {
	parts := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		parts[i] = err.Error()
	}
	return fmt.Sprintf("%d failures during symbol chain: %s", len(e.Errs), strings.Join(parts, "; "))
}

// Unwrap exposes the accumulated failures to errors.Is and errors.As.
func (e *ChainError) Unwrap() []error { return e.Errs }

// Failure kind labels, as reported by Kind.
const (
	KindNoTransition = "no_transition"
	KindHandler      = "handler"
	KindEmptyResult  = "empty_result"
	KindNoFallback   = "no_fallback"
	KindStuck        = "stuck"
	KindRecoverable  = "recoverable"
	KindChain        = "chain"
	KindOther        = "other"
)

// Kind classifies err into one of the taxonomy labels. Adapters use it
// for metrics and transport mapping; unknown errors report KindOther.
func Kind(err error) string {
	var (
		noTransition *NoTransitionError
		handler      *HandlerError
		emptyResult  *EmptyResultError
		noFallback   *NoFallbackError
		stuck        *StuckError
		recoverable  *RecoverableError
		chain        *ChainError
	)
	switch {
	case errors.As(err, &chain):
		return KindChain
	case errors.As(err, &noTransition):
		return KindNoTransition
	case errors.As(err, &handler):
		return KindHandler
	case errors.As(err, &emptyResult):
		return KindEmptyResult
	case errors.As(err, &noFallback):
		return KindNoFallback
	case errors.As(err, &stuck):
		return KindStuck
	case errors.As(err, &recoverable):
		return KindRecoverable
	default:
		return KindOther
	}
}

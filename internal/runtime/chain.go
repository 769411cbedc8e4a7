package runtime

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/aretw0/arbor/pkg/domain"
)

// step is the tagged continuation produced by each hop: the pending
// symbol plus the parameters handed to the next automation callback.
// Normal returns and recoverable failures both reduce to a step, so the
// chain loop has a single code path.
type step struct {
	symbol string
	params []any
}

// ReadSymbol submits one input symbol and drives the machine until it
// rests on a non-transient state or the chain genuinely runs out of
// input. Calls are admitted one at a time in arrival order; a call that
// arrives while another chain runs parks on the gate.
//
// Failures met along the way (missing transitions, hook errors,
// automation failures) are accumulated in order of occurrence, never
// short-circuited: the machine reaching a stable resting position matters
// more than early reporting. Zero failures yield nil, exactly one is
// returned as-is, two or more are wrapped in a domain.ChainError.
//
// ctx is forwarded to hooks and automation callbacks; the engine itself
// imposes no timeout. An automation callback that never returns holds the
// gate forever by design.
func (e *Engine) ReadSymbol(ctx context.Context, symbol string, params ...any) error {
	e.gate.Lock()
	defer e.gate.Unlock()

	if cur := e.current.Load(); cur.IsTransient() {
		// A previous chain ended on a transient state without a
		// continuation. Terminal for this instance.
		return &domain.StuckError{State: cur.ID()}
	}

	log := e.logger.With("run_id", uuid.NewString())
	log.Debug("symbol admitted", "symbol", symbol, "state", e.current.Load().ID())

	var failures []error
	hops := 0
	next := &step{symbol: symbol, params: params}

	for next != nil && next.symbol != "" {
		source := e.current.Load()

		tr, ok := source.Transition(next.symbol)
		if !ok {
			// Genuine absence of input: nothing to continue, no
			// automation runs.
			failures = append(failures, &domain.NoTransitionError{State: source.ID(), Symbol: next.symbol})
			break
		}
		target := tr.Target()

		// Fixed hook order per hop: leave, commit, entered, machine-wide.
		for _, hook := range source.LeaveHooks() {
			if err := hook(ctx, target, next.symbol); err != nil {
				failures = append(failures, &domain.HandlerError{
					Hook: domain.HookLeave, State: source.ID(), Symbol: next.symbol, Err: err,
				})
			}
		}

		e.current.Store(target)
		hops++
		log.Debug("transition committed", "from", source.ID(), "symbol", next.symbol, "to", target.ID())

		for _, hook := range target.EntryHooks() {
			if err := hook(ctx, source, next.symbol); err != nil {
				failures = append(failures, &domain.HandlerError{
					Hook: domain.HookEntry, State: target.ID(), Symbol: next.symbol, Err: err,
				})
			}
		}
		for _, hook := range e.hooks {
			if err := hook(ctx, source, next.symbol, target); err != nil {
				failures = append(failures, &domain.HandlerError{
					Hook: domain.HookTransition, State: target.ID(), Symbol: next.symbol, Err: err,
				})
			}
		}

		if !target.IsTransient() {
			next = nil
			continue
		}

		e.busy.Store(true)
		produced, err := target.Automate(ctx, next.params)
		e.busy.Store(false)

		next = e.continueFrom(target, produced, err, &failures, log)
	}

	result := fold(failures)
	for _, observe := range e.observers {
		observe(hops, result)
	}
	return result
}

// continueFrom turns an automation outcome into the next step, recording
// failures along the way. A nil return stops the chain.
func (e *Engine) continueFrom(target *domain.State, symbol string, err error, failures *[]error, log *slog.Logger) *step {
	if err != nil {
		var recoverable *domain.RecoverableError
		switch {
		case errors.As(err, &recoverable):
			// Designated failure: recorded, but its symbol keeps the
			// chain going.
			*failures = append(*failures, err)
			symbol = recoverable.Symbol
		case e.fallback != "":
			*failures = append(*failures, err)
			log.Debug("automation failed, following default-error symbol",
				"state", target.ID(), "symbol", e.fallback, "err", err)
			return &step{symbol: e.fallback}
		default:
			*failures = append(*failures, &domain.NoFallbackError{State: target.ID(), Err: err})
			return nil
		}
	}

	if symbol == "" {
		*failures = append(*failures, &domain.EmptyResultError{State: target.ID()})
		return nil
	}
	// Continuation symbols carry no parameters; caller-supplied params
	// reach only the first transient hop.
	return &step{symbol: symbol}
}

func fold(failures []error) error {
	switch len(failures) {
	case 0:
		return nil
	case 1:
		return failures[0]
	default:
		return &domain.ChainError{Errs: failures}
	}
}

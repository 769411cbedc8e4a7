package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/registry"
)

// BuildRegistry assembles the compiled-in sample machines. Automaton
// definitions are code, not configuration, so the CLI ships a couple of
// representative automata instead of loading descriptions from disk.
func BuildRegistry(logger *slog.Logger, opts ...arbor.Option) (*registry.Registry, error) {
	reg := registry.New()

	ladder, err := buildLadder(logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build ladder sample: %w", err)
	}
	reg.Register("ladder", ladder)

	order, err := buildOrder(logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build order sample: %w", err)
	}
	reg.Register("order", order)

	for _, name := range reg.Names() {
		if m, ok := reg.Get(name); ok {
			if err := validator.CheckReachability(m.Definition()); err != nil {
				logger.Warn("sample machine has unreachable states", "machine", name, "err", err)
			}
		}
	}

	return reg, nil
}

// buildLadder is a five-state up/down ladder. q3 is transient and climbs
// on by itself: reading "up" from q2 lands on q4 without further input.
// The first parameter, when a string, overrides the climb symbol.
func buildLadder(logger *slog.Logger, opts ...arbor.Option) (*arbor.Machine, error) {
	b := dsl.New()
	b.State("q0").On("up", "q1")
	b.State("q1").On("up", "q2").On("down", "q0")
	b.State("q2").On("up", "q3").On("down", "q1")
	b.State("q3").
		Do(func(ctx context.Context, params []any) (string, error) {
			if len(params) > 0 {
				if symbol, ok := params[0].(string); ok && symbol != "" {
					return symbol, nil
				}
			}
			return "up", nil
		}).
		On("up", "q4").On("down", "q2")
	b.State("q4").On("down", "q3")

	def, err := b.Initial("q0").Build()
	if err != nil {
		return nil, err
	}
	return arbor.New(def, append([]arbor.Option{arbor.WithLogger(logger)}, opts...)...)
}

// buildOrder is a small fulfilment flow with two transient states:
// payment charges the card (first parameter is the amount) and packing
// hands the order to shipping. Charge failures are routed back to the
// cart via the designated "declined" continuation; anything unexpected
// follows the default-error symbol into the failed state.
func buildOrder(logger *slog.Logger, opts ...arbor.Option) (*arbor.Machine, error) {
	b := dsl.New()
	b.State("cart").On("checkout", "payment")
	b.State("payment").
		Do(chargeCard).
		On("paid", "packing").
		On("declined", "cart").
		On("error", "failed")
	b.State("packing").
		Do(func(ctx context.Context, params []any) (string, error) {
			return "shipped", nil
		}).
		On("shipped", "shipped").
		On("error", "failed")
	b.State("shipped").On("restart", "cart")
	b.State("failed").On("retry", "cart")

	def, err := b.Initial("cart").DefaultErrorSymbol("error").Build()
	if err != nil {
		return nil, err
	}
	return arbor.New(def, append([]arbor.Option{arbor.WithLogger(logger)}, opts...)...)
}

func chargeCard(ctx context.Context, params []any) (string, error) {
	if len(params) == 0 {
		return "", fmt.Errorf("no payment parameters submitted")
	}
	amount, ok := params[0].(float64)
	if !ok {
		return "", domain.Recoverable("declined", fmt.Errorf("amount must be a number, got %T", params[0]))
	}
	if amount <= 0 {
		return "", domain.Recoverable("declined", fmt.Errorf("amount must be positive, got %v", amount))
	}
	return "paid", nil
}

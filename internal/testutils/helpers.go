package testutils

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/dsl"
)

// BuildDefinition compiles a dsl graph and fails the test immediately on
// validation errors.
func BuildDefinition(t *testing.T, build func(b *dsl.Builder)) *domain.Definition {
	t.Helper()

	b := dsl.New()
	build(b)
	def, err := b.Build()
	require.NoError(t, err, "Failed to build definition")
	return def
}

// Recorder captures hook invocations in order, for asserting the exact
// sequence of callbacks a symbol chain produced.
type Recorder struct {
	mu     sync.Mutex
	events []string
}

// Record appends an event label.
func (r *Recorder) Record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded labels in order.
func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

// Entry returns an entry hook that records "enter:<label>".
func (r *Recorder) Entry(label string) domain.EntryHook {
	return func(ctx context.Context, from *domain.State, symbol string) error {
		r.Record("enter:" + label)
		return nil
	}
}

// Leave returns a leave hook that records "leave:<label>".
func (r *Recorder) Leave(label string) domain.LeaveHook {
	return func(ctx context.Context, to *domain.State, symbol string) error {
		r.Record("leave:" + label)
		return nil
	}
}

// Transition returns a machine-wide hook that records "changed:<from>-><to>".
func (r *Recorder) Transition() domain.TransitionHook {
	return func(ctx context.Context, from *domain.State, symbol string, to *domain.State) error {
		r.Record("changed:" + from.ID() + "->" + to.ID())
		return nil
	}
}

package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/dsl"
)

func TestCheckReachabilityAllReachable(t *testing.T) {
	b := dsl.New()
	b.State("idle").On("go", "work")
	b.State("work").On("done", "idle")
	b.Initial("idle")

	def, err := b.Build()
	require.NoError(t, err)

	assert.NoError(t, validator.CheckReachability(def))
}

func TestCheckReachabilityReportsOrphans(t *testing.T) {
	b := dsl.New()
	b.State("idle").On("go", "work")
	b.State("work")
	b.State("orphan").On("back", "idle")
	b.State("island")
	b.Initial("idle")

	def, err := b.Build()
	require.NoError(t, err)

	err = validator.CheckReachability(def)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 unreachable states")
	assert.Contains(t, err.Error(), "island, orphan")
}

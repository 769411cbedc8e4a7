package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/pkg/dsl"
	"github.com/aretw0/arbor/pkg/registry"
)

func newMachine(t *testing.T) *arbor.Machine {
	t.Helper()
	b := dsl.New()
	b.State("a").On("go", "a")
	def, err := b.Initial("a").Build()
	require.NoError(t, err)
	m, err := arbor.New(def)
	require.NoError(t, err)
	return m
}

func TestRegisterAndGet(t *testing.T) {
	reg := registry.New()
	m := newMachine(t)

	reg.Register("demo", m)

	got, ok := reg.Get("demo")
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegisterOverwrites(t *testing.T) {
	reg := registry.New()
	first := newMachine(t)
	second := newMachine(t)

	reg.Register("demo", first)
	reg.Register("demo", second)

	got, ok := reg.Get("demo")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestRemove(t *testing.T) {
	reg := registry.New()
	reg.Register("demo", newMachine(t))
	reg.Remove("demo")

	_, ok := reg.Get("demo")
	assert.False(t, ok)
}

func TestNamesSorted(t *testing.T) {
	reg := registry.New()
	reg.Register("zeta", newMachine(t))
	reg.Register("alpha", newMachine(t))
	reg.Register("mid", newMachine(t))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, reg.Names())
}

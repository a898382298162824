package fsmgine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The builder cannot produce a transition without a target (To panics on an
// empty state) or one pointing at an unregistered state (targets are eagerly
// created). These tests bypass the builder to exercise the defensive checks
// in Process anyway.

func TestProcess_MissingTarget(t *testing.T) {
	t.Parallel()

	f := New[string]()
	f.addTransition("A", NewTransition[string]())
	require.NoError(t, f.SetInitialState("A"))

	fired, err := f.Process("x")
	require.ErrorIs(t, err, ErrMissingTarget)
	assert.False(t, fired)

	state, err := f.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, "A", state)
}

func TestProcess_DanglingTarget(t *testing.T) {
	t.Parallel()

	f := New[string]()
	f.Builder().From("A").To("B")
	require.NoError(t, f.SetInitialState("A"))

	delete(f.states, f.interner.Intern("B"))

	fired, err := f.Process("x")
	require.ErrorIs(t, err, ErrDanglingTarget)
	assert.False(t, fired)

	var trErr *TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, "A", trErr.From)
	assert.Equal(t, "B", trErr.To)

	// The failed call must not have moved the machine.
	state, err := f.CurrentState()
	require.NoError(t, err)
	assert.Equal(t, "A", state)
}

func TestMachineLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gate", machineLabel("gate", "some-id"))
	assert.Equal(t, "unknown", machineLabel("", ""))

	hashed := machineLabel("", "instance-1")
	assert.Len(t, hashed, 8)
	assert.Equal(t, hashed, machineLabel("", "instance-1"))
	assert.NotEqual(t, hashed, machineLabel("", "instance-2"))
}

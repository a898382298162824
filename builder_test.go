package fsmgine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amp-labs/fsmgine"
	"github.com/amp-labs/fsmgine/fsmtest"
)

func TestBuilder_EmptyTargetPanics(t *testing.T) {
	t.Parallel()

	m := fsmgine.New[string]()

	assert.PanicsWithError(t, "from A: transition has no target state", func() {
		m.Builder().From("A").To("")
	})
}

func TestBuilder_NilFunctionsIgnored(t *testing.T) {
	t.Parallel()

	rec := fsmtest.NewRecorder()

	m := fsmgine.New[string]()
	b := m.Builder()
	b.OnEnter("B", nil)
	b.OnExit("A", nil)
	b.From("A").
		Predicate(nil).
		Action(nil).
		Action(fsmtest.Action[string](rec, "act")).
		To("B")
	require.NoError(t, m.SetInitialState("A"))

	// The nil predicate contributes nothing, so the transition is
	// unconditional and the nil action and hooks are simply absent.
	fired, err := m.Process("x")
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, []string{"act"}, rec.Calls())
}

func TestBuilder_HookChaining(t *testing.T) {
	t.Parallel()

	rec := fsmtest.NewRecorder()

	m := fsmgine.New[string]()
	m.Builder().
		OnEnter("A", fsmtest.Action[string](rec, "enter_A")).
		OnExit("A", fsmtest.Action[string](rec, "exit_A")).
		OnEnter("B", fsmtest.Action[string](rec, "enter_B")).
		From("A").To("B")
	require.NoError(t, m.SetInitialState("A"))
	rec.Reset()

	fired, err := m.Process("x")
	require.NoError(t, err)
	assert.True(t, fired)
	assert.Equal(t, []string{"exit_A", "enter_B"}, rec.Calls())
}

func TestBuilder_HooksCreateStates(t *testing.T) {
	t.Parallel()

	m := fsmgine.New[string]()
	m.Builder().OnEnter("LONELY", func(string) {})

	// A state that only ever received a hook is still registered.
	require.NoError(t, m.SetInitialState("LONELY"))
}

func TestTransition_Direct(t *testing.T) {
	t.Parallel()

	tr := fsmgine.NewTransition[int]()
	assert.False(t, tr.HasTarget())
	assert.False(t, tr.HasPredicates())
	assert.False(t, tr.HasActions())

	// An empty predicate list is unconditional.
	assert.True(t, tr.Evaluate(7))

	var total int

	tr.AddPredicate(func(n int) bool { return n > 0 })
	tr.AddAction(func(n int) { total += n })
	tr.AddPredicate(nil)
	tr.AddAction(nil)

	assert.True(t, tr.HasPredicates())
	assert.True(t, tr.HasActions())
	assert.True(t, tr.Evaluate(7))
	assert.False(t, tr.Evaluate(-7))

	tr.Execute(7)
	tr.Execute(7)
	assert.Equal(t, 14, total)
}

package fsmgine

import "fmt"

// Builder is the fluent construction API of a machine. It holds only a
// reference to the machine it configures, carries no state of its own, and is
// cheap to create repeatedly. States are created implicitly the first time
// they are referenced; there is no separate declaration step.
type Builder[E any] struct {
	fsm *FSM[E]
}

// From starts a transition from the named source state. Chain Predicate and
// Action calls and finish with To; the transition is invisible to the machine
// until To is called.
func (b *Builder[E]) From(state string) *TransitionBuilder[E] {
	return &TransitionBuilder[E]{
		fsm:        b.fsm,
		from:       state,
		transition: NewTransition[E](),
	}
}

// OnEnter appends an enter hook to the named state, creating the state if it
// does not exist yet. Nil actions are silently ignored.
func (b *Builder[E]) OnEnter(state string, action Action[E]) *Builder[E] {
	b.fsm.addOnEnterAction(state, action)

	return b
}

// OnExit appends an exit hook to the named state, creating the state if it
// does not exist yet. Nil actions are silently ignored.
func (b *Builder[E]) OnExit(state string, action Action[E]) *Builder[E] {
	b.fsm.addOnExitAction(state, action)

	return b
}

// TransitionBuilder assembles one transition. To is the terminal call; a
// TransitionBuilder must not be reused after it.
type TransitionBuilder[E any] struct {
	fsm        *FSM[E]
	from       string
	transition *Transition[E]
}

// Predicate appends a guard predicate. Nil predicates are silently ignored.
func (tb *TransitionBuilder[E]) Predicate(p Predicate[E]) *TransitionBuilder[E] {
	tb.transition.AddPredicate(p)

	return tb
}

// Action appends a transition action. Nil actions are silently ignored.
func (tb *TransitionBuilder[E]) Action(a Action[E]) *TransitionBuilder[E] {
	tb.transition.AddAction(a)

	return tb
}

// To finalizes the transition with its target state and registers it on the
// machine. The target state is eagerly created in the registry. An empty
// target is programmer error and panics with ErrMissingTarget.
func (tb *TransitionBuilder[E]) To(state string) {
	if state == "" {
		panic(fmt.Errorf("from %s: %w", tb.from, ErrMissingTarget))
	}

	tb.transition.setTarget(tb.fsm.interner.Intern(state))
	tb.fsm.addTransition(tb.from, tb.transition)
}

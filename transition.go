package fsmgine

import "github.com/amp-labs/fsmgine/intern"

// Predicate decides whether a transition may fire for an event.
type Predicate[E any] func(E) bool

// Action is a side-effecting function run when a transition fires or a state
// is entered or exited.
type Action[E any] func(E)

// Transition is one edge of the automaton: an ordered list of predicates, an
// ordered list of actions, and a target state. Transitions are normally
// assembled through the Builder; the type is exported so generated wiring and
// tests can construct them directly.
type Transition[E any] struct {
	predicates []Predicate[E]
	actions    []Action[E]
	target     intern.Identifier
}

// NewTransition creates an empty transition with no target.
func NewTransition[E any]() *Transition[E] {
	return &Transition[E]{}
}

// AddPredicate appends a predicate. Nil predicates are silently ignored.
func (t *Transition[E]) AddPredicate(p Predicate[E]) {
	if p == nil {
		return
	}

	t.predicates = append(t.predicates, p)
}

// AddAction appends an action. Nil actions are silently ignored.
func (t *Transition[E]) AddAction(a Action[E]) {
	if a == nil {
		return
	}

	t.actions = append(t.actions, a)
}

// Evaluate reports whether every predicate passes for event, in registration
// order, short-circuiting on the first failure. An empty predicate list is an
// unconditional transition and evaluates to true.
func (t *Transition[E]) Evaluate(event E) bool {
	for _, p := range t.predicates {
		if !p(event) {
			return false
		}
	}

	return true
}

// Execute runs every action in registration order, passing the same event to
// each. Ordering is the only guarantee; there is no short-circuit.
func (t *Transition[E]) Execute(event E) {
	for _, a := range t.actions {
		a(event)
	}
}

// Target returns the interned target state identifier.
func (t *Transition[E]) Target() intern.Identifier {
	return t.target
}

// HasTarget reports whether a target state was set.
func (t *Transition[E]) HasTarget() bool {
	return !t.target.IsZero()
}

// HasPredicates reports whether any predicate was registered.
func (t *Transition[E]) HasPredicates() bool {
	return len(t.predicates) > 0
}

// HasActions reports whether any action was registered.
func (t *Transition[E]) HasActions() bool {
	return len(t.actions) > 0
}

func (t *Transition[E]) setTarget(target intern.Identifier) {
	t.target = target
}

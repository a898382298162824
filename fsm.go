package fsmgine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amp-labs/fsmgine/intern"
)

// stateData is the registry entry for one state: its hooks and its outgoing
// transitions, all in registration order.
type stateData[E any] struct {
	onEnter     []Action[E]
	onExit      []Action[E]
	transitions []*Transition[E]
}

// FSM is a single automaton instance, generic over its event type E. The zero
// value is not usable; construct with New. An FSM owns its state registry
// exclusively; only the interner may be shared between instances (see
// WithInterner).
//
// Unless constructed with WithGuarded, an FSM must not be used from more than
// one goroutine at a time.
type FSM[E any] struct {
	id       string
	name     string
	interner *intern.Interner
	lock     locker
	logger   Logger

	states      map[intern.Identifier]*stateData[E]
	current     intern.Identifier
	initialized bool

	metricLabel string
}

// New creates an empty machine. States and transitions are registered through
// Builder; the machine becomes runnable once SetInitialState succeeds.
func New[E any](opts ...Option) *FSM[E] {
	s := newSettings()
	for _, opt := range opts {
		opt(&s)
	}

	f := &FSM[E]{
		id:       uuid.NewString(),
		name:     s.name,
		interner: s.interner,
		lock:     noLock{},
		logger:   s.logger,
		states:   make(map[intern.Identifier]*stateData[E]),
	}

	if f.interner == nil {
		f.interner = intern.New()
	}

	if s.guarded {
		f.lock = newGuard()
	}

	f.metricLabel = machineLabel(f.name, f.id)

	return f
}

// ID returns the machine's unique instance identifier.
func (f *FSM[E]) ID() string {
	return f.id
}

// Name returns the machine name set via WithName, or "" if none.
func (f *FSM[E]) Name() string {
	return f.name
}

// Interner returns the identifier interner this machine uses.
func (f *FSM[E]) Interner() *intern.Interner {
	return f.interner
}

// Builder returns a fluent builder bound to this machine.
func (f *FSM[E]) Builder() *Builder[E] {
	return &Builder[E]{fsm: f}
}

// SetInitialState activates the machine at the named state and runs that
// state's enter hooks with the zero event (no triggering event exists yet).
// It fails with ErrStateNotFound if the state was never referenced by any
// transition or hook registration.
func (f *FSM[E]) SetInitialState(state string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	id := f.interner.Intern(state)

	data, ok := f.states[id]
	if !ok {
		return WrapStateError(state, ErrStateNotFound)
	}

	f.current = id
	f.initialized = true

	var zero E
	f.enterState(context.Background(), data, zero)

	return nil
}

// SetCurrentState forces the machine into the named state, independent of any
// transition. If the machine is initialized and the state differs from the
// current one, the outgoing state's exit hooks run first. The new state's
// enter hooks always run, even when the state is unchanged: a forced re-entry
// is not a transition. Marks the machine initialized if it was not.
func (f *FSM[E]) SetCurrentState(state string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	id := f.interner.Intern(state)

	data, ok := f.states[id]
	if !ok {
		return WrapStateError(state, ErrStateNotFound)
	}

	ctx := context.Background()

	var zero E

	if f.initialized && f.current != id {
		f.exitState(ctx, f.states[f.current], zero)
	}

	f.current = id
	f.initialized = true
	f.enterState(ctx, data, zero)

	return nil
}

// CurrentState returns the current state name. It fails with
// ErrNotInitialized if the machine was never activated.
func (f *FSM[E]) CurrentState() (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.initialized {
		return "", ErrNotInitialized
	}

	return f.current.String(), nil
}

// Process feeds one event to the machine. See ProcessContext.
func (f *FSM[E]) Process(event E) (bool, error) {
	return f.ProcessContext(context.Background(), event)
}

// ProcessContext feeds one event to the machine. The current state's
// transitions are scanned in registration order and the first whose
// predicates all pass is fired: its actions run, then, if the target differs
// from the current state, the outgoing state's exit hooks, the state switch,
// and the incoming state's enter hooks, in that order. A self-loop runs
// actions only.
//
// Returns (true, nil) when a transition fired and (false, nil) when none
// matched; in the latter case the machine is unchanged. Fails with
// ErrNotInitialized before SetInitialState and with ErrDanglingTarget if the
// selected transition's target is absent from the registry; failed calls
// never mutate the current state.
//
// The context is used for trace and log propagation only. There is no
// cancellation: a Process call always runs to completion.
func (f *FSM[E]) ProcessContext(ctx context.Context, event E) (fired bool, err error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	start := time.Now()
	outcome := outcomeNoMatch

	ctx, span := startProcessSpan(ctx, f.name, f.id)

	defer func() {
		endProcessSpan(span, outcome, err)

		processTotal.WithLabelValues(f.metricLabel, outcome).Inc()
		processDuration.WithLabelValues(f.metricLabel, outcome).Observe(time.Since(start).Seconds())
	}()

	if !f.initialized {
		outcome = outcomeError

		return false, ErrNotInitialized
	}

	current := f.states[f.current]

	for _, t := range current.transitions {
		if !t.Evaluate(event) {
			continue
		}

		if !t.HasTarget() {
			outcome = outcomeError

			return false, WrapTransitionError(f.current.String(), "", ErrMissingTarget)
		}

		target := t.Target()

		targetData, ok := f.states[target]
		if !ok {
			outcome = outcomeError

			return false, WrapTransitionError(f.current.String(), target.String(), ErrDanglingTarget)
		}

		// Transition actions run before any hook and before the state
		// pointer flips.
		t.Execute(event)

		if target == f.current {
			// Self-loop: no enter/exit hooks.
			annotateTransition(span, f.current.String(), target.String())
			f.logger.TransitionFired(ctx, f.current.String(), target.String())
			selfTransitionsTotal.WithLabelValues(f.metricLabel, f.current.String()).Inc()
		} else {
			from := f.current

			f.exitState(ctx, current, event)
			f.current = target
			f.enterState(ctx, targetData, event)

			annotateTransition(span, from.String(), target.String())
			f.logger.TransitionFired(ctx, from.String(), target.String())
			transitionsTotal.WithLabelValues(f.metricLabel, from.String(), target.String()).Inc()
		}

		outcome = outcomeFired

		return true, nil
	}

	f.logger.NoTransition(ctx, f.current.String())

	return false, nil
}

// enterState logs entry and runs the state's enter hooks in order.
func (f *FSM[E]) enterState(ctx context.Context, data *stateData[E], event E) {
	f.logger.StateEntered(ctx, f.current.String())

	for _, a := range data.onEnter {
		a(event)
	}
}

// exitState logs exit and runs the state's exit hooks in order.
func (f *FSM[E]) exitState(ctx context.Context, data *stateData[E], event E) {
	f.logger.StateExited(ctx, f.current.String())

	for _, a := range data.onExit {
		a(event)
	}
}

// getOrCreateState lazily creates the registry entry for id.
func (f *FSM[E]) getOrCreateState(id intern.Identifier) *stateData[E] {
	data, ok := f.states[id]
	if !ok {
		data = &stateData[E]{}
		f.states[id] = data
	}

	return data
}

// addTransition registers a finalized transition on its source state. The
// target state is eagerly created so that later validation in Process cannot
// fail for a state only ever mentioned as a destination.
func (f *FSM[E]) addTransition(from string, t *Transition[E]) {
	f.lock.Lock()
	defer f.lock.Unlock()

	data := f.getOrCreateState(f.interner.Intern(from))

	if t.HasTarget() {
		f.getOrCreateState(t.Target())
	}

	data.transitions = append(data.transitions, t)
}

// addOnEnterAction appends an enter hook to the named state, creating it if
// absent. Nil actions are silently ignored.
func (f *FSM[E]) addOnEnterAction(state string, action Action[E]) {
	if action == nil {
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	data := f.getOrCreateState(f.interner.Intern(state))
	data.onEnter = append(data.onEnter, action)
}

// addOnExitAction appends an exit hook to the named state, creating it if
// absent. Nil actions are silently ignored.
func (f *FSM[E]) addOnExitAction(state string, action Action[E]) {
	if action == nil {
		return
	}

	f.lock.Lock()
	defer f.lock.Unlock()

	data := f.getOrCreateState(f.interner.Intern(state))
	data.onExit = append(data.onExit, action)
}

package fsmtest

import "github.com/amp-labs/fsmgine"

// Turnstile state names.
const (
	StateLocked   = "LOCKED"
	StateUnlocked = "UNLOCKED"
	StateError    = "ERROR"
)

// Turnstile event names.
const (
	EventCoin = "coin"
	EventPush = "push"
)

// NewTurnstile builds the canonical fare-gate machine over string events:
// a coin unlocks it, a push locks it again, and pushing while locked trips
// the alarm state until the next coin. The initial state is LOCKED.
func NewTurnstile(opts ...fsmgine.Option) (*fsmgine.FSM[string], error) {
	m := fsmgine.New[string](opts...)
	b := m.Builder()

	isEvent := func(want string) fsmgine.Predicate[string] {
		return func(event string) bool { return event == want }
	}

	b.From(StateLocked).
		Predicate(isEvent(EventCoin)).
		To(StateUnlocked)
	b.From(StateLocked).
		Predicate(isEvent(EventPush)).
		To(StateError)
	b.From(StateUnlocked).
		Predicate(isEvent(EventPush)).
		To(StateLocked)
	b.From(StateError).
		Predicate(isEvent(EventCoin)).
		To(StateUnlocked)

	if err := m.SetInitialState(StateLocked); err != nil {
		return nil, err
	}

	return m, nil
}

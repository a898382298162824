// Package fsmgine is an embeddable finite-state-machine engine: named states,
// guarded transitions, and enter/exit hooks, advanced deterministically by
// feeding typed events to a single machine instance.
//
// A machine is generic over its event type and is populated through a fluent
// builder:
//
//	machine := fsmgine.New[string]()
//
//	b := machine.Builder()
//	b.From("LOCKED").Predicate(isCoin).Action(unlock).To("UNLOCKED")
//	b.From("UNLOCKED").Predicate(isPush).Action(lock).To("LOCKED")
//	b.OnEnter("UNLOCKED", announce)
//
//	if err := machine.SetInitialState("LOCKED"); err != nil {
//		return err
//	}
//
//	fired, err := machine.Process("coin")
//
// Process scans the current state's transitions in registration order and
// fires the first one whose predicates all pass; a (false, nil) return means
// no transition matched and the state is unchanged. On a fired transition the
// transition actions run first, then, if the target differs from the current
// state, the exit hooks of the outgoing state, the state switch, and the
// enter hooks of the incoming state, in that order. Self-loops run actions
// only.
//
// Machines are single-threaded by default; construct with WithGuarded to
// serialize all public operations behind a per-instance mutex. State names
// are interned (package intern) so state comparisons inside the engine are
// pointer comparisons.
package fsmgine

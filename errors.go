package fsmgine

import (
	"errors"
	"fmt"
)

// Predefined error conditions. A (false, nil) return from Process means "no
// transition matched" and is not an error; the sentinels below are.
var (
	// ErrStateNotFound indicates a state name that was never registered via
	// any transition or hook.
	ErrStateNotFound = errors.New("state not found")
	// ErrNotInitialized indicates Process or CurrentState was called before
	// SetInitialState.
	ErrNotInitialized = errors.New("initial state not set")
	// ErrDanglingTarget indicates a fired transition whose target state is
	// absent from the registry. Eager target registration makes this
	// unreachable through the builder; it is still checked defensively.
	ErrDanglingTarget = errors.New("transition target not registered")
	// ErrMissingTarget indicates a transition finalized without a target
	// state. This is construction-time misuse of the builder.
	ErrMissingTarget = errors.New("transition has no target state")

	// ErrConfigNameRequired indicates that a configuration name is required.
	ErrConfigNameRequired = errors.New("config name is required")
	// ErrConfigInitialRequired indicates that an initial state is required.
	ErrConfigInitialRequired = errors.New("initial state is required")
	// ErrConfigNoTransitions indicates that at least one transition is required.
	ErrConfigNoTransitions = errors.New("at least one transition is required")
	// ErrTransitionFromRequired indicates that a transition source state is required.
	ErrTransitionFromRequired = errors.New("transition from state is required")
	// ErrTransitionToRequired indicates that a transition to state is required.
	ErrTransitionToRequired = errors.New("transition to state is required")
	// ErrPredicateNotRegistered indicates a config referenced a predicate name
	// absent from the registry.
	ErrPredicateNotRegistered = errors.New("predicate not registered")
	// ErrActionNotRegistered indicates a config referenced an action name
	// absent from the registry.
	ErrActionNotRegistered = errors.New("action not registered")
)

// StateError wraps an error with the state it concerns.
type StateError struct {
	State string
	Err   error
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state %s: %v", e.State, e.Err)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// TransitionError wraps an error with transition context.
type TransitionError struct {
	From string
	To   string
	Err  error
}

func (e *TransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("transition from %s: %v", e.From, e.Err)
	}

	return fmt.Sprintf("transition %s -> %s: %v", e.From, e.To, e.Err)
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// WrapStateError wraps an error with state context.
func WrapStateError(state string, err error) error {
	if err == nil {
		return nil
	}

	return &StateError{
		State: state,
		Err:   err,
	}
}

// WrapTransitionError wraps an error with transition context.
func WrapTransitionError(from, to string, err error) error {
	if err == nil {
		return nil
	}

	return &TransitionError{
		From: from,
		To:   to,
		Err:  err,
	}
}

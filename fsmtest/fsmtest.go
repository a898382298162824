// Package fsmtest provides helpers for asserting on machine behavior in
// tests: a call Recorder, recording predicate and action constructors, and a
// ready-made turnstile fixture.
package fsmtest

import (
	"sync"

	"github.com/amp-labs/fsmgine"
)

// Recorder captures the names of predicate and action invocations in call
// order. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []string
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record appends a call name.
func (r *Recorder) Record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, name)
}

// Calls returns a copy of the recorded names in call order.
func (r *Recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.calls))
	copy(out, r.calls)

	return out
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = nil
}

// Predicate returns a predicate that records name on every evaluation and
// always reports result.
func Predicate[E any](r *Recorder, name string, result bool) fsmgine.Predicate[E] {
	return func(E) bool {
		r.Record(name)

		return result
	}
}

// Action returns an action that records name on every invocation.
func Action[E any](r *Recorder, name string) fsmgine.Action[E] {
	return func(E) {
		r.Record(name)
	}
}

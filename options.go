package fsmgine

import (
	"sync"

	"github.com/amp-labs/fsmgine/intern"
)

// settings collects construction-time configuration for New.
type settings struct {
	name     string
	guarded  bool
	interner *intern.Interner
	logger   Logger
}

func newSettings() settings {
	return settings{
		logger: NopLogger{},
	}
}

// Option applies configuration to a machine at construction time.
type Option func(*settings)

// WithName sets a human-readable machine name, used in logs, metric labels,
// and span attributes. Unnamed machines are labeled by a hash of their
// instance ID.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

// WithGuarded selects the guarded concurrency policy: every public operation
// holds a per-instance mutex for its full duration, including hook and action
// execution. The default policy is unshared: no locking, single-goroutine use
// only.
func WithGuarded() Option {
	return func(s *settings) {
		s.guarded = true
	}
}

// WithInterner makes the machine use a shared identifier interner instead of
// owning a private one. Identifiers are only comparable between machines that
// share an interner.
func WithInterner(in *intern.Interner) Option {
	return func(s *settings) {
		s.interner = in
	}
}

// WithLogger installs a Logger receiving state-change notifications.
func WithLogger(l Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// locker is the concurrency policy of one machine instance.
type locker interface {
	Lock()
	Unlock()
}

// noLock is the unshared policy: locking is a no-op.
type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

func newGuard() locker {
	return &sync.Mutex{}
}

// Package intern deduplicates state-name strings into canonical, reference-stable
// identifiers so that state identity checks are pointer comparisons instead of
// string comparisons.
//
// An Interner is an explicitly owned table: each state machine owns one by
// default, and a single table can be shared across machines when identifiers
// need to be comparable between them. All operations except Reset are safe for
// concurrent use.
package intern

import (
	"sync"

	"go.uber.org/atomic"
)

// Identifier is a canonical token for an interned string. Identifiers issued by
// the same Interner for equal text are equal (==), and comparing two
// identifiers never inspects the underlying string.
//
// The zero Identifier refers to no string and is not equal to any interned one.
type Identifier struct {
	s *string
}

// String returns the interned text. The zero Identifier yields "".
func (id Identifier) String() string {
	if id.s == nil {
		return ""
	}

	return *id.s
}

// IsZero reports whether the identifier was never interned.
func (id Identifier) IsZero() bool {
	return id.s == nil
}

// Interner is a mutex-guarded deduplicating store of strings.
type Interner struct {
	mu     sync.Mutex
	table  map[string]*string
	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty Interner.
func New() *Interner {
	return &Interner{
		table: make(map[string]*string),
	}
}

// Intern returns the canonical Identifier for text. Interning the same text
// twice, from any goroutine, yields equal identifiers for the lifetime of the
// Interner (or until Reset).
func (in *Interner) Intern(text string) Identifier {
	in.mu.Lock()
	defer in.mu.Unlock()

	if canonical, ok := in.table[text]; ok {
		in.hits.Inc()

		return Identifier{s: canonical}
	}

	in.misses.Inc()

	// Copy into a fresh allocation so the canonical storage does not alias
	// whatever buffer the caller sliced the text from.
	canonical := new(string)
	*canonical = text
	in.table[text] = canonical

	return Identifier{s: canonical}
}

// Len returns the number of distinct strings currently interned.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()

	return len(in.table)
}

// Stats returns the cumulative hit and miss counts.
func (in *Interner) Stats() (hits, misses int64) {
	return in.hits.Load(), in.misses.Load()
}

// Reset clears the table for test isolation. It is NOT safe to call
// concurrently with any other operation, and it invalidates every previously
// issued Identifier: identifiers obtained before a Reset will not compare
// equal to ones interned after it. Callers must not retain identifiers across
// a Reset. Not a production API.
func (in *Interner) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.table = make(map[string]*string)
	in.hits.Store(0)
	in.misses.Store(0)
}

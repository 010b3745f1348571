// Package accountlock serializes mutations per account.
//
// Every mutating ledger and portfolio operation holds the account's lock
// across read, compute and commit, so two concurrent operations on the same
// account can never overwrite each other's effect. Operations on different
// accounts proceed in parallel.
package accountlock

import (
	"sync"

	"github.com/google/uuid"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out one mutex per account ID.
// Entries are reference counted and dropped once no caller holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*entry
}

// New creates an empty Locker
func New() *Locker {
	return &Locker{locks: make(map[uuid.UUID]*entry)}
}

// Lock blocks until the caller owns the account and returns the release function.
// The release function must be called exactly once.
func (l *Locker) Lock(accountID uuid.UUID) func() {
	l.mu.Lock()
	e, ok := l.locks[accountID]
	if !ok {
		e = &entry{}
		l.locks[accountID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			l.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(l.locks, accountID)
			}
			l.mu.Unlock()
		})
	}
}

// Len returns the number of accounts currently locked or awaited.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Package fslock serializes read-modify-write sequences against
// individual files within a single process.
//
// The memory engine mutates markdown files in place (usage counters,
// appended learnings); concurrent agent tasks touching the same file
// must queue rather than clobber each other. This is not a cross-process
// lock — two server instances writing the same file can still race, an
// accepted scope boundary.
package fslock

import "sync"

// Locker runs an operation while holding an exclusive lock keyed by
// file path. Abstracted so the in-process default can be swapped for an
// advisory file lock or an external lock service if the system is ever
// scaled across processes.
type Locker interface {
	WithLock(path string, op func() error) error
}

// PathLocker is the in-process Locker. Callers for the same path are
// serialized in acquisition order; callers for different paths proceed
// fully in parallel.
type PathLocker struct {
	mu      sync.Mutex
	pending map[string]chan struct{}
}

// NewPathLocker creates an empty PathLocker.
func NewPathLocker() *PathLocker {
	return &PathLocker{pending: make(map[string]chan struct{})}
}

// WithLock runs op exclusively for the given path. Each caller chains
// behind the currently pending operation for that path, which yields
// FIFO ordering: no caller jumps an already-waiting one. The pending
// entry is removed once the chain drains, so the map never leaks, and
// the lock is released on every exit path, panics included.
func (l *PathLocker) WithLock(path string, op func() error) error {
	l.mu.Lock()
	prev := l.pending[path]
	done := make(chan struct{})
	l.pending[path] = done
	l.mu.Unlock()

	if prev != nil {
		<-prev
	}

	defer func() {
		close(done)
		l.mu.Lock()
		if l.pending[path] == done {
			delete(l.pending, path)
		}
		l.mu.Unlock()
	}()

	return op()
}

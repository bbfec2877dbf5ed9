package fslock

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWithLock_SerializesSamePath(t *testing.T) {
	l := NewPathLocker()

	const n = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.WithLock("/tmp/same.md", func() error {
				// Unsynchronized read-modify-write; only safe if the
				// lock actually serializes.
				v := counter
				time.Sleep(time.Microsecond)
				counter = v + 1
				return nil
			})
		}()
	}
	wg.Wait()

	if counter != n {
		t.Errorf("counter = %d, want %d (lost updates)", counter, n)
	}
}

func TestWithLock_DifferentPathsRunInParallel(t *testing.T) {
	l := NewPathLocker()

	aHeld := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_ = l.WithLock("/a.md", func() error {
			close(aHeld)
			<-release
			return nil
		})
	}()

	<-aHeld

	done := make(chan struct{})
	go func() {
		_ = l.WithLock("/b.md", func() error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("operation on a different path blocked behind an unrelated lock")
	}
	close(release)
}

func TestWithLock_ErrorReleasesLock(t *testing.T) {
	l := NewPathLocker()

	wantErr := errors.New("boom")
	if err := l.WithLock("/x.md", func() error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}

	// The path must be immediately lockable again.
	done := make(chan struct{})
	go func() {
		_ = l.WithLock("/x.md", func() error { return nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock leaked after failed operation")
	}
}

func TestWithLock_PanicReleasesLock(t *testing.T) {
	l := NewPathLocker()

	func() {
		defer func() { _ = recover() }()
		_ = l.WithLock("/p.md", func() error { panic("operation failed hard") })
	}()

	done := make(chan struct{})
	go func() {
		_ = l.WithLock("/p.md", func() error { return nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock leaked after panicking operation")
	}
}

func TestWithLock_NoPendingEntryAfterDrain(t *testing.T) {
	l := NewPathLocker()
	_ = l.WithLock("/gone.md", func() error { return nil })

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.pending["/gone.md"]; ok {
		t.Error("pending entry not removed after chain drained")
	}
}

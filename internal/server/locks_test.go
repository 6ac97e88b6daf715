package server

import (
	"sync"
	"testing"
)

func TestSessionLocks(t *testing.T) {
	l := newSessionLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock("s1")
			defer unlock()
			n := counter
			counter = n + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
	if n := l.len(); n != 0 {
		t.Errorf("expected lock table to be empty, got %d entries", n)
	}
}

func TestSessionLocksIndependent(t *testing.T) {
	l := newSessionLocks()
	unlockA := l.lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := l.lock("b")
		unlock()
		close(done)
	}()
	<-done

	if n := l.len(); n != 1 {
		t.Errorf("expected one held lock, got %d", n)
	}
}

package notify

import (
	"sync"
	"testing"
)

func TestUserLocks_ReleasesEntries(t *testing.T) {
	locks := newUserLocks()

	var wg sync.WaitGroup
	counter := 0
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("user-1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter: got %d, want 50", counter)
	}
	if len(locks.locks) != 0 {
		t.Errorf("got %d lingering lock entries, want 0", len(locks.locks))
	}
}

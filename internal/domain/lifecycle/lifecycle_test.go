package lifecycle

import (
	"sync"
	"testing"
)

func TestTable_Allowed(t *testing.T) {
	table := Table[string]{
		"pending":   {"confirmed", "canceled"},
		"confirmed": {"completed", "canceled"},
		"completed": nil,
		"canceled":  nil,
	}

	cases := []struct {
		from, to string
		want     bool
	}{
		{"pending", "confirmed", true},
		{"pending", "canceled", true},
		{"pending", "completed", false},
		{"confirmed", "completed", true},
		{"confirmed", "canceled", true},
		{"confirmed", "pending", false},
		{"completed", "canceled", false},
		{"completed", "completed", false},
		{"canceled", "confirmed", false},
		{"unknown", "pending", false},
	}

	for _, c := range cases {
		if got := table.Allowed(c.from, c.to); got != c.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTable_Terminal(t *testing.T) {
	table := Table[string]{
		"pending":   {"canceled"},
		"canceled":  nil,
		"completed": {},
	}

	if table.Terminal("pending") {
		t.Fatalf("pending should not be terminal")
	}
	if !table.Terminal("canceled") {
		t.Fatalf("canceled should be terminal")
	}
	if !table.Terminal("completed") {
		t.Fatalf("empty edge list should be terminal")
	}
	if !table.Terminal("unknown") {
		t.Fatalf("unknown state has no edges, should read as terminal")
	}
}

func TestKeyedLock_SerializesSameKey(t *testing.T) {
	var kl KeyedLock

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := kl.Lock("appt-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("expected %d increments, got %d", workers, counter)
	}
}

func TestKeyedLock_IndependentKeys(t *testing.T) {
	var kl KeyedLock

	unlockA := kl.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := kl.Lock("b")
		unlockB()
		close(done)
	}()

	// "b" no debe quedar bloqueado por "a".
	<-done
	unlockA()
}

func TestKeyedLock_EntryRemovedWhenIdle(t *testing.T) {
	var kl KeyedLock

	unlock := kl.Lock("x")
	unlock()

	kl.mu.Lock()
	defer kl.mu.Unlock()
	if len(kl.entries) != 0 {
		t.Fatalf("expected no retained entries, got %d", len(kl.entries))
	}
}

package backdrop

import (
	"sync"
	"testing"
)

func TestFutureFiresOnceOnPoll(t *testing.T) {
	f := NewFuture[int]()
	calls := 0
	var got int
	f.Then(func(v int) { calls++; got = v })

	if f.Poll() {
		t.Fatal("Poll fired before Resolve")
	}
	if !f.Resolve(7) {
		t.Fatal("first Resolve should succeed")
	}
	if f.Resolve(8) {
		t.Error("second Resolve should fail")
	}
	if calls != 0 {
		t.Error("continuation ran before Poll")
	}
	if !f.Poll() {
		t.Fatal("Poll should fire after Resolve")
	}
	if f.Poll() {
		t.Error("second Poll should not fire")
	}
	if calls != 1 || got != 7 {
		t.Errorf("calls = %d, value = %d, want 1 and 7", calls, got)
	}
	if v, ok := f.Value(); !ok || v != 7 {
		t.Errorf("Value = (%d, %v), want (7, true)", v, ok)
	}
}

func TestFutureThenReplaces(t *testing.T) {
	f := Resolved("x")
	first, second := 0, 0
	f.Then(func(string) { first++ })
	f.Then(func(string) { second++ })
	f.Poll()
	if first != 0 || second != 1 {
		t.Errorf("first = %d, second = %d, want 0 and 1", first, second)
	}
}

func TestFutureThenAfterFireIsNoop(t *testing.T) {
	f := Resolved(1)
	f.Poll()
	called := false
	f.Then(func(int) { called = true })
	f.Poll()
	if called {
		t.Error("continuation registered after firing should not run")
	}
}

func TestFutureConcurrentResolveExactlyOnce(t *testing.T) {
	f := NewFuture[int]()
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if f.Resolve(v) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("wins = %d, want 1", wins)
	}
	fired := 0
	f.Then(func(int) { fired++ })
	f.Poll()
	f.Poll()
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
}

package backdrop

import (
	"math/rand/v2"
	"testing"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func TestQuoteProviderEmpty(t *testing.T) {
	p := NewQuoteProvider(nil, seeded(1))
	for i := 0; i < 3; i++ {
		if got := p.Next(); got != "" {
			t.Errorf("Next = %q, want empty", got)
		}
	}
}

func TestQuoteProviderSingle(t *testing.T) {
	p := NewQuoteProvider([]string{"only"}, seeded(1))
	for i := 0; i < 5; i++ {
		if got := p.Next(); got != "only" {
			t.Errorf("Next = %q, want only", got)
		}
	}
}

func TestQuoteProviderNeverRepeats(t *testing.T) {
	quotes := []string{"a", "b", "c", "d"}
	for seed := uint64(0); seed < 20; seed++ {
		p := NewQuoteProvider(quotes, seeded(seed))
		prev := p.Next()
		for i := 0; i < 200; i++ {
			got := p.Next()
			if got == prev {
				t.Fatalf("seed %d call %d: repeated %q", seed, i, got)
			}
			prev = got
		}
	}
}

func TestQuoteProviderTwoAlternates(t *testing.T) {
	p := NewQuoteProvider([]string{"x", "y"}, seeded(3))
	first := p.Next()
	for i := 0; i < 10; i++ {
		got := p.Next()
		if got == first {
			t.Fatalf("call %d: %q repeated", i, got)
		}
		first = got
	}
}

func TestQuoteProviderReachesEveryOther(t *testing.T) {
	quotes := []string{"a", "b", "c", "d", "e"}
	p := NewQuoteProvider(quotes, seeded(7))
	seen := map[string]int{}
	for i := 0; i < 2000; i++ {
		seen[p.Next()]++
	}
	for _, q := range quotes {
		// Uniform over the four others gives each quote ~400 hits.
		if seen[q] < 250 {
			t.Errorf("%q seen %d times, want roughly uniform", q, seen[q])
		}
	}
}

func TestQuoteProviderDuplicateValues(t *testing.T) {
	p := NewQuoteProvider([]string{"same", "same", "other"}, seeded(5))
	if p.Len() != 2 {
		t.Errorf("Len = %d, want 2 after dropping duplicates", p.Len())
	}
	prev := p.Next()
	for i := 0; i < 20; i++ {
		got := p.Next()
		if got == prev {
			t.Fatalf("call %d: repeated %q", i, got)
		}
		prev = got
	}
}

func TestQuoteProviderNilRng(t *testing.T) {
	p := NewQuoteProvider([]string{"a", "b"}, nil)
	if got := p.Next(); got != "a" && got != "b" {
		t.Errorf("Next = %q", got)
	}
}

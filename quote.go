package backdrop

import "math/rand/v2"

// QuoteProvider hands out quotes at random without repeating the previous one.
type QuoteProvider struct {
	quotes []string
	rng    *rand.Rand
	last   int
}

// NewQuoteProvider copies quotes, dropping duplicates so that consecutive
// results differ by value and not only by position. A nil rng uses a
// randomly seeded source.
func NewQuoteProvider(quotes []string, rng *rand.Rand) *QuoteProvider {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	seen := make(map[string]struct{}, len(quotes))
	uniq := make([]string, 0, len(quotes))
	for _, q := range quotes {
		if _, dup := seen[q]; dup {
			continue
		}
		seen[q] = struct{}{}
		uniq = append(uniq, q)
	}
	return &QuoteProvider{quotes: uniq, rng: rng, last: -1}
}

// Len returns the number of quotes.
func (p *QuoteProvider) Len() int {
	return len(p.quotes)
}

// Next returns a uniformly chosen quote that differs from the previous one
// whenever more than one quote exists. An empty provider returns "".
func (p *QuoteProvider) Next() string {
	n := len(p.quotes)
	switch {
	case n == 0:
		return ""
	case n == 1:
		p.last = 0
		return p.quotes[0]
	}

	var i int
	if p.last < 0 {
		i = p.rng.IntN(n)
	} else {
		// Draw from the n-1 others and skip over the previous slot.
		i = p.rng.IntN(n - 1)
		if i >= p.last {
			i++
		}
	}
	p.last = i
	return p.quotes[i]
}

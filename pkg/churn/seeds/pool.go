package seeds

import (
	"strings"
)

// Rand is the random source used for drawing.
type Rand interface {
	IntN(n int) int
}

// Pool is a flat, immutable list of candidate replacement words.
type Pool struct {
	words []string
}

// FromApproved trims each word and drops blanks. Order and duplicates are
// kept.
func FromApproved(words []string) Pool {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return Pool{words: out}
}

// Merge builds the pool of the interactive flow: the approved variants
// followed by the manual entries.
func Merge(approved, manual []string) Pool {
	all := make([]string, 0, len(approved)+len(manual))
	all = append(all, approved...)
	all = append(all, manual...)
	return FromApproved(all)
}

// Words returns a copy of the pool.
func (p Pool) Words() []string { return append([]string(nil), p.words...) }

// Len returns the pool size.
func (p Pool) Len() int { return len(p.words) }

// Draw picks a word uniformly at random. It panics on an empty pool;
// sessions refuse to start with one.
func (p Pool) Draw(rng Rand) string {
	if len(p.words) == 0 {
		panic("seeds: draw from empty pool")
	}
	return p.words[rng.IntN(len(p.words))]
}

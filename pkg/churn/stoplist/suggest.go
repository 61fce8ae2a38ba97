package stoplist

import (
	"sort"
)

// Stats is the document frequency of one seed root across a set of texts.
type Stats struct {
	Token     string
	Docs      int
	DFPercent float64
}

// Candidate is a root suggested for the curated stoplist.
type Candidate struct {
	Token     string
	DFPercent float64
}

// Thresholds decides which roots are generic enough to suggest.
type Thresholds struct {
	DFPercent float64 // share of texts the root must head a seed in
	MinTexts  int     // below this many texts nothing is suggested
}

// DefaultThresholds returns the thresholds used by the CLI.
func DefaultThresholds() Thresholds {
	return Thresholds{DFPercent: 60, MinTexts: 3}
}

// CountRoots computes per-root document frequency. Each element of docs
// holds the roots seen in one text; repeats within a text count once.
func CountRoots(docs [][]string) []Stats {
	df := make(map[string]int)
	for _, roots := range docs {
		seen := make(map[string]bool, len(roots))
		for _, r := range roots {
			r = normalize(r)
			if r == "" || seen[r] {
				continue
			}
			seen[r] = true
			df[r]++
		}
	}
	stats := make([]Stats, 0, len(df))
	for tok, n := range df {
		stats = append(stats, Stats{
			Token:     tok,
			Docs:      n,
			DFPercent: 100 * float64(n) / float64(len(docs)),
		})
	}
	return stats
}

// SuggestCandidates returns roots that are not yet stopwords and head a seed
// in at least th.DFPercent of the texts, most frequent first. Roots that
// show up in nearly every source text make poor seeds.
func (m *Manager) SuggestCandidates(stats []Stats, texts int, th Thresholds) []Candidate {
	if texts < th.MinTexts {
		return nil
	}
	var out []Candidate
	for _, s := range stats {
		if m.IsStop(s.Token) || s.DFPercent < th.DFPercent {
			continue
		}
		out = append(out, Candidate{Token: s.Token, DFPercent: s.DFPercent})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DFPercent != out[j].DFPercent {
			return out[i].DFPercent > out[j].DFPercent
		}
		return out[i].Token < out[j].Token
	})
	return out
}

// Package blacklist rejects generated headlines that contain forbidden terms.
package blacklist

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var defaultTerms = []string{
	"rape", "sex", "war", "iraq", "iran", "kill", "gay", "murder", "troops", "terror",
}

// DefaultTerms returns a fresh copy of the built-in forbidden terms.
func DefaultTerms() []string {
	return append([]string(nil), defaultTerms...)
}

// Verdict is the outcome of a check. Matched lists the terms found, in
// filter order.
type Verdict struct {
	Blocked bool
	Matched []string
}

// Filter holds a fixed set of lowercased terms. It is safe for concurrent use.
type Filter struct {
	terms []string
}

// New creates a filter. Terms are lowercased; blank terms and duplicates are
// dropped.
func New(terms []string) *Filter {
	seen := make(map[string]struct{}, len(terms))
	f := &Filter{terms: make([]string, 0, len(terms))}
	for _, t := range terms {
		t = lower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		f.terms = append(f.terms, t)
	}
	return f
}

// Check matches every term as a substring of the lowercased headline.
func (f *Filter) Check(headline string) Verdict {
	if f == nil || len(f.terms) == 0 {
		return Verdict{}
	}
	text := lower(headline)
	var v Verdict
	for _, t := range f.terms {
		if strings.Contains(text, t) {
			v.Matched = append(v.Matched, t)
		}
	}
	v.Blocked = len(v.Matched) > 0
	return v
}

// IsBlocked reports whether headline contains any term.
func (f *Filter) IsBlocked(headline string) bool {
	return f.Check(headline).Blocked
}

// Terms returns the filter's terms.
func (f *Filter) Terms() []string {
	if f == nil {
		return nil
	}
	return append([]string(nil), f.terms...)
}

// A Caser is not safe for concurrent use, so each call builds one.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// Package locate finds the subject or direct object of a template headline.
package locate

import (
	"context"
	"fmt"

	"github.com/cognicore/churn/pkg/churn/analysis"
)

// Locator runs the analyzer on one headline and picks a target span.
type Locator struct {
	analyzer analysis.Analyzer
}

// New creates a locator over analyzer.
func New(analyzer analysis.Analyzer) *Locator {
	return &Locator{analyzer: analyzer}
}

// FindSubject returns the nominal subject of headline. The returned error is
// set only when the analyzer fails; a headline without a subject reports
// found == false.
func (l *Locator) FindSubject(ctx context.Context, headline string) (analysis.Target, bool, error) {
	return l.find(ctx, headline, func(d analysis.Dep) bool { return d == analysis.NominalSubject })
}

// FindObject returns the direct object of headline.
func (l *Locator) FindObject(ctx context.Context, headline string) (analysis.Target, bool, error) {
	return l.find(ctx, headline, analysis.Dep.IsDirectObject)
}

// find prefers noun chunks, whose text covers modifiers, and falls back to
// single tokens.
func (l *Locator) find(ctx context.Context, headline string, match func(analysis.Dep) bool) (analysis.Target, bool, error) {
	doc, err := l.analyzer.Analyze(ctx, headline)
	if err != nil {
		return analysis.Target{}, false, fmt.Errorf("analyze %q: %w", headline, err)
	}
	for _, c := range doc.Chunks {
		if match(c.Root.Dep) {
			return analysis.Target{Text: doc.ChunkText(c, true), Root: c.Root, Role: c.Root.Dep}, true, nil
		}
	}
	for _, tok := range doc.Tokens {
		if match(tok.Dep) {
			return analysis.Target{Text: tok.Text, Root: tok, Role: tok.Dep}, true, nil
		}
	}
	return analysis.Target{}, false, nil
}

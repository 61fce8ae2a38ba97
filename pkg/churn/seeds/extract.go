package seeds

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
	"github.com/cognicore/churn/pkg/churn/stoplist"
)

// Extract analyzes text sentence by sentence and groups its noun chunks by
// root. Chunks that start with a pronoun or whose root is a stopword are
// skipped, and leading determiners and possessives are dropped from the
// recorded text. When the analyzer returns no chunks for a sentence its
// nouns are used on their own.
func Extract(ctx context.Context, a analysis.Analyzer, text string, stops *stoplist.Manager) (*Groups, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: source text is empty", internalerr.ErrInvalidInput)
	}

	var (
		order []string
		byKey = make(map[string]*RootChunks)
	)
	for _, sentence := range analysis.SplitSentences(text) {
		doc, err := a.Analyze(ctx, sentence)
		if err != nil {
			return nil, fmt.Errorf("analyze sentence: %w", err)
		}
		for _, c := range chunksOf(doc) {
			if len(c.Tokens) == 0 || c.Tokens[0].POS == analysis.Pronoun {
				continue
			}
			root := c.Root.Text
			if stops.IsStop(root) {
				continue
			}
			rc, ok := byKey[root]
			if !ok {
				rc = &RootChunks{Root: root}
				byKey[root] = rc
				order = append(order, root)
			}
			rc.Chunks = append(rc.Chunks, doc.ChunkText(c, true))
		}
	}

	roots := make([]RootChunks, 0, len(order))
	for _, r := range order {
		roots = append(roots, *byKey[r])
	}
	return FromAnalyzed(roots), nil
}

func chunksOf(doc analysis.Doc) []analysis.Chunk {
	if len(doc.Chunks) > 0 {
		return doc.Chunks
	}
	var chunks []analysis.Chunk
	for _, t := range doc.Tokens {
		if t.POS == analysis.Noun {
			chunks = append(chunks, analysis.Chunk{Start: t.Start, End: t.End, Root: t, Tokens: []analysis.Token{t}})
		}
	}
	return chunks
}

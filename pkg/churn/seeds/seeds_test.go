package seeds

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/analysis/heuristic"
	"github.com/cognicore/churn/pkg/churn/internalerr"
	"github.com/cognicore/churn/pkg/churn/stoplist"
)

// chunk lists the words of one noun chunk; the last word is the root.
type chunk struct {
	words []string
	lead  analysis.Dep
	pos   analysis.POS
}

func mkDoc(text string, chunks ...chunk) analysis.Doc {
	d := analysis.Doc{Text: text}
	cursor := 0
	for _, c := range chunks {
		var toks []analysis.Token
		for i, w := range c.words {
			start := cursor + strings.Index(text[cursor:], w)
			tok := analysis.Token{Text: w, Start: start, End: start + len(w), POS: analysis.Noun}
			if i == 0 && len(c.words) > 1 {
				tok.POS, tok.Dep = analysis.Determiner, c.lead
			}
			if i == 0 && c.pos != "" {
				tok.POS = c.pos
			}
			cursor = tok.End
			toks = append(toks, tok)
		}
		d.Tokens = append(d.Tokens, toks...)
		d.Chunks = append(d.Chunks, analysis.Chunk{
			Start: toks[0].Start, End: toks[len(toks)-1].End, Root: toks[len(toks)-1], Tokens: toks,
		})
	}
	return d
}

type scripted map[string]analysis.Doc

func (s scripted) Language() analysis.Language { return analysis.English }

func (s scripted) Analyze(_ context.Context, sentence string) (analysis.Doc, error) {
	d, ok := s[sentence]
	if !ok {
		return analysis.Doc{}, fmt.Errorf("unexpected sentence %q", sentence)
	}
	return d, nil
}

func TestExtractGroupsByRoot(t *testing.T) {
	a := scripted{
		"The hungry cats chased a mouse.": mkDoc("The hungry cats chased a mouse.",
			chunk{words: []string{"The", "hungry", "cats"}, lead: analysis.Det},
			chunk{words: []string{"a", "mouse"}, lead: analysis.Det}),
		"My cat sleeps.": mkDoc("My cat sleeps.",
			chunk{words: []string{"My", "cat"}, lead: analysis.Poss}),
		"They saw the cats.": mkDoc("They saw the cats.",
			chunk{words: []string{"They"}, pos: analysis.Pronoun},
			chunk{words: []string{"the", "cats"}, lead: analysis.Det}),
	}

	g, err := Extract(context.Background(), a,
		"The hungry cats chased a mouse. My cat sleeps. They saw the cats.", stoplist.English())
	require.NoError(t, err)

	assert.Equal(t, []string{"cats", "mouse", "cat"}, g.Keys())
	assert.Equal(t, []string{"cats", "hungry cats"}, g.Variants("cats"))
	assert.Equal(t, []string{"mouse"}, g.Variants("mouse"))
	assert.Equal(t, []string{"cats", "hungry cats", "mouse", "cat"}, g.Pool().Words())
	assert.Empty(t, g.Variants("they"))
}

func TestExtractSkipsStopwordRoots(t *testing.T) {
	text := "Something happened to the town."
	a := scripted{text: mkDoc(text,
		chunk{words: []string{"Something"}},
		chunk{words: []string{"the", "town"}, lead: analysis.Det})}

	g, err := Extract(context.Background(), a, text, stoplist.English())
	require.NoError(t, err)
	assert.Equal(t, []string{"town"}, g.Keys())
}

func TestExtractFallsBackToNouns(t *testing.T) {
	text := "Katten jagen muizen"
	d := analysis.Doc{Text: text, Tokens: []analysis.Token{
		{Text: "Katten", Start: 0, End: 6, POS: analysis.Noun},
		{Text: "jagen", Start: 7, End: 12, POS: analysis.Verb},
		{Text: "muizen", Start: 13, End: 19, POS: analysis.Noun},
	}}
	g, err := Extract(context.Background(), scripted{text: d}, text, stoplist.Dutch())
	require.NoError(t, err)
	assert.Equal(t, []string{"katten", "muizen"}, g.Keys())
	assert.Equal(t, []string{"Katten"}, g.Variants("katten"))
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract(context.Background(), scripted{}, "   \n ", nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidInput)

	_, err = Extract(context.Background(), scripted{}, "Nobody scripted this.", nil)
	assert.Error(t, err)
}

func TestExtractWithHeuristicAnalyzer(t *testing.T) {
	g, err := Extract(context.Background(), heuristic.New(), "The cat chased the mouse.", stoplist.English())
	require.NoError(t, err)
	assert.Equal(t, []string{"cat", "mouse"}, g.Keys())
}

func TestFromAnalyzedIncludesRootAndMergesCase(t *testing.T) {
	g := FromAnalyzed([]RootChunks{
		{Root: "Cat", Chunks: []string{"Cat", "black Cat"}},
		{Root: "dog", Chunks: []string{"big dog"}},
		{Root: "cat", Chunks: []string{"the cat"}},
	})
	assert.Equal(t, []string{"cat", "dog"}, g.Keys())
	assert.Equal(t, []string{"Cat", "black Cat", "cat", "the cat"}, g.Variants("cat"))
	assert.Equal(t, 2, g.Len())

	for _, key := range g.Keys() {
		assert.NotEmpty(t, g.Variants(key))
	}
	assert.Equal(t, []string{"dog", "big dog"}, g.Select("dog", "missing"))
}

func TestFromApproved(t *testing.T) {
	p := FromApproved([]string{"  dog ", "", " \t ", "cat", "dog"})
	assert.Equal(t, []string{"dog", "cat", "dog"}, p.Words())
	assert.Equal(t, 3, p.Len())

	assert.Equal(t, 0, FromApproved(nil).Len())
}

func TestMerge(t *testing.T) {
	p := Merge([]string{"cats", "hungry cats"}, []string{"", " robot "})
	assert.Equal(t, []string{"cats", "hungry cats", "robot"}, p.Words())
}

type fixedRand int

func (f fixedRand) IntN(n int) int { return int(f) % n }

func TestDraw(t *testing.T) {
	p := FromApproved([]string{"a", "b", "c"})
	assert.Equal(t, "b", p.Draw(fixedRand(1)))
	assert.Equal(t, "a", p.Draw(fixedRand(3)))

	assert.Panics(t, func() { Pool{}.Draw(fixedRand(0)) })
}

func TestGroupsYAMLKeepsOrder(t *testing.T) {
	g := FromAnalyzed([]RootChunks{
		{Root: "zebra", Chunks: []string{"striped zebra"}},
		{Root: "apple", Chunks: nil},
	})
	out, err := yaml.Marshal(g)
	require.NoError(t, err)
	assert.Equal(t, "zebra:\n    - zebra\n    - striped zebra\napple:\n    - apple\n", string(out))

	var back Groups
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, []string{"zebra", "apple"}, back.Keys())
	assert.Equal(t, g.Pool().Words(), back.Pool().Words())

	assert.Error(t, yaml.Unmarshal([]byte("- a\n- b\n"), &back))
}

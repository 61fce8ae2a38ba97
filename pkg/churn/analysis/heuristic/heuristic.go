// Package heuristic is an English analyzer for headline-sized sentences.
// Parts of speech come from prose's perceptron tagger; dependency roles are
// assigned by rule, from the position of each noun group relative to the
// main verb.
package heuristic

import (
	"context"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gertd/go-pluralize"
	"github.com/jdkato/prose/v2"

	"github.com/cognicore/churn/pkg/churn/analysis"
)

// taggerModel loads the embedded tagger weights once per process.
var taggerModel = sync.OnceValue(func() *prose.Model {
	doc, err := prose.NewDocument("", prose.WithSegmentation(false), prose.WithExtraction(false))
	if err != nil {
		return nil
	}
	return doc.Model
})

// Analyzer implements analysis.Analyzer for English.
type Analyzer struct {
	plural *pluralize.Client
	model  *prose.Model
}

// New creates a heuristic English analyzer.
func New() *Analyzer {
	return &Analyzer{plural: pluralize.NewClient(), model: taggerModel()}
}

// Language implements analysis.Analyzer.
func (a *Analyzer) Language() analysis.Language { return analysis.English }

// Analyze implements analysis.Analyzer.
func (a *Analyzer) Analyze(ctx context.Context, sentence string) (analysis.Doc, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Doc{}, err
	}
	doc := analysis.Doc{Text: sentence}
	doc.Tokens = tokenize(sentence)
	if len(doc.Tokens) == 0 {
		return doc, nil
	}

	tags := a.pennTags(sentence)
	for i := range doc.Tokens {
		a.tag(&doc.Tokens[i], tags[doc.Tokens[i].Start])
	}
	verb := a.findMainVerb(doc.Tokens)
	groups := nounGroups(doc.Tokens, verb)
	assignDeps(doc.Tokens, groups, verb)

	for _, g := range groups {
		toks := make([]analysis.Token, g.end-g.start)
		copy(toks, doc.Tokens[g.start:g.end])
		doc.Chunks = append(doc.Chunks, analysis.Chunk{
			Start:  doc.Tokens[g.start].Start,
			End:    doc.Tokens[g.end-1].End,
			Root:   doc.Tokens[g.head],
			Tokens: toks,
		})
	}
	return doc, nil
}

// tokenize splits a sentence into words and punctuation marks, keeping byte
// offsets. Apostrophes and hyphens inside a word belong to the word.
func tokenize(s string) []analysis.Token {
	var tokens []analysis.Token
	start := -1
	flush := func(end int) {
		if start >= 0 {
			tokens = append(tokens, analysis.Token{Text: s[start:end], Start: start, End: end})
			start = -1
		}
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if start < 0 {
				start = i
			}
		case (r == '\'' || r == '’' || r == '-') && start >= 0 && nextIsWordRune(s, i):
			// joined: "don't", "state-run"
		default:
			flush(i)
			if !unicode.IsSpace(r) {
				end := i + utf8.RuneLen(r)
				tokens = append(tokens, analysis.Token{Text: s[i:end], Start: i, End: end})
			}
		}
	}
	flush(len(s))
	return tokens
}

func nextIsWordRune(s string, i int) bool {
	_, size := utf8.DecodeRuneInString(s[i:])
	if i+size >= len(s) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(s[i+size:])
	return unicode.IsLetter(next) || unicode.IsDigit(next)
}

// pennTags runs the tagger and returns each tagged word's Penn tag keyed by
// its byte offset in sentence.
func (a *Analyzer) pennTags(sentence string) map[int]string {
	tags := make(map[int]string)
	opts := []prose.DocOpt{prose.WithSegmentation(false), prose.WithExtraction(false)}
	if a.model != nil {
		opts = append(opts, prose.UsingModel(a.model))
	}
	doc, err := prose.NewDocument(sentence, opts...)
	if err != nil {
		return tags
	}
	cursor := 0
	for _, tok := range doc.Tokens() {
		i := strings.Index(sentence[cursor:], tok.Text)
		if tok.Text == "" || i < 0 {
			continue
		}
		tags[cursor+i] = tok.Tag
		cursor += i + len(tok.Text)
	}
	return tags
}

// tag assigns a first-pass part of speech from a Penn tag. Tokens the
// tagger split differently ("don't") keep the tag of their first piece;
// untagged words default to nouns. Verbs are resolved later, in context,
// by findMainVerb.
func (a *Analyzer) tag(t *analysis.Token, penn string) {
	lower := strings.ToLower(t.Text)
	first, _ := utf8.DecodeRuneInString(t.Text)

	if !unicode.IsLetter(first) && !unicode.IsDigit(first) {
		t.POS, t.Tag = analysis.Punctuation, "."
		return
	}
	t.Tag = penn
	switch {
	case penn == "CD" || (penn == "" && isNumber(lower)):
		t.POS, t.Tag = analysis.Numeral, "CD"
	case penn == "PRP$" || penn == "WP$":
		t.POS = analysis.Determiner
	case penn == "DT" || penn == "PDT" || penn == "WDT":
		t.POS = analysis.Determiner
	case penn == "PRP" || penn == "WP" || penn == "EX":
		t.POS = analysis.Pronoun
	case penn == "MD" || (strings.HasPrefix(penn, "VB") && has(auxiliaries, lower)):
		t.POS = analysis.Auxiliary
	case strings.HasPrefix(penn, "VB"):
		t.POS = analysis.Verb
	case penn == "IN" || penn == "TO":
		t.POS = analysis.Adposition
	case penn == "CC":
		t.POS = analysis.Conjunction
	case strings.HasPrefix(penn, "RB") || penn == "WRB":
		t.POS = analysis.Adverb
	case strings.HasPrefix(penn, "JJ"):
		t.POS = analysis.Adjective
	case penn == "RP":
		t.POS = analysis.Particle
	case penn == "NNP" || penn == "NNPS":
		t.POS = analysis.ProperNoun
		a.number(t, "NNP", "NNPS")
	case penn == "NN" || penn == "NNS" || penn == "":
		t.POS = analysis.Noun
		a.number(t, "NN", "NNS")
	default:
		t.POS = analysis.Other
	}
}

// number annotates a nominal with grammatical number. A word whose singular
// form differs from itself is plural.
func (a *Analyzer) number(t *analysis.Token, singularTag, pluralTag string) {
	lower := strings.ToLower(t.Text)
	if strings.ToLower(a.plural.Singular(lower)) != lower {
		t.Tag = pluralTag
		t.Morph = "Number=Plur"
		return
	}
	t.Tag = singularTag
	t.Morph = "Number=Sing"
}

// findMainVerb returns the index of the main verb, or -1. The first verb
// that follows a subject-like word wins; failing that, a plural-looking noun
// between two noun groups ("Government plans cuts"); failing that, the first
// auxiliary acts as a copula.
func (a *Analyzer) findMainVerb(tokens []analysis.Token) int {
	for i := 1; i < len(tokens); i++ {
		if tokens[i].POS != analysis.Verb {
			continue
		}
		prev := previousContent(tokens, i)
		if prev < 0 {
			continue
		}
		p := tokens[prev]
		if p.IsNominal() || p.POS == analysis.Pronoun || p.POS == analysis.Auxiliary {
			markVerb(&tokens[i], tokens[i].Tag)
			return i
		}
	}

	for i := 1; i < len(tokens)-1; i++ {
		t := tokens[i]
		if t.POS != analysis.Noun || !strings.HasSuffix(strings.ToLower(t.Text), "s") {
			continue
		}
		prev, next := tokens[i-1], tokens[i+1]
		if !prev.IsNominal() && prev.POS != analysis.Pronoun {
			continue
		}
		switch next.POS {
		case analysis.Noun, analysis.ProperNoun, analysis.Determiner, analysis.Adjective,
			analysis.Numeral, analysis.Pronoun:
			markVerb(&tokens[i], "VBZ")
			return i
		}
	}

	for i, t := range tokens {
		if t.POS == analysis.Auxiliary {
			return i
		}
	}
	return -1
}

func markVerb(t *analysis.Token, tag string) {
	t.POS, t.Tag, t.Morph = analysis.Verb, tag, ""
}

func previousContent(tokens []analysis.Token, i int) int {
	for j := i - 1; j >= 0; j-- {
		if tokens[j].POS != analysis.Adverb {
			return j
		}
	}
	return -1
}

type group struct {
	start, end int // token range [start, end)
	head       int
}

// nounGroups finds base noun phrases: an optional determiner or possessive,
// modifiers, and one or more nominals, the last of which is the head. A lone
// pronoun is its own group.
func nounGroups(tokens []analysis.Token, verb int) []group {
	var groups []group
	i := 0
	for i < len(tokens) {
		t := tokens[i]
		if i == verb {
			i++
			continue
		}
		if t.POS == analysis.Pronoun {
			groups = append(groups, group{start: i, end: i + 1, head: i})
			i++
			continue
		}
		if !opensGroup(t) {
			i++
			continue
		}
		j := i
		if t.POS == analysis.Determiner {
			j++
		}
		head := -1
		for j < len(tokens) && j != verb && continuesGroup(tokens[j]) {
			if tokens[j].IsNominal() {
				head = j
			}
			j++
		}
		if head < 0 {
			i = j
			continue
		}
		groups = append(groups, group{start: i, end: head + 1, head: head})
		i = head + 1
	}
	return groups
}

func opensGroup(t analysis.Token) bool {
	return t.POS == analysis.Determiner || continuesGroup(t)
}

func continuesGroup(t analysis.Token) bool {
	switch t.POS {
	case analysis.Noun, analysis.ProperNoun, analysis.Adjective, analysis.Numeral:
		return true
	}
	return false
}

// assignDeps labels every token with a dependency relation.
func assignDeps(tokens []analysis.Token, groups []group, verb int) {
	for i := range tokens {
		switch tokens[i].POS {
		case analysis.Adposition:
			tokens[i].Dep = analysis.Prep
		case analysis.Auxiliary:
			tokens[i].Dep = analysis.Aux
		case analysis.Punctuation:
			tokens[i].Dep = analysis.Punct
		default:
			tokens[i].Dep = analysis.Dependent
		}
	}
	copula := verb >= 0 && tokens[verb].POS == analysis.Auxiliary
	if verb >= 0 {
		tokens[verb].Dep = analysis.Root
	}

	subjectDone, objectDone := false, false
	for gi, g := range groups {
		for k := g.start; k < g.head; k++ {
			tokens[k].Dep = modifierDep(tokens[k])
		}
		head := &tokens[g.head]
		governed := g.start > 0 && tokens[g.start-1].POS == analysis.Adposition
		switch {
		case governed:
			head.Dep = analysis.PrepObject
		case verb < 0:
			if gi == 0 {
				head.Dep = analysis.Root
			}
		case g.head < verb && !subjectDone:
			head.Dep = analysis.NominalSubject
			subjectDone = true
		case g.head > verb && !objectDone:
			if copula {
				head.Dep = "attr"
			} else {
				head.Dep = analysis.DirectObject
			}
			objectDone = true
		}
	}
}

func modifierDep(t analysis.Token) analysis.Dep {
	switch {
	case t.Tag == "PRP$":
		return analysis.Poss
	case t.POS == analysis.Determiner:
		return analysis.Det
	case t.POS == analysis.Numeral:
		return analysis.NumModifier
	case t.IsNominal():
		return analysis.Compound
	}
	return analysis.AdjModifier
}

func has(m map[string]struct{}, w string) bool {
	_, ok := m[w]
	return ok
}

func isNumber(w string) bool {
	hasDigit := false
	for _, r := range w {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case r == ',' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return hasDigit
}

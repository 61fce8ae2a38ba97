// Package analysis defines the boundary to the linguistic analyzer: the parse
// of a single sentence into tagged tokens, dependency roles and noun chunks.
package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/cognicore/churn/pkg/churn/internalerr"
)

// Language identifies the language of a sentence or corpus.
type Language string

const (
	English Language = "en"
	Dutch   Language = "nl"
)

// ParseLanguage validates a language code.
func ParseLanguage(code string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(code))) {
	case English:
		return English, nil
	case Dutch:
		return Dutch, nil
	}
	return "", fmt.Errorf("%w: %q", internalerr.ErrUnsupportedLanguage, code)
}

// POS is a coarse universal part-of-speech tag.
type POS string

const (
	Noun        POS = "NOUN"
	ProperNoun  POS = "PROPN"
	Pronoun     POS = "PRON"
	Verb        POS = "VERB"
	Auxiliary   POS = "AUX"
	Determiner  POS = "DET"
	Adjective   POS = "ADJ"
	Adverb      POS = "ADV"
	Adposition  POS = "ADP"
	Conjunction POS = "CCONJ"
	Numeral     POS = "NUM"
	Particle    POS = "PART"
	Punctuation POS = "PUNCT"
	Other       POS = "X"
)

// Dep is a dependency relation label.
type Dep string

const (
	NominalSubject Dep = "nsubj"
	DirectObject   Dep = "dobj"
	Object         Dep = "obj"
	PrepObject     Dep = "pobj"
	Root           Dep = "ROOT"
	Det            Dep = "det"
	Poss           Dep = "poss"
	Compound       Dep = "compound"
	AdjModifier    Dep = "amod"
	NumModifier    Dep = "nummod"
	Prep           Dep = "prep"
	Aux            Dep = "aux"
	Punct          Dep = "punct"
	Dependent      Dep = "dep"
)

// IsDirectObject reports whether d marks a direct object, in either the
// ClearNLP ("dobj") or Universal Dependencies ("obj") label set.
func (d Dep) IsDirectObject() bool { return d == DirectObject || d == Object }

// Token is a single analyzed word. Start and End are byte offsets into the
// analyzed sentence.
type Token struct {
	Text  string
	Start int
	End   int
	POS   POS
	Tag   string
	Morph string
	Dep   Dep
}

// Singular reports whether the token's morphological annotation marks
// singular number. Tokens without a number annotation are not singular.
func (t Token) Singular() bool {
	return strings.Contains(t.Tag, "Sing") || strings.Contains(t.Morph, "Number=Sing")
}

// IsNominal reports whether the token is a noun or proper noun.
func (t Token) IsNominal() bool {
	return t.POS == Noun || t.POS == ProperNoun
}

// Chunk is a base noun phrase. Root is the head token; Tokens are in order.
type Chunk struct {
	Start  int
	End    int
	Root   Token
	Tokens []Token
}

// Doc is the analysis of one sentence.
type Doc struct {
	Text   string
	Tokens []Token
	Chunks []Chunk
}

// Span returns the literal sentence text between two byte offsets.
func (d Doc) Span(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(d.Text) {
		end = len(d.Text)
	}
	if start >= end {
		return ""
	}
	return d.Text[start:end]
}

// ChunkText returns the literal text of a chunk. With dropDetPoss set, a
// leading determiner or possessive is left out ("the mouse" -> "mouse").
func (d Doc) ChunkText(c Chunk, dropDetPoss bool) string {
	start := c.Start
	if dropDetPoss && len(c.Tokens) > 1 {
		first := c.Tokens[0]
		if first.Dep == Det || first.Dep == Poss {
			start = c.Tokens[1].Start
		}
	}
	return d.Span(start, c.End)
}

// Target is the subject or object span chosen for substitution.
type Target struct {
	Text string
	Root Token
	Role Dep
}

// Analyzer parses one sentence at a time.
type Analyzer interface {
	Language() Language
	Analyze(ctx context.Context, sentence string) (Doc, error)
}

// Registry holds one analyzer per supported language.
type Registry struct {
	analyzers map[Language]Analyzer
}

// NewRegistry registers each analyzer under its own language. A later
// analyzer for the same language replaces an earlier one.
func NewRegistry(analyzers ...Analyzer) *Registry {
	r := &Registry{analyzers: make(map[Language]Analyzer, len(analyzers))}
	for _, a := range analyzers {
		if a != nil {
			r.analyzers[a.Language()] = a
		}
	}
	return r
}

// Select returns the analyzer for lang.
func (r *Registry) Select(lang Language) (Analyzer, error) {
	if r != nil {
		if a, ok := r.analyzers[lang]; ok {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: no analyzer for %q", internalerr.ErrUnsupportedLanguage, lang)
}

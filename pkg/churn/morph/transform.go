// Package morph matches the grammatical number of a replacement word to the
// word it replaces.
package morph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gertd/go-pluralize"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
)

// Transformer produces the singular and plural surface forms of a word.
type Transformer interface {
	Singular(word string) (string, error)
	Plural(word string) (string, error)
}

// ForLanguage returns the transformer for lang.
func ForLanguage(lang analysis.Language) (Transformer, error) {
	switch lang {
	case analysis.English:
		return NewEnglish(), nil
	case analysis.Dutch:
		return Dutch{}, nil
	}
	return nil, fmt.Errorf("%w: no transformer for %q", internalerr.ErrUnsupportedLanguage, lang)
}

// English inflects English nouns. For a phrase only the last word changes
// ("red ball" -> "red balls"); the original capitalization is kept.
type English struct {
	client *pluralize.Client
}

// NewEnglish creates an English transformer.
func NewEnglish() *English {
	return &English{client: pluralize.NewClient()}
}

// Singular implements Transformer.
func (e *English) Singular(word string) (string, error) {
	return inflectLast(word, e.client.Singular)
}

// Plural implements Transformer.
func (e *English) Plural(word string) (string, error) {
	return inflectLast(word, e.client.Plural)
}

// inflectLast applies fn to the last word of phrase. Words with digits or
// without letters are rejected.
func inflectLast(phrase string, fn func(string) string) (string, error) {
	phrase = strings.TrimSpace(phrase)
	prefix, last := "", phrase
	if i := strings.LastIndexAny(phrase, " \t"); i >= 0 {
		prefix, last = phrase[:i+1], phrase[i+1:]
	}
	if !inflectable(last) {
		return "", fmt.Errorf("%w: unsupported word form %q", internalerr.ErrConjugation, phrase)
	}
	return prefix + fn(last), nil
}

func inflectable(word string) bool {
	letters := 0
	for _, r := range word {
		switch {
		case unicode.IsLetter(r):
			letters++
		case r == '-' || r == '\'' || r == '’':
		default:
			return false
		}
	}
	return letters > 0
}

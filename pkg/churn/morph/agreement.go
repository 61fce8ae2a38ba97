package morph

import (
	"errors"
	"fmt"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
)

// Result is the outcome of a conjugation. On failure Err is set and Word is
// empty; callers fall back with Or.
type Result struct {
	Word string
	Err  error
}

// Or returns the conjugated word, or fallback when conjugation failed.
func (r Result) Or(fallback string) string {
	if r.Err != nil {
		return fallback
	}
	return r.Word
}

// Agreement conjugates replacement words to the grammatical number of a
// target.
type Agreement struct {
	lang analysis.Language
	tr   Transformer
}

// NewAgreement creates an agreement for lang using tr. Dutch targets carry a
// number tag from the analyzer; for English the number is guessed by
// singularizing the target text.
func NewAgreement(lang analysis.Language, tr Transformer) *Agreement {
	return &Agreement{lang: lang, tr: tr}
}

// AgreementFor returns an agreement backed by the built-in transformer for lang.
func AgreementFor(lang analysis.Language) (*Agreement, error) {
	tr, err := ForLanguage(lang)
	if err != nil {
		return nil, err
	}
	return NewAgreement(lang, tr), nil
}

// Language returns the language the agreement was built for.
func (a *Agreement) Language() analysis.Language { return a.lang }

// Conjugate returns replacement in the grammatical number of target.
func (a *Agreement) Conjugate(target analysis.Target, replacement string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Err: fmt.Errorf("%w: transformer panic: %v", internalerr.ErrConjugation, r)}
		}
	}()

	singular, err := a.isSingular(target)
	if err != nil {
		return wrap("", err)
	}
	if singular {
		word, err := a.tr.Singular(replacement)
		return wrap(word, err)
	}
	// pluralizers are not idempotent on plural input
	base, err := a.tr.Singular(replacement)
	if err != nil {
		return wrap("", err)
	}
	word, err := a.tr.Plural(base)
	return wrap(word, err)
}

func (a *Agreement) isSingular(target analysis.Target) (bool, error) {
	if a.lang != analysis.English {
		return target.Root.Singular(), nil
	}
	text := target.Text
	if text == "" {
		text = target.Root.Text
	}
	singular, err := a.tr.Singular(text)
	if err != nil {
		return false, err
	}
	return singular == text, nil
}

func wrap(word string, err error) Result {
	if err != nil {
		if !errors.Is(err, internalerr.ErrConjugation) {
			err = fmt.Errorf("%w: %v", internalerr.ErrConjugation, err)
		}
		return Result{Err: err}
	}
	return Result{Word: word}
}

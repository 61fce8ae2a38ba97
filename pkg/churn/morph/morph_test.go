package morph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
)

func TestEnglishTransformer(t *testing.T) {
	en := NewEnglish()

	tests := []struct {
		word     string
		singular string
		plural   string
	}{
		{"dog", "dog", "dogs"},
		{"mice", "mouse", "mice"},
		{"Dog", "Dog", "Dogs"},
		{"red ball", "red ball", "red balls"},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			got, err := en.Singular(tt.word)
			require.NoError(t, err)
			assert.Equal(t, tt.singular, got)

			got, err = en.Plural(tt.singular)
			require.NoError(t, err)
			assert.Equal(t, tt.plural, got)
		})
	}
}

func TestTransformerRejectsNonWords(t *testing.T) {
	for _, word := range []string{"2024", "", "  ", "G7"} {
		_, err := NewEnglish().Plural(word)
		assert.ErrorIs(t, err, internalerr.ErrConjugation, "word %q", word)
	}
}

func TestDutchTransformer(t *testing.T) {
	tests := []struct {
		singular string
		plural   string
	}{
		{"kat", "katten"},
		{"boom", "bomen"},
		{"baas", "bazen"},
		{"huis", "huizen"},
		{"brief", "brieven"},
		{"vrouw", "vrouwen"},
		{"ding", "dingen"},
		{"tafel", "tafels"},
		{"auto", "auto's"},
	}
	d := Dutch{}
	for _, tt := range tests {
		t.Run(tt.singular, func(t *testing.T) {
			got, err := d.Plural(tt.singular)
			require.NoError(t, err)
			assert.Equal(t, tt.plural, got)

			got, err = d.Singular(tt.plural)
			require.NoError(t, err)
			assert.Equal(t, tt.singular, got)

			got, err = d.Singular(tt.singular)
			require.NoError(t, err)
			assert.Equal(t, tt.singular, got, "singular input must stay singular")
		})
	}
}

func TestForLanguage(t *testing.T) {
	_, err := ForLanguage(analysis.English)
	require.NoError(t, err)
	_, err = ForLanguage(analysis.Dutch)
	require.NoError(t, err)
	_, err = ForLanguage("fr")
	assert.ErrorIs(t, err, internalerr.ErrUnsupportedLanguage)
}

func TestConjugateEnglish(t *testing.T) {
	agree, err := AgreementFor(analysis.English)
	require.NoError(t, err)

	tests := []struct {
		name        string
		target      string
		replacement string
		want        string
	}{
		{"singular target keeps singular", "mouse", "dog", "dog"},
		{"singular target singularizes", "mouse", "dogs", "dog"},
		{"plural target pluralizes", "mice", "dog", "dogs"},
		{"plural target keeps plural", "cats", "dogs", "dogs"},
		{"irregular replacement", "cats", "mouse", "mice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := agree.Conjugate(analysis.Target{Text: tt.target}, tt.replacement)
			require.NoError(t, res.Err)
			assert.Equal(t, tt.want, res.Word)
		})
	}
}

func TestConjugateDutchUsesTag(t *testing.T) {
	agree := NewAgreement(analysis.Dutch, Dutch{})

	sing := analysis.Target{Text: "muis", Root: analysis.Token{Text: "muis", Morph: "Number=Sing"}}
	res := agree.Conjugate(sing, "katten")
	require.NoError(t, res.Err)
	assert.Equal(t, "kat", res.Word)

	// no number annotation counts as plural
	plur := analysis.Target{Text: "muizen", Root: analysis.Token{Text: "muizen"}}
	res = agree.Conjugate(plur, "kat")
	require.NoError(t, res.Err)
	assert.Equal(t, "katten", res.Word)
}

type failing struct{ panics bool }

func (f failing) Singular(word string) (string, error) {
	if f.panics {
		panic("boom")
	}
	return "", errors.New("no rule")
}

func (f failing) Plural(word string) (string, error) { return f.Singular(word) }

func TestConjugateFailureFallsBack(t *testing.T) {
	for _, tr := range []Transformer{failing{}, failing{panics: true}} {
		agree := NewAgreement(analysis.English, tr)
		res := agree.Conjugate(analysis.Target{Text: "mice"}, "dog")
		assert.ErrorIs(t, res.Err, internalerr.ErrConjugation)
		assert.Equal(t, "dog", res.Or("dog"))
	}
}

func TestResultOr(t *testing.T) {
	assert.Equal(t, "dogs", Result{Word: "dogs"}.Or("dog"))
	assert.Equal(t, "dog", Result{Err: internalerr.ErrConjugation}.Or("dog"))
}

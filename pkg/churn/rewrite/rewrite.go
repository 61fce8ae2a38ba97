// Package rewrite substitutes a located target inside a headline.
package rewrite

import (
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/morph"
)

// Conjugator matches a replacement to the number of a target.
type Conjugator interface {
	Conjugate(target analysis.Target, replacement string) morph.Result
}

// Substitutor replaces targets with conjugated seed words.
type Substitutor struct {
	agree  Conjugator
	logger *slog.Logger
}

// New creates a substitutor. A nil logger uses slog.Default().
func New(agree Conjugator, logger *slog.Logger) *Substitutor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Substitutor{agree: agree, logger: logger}
}

// Substitute conjugates word against target and replaces the first literal
// occurrence of the target text in headline. When the target text does not
// occur, headline is returned unchanged. A failed conjugation is logged and
// the word is used as given.
func (s *Substitutor) Substitute(headline, word string, target analysis.Target) string {
	if target.Text == "" || !strings.Contains(headline, target.Text) {
		return headline
	}
	res := s.agree.Conjugate(target, word)
	if res.Err != nil {
		s.logger.Warn("conjugation failed, using word as given",
			"word", word, "target", target.Text, "error", res.Err)
	}
	return strings.Replace(headline, target.Text, res.Or(word), 1)
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

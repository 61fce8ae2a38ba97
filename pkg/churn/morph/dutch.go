package morph

import (
	"strings"
)

// Dutch inflects Dutch nouns with the regular spelling rules: -en with vowel
// and consonant adjustment, -s after unstressed endings, -'s after a final
// vowel. Irregular plurals (kind/kinderen, stad/steden) are not covered, and
// singular nouns ending in -en are read as plurals.
type Dutch struct{}

var sEndings = []string{"el", "em", "en", "er", "je", "e"}

// Plural implements Transformer.
func (Dutch) Plural(word string) (string, error) {
	return inflectLast(word, dutchPlural)
}

// Singular implements Transformer.
func (Dutch) Singular(word string) (string, error) {
	return inflectLast(word, dutchSingular)
}

func dutchPlural(w string) string {
	lw := strings.ToLower(w)
	if len(lw) != len(w) {
		w = lw
	}
	n := len(lw)
	switch {
	case n < 2 || strings.HasSuffix(lw, "'s"):
		return w
	case hasAnySuffix(lw, sEndings):
		return w + "s"
	case isVowel(lw[n-1]):
		return w + "'s"
	}

	last, prev := lw[n-1], lw[n-2]
	stem := w
	switch {
	case !isVowel(prev):
		// ding -> dingen
	case n >= 3 && lw[n-3] == prev && isLong(prev):
		// boom -> bomen, baas -> bazen
		stem = voice(w[:n-2] + w[n-1:])
	case n >= 3 && isVowel(lw[n-3]):
		// diphthong: brief -> brieven, huis -> huizen
		stem = voice(w)
	case last != 'w' && last != 'x':
		// short vowel: kat -> katten
		stem = w + w[n-1:]
	}
	return stem + "en"
}

func dutchSingular(w string) string {
	lw := strings.ToLower(w)
	if len(lw) != len(w) {
		w = lw
	}
	n := len(lw)
	switch {
	case strings.HasSuffix(lw, "'s"):
		return w[:n-2]
	case n >= 4 && strings.HasSuffix(lw, "s") && hasAnySuffix(lw[:n-1], sEndings):
		return w[:n-1]
	case n < 4 || !strings.HasSuffix(lw, "en"):
		return w
	}

	stem, ls := w[:n-2], lw[:n-2]
	m := len(ls)
	last, prev := ls[m-1], ls[m-2]
	switch {
	case last == prev && !isVowel(last):
		// katten -> kat
		return stem[:m-1]
	case !isVowel(prev) || isVowel(last):
		return stem
	case m >= 3 && isVowel(ls[m-3]):
		// brieven -> brief, huizen -> huis
		return devoice(stem)
	case isLong(prev) && last != 'w':
		// bomen -> boom, bazen -> baas
		return devoice(stem[:m-1] + stem[m-2:])
	}
	return stem
}

// voice turns a final f or s into v or z before -en.
func voice(s string) string {
	switch s[len(s)-1] {
	case 'f':
		return s[:len(s)-1] + "v"
	case 's':
		return s[:len(s)-1] + "z"
	}
	return s
}

func devoice(s string) string {
	switch s[len(s)-1] {
	case 'v':
		return s[:len(s)-1] + "f"
	case 'z':
		return s[:len(s)-1] + "s"
	}
	return s
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// isLong reports whether a vowel letter is doubled in closed syllables.
func isLong(b byte) bool {
	switch b {
	case 'a', 'e', 'o', 'u':
		return true
	}
	return false
}

func hasAnySuffix(w string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(w, s) {
			return true
		}
	}
	return false
}

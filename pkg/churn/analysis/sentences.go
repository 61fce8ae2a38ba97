package analysis

import (
	"regexp"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

var reParagraph = regexp.MustCompile(`\r?\n\s*\r?\n`)

// punkt loads the trained English Punkt parameters once per process.
var punkt = sync.OnceValues(func() (*sentences.DefaultSentenceTokenizer, error) {
	return english.NewSentenceTokenizer(nil)
})

// SplitSentences splits free text into sentences with a Punkt tokenizer, so
// abbreviations ("Dr.") and initials ("U.S.") do not end a sentence.
// Paragraph breaks always end one.
func SplitSentences(text string) []string {
	tokenizer, err := punkt()
	var out []string
	for _, para := range reParagraph.Split(text, -1) {
		para = strings.Join(strings.Fields(para), " ")
		if para == "" {
			continue
		}
		if err != nil {
			out = append(out, para)
			continue
		}
		for _, s := range tokenizer.Tokenize(para) {
			if t := strings.TrimSpace(s.Text); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

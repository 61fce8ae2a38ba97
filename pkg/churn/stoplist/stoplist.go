// Package stoplist holds the words that never become seed-word roots.
package stoplist

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source records where a stopword came from.
type Source string

const (
	Builtin Source = "builtin"
	Config  Source = "config"
	Curated Source = "curated"
)

// Manager is a case-insensitive stopword set. It is not safe for concurrent
// mutation.
type Manager struct {
	stops map[string]Source
}

// NewManager creates a manager seeded with initialStops.
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]Source, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s, Builtin)
	}
	return m
}

// IsStop checks if a token is a stopword.
func (m *Manager) IsStop(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.stops[normalize(token)]
	return ok
}

// Add adds a token with its source. Blank tokens are ignored.
func (m *Manager) Add(token string, src Source) {
	if t := normalize(token); t != "" {
		m.stops[t] = src
	}
}

// Remove removes a token from the stoplist.
func (m *Manager) Remove(token string) {
	delete(m.stops, normalize(token))
}

// SourceOf returns where token was added from.
func (m *Manager) SourceOf(token string) (Source, bool) {
	src, ok := m.stops[normalize(token)]
	return src, ok
}

// All returns all stopwords, sorted.
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

func normalize(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

// File is the YAML layout of a stoplist file.
type File struct {
	Terms []string `yaml:"terms"`
}

// LoadFile reads a YAML stoplist file into m, marking its terms as Config.
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse stoplist %s: %w", path, err)
	}
	for _, t := range f.Terms {
		m.Add(t, Config)
	}
	return nil
}

// English returns a manager with the built-in English stopwords.
func English() *Manager {
	return NewManager(englishStops)
}

// Dutch returns a manager with the built-in Dutch stopwords.
func Dutch() *Manager {
	return NewManager(dutchStops)
}

// function words plus the vague nouns that head chunks like "something new"
var englishStops = []string{
	"a", "about", "above", "after", "again", "against", "all", "amount", "an", "and",
	"another", "any", "anyone", "anything", "are", "as", "at", "back", "be", "because",
	"been", "before", "being", "below", "between", "both", "bottom", "but", "by", "can",
	"could", "did", "do", "does", "down", "during", "each", "eight", "eleven", "else",
	"elsewhere", "everyone", "everything", "few", "fifteen", "fifty", "first", "five",
	"for", "forty", "four", "from", "front", "full", "further", "had", "has", "have",
	"he", "her", "here", "hers", "him", "his", "how", "hundred", "i", "if", "in", "into",
	"is", "it", "its", "last", "least", "less", "lot", "lots", "many", "me", "more",
	"most", "much", "my", "name", "next", "nine", "no", "nobody", "none", "noone",
	"nor", "not", "nothing", "now", "of", "off", "on", "once", "one", "only", "or",
	"other", "others", "our", "out", "over", "own", "part", "per", "rest", "same",
	"several", "she", "should", "side", "six", "sixty", "so", "some", "someone",
	"something", "such", "ten", "than", "that", "the", "their", "them", "then", "there",
	"these", "they", "thing", "things", "third", "this", "those", "three", "through",
	"to", "too", "top", "twelve", "twenty", "two", "under", "until", "up", "us", "very",
	"was", "way", "we", "were", "what", "when", "where", "which", "while", "who", "whom",
	"whose", "why", "will", "with", "would", "yet", "you", "your",
}

var dutchStops = []string{
	"aan", "al", "alles", "als", "altijd", "ander", "andere", "ben", "bij", "daar",
	"dan", "dat", "de", "der", "deze", "die", "dit", "doch", "doen", "door", "dus",
	"een", "eens", "en", "er", "ge", "geen", "geweest", "haar", "had", "heb", "hebben",
	"heeft", "hem", "het", "hier", "hij", "hoe", "hun", "iemand", "iets", "ik", "in",
	"is", "ja", "je", "kan", "kon", "kunnen", "maar", "me", "meer", "men", "met", "mij",
	"mijn", "moet", "na", "naar", "niet", "niets", "nog", "nu", "of", "om", "omdat",
	"onder", "ons", "ook", "op", "over", "reeds", "te", "tegen", "toch", "toen", "tot",
	"u", "uit", "uw", "van", "veel", "voor", "want", "waren", "was", "wat", "we", "wel",
	"werd", "wezen", "wie", "wij", "wil", "worden", "zal", "ze", "zelf", "zich", "zij",
	"zijn", "zo", "zonder", "zou",
}

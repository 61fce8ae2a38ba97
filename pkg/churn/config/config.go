// Package config loads the YAML configuration and builds the runtime
// components it names.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/blacklist"
	"github.com/cognicore/churn/pkg/churn/internalerr"
)

// Corpus formats.
const (
	FormatText   = "text"
	FormatJSONL  = "jsonl"
	FormatSQLite = "sqlite"
)

// Analyzer kinds.
const (
	AnalyzerHeuristic = "heuristic"
	AnalyzerRemote    = "remote"
)

// Config is the top-level configuration.
type Config struct {
	Language     string   `yaml:"language" mapstructure:"language"`
	Corpus       Corpus   `yaml:"corpus" mapstructure:"corpus"`
	StashSize    int      `yaml:"stash_size" mapstructure:"stash_size"`
	SubjectOneIn int      `yaml:"subject_one_in" mapstructure:"subject_one_in"`
	MaxAttempts  int      `yaml:"max_attempts" mapstructure:"max_attempts"` // 0 = no cap
	Blacklist    []string `yaml:"blacklist" mapstructure:"blacklist"`
	Stopwords    []string `yaml:"stopwords" mapstructure:"stopwords"`
	StoplistPath string   `yaml:"stoplist_path" mapstructure:"stoplist_path"`
	Analyzer     Analyzer `yaml:"analyzer" mapstructure:"analyzer"`
	Archive      string   `yaml:"archive" mapstructure:"archive"`
}

// Corpus locates the template headlines.
type Corpus struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Analyzer selects the linguistic analyzer.
type Analyzer struct {
	Kind     string        `yaml:"kind" mapstructure:"kind"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// Default returns the built-in configuration. Corpus.Path is left empty.
func Default() Config {
	return Config{
		Language:     string(analysis.English),
		Corpus:       Corpus{Format: FormatText},
		StashSize:    10,
		SubjectOneIn: 10,
		MaxAttempts:  1000,
		Blacklist:    blacklist.DefaultTerms(),
		Analyzer:     Analyzer{Kind: AnalyzerHeuristic, Timeout: 15 * time.Second},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %v", internalerr.ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field values and cross-field constraints.
func (c Config) Validate() error {
	if err := c.ValidateAnalysis(); err != nil {
		return err
	}
	switch {
	case c.Corpus.Path == "":
		return invalid("corpus.path is required")
	case c.StashSize <= 0:
		return invalid("stash_size must be positive, got %d", c.StashSize)
	case c.SubjectOneIn <= 0:
		return invalid("subject_one_in must be positive, got %d", c.SubjectOneIn)
	case c.MaxAttempts < 0:
		return invalid("max_attempts must not be negative, got %d", c.MaxAttempts)
	}

	switch c.Corpus.Format {
	case FormatText, FormatJSONL, FormatSQLite:
	default:
		return invalid("corpus.format %q", c.Corpus.Format)
	}
	return nil
}

// ValidateAnalysis checks only what text analysis needs: the language and
// the analyzer. Seed extraction and stopword tuning never read the corpus.
func (c Config) ValidateAnalysis() error {
	lang, err := analysis.ParseLanguage(c.Language)
	if err != nil {
		return invalid("language %q", c.Language)
	}
	switch c.Analyzer.Kind {
	case AnalyzerHeuristic:
		if lang != analysis.English {
			return invalid("the heuristic analyzer only supports %q", analysis.English)
		}
	case AnalyzerRemote:
		if c.Analyzer.Endpoint == "" {
			return invalid("analyzer.endpoint is required for the remote analyzer")
		}
	default:
		return invalid("analyzer.kind %q", c.Analyzer.Kind)
	}
	return nil
}

// Lang returns the parsed language. Call after Validate.
func (c Config) Lang() analysis.Language {
	lang, _ := analysis.ParseLanguage(c.Language)
	return lang
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

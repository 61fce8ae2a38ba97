// Package churn generates synthetic news headlines: it swaps the object (and
// now and then the subject) of a template headline for a seed word taken
// from a source text or a curated list, then drops results that contain a
// blacklisted term.
package churn

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/analysis/heuristic"
	"github.com/cognicore/churn/pkg/churn/blacklist"
	"github.com/cognicore/churn/pkg/churn/corpus"
	"github.com/cognicore/churn/pkg/churn/internalerr"
	"github.com/cognicore/churn/pkg/churn/locate"
	"github.com/cognicore/churn/pkg/churn/morph"
	"github.com/cognicore/churn/pkg/churn/rewrite"
	"github.com/cognicore/churn/pkg/churn/seeds"
	"github.com/cognicore/churn/pkg/churn/stash"
	"github.com/cognicore/churn/pkg/churn/stoplist"
	"github.com/cognicore/churn/pkg/churn/store"
)

// Errors callers can test for with errors.Is.
var (
	ErrInvalidInput        = internalerr.ErrInvalidInput
	ErrCorpusUnavailable   = internalerr.ErrCorpusUnavailable
	ErrTargetNotFound      = internalerr.ErrTargetNotFound
	ErrBlacklisted         = internalerr.ErrBlacklisted
	ErrUnsupportedLanguage = internalerr.ErrUnsupportedLanguage
	ErrInvalidConfig       = internalerr.ErrInvalidConfig
)

const (
	DefaultStashSize    = stash.DefaultSize
	DefaultSubjectOneIn = 10
	DefaultMaxAttempts  = 1000
)

// Rand is the random source for seed draws, stash sampling and the subject
// swap.
type Rand interface {
	IntN(n int) int
}

// Options configures an Engine. Only Corpus is required.
type Options struct {
	// Analyzer is used when set; otherwise one is selected from Analyzers
	// for Language. English falls back to the built-in heuristic analyzer.
	Analyzer  analysis.Analyzer
	Analyzers *analysis.Registry
	Language  analysis.Language

	Corpus corpus.Source

	// Blacklist nil means blacklist.DefaultTerms(); an empty non-nil slice
	// disables filtering.
	Blacklist   []string
	Stopwords   *stoplist.Manager
	Transformer morph.Transformer

	StashSize    int
	SubjectOneIn int
	// MaxAttempts caps the templates tried per headline when looking for an
	// object. Zero means DefaultMaxAttempts, negative means no cap.
	MaxAttempts int

	// Rand is shared by every session when set; otherwise each session gets
	// its own source.
	Rand    Rand
	Logger  *slog.Logger
	Archive store.Store
	// OnSkip is called with ErrBlacklisted or ErrTargetNotFound, wrapped
	// with details, whenever an iteration yields nothing.
	OnSkip func(err error)
}

// Engine holds the per-language collaborators shared by sessions.
type Engine struct {
	lang         analysis.Language
	analyzer     analysis.Analyzer
	locator      *locate.Locator
	substitutor  *rewrite.Substitutor
	filter       *blacklist.Filter
	stops        *stoplist.Manager
	corpus       corpus.Source
	stashSize    int
	subjectOneIn int
	maxAttempts  int
	rng          Rand
	logger       *slog.Logger
	archive      store.Store
	onSkip       func(error)
}

// New validates opts and builds an engine. The analyzer and transformer are
// chosen here, once, for the configured language.
func New(opts Options) (*Engine, error) {
	if opts.Language == "" {
		opts.Language = analysis.English
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Corpus == nil {
		return nil, fmt.Errorf("%w: corpus required", internalerr.ErrInvalidConfig)
	}
	if opts.StashSize < 0 || opts.SubjectOneIn < 0 {
		return nil, fmt.Errorf("%w: stash size and subject rate must not be negative", internalerr.ErrInvalidConfig)
	}
	if opts.StashSize == 0 {
		opts.StashSize = DefaultStashSize
	}
	if opts.SubjectOneIn == 0 {
		opts.SubjectOneIn = DefaultSubjectOneIn
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.Blacklist == nil {
		opts.Blacklist = blacklist.DefaultTerms()
	}

	analyzer, err := selectAnalyzer(opts)
	if err != nil {
		return nil, err
	}
	var agree *morph.Agreement
	if opts.Transformer != nil {
		agree = morph.NewAgreement(opts.Language, opts.Transformer)
	} else if agree, err = morph.AgreementFor(opts.Language); err != nil {
		return nil, err
	}
	stops := opts.Stopwords
	if stops == nil {
		stops = defaultStops(opts.Language)
	}

	return &Engine{
		lang:         opts.Language,
		analyzer:     analyzer,
		locator:      locate.New(analyzer),
		substitutor:  rewrite.New(agree, opts.Logger),
		filter:       blacklist.New(opts.Blacklist),
		stops:        stops,
		corpus:       opts.Corpus,
		stashSize:    opts.StashSize,
		subjectOneIn: opts.SubjectOneIn,
		maxAttempts:  opts.MaxAttempts,
		rng:          opts.Rand,
		logger:       opts.Logger,
		archive:      opts.Archive,
		onSkip:       opts.OnSkip,
	}, nil
}

func selectAnalyzer(opts Options) (analysis.Analyzer, error) {
	a := opts.Analyzer
	if a == nil && opts.Analyzers != nil {
		var err error
		if a, err = opts.Analyzers.Select(opts.Language); err != nil {
			return nil, err
		}
	}
	if a == nil {
		if opts.Language != analysis.English {
			return nil, fmt.Errorf("%w: no analyzer for %q", internalerr.ErrUnsupportedLanguage, opts.Language)
		}
		a = heuristic.New()
	}
	if a.Language() != opts.Language {
		return nil, fmt.Errorf("%w: analyzer is for %q, engine for %q",
			internalerr.ErrUnsupportedLanguage, a.Language(), opts.Language)
	}
	return a, nil
}

func defaultStops(lang analysis.Language) *stoplist.Manager {
	if lang == analysis.Dutch {
		return stoplist.Dutch()
	}
	return stoplist.English()
}

// Language returns the engine's language.
func (e *Engine) Language() analysis.Language { return e.lang }

// Blacklist returns the active forbidden terms.
func (e *Engine) Blacklist() []string { return e.filter.Terms() }

// Extract groups the noun chunks of text by root noun, for curation or for
// a static session.
func (e *Engine) Extract(ctx context.Context, text string) (*seeds.Groups, error) {
	return seeds.Extract(ctx, e.analyzer, text, e.stops)
}

// SuggestStopwords extracts the seed roots of each text and returns the
// roots common enough across them to be worth curating away.
func (e *Engine) SuggestStopwords(ctx context.Context, texts []string, th stoplist.Thresholds) ([]stoplist.Candidate, error) {
	return SuggestStopwords(ctx, e.analyzer, e.stops, texts, th)
}

// SuggestStopwords is the engine-free form of Engine.SuggestStopwords. It
// needs only an analyzer and the current stoplist, no corpus.
func SuggestStopwords(ctx context.Context, a analysis.Analyzer, stops *stoplist.Manager, texts []string, th stoplist.Thresholds) ([]stoplist.Candidate, error) {
	docs := make([][]string, 0, len(texts))
	for _, text := range texts {
		groups, err := seeds.Extract(ctx, a, text, stops)
		if err != nil {
			return nil, err
		}
		docs = append(docs, groups.Keys())
	}
	return stops.SuggestCandidates(stoplist.CountRoots(docs), len(texts), th), nil
}

func (e *Engine) newRand() Rand {
	if e.rng != nil {
		return e.rng
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (e *Engine) skipped(err error) {
	if e.onSkip != nil {
		e.onSkip(err)
	}
}

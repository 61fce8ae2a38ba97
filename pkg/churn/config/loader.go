package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cognicore/churn/pkg/churn"
	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/analysis/heuristic"
	"github.com/cognicore/churn/pkg/churn/analysis/remote"
	"github.com/cognicore/churn/pkg/churn/corpus"
	"github.com/cognicore/churn/pkg/churn/stoplist"
	"github.com/cognicore/churn/pkg/churn/store"
	"github.com/cognicore/churn/pkg/churn/store/sqlite"
)

// Loader constructs the components a Config names.
type Loader struct {
	Config Config
	Logger *slog.Logger
}

// Components holds the constructed components. Close releases the stores.
type Components struct {
	Analyzer  analysis.Analyzer
	Corpus    corpus.Source
	Stopwords *stoplist.Manager
	// Store backs a sqlite corpus; Archive receives generated headlines.
	// Both may be the same database.
	Store   store.Store
	Archive store.Store
}

// Load validates the configuration and builds its components.
func (l *Loader) Load(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lang := cfg.Lang()
	comp := &Components{Analyzer: l.analyzer(lang)}

	if cfg.Corpus.Format == FormatSQLite {
		st, err := sqlite.OpenSQLite(ctx, cfg.Corpus.Path)
		if err != nil {
			return nil, fmt.Errorf("open corpus store: %w", err)
		}
		comp.Store = st
		comp.Corpus = corpus.FromStore(st, lang)
	} else {
		src, err := corpus.Open(cfg.Corpus.Path, corpus.Format(cfg.Corpus.Format), l.Logger)
		if err != nil {
			return nil, err
		}
		comp.Corpus = src
	}

	if cfg.Archive != "" {
		if comp.Store != nil && cfg.Archive == cfg.Corpus.Path {
			comp.Archive = comp.Store
		} else {
			st, err := sqlite.OpenSQLite(ctx, cfg.Archive)
			if err != nil {
				comp.Close()
				return nil, fmt.Errorf("open archive: %w", err)
			}
			comp.Archive = st
		}
	}

	stops, err := l.stopwords(ctx, lang, comp)
	if err != nil {
		comp.Close()
		return nil, err
	}
	comp.Stopwords = stops
	return comp, nil
}

// LoadAnalysis builds only the analyzer and the stoplist, plus the archive
// when one is configured so its curated stopwords apply. The corpus is
// neither required nor opened.
func (l *Loader) LoadAnalysis(ctx context.Context) (*Components, error) {
	cfg := l.Config
	if err := cfg.ValidateAnalysis(); err != nil {
		return nil, err
	}
	lang := cfg.Lang()
	comp := &Components{Analyzer: l.analyzer(lang)}
	if cfg.Archive != "" {
		st, err := sqlite.OpenSQLite(ctx, cfg.Archive)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
		comp.Archive = st
	}
	stops, err := l.stopwords(ctx, lang, comp)
	if err != nil {
		comp.Close()
		return nil, err
	}
	comp.Stopwords = stops
	return comp, nil
}

func (l *Loader) analyzer(lang analysis.Language) analysis.Analyzer {
	if l.Config.Analyzer.Kind == AnalyzerRemote {
		return &remote.Client{
			BaseURL:    l.Config.Analyzer.Endpoint,
			Lang:       lang,
			HTTPClient: &http.Client{Timeout: l.Config.Analyzer.Timeout},
		}
	}
	return heuristic.New()
}

// stopwords merges the built-in list, the config file entries, the YAML
// stoplist file and the curated words kept in the store.
func (l *Loader) stopwords(ctx context.Context, lang analysis.Language, comp *Components) (*stoplist.Manager, error) {
	mgr := stoplist.English()
	if lang == analysis.Dutch {
		mgr = stoplist.Dutch()
	}
	for _, w := range l.Config.Stopwords {
		mgr.Add(w, stoplist.Config)
	}
	if l.Config.StoplistPath != "" {
		if err := mgr.LoadFile(l.Config.StoplistPath); err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
	}
	for _, st := range []store.Store{comp.Store, comp.Archive} {
		if st == nil {
			continue
		}
		curated, err := st.Stoplist(ctx, lang)
		if err != nil {
			return nil, fmt.Errorf("load curated stopwords: %w", err)
		}
		for _, w := range curated {
			mgr.Add(w, stoplist.Curated)
		}
	}
	return mgr, nil
}

// Options maps the configuration and components onto engine options.
func (l *Loader) Options(comp *Components) churn.Options {
	cfg := l.Config
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = -1
	}
	blacklist := cfg.Blacklist
	if blacklist == nil {
		blacklist = []string{}
	}
	return churn.Options{
		Analyzer:     comp.Analyzer,
		Language:     cfg.Lang(),
		Corpus:       comp.Corpus,
		Blacklist:    blacklist,
		Stopwords:    comp.Stopwords,
		StashSize:    cfg.StashSize,
		SubjectOneIn: cfg.SubjectOneIn,
		MaxAttempts:  maxAttempts,
		Logger:       l.Logger,
		Archive:      comp.Archive,
	}
}

// Close closes the stores once each.
func (c *Components) Close() error {
	var errs []error
	if c.Store != nil {
		errs = append(errs, c.Store.Close())
	}
	if c.Archive != nil && c.Archive != c.Store {
		errs = append(errs, c.Archive.Close())
	}
	return errors.Join(errs...)
}

package churn

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"time"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
	"github.com/cognicore/churn/pkg/churn/seeds"
	"github.com/cognicore/churn/pkg/churn/stash"
	"github.com/cognicore/churn/pkg/churn/store"
)

// Session owns one seed pool and one stash for the lifetime of a generation
// request. It is not safe for concurrent use.
type Session struct {
	ID string

	engine *Engine
	groups *seeds.Groups
	pool   seeds.Pool
	stash  *stash.Stash
	rng    Rand
	logger *slog.Logger
}

// NewSession starts a session over pool and draws the initial stash. An
// empty pool is rejected with ErrInvalidInput.
func (e *Engine) NewSession(ctx context.Context, pool seeds.Pool) (*Session, error) {
	if pool.Len() == 0 {
		return nil, fmt.Errorf("%w: seed pool is empty", internalerr.ErrInvalidInput)
	}
	id := store.NewID()
	rng := e.newRand()
	logger := e.logger.With("session", id)

	st, err := stash.New(ctx, e.corpus, e.stashSize, stash.Options{Rand: rng, Logger: logger})
	if err != nil {
		return nil, err
	}
	logger.Debug("session started", "seeds", pool.Len(), "stash", st.Len())
	return &Session{ID: id, engine: e, pool: pool, stash: st, rng: rng, logger: logger}, nil
}

// SessionFromText extracts seed words from text and starts a session over
// all of them.
func (e *Engine) SessionFromText(ctx context.Context, text string) (*Session, error) {
	groups, err := e.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	s, err := e.NewSession(ctx, groups.Pool())
	if err != nil {
		return nil, err
	}
	s.groups = groups
	return s, nil
}

// SessionFromApproved starts a session over curated words: the approved
// variants followed by manual entries. Blank entries are dropped.
func (e *Engine) SessionFromApproved(ctx context.Context, approved, manual []string) (*Session, error) {
	return e.NewSession(ctx, seeds.Merge(approved, manual))
}

// Groups returns the extracted seed groups, or nil for a curated session.
func (s *Session) Groups() *seeds.Groups { return s.groups }

// Pool returns the session's seed pool.
func (s *Session) Pool() seeds.Pool { return s.pool }

// Generate returns a lazy sequence of at most n headlines. Each pull runs one
// iteration: draw a seed, find a template with an object, substitute, maybe
// swap the subject too, and filter. A blacklisted iteration, or one that
// runs out of attempts to find an object, yields nothing, so fewer than n
// headlines is a normal outcome.
//
// The sequence can be ranged over once. A fatal error (unreadable corpus,
// analyzer failure, cancelled context) is yielded once with an empty
// headline and ends the sequence. Generate itself fails only for n < 0.
func (s *Session) Generate(ctx context.Context, n int) (iter.Seq2[string, error], error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: generate count must not be negative, got %d", internalerr.ErrInvalidInput, n)
	}
	used := false
	return func(yield func(string, error) bool) {
		if used {
			return
		}
		used = true
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			headline, ok, err := s.next(ctx)
			if err != nil {
				yield("", err)
				return
			}
			if !ok {
				continue
			}
			if !yield(headline, nil) {
				return
			}
		}
	}, nil
}

// Collect drains Generate. On a fatal error the headlines produced so far
// are returned with it.
func (s *Session) Collect(ctx context.Context, n int) ([]string, error) {
	seq, err := s.Generate(ctx, n)
	if err != nil {
		return nil, err
	}
	var out []string
	for headline, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, headline)
	}
	return out, nil
}

// next runs one iteration. ok is false when the iteration was skipped.
func (s *Session) next(ctx context.Context) (headline string, ok bool, err error) {
	e := s.engine
	seed := s.pool.Draw(s.rng)
	s.logger.Debug("seed drawn", "seed", seed)

	template, target, found, err := s.locateObject(ctx)
	if err != nil {
		return "", false, err
	}
	if !found {
		skip := fmt.Errorf("%w: no object in %d templates", internalerr.ErrTargetNotFound, e.maxAttempts)
		s.logger.Warn("skipping iteration", "error", skip)
		e.skipped(skip)
		return "", false, nil
	}

	headline = e.substitutor.Substitute(template, seed, target)
	if s.rng.IntN(e.subjectOneIn) == e.subjectOneIn-1 {
		headline = s.swapSubject(ctx, headline)
	}

	if v := e.filter.Check(headline); v.Blocked {
		skip := fmt.Errorf("%w: %q matched %v", internalerr.ErrBlacklisted, headline, v.Matched)
		s.logger.Warn("skipping iteration", "error", skip)
		e.skipped(skip)
		return "", false, nil
	}

	s.archive(ctx, headline, template, seed)
	return headline, true, nil
}

// locateObject pops templates until one has a direct object or the attempt
// cap is reached.
func (s *Session) locateObject(ctx context.Context) (string, analysis.Target, bool, error) {
	limit := s.engine.maxAttempts
	for attempt := 0; limit < 0 || attempt < limit; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", analysis.Target{}, false, err
		}
		template, err := s.stash.Take(ctx)
		if err != nil {
			return "", analysis.Target{}, false, err
		}
		target, found, err := s.engine.locator.FindObject(ctx, template)
		if err != nil {
			return "", analysis.Target{}, false, err
		}
		if found {
			s.logger.Debug("object located", "template", template, "object", target.Text)
			return template, target, true, nil
		}
	}
	return "", analysis.Target{}, false, nil
}

// swapSubject substitutes the subject with a second seed word. Any failure
// keeps headline as it is.
func (s *Session) swapSubject(ctx context.Context, headline string) string {
	seed := s.pool.Draw(s.rng)
	target, found, err := s.engine.locator.FindSubject(ctx, headline)
	if err != nil {
		s.logger.Warn("subject swap failed", "error", err)
		return headline
	}
	if !found {
		return headline
	}
	return strings.TrimSpace(s.engine.substitutor.Substitute(headline, seed, target))
}

func (s *Session) archive(ctx context.Context, headline, template, seed string) {
	if s.engine.archive == nil {
		return
	}
	err := s.engine.archive.SaveGenerated(ctx, store.Generated{
		SessionID: s.ID,
		Language:  s.engine.lang,
		Text:      headline,
		Template:  template,
		Seed:      seed,
		CreatedAt: time.Now(),
	})
	if err != nil {
		s.logger.Warn("archive failed", "error", err)
	}
}

// Package stash keeps the session-local buffer of template headlines.
package stash

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/cognicore/churn/pkg/churn/corpus"
	"github.com/cognicore/churn/pkg/churn/internalerr"
)

const (
	// DefaultSize is the number of headlines drawn per refill.
	DefaultSize = 10
	// WarnSize is the size above which a refill is logged as suspicious.
	WarnSize = 5000
)

// Rand is the random source used for sampling.
type Rand interface {
	IntN(n int) int
}

// Options configure a stash.
type Options struct {
	Rand   Rand
	Logger *slog.Logger
}

// Stash is a last-in-first-out buffer refilled from the corpus when empty.
// It is not safe for concurrent use.
type Stash struct {
	src     corpus.Source
	size    int
	rng     Rand
	logger  *slog.Logger
	items   []string
	refills int
}

// New draws the initial stash of size headlines.
func New(ctx context.Context, src corpus.Source, size int, opts Options) (*Stash, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: stash size must be positive, got %d", internalerr.ErrInvalidInput, size)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if size > WarnSize {
		opts.Logger.Warn("large stash size", "size", size, "threshold", WarnSize)
	}
	s := &Stash{src: src, size: size, rng: opts.Rand, logger: opts.Logger}
	if err := s.refill(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Take removes and returns the last headline, refilling first when empty.
func (s *Stash) Take(ctx context.Context) (string, error) {
	if len(s.items) == 0 {
		if err := s.refill(ctx); err != nil {
			return "", err
		}
	}
	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return last, nil
}

// Len returns the number of headlines left before the next refill.
func (s *Stash) Len() int { return len(s.items) }

// Refills returns how many times the stash was filled, the initial draw
// included.
func (s *Stash) Refills() int { return s.refills }

// refill samples size headlines uniformly with replacement.
func (s *Stash) refill(ctx context.Context) error {
	lines, err := s.src.ReadAll(ctx)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return fmt.Errorf("%w: corpus is empty", internalerr.ErrCorpusUnavailable)
	}
	items := make([]string, s.size)
	for i := range items {
		items[i] = lines[s.rng.IntN(len(lines))]
	}
	s.items = items
	s.refills++
	s.logger.Debug("stash refilled", "size", s.size, "corpus", len(lines), "refills", s.refills)
	return nil
}

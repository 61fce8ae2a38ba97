package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/store"
)

// Store is an in-memory implementation of store.Store for tests and
// one-off runs.
type Store struct {
	mu        sync.RWMutex
	headlines map[analysis.Language][]string
	seen      map[analysis.Language]map[string]struct{}
	generated []store.Generated
	stops     map[analysis.Language][]string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		headlines: make(map[analysis.Language][]string),
		seen:      make(map[analysis.Language]map[string]struct{}),
		stops:     make(map[analysis.Language][]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// AddHeadlines implements store.Store.
func (s *Store) AddHeadlines(ctx context.Context, lang analysis.Language, headlines []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := s.seen[lang]
	if seen == nil {
		seen = make(map[string]struct{})
		s.seen[lang] = seen
	}
	added := 0
	for _, h := range headlines {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		s.headlines[lang] = append(s.headlines[lang], h)
		added++
	}
	return added, nil
}

// Headlines implements store.Store.
func (s *Store) Headlines(ctx context.Context, lang analysis.Language, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.headlines[lang]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return append([]string(nil), all...), nil
}

// CountHeadlines implements store.Store.
func (s *Store) CountHeadlines(ctx context.Context, lang analysis.Language) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.headlines[lang]), nil
}

// SaveGenerated implements store.Store.
func (s *Store) SaveGenerated(ctx context.Context, g store.Generated) error {
	if g.ID == "" {
		g.ID = store.NewID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	s.mu.Lock()
	s.generated = append(s.generated, g)
	s.mu.Unlock()
	return nil
}

// RecentGenerated implements store.Store.
func (s *Store) RecentGenerated(ctx context.Context, sessionID string, k int) ([]store.Generated, error) {
	if k <= 0 {
		k = 20
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []store.Generated
	for i := len(s.generated) - 1; i >= 0 && len(out) < k; i-- {
		g := s.generated[i]
		if sessionID == "" || g.SessionID == sessionID {
			out = append(out, g)
		}
	}
	return out, nil
}

// UpsertStoplist implements store.Store.
func (s *Store) UpsertStoplist(ctx context.Context, lang analysis.Language, tokens []string) error {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
			set[tok] = struct{}{}
		}
	}
	list := make([]string, 0, len(set))
	for tok := range set {
		list = append(list, tok)
	}
	sort.Strings(list)

	s.mu.Lock()
	s.stops[lang] = list
	s.mu.Unlock()
	return nil
}

// Stoplist implements store.Store.
func (s *Store) Stoplist(ctx context.Context, lang analysis.Language) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.stops[lang]...), nil
}

var _ store.Store = (*Store)(nil)

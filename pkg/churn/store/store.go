// Package store persists the headline corpus and the archive of generated
// headlines.
package store

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/churn/pkg/churn/analysis"
)

// Store is the persistence interface shared by the sqlite and in-memory
// backends.
type Store interface {
	Close() error

	// Corpus
	AddHeadlines(ctx context.Context, lang analysis.Language, headlines []string) (int, error)
	Headlines(ctx context.Context, lang analysis.Language, limit int) ([]string, error)
	CountHeadlines(ctx context.Context, lang analysis.Language) (int, error)

	// Archive
	SaveGenerated(ctx context.Context, g Generated) error
	RecentGenerated(ctx context.Context, sessionID string, k int) ([]Generated, error)

	// Curated root stopwords
	UpsertStoplist(ctx context.Context, lang analysis.Language, tokens []string) error
	Stoplist(ctx context.Context, lang analysis.Language) ([]string, error)
}

// Generated is one emitted headline.
type Generated struct {
	ID        string
	SessionID string
	Language  analysis.Language
	Text      string
	Template  string
	Seed      string
	CreatedAt time.Time
}

var (
	idMu      sync.Mutex
	idEntropy = ulid.Monotonic(rand.Reader, 0)
)

// NewID returns a new ULID string. IDs from one process sort by creation.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return ulid.MustNew(ulid.Now(), idEntropy).String()
}

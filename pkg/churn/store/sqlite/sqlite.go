package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and creates the
// schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS headlines (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	lang TEXT NOT NULL,
	text TEXT NOT NULL,
	UNIQUE(lang, text)
);

CREATE TABLE IF NOT EXISTS generated (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	lang TEXT NOT NULL,
	text TEXT NOT NULL,
	template TEXT,
	seed TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_generated_session ON generated(session_id, id);

CREATE TABLE IF NOT EXISTS stoplist (
	lang TEXT NOT NULL,
	token TEXT NOT NULL,
	PRIMARY KEY(lang, token)
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// AddHeadlines inserts headlines, skipping blanks and ones already stored.
// It returns the number of new rows.
func (s *sqliteStore) AddHeadlines(ctx context.Context, lang analysis.Language, headlines []string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO headlines (lang, text) VALUES (?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, h := range headlines {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		res, err := stmt.ExecContext(ctx, string(lang), h)
		if err != nil {
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Headlines returns stored headlines in insertion order. A non-positive
// limit returns all of them.
func (s *sqliteStore) Headlines(ctx context.Context, lang analysis.Language, limit int) ([]string, error) {
	query := `SELECT text FROM headlines WHERE lang = ? ORDER BY id`
	args := []interface{}{string(lang)}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

// CountHeadlines returns the corpus size for lang.
func (s *sqliteStore) CountHeadlines(ctx context.Context, lang analysis.Language) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM headlines WHERE lang = ?`, string(lang)).Scan(&n)
	return n, err
}

// SaveGenerated archives an emitted headline. Missing IDs and timestamps are
// filled in.
func (s *sqliteStore) SaveGenerated(ctx context.Context, g store.Generated) error {
	if g.ID == "" {
		g.ID = store.NewID()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO generated (id, session_id, lang, text, template, seed, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.SessionID, string(g.Language), g.Text, g.Template, g.Seed,
		g.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save generated %s: %w", g.ID, err)
	}
	return nil
}

// RecentGenerated returns up to k archived headlines, newest first. An empty
// sessionID covers every session.
func (s *sqliteStore) RecentGenerated(ctx context.Context, sessionID string, k int) ([]store.Generated, error) {
	if k <= 0 {
		k = 20
	}
	query := `SELECT id, session_id, lang, text, template, seed, created_at FROM generated`
	args := []interface{}{}
	if sessionID != "" {
		query += ` WHERE session_id = ?`
		args = append(args, sessionID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, k)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Generated
	for rows.Next() {
		var (
			g                  store.Generated
			lang, created      string
			template, seedWord sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.SessionID, &lang, &g.Text, &template, &seedWord, &created); err != nil {
			return nil, err
		}
		g.Language = analysis.Language(lang)
		g.Template = template.String
		g.Seed = seedWord.String
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			g.CreatedAt = ts
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpsertStoplist replaces the curated stopwords for lang in a single
// transaction.
func (s *sqliteStore) UpsertStoplist(ctx context.Context, lang analysis.Language, tokens []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stoplist WHERE lang = ?`, string(lang)); err != nil {
		return err
	}

	if len(tokens) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO stoplist (lang, token) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, tok := range tokens {
			tok = strings.ToLower(strings.TrimSpace(tok))
			if tok == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, string(lang), tok); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Stoplist returns the curated stopwords for lang, sorted.
func (s *sqliteStore) Stoplist(ctx context.Context, lang analysis.Language) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT token FROM stoplist WHERE lang = ? ORDER BY token`, string(lang))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tok string
		if err := rows.Scan(&tok); err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, rows.Err()
}

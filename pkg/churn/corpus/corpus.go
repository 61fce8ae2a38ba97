// Package corpus provides the read-only sources of template headlines.
package corpus

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/cognicore/churn/internal/rss"
	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
	"github.com/cognicore/churn/pkg/churn/store"
)

// Source is a readable store of one headline per record.
type Source interface {
	// ReadAll returns every headline.
	ReadAll(ctx context.Context) ([]string, error)
	// Read returns the first n headlines, or fewer when the corpus is
	// smaller. A negative n reads everything.
	Read(ctx context.Context, n int) ([]string, error)
}

// Format names an on-disk corpus layout.
type Format string

const (
	FormatText  Format = "text"
	FormatJSONL Format = "jsonl"
)

// Open returns the file source for format.
func Open(path string, format Format, logger *slog.Logger) (Source, error) {
	switch format {
	case FormatText, "":
		return TextFile{Path: path}, nil
	case FormatJSONL:
		return JSONLFile{Path: path, Logger: logger}, nil
	}
	return nil, fmt.Errorf("%w: unknown corpus format %q", internalerr.ErrInvalidConfig, format)
}

func unavailable(err error) error {
	if errors.Is(err, internalerr.ErrCorpusUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %v", internalerr.ErrCorpusUnavailable, err)
}

func head(lines []string, n int) []string {
	if n >= 0 && n < len(lines) {
		return lines[:n]
	}
	return lines
}

// TextFile reads one headline per line. The file is read on every call, so
// edits are picked up by the next refill.
type TextFile struct {
	Path string
}

// ReadAll implements Source.
func (f TextFile) ReadAll(ctx context.Context) ([]string, error) {
	return f.read(ctx, -1)
}

// Read implements Source.
func (f TextFile) Read(ctx context.Context, n int) ([]string, error) {
	return f.read(ctx, n)
}

func (f TextFile) read(ctx context.Context, n int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, unavailable(err)
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	for sc.Scan() && (n < 0 || len(lines) < n) {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, unavailable(err)
	}
	return lines, nil
}

// JSONLFile reads news items and uses their titles as headlines.
type JSONLFile struct {
	Path   string
	Logger *slog.Logger
}

// ReadAll implements Source.
func (f JSONLFile) ReadAll(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := rss.LoadFromJSONL(f.Path, f.Logger)
	if err != nil {
		return nil, unavailable(err)
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if title := StripMarkup(item.Title); title != "" {
			lines = append(lines, title)
		}
	}
	return lines, nil
}

// Read implements Source.
func (f JSONLFile) Read(ctx context.Context, n int) ([]string, error) {
	lines, err := f.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	return head(lines, n), nil
}

// Static is an in-memory corpus.
type Static []string

// ReadAll implements Source.
func (s Static) ReadAll(ctx context.Context) ([]string, error) {
	return append([]string(nil), s...), nil
}

// Read implements Source.
func (s Static) Read(ctx context.Context, n int) ([]string, error) {
	return append([]string(nil), head(s, n)...), nil
}

type storeSource struct {
	st   store.Store
	lang analysis.Language
}

// FromStore reads the headlines of one language from st.
func FromStore(st store.Store, lang analysis.Language) Source {
	return storeSource{st: st, lang: lang}
}

func (s storeSource) ReadAll(ctx context.Context) ([]string, error) {
	return s.headlines(ctx, 0)
}

func (s storeSource) Read(ctx context.Context, n int) ([]string, error) {
	switch {
	case n == 0:
		return nil, nil
	case n < 0:
		n = 0
	}
	return s.headlines(ctx, n)
}

// limit 0 reads everything
func (s storeSource) headlines(ctx context.Context, limit int) ([]string, error) {
	lines, err := s.st.Headlines(ctx, s.lang, limit)
	if err != nil {
		return nil, unavailable(err)
	}
	return lines, nil
}

// StripMarkup returns the text content of an HTML fragment with whitespace
// collapsed. Unparseable input is returned trimmed.
func StripMarkup(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.Join(strings.Fields(buf.String()), " ")
}

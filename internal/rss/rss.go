// Package rss reads and writes news items as JSON lines, one item per line.
package rss

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Item is a simplified news item. Only Title is used as a headline.
type Item struct {
	URL         string    `json:"url,omitempty"`
	Title       string    `json:"title"`
	Outlet      string    `json:"outlet,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Lang        string    `json:"lang,omitempty"`
}

const maxLine = 1 << 20

// Decode reads items from r. Malformed lines are logged and skipped.
func Decode(r io.Reader, logger *slog.Logger) ([]Item, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var items []Item
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var item Item
		if err := json.Unmarshal([]byte(text), &item); err != nil {
			logger.Warn("skipping malformed item", "line", line, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, sc.Err()
}

// LoadFromJSONL loads items from a JSONL file. A file without any valid
// item is an error.
func LoadFromJSONL(path string, logger *slog.Logger) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	defer f.Close()

	items, err := Decode(f, logger)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no valid items found in %s", path)
	}
	return items, nil
}

// WriteJSONL encodes items to w, one per line.
func WriteJSONL(w io.Writer, items []Item) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}

// Command download-hn builds a template corpus from the current Hacker News
// front page.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"golang.org/x/time/rate"

	"github.com/cognicore/churn/internal/rss"
	"github.com/cognicore/churn/pkg/churn/corpus"
)

// Hacker News API endpoints
const (
	apiBase    = "https://hacker-news.firebaseio.com/v0"
	topStories = "/topstories.json"
	itemPath   = "/item/%d.json"
)

// HNItem represents a Hacker News story or comment
type HNItem struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Time  int64  `json:"time"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Dead  bool   `json:"dead"`
}

// fetcher talks to the Hacker News API.
type fetcher struct {
	base   string
	client *http.Client
}

func main() {
	var (
		count  = flag.Int("n", 100, "Number of top stories to fetch")
		out    = flag.String("out", "testdata/hn/headlines.txt", "Output file")
		format = flag.String("format", "text", "Output format: text or jsonl")
		delay  = flag.Duration("delay", 50*time.Millisecond, "Pause between item requests")
	)
	flag.Parse()

	if *format != string(corpus.FormatText) && *format != string(corpus.FormatJSONL) {
		log.Fatalf("--format must be text or jsonl, got %q", *format)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f := &fetcher{base: apiBase, client: &http.Client{Timeout: 15 * time.Second}}

	log.Printf("Downloading top %d Hacker News stories...", *count)
	ids, err := f.topStories(ctx)
	if err != nil {
		log.Fatal("Failed to get top stories:", err)
	}
	if *count < len(ids) {
		ids = ids[:*count]
	}

	// Be nice to the API
	limiter := rate.NewLimiter(rate.Every(*delay), 1)

	var items []rss.Item
	for i, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			log.Printf("Interrupted, keeping %d headlines", len(items))
			break
		}
		hn, err := f.item(ctx, id)
		if err != nil {
			log.Printf("Failed to get item %d: %v", id, err)
			continue
		}
		if item, ok := toItem(hn); ok {
			items = append(items, item)
		}
		if (i+1)%10 == 0 {
			log.Printf("Fetched %d/%d stories, %d usable headlines", i+1, len(ids), len(items))
		}
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}
	file, err := os.Create(*out)
	if err != nil {
		log.Fatal("Failed to create output file:", err)
	}
	defer file.Close()

	if err := writeItems(file, items, *format); err != nil {
		log.Fatal("Failed to write headlines:", err)
	}
	log.Printf("Wrote %d headlines to %s", len(items), *out)
}

func (f *fetcher) topStories(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := f.getJSON(ctx, f.base+topStories, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (f *fetcher) item(ctx context.Context, id int64) (*HNItem, error) {
	var item HNItem
	if err := f.getJSON(ctx, f.base+fmt.Sprintf(itemPath, id), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (f *fetcher) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// toItem turns a live story into a corpus item. Comments, dead stories and
// titles that do not read as a headline are dropped.
func toItem(hn *HNItem) (rss.Item, bool) {
	if hn == nil || hn.Type != "story" || hn.Dead {
		return rss.Item{}, false
	}
	title, ok := headline(hn.Title)
	if !ok {
		return rss.Item{}, false
	}
	return rss.Item{
		URL:         fmt.Sprintf("https://news.ycombinator.com/item?id=%d", hn.ID),
		Title:       title,
		Outlet:      "news.ycombinator.com",
		PublishedAt: time.Unix(hn.Time, 0).UTC(),
		Lang:        "en",
	}, true
}

var hnPrefixes = []string{"Show HN:", "Ask HN:", "Tell HN:", "Launch HN:"}

// headline cleans a story title: markup is removed, as are the HN post-type
// prefixes and a trailing "(2019)"-style year. Titles under three words are
// rejected.
func headline(title string) (string, bool) {
	t := corpus.StripMarkup(title)
	for _, p := range hnPrefixes {
		if len(t) >= len(p) && strings.EqualFold(t[:len(p)], p) {
			t = strings.TrimSpace(t[len(p):])
		}
	}
	if i := strings.LastIndex(t, " ("); i > 0 && strings.HasSuffix(t, ")") && isYear(t[i+2:len(t)-1]) {
		t = t[:i]
	}
	if len(strings.Fields(t)) < 3 {
		return "", false
	}
	return t, true
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func writeItems(w io.Writer, items []rss.Item, format string) error {
	if format == string(corpus.FormatJSONL) {
		return rss.WriteJSONL(w, items)
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item.Title); err != nil {
			return err
		}
	}
	return nil
}

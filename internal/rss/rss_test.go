package rss

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRoundTripAndSkipMalformed(t *testing.T) {
	var buf bytes.Buffer
	items := []Item{
		{Title: "Storm hits coast", Outlet: "wire", PublishedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{Title: "Man bites dog"},
	}
	if err := WriteJSONL(&buf, items); err != nil {
		t.Fatalf("WriteJSONL: %v", err)
	}
	buf.WriteString("{not json}\n\n")

	got, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 2 || got[0].Title != "Storm hits coast" || !got[0].PublishedAt.Equal(items[0].PublishedAt) {
		t.Errorf("unexpected items %+v", got)
	}
}

func TestLoadFromJSONL(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.jsonl")
	if err := os.WriteFile(empty, []byte("\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromJSONL(empty, nil); err == nil || !strings.Contains(err.Error(), "no valid items") {
		t.Errorf("expected no-items error, got %v", err)
	}
	if _, err := LoadFromJSONL(filepath.Join(dir, "missing.jsonl"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

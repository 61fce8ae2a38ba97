package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/store"
)

func open(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "churn.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestHeadlines(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	added, err := st.AddHeadlines(ctx, analysis.English, []string{
		"The cat chased the mouse.", "  ", "Government plans cuts", "The cat chased the mouse.",
	})
	if err != nil {
		t.Fatalf("AddHeadlines: %v", err)
	}
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}

	if _, err := st.AddHeadlines(ctx, analysis.Dutch, []string{"De kat jaagt op de muis"}); err != nil {
		t.Fatalf("AddHeadlines nl: %v", err)
	}

	all, err := st.Headlines(ctx, analysis.English, 0)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(all) != 2 || all[0] != "The cat chased the mouse." {
		t.Errorf("unexpected headlines %v", all)
	}

	one, err := st.Headlines(ctx, analysis.English, 1)
	if err != nil || len(one) != 1 {
		t.Errorf("limited Headlines = %v, %v", one, err)
	}

	n, err := st.CountHeadlines(ctx, analysis.Dutch)
	if err != nil || n != 1 {
		t.Errorf("CountHeadlines(nl) = %d, %v", n, err)
	}
}

func TestGeneratedArchive(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	for _, text := range []string{"first", "second", "third"} {
		err := st.SaveGenerated(ctx, store.Generated{
			SessionID: "s1",
			Language:  analysis.English,
			Text:      text,
			Template:  "template",
			Seed:      "dog",
		})
		if err != nil {
			t.Fatalf("SaveGenerated: %v", err)
		}
	}
	if err := st.SaveGenerated(ctx, store.Generated{SessionID: "s2", Text: "other", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("SaveGenerated: %v", err)
	}

	recent, err := st.RecentGenerated(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("RecentGenerated: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 results, got %d", len(recent))
	}
	if recent[0].Text != "third" || recent[1].Text != "second" {
		t.Errorf("expected newest first, got %q, %q", recent[0].Text, recent[1].Text)
	}
	if recent[0].Seed != "dog" || recent[0].Language != analysis.English || recent[0].CreatedAt.IsZero() {
		t.Errorf("fields not round-tripped: %+v", recent[0])
	}

	all, err := st.RecentGenerated(ctx, "", 10)
	if err != nil || len(all) != 4 {
		t.Errorf("all sessions = %d, %v", len(all), err)
	}
}

func TestStoplistReplace(t *testing.T) {
	ctx := context.Background()
	st := open(t)

	if err := st.UpsertStoplist(ctx, analysis.English, []string{"Officials", "report", ""}); err != nil {
		t.Fatalf("UpsertStoplist: %v", err)
	}
	if err := st.UpsertStoplist(ctx, analysis.English, []string{"year", "officials"}); err != nil {
		t.Fatalf("UpsertStoplist: %v", err)
	}
	got, err := st.Stoplist(ctx, analysis.English)
	if err != nil {
		t.Fatalf("Stoplist: %v", err)
	}
	if len(got) != 2 || got[0] != "officials" || got[1] != "year" {
		t.Errorf("Stoplist = %v", got)
	}
	if nl, _ := st.Stoplist(ctx, analysis.Dutch); len(nl) != 0 {
		t.Errorf("Dutch stoplist should be empty, got %v", nl)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "churn.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if _, err := st.AddHeadlines(ctx, analysis.English, []string{"Man bites dog"}); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if n, _ := st.CountHeadlines(ctx, analysis.English); n != 1 {
		t.Errorf("count after reopen = %d", n)
	}
}

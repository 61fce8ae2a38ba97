package stoplist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManagerBasic(t *testing.T) {
	mgr := NewManager([]string{"the", "a", "and"})

	if !mgr.IsStop("the") {
		t.Error("'the' should be a stopword")
	}
	if !mgr.IsStop(" The ") {
		t.Error("lookup should ignore case and padding")
	}
	if mgr.IsStop("hello") {
		t.Error("'hello' should not be a stopword")
	}
}

func TestManagerAddRemove(t *testing.T) {
	mgr := NewManager([]string{"the"})

	mgr.Add("Thing", Curated)
	if !mgr.IsStop("thing") {
		t.Error("'thing' should be stopword after adding")
	}
	if src, ok := mgr.SourceOf("thing"); !ok || src != Curated {
		t.Errorf("SourceOf = %q, %v", src, ok)
	}

	mgr.Remove("THING")
	if mgr.IsStop("thing") {
		t.Error("'thing' should not be stopword after removing")
	}

	mgr.Add("   ", Curated)
	if len(mgr.All()) != 1 {
		t.Errorf("blank token should be ignored, got %v", mgr.All())
	}
}

func TestManagerAllSorted(t *testing.T) {
	all := NewManager([]string{"the", "a", "and"}).All()
	want := []string{"a", "and", "the"}
	if len(all) != len(want) {
		t.Fatalf("Expected %d stopwords, got %d", len(want), len(all))
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("All()[%d] = %q, want %q", i, all[i], want[i])
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stoplist.yaml")
	if err := os.WriteFile(path, []byte("terms:\n  - Officials\n  - report\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	mgr := English()
	if err := mgr.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !mgr.IsStop("officials") || !mgr.IsStop("something") {
		t.Error("expected file and builtin terms")
	}
	if src, _ := mgr.SourceOf("report"); src != Config {
		t.Errorf("source = %q, want config", src)
	}
	if err := mgr.LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuiltinLists(t *testing.T) {
	if English().IsStop("cat") || !English().IsStop("everything") {
		t.Error("unexpected English stoplist contents")
	}
	if !Dutch().IsStop("iets") {
		t.Error("'iets' should be a Dutch stopword")
	}
}

package corpus

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/churn/internal/rss"
	"github.com/cognicore/churn/pkg/churn/analysis"
	"github.com/cognicore/churn/pkg/churn/internalerr"
	"github.com/cognicore/churn/pkg/churn/store/memstore"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextFile(t *testing.T) {
	ctx := context.Background()
	src := TextFile{Path: writeFile(t, "corpus.txt", "The cat chased the mouse.\n\n  Man bites dog  \nGovernment plans cuts\n")}

	all, err := src.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"The cat chased the mouse.", "Man bites dog", "Government plans cuts"}, all)

	two, err := src.Read(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)

	none, err := src.Read(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTextFileMissing(t *testing.T) {
	_, err := TextFile{Path: filepath.Join(t.TempDir(), "missing.txt")}.ReadAll(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrCorpusUnavailable)
}

func TestJSONLFileStripsMarkup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.jsonl")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, rss.WriteJSONL(f, []rss.Item{
		{Title: "<b>Storm</b> hits   coast"},
		{Title: "   "},
		{Title: "Fish &amp; chips price soars"},
	}))
	require.NoError(t, f.Close())

	src, err := Open(path, FormatJSONL, nil)
	require.NoError(t, err)
	all, err := src.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Storm hits coast", "Fish & chips price soars"}, all)

	first, err := src.Read(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Storm hits coast"}, first)
}

func TestJSONLFileUnavailable(t *testing.T) {
	src := JSONLFile{Path: writeFile(t, "bad.jsonl", "not json\n")}
	_, err := src.ReadAll(context.Background())
	assert.ErrorIs(t, err, internalerr.ErrCorpusUnavailable)
}

func TestOpenUnknownFormat(t *testing.T) {
	_, err := Open("x", "csv", nil)
	assert.ErrorIs(t, err, internalerr.ErrInvalidConfig)
}

func TestStaticCopies(t *testing.T) {
	src := Static{"a", "b", "c"}
	got, _ := src.Read(context.Background(), 2)
	got[0] = "changed"
	assert.Equal(t, "a", src[0])
	all, _ := src.Read(context.Background(), -1)
	assert.Len(t, all, 3)
}

func TestFromStore(t *testing.T) {
	ctx := context.Background()
	st := memstore.New()
	_, err := st.AddHeadlines(ctx, analysis.English, []string{"one", "two", "three"})
	require.NoError(t, err)

	src := FromStore(st, analysis.English)
	all, err := src.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, all)

	two, err := src.Read(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, two)

	nl, err := FromStore(st, analysis.Dutch).ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, nl)
}

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello world</p>", "Hello world"},
		{"<p><strong>Bold</strong> and <em>italic</em></p>", "Bold and italic"},
		{"<p>Line 1</p>\n<p>Line 2</p>", "Line 1 Line 2"},
		{"No HTML here", "No HTML here"},
		{"   \t\n  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripMarkup(tt.input), "input %q", tt.input)
	}
}

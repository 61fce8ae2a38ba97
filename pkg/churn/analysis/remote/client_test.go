package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/cognicore/churn/pkg/churn/analysis"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

const katten = `{
	"tokens":[
		{"text":"De","idx":0,"pos":"DET","tag":"LID|bep","morph":"","dep":"det"},
		{"text":"katten","idx":3,"pos":"NOUN","tag":"N|soort|mv","morph":"Number=Plur","dep":"nsubj"},
		{"text":"jagen","idx":10,"pos":"VERB","tag":"WW|pv","morph":"","dep":"ROOT"},
		{"text":"de","idx":16,"pos":"DET","tag":"LID|bep","morph":"","dep":"det"},
		{"text":"muis","idx":19,"pos":"NOUN","tag":"N|soort|ev","morph":"Number=Sing","dep":"obj"}
	],
	"noun_chunks":[{"start":0,"end":2,"root":1},{"start":3,"end":5,"root":4}]
}`

func TestAnalyzeSuccess(t *testing.T) {
	client := &Client{
		BaseURL: "https://parser.test/parse",
		Lang:    analysis.Dutch,
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				var body parseRequest
				if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if body.Lang != "nl" || body.Text != "De katten jagen de muis" {
					t.Fatalf("unexpected request %+v", body)
				}
				return respond(http.StatusOK, katten)
			}),
		},
	}

	doc, err := client.Analyze(context.Background(), "De katten jagen de muis")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(doc.Tokens) != 5 || len(doc.Chunks) != 2 {
		t.Fatalf("unexpected doc shape: %d tokens, %d chunks", len(doc.Tokens), len(doc.Chunks))
	}
	obj := doc.Chunks[1]
	if obj.Root.Text != "muis" || !obj.Root.Singular() {
		t.Errorf("unexpected object root %+v", obj.Root)
	}
	if got := doc.ChunkText(obj, true); got != "muis" {
		t.Errorf("ChunkText = %q", got)
	}
	if got := doc.ChunkText(doc.Chunks[0], false); got != "De katten" {
		t.Errorf("ChunkText = %q", got)
	}
	if client.Language() != analysis.Dutch {
		t.Error("language should be nl")
	}
}

func TestAnalyzeServiceError(t *testing.T) {
	client := &Client{
		BaseURL: "https://parser.test/parse",
		Lang:    analysis.Dutch,
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return respond(http.StatusInternalServerError, `{"error":{"message":"model not loaded"}}`)
			}),
		},
	}
	_, err := client.Analyze(context.Background(), "x")
	if err == nil || !strings.Contains(err.Error(), "model not loaded") {
		t.Fatalf("expected service error, got %v", err)
	}
}

func TestAnalyzeMalformedOffsets(t *testing.T) {
	client := &Client{
		BaseURL: "https://parser.test/parse",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return respond(http.StatusOK, `{"tokens":[{"text":"long","idx":40}],"noun_chunks":[]}`)
			}),
		},
	}
	if _, err := client.Analyze(context.Background(), "short"); err == nil {
		t.Fatal("expected offset error")
	}
}

func TestAnalyzeRequiresURL(t *testing.T) {
	if _, err := (&Client{}).Analyze(context.Background(), "x"); err == nil {
		t.Fatal("expected error without base URL")
	}
}

const cafe = `{
	"tokens":[
		{"text":"Het","idx":0,"pos":"DET","tag":"LID|bep","morph":"","dep":"det"},
		{"text":"café","idx":4,"pos":"NOUN","tag":"N|soort|ev","morph":"Number=Sing","dep":"nsubj"},
		{"text":"koopt","idx":9,"pos":"VERB","tag":"WW|pv","morph":"","dep":"ROOT"},
		{"text":"de","idx":15,"pos":"DET","tag":"LID|bep","morph":"","dep":"det"},
		{"text":"muis","idx":18,"pos":"NOUN","tag":"N|soort|ev","morph":"Number=Sing","dep":"obj"}
	],
	"noun_chunks":[{"start":0,"end":2,"root":1},{"start":3,"end":5,"root":4}]
}`

func TestAnalyzeCharacterOffsets(t *testing.T) {
	client := &Client{
		BaseURL: "https://parser.test/parse",
		Lang:    analysis.Dutch,
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return respond(http.StatusOK, cafe)
			}),
		},
	}

	sentence := "Het café koopt de muis"
	doc, err := client.Analyze(context.Background(), sentence)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for _, tok := range doc.Tokens {
		if got := sentence[tok.Start:tok.End]; got != tok.Text {
			t.Errorf("token %q spans %q", tok.Text, got)
		}
	}
	if got := doc.ChunkText(doc.Chunks[1], true); got != "muis" {
		t.Errorf("object ChunkText = %q, want %q", got, "muis")
	}
	if got := doc.ChunkText(doc.Chunks[0], false); got != "Het café" {
		t.Errorf("subject ChunkText = %q, want %q", got, "Het café")
	}
}

func TestAnalyzeTokenMismatch(t *testing.T) {
	client := &Client{
		BaseURL: "https://parser.test/parse",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				// byte offset where a character offset is expected
				return respond(http.StatusOK, `{"tokens":[{"text":"muis","idx":19}],"noun_chunks":[]}`)
			}),
		},
	}
	if _, err := client.Analyze(context.Background(), "Het café koopt de muis"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

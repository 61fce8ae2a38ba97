// Package remote calls an external parser service over HTTP, for languages
// the built-in analyzer does not cover. The service receives one sentence
// and answers with spaCy-style tokens and noun chunks.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cognicore/churn/pkg/churn/analysis"
)

// Client implements analysis.Analyzer against a parser endpoint.
type Client struct {
	BaseURL string
	Lang    analysis.Language

	HTTPClient *http.Client
}

type parseRequest struct {
	Text string `json:"text"`
	Lang string `json:"lang"`
}

type parseToken struct {
	Text  string `json:"text"`
	Idx   int    `json:"idx"`
	POS   string `json:"pos"`
	Tag   string `json:"tag"`
	Morph string `json:"morph"`
	Dep   string `json:"dep"`
}

// chunk bounds are token indexes, end exclusive
type parseChunk struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Root  int `json:"root"`
}

type parseResponse struct {
	Tokens     []parseToken `json:"tokens"`
	NounChunks []parseChunk `json:"noun_chunks"`
	Error      *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Language implements analysis.Analyzer.
func (c *Client) Language() analysis.Language { return c.Lang }

// Analyze implements analysis.Analyzer.
func (c *Client) Analyze(ctx context.Context, sentence string) (analysis.Doc, error) {
	if c.BaseURL == "" {
		return analysis.Doc{}, fmt.Errorf("remote analyzer: base URL required")
	}
	payload, err := c.send(ctx, parseRequest{Text: sentence, Lang: string(c.Lang)})
	if err != nil {
		return analysis.Doc{}, err
	}
	return toDoc(sentence, payload)
}

func (c *Client) send(ctx context.Context, body parseRequest) (*parseResponse, error) {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote analyzer: %w", err)
	}
	defer resp.Body.Close()

	var payload parseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("remote analyzer: decode response (status %d): %w", resp.StatusCode, err)
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("remote analyzer error: %s", payload.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote analyzer: unexpected status %d", resp.StatusCode)
	}
	return &payload, nil
}

func toDoc(sentence string, payload *parseResponse) (analysis.Doc, error) {
	offsets := runeOffsets(sentence)
	doc := analysis.Doc{Text: sentence, Tokens: make([]analysis.Token, len(payload.Tokens))}
	for i, pt := range payload.Tokens {
		// idx counts characters, not bytes
		if pt.Idx < 0 || pt.Idx >= len(offsets) {
			return analysis.Doc{}, fmt.Errorf("remote analyzer: token %q offset %d out of range", pt.Text, pt.Idx)
		}
		start := offsets[pt.Idx]
		end := start + len(pt.Text)
		if end > len(sentence) || sentence[start:end] != pt.Text {
			return analysis.Doc{}, fmt.Errorf("remote analyzer: token %q does not match the sentence at offset %d", pt.Text, pt.Idx)
		}
		doc.Tokens[i] = analysis.Token{
			Text:  pt.Text,
			Start: start,
			End:   end,
			POS:   analysis.POS(pt.POS),
			Tag:   pt.Tag,
			Morph: pt.Morph,
			Dep:   analysis.Dep(pt.Dep),
		}
	}
	for _, pc := range payload.NounChunks {
		if pc.Start < 0 || pc.End > len(doc.Tokens) || pc.Start >= pc.End || pc.Root < pc.Start || pc.Root >= pc.End {
			return analysis.Doc{}, fmt.Errorf("remote analyzer: malformed chunk [%d,%d) root %d", pc.Start, pc.End, pc.Root)
		}
		toks := make([]analysis.Token, pc.End-pc.Start)
		copy(toks, doc.Tokens[pc.Start:pc.End])
		doc.Chunks = append(doc.Chunks, analysis.Chunk{
			Start:  doc.Tokens[pc.Start].Start,
			End:    doc.Tokens[pc.End-1].End,
			Root:   doc.Tokens[pc.Root],
			Tokens: toks,
		})
	}
	return doc, nil
}

// runeOffsets maps each character index of s to its byte offset. The last
// entry is len(s).
func runeOffsets(s string) []int {
	offsets := make([]int, 0, len(s)+1)
	for i := range s {
		offsets = append(offsets, i)
	}
	return append(offsets, len(s))
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 15 * time.Second}
}

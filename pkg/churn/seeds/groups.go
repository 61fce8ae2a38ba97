// Package seeds builds the pool of replacement words, either from noun chunks
// of a source text or from a curated word list.
package seeds

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// RootChunks is one root noun with the text of every chunk it heads.
type RootChunks struct {
	Root   string
	Chunks []string
}

// Groups maps a lowercased root noun to its surface variants. Keys keep
// first-seen order.
type Groups struct {
	keys     []string
	variants map[string][]string
}

// FromAnalyzed groups roots under their lowercased form. The first variant of
// a group is the root text itself; chunk texts follow, deduplicated within
// the group only. Roots that differ only by case share a group.
func FromAnalyzed(roots []RootChunks) *Groups {
	g := &Groups{variants: make(map[string][]string, len(roots))}
	fold := cases.Lower(language.Und)
	for _, rc := range roots {
		key := fold.String(rc.Root)
		g.add(key, rc.Root)
		for _, c := range rc.Chunks {
			g.add(key, c)
		}
	}
	return g
}

func (g *Groups) add(key, variant string) {
	vs, ok := g.variants[key]
	if !ok {
		g.keys = append(g.keys, key)
	}
	for _, v := range vs {
		if v == variant {
			return
		}
	}
	g.variants[key] = append(vs, variant)
}

// Keys returns the group keys in first-seen order.
func (g *Groups) Keys() []string {
	return append([]string(nil), g.keys...)
}

// Variants returns the variants of one group.
func (g *Groups) Variants(key string) []string {
	return append([]string(nil), g.variants[key]...)
}

// Len returns the number of groups.
func (g *Groups) Len() int { return len(g.keys) }

// Pool flattens every group into a draw pool. Duplicates across groups are
// kept, so larger groups are drawn more often.
func (g *Groups) Pool() Pool {
	var words []string
	for _, k := range g.keys {
		words = append(words, g.variants[k]...)
	}
	return Pool{words: words}
}

// Select flattens only the named groups, in group order. Unknown keys are
// ignored.
func (g *Groups) Select(keys ...string) []string {
	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		want[k] = true
	}
	var words []string
	for _, k := range g.keys {
		if want[k] {
			words = append(words, g.variants[k]...)
		}
	}
	return words
}

// MarshalYAML writes the groups as an ordered mapping of key to variants.
func (g *Groups) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range g.keys {
		var val yaml.Node
		if err := val.Encode(g.variants[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, &val)
	}
	return node, nil
}

// UnmarshalYAML reads an ordered mapping of key to variants, as written by
// MarshalYAML and edited by a curator.
func (g *Groups) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("seed groups: expected a mapping, got line %d", node.Line)
	}
	*g = Groups{variants: make(map[string][]string, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var variants []string
		if err := node.Content[i+1].Decode(&variants); err != nil {
			return fmt.Errorf("seed group %q: %w", node.Content[i].Value, err)
		}
		for _, v := range variants {
			g.add(node.Content[i].Value, v)
		}
	}
	return nil
}

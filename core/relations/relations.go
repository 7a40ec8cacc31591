// Package relations collects, per target word, the related words observed
// across an assertion scan into deduplicated, weight-ranked relation lists.
package relations

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lexigame/wordmine/core/assertion"
	"github.com/lexigame/wordmine/core/textsim"
)

// Edge is one related word for a target, with its relation label, the
// maximum weight observed for the (relation, word) pair, and optional
// similarity scores attached by a later scoring step.
type Edge struct {
	Word                string   `json:"word"`
	Relation            string   `json:"relation"`
	Weight              float64  `json:"weight"`
	Similarity          *float64 `json:"similarity,omitempty"`
	EditSimilarity      *float64 `json:"edit_similarity,omitempty"`
	LemmaEditSimilarity *float64 `json:"lemma_edit_similarity,omitempty"`
}

// Entry is a target word with its collected relation edges, the per-word
// element of the word-relations artifact.
type Entry struct {
	TargetWord    string `json:"target_word"`
	WordRelations []Edge `json:"word_relations"`
}

// symmetricRelations may contribute edges in either record direction; all
// other relations are used target-as-start only.
var symmetricRelations = map[string]struct{}{
	"synonym":    {},
	"related_to": {},
}

// Options configures an Aggregator for one language.
type Options struct {
	// Lang is the language this aggregator collects; edges in other
	// languages are ignored.
	Lang string
	// Lowercase normalizes target and related words to lower case.
	Lowercase bool
	// SingleWordCheck rejects multi-token related words. Off for languages
	// that are not space-tokenized.
	SingleWordCheck bool
	// CapitalizedMatch additionally matches the capitalized form of each
	// target (German nouns are capitalized in ConceptNet).
	CapitalizedMatch bool
}

type edgeKey struct {
	relation string
	word     string
}

// Aggregator indexes target words by match key and accumulates max-weight
// deduplicated relation edges for them. Not safe for concurrent use; each
// language run owns its own aggregator.
type Aggregator struct {
	opts       Options
	categories []string
	byCategory map[string][]*Entry
	byKey      map[string][]*Entry
	collected  map[*Entry]map[edgeKey]float64
}

// NewAggregator returns an empty aggregator for one language.
func NewAggregator(opts Options) *Aggregator {
	return &Aggregator{
		opts:       opts,
		byCategory: make(map[string][]*Entry),
		byKey:      make(map[string][]*Entry),
		collected:  make(map[*Entry]map[edgeKey]float64),
	}
}

// AddTargets registers target words under a category (e.g. "high", "low").
// Words are normalized; empty results are skipped. The same surface word may
// appear in several categories and is tracked separately for each.
func (a *Aggregator) AddTargets(category string, words []string) {
	if _, ok := a.byCategory[category]; !ok {
		a.categories = append(a.categories, category)
	}
	for _, raw := range words {
		word := a.normalize(raw)
		if word == "" {
			continue
		}
		entry := &Entry{TargetWord: word}
		a.byCategory[category] = append(a.byCategory[category], entry)
		a.collected[entry] = make(map[edgeKey]float64)
		for _, key := range a.matchKeys(word) {
			a.byKey[key] = append(a.byKey[key], entry)
		}
	}
}

// TargetCount returns the number of registered entries across categories.
func (a *Aggregator) TargetCount() int { return len(a.collected) }

// Observe records one accepted relation edge. The forward direction (start
// is a target) applies to every relation; the reverse direction only to the
// symmetric relations synonym and related_to. Per (relation, word) key the
// maximum weight wins.
func (a *Aggregator) Observe(edge assertion.RelationEdge) {
	if edge.Lang != a.opts.Lang {
		return
	}

	start := a.normalize(edge.Start)
	end := a.normalize(edge.End)
	if start == end {
		return
	}

	if entries := a.lookup(edge.Start); len(entries) > 0 && a.tokenOK(end) {
		a.record(entries, edge.Relation, end, edge.Weight)
	}

	if _, symmetric := symmetricRelations[edge.Relation]; !symmetric {
		return
	}
	if entries := a.lookup(edge.End); len(entries) > 0 && a.tokenOK(start) {
		a.record(entries, edge.Relation, start, edge.Weight)
	}
}

func (a *Aggregator) record(entries []*Entry, relation, word string, weight float64) {
	key := edgeKey{relation: relation, word: word}
	for _, entry := range entries {
		m := a.collected[entry]
		if prev, ok := m[key]; !ok || weight > prev {
			m[key] = weight
		}
	}
}

// Finalize flattens the collected maps into each entry's WordRelations,
// sorted by weight descending with a deterministic word/relation tie-break,
// and returns entries grouped by category in registration order.
func (a *Aggregator) Finalize() map[string][]*Entry {
	for entry, m := range a.collected {
		edges := make([]Edge, 0, len(m))
		for key, weight := range m {
			edges = append(edges, Edge{Word: key.word, Relation: key.relation, Weight: weight})
		}
		sort.Slice(edges, func(i, j int) bool {
			if edges[i].Weight != edges[j].Weight {
				return edges[i].Weight > edges[j].Weight
			}
			if edges[i].Word != edges[j].Word {
				return edges[i].Word < edges[j].Word
			}
			return edges[i].Relation < edges[j].Relation
		})
		entry.WordRelations = edges
	}
	return a.byCategory
}

// Categories returns the category names in registration order.
func (a *Aggregator) Categories() []string {
	out := make([]string, len(a.categories))
	copy(out, a.categories)
	return out
}

func (a *Aggregator) normalize(word string) string {
	word = strings.TrimSpace(word)
	if a.opts.Lowercase {
		word = strings.ToLower(word)
	}
	return word
}

func (a *Aggregator) tokenOK(word string) bool {
	if word == "" {
		return false
	}
	if a.opts.SingleWordCheck && !textsim.IsSingleWord(word) {
		return false
	}
	return true
}

// lookup resolves the entries registered under any match key of text.
func (a *Aggregator) lookup(text string) []*Entry {
	keys := a.matchKeys(strings.TrimSpace(text))
	if len(keys) == 1 {
		return a.byKey[keys[0]]
	}

	var out []*Entry
	seen := make(map[*Entry]struct{})
	for _, key := range keys {
		for _, entry := range a.byKey[key] {
			if _, dup := seen[entry]; dup {
				continue
			}
			seen[entry] = struct{}{}
			out = append(out, entry)
		}
	}
	return out
}

func (a *Aggregator) matchKeys(word string) []string {
	if word == "" {
		return nil
	}
	if !a.opts.CapitalizedMatch {
		return []string{a.normalize(word)}
	}

	base := strings.ToLower(word)
	capped := capitalize(base)
	if capped == base {
		return []string{base}
	}
	return []string{base, capped}
}

func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

// Package taboo selects, per target word, exactly three well-separated
// related words for a Taboo-style guessing game. Selection is deliberately
// precision-over-recall: a target is dropped rather than emitted with fewer
// than three words, and looser thresholds are only tried when a category
// misses its minimum quota.
package taboo

import (
	"github.com/lexigame/wordmine/core/relations"
	"github.com/lexigame/wordmine/core/textsim"
)

// Embedder supplies embedding cosine similarity for a word pair. The second
// result is false when no embedding is available for either word; such
// pairs sort as similarity zero.
type Embedder interface {
	Similarity(a, b string) (float64, bool)
}

// Lemmatizer maps a surface word to its lemma. IdentityLemmatizer is used
// when no external annotator is wired in; stems then degenerate to the
// surface forms.
type Lemmatizer interface {
	Lemma(word string) string
}

// IdentityLemmatizer returns every word unchanged.
type IdentityLemmatizer struct{}

// Lemma implements Lemmatizer.
func (IdentityLemmatizer) Lemma(word string) string { return word }

// StaticEmbedder serves precomputed similarities from a nested map keyed by
// target then related word. Pairs are looked up in both orders.
type StaticEmbedder map[string]map[string]float64

// Similarity implements Embedder.
func (s StaticEmbedder) Similarity(a, b string) (float64, bool) {
	if m, ok := s[a]; ok {
		if v, ok := m[b]; ok {
			return v, true
		}
	}
	if m, ok := s[b]; ok {
		if v, ok := m[a]; ok {
			return v, true
		}
	}
	return 0, false
}

// Score fills the similarity fields of every edge of every entry: embedding
// similarity when the embedder has the pair, surface edit-similarity, and
// lemma edit-similarity between the lemmatized forms. Entries are modified
// in place.
func Score(entries []*relations.Entry, embedder Embedder, lemmatizer Lemmatizer) {
	if lemmatizer == nil {
		lemmatizer = IdentityLemmatizer{}
	}

	lemmas := make(map[string]string)
	lemmaOf := func(word string) string {
		if l, ok := lemmas[word]; ok {
			return l
		}
		l := lemmatizer.Lemma(word)
		lemmas[word] = l
		return l
	}

	for _, entry := range entries {
		target := entry.TargetWord
		targetLemma := lemmaOf(target)

		for i := range entry.WordRelations {
			rel := &entry.WordRelations[i]

			if embedder != nil {
				if sim, ok := embedder.Similarity(target, rel.Word); ok {
					rel.Similarity = ptr(sim)
				}
			}
			rel.EditSimilarity = ptr(textsim.EditSimilarity(target, rel.Word))
			rel.LemmaEditSimilarity = ptr(textsim.EditSimilarity(targetLemma, lemmaOf(rel.Word)))
		}
	}
}

func ptr(v float64) *float64 { return &v }

package taboo

import (
	"sort"

	"github.com/lexigame/wordmine/core/relations"
	"github.com/lexigame/wordmine/core/textsim"
)

// Selection thresholds. Pass one wants near-certain associations that are
// not spelling variants of the target; pass two relaxes the relation set
// against the lemma distance; the quota fallback admits one related_to word
// under the strictest lemma bound.
const (
	tabooWordCount = 3

	maxEditSimilarityPass1      = 0.2
	maxLemmaEditSimilarityPass2 = 0.3
	maxLemmaEditSimilarityPass3 = 0.2

	// maxMutualEditSimilarity rejects candidates too close to an already
	// accepted taboo word.
	maxMutualEditSimilarity = 0.4
)

// pass1Relations are the high-confidence relation labels considered first.
var pass1Relations = map[string]struct{}{
	"synonym":    {},
	"is_a":       {},
	"part_of":    {},
	"antonym":    {},
	"similar_to": {},
}

// pass2Excluded are skipped in the relaxed pass: synonyms were already
// tried, and derived words share too much surface with the target.
var pass2Excluded = map[string]struct{}{
	"synonym":      {},
	"derived_from": {},
}

// WordSet is one finished output entry: a target plus exactly three related
// words. Stem fields degenerate to the surface forms when no lemmatizer is
// wired in.
type WordSet struct {
	TargetWord      string   `json:"target_word"`
	RelatedWord     []string `json:"related_word"`
	TargetWordStem  string   `json:"target_word_stem"`
	RelatedWordStem []string `json:"related_word_stem"`
}

// candidate tracks a target mid-selection.
type candidate struct {
	entry  *relations.Entry
	picked []relations.Edge
}

// SelectorConfig controls sampling for one category group.
type SelectorConfig struct {
	// MinPerCategory is the quota that triggers the related_to fallback
	// pass when not met by complete entries alone.
	MinPerCategory int
	// RequireSingleWord drops multi-token targets before selection.
	RequireSingleWord bool
	// Lemmatizer supplies the stem fields. Nil means identity.
	Lemmatizer Lemmatizer
}

// Select runs the full multi-pass selection over the entries of the named
// categories (in the given order) and returns only complete three-word
// entries. Targets ending with fewer than three words are dropped silently;
// two-word targets are retained internally and only completed by the quota
// fallback when the category group is short of MinPerCategory.
func Select(byCategory map[string][]*relations.Entry, categories []string, cfg SelectorConfig) []WordSet {
	complete, twoWord := samplePasses(byCategory, categories, cfg)

	if len(complete) < cfg.MinPerCategory {
		complete = quotaFallback(complete, twoWord, cfg.MinPerCategory)
	}

	lemmatizer := cfg.Lemmatizer
	if lemmatizer == nil {
		lemmatizer = IdentityLemmatizer{}
	}

	out := make([]WordSet, 0, len(complete))
	for _, c := range complete {
		if len(c.picked) != tabooWordCount {
			continue
		}
		words := make([]string, tabooWordCount)
		stems := make([]string, tabooWordCount)
		for i, e := range c.picked {
			words[i] = e.Word
			stems[i] = lemmatizer.Lemma(e.Word)
		}
		out = append(out, WordSet{
			TargetWord:      c.entry.TargetWord,
			RelatedWord:     words,
			TargetWordStem:  lemmatizer.Lemma(c.entry.TargetWord),
			RelatedWordStem: stems,
		})
	}
	return out
}

func samplePasses(byCategory map[string][]*relations.Entry, categories []string, cfg SelectorConfig) (complete, twoWord []candidate) {
	for _, category := range categories {
		for _, entry := range byCategory[category] {
			if entry.TargetWord == "" {
				continue
			}
			if cfg.RequireSingleWord && !textsim.IsSingleWord(entry.TargetWord) {
				continue
			}

			picked := pickInitial(entry.WordRelations)
			switch len(picked) {
			case tabooWordCount:
				complete = append(complete, candidate{entry: entry, picked: picked})
			case tabooWordCount - 1:
				twoWord = append(twoWord, candidate{entry: entry, picked: picked})
			}
		}
	}
	return complete, twoWord
}

// pickInitial runs passes one and two for a single target and returns up to
// three accepted edges.
func pickInitial(rels []relations.Edge) []relations.Edge {
	var picked []relations.Edge
	seen := make(map[string]struct{})

	accept := func(rel relations.Edge) bool {
		if rel.Word == "" {
			return false
		}
		if _, dup := seen[rel.Word]; dup {
			return false
		}
		if tooSimilarToPicked(picked, rel.Word) {
			return false
		}
		picked = append(picked, rel)
		seen[rel.Word] = struct{}{}
		return len(picked) >= tabooWordCount
	}

	// Pass 1: high-confidence relations that are not trivial spelling
	// variants of the target, best embedding similarity first.
	firstPass := make([]relations.Edge, 0, len(rels))
	for _, rel := range rels {
		if _, ok := pass1Relations[rel.Relation]; !ok {
			continue
		}
		if rel.EditSimilarity == nil || *rel.EditSimilarity > maxEditSimilarityPass1 {
			continue
		}
		firstPass = append(firstPass, rel)
	}
	sort.SliceStable(firstPass, func(i, j int) bool {
		return similarityOrZero(firstPass[i]) > similarityOrZero(firstPass[j])
	})
	for _, rel := range firstPass {
		if accept(rel) {
			return picked
		}
	}

	// Pass 2: everything but synonym/derived_from, judged on lemma
	// distance, in the stored weight order.
	for _, rel := range rels {
		if _, excluded := pass2Excluded[rel.Relation]; excluded {
			continue
		}
		if rel.LemmaEditSimilarity == nil || *rel.LemmaEditSimilarity > maxLemmaEditSimilarityPass2 {
			continue
		}
		if accept(rel) {
			return picked
		}
	}

	return picked
}

// quotaFallback completes two-word targets with one related_to edge under
// the strict lemma bound until the quota is met.
func quotaFallback(complete, twoWord []candidate, minPerCategory int) []candidate {
	for _, c := range twoWord {
		if len(complete) >= minPerCategory {
			break
		}
		if rel, ok := findRelatedTo(c.picked, c.entry.WordRelations); ok {
			c.picked = append(c.picked, rel)
			complete = append(complete, c)
		}
	}
	return complete
}

func findRelatedTo(picked []relations.Edge, rels []relations.Edge) (relations.Edge, bool) {
	seen := make(map[string]struct{}, len(picked))
	for _, p := range picked {
		seen[p.Word] = struct{}{}
	}
	for _, rel := range rels {
		if rel.Relation != "related_to" {
			continue
		}
		if rel.LemmaEditSimilarity == nil || *rel.LemmaEditSimilarity > maxLemmaEditSimilarityPass3 {
			continue
		}
		if rel.Word == "" {
			continue
		}
		if _, dup := seen[rel.Word]; dup {
			continue
		}
		return rel, true
	}
	return relations.Edge{}, false
}

func tooSimilarToPicked(picked []relations.Edge, word string) bool {
	for _, p := range picked {
		if textsim.EditSimilarity(p.Word, word) > maxMutualEditSimilarity {
			return true
		}
	}
	return false
}

func similarityOrZero(rel relations.Edge) float64 {
	if rel.Similarity == nil {
		return 0
	}
	return *rel.Similarity
}

package taboo

import (
	"sort"

	"github.com/lexigame/wordmine/core/relations"
)

// DefaultRelationPriority is the sampling order for the frequency-ordered
// builder, strongest association first.
var DefaultRelationPriority = []string{
	"synonym", "related_to", "is_a", "has_a", "part_of",
	"used_for", "capable_of", "antonym", "derived_from",
	"similar_to", "made_of",
}

// BuilderConfig controls the frequency-ordered builder.
type BuilderConfig struct {
	// NumTabooWords is the required related-word count per target.
	NumTabooWords int
	// MaxWordsPerRelation caps how many words one relation may contribute.
	MaxWordsPerRelation int
	// HighFrequencyCount splits the output: the first N complete entries
	// (in target frequency order) form the high-frequency list.
	HighFrequencyCount int
	// RelationPriority is the sampling order; nil means
	// DefaultRelationPriority.
	RelationPriority []string
}

// RankedTarget is a target word with its corpus frequency.
type RankedTarget struct {
	Word  string
	Count int
}

// BuildByFrequency samples taboo words for targets in descending frequency
// order, diversifying across relation types: first one word per relation in
// priority order, then up to MaxWordsPerRelation from each. Targets that
// cannot reach NumTabooWords are skipped. The first HighFrequencyCount
// complete entries form the high-frequency list, the rest the low-frequency
// list.
func BuildByFrequency(targets []RankedTarget, edgesByTarget map[string][]relations.Edge, cfg BuilderConfig) (high, low []WordSet) {
	if cfg.NumTabooWords == 0 {
		cfg.NumTabooWords = tabooWordCount
	}
	if cfg.MaxWordsPerRelation == 0 {
		cfg.MaxWordsPerRelation = 2
	}
	priority := cfg.RelationPriority
	if priority == nil {
		priority = DefaultRelationPriority
	}

	ranked := make([]RankedTarget, len(targets))
	copy(ranked, targets)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	var entries []WordSet
	for _, target := range ranked {
		edges := edgesByTarget[target.Word]
		if len(edges) == 0 {
			continue
		}
		words := sampleAcrossRelations(edges, priority, cfg.NumTabooWords, cfg.MaxWordsPerRelation)
		if len(words) < cfg.NumTabooWords {
			continue
		}
		words = words[:cfg.NumTabooWords]
		entries = append(entries, WordSet{
			TargetWord:      target.Word,
			RelatedWord:     words,
			TargetWordStem:  target.Word,
			RelatedWordStem: words,
		})
	}

	split := cfg.HighFrequencyCount
	if split > len(entries) {
		split = len(entries)
	}
	return entries[:split], entries[split:]
}

func sampleAcrossRelations(edges []relations.Edge, priority []string, want, perRelation int) []string {
	byRelation := make(map[string][]relations.Edge)
	for _, e := range edges {
		byRelation[e.Relation] = append(byRelation[e.Relation], e)
	}
	for _, rels := range byRelation {
		sort.SliceStable(rels, func(i, j int) bool { return rels[i].Weight > rels[j].Weight })
	}

	var words []string
	used := make(map[string]struct{})
	fromRelation := make(map[string]int)

	// One word from each available relation first.
	for _, relation := range priority {
		if len(words) >= want {
			break
		}
		rels := byRelation[relation]
		if len(rels) == 0 {
			continue
		}
		word := rels[0].Word
		if _, dup := used[word]; dup {
			continue
		}
		words = append(words, word)
		used[word] = struct{}{}
		fromRelation[relation]++
	}

	// Then fill up to the per-relation cap.
	for _, relation := range priority {
		if len(words) >= want {
			break
		}
		for _, rel := range byRelation[relation] {
			if len(words) >= want || fromRelation[relation] >= perRelation {
				break
			}
			if _, dup := used[rel.Word]; dup {
				continue
			}
			words = append(words, rel.Word)
			used[rel.Word] = struct{}{}
			fromRelation[relation]++
		}
	}

	return words
}

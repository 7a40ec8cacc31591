package relations

import (
	"sort"
	"strings"

	"github.com/lexigame/wordmine/core/assertion"
)

// TranslationTable collects cross-language translations for a fixed word
// list. Matching is case-insensitive with underscores treated as spaces;
// the export keys keep the original spelling of the list.
type TranslationTable struct {
	originals map[string]string
	results   map[string]map[string]map[string]struct{}
	matches   int
}

// NewTranslationTable prepares a table for the given word list. Every list
// word appears in the export, translated or not.
func NewTranslationTable(words []string) *TranslationTable {
	t := &TranslationTable{
		originals: make(map[string]string, len(words)),
		results:   make(map[string]map[string]map[string]struct{}, len(words)),
	}
	for _, word := range words {
		t.originals[normalizeWord(word)] = word
		t.results[word] = make(map[string]map[string]struct{})
	}
	return t
}

func normalizeWord(s string) string {
	return strings.TrimSpace(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

// Observe records one translation pair when its source word is on the
// list. It reports whether the pair matched.
func (t *TranslationTable) Observe(pair assertion.TranslationPair) bool {
	original, ok := t.originals[normalizeWord(pair.Source)]
	if !ok {
		return false
	}

	byLang := t.results[original]
	if byLang[pair.TargetLang] == nil {
		byLang[pair.TargetLang] = make(map[string]struct{})
	}
	byLang[pair.TargetLang][pair.Target] = struct{}{}
	t.matches++
	return true
}

// Matches returns how many pairs were recorded, duplicates included.
func (t *TranslationTable) Matches() int {
	return t.matches
}

// Export returns word -> language -> sorted translations.
func (t *TranslationTable) Export() map[string]map[string][]string {
	out := make(map[string]map[string][]string, len(t.results))
	for word, byLang := range t.results {
		langs := make(map[string][]string, len(byLang))
		for lang, set := range byLang {
			words := make([]string, 0, len(set))
			for w := range set {
				words = append(words, w)
			}
			sort.Strings(words)
			langs[lang] = words
		}
		out[word] = langs
	}
	return out
}

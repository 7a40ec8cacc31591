// Package textsim provides normalized string similarity measures used when
// ranking and separating candidate words.
package textsim

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// EditSimilarity returns 1 - lev(a,b)/max(len(a),len(b)) over runes, in
// [0,1]. Identical strings score 1.0; when exactly one string is empty the
// score is 0.0.
func EditSimilarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	return 1.0 - float64(dist)/float64(maxLen)
}

// IsSingleWord reports whether text contains no interior spaces after
// trimming. Languages without space tokenization skip this check entirely.
func IsSingleWord(text string) bool {
	return !strings.Contains(strings.TrimSpace(text), " ")
}

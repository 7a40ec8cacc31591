// Package concept decodes ConceptNet concept URIs and relation URIs into
// their components. Decoding is pure and allocation-light; a failed decode is
// an expected, high-frequency outcome since assertion streams mix concept
// URIs with relation and source URIs.
package concept

import (
	"strings"
	"unicode"
)

// conceptPrefix is the namespace prefix for concept URIs.
const conceptPrefix = "/c/"

// Concept is a decoded concept URI of the form
// /c/{lang}/{text}[/{pos}[/{sense...}]].
//
// Text has the URI's underscore separators converted to single spaces. POS
// and Sense are empty when the URI does not carry them.
type Concept struct {
	Lang  string
	Text  string
	POS   string
	Sense string
}

// Parse decodes a concept URI. The boolean result is false when the URI does
// not start with the concept namespace or has fewer than four slash-separated
// segments; no error is returned because rejection is the common case.
func Parse(uri string) (Concept, bool) {
	if !strings.HasPrefix(uri, conceptPrefix) {
		return Concept{}, false
	}

	// Leading slash yields an empty first segment, so a minimal concept URI
	// "/c/en/cat" splits into ["", "c", "en", "cat"].
	parts := strings.Split(uri, "/")
	if len(parts) < 4 {
		return Concept{}, false
	}

	c := Concept{
		Lang: parts[2],
		Text: strings.ReplaceAll(parts[3], "_", " "),
	}
	if len(parts) > 4 {
		c.POS = parts[4]
	}
	if len(parts) > 5 {
		c.Sense = strings.Join(parts[5:], "/")
	}
	return c, true
}

// RelationLabel normalizes a relation URI such as "/r/IsA" to its snake_case
// label "is_a". The namespace prefix is stripped and CamelCase boundaries
// become underscores.
func RelationLabel(relation string) string {
	name := relation
	if idx := strings.LastIndex(relation, "/"); idx >= 0 {
		name = relation[idx+1:]
	}

	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// Boundary before an upper rune that follows a lower/digit rune,
			// or that starts a new word after an acronym run ("HTTPServer").
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package langpolicy holds per-language extraction settings: casing,
// acceptable word lengths, and whether whitespace tokenization is meaningful
// for the language. The built-in table covers the supported ConceptNet
// languages; a JSON file can override or extend it.
package langpolicy

import (
	"encoding/json"
	"os"
	"unicode/utf8"

	"github.com/lexigame/wordmine/core/errors"
)

// Policy is the extraction policy for one language.
type Policy struct {
	// Lowercase folds words to lower case before matching. German keeps
	// its noun capitalization.
	Lowercase bool `json:"lowercase"`
	// MinLen and MaxLen bound accepted word lengths in runes.
	MinLen int `json:"min_len"`
	MaxLen int `json:"max_len"`
	// SingleWordCheck is false for languages that do not tokenize by
	// space, such as Arabic and Urdu.
	SingleWordCheck bool `json:"single_word_check"`
}

// Accept reports whether a word's rune length falls inside the policy
// bounds.
func (p Policy) Accept(word string) bool {
	n := utf8.RuneCountInString(word)
	return n >= p.MinLen && n <= p.MaxLen
}

// Languages lists every language with a built-in policy, in table order.
var Languages = []string{
	"ar", "bg", "cs", "da", "de", "el", "en", "es", "et", "fi", "fr",
	"ga", "hr", "hu", "it", "lt", "lv", "mt", "nl", "pl", "pt",
	"ro", "ru", "sk", "sl", "sv", "tr", "ur",
}

// fallback applies to languages missing from the table.
var fallback = Policy{Lowercase: true, MinLen: 3, MaxLen: 15, SingleWordCheck: true}

var defaults = map[string]Policy{
	"ar": {Lowercase: true, MinLen: 2, MaxLen: 10, SingleWordCheck: false},
	"bg": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"cs": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"da": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"de": {Lowercase: false, MinLen: 4, MaxLen: 12, SingleWordCheck: true},
	"el": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"en": {Lowercase: true, MinLen: 3, MaxLen: 8, SingleWordCheck: true},
	"es": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"et": {Lowercase: true, MinLen: 3, MaxLen: 12, SingleWordCheck: true},
	"fi": {Lowercase: true, MinLen: 3, MaxLen: 12, SingleWordCheck: true},
	"fr": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"ga": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"hr": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"hu": {Lowercase: true, MinLen: 3, MaxLen: 12, SingleWordCheck: true},
	"it": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"lt": {Lowercase: true, MinLen: 3, MaxLen: 12, SingleWordCheck: true},
	"lv": {Lowercase: true, MinLen: 3, MaxLen: 12, SingleWordCheck: true},
	"mt": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"nl": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"pl": {Lowercase: true, MinLen: 3, MaxLen: 12, SingleWordCheck: true},
	"pt": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"ro": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"ru": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"sk": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"sl": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"sv": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"tr": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: true},
	"ur": {Lowercase: true, MinLen: 3, MaxLen: 10, SingleWordCheck: false},
}

// Table maps language codes to policies. The zero value falls back to the
// built-in defaults for every lookup.
type Table struct {
	overrides map[string]Policy
}

// Get returns the policy for a language code, preferring an override, then
// the built-in table, then the permissive fallback.
func (t Table) Get(lang string) Policy {
	if p, ok := t.overrides[lang]; ok {
		return p
	}
	if p, ok := defaults[lang]; ok {
		return p
	}
	return fallback
}

// Load reads a JSON object mapping language codes to policies and returns a
// table that overlays it on the defaults. Languages absent from the file
// keep their built-in policy.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, errors.NewNotFound("language policy file", path)
		}
		return Table{}, errors.NewIO("read", path, err)
	}

	var overrides map[string]Policy
	if err := json.Unmarshal(data, &overrides); err != nil {
		return Table{}, errors.NewParse("JSON", path, err.Error())
	}
	return Table{overrides: overrides}, nil
}

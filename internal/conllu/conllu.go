// Package conllu extracts noun lemmas with frequencies from Universal
// Dependencies CoNLL-U treebanks.
package conllu

import (
	"archive/tar"
	"bufio"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/lexigame/wordmine/internal/corpus"
)

// TreebankPrefix maps ISO 639-1 codes to UD treebank folder prefixes.
var TreebankPrefix = map[string]string{
	"bg": "UD_Bulgarian",
	"cs": "UD_Czech",
	"da": "UD_Danish",
	"de": "UD_German",
	"el": "UD_Greek",
	"en": "UD_English",
	"es": "UD_Spanish",
	"et": "UD_Estonian",
	"fi": "UD_Finnish",
	"fr": "UD_French",
	"ga": "UD_Irish",
	"hr": "UD_Croatian",
	"hu": "UD_Hungarian",
	"it": "UD_Italian",
	"lt": "UD_Lithuanian",
	"lv": "UD_Latvian",
	"mt": "UD_Maltese",
	"nl": "UD_Dutch",
	"pl": "UD_Polish",
	"pt": "UD_Portuguese",
	"ro": "UD_Romanian",
	"ru": "UD_Russian",
	"sk": "UD_Slovak",
	"sl": "UD_Slovenian",
	"sv": "UD_Swedish",
	"tr": "UD_Turkish",
	"ur": "UD_Urdu",
}

// CleanNoun strips leading and trailing non-alphanumeric runes and rejects
// residue that is digits-only or empty. Internal punctuation (hyphens,
// apostrophes) survives.
func CleanNoun(noun string) (string, bool) {
	cleaned := strings.TrimSpace(noun)
	cleaned = strings.TrimFunc(cleaned, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if cleaned == "" {
		return "", false
	}

	digitsOnly := true
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			digitsOnly = false
			break
		}
	}
	if digitsOnly {
		return "", false
	}
	return cleaned, true
}

// Options control lemma extraction for one language.
type Options struct {
	// Lang gates the treebank-artifact filter: non-English treebanks use
	// the literal lemma "unknown" as a placeholder.
	Lang string
	// Lowercase folds lemmas before counting.
	Lowercase bool
	// TargetLength keeps only lemmas of exactly this rune count; zero
	// disables the check.
	TargetLength int
	// MinLen and MaxLen bound lemma rune counts when TargetLength is
	// zero; both zero disables the bound.
	MinLen int
	MaxLen int
}

// Extractor accumulates noun lemma frequencies across CoNLL-U input.
type Extractor struct {
	opts   Options
	counts map[string]int
}

// NewExtractor returns an empty extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts, counts: make(map[string]int)}
}

// AddLine parses one CoNLL-U line and counts its lemma when the line is a
// plain NOUN token passing the filters. Comments, empty lines, multi-word
// ranges and empty nodes are ignored.
func (e *Extractor) AddLine(line string) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	fields := strings.Split(line, "\t")
	if len(fields) < 10 {
		return
	}

	// Multi-word token ranges carry "-" IDs, empty nodes "." IDs.
	id := fields[0]
	if strings.ContainsAny(id, "-.") {
		return
	}

	form, lemma, upos := fields[1], fields[2], fields[3]
	if upos != "NOUN" {
		return
	}
	if lemma == "_" {
		lemma = form
	}

	lemma, ok := CleanNoun(lemma)
	if !ok {
		return
	}
	if e.opts.Lang != "en" && strings.ToLower(lemma) == "unknown" {
		return
	}
	if e.opts.Lowercase {
		lemma = strings.ToLower(lemma)
	}

	n := len([]rune(lemma))
	if e.opts.TargetLength > 0 {
		if n != e.opts.TargetLength {
			return
		}
	} else if e.opts.MinLen > 0 || e.opts.MaxLen > 0 {
		if n < e.opts.MinLen || n > e.opts.MaxLen {
			return
		}
	}

	e.counts[lemma]++
}

// AddReader feeds every line of r through AddLine.
func (e *Extractor) AddReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		e.AddLine(scanner.Text())
	}
	return scanner.Err()
}

// Counts returns the accumulated lemma frequencies.
func (e *Extractor) Counts() map[string]int {
	return e.counts
}

// Ranked returns the lemmas sorted by frequency descending, ties broken
// alphabetically.
func (e *Extractor) Ranked() []RankedNoun {
	ranked := make([]RankedNoun, 0, len(e.counts))
	for word, count := range e.counts {
		ranked = append(ranked, RankedNoun{Word: word, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})
	return ranked
}

// RankedNoun is a lemma with its treebank frequency.
type RankedNoun struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SplitByRank divides ranked nouns into an easy list (the first n) and a
// medium list (the rest).
func SplitByRank(ranked []RankedNoun, n int) (easy, medium []string) {
	if n > len(ranked) {
		n = len(ranked)
	}
	easy = make([]string, 0, n)
	for _, rn := range ranked[:n] {
		easy = append(easy, rn.Word)
	}
	for _, rn := range ranked[n:] {
		medium = append(medium, rn.Word)
	}
	return easy, medium
}

// ExtractFromTarball scans a UD release tarball and feeds every .conllu
// member of the language's treebanks through the extractor. Members are
// matched by folder prefix substring, the way UD names treebank directories
// (UD_English-EWT, UD_English-GUM, ...).
func (e *Extractor) ExtractFromTarball(path, folderPrefix string) error {
	return corpus.IterateTarball(path, func(header *tar.Header, content io.Reader) (bool, error) {
		if !strings.Contains(header.Name, folderPrefix) || !strings.HasSuffix(header.Name, ".conllu") {
			return false, nil
		}
		if err := e.AddReader(content); err != nil {
			return false, err
		}
		return false, nil
	})
}

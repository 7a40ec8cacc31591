// Package wikiwords counts word frequencies in Wikipedia article dumps.
// Pages are stream-parsed so a multi-gigabyte dump never loads whole;
// article text is normalized, tokenized against the language's alphabet and
// counted.
package wikiwords

import (
	"context"
	"io"
	"sort"
	"strings"
	"unicode"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/text/unicode/norm"

	"github.com/lexigame/wordmine/core/errors"
	"github.com/lexigame/wordmine/internal/nounfreq"
)

// Options control one extraction run.
type Options struct {
	Lang string
	// TargetLength keeps only words of exactly this rune count; zero
	// keeps every word.
	TargetLength int
	// MinFrequency drops words seen fewer times at export.
	MinFrequency int
}

// Counter accumulates word frequencies from article text.
type Counter struct {
	opts    Options
	letters map[rune]struct{}
	vowels  map[rune]struct{}
	counts  map[string]int
}

// NewCounter builds a counter for the language named in opts. Languages
// without an alphabet table fall back to unicode letter classes.
func NewCounter(opts Options) *Counter {
	c := &Counter{opts: opts, counts: make(map[string]int)}
	if a, ok := Alphabets[opts.Lang]; ok {
		c.letters = runeSet(normalize(a.Letters, opts.Lang))
		if a.Vowels != "" {
			c.vowels = runeSet(normalize(a.Vowels, opts.Lang))
		}
	}
	return c
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// normalize folds text to NFC lowercase. Lowercasing the Turkish dotted İ
// leaves a combining dot above that would break length checks, so it is
// removed.
func normalize(text, lang string) string {
	text = norm.NFC.String(text)
	text = strings.ToLower(text)
	if lang == "tr" {
		text = strings.ReplaceAll(text, "̇", "")
	}
	return text
}

func (c *Counter) isLetter(r rune) bool {
	if c.letters != nil {
		_, ok := c.letters[r]
		return ok
	}
	return unicode.IsLetter(r)
}

func (c *Counter) hasVowel(word string) bool {
	if c.vowels == nil {
		return true
	}
	for _, r := range word {
		if _, ok := c.vowels[r]; ok {
			return true
		}
	}
	return false
}

// AddText tokenizes one article body into maximal letter runs and counts
// the words that pass the length and vowel checks.
func (c *Counter) AddText(text string) {
	text = normalize(text, c.opts.Lang)

	var word []rune
	flush := func() {
		if len(word) == 0 {
			return
		}
		w := string(word)
		word = word[:0]
		if c.opts.TargetLength > 0 && len([]rune(w)) != c.opts.TargetLength {
			return
		}
		if !c.hasVowel(w) {
			return
		}
		c.counts[w]++
	}

	for _, r := range text {
		if c.isLetter(r) {
			word = append(word, r)
			continue
		}
		flush()
	}
	flush()
}

// pageTextPath selects the article body inside one streamed page element.
var pageTextPath = xpath.MustCompile("revision/text")

// AddDump stream-parses a MediaWiki XML export, feeding every page's text
// element through AddText. The context aborts between pages; the counts
// gathered so far stay valid.
func (c *Counter) AddDump(ctx context.Context, r io.Reader) error {
	parser, err := xmlquery.CreateStreamParser(r, "//page")
	if err != nil {
		return errors.NewParse("XML", "", err.Error())
	}

	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrInterrupted, "dump scan")
		}
		page, err := parser.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.NewParse("XML", "", err.Error())
		}
		if text := xmlquery.QuerySelector(page, pageTextPath); text != nil {
			c.AddText(text.InnerText())
		}
	}
}

// Words returns the counted words at or above MinFrequency, sorted
// alphabetically.
func (c *Counter) Words() []nounfreq.Entry {
	var entries []nounfreq.Entry
	for word, count := range c.counts {
		if count < c.opts.MinFrequency {
			continue
		}
		entries = append(entries, nounfreq.Entry{Word: word, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word })
	return entries
}

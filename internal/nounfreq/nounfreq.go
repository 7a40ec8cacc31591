// Package nounfreq loads, filters and merges the per-language noun
// frequency CSVs that rank taboo targets. The files carry a word,count
// header row, one noun per line.
package nounfreq

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lexigame/wordmine/core/errors"
	"github.com/lexigame/wordmine/internal/langpolicy"
)

// Entry is one noun with its corpus frequency.
type Entry struct {
	Word  string
	Count int
}

// Read parses a word,count CSV stream. Rows with a non-numeric count or an
// empty word are dropped, which also covers the header row.
func Read(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var entries []Entry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParse("CSV", "", err.Error())
		}
		if len(record) < 2 {
			continue
		}
		word := strings.TrimSpace(record[0])
		count, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil || word == "" {
			continue
		}
		entries = append(entries, Entry{Word: word, Count: count})
	}
	return entries, nil
}

// ReadFile reads a frequency CSV from disk.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewNotFound("noun frequency list", path)
		}
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Filter applies a language policy: case folding, then the rune length
// bounds. Entries failing the bounds are dropped.
func Filter(entries []Entry, policy langpolicy.Policy) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		word := e.Word
		if policy.Lowercase {
			word = strings.ToLower(word)
		}
		if !policy.Accept(word) {
			continue
		}
		out = append(out, Entry{Word: word, Count: e.Count})
	}
	return out
}

// Merge sums counts across lists; a word appearing in several lists gets
// the total. The result is sorted by count descending, ties alphabetical.
func Merge(lists ...[]Entry) []Entry {
	counts := make(map[string]int)
	for _, list := range lists {
		for _, e := range list {
			counts[e.Word] += e.Count
		}
	}

	merged := make([]Entry, 0, len(counts))
	for word, count := range counts {
		merged = append(merged, Entry{Word: word, Count: count})
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Count != merged[j].Count {
			return merged[i].Count > merged[j].Count
		}
		return merged[i].Word < merged[j].Word
	})
	return merged
}

// Write emits entries as a word,count CSV with a header row.
func Write(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"word", "count"}); err != nil {
		return errors.NewIO("write", "", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Word, strconv.Itoa(e.Count)}); err != nil {
			return errors.NewIO("write", "", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.NewIO("write", "", err)
	}
	return nil
}

package wikiwords

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/lexigame/wordmine/core/errors"
	"github.com/lexigame/wordmine/internal/nounfreq"
)

func TestAddTextTokenizesAndCounts(t *testing.T) {
	c := NewCounter(Options{Lang: "en"})
	c.AddText("The quick brown fox, the lazy dog.")

	counts := map[string]int{}
	for _, e := range c.Words() {
		counts[e.Word] = e.Count
	}
	if counts["the"] != 2 {
		t.Errorf(`count of "the" = %d, want 2`, counts["the"])
	}
	if counts["fox"] != 1 || counts["dog"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestAddTextTargetLength(t *testing.T) {
	c := NewCounter(Options{Lang: "en", TargetLength: 5})
	c.AddText("house trees and houses")

	words := c.Words()
	want := []nounfreq.Entry{{Word: "house", Count: 1}, {Word: "trees", Count: 1}}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Words = %v, want %v", words, want)
	}
}

func TestAddTextAlphabetBound(t *testing.T) {
	// Cyrillic letters are not in the English alphabet, so a mixed token
	// splits at the script boundary.
	c := NewCounter(Options{Lang: "en"})
	c.AddText("catдog")

	counts := map[string]int{}
	for _, e := range c.Words() {
		counts[e.Word] = e.Count
	}
	if counts["cat"] != 1 || counts["og"] != 1 {
		t.Errorf("counts = %v, want the token split at the foreign letter", counts)
	}
}

func TestAddTextVowelRequirement(t *testing.T) {
	c := NewCounter(Options{Lang: "en"})
	c.AddText("rhythm crwth shh dog")

	counts := map[string]int{}
	for _, e := range c.Words() {
		counts[e.Word] = e.Count
	}
	// "rhythm" has a y, which counts as an English vowel; "crwth" and
	// "shh" have none.
	if _, ok := counts["crwth"]; ok {
		t.Error("vowelless word survived the vowel check")
	}
	if _, ok := counts["shh"]; ok {
		t.Error("vowelless word survived the vowel check")
	}
	if counts["rhythm"] != 1 || counts["dog"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestTurkishCombiningDot(t *testing.T) {
	c := NewCounter(Options{Lang: "tr", TargetLength: 5})
	// Uppercase dotted İ lowercases to i plus a combining dot; the dot
	// must not count toward word length.
	c.AddText("İzmir")

	words := c.Words()
	if len(words) != 1 || words[0].Word != "izmir" {
		t.Errorf("Words = %v, want izmir counted as five runes", words)
	}
}

func TestMinFrequency(t *testing.T) {
	c := NewCounter(Options{Lang: "en", MinFrequency: 2})
	c.AddText("dog dog cat")

	words := c.Words()
	want := []nounfreq.Entry{{Word: "dog", Count: 2}}
	if !reflect.DeepEqual(words, want) {
		t.Errorf("Words = %v, want %v", words, want)
	}
}

const sampleDump = `<mediawiki>
  <page>
    <title>Dog</title>
    <revision>
      <text>The dog barked at the other dog.</text>
    </revision>
  </page>
  <page>
    <title>Cat</title>
    <revision>
      <text>A cat sat.</text>
    </revision>
  </page>
</mediawiki>`

func TestAddDump(t *testing.T) {
	c := NewCounter(Options{Lang: "en"})
	if err := c.AddDump(context.Background(), strings.NewReader(sampleDump)); err != nil {
		t.Fatalf("AddDump: %v", err)
	}

	counts := map[string]int{}
	for _, e := range c.Words() {
		counts[e.Word] = e.Count
	}
	if counts["dog"] != 2 || counts["cat"] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestAddDumpInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCounter(Options{Lang: "en"})
	err := c.AddDump(ctx, strings.NewReader(sampleDump))
	if !errors.Is(err, errors.ErrInterrupted) {
		t.Errorf("AddDump with a canceled context = %v, want ErrInterrupted", err)
	}
}

package taboo

import (
	"reflect"
	"testing"

	"github.com/lexigame/wordmine/core/relations"
)

func TestBuildByFrequencyDiversifiesRelations(t *testing.T) {
	targets := []RankedTarget{{Word: "dog", Count: 100}}
	edges := map[string][]relations.Edge{
		"dog": {
			{Word: "hound", Relation: "synonym", Weight: 4.0},
			{Word: "canine", Relation: "synonym", Weight: 3.0},
			{Word: "pooch", Relation: "synonym", Weight: 2.0},
			{Word: "leash", Relation: "related_to", Weight: 1.0},
			{Word: "pet", Relation: "is_a", Weight: 5.0},
		},
	}

	high, low := BuildByFrequency(targets, edges, BuilderConfig{HighFrequencyCount: 50})
	if len(low) != 0 {
		t.Fatalf("low has %d entries, want 0", len(low))
	}
	if len(high) != 1 {
		t.Fatalf("high has %d entries, want 1", len(high))
	}
	// One word per relation in priority order, not three synonyms.
	want := []string{"hound", "leash", "pet"}
	if !reflect.DeepEqual(high[0].RelatedWord, want) {
		t.Errorf("RelatedWord = %v, want %v", high[0].RelatedWord, want)
	}
}

func TestBuildByFrequencyPerRelationCap(t *testing.T) {
	// Two relations available: the fill pass may take a second synonym but
	// never a third.
	targets := []RankedTarget{{Word: "dog", Count: 1}}
	edges := map[string][]relations.Edge{
		"dog": {
			{Word: "hound", Relation: "synonym", Weight: 4.0},
			{Word: "canine", Relation: "synonym", Weight: 3.0},
			{Word: "pooch", Relation: "synonym", Weight: 2.0},
			{Word: "leash", Relation: "related_to", Weight: 1.0},
		},
	}

	high, _ := BuildByFrequency(targets, edges, BuilderConfig{HighFrequencyCount: 50})
	if len(high) != 1 {
		t.Fatalf("high has %d entries, want 1", len(high))
	}
	want := []string{"hound", "leash", "canine"}
	if !reflect.DeepEqual(high[0].RelatedWord, want) {
		t.Errorf("RelatedWord = %v, want %v", high[0].RelatedWord, want)
	}
}

func TestBuildByFrequencySkipsShortTargets(t *testing.T) {
	// A single relation caps at two words, so the target never completes.
	targets := []RankedTarget{{Word: "dog", Count: 1}}
	edges := map[string][]relations.Edge{
		"dog": {
			{Word: "hound", Relation: "synonym", Weight: 4.0},
			{Word: "canine", Relation: "synonym", Weight: 3.0},
			{Word: "pooch", Relation: "synonym", Weight: 2.0},
		},
	}

	high, low := BuildByFrequency(targets, edges, BuilderConfig{HighFrequencyCount: 50})
	if len(high) != 0 || len(low) != 0 {
		t.Errorf("got %d high and %d low entries, want none", len(high), len(low))
	}
}

func TestBuildByFrequencySplitAndOrder(t *testing.T) {
	targets := []RankedTarget{
		{Word: "rare", Count: 1},
		{Word: "common", Count: 100},
	}
	mk := func(a, b, c string) []relations.Edge {
		return []relations.Edge{
			{Word: a, Relation: "synonym", Weight: 3.0},
			{Word: b, Relation: "related_to", Weight: 2.0},
			{Word: c, Relation: "is_a", Weight: 1.0},
		}
	}
	edges := map[string][]relations.Edge{
		"rare":   mk("scarce", "gem", "adjective"),
		"common": mk("usual", "crowd", "adjective"),
	}

	high, low := BuildByFrequency(targets, edges, BuilderConfig{HighFrequencyCount: 1})
	if len(high) != 1 || len(low) != 1 {
		t.Fatalf("got %d high and %d low entries, want 1 and 1", len(high), len(low))
	}
	if high[0].TargetWord != "common" {
		t.Errorf("high target = %q, want the most frequent word", high[0].TargetWord)
	}
	if low[0].TargetWord != "rare" {
		t.Errorf("low target = %q, want %q", low[0].TargetWord, "rare")
	}
}

func TestBuildByFrequencySkipsDuplicateWords(t *testing.T) {
	targets := []RankedTarget{{Word: "dog", Count: 1}}
	edges := map[string][]relations.Edge{
		"dog": {
			{Word: "hound", Relation: "synonym", Weight: 4.0},
			{Word: "hound", Relation: "related_to", Weight: 3.0},
			{Word: "pet", Relation: "is_a", Weight: 2.0},
			{Word: "leash", Relation: "related_to", Weight: 1.0},
		},
	}

	high, _ := BuildByFrequency(targets, edges, BuilderConfig{HighFrequencyCount: 50})
	if len(high) != 1 {
		t.Fatalf("high has %d entries, want 1", len(high))
	}
	want := []string{"hound", "pet", "leash"}
	if !reflect.DeepEqual(high[0].RelatedWord, want) {
		t.Errorf("RelatedWord = %v, want %v", high[0].RelatedWord, want)
	}
}

package sqlitedb

import (
	"path/filepath"
	"testing"

	"github.com/lexigame/wordmine/core/taboo"
)

func TestInsertWordSets(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	sets := []taboo.WordSet{
		{TargetWord: "apple", RelatedWord: []string{"pome", "fruit", "pie"}},
		{TargetWord: "dog", RelatedWord: []string{"hound", "pet", "leash"}},
	}
	if err := InsertWordSets(db, "en", "food", sets); err != nil {
		t.Fatalf("InsertWordSets: %v", err)
	}

	var count int
	if err := db.QueryRow(
		`SELECT COUNT(*) FROM taboo_words WHERE lang = ? AND category = ?`, "en", "food",
	).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("stored %d rows, want 2", count)
	}

	var related string
	if err := db.QueryRow(
		`SELECT related_words FROM taboo_words WHERE target_word = ?`, "apple",
	).Scan(&related); err != nil {
		t.Fatal(err)
	}
	if related != `["pome","fruit","pie"]` {
		t.Errorf("related_words = %s", related)
	}
}

func TestInsertHierarchyEdgesIgnoresDuplicates(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	edges := []HierarchyEdge{
		{Child: "cat", Parent: "pet"},
		{Child: "cat", Parent: "animal"},
	}
	if err := InsertHierarchyEdges(db, edges); err != nil {
		t.Fatalf("InsertHierarchyEdges: %v", err)
	}
	if err := InsertHierarchyEdges(db, edges); err != nil {
		t.Fatalf("InsertHierarchyEdges again: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM hierarchy_edges`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("stored %d edges after duplicate insert, want 2", count)
	}
}

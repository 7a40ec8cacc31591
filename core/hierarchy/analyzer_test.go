package hierarchy

import (
	"reflect"
	"testing"
)

func TestExportHierarchy(t *testing.T) {
	g := sampleGraph()
	export := g.ExportHierarchy()

	want := Export{
		ParentToChildren: map[string][]string{
			"pet":    {"cat", "dog"},
			"animal": {"cat", "pet"},
		},
		ChildToParents: map[string][]string{
			"cat": {"animal", "pet"},
			"dog": {"pet"},
			"pet": {"animal"},
		},
	}
	if !reflect.DeepEqual(export, want) {
		t.Errorf("ExportHierarchy() = %+v, want %+v", export, want)
	}
}

func TestExportFlatCategories(t *testing.T) {
	g := NewGraph()
	// wide has six descendants and qualifies; narrow has two and does not.
	for _, c := range []string{"c1", "c2", "c3", "c4", "c5"} {
		g.AddEdge(c, "wide")
	}
	g.AddEdge("sub", "wide")
	g.AddEdge("n1", "narrow")
	g.AddEdge("n2", "narrow")
	g.AddEdge("wide", "top")

	flat := g.ExportFlatCategories(10)

	if _, ok := flat["narrow"]; ok {
		t.Error("narrow has fewer than five descendants and must not qualify")
	}

	wide, ok := flat["wide"]
	if !ok {
		t.Fatal("wide should qualify")
	}
	if wide.Stats.DirectChildrenCount != 6 {
		t.Errorf("direct children count = %d, want 6", wide.Stats.DirectChildrenCount)
	}
	if wide.Stats.TotalDescendantsCount != 6 {
		t.Errorf("total descendants count = %d, want 6", wide.Stats.TotalDescendantsCount)
	}
	if !reflect.DeepEqual(wide.Stats.ParentCategories, []string{"top"}) {
		t.Errorf("parent categories = %v, want [top]", wide.Stats.ParentCategories)
	}
	wantChildren := []string{"c1", "c2", "c3", "c4", "c5", "sub"}
	if !reflect.DeepEqual(wide.DirectChildren, wantChildren) {
		t.Errorf("direct children = %v, want %v", wide.DirectChildren, wantChildren)
	}
	if !reflect.DeepEqual(wide.AllDescendants, wantChildren) {
		t.Errorf("all descendants = %v, want %v", wide.AllDescendants, wantChildren)
	}
}

func TestExportFlatCategoriesTopN(t *testing.T) {
	g := NewGraph()
	for _, c := range []string{"a1", "a2", "a3", "a4", "a5", "a6"} {
		g.AddEdge(c, "larger")
	}
	for _, c := range []string{"b1", "b2", "b3", "b4", "b5"} {
		g.AddEdge(c, "smaller")
	}

	flat := g.ExportFlatCategories(1)
	if len(flat) != 1 {
		t.Fatalf("got %d categories, want 1", len(flat))
	}
	if _, ok := flat["larger"]; !ok {
		t.Error("topN must keep the category with the most descendants")
	}
}

func TestExportStats(t *testing.T) {
	g := sampleGraph()
	stats := g.ExportStats()

	if stats.TotalConcepts != 4 {
		t.Errorf("TotalConcepts = %d, want 4", stats.TotalConcepts)
	}
	if stats.TotalParentCategories != 2 {
		t.Errorf("TotalParentCategories = %d, want 2", stats.TotalParentCategories)
	}
	if stats.TotalChildConcepts != 3 {
		t.Errorf("TotalChildConcepts = %d, want 3", stats.TotalChildConcepts)
	}
	if stats.LeafConcepts != 2 {
		t.Errorf("LeafConcepts = %d, want 2", stats.LeafConcepts)
	}
	if !reflect.DeepEqual(stats.SampleLeafConcepts, []string{"cat", "dog"}) {
		t.Errorf("SampleLeafConcepts = %v", stats.SampleLeafConcepts)
	}
	// Too small a graph for root candidates with the default bound.
	if len(stats.TopRootCategories) != 0 {
		t.Errorf("TopRootCategories = %v, want none", stats.TopRootCategories)
	}
}

func TestIsolatedConceptIsLeaf(t *testing.T) {
	g := sampleGraph()
	// An isolated concept appears only via a self-contained edge pair where
	// it never acts as a parent.
	g.AddEdge("island", "animal")

	leaves := g.Leaves()
	found := false
	for _, l := range leaves {
		if l == "island" {
			found = true
		}
	}
	if !found {
		t.Error("island never acts as a parent and must be a leaf")
	}
}

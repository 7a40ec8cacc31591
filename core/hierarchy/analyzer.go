package hierarchy

import "sort"

// Export mirrors both adjacency views with sorted value lists, the on-disk
// hierarchy shape.
type Export struct {
	ParentToChildren map[string][]string `json:"parent_to_children"`
	ChildToParents   map[string][]string `json:"child_to_parents"`
}

// FlatCategory summarizes one top category for the flat export.
type FlatCategory struct {
	DirectChildren []string          `json:"direct_children"`
	AllDescendants []string          `json:"all_descendants"`
	Stats          FlatCategoryStats `json:"stats"`
}

// FlatCategoryStats carries the counts and parent categories for a flat
// category entry.
type FlatCategoryStats struct {
	DirectChildrenCount   int      `json:"direct_children_count"`
	TotalDescendantsCount int      `json:"total_descendants_count"`
	ParentCategories      []string `json:"parent_categories"`
}

// StatsExport is the aggregate statistics artifact.
type StatsExport struct {
	TotalConcepts         int             `json:"total_concepts"`
	TotalParentCategories int             `json:"total_parent_categories"`
	TotalChildConcepts    int             `json:"total_child_concepts"`
	LeafConcepts          int             `json:"leaf_concepts"`
	TopRootCategories     []RootCandidate `json:"top_root_categories"`
	SampleLeafConcepts    []string        `json:"sample_leaf_concepts"`
}

const (
	// minFlatDescendants is the qualification bound for the flat export.
	minFlatDescendants = 5
	// topRootCount limits root candidates in the stats export.
	topRootCount = 20
	// sampleLeafCount limits the leaf sample in the stats export.
	sampleLeafCount = 50
	// defaultMinRootDescendants is the root-candidate descendant bound.
	defaultMinRootDescendants = 10
)

// ExportHierarchy returns both adjacency maps with children and parents
// sorted, so repeated runs over identical input serialize identically.
func (g *Graph) ExportHierarchy() Export {
	out := Export{
		ParentToChildren: make(map[string][]string, len(g.parentToChildren)),
		ChildToParents:   make(map[string][]string, len(g.childToParents)),
	}
	for parent, children := range g.parentToChildren {
		out.ParentToChildren[parent] = sortedKeys(children)
	}
	for child, parents := range g.childToParents {
		out.ChildToParents[child] = sortedKeys(parents)
	}
	return out
}

// ExportFlatCategories returns the topN parent concepts by total descendant
// count, each with direct children, full descendant set and parent
// categories. Concepts with fewer than five descendants do not qualify.
func (g *Graph) ExportFlatCategories(topN int) map[string]FlatCategory {
	type sized struct {
		name        string
		descendants int
	}

	var candidates []sized
	for conceptName := range g.parentToChildren {
		n := len(g.Descendants(conceptName))
		if n >= minFlatDescendants {
			candidates = append(candidates, sized{name: conceptName, descendants: n})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].descendants > candidates[j].descendants
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	result := make(map[string]FlatCategory, len(candidates))
	for _, c := range candidates {
		descendants := sortedSet(g.Descendants(c.name))
		directChildren := sortedKeys(g.parentToChildren[c.name])
		result[c.name] = FlatCategory{
			DirectChildren: directChildren,
			AllDescendants: descendants,
			Stats: FlatCategoryStats{
				DirectChildrenCount:   len(directChildren),
				TotalDescendantsCount: c.descendants,
				ParentCategories:      sortedKeys(g.childToParents[c.name]),
			},
		}
	}
	return result
}

// ExportStats returns the aggregate statistics for the graph: totals, leaf
// count, the top-20 root candidates and a sorted sample of up to 50 leaves.
func (g *Graph) ExportStats() StatsExport {
	leaves := g.Leaves()
	roots := g.RootCandidates(defaultMinRootDescendants)
	if len(roots) > topRootCount {
		roots = roots[:topRootCount]
	}

	sample := leaves
	if len(sample) > sampleLeafCount {
		sample = sample[:sampleLeafCount]
	}

	return StatsExport{
		TotalConcepts:         len(g.concepts),
		TotalParentCategories: len(g.parentToChildren),
		TotalChildConcepts:    len(g.childToParents),
		LeafConcepts:          len(leaves),
		TopRootCategories:     roots,
		SampleLeafConcepts:    sample,
	}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

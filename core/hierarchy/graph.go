// Package hierarchy maintains the child/parent concept graph extracted from
// is-a and instance-of assertions, and derives closures, bounded trees, root
// candidates and category exports from it.
package hierarchy

import "sort"

// Graph is a string-keyed directed graph over concept texts. Both adjacency
// views are kept in lockstep: an accepted edge is always present in the
// child's parent set and the parent's child set.
//
// Concepts are created implicitly the first time they appear as an edge
// endpoint and never removed. Graph is not safe for concurrent mutation;
// each pipeline run owns its graph exclusively.
type Graph struct {
	childToParents   map[string]map[string]struct{}
	parentToChildren map[string]map[string]struct{}
	concepts         map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		childToParents:   make(map[string]map[string]struct{}),
		parentToChildren: make(map[string]map[string]struct{}),
		concepts:         make(map[string]struct{}),
	}
}

// AddEdge records child-is-a-parent. Re-adding an existing edge is a no-op.
func (g *Graph) AddEdge(child, parent string) {
	parents, ok := g.childToParents[child]
	if !ok {
		parents = make(map[string]struct{})
		g.childToParents[child] = parents
	}
	parents[parent] = struct{}{}

	children, ok := g.parentToChildren[parent]
	if !ok {
		children = make(map[string]struct{})
		g.parentToChildren[parent] = children
	}
	children[child] = struct{}{}

	g.concepts[child] = struct{}{}
	g.concepts[parent] = struct{}{}
}

// EdgeCount returns the number of distinct (child, parent) edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, parents := range g.childToParents {
		n += len(parents)
	}
	return n
}

// ConceptCount returns the number of distinct concepts seen as an endpoint.
func (g *Graph) ConceptCount() int { return len(g.concepts) }

// Parents returns the sorted direct parents of concept. Unknown concepts
// have no parents; no error is raised.
func (g *Graph) Parents(concept string) []string {
	return sortedKeys(g.childToParents[concept])
}

// Children returns the sorted direct children of concept.
func (g *Graph) Children(concept string) []string {
	return sortedKeys(g.parentToChildren[concept])
}

// Ancestors returns every concept reachable by repeatedly following parent
// links from concept, excluding concept itself.
//
// Traversal is an explicit worklist with a visited-set cycle guard: a node
// already expanded in this traversal is not expanded again, so ancestors
// reachable only through a revisited node are under-counted. That matches
// the extraction's documented policy and is asserted as such in tests; it is
// not full transitive closure on cyclic inputs.
func (g *Graph) Ancestors(concept string) map[string]struct{} {
	return g.closure(concept, g.childToParents)
}

// Descendants returns every concept reachable via child links from concept,
// excluding concept itself, under the same cycle-guard policy as Ancestors.
func (g *Graph) Descendants(concept string) map[string]struct{} {
	return g.closure(concept, g.parentToChildren)
}

func (g *Graph) closure(start string, adj map[string]map[string]struct{}) map[string]struct{} {
	result := make(map[string]struct{})
	visited := map[string]struct{}{start: {}}
	stack := []string{start}

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for next := range adj[node] {
			result[next] = struct{}{}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			stack = append(stack, next)
		}
	}

	// A cycle back to the start would otherwise report the start as its own
	// ancestor or descendant.
	delete(result, start)
	return result
}

// Tree is a nested concept mapping. A leaf maps to an empty, non-nil Tree.
type Tree map[string]Tree

// BuildTree returns the concept subtree rooted at root, descending at most
// maxDepth links. The visited set is path-local and copied per branch:
// a concept may appear under several siblings, but never as its own
// ancestor on a single root-to-node path.
func (g *Graph) BuildTree(root string, maxDepth int) Tree {
	return Tree{root: g.subtree(root, 0, maxDepth, map[string]struct{}{})}
}

func (g *Graph) subtree(node string, depth, maxDepth int, onPath map[string]struct{}) Tree {
	t := Tree{}
	if depth >= maxDepth {
		return t
	}
	if _, seen := onPath[node]; seen {
		return t
	}

	children := g.parentToChildren[node]
	if len(children) == 0 {
		return t
	}

	path := make(map[string]struct{}, len(onPath)+1)
	for k := range onPath {
		path[k] = struct{}{}
	}
	path[node] = struct{}{}

	for _, child := range sortedKeys(children) {
		t[child] = g.subtree(child, depth+1, maxDepth, path)
	}
	return t
}

// RootCandidate is a concept that heuristically looks like a top-level
// category: many descendants, at most two parents.
type RootCandidate struct {
	Name        string `json:"name"`
	Descendants int    `json:"descendants"`
	Parents     int    `json:"parents"`
}

// RootCandidates returns all concepts with at least one child whose
// descendant count is at least minDescendants and whose parent count is at
// most two, ordered by descendant count descending. Tie order between equal
// counts is unspecified.
func (g *Graph) RootCandidates(minDescendants int) []RootCandidate {
	var roots []RootCandidate
	for conceptName := range g.parentToChildren {
		descendants := len(g.Descendants(conceptName))
		parents := len(g.childToParents[conceptName])
		if descendants >= minDescendants && parents <= 2 {
			roots = append(roots, RootCandidate{
				Name:        conceptName,
				Descendants: descendants,
				Parents:     parents,
			})
		}
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Descendants > roots[j].Descendants
	})
	return roots
}

// Leaves returns the concepts that never appear as a parent key. A concept
// with no recorded parent and no recorded child still counts; "leaf" here
// means "never acts as a parent", not "has no edges".
func (g *Graph) Leaves() []string {
	var leaves []string
	for conceptName := range g.concepts {
		if _, isParent := g.parentToChildren[conceptName]; !isParent {
			leaves = append(leaves, conceptName)
		}
	}
	sort.Strings(leaves)
	return leaves
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

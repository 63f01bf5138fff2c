// Package depgraph builds an approximate directed dependency graph over
// partition units from lexical identifier matches. No scope, shadowing,
// or binding resolution is performed: an identifier that spells another
// unit's name counts as a reference.
package depgraph

// Edge is a directed lexical reference between two units.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph holds the unit name set and the ordered edge list. Edges keep
// duplicates (one per matching identifier occurrence, a frequency signal)
// and self-loops (recursive references).
type Graph struct {
	Nodes []string `json:"nodes"`
	Edges []Edge   `json:"edges"`
}

// HasNode reports whether name is a known unit name.
func (g *Graph) HasNode(name string) bool {
	for _, n := range g.Nodes {
		if n == name {
			return true
		}
	}
	return false
}

// OutDegree counts edges leaving the named unit, duplicates included.
func (g *Graph) OutDegree(name string) int {
	n := 0
	for _, e := range g.Edges {
		if e.From == name {
			n++
		}
	}
	return n
}

// Fanin returns distinct referencing units per target, useful for
// structural analysis prompts.
func (g *Graph) Fanin() map[string]int {
	seen := make(map[Edge]bool)
	fanin := make(map[string]int)
	for _, e := range g.Edges {
		if e.From == e.To || seen[e] {
			continue
		}
		seen[e] = true
		fanin[e.To]++
	}
	return fanin
}

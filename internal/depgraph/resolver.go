package depgraph

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"codescope/internal/logging"
	"codescope/internal/partition"
)

// Resolver scans unit code for identifiers that match other unit names.
type Resolver struct {
	parser *sitter.Parser
}

// NewResolver creates a resolver with its own parser instance.
func NewResolver() *Resolver {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	return &Resolver{parser: parser}
}

// Resolve builds the dependency graph for a unit list. Every unit name
// becomes a node; an edge (A, B) is emitted once per identifier in A's
// code that exactly equals B's name. A unit's own declaration identifier
// is not a reference, so a plain declaration yields no self-loop; a
// recursive call does.
func (r *Resolver) Resolve(ctx context.Context, units []partition.Unit) *Graph {
	g := &Graph{}
	known := make(map[string]bool, len(units))
	for _, u := range units {
		if !known[u.Name] {
			known[u.Name] = true
			g.Nodes = append(g.Nodes, u.Name)
		}
	}

	for _, u := range units {
		tree, err := r.parser.ParseCtx(ctx, nil, []byte(u.Code))
		if err != nil {
			// A fragment that will not re-parse just contributes no edges.
			logging.GraphDebug("identifier scan skipped for %s: %v", u.Name, err)
			continue
		}
		collectEdges(tree.RootNode(), []byte(u.Code), u.Name, known, g)
		tree.Close()
	}

	logging.GraphDebug("resolved %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	return g
}

// collectEdges walks every node in the fragment tree and appends one edge
// per matching identifier occurrence.
func collectEdges(node *sitter.Node, code []byte, from string, known map[string]bool, g *Graph) {
	if isIdentifier(node.Type()) && !isDeclarationName(node) {
		text := string(code[node.StartByte():node.EndByte()])
		if known[text] {
			g.Edges = append(g.Edges, Edge{From: from, To: text})
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		collectEdges(node.Child(i), code, from, known, g)
	}
}

func isIdentifier(nodeType string) bool {
	switch nodeType {
	case "identifier", "property_identifier", "shorthand_property_identifier", "type_identifier":
		return true
	}
	return false
}

// isDeclarationName reports whether node is the name being declared by
// its parent (function name, class name, declarator binding). Those
// spell the unit's own name without referencing anything.
func isDeclarationName(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	name := parent.ChildByFieldName("name")
	if name == nil {
		return false
	}
	return name.StartByte() == node.StartByte() && name.EndByte() == node.EndByte()
}

package partition

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"codescope/internal/logging"
)

// Extractor partitions JavaScript/TypeScript source into named units.
// It uses Tree-sitter for accurate CST parsing; the grammar is chosen
// per file extension.
type Extractor struct {
	jsParser *sitter.Parser
	tsParser *sitter.Parser
}

// NewExtractor creates an extractor with both grammars loaded.
func NewExtractor() *Extractor {
	jsParser := sitter.NewParser()
	jsParser.SetLanguage(javascript.GetLanguage())
	tsParser := sitter.NewParser()
	tsParser.SetLanguage(typescript.GetLanguage())
	return &Extractor{jsParser: jsParser, tsParser: tsParser}
}

// Partition parses content and returns the ordered unit list plus the
// position map. The returned slice always satisfies the coverage rule:
// top-level unit ranges plus at most one synthesized base unit cover the
// whole source with no gaps.
//
// Failure here is fatal for the pipeline: without units there is nothing
// to resolve or analyze.
func (e *Extractor) Partition(ctx context.Context, path string, content []byte) ([]Unit, PositionMap, error) {
	start := time.Now()

	parser := e.tsParser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		parser = e.jsParser
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, nil, &ParseError{Path: path, Err: err}
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, nil, &ParseError{Path: path, Err: fmt.Errorf("no syntax tree produced")}
	}

	units := e.Extract(root, content)

	logging.PartitionDebug("partitioned %s: %d units in %v",
		filepath.Base(path), len(units), time.Since(start))
	return units, BuildPositionMap(units), nil
}

// Extract walks an already-parsed tree and emits the unit list, including
// the synthesized base unit. Exposed separately so callers with their own
// parse step can reuse the traversal.
func (e *Extractor) Extract(root *sitter.Node, content []byte) []Unit {
	units := walk(root, content, "", "")
	if base := synthesizeBase(units, content); base != nil {
		units = append(units, *base)
	}
	for i := range units {
		units[i].ID = i
	}
	return units
}

// BuildPositionMap derives the position map from a unit list, one entry
// per unit in discovery order.
func BuildPositionMap(units []Unit) PositionMap {
	pm := make(PositionMap, 0, len(units))
	for _, u := range units {
		pm = append(pm, PositionEntry{
			ID:           u.ID,
			Name:         u.Name,
			Kind:         u.Kind,
			RelativePath: RelativePath(u.Kind, u.Name),
			StartLine:    u.StartLine,
			EndLine:      u.EndLine,
		})
	}
	return pm
}

// kindFor maps a Tree-sitter node type to a unit kind. Node types without
// an entry are not emitted, but their children are still visited: a unit
// may nest inside a non-chunked node.
func kindFor(node *sitter.Node) (UnitKind, bool) {
	switch node.Type() {
	case "function_declaration", "generator_function_declaration":
		return KindFunction, true
	case "method_definition":
		return KindMethod, true
	case "arrow_function":
		return KindArrowFunction, true
	case "class_declaration":
		return KindClass, true
	case "variable_declaration":
		return KindVariable, true
	case "lexical_declaration":
		// const vs let: the keyword is the first (anonymous) child.
		if node.ChildCount() > 0 && node.Child(0).Type() == "const" {
			return KindConstant, true
		}
		return KindVariable, true
	case "import_statement":
		return KindImport, true
	case "export_statement":
		return KindExport, true
	}
	return "", false
}

// walk recursively visits the tree and returns the units found, in
// discovery order. enclosing is the nearest named ancestor (used for
// arrow function naming); parent is the nearest enclosing unit's name.
func walk(node *sitter.Node, content []byte, enclosing, parent string) []Unit {
	var units []Unit

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)

		kind, ok := kindFor(child)
		if !ok {
			childEnclosing := enclosing
			if child.Type() == "variable_declarator" {
				if name := fieldText(child, "name", content); name != "" {
					childEnclosing = name
				}
			}
			units = append(units, walk(child, content, childEnclosing, parent)...)
			continue
		}

		name := deriveName(child, kind, enclosing, content)
		units = append(units, Unit{
			Name:      name,
			Kind:      kind,
			StartLine: int(child.StartPoint().Row) + 1,
			EndLine:   int(child.EndPoint().Row) + 1,
			Code:      string(content[child.StartByte():child.EndByte()]),
			Parent:    parent,
		})

		childEnclosing := enclosing
		switch kind {
		case KindFunction, KindMethod, KindClass, KindVariable, KindConstant:
			childEnclosing = name
		}
		units = append(units, walk(child, content, childEnclosing, name)...)
	}

	return units
}

// deriveName applies the per-kind naming rules.
func deriveName(node *sitter.Node, kind UnitKind, enclosing string, content []byte) string {
	switch kind {
	case KindFunction, KindMethod, KindClass:
		if name := fieldText(node, "name", content); name != "" {
			return name
		}
		if name := firstIdentifier(node, content); name != "" {
			return name
		}
		return "anonymous"

	case KindVariable, KindConstant:
		var names []string
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() != "variable_declarator" {
				continue
			}
			if name := fieldText(child, "name", content); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return "anonymous"
		}
		return strings.Join(names, "_")

	case KindImport, KindExport:
		// Keyword tokens are anonymous children; the first named child
		// identifies the statement's shape (import_clause, string, ...).
		if node.NamedChildCount() > 0 {
			return fmt.Sprintf("%s_%s", kind, node.NamedChild(0).Type())
		}
		return fmt.Sprintf("%s_statement", kind)

	case KindArrowFunction:
		if enclosing != "" {
			return enclosing + "_arrow"
		}
		return "anonymous_arrow"

	case KindBase:
		return "base"
	}
	return "anonymous"
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return string(content[child.StartByte():child.EndByte()])
}

func firstIdentifier(node *sitter.Node, content []byte) string {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier", "property_identifier", "type_identifier":
			return string(content[child.StartByte():child.EndByte()])
		}
	}
	return ""
}

// synthesizeBase builds the single filler unit covering every line not
// claimed by a top-level unit, or nil when coverage is already complete.
func synthesizeBase(units []Unit, content []byte) *Unit {
	lines := strings.Split(string(content), "\n")
	total := len(lines)
	if total == 0 {
		return nil
	}

	type span struct{ start, end int }
	var claimed []span
	for _, u := range units {
		if u.TopLevel() {
			claimed = append(claimed, span{u.StartLine, u.EndLine})
		}
	}
	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	var uncovered []span
	cursor := 1
	for _, s := range claimed {
		if s.start > cursor {
			uncovered = append(uncovered, span{cursor, s.start - 1})
		}
		if s.end+1 > cursor {
			cursor = s.end + 1
		}
	}
	if cursor <= total {
		uncovered = append(uncovered, span{cursor, total})
	}
	if len(uncovered) == 0 {
		return nil
	}

	var parts []string
	for _, s := range uncovered {
		parts = append(parts, strings.Join(lines[s.start-1:s.end], "\n"))
	}

	return &Unit{
		Name:      "base",
		Kind:      KindBase,
		StartLine: uncovered[0].start,
		EndLine:   uncovered[len(uncovered)-1].end,
		Code:      strings.Join(parts, "\n"),
	}
}

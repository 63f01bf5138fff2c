package analysis

import (
	"fmt"
	"sort"
	"strings"

	"codescope/internal/partition"
)

// samplesPerKind bounds how many representative units a prompt embeds
// for any one kind.
const samplesPerKind = 3

// Category is one named facet of the analysis. Build constructs the
// prompt from the run input. The last category in a set is the
// synthesis: its Build receives Input.Prior populated with every other
// category's completed result.
type Category struct {
	Name  string
	Build func(in *Input) string
}

// DefaultCategories returns the standard category set. Order matters
// only for the last entry, which is the synthesis barrier.
func DefaultCategories() []Category {
	return []Category{
		{Name: "structure", Build: buildStructurePrompt},
		{Name: "interfaces", Build: buildInterfacesPrompt},
		{Name: "quality", Build: buildQualityPrompt},
		{Name: "security", Build: buildSecurityPrompt},
		{Name: "synthesis", Build: buildSynthesisPrompt},
	}
}

// statsBlock renders per-kind unit counts in stable kind order.
func statsBlock(in *Input) string {
	var b strings.Builder
	b.WriteString("Unit counts by kind:\n")
	for _, k := range partition.AllKinds() {
		if n := in.Count(k); n > 0 {
			fmt.Fprintf(&b, "- %s: %d\n", k, n)
		}
	}
	return b.String()
}

// graphBlock summarizes the dependency graph: edge volume and the most
// referenced units by distinct fan-in.
func graphBlock(in *Input) string {
	if in.Graph == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dependency graph: %d units, %d lexical reference edges.\n",
		len(in.Graph.Nodes), len(in.Graph.Edges))

	fanin := in.Graph.Fanin()
	type ranked struct {
		name string
		n    int
	}
	var top []ranked
	for name, n := range fanin {
		top = append(top, ranked{name, n})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].n != top[j].n {
			return top[i].n > top[j].n
		}
		return top[i].name < top[j].name
	})
	if len(top) > 0 {
		b.WriteString("Most referenced units:\n")
		for i, r := range top {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (referenced by %d units)\n", r.name, r.n)
		}
	}
	return b.String()
}

// sampleBlock renders bounded code samples for the given kinds.
func sampleBlock(in *Input, kinds ...partition.UnitKind) string {
	var b strings.Builder
	for _, k := range kinds {
		for _, s := range in.Samples(k, samplesPerKind) {
			fmt.Fprintf(&b, "### %s %s\n```\n%s\n```\n", k, s.Name, s.Code)
		}
	}
	return b.String()
}

func buildStructurePrompt(in *Input) string {
	var b strings.Builder
	b.WriteString("Analyze the overall structure and architecture of this codebase partition.\n\n")
	b.WriteString(statsBlock(in))
	b.WriteString(graphBlock(in))
	b.WriteString("\nRepresentative units:\n")
	b.WriteString(sampleBlock(in, partition.KindClass, partition.KindFunction))
	b.WriteString("\nDescribe the module layout, the main responsibilities, and how the units depend on each other.")
	return b.String()
}

func buildInterfacesPrompt(in *Input) string {
	var b strings.Builder
	b.WriteString("Analyze the external surface of this codebase partition: what it imports and what it exposes.\n\n")
	b.WriteString(statsBlock(in))
	b.WriteString("\nImport and export statements:\n")
	b.WriteString(sampleBlock(in, partition.KindImport, partition.KindExport))
	b.WriteString("\nSummarize the public API shape and the third-party surface it relies on.")
	return b.String()
}

func buildQualityPrompt(in *Input) string {
	var b strings.Builder
	b.WriteString("Assess code quality and recurring implementation patterns in this codebase partition.\n\n")
	b.WriteString(statsBlock(in))
	b.WriteString("\nRepresentative units:\n")
	b.WriteString(sampleBlock(in, partition.KindFunction, partition.KindMethod, partition.KindArrowFunction))
	b.WriteString("\nComment on naming, error handling, duplication, and complexity hot spots.")
	return b.String()
}

func buildSecurityPrompt(in *Input) string {
	var b strings.Builder
	b.WriteString("Review this codebase partition for security-relevant behavior.\n\n")
	b.WriteString(statsBlock(in))
	b.WriteString("\nRepresentative units:\n")
	b.WriteString(sampleBlock(in, partition.KindFunction, partition.KindConstant, partition.KindVariable))
	b.WriteString("\nFlag input handling, dynamic evaluation, network or filesystem access, and credential use.")
	return b.String()
}

// buildSynthesisPrompt assembles exactly one block per completed
// non-synthesis result; it never reaches the backend before all of them
// have resolved.
func buildSynthesisPrompt(in *Input) string {
	var b strings.Builder
	b.WriteString("Synthesize the following analyses of one codebase into a single executive summary.\n")
	for _, r := range in.Prior {
		fmt.Fprintf(&b, "\n## %s (%s)\n%s\n", r.Category, r.Status, r.Content)
	}
	b.WriteString("\nProduce a coherent overall assessment that reconciles all sections.")
	return b.String()
}

package analysis

import (
	"fmt"
	"strings"

	"codescope/internal/partition"
)

// Fallback produces deterministic, backend-independent content for a
// category from run statistics alone. It is substituted whenever the
// backend is exhausted, empty, or malformed, so two runs over the same
// source always degrade to identical text.
func Fallback(category string, in *Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Automated %s summary (backend unavailable).\n\n", category)

	total := 0
	for _, k := range partition.AllKinds() {
		total += in.Count(k)
	}
	fmt.Fprintf(&b, "The source partitions into %d units. ", total)
	fmt.Fprintf(&b, "The dominant unit kind is %s (%d units).\n", in.DominantKind(), in.Count(in.DominantKind()))
	b.WriteString(statsBlock(in))

	switch category {
	case "structure":
		if in.Graph != nil {
			fmt.Fprintf(&b, "The lexical dependency graph contains %d edges over %d named units.\n",
				len(in.Graph.Edges), len(in.Graph.Nodes))
		}
	case "interfaces":
		fmt.Fprintf(&b, "Import statements: %d. Export statements: %d.\n",
			in.Count(partition.KindImport), in.Count(partition.KindExport))
	case "quality":
		fmt.Fprintf(&b, "Callable units (functions, methods, arrow functions): %d.\n",
			in.Count(partition.KindFunction)+in.Count(partition.KindMethod)+in.Count(partition.KindArrowFunction))
	case "security":
		b.WriteString("No backend review was possible; counts above are the only available signal.\n")
	case "synthesis":
		b.WriteString("\nSection results:\n")
		for _, r := range in.Prior {
			fmt.Fprintf(&b, "\n## %s (%s)\n%s\n", r.Category, r.Status, r.Content)
		}
	}
	return b.String()
}

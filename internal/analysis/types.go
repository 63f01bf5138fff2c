// Package analysis runs named analysis categories against the LLM
// backend and joins them into a final synthesis. Categories other than
// the last run concurrently or strictly sequentially depending on the
// backend class; the synthesis category is a barrier that sees every
// other category's result.
package analysis

import (
	"codescope/internal/depgraph"
	"codescope/internal/logging"
	"codescope/internal/partition"
)

// Status classifies how a category's content was produced.
type Status string

const (
	StatusOK       Status = "ok"       // backend answered
	StatusFallback Status = "fallback" // deterministic templated content
	StatusError    Status = "error"    // placeholder (e.g. run timeout)
)

// Result is one category's output for a run.
type Result struct {
	Category string `json:"category"`
	Content  string `json:"content"`
	Status   Status `json:"status"`
}

// UnitReader reads stored unit artifacts for code sampling.
type UnitReader interface {
	ReadUnit(rel string) (string, error)
}

// Sample is one representative unit embedded into a prompt.
type Sample struct {
	Name string
	Code string
}

// Input is the immutable per-run context handed to every prompt builder.
// It is assembled once after partitioning and dependency resolution and
// never mutated by categories.
type Input struct {
	Units  []partition.Unit
	ByKind map[partition.UnitKind][]partition.Unit
	Graph  *depgraph.Graph

	// Paths maps unit ID to its artifact's relative path; Reader loads
	// artifact content. Both may be nil when sampling is unavailable.
	Paths  map[int]string
	Reader UnitReader

	// Prior holds the completed results of every non-synthesis category.
	// Set only for the synthesis builder.
	Prior []Result
}

// NewInput groups units by kind and bundles the run context.
func NewInput(units []partition.Unit, graph *depgraph.Graph, paths map[int]string, reader UnitReader) *Input {
	byKind := make(map[partition.UnitKind][]partition.Unit)
	for _, u := range units {
		byKind[u.Kind] = append(byKind[u.Kind], u)
	}
	return &Input{
		Units:  units,
		ByKind: byKind,
		Graph:  graph,
		Paths:  paths,
		Reader: reader,
	}
}

// Count returns how many units of a kind exist.
func (in *Input) Count(kind partition.UnitKind) int {
	return len(in.ByKind[kind])
}

// DominantKind returns the most numerous non-base kind, ties broken by
// the stable kind order.
func (in *Input) DominantKind() partition.UnitKind {
	best := partition.KindFunction
	bestN := -1
	for _, k := range partition.AllKinds() {
		if k == partition.KindBase {
			continue
		}
		if n := in.Count(k); n > bestN {
			best, bestN = k, n
		}
	}
	return best
}

// Samples returns up to max representative units of a kind, read back
// from their stored artifacts. A missing or unreadable artifact is
// logged and skipped, never fatal.
func (in *Input) Samples(kind partition.UnitKind, max int) []Sample {
	if in.Reader == nil || in.Paths == nil {
		return nil
	}
	var out []Sample
	for _, u := range in.ByKind[kind] {
		if len(out) >= max {
			break
		}
		rel, ok := in.Paths[u.ID]
		if !ok {
			continue
		}
		code, err := in.Reader.ReadUnit(rel)
		if err != nil {
			logging.Get(logging.CategoryStore).Warnf("sample %s skipped: %v", rel, err)
			continue
		}
		out = append(out, Sample{Name: u.Name, Code: code})
	}
	return out
}

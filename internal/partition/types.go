package partition

import "fmt"

// UnitKind classifies a partition unit.
type UnitKind string

const (
	KindFunction      UnitKind = "function"
	KindMethod        UnitKind = "method"
	KindArrowFunction UnitKind = "arrowFunction"
	KindClass         UnitKind = "class"
	KindVariable      UnitKind = "variable"
	KindConstant      UnitKind = "constant"
	KindImport        UnitKind = "importStmt"
	KindExport        UnitKind = "exportStmt"
	KindBase          UnitKind = "base"
)

// AllKinds lists every unit kind in a stable order. Used for grouping and
// for deterministic fallback content.
func AllKinds() []UnitKind {
	return []UnitKind{
		KindFunction, KindMethod, KindArrowFunction, KindClass,
		KindVariable, KindConstant, KindImport, KindExport, KindBase,
	}
}

// Valid reports whether k is a known unit kind.
func Valid(k UnitKind) bool {
	switch k {
	case KindFunction, KindMethod, KindArrowFunction, KindClass,
		KindVariable, KindConstant, KindImport, KindExport, KindBase:
		return true
	}
	return false
}

// Unit is a named, typed, contiguous slice of the source text.
type Unit struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Kind      UnitKind `json:"kind"`
	StartLine int      `json:"start_line"`
	EndLine   int      `json:"end_line"`
	Code      string   `json:"-"`
	// Parent is the name of the enclosing unit for nested units
	// (a method's class, an arrow function's named ancestor).
	// Empty for top-level units.
	Parent string `json:"parent,omitempty"`
}

// TopLevel reports whether the unit is not nested inside another unit.
// Only top-level units participate in the non-overlap and coverage
// guarantees; nested units intentionally overlap their container.
func (u Unit) TopLevel() bool {
	return u.Parent == ""
}

// PositionEntry records where a unit came from and where its artifact goes.
type PositionEntry struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Kind         UnitKind `json:"kind"`
	RelativePath string   `json:"relative_path"`
	StartLine    int      `json:"start_line"`
	EndLine      int      `json:"end_line"`
}

// PositionMap is the ordered unit location record, one entry per unit in
// discovery order.
type PositionMap []PositionEntry

// ParseError indicates the source text could not be parsed. It is fatal:
// no units can be produced and nothing downstream can run.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

package partition

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func extract(t *testing.T, source string) []Unit {
	t.Helper()
	units, pm, err := NewExtractor().Partition(context.Background(), "test.js", []byte(source))
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	if len(pm) != len(units) {
		t.Fatalf("position map has %d entries for %d units", len(pm), len(units))
	}
	return units
}

func unitsOfKind(units []Unit, kind UnitKind) []Unit {
	var out []Unit
	for _, u := range units {
		if u.Kind == kind {
			out = append(out, u)
		}
	}
	return out
}

func TestThreeTopLevelFunctions(t *testing.T) {
	source := `function alpha() {
  return 1;
}

function beta() {
  return 2;
}

function gamma() {
  return 3;
}
`
	units := extract(t, source)

	funcs := unitsOfKind(units, KindFunction)
	if len(funcs) != 3 {
		t.Fatalf("expected 3 function units, got %d", len(funcs))
	}
	names := []string{funcs[0].Name, funcs[1].Name, funcs[2].Name}
	if diff := cmp.Diff([]string{"alpha", "beta", "gamma"}, names); diff != "" {
		t.Errorf("function names mismatch (-want +got):\n%s", diff)
	}

	if bases := unitsOfKind(units, KindBase); len(bases) > 1 {
		t.Errorf("expected at most 1 base unit, got %d", len(bases))
	}
}

func TestTopLevelCoverageNoGapsNoOverlaps(t *testing.T) {
	source := `function one() {
  return 1;
}

const two = 2;

function three() {
  return two;
}
`
	units := extract(t, source)

	totalLines := 10 // source has a trailing newline
	covered := make([]bool, totalLines+1)
	var base *Unit
	for i := range units {
		u := units[i]
		if u.Kind == KindBase {
			base = &units[i]
			continue
		}
		if !u.TopLevel() {
			continue
		}
		for l := u.StartLine; l <= u.EndLine; l++ {
			if covered[l] {
				t.Errorf("line %d claimed by two top-level units", l)
			}
			covered[l] = true
		}
	}

	for l := 1; l <= totalLines; l++ {
		if covered[l] {
			continue
		}
		if base == nil || l < base.StartLine || l > base.EndLine {
			t.Errorf("line %d covered by neither a top-level unit nor the base unit", l)
		}
	}
}

func TestClassContainsMethods(t *testing.T) {
	source := `class Widget {
  render() {
    return this.size;
  }

  resize(n) {
    this.size = n;
  }
}
`
	units := extract(t, source)

	classes := unitsOfKind(units, KindClass)
	if len(classes) != 1 || classes[0].Name != "Widget" {
		t.Fatalf("expected one class Widget, got %+v", classes)
	}
	methods := unitsOfKind(units, KindMethod)
	if len(methods) != 2 {
		t.Fatalf("expected 2 method units, got %d", len(methods))
	}
	for _, m := range methods {
		if m.Parent != "Widget" {
			t.Errorf("method %s has parent %q, want Widget", m.Name, m.Parent)
		}
		if m.TopLevel() {
			t.Errorf("method %s must not be top-level", m.Name)
		}
		if m.StartLine < classes[0].StartLine || m.EndLine > classes[0].EndLine {
			t.Errorf("method %s is not contained in its class range", m.Name)
		}
	}
}

func TestArrowFunctionNaming(t *testing.T) {
	source := `const handler = (x) => x * 2;
((y) => y)(1);
`
	units := extract(t, source)

	arrows := unitsOfKind(units, KindArrowFunction)
	if len(arrows) != 2 {
		t.Fatalf("expected 2 arrow units, got %d", len(arrows))
	}
	if arrows[0].Name != "handler_arrow" {
		t.Errorf("named arrow got %q, want handler_arrow", arrows[0].Name)
	}
	if arrows[1].Name != "anonymous_arrow" {
		t.Errorf("bare arrow got %q, want anonymous_arrow", arrows[1].Name)
	}

	consts := unitsOfKind(units, KindConstant)
	if len(consts) != 1 || consts[0].Name != "handler" {
		t.Errorf("expected constant handler, got %+v", consts)
	}
}

func TestVariableDeclaratorsJoinNames(t *testing.T) {
	source := `let a = 1, b = 2;
var c;
`
	units := extract(t, source)

	vars := unitsOfKind(units, KindVariable)
	if len(vars) != 2 {
		t.Fatalf("expected 2 variable units, got %d", len(vars))
	}
	if vars[0].Name != "a_b" {
		t.Errorf("joined declarator name = %q, want a_b", vars[0].Name)
	}
	if vars[1].Name != "c" {
		t.Errorf("second variable name = %q, want c", vars[1].Name)
	}
}

func TestImportExportNaming(t *testing.T) {
	source := `import fs from "fs";
export const limit = 10;
`
	units := extract(t, source)

	imports := unitsOfKind(units, KindImport)
	if len(imports) != 1 || imports[0].Name != "importStmt_import_clause" {
		t.Errorf("import unit = %+v", imports)
	}
	exports := unitsOfKind(units, KindExport)
	if len(exports) != 1 || exports[0].Name != "exportStmt_lexical_declaration" {
		t.Errorf("export unit = %+v", exports)
	}
}

func TestUnitCodeIsExactSourceSlice(t *testing.T) {
	source := `function whole() {
  return "everything";
}
`
	units := extract(t, source)
	funcs := unitsOfKind(units, KindFunction)
	if len(funcs) != 1 {
		t.Fatalf("expected 1 function, got %d", len(funcs))
	}
	want := "function whole() {\n  return \"everything\";\n}"
	if funcs[0].Code != want {
		t.Errorf("unit code is not the exact source slice:\n%q", funcs[0].Code)
	}
}

func TestIDsFollowDiscoveryOrder(t *testing.T) {
	source := `function first() {}
function second() {}
`
	units := extract(t, source)
	for i, u := range units {
		if u.ID != i {
			t.Errorf("unit %s has ID %d at index %d", u.Name, u.ID, i)
		}
	}
}

func TestPositionMapMatchesUnits(t *testing.T) {
	source := `function f() {
  return 0;
}
`
	units, pm, err := NewExtractor().Partition(context.Background(), "test.js", []byte(source))
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}
	for i, e := range pm {
		u := units[i]
		want := PositionEntry{
			ID:           u.ID,
			Name:         u.Name,
			Kind:         u.Kind,
			RelativePath: RelativePath(u.Kind, u.Name),
			StartLine:    u.StartLine,
			EndLine:      u.EndLine,
		}
		if diff := cmp.Diff(want, e); diff != "" {
			t.Errorf("position entry %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestEmptySourceYieldsOnlyBase(t *testing.T) {
	units := extract(t, "\n\n")
	if len(units) != 1 || units[0].Kind != KindBase {
		t.Fatalf("expected a single base unit, got %+v", units)
	}
	if units[0].StartLine != 1 {
		t.Errorf("base must start at line 1, got %d", units[0].StartLine)
	}
}

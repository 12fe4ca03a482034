package graph

import (
	"strings"
	"testing"
)

func TestGraph_Tag(t *testing.T) {
	b := NewBuilder()
	mustAdd(t, b, "cube", ComponentTransform, "cube.final", OpcodeTransform)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	u := g.FindUnit("cube.final")
	g.Tag(u)

	if u.Flags&FlagDirectlyModified == 0 {
		t.Error("Expected tagged unit to be marked directly modified")
	}
	if g.Entries().Cardinality() != 1 {
		t.Errorf("Expected 1 entry, got %d", g.Entries().Cardinality())
	}

	// Tagging again is a no-op on the entry set.
	g.Tag(u)
	if g.Entries().Cardinality() != 1 {
		t.Errorf("Expected 1 entry after double tag, got %d", g.Entries().Cardinality())
	}

	g.Tag(nil)
	if g.Entries().Cardinality() != 1 {
		t.Errorf("Expected nil tag to be ignored, got %d entries", g.Entries().Cardinality())
	}

	g.ClearEntries()
	if g.Entries().Cardinality() != 0 {
		t.Errorf("Expected empty entry set after clear, got %d", g.Entries().Cardinality())
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(OpcodeSettingsEval) {
		t.Error("Expected settings_eval to be terminal")
	}
	for _, op := range []Opcode{OpcodeTransform, OpcodeGeometry, OpcodeBoneSolve, OpcodePoseInit, OpcodeShadowCopy} {
		if IsTerminal(op) {
			t.Errorf("Expected %s not to be terminal", op)
		}
	}
}

func TestGraph_Find(t *testing.T) {
	b := NewBuilder()
	mustAdd(t, b, "cube", ComponentTransform, "cube.final", OpcodeTransform)
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if g.FindUnit("missing") != nil {
		t.Error("Expected nil for unknown unit")
	}
	if g.FindObject("missing") != nil {
		t.Error("Expected nil for unknown object")
	}
}

func TestGraph_FindIndexesEveryNode(t *testing.T) {
	b := NewBuilder()
	for i := 0; i < 50; i++ {
		obj := "obj" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		mustAdd(t, b, obj, ComponentTransform, obj+".final", OpcodeTransform)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// Build keeps the name indexes, so lookups resolve by map instead of
	// scanning the flat arrays.
	for _, u := range g.Units {
		if g.FindUnit(u.Name) != u {
			t.Errorf("Expected index lookup to return %s", u.Name)
		}
	}
	for _, o := range g.Objects {
		if g.FindObject(o.Name) != o {
			t.Errorf("Expected index lookup to return %s", o.Name)
		}
	}
}

func TestGraph_ToDOT(t *testing.T) {
	b := NewBuilder()
	mustAdd(t, b, "cube", ComponentTransform, "cube.parent", OpcodeTransform)
	if err := b.AddUnit("cube", ComponentTransform, "cube.final", OpcodeTransform); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := b.Connect("cube.parent", "cube.final"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	g, err := b.Build()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	g.FindUnit("cube.parent").Flags |= FlagDirectlyModified
	dot := g.ToDOT()

	for _, want := range []string{
		"digraph DependencyGraph",
		"subgraph cluster_object_0",
		"label=\"cube\"",
		"\"cube.parent\" -> \"cube.final\";",
		"lightcoral",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("Expected DOT output to contain %q:\n%s", want, dot)
		}
	}
}

func TestError_Formatting(t *testing.T) {
	err := NewValidationError("duplicate unit name", nil).WithNode("cube.final")
	msg := err.Error()
	if !strings.Contains(msg, "validation") || !strings.Contains(msg, "cube.final") {
		t.Errorf("Unexpected error message: %s", msg)
	}

	cerr := NewContractError("flush requires a non-nil graph", nil)
	if !strings.Contains(cerr.Error(), "contract") {
		t.Errorf("Unexpected error message: %s", cerr.Error())
	}
}

package symtab_test

import (
	"testing"

	"github.com/sheetlang/sheetlang/internal/symtab"
)

func TestScopeDeclareAssignsDenseSlotsInOrder(t *testing.T) {
	s := symtab.NewScope(nil)
	if slot := s.Declare("a"); slot != 0 {
		t.Fatalf("want first declaration to get slot 0, got %d", slot)
	}
	if slot := s.Declare("b"); slot != 1 {
		t.Fatalf("want second declaration to get slot 1, got %d", slot)
	}
	if s.SlotCount() != 2 {
		t.Fatalf("want SlotCount() == 2, got %d", s.SlotCount())
	}
}

func TestScopeDeclareIsIdempotentForTheSameName(t *testing.T) {
	s := symtab.NewScope(nil)
	first := s.Declare("a")
	second := s.Declare("a")
	if first != second {
		t.Fatalf("want declaring the same name twice to return the same slot, got %d and %d", first, second)
	}
	if s.SlotCount() != 1 {
		t.Fatalf("want a single slot after two declarations of the same name, got %d", s.SlotCount())
	}
}

func TestScopeLookupFindsLocalAtDepthZero(t *testing.T) {
	s := symtab.NewScope(nil)
	slot := s.Declare("x")
	depth, gotSlot, ok := s.Lookup("x")
	if !ok || depth != 0 || gotSlot != slot {
		t.Fatalf("want (0, %d, true), got (%d, %d, %v)", slot, depth, gotSlot, ok)
	}
}

func TestScopeLookupWalksParentChainReportingDepth(t *testing.T) {
	outer := symtab.NewScope(nil)
	outerSlot := outer.Declare("captured")
	inner := symtab.NewScope(outer)
	inner.Declare("local")

	depth, slot, ok := inner.Lookup("captured")
	if !ok || depth != 1 || slot != outerSlot {
		t.Fatalf("want (1, %d, true) for a name resolved in the parent scope, got (%d, %d, %v)", outerSlot, depth, slot, ok)
	}

	depth, _, ok = inner.Lookup("local")
	if !ok || depth != 0 {
		t.Fatalf("want a local name to resolve at depth 0, got (%d, %v)", depth, ok)
	}

	if _, _, ok := outer.Lookup("local"); ok {
		t.Fatalf("want the outer scope to not see the inner scope's locals")
	}
}

func TestScopeLookupReportsNotFound(t *testing.T) {
	s := symtab.NewScope(nil)
	if _, _, ok := s.Lookup("nope"); ok {
		t.Fatalf("want Lookup of an undeclared name to report false")
	}
}

func TestScopeLocalLookupIgnoresParentScope(t *testing.T) {
	outer := symtab.NewScope(nil)
	outer.Declare("shared")
	inner := symtab.NewScope(outer)

	if _, ok := inner.LocalLookup("shared"); ok {
		t.Fatalf("want LocalLookup to ignore names declared only in an enclosing scope")
	}
	inner.Declare("shared")
	if _, ok := inner.LocalLookup("shared"); !ok {
		t.Fatalf("want LocalLookup to find a name declared directly in this scope")
	}
}

func TestGlobalDeclareInternsEachNameOnce(t *testing.T) {
	g := symtab.NewGlobal()
	first := g.Declare("x")
	second := g.Declare("x")
	if first != second {
		t.Fatalf("want re-declaring a global to return its existing index, got %d and %d", first, second)
	}
	third := g.Declare("y")
	if third == first {
		t.Fatalf("want a distinct index for a different name")
	}
	if g.Count() != 2 {
		t.Fatalf("want Count() == 2, got %d", g.Count())
	}
}

func TestGlobalNameRoundTripsThroughDeclare(t *testing.T) {
	g := symtab.NewGlobal()
	idx := g.Declare("total")
	if g.Name(idx) != "total" {
		t.Fatalf("want Name(%d) == %q, got %q", idx, "total", g.Name(idx))
	}
}

func TestGlobalNameOutOfRangeReturnsEmptyString(t *testing.T) {
	g := symtab.NewGlobal()
	if name := g.Name(5); name != "" {
		t.Fatalf("want an out-of-range index to return \"\", got %q", name)
	}
}

package symtab

import "testing"

func TestEnterScopeReservesReturnSlot(t *testing.T) {
	tbl := New()
	s := tbl.EnterScope("main")

	if s.VarOff != 1 {
		t.Errorf("VarOff = %d, want 1 (slot 0 reserved for return value)", s.VarOff)
	}
	if s.Depth != 1 {
		t.Errorf("Depth = %d, want 1", s.Depth)
	}
}

func TestDeclareVariableAssignsSequentialOffsets(t *testing.T) {
	tbl := New()
	s := tbl.EnterScope("main")

	x := tbl.DeclareVariable(s, "x", TypeInt, 1)
	y := tbl.DeclareVariable(s, "y", TypeInt, 2)

	if x.Offset != 1 || y.Offset != 2 {
		t.Fatalf("got offsets x=%d y=%d, want 1,2", x.Offset, y.Offset)
	}
	if x.Label != "VBL001" {
		t.Errorf("label = %q, want VBL001", x.Label)
	}
}

func TestDeclareArrayReservesLength(t *testing.T) {
	tbl := New()
	s := tbl.EnterScope("main")

	a := tbl.DeclareArray(s, "a", TypeInt, 10, 1)
	next := tbl.DeclareVariable(s, "b", TypeInt, 2)

	if a.Offset != 1 {
		t.Fatalf("array offset = %d, want 1", a.Offset)
	}
	if next.Offset != 11 {
		t.Fatalf("next offset = %d, want 11 (after 10-slot array)", next.Offset)
	}
}

func TestLookupWalksOuterScopes(t *testing.T) {
	tbl := New()
	outer := tbl.EnterScope("main")
	tbl.DeclareVariable(outer, "x", TypeInt, 1)
	tbl.EnterScope("inner")

	found := tbl.Lookup("x")
	if found == nil {
		t.Fatal("Lookup did not find outer-scope variable")
	}
	if tbl.LookupLocal("x") != nil {
		t.Error("LookupLocal should not see outer-scope variable")
	}
}

func TestExitScopeRestoresOuter(t *testing.T) {
	tbl := New()
	outer := tbl.EnterScope("main")
	tbl.EnterScope("inner")

	popped := tbl.ExitScope()
	if popped.Name != "inner" {
		t.Fatalf("popped scope = %q, want inner", popped.Name)
	}
	if tbl.Top() != outer {
		t.Fatal("Top() after ExitScope should be the outer scope")
	}
}

func TestShadowingPrefersInnerScope(t *testing.T) {
	tbl := New()
	outer := tbl.EnterScope("main")
	tbl.DeclareVariable(outer, "x", TypeInt, 1)
	inner := tbl.EnterScope("proc")
	tbl.DeclareVariable(inner, "x", TypeChar, 2)

	found := tbl.Lookup("x")
	if found.Type != TypeChar {
		t.Errorf("shadowed lookup returned type %v, want TypeChar", found.Type)
	}
}

func TestDeclareParamUsesArgOffset(t *testing.T) {
	tbl := New()
	s := tbl.EnterScope("proc")

	p1 := tbl.DeclareParam(s, "a", TypeInt, false, 1)
	p2 := tbl.DeclareParam(s, "b", TypeInt, true, 1)

	if p1.Offset != 0 || p2.Offset != 1 {
		t.Fatalf("got offsets %d,%d, want 0,1", p1.Offset, p2.Offset)
	}
	if p1.Category != CategoryByValue || p2.Category != CategoryByReference {
		t.Fatalf("got categories %v,%v", p1.Category, p2.Category)
	}
}

func TestAllocTempIsRelativeToVarOff(t *testing.T) {
	tbl := New()
	s := tbl.EnterScope("main")
	tbl.DeclareVariable(s, "x", TypeInt, 1)

	tmp := tbl.AllocTemp(s, TypeInt)
	if tmp.Offset != s.VarOff {
		t.Fatalf("temp offset = %d, want %d", tmp.Offset, s.VarOff)
	}
}

func TestDumpIncludesOpenScopes(t *testing.T) {
	tbl := New()
	s := tbl.EnterScope("main")
	tbl.DeclareVariable(s, "x", TypeInt, 1)

	out := tbl.Dump()
	if out == "" {
		t.Fatal("Dump() returned empty string")
	}
}

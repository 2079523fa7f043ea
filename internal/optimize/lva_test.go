package optimize

import (
	"testing"

	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// TestEliminateDeadStoresDropsOverwrittenAssignment covers "x := 1; x := 2;
// out := x; write(out)" — the first store to x is overwritten before any
// read reaches it, so it must be dropped; the rest must survive.
func TestEliminateDeadStoresDropsOverwrittenAssignment(t *testing.T) {
	table := symtab.New()
	scope := table.EnterScope("test")
	x := table.DeclareVariable(scope, "x", symtab.TypeInt, 1)
	out := table.DeclareVariable(scope, "out", symtab.TypeInt, 1)
	lit1 := table.AllocLiteral(scope, symtab.TypeInt, 1)
	lit2 := table.AllocLiteral(scope, symtab.TypeInt, 2)

	list := ir.NewList()
	dead := list.Emit(ir.OpStoreVar, x, lit1, nil)
	live := list.Emit(ir.OpStoreVar, x, lit2, nil)
	copyOut := list.Emit(ir.OpStoreVar, out, x, nil)
	write := list.Emit(ir.OpWriteInt, out, nil, nil)

	b := &BasicBlock{ID: 0, Instrs: []*ir.Instruction{dead, live, copyOut, write}}
	blocks := []*BasicBlock{b}

	computeUseDef(blocks)
	solveLiveness(blocks)
	eliminateDeadStores(list, blocks)

	if len(b.Instrs) != 3 {
		t.Fatalf("got %d surviving instructions, want 3: %v", len(b.Instrs), b.Instrs)
	}
	if b.Instrs[0] != live || b.Instrs[1] != copyOut || b.Instrs[2] != write {
		t.Fatalf("surviving instructions = %v, want [live, copyOut, write]", b.Instrs)
	}

	remaining := list.Slice()
	if len(remaining) != 3 {
		t.Fatalf("list still has %d instructions after removal, want 3", len(remaining))
	}
	for _, in := range remaining {
		if in == dead {
			t.Fatal("dead store should have been unlinked from the list")
		}
	}
}

// TestSeedExitLivenessKeepsReturnSlotAlive covers a one-line function body
// "f := a" — without seeding, the store into the reserved return slot has
// no reader in the IR at all and would otherwise look dead.
func TestSeedExitLivenessKeepsReturnSlotAlive(t *testing.T) {
	table := symtab.New()
	outer := table.EnterScope("main")
	fnSym := table.DeclareCallable(outer, "f", true, symtab.TypeInt, 1)
	inner := table.EnterScope("f")
	fnSym.Scope = inner
	inner.Owner = fnSym
	inner.RetSlot = table.DeclareReturnSlot(inner, symtab.TypeInt)
	a := table.DeclareParam(inner, "a", symtab.TypeInt, false, 1)

	list := ir.NewList()
	start := list.Emit(ir.OpFnStart, fnSym, nil, nil)
	list.Emit(ir.OpStoreVar, inner.RetSlot, a, nil)
	end := list.Emit(ir.OpFnEnd, fnSym, nil, nil)

	fn := &ir.Function{Name: "f", Scope: inner, Start: start, End: end}
	cfg := Run(table, list, []*ir.Function{fn})

	found := false
	for _, b := range cfg.Blocks {
		for _, in := range b.Instrs {
			if in.Op == ir.OpStoreVar && in.Dest == inner.RetSlot {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("return-slot store was eliminated as dead, but must survive for the caller")
	}
}

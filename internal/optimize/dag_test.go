package optimize

import (
	"testing"

	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// TestRegenerateBlockCollapsesRepeatedSubexpression covers (a+b)+(a+b):
// the DAG should evaluate a+b exactly once and feed the shared result into
// the outer add twice.
func TestRegenerateBlockCollapsesRepeatedSubexpression(t *testing.T) {
	table := symtab.New()
	scope := table.EnterScope("test")
	a := table.DeclareVariable(scope, "a", symtab.TypeInt, 1)
	b := table.DeclareVariable(scope, "b", symtab.TypeInt, 1)
	out := table.DeclareVariable(scope, "out", symtab.TypeInt, 1)

	t1 := table.AllocTemp(scope, symtab.TypeInt)
	t2 := table.AllocTemp(scope, symtab.TypeInt)
	t3 := table.AllocTemp(scope, symtab.TypeInt)

	list := ir.NewList()
	list.Emit(ir.OpAdd, t1, a, b)
	list.Emit(ir.OpAdd, t2, a, b)
	list.Emit(ir.OpAdd, t3, t1, t2)
	list.Emit(ir.OpStoreVar, out, t3, nil)

	regen := regenerateBlock(table, scope, list, list.Slice())

	if len(regen) != 2 {
		t.Fatalf("got %d instructions, want 2: %v", len(regen), regen)
	}
	first, second := regen[0], regen[1]
	if first.Op != ir.OpAdd || first.Src1 != a || first.Src2 != b {
		t.Fatalf("first instruction = %v, want ADD _ a b", first)
	}
	if second.Op != ir.OpAdd || second.Dest != out {
		t.Fatalf("second instruction = %v, want ADD out _ _", second)
	}
	if second.Src1 != first.Dest || second.Src2 != first.Dest {
		t.Fatalf("second instruction should reuse first's result on both sides, got src1=%v src2=%v dest=%v",
			second.Src1, second.Src2, first.Dest)
	}
}

// TestIsDAGEligibleRejectsCallsAndIO checks that a block containing a CALL
// or a WRITE_INT is not DAG-eligible, while a plain ADD block is.
func TestIsDAGEligibleRejectsCallsAndIO(t *testing.T) {
	table := symtab.New()
	scope := table.EnterScope("test")
	fn := table.DeclareCallable(scope, "p", false, symtab.TypeVoid, 1)

	callInstrs := []*ir.Instruction{ir.NewList().Emit(ir.OpCall, nil, fn, nil)}
	if isDAGEligible(callInstrs) {
		t.Fatal("block containing CALL should not be DAG-eligible")
	}

	writeInstrs := []*ir.Instruction{ir.NewList().Emit(ir.OpWriteInt, table.DeclareVariable(scope, "x", symtab.TypeInt, 1), nil, nil)}
	if isDAGEligible(writeInstrs) {
		t.Fatal("block containing WRITE_INT should not be DAG-eligible")
	}

	plain := []*ir.Instruction{ir.NewList().Emit(ir.OpAdd, nil, nil, nil)}
	if !isDAGEligible(plain) {
		t.Fatal("plain arithmetic block should be DAG-eligible")
	}
}

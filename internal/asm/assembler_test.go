package asm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// buildXAssignProgram hand-builds the IR for "const one = 1; var x: integer;
// begin x := one + 2 end." — spec S1's worked example.
func buildXAssignProgram(t *testing.T) []*ir.Function {
	t.Helper()
	table := symtab.New()
	scope := table.EnterScope("_start")
	fnSym := table.DeclareMain("_start", 1)
	fnSym.Scope = scope
	scope.Owner = fnSym

	one := table.DeclareConstant(scope, "one", symtab.TypeInt, 1, 1)
	x := table.DeclareVariable(scope, "x", symtab.TypeInt, 1)
	two := table.AllocLiteral(scope, symtab.TypeInt, 2)
	tmp := table.AllocTemp(scope, symtab.TypeInt)

	list := ir.NewList()
	start := list.Emit(ir.OpFnStart, fnSym, nil, nil)
	start.FnScope = scope
	list.Emit(ir.OpAdd, tmp, one, two)
	list.Emit(ir.OpStoreVar, x, tmp, nil)
	end := list.Emit(ir.OpFnEnd, fnSym, nil, nil)
	end.FnScope = scope

	return []*ir.Function{{Name: "_start", Scope: scope, Start: start, End: end}}
}

func TestFormatInstructionPerOpcodeFamily(t *testing.T) {
	table := symtab.New()
	scope := table.EnterScope("_start")
	fnSym := table.DeclareMain("_start", 1)
	fnSym.Scope = scope
	scope.Owner = fnSym

	x := table.DeclareVariable(scope, "x", symtab.TypeInt, 1)
	lit := table.AllocLiteral(scope, symtab.TypeInt, 2)
	tmp := table.AllocTemp(scope, symtab.TypeInt)

	list := ir.NewList()
	start := list.Emit(ir.OpFnStart, fnSym, nil, nil)
	start.FnScope = scope
	add := list.Emit(ir.OpAdd, tmp, x, lit)
	store := list.Emit(ir.OpStoreVar, x, tmp, nil)
	end := list.Emit(ir.OpFnEnd, fnSym, nil, nil)
	end.FnScope = scope

	if got := formatInstruction(start); got != "FN_START _start 0000 0002 0001 FUN001" {
		t.Fatalf("FN_START line = %q", got)
	}
	if got := formatInstruction(add); got != fmt.Sprintf("ADD %s %s 2", tmp.Label, x.Label) {
		t.Fatalf("ADD line = %q", got)
	}
	if got := formatInstruction(store); got != fmt.Sprintf("STORE_VAR %s %s", x.Label, tmp.Label) {
		t.Fatalf("STORE_VAR line = %q", got)
	}
	if got := formatInstruction(end); got != "FN_END _start" {
		t.Fatalf("FN_END line = %q", got)
	}
}

func TestEmitWritesFunctionBodyAndTables(t *testing.T) {
	funcs := buildXAssignProgram(t)

	var sb strings.Builder
	if err := New(&sb).Emit(funcs); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	snaps.MatchSnapshot(t, "x_assign_output", sb.String())
}

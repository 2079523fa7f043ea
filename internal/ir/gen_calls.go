package ir

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/semantic"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

func (g *Generator) genCallExpr(scope *symtab.Scope, e *ast.CallExpr) *symtab.Symbol {
	return g.genCall(scope, e.Callee.Symbol, e.Args)
}

func (g *Generator) genPCallStmt(scope *symtab.Scope, s *ast.PCallStmt) {
	g.genCall(scope, s.Callee.Symbol, s.Args)
}

// genCall lowers a call site (spec §4.5): arguments are pushed in reverse
// declared order, by recursing over the argument chain before emitting
// the current head's push, so the last-declared argument's PUSH_* comes
// first. One POP follows CALL per pushed argument. dest is a fresh return
// temp for a function call, nil for a procedure call.
func (g *Generator) genCall(scope *symtab.Scope, callee *symtab.Symbol, args *ast.ArgList) *symtab.Symbol {
	byRef := semantic.FlattenByRef(g.params[callee.Name])

	n := g.genCallArgs(scope, args, byRef, 0)

	var dest *symtab.Symbol
	if callee.Category == symtab.CategoryFunction {
		dest = g.table.AllocTemp(scope, callee.Type)
	}
	g.list.Emit(OpCall, dest, callee, nil)
	for i := 0; i < n; i++ {
		g.list.Emit(OpPop, nil, nil, nil)
	}
	return dest
}

// genCallArgs recurses to the end of the chain first, then emits the push
// for each link on the way back out — yielding reverse-declared push
// order — and returns the total argument count.
func (g *Generator) genCallArgs(scope *symtab.Scope, args *ast.ArgList, byRef []bool, index int) int {
	if args == nil {
		return 0
	}
	count := g.genCallArgs(scope, args.Next, byRef, index+1)

	if index < len(byRef) && byRef[index] {
		g.genPushAddr(scope, args.Arg)
	} else {
		val := g.genExpr(scope, args.Arg)
		g.list.Emit(OpPushVal, val, nil, nil)
	}
	return count + 1
}

// genPushAddr emits PUSH_ADDR for a by-reference argument, already
// validated by the semantic analyzer to be a plain identifier or an
// indexed array access (spec §4.4.5).
func (g *Generator) genPushAddr(scope *symtab.Scope, arg ast.Expr) {
	switch e := arg.(type) {
	case *ast.IdentExpr:
		g.list.Emit(OpPushAddr, e.Ident.Symbol, nil, nil)
	case *ast.ArrayIndexExpr:
		idx := g.genExpr(scope, e.Index)
		g.list.Emit(OpPushAddr, e.Array.Symbol, idx, nil)
	}
}

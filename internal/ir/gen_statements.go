package ir

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

func (g *Generator) genCompoundStmt(scope *symtab.Scope, c *ast.CompoundStmt) {
	for s := c.Stmts; s != nil; s = s.Next {
		g.genStmt(scope, s.Stmt)
	}
}

func (g *Generator) genStmt(scope *symtab.Scope, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		g.genAssign(scope, s)
	case *ast.ArrayAssignStmt:
		g.genArrayAssign(scope, s)
	case *ast.IfStmt:
		g.genIfStmt(scope, s)
	case *ast.RepeatStmt:
		g.genRepeatStmt(scope, s)
	case *ast.ForStmt:
		g.genForStmt(scope, s)
	case *ast.PCallStmt:
		g.genPCallStmt(scope, s)
	case *ast.CompoundStmt:
		g.genCompoundStmt(scope, s)
	case *ast.ReadStmt:
		g.genReadStmt(scope, s)
	case *ast.WriteStmt:
		g.genWriteStmt(scope, s)
	case *ast.NullStmt:
		// emits nothing
	}
}

func (g *Generator) genAssign(scope *symtab.Scope, s *ast.AssignStmt) {
	rhs := g.genExpr(scope, s.Value)
	g.list.Emit(OpStoreVar, s.Target.Symbol, rhs, nil)
}

func (g *Generator) genArrayAssign(scope *symtab.Scope, s *ast.ArrayAssignStmt) {
	idx := g.genExpr(scope, s.Index)
	val := g.genExpr(scope, s.Value)
	g.list.Emit(OpStoreArray, s.Target.Symbol, val, idx)
}

// genIfStmt lowers "if cond then then_ [else else_]" (spec §4.5): the
// condition branches to @ifthen when it holds; the else arm (if any) runs
// on fall-through, then jumps past the then arm to @ifdone.
func (g *Generator) genIfStmt(scope *symtab.Scope, s *ast.IfStmt) {
	ifthen := g.table.AllocLabel(scope)
	ifdone := g.table.AllocLabel(scope)

	g.genCondition(scope, s.Cond, ifthen)
	if s.Else != nil {
		g.genStmt(scope, s.Else)
	}
	g.list.Emit(OpJump, ifdone, nil, nil)
	g.list.Emit(OpLabel, ifthen, nil, nil)
	g.genStmt(scope, s.Then)
	g.list.Emit(OpLabel, ifdone, nil, nil)
}

// genRepeatStmt lowers "repeat body until cond": the body always runs at
// least once; the loop continues while cond is false.
func (g *Generator) genRepeatStmt(scope *symtab.Scope, s *ast.RepeatStmt) {
	loopstart := g.table.AllocLabel(scope)
	loopdone := g.table.AllocLabel(scope)

	g.list.Emit(OpLabel, loopstart, nil, nil)
	for n := s.Body; n != nil; n = n.Next {
		g.genStmt(scope, n.Stmt)
	}
	g.genCondition(scope, s.Cond, loopdone)
	g.list.Emit(OpJump, loopstart, nil, nil)
	g.list.Emit(OpLabel, loopdone, nil, nil)
}

// genForStmt lowers "for i := start (to|downto) stop do body" (spec §4.5,
// testable property 7): the post-loop INC/DEC restores the induction
// variable's source-level final value; it is never optimized away.
func (g *Generator) genForStmt(scope *symtab.Scope, s *ast.ForStmt) {
	loopSym := s.Loop.Symbol
	start := g.genExpr(scope, s.Start)
	g.list.Emit(OpStoreVar, loopSym, start, nil)

	forstart := g.table.AllocLabel(scope)
	fordone := g.table.AllocLabel(scope)

	g.list.Emit(OpLabel, forstart, nil, nil)
	stop := g.genExpr(scope, s.Stop)

	if s.Downto {
		g.list.Emit(OpBranchLst, fordone, loopSym, stop)
		g.genStmt(scope, s.Body)
		g.list.Emit(OpDec, loopSym, nil, nil)
		g.list.Emit(OpJump, forstart, nil, nil)
		g.list.Emit(OpLabel, fordone, nil, nil)
		g.list.Emit(OpInc, loopSym, nil, nil)
		return
	}

	g.list.Emit(OpBranchGtt, fordone, loopSym, stop)
	g.genStmt(scope, s.Body)
	g.list.Emit(OpInc, loopSym, nil, nil)
	g.list.Emit(OpJump, forstart, nil, nil)
	g.list.Emit(OpLabel, fordone, nil, nil)
	g.list.Emit(OpDec, loopSym, nil, nil)
}

// genReadStmt dispatches each target to the READ_* opcode matching its
// value-type; an array element target reads into a temp, then stores it.
func (g *Generator) genReadStmt(scope *symtab.Scope, s *ast.ReadStmt) {
	for r := s.Args; r != nil; r = r.Next {
		if r.Index == nil {
			g.list.Emit(readOpcode(r.Target.Symbol.Type), r.Target.Symbol, nil, nil)
			continue
		}
		idx := g.genExpr(scope, r.Index)
		tmp := g.table.AllocTemp(scope, r.Target.Symbol.Type)
		g.list.Emit(readOpcode(tmp.Type), tmp, nil, nil)
		g.list.Emit(OpStoreArray, r.Target.Symbol, tmp, idx)
	}
}

func readOpcode(t symtab.Type) OpCode {
	switch t {
	case symtab.TypeUint:
		return OpReadUint
	case symtab.TypeChar:
		return OpReadChar
	default:
		return OpReadInt
	}
}

// genWriteStmt lowers each write argument: a bare string literal emits
// WRITE_STRING; an expression is evaluated then dispatched on its value's
// type. The Newline flag (writeln) carries no opcode of its own — the
// source corpus doesn't define a newline policy at the IR level either
// (spec §9), so it is preserved only as a statement-level marker with no
// lowering effect.
func (g *Generator) genWriteStmt(scope *symtab.Scope, s *ast.WriteStmt) {
	for w := s.Args; w != nil; w = w.Next {
		if w.IsString {
			str := g.table.AllocString(scope, w.StringLit)
			g.list.Emit(OpWriteString, str, nil, nil)
			continue
		}
		val := g.genExpr(scope, w.Value)
		g.list.Emit(writeOpcode(val.Type), val, nil, nil)
	}
}

func writeOpcode(t symtab.Type) OpCode {
	switch t {
	case symtab.TypeUint:
		return OpWriteUint
	case symtab.TypeChar:
		return OpWriteChar
	default:
		return OpWriteInt
	}
}

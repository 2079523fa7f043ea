package ir

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// genExpr lowers an expression to a single symbol holding its value: either
// an existing symbol (a variable, constant, or literal referenced as-is) or
// a freshly allocated temporary carrying a just-computed result (spec §4.5).
func (g *Generator) genExpr(scope *symtab.Scope, expr ast.Expr) *symtab.Symbol {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		return g.genBinaryExpr(scope, e)
	case *ast.UnaryExpr:
		return g.genUnaryExpr(scope, e)
	case *ast.ParenExpr:
		return g.genExpr(scope, e.Inner)
	case *ast.IdentExpr:
		return e.Ident.Symbol
	case *ast.UnsignedLit:
		return g.table.AllocLiteral(scope, symtab.TypeInt, int64(e.Value))
	case *ast.CharLit:
		return g.table.AllocLiteral(scope, symtab.TypeChar, int64(e.Value))
	case *ast.ArrayIndexExpr:
		return g.genArrayIndex(scope, e)
	case *ast.CallExpr:
		return g.genCallExpr(scope, e)
	default:
		return nil
	}
}

func (g *Generator) genBinaryExpr(scope *symtab.Scope, e *ast.BinaryExpr) *symtab.Symbol {
	left := g.genExpr(scope, e.Left)
	right := g.genExpr(scope, e.Right)
	dest := g.table.AllocTemp(scope, joinType(left, right))
	g.list.Emit(binOpcode(e.Op), dest, left, right)
	return dest
}

// genUnaryExpr lowers a leading sign on the first term of an expression.
// A literal negated this way is constant-folded at lowering time rather
// than emitting a NEG (spec §4.5); "+x" is a pure pass-through.
func (g *Generator) genUnaryExpr(scope *symtab.Scope, e *ast.UnaryExpr) *symtab.Symbol {
	if e.Op == ast.OpAdd {
		return g.genExpr(scope, e.Operand)
	}
	if lit, ok := e.Operand.(*ast.UnsignedLit); ok {
		return g.table.AllocLiteral(scope, symtab.TypeInt, -int64(lit.Value))
	}
	val := g.genExpr(scope, e.Operand)
	dest := g.table.AllocTemp(scope, val.Type)
	g.list.Emit(OpNeg, dest, val, nil)
	return dest
}

func (g *Generator) genArrayIndex(scope *symtab.Scope, e *ast.ArrayIndexExpr) *symtab.Symbol {
	idx := g.genExpr(scope, e.Index)
	arr := e.Array.Symbol
	dest := g.table.AllocTemp(scope, arr.Type)
	g.list.Emit(OpLoadArray, dest, arr, idx)
	return dest
}

// joinType mirrors the semantic analyzer's inference join (spec §4.4) at
// the symbol-type level: matching types join to themselves, otherwise the
// left-hand operand's type propagates.
func joinType(left, right *symtab.Symbol) symtab.Type {
	if left == nil {
		if right == nil {
			return symtab.TypeInt
		}
		return right.Type
	}
	if right == nil || left.Type == right.Type {
		return left.Type
	}
	return left.Type
}

func binOpcode(op ast.BinOp) OpCode {
	switch op {
	case ast.OpAdd:
		return OpAdd
	case ast.OpSub:
		return OpSub
	case ast.OpMul:
		return OpMul
	case ast.OpDiv:
		return OpDiv
	default:
		return OpAdd
	}
}

func branchOpcode(op ast.RelOp) OpCode {
	switch op {
	case ast.OpEQ:
		return OpBranchEqu
	case ast.OpNE:
		return OpBranchNeq
	case ast.OpGT:
		return OpBranchGtt
	case ast.OpGE:
		return OpBranchGeq
	case ast.OpLT:
		return OpBranchLst
	case ast.OpLE:
		return OpBranchLeq
	default:
		return OpBranchEqu
	}
}

// genCondition lowers "left relop right", emitting a branch to target that
// fires when the relation holds; the caller decides what falls through.
func (g *Generator) genCondition(scope *symtab.Scope, cond *ast.Condition, target *symtab.Symbol) {
	left := g.genExpr(scope, cond.Left)
	right := g.genExpr(scope, cond.Right)
	g.list.Emit(branchOpcode(cond.Op), target, left, right)
}

package semantic

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// inferType computes an expression's type per the join table in spec §4.4,
// resolving every identifier it touches onto its symbol entry along the way.
func (a *Analyzer) inferType(scope *symtab.Scope, expr ast.Expr) Type {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		left := a.inferType(scope, e.Left)
		right := a.inferType(scope, e.Right)
		return joinTypes(left, right)

	case *ast.UnaryExpr:
		return a.inferType(scope, e.Operand)

	case *ast.ParenExpr:
		return a.inferType(scope, e.Inner)

	case *ast.UnsignedLit:
		return TypeLiteral

	case *ast.CharLit:
		return TypeChar

	case *ast.IdentExpr:
		return a.resolveIdentUse(scope, e.Ident)

	case *ast.ArrayIndexExpr:
		a.inferType(scope, e.Index)
		return a.resolveArrayUse(scope, e.Array)

	case *ast.CallExpr:
		return a.resolveFuncCall(scope, e)

	default:
		return TypeVoid
	}
}

// resolveIdentUse resolves a bare identifier factor: a variable or constant.
func (a *Analyzer) resolveIdentUse(scope *symtab.Scope, id *ast.Identifier) Type {
	if id.Name == scope.Name && scope.Owner != nil && scope.Owner.Category == symtab.CategoryFunction {
		id.Symbol = scope.RetSlot
		return fromSymTabType(scope.RetSlot.Type)
	}
	sym := a.Table.Lookup(id.Name)
	if sym == nil {
		a.fatalf(id.Line(), "undeclared identifier %q", id.Name)
		return TypeVoid
	}
	switch sym.Category {
	case symtab.CategoryProc, symtab.CategoryFunction, symtab.CategoryArray:
		a.fatalf(id.Line(), "%q cannot be used as a scalar value here", id.Name)
	}
	id.Symbol = sym
	return fromSymTabType(sym.Type)
}

// resolveArrayUse resolves the array name in an indexed access; the result
// type is the array's element type.
func (a *Analyzer) resolveArrayUse(scope *symtab.Scope, id *ast.Identifier) Type {
	sym := a.Table.Lookup(id.Name)
	if sym == nil {
		a.fatalf(id.Line(), "undeclared identifier %q", id.Name)
		return TypeVoid
	}
	if sym.Category != symtab.CategoryArray {
		a.fatalf(id.Line(), "%q is not an array", id.Name)
	}
	id.Symbol = sym
	return fromSymTabType(sym.Type)
}

// resolveFuncCall resolves a function-call factor by overload resolution
// and returns its declared return type.
func (a *Analyzer) resolveFuncCall(scope *symtab.Scope, call *ast.CallExpr) Type {
	sym := a.resolveCall(scope, call.Callee.Name, call.Args, call.Line())
	if sym == nil {
		return TypeVoid
	}
	if sym.Category != symtab.CategoryFunction {
		a.fatalf(call.Line(), "%q is not a function", call.Callee.Name)
		return TypeVoid
	}
	call.Callee.Symbol = sym
	a.validateCallArgs(scope, sym.Name, call.Args, call.Line())
	return fromSymTabType(sym.Type)
}

// validateRefArg enforces the strict by-reference argument shape (spec
// §4.4.5): a single-term, single-factor expression with no leading sign,
// whose factor is a plain identifier or an array element, and whose target
// category (variable vs array) matches what a reference parameter expects.
func (a *Analyzer) validateRefArg(scope *symtab.Scope, arg ast.Expr, argIndex int, line int) {
	switch e := arg.(type) {
	case *ast.IdentExpr:
		sym := a.Table.Lookup(e.Ident.Name)
		if sym == nil {
			a.fatalf(line, "undeclared identifier %q", e.Ident.Name)
			return
		}
		switch sym.Category {
		case symtab.CategoryVariable, symtab.CategoryByValue, symtab.CategoryByReference:
			e.Ident.Symbol = sym
		default:
			a.fatalf(line, "BADREF: argument %d must name a variable", argIndex)
		}
	case *ast.ArrayIndexExpr:
		a.inferType(scope, e.Index)
		sym := a.Table.Lookup(e.Array.Name)
		if sym == nil {
			a.fatalf(line, "undeclared identifier %q", e.Array.Name)
			return
		}
		if sym.Category != symtab.CategoryArray {
			a.fatalf(line, "BADREF: argument %d must name an array element", argIndex)
		}
		e.Array.Symbol = sym
	default:
		a.fatalf(line, "BADREF: argument %d is not a valid reference target", argIndex)
	}
}

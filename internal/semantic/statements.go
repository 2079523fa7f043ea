package semantic

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

func (a *Analyzer) analyzeCompoundStmt(scope *symtab.Scope, c *ast.CompoundStmt) {
	for s := c.Stmts; s != nil; s = s.Next {
		a.analyzeStmt(scope, s.Stmt)
	}
}

func (a *Analyzer) analyzeStmt(scope *symtab.Scope, stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		a.analyzeAssign(scope, s)
	case *ast.ArrayAssignStmt:
		a.analyzeArrayAssign(scope, s)
	case *ast.IfStmt:
		a.inferType(scope, s.Cond.Left)
		a.inferType(scope, s.Cond.Right)
		a.analyzeStmt(scope, s.Then)
		if s.Else != nil {
			a.analyzeStmt(scope, s.Else)
		}
	case *ast.RepeatStmt:
		for n := s.Body; n != nil; n = n.Next {
			a.analyzeStmt(scope, n.Stmt)
		}
		a.inferType(scope, s.Cond.Left)
		a.inferType(scope, s.Cond.Right)
	case *ast.ForStmt:
		a.analyzeForStmt(scope, s)
	case *ast.PCallStmt:
		a.analyzePCall(scope, s)
	case *ast.CompoundStmt:
		a.analyzeCompoundStmt(scope, s)
	case *ast.ReadStmt:
		a.analyzeRead(scope, s)
	case *ast.WriteStmt:
		a.analyzeWrite(scope, s)
	case *ast.NullStmt:
		// nothing to resolve
	}
}

// analyzeAssign resolves "ident := expr". An assignment whose target name
// equals the enclosing scope's namespace targets the function's own
// return slot rather than a declared variable (spec §4.4.3).
func (a *Analyzer) analyzeAssign(scope *symtab.Scope, s *ast.AssignStmt) {
	a.inferType(scope, s.Value)

	if s.Target.Name == scope.Name && scope.Owner != nil && scope.Owner.Category == symtab.CategoryFunction {
		// Return-slot write: the reserved offset-0 variable of this
		// function's own scope, not the mangled callable symbol itself.
		s.Target.Symbol = scope.RetSlot
		return
	}

	sym := a.Table.Lookup(s.Target.Name)
	if sym == nil {
		a.fatalf(s.Line(), "undeclared identifier %q", s.Target.Name)
		return
	}
	switch sym.Category {
	case symtab.CategoryConstant, symtab.CategoryProc, symtab.CategoryFunction, symtab.CategoryArray:
		a.fatalf(s.Line(), "%q cannot be assigned to", s.Target.Name)
	}
	s.Target.Symbol = sym
}

func (a *Analyzer) analyzeArrayAssign(scope *symtab.Scope, s *ast.ArrayAssignStmt) {
	sym := a.Table.Lookup(s.Target.Name)
	if sym == nil {
		a.fatalf(s.Line(), "undeclared identifier %q", s.Target.Name)
	} else if sym.Category != symtab.CategoryArray {
		a.fatalf(s.Line(), "%q is not an array", s.Target.Name)
	} else {
		s.Target.Symbol = sym
	}
	a.inferType(scope, s.Index)
	a.inferType(scope, s.Value)
}

func (a *Analyzer) analyzeForStmt(scope *symtab.Scope, s *ast.ForStmt) {
	sym := a.Table.Lookup(s.Loop.Name)
	if sym == nil {
		a.fatalf(s.Line(), "undeclared identifier %q", s.Loop.Name)
	} else {
		s.Loop.Symbol = sym
	}
	a.inferType(scope, s.Start)
	a.inferType(scope, s.Stop)
	a.analyzeStmt(scope, s.Body)
}

// analyzePCall resolves a procedure-call statement and validates its
// arguments, including reference-parameter shape checking.
func (a *Analyzer) analyzePCall(scope *symtab.Scope, s *ast.PCallStmt) {
	sym := a.resolveCall(scope, s.Callee.Name, s.Args, s.Line())
	if sym == nil {
		return
	}
	if sym.Category != symtab.CategoryProc {
		a.fatalf(s.Line(), "%q is not a procedure", s.Callee.Name)
		return
	}
	s.Callee.Symbol = sym
	a.validateCallArgs(scope, sym.Name, s.Args, s.Line())
}

// validateCallArgs walks the resolved callable's declared parameter shapes
// against the actual argument expressions, checking each by-reference
// argument's shape (spec §4.4.5).
func (a *Analyzer) validateCallArgs(scope *symtab.Scope, mangledKey string, args *ast.ArgList, line int) {
	params, ok := a.callableParams[mangledKey]
	if !ok {
		return
	}
	byRef := FlattenByRef(params)
	i := 0
	for arg := args; arg != nil; arg = arg.Next {
		if i < len(byRef) && byRef[i] {
			a.validateRefArg(scope, arg.Arg, i+1, line)
		}
		i++
	}
}

func (a *Analyzer) analyzeRead(scope *symtab.Scope, s *ast.ReadStmt) {
	for r := s.Args; r != nil; r = r.Next {
		if r.Index != nil {
			sym := a.Table.Lookup(r.Target.Name)
			if sym == nil {
				a.fatalf(r.Line(), "undeclared identifier %q", r.Target.Name)
				continue
			}
			if sym.Category != symtab.CategoryArray {
				a.fatalf(r.Line(), "%q is not an array", r.Target.Name)
			}
			r.Target.Symbol = sym
			a.inferType(scope, r.Index)
			continue
		}
		sym := a.Table.Lookup(r.Target.Name)
		if sym == nil {
			a.fatalf(r.Line(), "undeclared identifier %q", r.Target.Name)
			continue
		}
		r.Target.Symbol = sym
	}
}

func (a *Analyzer) analyzeWrite(scope *symtab.Scope, s *ast.WriteStmt) {
	for w := s.Args; w != nil; w = w.Next {
		if w.IsString {
			continue
		}
		a.inferType(scope, w.Value)
	}
}

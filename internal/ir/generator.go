package ir

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// Function records one FN_START..FN_END region of the flat instruction
// list, so downstream passes (CFG partitioning, the assembler) can work
// function-by-function without re-scanning for frame boundaries.
type Function struct {
	Name  string // mangled callable key, or "_start" for the program entry
	Scope *symtab.Scope
	Start *Instruction // the FN_START instruction
	End   *Instruction // the FN_END instruction
}

// Generator lowers a semantically-analyzed *ast.Program into a flat IR
// instruction list, allocating temporaries and labels from the same symbol
// table the analyzer populated.
type Generator struct {
	table  *symtab.Table
	list   *List
	params map[string]*ast.Param // mangled callable key -> declared params
	funcs  []*Function
}

// New creates a Generator sharing table (already populated by the semantic
// analyzer) and params (the analyzer's resolved call-argument shapes, see
// semantic.Analyzer.CallableParams).
func New(table *symtab.Table, params map[string]*ast.Param) *Generator {
	return &Generator{table: table, list: NewList(), params: params}
}

// Generate lowers prog's main block as the "_start" function and every
// nested procedure/function declared in it, recursively. It returns the
// flat instruction list in program order (nested callables first, "_start"
// last — see genFunctionBody) plus the per-function boundary table.
func (g *Generator) Generate(prog *ast.Program, mainScope *symtab.Scope) (*List, []*Function) {
	g.genFunctionBody(mainScope, prog.Block)
	return g.list, g.funcs
}

// genFunctionBody emits every nested procedure/function of block first
// (each a fully self-contained FN_START..FN_END region), then this block's
// own FN_START/body/FN_END under scope.Owner.
func (g *Generator) genFunctionBody(scope *symtab.Scope, block *ast.Block) {
	if block == nil {
		g.emitFrame(scope, nil)
		return
	}
	for d := block.PFDecl; d != nil; d = d.Next {
		if d.Proc != nil {
			g.genFunctionBody(d.Proc.Name.Symbol.Scope, d.Proc.Body)
		} else {
			g.genFunctionBody(d.Func.Name.Symbol.Scope, d.Func.Body)
		}
	}
	g.emitFrame(scope, block.Body)
}

// emitFrame emits the FN_START/body/FN_END triple for one callable's own
// scope, then records its Function boundary. The offsets FN_START needs
// (argoff/varoff/tmpoff) are read by the assembler straight off scope,
// after generation finishes and every temporary has been allocated.
func (g *Generator) emitFrame(scope *symtab.Scope, body *ast.CompoundStmt) {
	fnSym := scope.Owner
	start := g.list.Emit(OpFnStart, fnSym, nil, nil)
	start.FnScope = scope
	if body != nil {
		g.genCompoundStmt(scope, body)
	}
	end := g.list.Emit(OpFnEnd, fnSym, nil, nil)
	end.FnScope = scope
	g.funcs = append(g.funcs, &Function{Name: fnSym.Name, Scope: scope, Start: start, End: end})
}

// Package semantic resolves the parsed AST against the symbol table: it
// declares every constant, variable, and callable in source order, mangles
// callable names for overload resolution, resolves every identifier use to
// its symbol entry, infers expression types, and validates call arguments
// and reference-parameter shapes (spec §4.4).
package semantic

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/errors"
	"github.com/hiperion-pscc/pscc/internal/lexer"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// mainScopeName is the namespace of the program's top-level block, also
// the function name the IR emitter's FN_START uses for the entry point.
const mainScopeName = "_start"

// Analyzer walks an *ast.Program once, in source order, annotating it with
// resolved symbols and reporting any errors found along the way.
type Analyzer struct {
	Table *symtab.Table
	Errs  *errors.List

	src  string
	file string

	// arities records, per unmangled callable name, every declared
	// parameter count, so a call with the wrong argument count can be
	// reported distinctly from "no such overload".
	arities map[string][]int

	// callableParams maps a mangled key back to its declared parameter
	// chain, so a call site can check each argument against its formal's
	// by-reference-ness (the symbol table entry alone doesn't carry that).
	callableParams map[string]*ast.Param
}

// New creates an Analyzer over a fresh symbol table.
func New(src, file string) *Analyzer {
	return &Analyzer{
		Table:          symtab.New(),
		Errs:           &errors.List{},
		src:            src,
		file:           file,
		arities:        map[string][]int{},
		callableParams: map[string]*ast.Param{},
	}
}

func (a *Analyzer) fatalf(line int, format string, args ...any) {
	a.Errs.Addf(errors.PhaseSemantic, lexer.Position{Line: line}, a.src, a.file, true, format, args...)
}

func (a *Analyzer) recoverablef(line int, format string, args ...any) {
	a.Errs.Addf(errors.PhaseSemantic, lexer.Position{Line: line}, a.src, a.file, false, format, args...)
}

// CallableParams returns, for every mangled callable key installed during
// analysis, the declared parameter chain used to validate call sites. The
// IR generator reuses it to decide PUSH_VAL vs PUSH_ADDR per argument.
func (a *Analyzer) CallableParams() map[string]*ast.Param { return a.callableParams }

// Analyze runs the full pass over prog and returns the program's entry scope.
// Scope balance (spec testable property 3) holds by construction: every
// EnterScope here is matched by exactly one ExitScope before Analyze returns.
func (a *Analyzer) Analyze(prog *ast.Program) *symtab.Scope {
	scope := a.Table.EnterScope(mainScopeName)
	defer a.Table.ExitScope()
	mainSym := a.Table.DeclareMain(mainScopeName, prog.Line())
	mainSym.Scope = scope
	scope.Owner = mainSym
	a.processBlockContents(scope, prog.Block)
	return scope
}

// processBlockContents installs every declaration of block into the
// already-entered scope and analyzes its compound statement. Nested
// procedures/functions are mangled and installed directly into scope:
// their own bodies get their own nested scope via installCallables.
func (a *Analyzer) processBlockContents(scope *symtab.Scope, block *ast.Block) {
	if block == nil {
		return
	}
	a.installConstants(scope, block.Consts)
	a.installVariables(scope, block.Vars)
	a.installCallables(scope, block.PFDecl)
	if block.Body != nil {
		a.analyzeCompoundStmt(scope, block.Body)
	}
}

func (a *Analyzer) installConstants(scope *symtab.Scope, decls *ast.ConstDecl) {
	for c := decls; c != nil; c = c.Next {
		if a.Table.LookupLocal(c.Name.Name) != nil {
			a.recoverablef(c.Line(), "duplicate declaration of %q", c.Name.Name)
			continue
		}
		typ := identConstType(c.Name.Kind)
		sym := a.Table.DeclareConstant(scope, c.Name.Name, toSymTabType(typ), c.Name.Value, c.Line())
		c.Name.Symbol = sym
	}
}

func identConstType(kind ast.IdentKind) Type {
	switch kind {
	case ast.IdentUintConst:
		return TypeUint
	case ast.IdentCharConst:
		return TypeChar
	default:
		return TypeInt
	}
}

func (a *Analyzer) installVariables(scope *symtab.Scope, decls *ast.VarDecl) {
	for v := decls; v != nil; v = v.Next {
		for _, name := range v.Names {
			if a.Table.LookupLocal(name.Name) != nil {
				a.recoverablef(v.Line(), "duplicate declaration of %q", name.Name)
				continue
			}
			typ := toSymTabType(fromBasicType(v.Type))
			var sym *symtab.Symbol
			if v.IsArray {
				sym = a.Table.DeclareArray(scope, name.Name, typ, v.ArrayLen, v.Line())
			} else {
				sym = a.Table.DeclareVariable(scope, name.Name, typ, v.Line())
			}
			name.Symbol = sym
		}
	}
}

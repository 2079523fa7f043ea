package semantic

import (
	"strings"

	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// mangle builds a callable's lookup key: its source name concatenated with
// one two-character type suffix per formal/actual parameter, in order
// (spec §4.4.2, testable property 5).
func mangle(name string, paramTypes []Type) string {
	var b strings.Builder
	b.WriteString(name)
	for _, t := range paramTypes {
		b.WriteString(t.suffix())
	}
	return b.String()
}

// flattenParamTypes expands a paradef chain (which groups names sharing a
// type) into one Type per individual parameter, in declared order.
func flattenParamTypes(params *ast.Param) []Type {
	var types []Type
	for p := params; p != nil; p = p.Next {
		t := fromBasicType(p.Type)
		for range p.Names {
			types = append(types, t)
		}
	}
	return types
}

// installCallables mangles and installs every procedure/function in pf
// into scope, then analyzes each one's own (newly entered) scope.
func (a *Analyzer) installCallables(scope *symtab.Scope, pf *ast.PFDecl) {
	for d := pf; d != nil; d = d.Next {
		if d.Proc != nil {
			a.installProc(scope, d.Proc)
		} else {
			a.installFunc(scope, d.Func)
		}
	}
}

func (a *Analyzer) installProc(scope *symtab.Scope, d *ast.ProcDecl) {
	types := flattenParamTypes(d.Params)
	key := mangle(d.Name.Name, types)
	if symtab.LookupIn(scope, key) != nil {
		a.recoverablef(d.Line(), "duplicate declaration of %q", d.Name.Name)
	}
	sym := a.Table.DeclareCallable(scope, key, false, symtab.TypeVoid, d.Line())
	d.Name.Symbol = sym
	a.arities[d.Name.Name] = append(a.arities[d.Name.Name], len(types))
	a.callableParams[key] = d.Params

	inner := a.Table.EnterScope(d.Name.Name)
	sym.Scope = inner
	inner.Owner = sym
	a.installParams(inner, d.Params)
	a.processBlockContents(inner, d.Body)
	a.Table.ExitScope()
}

func (a *Analyzer) installFunc(scope *symtab.Scope, d *ast.FuncDecl) {
	types := flattenParamTypes(d.Params)
	key := mangle(d.Name.Name, types)
	if symtab.LookupIn(scope, key) != nil {
		a.recoverablef(d.Line(), "duplicate declaration of %q", d.Name.Name)
	}
	retType := toSymTabType(fromBasicType(d.ReturnType))
	sym := a.Table.DeclareCallable(scope, key, true, retType, d.Line())
	d.Name.Symbol = sym
	a.arities[d.Name.Name] = append(a.arities[d.Name.Name], len(types))
	a.callableParams[key] = d.Params

	inner := a.Table.EnterScope(d.Name.Name)
	sym.Scope = inner
	inner.Owner = sym
	inner.RetSlot = a.Table.DeclareReturnSlot(inner, retType)
	a.installParams(inner, d.Params)
	a.processBlockContents(inner, d.Body)
	a.Table.ExitScope()
}

func (a *Analyzer) installParams(scope *symtab.Scope, params *ast.Param) {
	for p := params; p != nil; p = p.Next {
		typ := toSymTabType(fromBasicType(p.Type))
		for _, name := range p.Names {
			if a.Table.LookupLocal(name.Name) != nil {
				a.recoverablef(p.Line(), "duplicate declaration of %q", name.Name)
				continue
			}
			sym := a.Table.DeclareParam(scope, name.Name, typ, p.ByRef, p.Line())
			name.Symbol = sym
		}
	}
}

// resolveCall infers each argument's type, builds a mangled key (literals
// tried first as unsigned, then retried as signed), and resolves it via
// the scope chain. It returns the matched symbol, or nil with a fatal
// error already recorded when neither attempt resolves.
func (a *Analyzer) resolveCall(scope *symtab.Scope, name string, args *ast.ArgList, line int) *symtab.Symbol {
	argTypes := make([]Type, 0, 4)
	for arg := args; arg != nil; arg = arg.Next {
		argTypes = append(argTypes, a.inferType(scope, arg.Arg))
	}

	unsignedKey := mangle(name, substituteLiterals(argTypes, TypeUint))
	if sym := a.Table.Lookup(unsignedKey); sym != nil {
		return sym
	}
	signedKey := mangle(name, substituteLiterals(argTypes, TypeInt))
	if sym := a.Table.Lookup(signedKey); sym != nil {
		return sym
	}

	if arities, declared := a.arities[name]; declared && !contains(arities, len(argTypes)) {
		a.fatalf(line, "wrong number of arguments to %q: got %d", name, len(argTypes))
		return nil
	}
	a.fatalf(line, "call to undeclared function or procedure %q (tried %q and %q)", name, unsignedKey, signedKey)
	return nil
}

// FlattenByRef expands a paradef chain into one by-reference flag per
// individual parameter, in declared order, matching flattenParamTypes.
// Exported for the IR generator, which needs the same shape to decide
// PUSH_VAL vs PUSH_ADDR at each call site.
func FlattenByRef(params *ast.Param) []bool {
	var flags []bool
	for p := params; p != nil; p = p.Next {
		for range p.Names {
			flags = append(flags, p.ByRef)
		}
	}
	return flags
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func substituteLiterals(types []Type, as Type) []Type {
	out := make([]Type, len(types))
	for i, t := range types {
		if t == TypeLiteral {
			out[i] = as
		} else {
			out[i] = t
		}
	}
	return out
}


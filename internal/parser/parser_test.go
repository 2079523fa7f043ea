package parser

import (
	"strings"
	"testing"

	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	l := lexer.New(strings.NewReader(src))
	p := New(l, src, "test.pas")
	prog := p.Parse()
	if p.Errors().HasFatal() {
		t.Fatalf("unexpected fatal errors: %s", p.Errors().Format())
	}
	return prog
}

func TestParseConstAndVarAssignment(t *testing.T) {
	prog := parseSource(t, `const one = 1;
var x: integer;
begin
  x := one + 2
end.`)

	if prog.Block.Consts == nil || prog.Block.Consts.Name.Name != "one" {
		t.Fatal("expected const 'one'")
	}
	if prog.Block.Vars == nil || prog.Block.Vars.Names[0].Name != "x" {
		t.Fatal("expected var 'x'")
	}
	assign, ok := prog.Block.Body.Stmts.Stmt.(*ast.AssignStmt)
	if !ok {
		t.Fatalf("expected AssignStmt, got %T", prog.Block.Body.Stmts.Stmt)
	}
	if assign.Target.Name != "x" {
		t.Errorf("assignment target = %q, want x", assign.Target.Name)
	}
	bin, ok := assign.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected addition, got %#v", assign.Value)
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseSource(t, `var i,s: integer;
begin s := 0; for i := 1 to 3 do s := s + i end.`)

	stmts := prog.Block.Body.Stmts
	if _, ok := stmts.Stmt.(*ast.AssignStmt); !ok {
		t.Fatalf("expected first stmt to be assignment, got %T", stmts.Stmt)
	}
	forStmt, ok := stmts.Next.Stmt.(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected ForStmt, got %T", stmts.Next.Stmt)
	}
	if forStmt.Loop.Name != "i" || forStmt.Downto {
		t.Errorf("unexpected for-loop shape: %+v", forStmt)
	}
}

func TestParseOverloadedFunctions(t *testing.T) {
	prog := parseSource(t, `var a: integer;
function f(x: integer): integer; begin f := x end;
function f(x: uinteger): uinteger; begin f := x end;
begin a := f(1) end.`)

	pf := prog.Block.PFDecl
	if pf == nil || pf.Func == nil || pf.Func.Name.Name != "f" {
		t.Fatal("expected first function 'f'")
	}
	if pf.Next == nil || pf.Next.Func.Params.Type != ast.TypeUint {
		t.Fatal("expected second overload to take a uinteger parameter")
	}
}

func TestParseReferenceParameter(t *testing.T) {
	prog := parseSource(t, `var x: integer;
procedure p(var v: integer);
begin v := v + 1 end;
begin p(x) end.`)

	proc := prog.Block.PFDecl.Proc
	if proc.Params == nil || !proc.Params.ByRef {
		t.Fatal("expected a by-reference parameter")
	}
	call, ok := prog.Block.Body.Stmts.Stmt.(*ast.PCallStmt)
	if !ok || call.Callee.Name != "p" {
		t.Fatalf("expected call to p, got %#v", prog.Block.Body.Stmts.Stmt)
	}
}

func TestParseWriteWithStringAndExpr(t *testing.T) {
	prog := parseSource(t, `var x: integer;
begin x := 1; write("x = ", x) end.`)

	write, ok := prog.Block.Body.Stmts.Next.Stmt.(*ast.WriteStmt)
	if !ok {
		t.Fatalf("expected WriteStmt, got %T", prog.Block.Body.Stmts.Next.Stmt)
	}
	if !write.Args.IsString || write.Args.StringLit != "x = " {
		t.Fatalf("unexpected string arg: %+v", write.Args)
	}
	if write.Args.Next == nil {
		t.Fatal("expected a second write argument")
	}
}

func TestParseArrayDeclarationAndIndexAssignment(t *testing.T) {
	prog := parseSource(t, `var a: array[10] of integer;
begin a[1] := 5 end.`)

	if !prog.Block.Vars.IsArray || prog.Block.Vars.ArrayLen != 10 {
		t.Fatalf("expected array[10], got %+v", prog.Block.Vars)
	}
	assign, ok := prog.Block.Body.Stmts.Stmt.(*ast.ArrayAssignStmt)
	if !ok {
		t.Fatalf("expected ArrayAssignStmt, got %T", prog.Block.Body.Stmts.Stmt)
	}
	if assign.Target.Name != "a" {
		t.Errorf("target = %q, want a", assign.Target.Name)
	}
}

func TestParseRecoversFromEqualsInAssignment(t *testing.T) {
	l := lexer.New(strings.NewReader("var x: integer; begin x = 1 end."))
	p := New(l, "", "")
	p.Parse()
	if p.Errors().HasFatal() {
		t.Fatalf("expected only a recoverable error, got fatal: %s", p.Errors().Format())
	}
	if !p.Errors().HasErrors() {
		t.Fatal("expected a recoverable error for '=' in assignment position")
	}
}

func TestParseBadReferenceArgumentShapeIsNotRejectedByParser(t *testing.T) {
	// The parser accepts any expression as a call argument; rejecting
	// non-lvalue reference arguments is the semantic analyzer's job.
	prog := parseSource(t, `var x: integer;
procedure p(var v: integer); begin v := v end;
begin p(x+1) end.`)
	call := prog.Block.Body.Stmts.Stmt.(*ast.PCallStmt)
	if call.Args == nil {
		t.Fatal("expected one argument")
	}
}

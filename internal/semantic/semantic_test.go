package semantic

import (
	"strings"
	"testing"

	"github.com/hiperion-pscc/pscc/internal/lexer"
	"github.com/hiperion-pscc/pscc/internal/parser"
)

func mustParse(t *testing.T, src string) (*Analyzer, *parser.Parser) {
	t.Helper()
	l := lexer.New(strings.NewReader(src))
	p := parser.New(l, src, "test.pas")
	prog := p.Parse()
	if p.Errors().HasFatal() {
		t.Fatalf("parse error: %s", p.Errors().Format())
	}
	a := New(src, "test.pas")
	a.Analyze(prog)
	return a, p
}

func TestAnalyzeConstAndVarAssignment(t *testing.T) {
	a, _ := mustParse(t, `const one = 1;
var x: integer;
begin
  x := one + 2
end.`)
	if a.Errs.HasErrors() {
		t.Fatalf("unexpected errors: %s", a.Errs.Format())
	}
}

func TestAnalyzeUndeclaredIdentifierIsFatal(t *testing.T) {
	a, _ := mustParse(t, `var x: integer;
begin y := 1 end.`)
	if !a.Errs.HasFatal() {
		t.Fatal("expected a fatal error for undeclared identifier")
	}
}

func TestAnalyzeOverloadResolutionByLiteralSign(t *testing.T) {
	a, p := mustParse(t, `var a: integer;
function f(x: integer): integer; begin f := x end;
function f(x: uinteger): uinteger; begin f := x end;
begin a := f(1) end.`)
	if a.Errs.HasFatal() {
		t.Fatalf("unexpected fatal errors: %s", a.Errs.Format())
	}
	_ = p
}

func TestAnalyzeBadReferenceArgumentIsFatal(t *testing.T) {
	a, _ := mustParse(t, `var x: integer;
procedure p(var v: integer); begin v := v + 1 end;
begin p(x+1) end.`)
	if !a.Errs.HasFatal() {
		t.Fatal("expected a fatal BADREF error")
	}
}

func TestAnalyzeValidReferenceArgument(t *testing.T) {
	a, _ := mustParse(t, `var x: integer;
procedure p(var v: integer); begin v := v + 1 end;
begin p(x) end.`)
	if a.Errs.HasFatal() {
		t.Fatalf("unexpected fatal errors: %s", a.Errs.Format())
	}
}

func TestAnalyzeDuplicateDeclarationIsRecoverableNotFatal(t *testing.T) {
	a, _ := mustParse(t, `var x: integer;
    x: integer;
begin x := 1 end.`)
	if a.Errs.HasFatal() {
		t.Fatalf("duplicate declaration should be recoverable, got fatal: %s", a.Errs.Format())
	}
	if !a.Errs.HasErrors() {
		t.Fatal("expected a recoverable duplicate-declaration error")
	}
}

func TestAnalyzeArgumentCountMismatchIsFatal(t *testing.T) {
	a, _ := mustParse(t, `procedure p(a: integer); begin end;
begin p(1, 2) end.`)
	if !a.Errs.HasFatal() {
		t.Fatal("expected a fatal error for wrong argument count")
	}
}

func TestAnalyzeReturnSlotAssignment(t *testing.T) {
	a, _ := mustParse(t, `var a: integer;
function f(x: integer): integer;
begin f := x end;
begin a := f(1) end.`)
	if a.Errs.HasFatal() {
		t.Fatalf("unexpected fatal errors: %s", a.Errs.Format())
	}
}

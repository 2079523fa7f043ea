package errors

import (
	"strings"
	"testing"

	"github.com/hiperion-pscc/pscc/internal/lexer"
)

func TestFormatIncludesCaretLine(t *testing.T) {
	e := NewCompilerError(PhaseSemantic, lexer.Position{Line: 2}, "undeclared identifier 'x'", "begin\nx := 1\nend.", "", true)
	out := e.Format()
	if !strings.Contains(out, "x := 1") {
		t.Errorf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected caret in output, got %q", out)
	}
}

func TestListHasErrorsAndFatal(t *testing.T) {
	var l List
	if l.HasErrors() {
		t.Fatal("empty list should not report errors")
	}
	l.Addf(PhaseParse, lexer.Position{Line: 1}, "", "", false, "warning: %s", "shadowed name")
	if l.HasFatal() {
		t.Fatal("non-fatal error should not set HasFatal")
	}
	l.Addf(PhaseSemantic, lexer.Position{Line: 3}, "", "", true, "type mismatch")
	if !l.HasFatal() {
		t.Fatal("fatal error should set HasFatal")
	}
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
}

func TestFormatMultipleErrors(t *testing.T) {
	var l List
	l.Addf(PhaseLex, lexer.Position{Line: 1}, "", "", false, "first")
	l.Addf(PhaseLex, lexer.Position{Line: 2}, "", "", false, "second")
	out := l.Format()
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected error count header, got %q", out)
	}
}

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

const xAssignSource = `const one = 1;
var x: integer;
begin
  x := one + 2
end.
`

func TestCompileProducesAssembledIR(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "x_assign.pas")
	if err := os.WriteFile(src, []byte(xAssignSource), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	out := filepath.Join(dir, "x_assign.ir")

	compileOutput = out
	compileVerbose = false
	skipOptimize = false
	defer func() { compileOutput = "" }()

	if err := runCompile(compileCmd, []string{src}); err != nil {
		t.Fatalf("runCompile: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read IR output: %v", err)
	}

	snaps.MatchSnapshot(t, "x_assign_ir", string(data))
}

func TestCompileReportsUndeclaredIdentifierExitCode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.pas")
	bad := "begin\n  y := 1\nend.\n"
	if err := os.WriteFile(src, []byte(bad), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	compileOutput = ""
	skipOptimize = false

	err := runCompile(compileCmd, []string{src})
	if err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
	if got := ExitCodeFor(err); got != ExitBadSymbol {
		t.Fatalf("exit code = %d, want %d (ExitBadSymbol)", got, ExitBadSymbol)
	}
}

func TestRunLexPrintsTokens(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "tiny.pas")
	if err := os.WriteFile(src, []byte("begin end."), 0644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	lexShowType = true
	err := runLex(lexCmd, []string{src})
	w.Close()
	os.Stdout = old
	if err != nil {
		t.Fatalf("runLex: %v", err)
	}

	var buf bytes.Buffer
	buf.ReadFrom(r)
	if !strings.Contains(buf.String(), "begin") {
		t.Fatalf("expected token output to mention 'begin', got %q", buf.String())
	}
}

package lexer

import (
	"strings"
	"testing"
)

func collectTokens(t *testing.T, src string) []Token {
	t.Helper()
	l := New(strings.NewReader(src))
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == ENDFILE {
			break
		}
	}
	return toks
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	toks := collectTokens(t, "var x: integer;")
	want := []TokenType{KW_VAR, IDENT, COLON, KW_INTEGER, SEMICOLON, ENDFILE}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}

func TestMultiCharOperators(t *testing.T) {
	cases := map[string]TokenType{
		"<=": LEQ,
		"<>": NEQ,
		"<":  LST,
		">=": GEQ,
		">":  GTT,
		":=": ASGN,
		":":  COLON,
	}
	for src, want := range cases {
		toks := collectTokens(t, src)
		if toks[0].Type != want {
			t.Errorf("%q: got %v, want %v", src, toks[0].Type, want)
		}
	}
}

func TestUnsignedLiteral(t *testing.T) {
	toks := collectTokens(t, "12345 end")
	if toks[0].Type != UNSIGNED || toks[0].Literal != "12345" {
		t.Fatalf("got %+v", toks[0])
	}
	if toks[1].Type != KW_END {
		t.Fatalf("expected keyword end after unsigned literal, got %+v", toks[1])
	}
}

func TestCharLiteral(t *testing.T) {
	toks := collectTokens(t, "'a'")
	if toks[0].Type != CHAR || toks[0].Literal != "a" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestStringLiteral(t *testing.T) {
	toks := collectTokens(t, `"hello world"`)
	if toks[0].Type != STRING || toks[0].Literal != "hello world" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestCommentIsSkipped(t *testing.T) {
	toks := collectTokens(t, "begin { this is a comment } end")
	if toks[0].Type != KW_BEGIN || toks[1].Type != KW_END {
		t.Fatalf("got %+v", toks)
	}
}

func TestUnterminatedCommentYieldsEndfile(t *testing.T) {
	toks := collectTokens(t, "begin { never closed")
	if toks[len(toks)-1].Type != ENDFILE {
		t.Fatalf("expected trailing ENDFILE, got %+v", toks)
	}
}

func TestIllegalCharacter(t *testing.T) {
	l := New(strings.NewReader("@"))
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %+v", tok)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected one error, got %v", l.Errors())
	}
}

func TestLineTracking(t *testing.T) {
	toks := collectTokens(t, "begin\nx\nend")
	lines := map[string]int{"begin": 1, "x": 2, "end": 3}
	for _, tok := range toks {
		if want, ok := lines[tok.Literal]; ok && tok.Pos.Line != want {
			t.Errorf("token %q: got line %d, want %d", tok.Literal, tok.Pos.Line, want)
		}
	}
}

func TestFullProgramTokens(t *testing.T) {
	src := `const one = 1;
var x: integer;
begin
  x := one + 2
end.`
	toks := collectTokens(t, src)
	if toks[len(toks)-1].Type != ENDFILE {
		t.Fatalf("expected trailing ENDFILE")
	}
	// Spot check a handful of tokens in sequence.
	want := []TokenType{KW_CONST, IDENT, EQ, UNSIGNED, SEMICOLON}
	for i, w := range want {
		if toks[i].Type != w {
			t.Errorf("token %d: got %v, want %v", i, toks[i].Type, w)
		}
	}
}

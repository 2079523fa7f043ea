// Package parser implements the recursive-descent parser for the Pascal
// subset (spec §4.2): one token of lookahead, building the typed tree
// defined in internal/ast directly from the token stream.
//
// Key patterns:
//   - curTok/peekTok: the two-token lookahead window the grammar needs.
//   - expect(tt): advances and consumes on match, records a fatal error and
//     leaves the cursor in place otherwise.
//   - Identifiers remember whether they were built from curTok or peekTok,
//     via ast.Identifier.FromPrevToken, to support the assign/call/index
//     disambiguation the grammar calls for after consuming a bare name.
package parser

import (
	"strconv"

	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/errors"
	"github.com/hiperion-pscc/pscc/internal/lexer"
)

// Parser consumes a token stream and produces an *ast.Program.
type Parser struct {
	l   *lexer.Lexer
	src string
	file string

	curTok  lexer.Token
	peekTok lexer.Token

	errs *errors.List
}

// New creates a Parser reading tokens from l. src and file are retained
// only to annotate diagnostics with source context.
func New(l *lexer.Lexer, src, file string) *Parser {
	p := &Parser{l: l, src: src, file: file, errs: &errors.List{}}
	p.advance()
	p.advance()
	return p
}

// Errors returns every diagnostic accumulated while parsing.
func (p *Parser) Errors() *errors.List { return p.errs }

func (p *Parser) advance() {
	p.curTok = p.peekTok
	p.peekTok = p.l.NextToken()
}

func (p *Parser) curIs(tt lexer.TokenType) bool  { return p.curTok.Type == tt }
func (p *Parser) peekIs(tt lexer.TokenType) bool { return p.peekTok.Type == tt }

// expect advances past curTok if it matches tt; otherwise records a fatal
// "unexpected token" error and leaves the cursor where it is, so that a
// caller asking for several tokens in a row reports once per mismatch
// instead of cascading.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.curIs(tt) {
		p.advance()
		return true
	}
	p.fatalf("expected %v, got %v (%q)", tt, p.curTok.Type, p.curTok.Literal)
	return false
}

func (p *Parser) fatalf(format string, args ...any) {
	p.errs.Addf(errors.PhaseParse, lexer.Position{Line: p.curTok.Pos.Line}, p.src, p.file, true, format, args...)
}

func (p *Parser) recoverablef(format string, args ...any) {
	p.errs.Addf(errors.PhaseParse, lexer.Position{Line: p.curTok.Pos.Line}, p.src, p.file, false, format, args...)
}

// parseIdent consumes an IDENT token at curTok and returns its AST node.
func (p *Parser) parseIdent() *ast.Identifier {
	if !p.curIs(lexer.IDENT) {
		p.fatalf("expected identifier, got %v (%q)", p.curTok.Type, p.curTok.Literal)
		return &ast.Identifier{Name: "", SourceLine: p.curTok.Pos.Line}
	}
	id := &ast.Identifier{Name: p.curTok.Literal, SourceLine: p.curTok.Pos.Line}
	p.advance()
	return id
}

func (p *Parser) parseUnsigned() (uint64, string) {
	if !p.curIs(lexer.UNSIGNED) {
		p.fatalf("expected unsigned literal, got %v (%q)", p.curTok.Type, p.curTok.Literal)
		return 0, ""
	}
	lit := p.curTok.Literal
	v, err := strconv.ParseUint(lit, 10, 64)
	if err != nil {
		p.fatalf("malformed unsigned literal %q", lit)
	}
	p.advance()
	return v, lit
}

func (p *Parser) parseBasicType() ast.BasicType {
	switch p.curTok.Type {
	case lexer.KW_INTEGER:
		p.advance()
		return ast.TypeInt
	case lexer.KW_UINTEGER:
		p.advance()
		return ast.TypeUint
	case lexer.KW_CHAR:
		p.advance()
		return ast.TypeChar
	default:
		p.fatalf("expected a type name, got %v (%q)", p.curTok.Type, p.curTok.Literal)
		return ast.TypeVoid
	}
}

// Parse runs the full program = block "." production.
func (p *Parser) Parse() *ast.Program {
	line := p.curTok.Pos.Line
	block := p.parseBlock()
	p.expect(lexer.DOT)
	return ast.NewProgram(block, line)
}

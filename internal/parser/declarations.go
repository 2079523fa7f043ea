package parser

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/lexer"
)

// parseBlock = [constdec] [vardec] [pfdeclist] [compstmt]
func (p *Parser) parseBlock() *ast.Block {
	line := p.curTok.Pos.Line
	var consts *ast.ConstDecl
	if p.curIs(lexer.KW_CONST) {
		consts = p.parseConstDecl()
	}

	var vars *ast.VarDecl
	if p.curIs(lexer.KW_VAR) {
		vars = p.parseVarDecl()
	}

	var pf *ast.PFDecl
	if p.curIs(lexer.KW_PROCEDURE) || p.curIs(lexer.KW_FUNCTION) {
		pf = p.parsePFDeclList()
	}

	var body *ast.CompoundStmt
	if p.curIs(lexer.KW_BEGIN) {
		body = p.parseCompoundStmt()
	}

	return ast.NewBlock(consts, vars, pf, body, line)
}

// constdec = "const" constdef {"," constdef} ";"
// constdef = ident "=" ("+"? unsigned | "-" unsigned | char)
func (p *Parser) parseConstDecl() *ast.ConstDecl {
	p.advance() // consume "const"
	head := p.parseConstDef()
	tail := head
	for p.curIs(lexer.COMMA) {
		p.advance()
		next := p.parseConstDef()
		tail.Next = next
		tail = next
	}
	p.expect(lexer.SEMICOLON)
	return head
}

func (p *Parser) parseConstDef() *ast.ConstDecl {
	line := p.curTok.Pos.Line
	name := p.parseIdent()
	p.expect(lexer.EQ)

	switch p.curTok.Type {
	case lexer.PLUS:
		p.advance()
		v, raw := p.parseUnsigned()
		name.Value = int64(v)
		name.Kind = ast.IdentIntConst
		_ = raw
	case lexer.MINUS:
		p.advance()
		v, _ := p.parseUnsigned()
		name.Value = -int64(v)
		name.Kind = ast.IdentIntConst
	case lexer.UNSIGNED:
		v, _ := p.parseUnsigned()
		name.Value = int64(v)
		name.Kind = ast.IdentUintConst
	case lexer.CHAR:
		name.Value = int64(p.curTok.Literal[0])
		name.Kind = ast.IdentCharConst
		p.advance()
	default:
		p.fatalf("expected a constant value, got %v (%q)", p.curTok.Type, p.curTok.Literal)
	}
	return ast.NewConstDecl(name, line)
}

// vardec = "var" vardef ";" {vardef ";"}
// vardef = ident {"," ident} ":" (basictype | "array" "[" unsigned "]" "of" basictype)
func (p *Parser) parseVarDecl() *ast.VarDecl {
	p.advance() // consume "var"
	head := p.parseVarDef()
	p.expect(lexer.SEMICOLON)
	tail := head
	for p.curIs(lexer.IDENT) {
		next := p.parseVarDef()
		p.expect(lexer.SEMICOLON)
		tail.Next = next
		tail = next
	}
	return head
}

func (p *Parser) parseVarDef() *ast.VarDecl {
	line := p.curTok.Pos.Line
	names := []*ast.Identifier{p.parseIdent()}
	for p.curIs(lexer.COMMA) {
		p.advance()
		names = append(names, p.parseIdent())
	}
	p.expect(lexer.COLON)

	if p.curIs(lexer.KW_ARRAY) {
		p.advance()
		p.expect(lexer.LBRACK)
		length, _ := p.parseUnsigned()
		p.expect(lexer.RBRACK)
		p.expect(lexer.KW_OF)
		typ := p.parseBasicType()
		return ast.NewVarDecl(names, typ, true, int(length), line)
	}

	typ := p.parseBasicType()
	return ast.NewVarDecl(names, typ, false, 0, line)
}

// pfdeclist = {procdec | fundec}
func (p *Parser) parsePFDeclList() *ast.PFDecl {
	var head, tail *ast.PFDecl
	for p.curIs(lexer.KW_PROCEDURE) || p.curIs(lexer.KW_FUNCTION) {
		var node *ast.PFDecl
		if p.curIs(lexer.KW_PROCEDURE) {
			node = &ast.PFDecl{Proc: p.parseProcDef()}
		} else {
			node = &ast.PFDecl{Func: p.parseFuncDef()}
		}
		p.expect(lexer.SEMICOLON)
		if head == nil {
			head = node
			tail = node
		} else {
			tail.Next = node
			tail = node
		}
	}
	return head
}

// procdef = "procedure" ident "(" [paralist] ")" ";" block
func (p *Parser) parseProcDef() *ast.ProcDecl {
	line := p.curTok.Pos.Line
	p.advance() // "procedure"
	name := p.parseIdent()
	p.expect(lexer.LPAREN)
	var params *ast.Param
	if !p.curIs(lexer.RPAREN) {
		params = p.parseParamList()
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.SEMICOLON)
	body := p.parseBlock()
	return ast.NewProcDecl(name, params, body, line)
}

// fundef = "function" ident "(" [paralist] ")" ":" basictype ";" block
func (p *Parser) parseFuncDef() *ast.FuncDecl {
	line := p.curTok.Pos.Line
	p.advance() // "function"
	name := p.parseIdent()
	p.expect(lexer.LPAREN)
	var params *ast.Param
	if !p.curIs(lexer.RPAREN) {
		params = p.parseParamList()
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.COLON)
	ret := p.parseBasicType()
	p.expect(lexer.SEMICOLON)
	body := p.parseBlock()
	return ast.NewFuncDecl(name, params, ret, body, line)
}

// paralist = paradef {";" paradef}
func (p *Parser) parseParamList() *ast.Param {
	head := p.parseParamDef()
	tail := head
	for p.curIs(lexer.SEMICOLON) {
		p.advance()
		next := p.parseParamDef()
		tail.Next = next
		tail = next
	}
	return head
}

// paradef = ["var"] ident {"," ident} ":" basictype
func (p *Parser) parseParamDef() *ast.Param {
	line := p.curTok.Pos.Line
	byRef := false
	if p.curIs(lexer.KW_VAR) {
		byRef = true
		p.advance()
	}
	names := []*ast.Identifier{p.parseIdent()}
	for p.curIs(lexer.COMMA) {
		p.advance()
		names = append(names, p.parseIdent())
	}
	p.expect(lexer.COLON)
	typ := p.parseBasicType()
	return ast.NewParam(names, byRef, typ, line)
}

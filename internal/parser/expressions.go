package parser

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/lexer"
)

// parseExpr = ["+"|"-"] term {("+"|"-") term}
func (p *Parser) parseExpr() ast.Expr {
	line := p.curTok.Pos.Line
	var left ast.Expr

	switch p.curTok.Type {
	case lexer.PLUS:
		p.advance()
		left = ast.NewUnaryExpr(ast.OpAdd, p.parseTerm(), line)
	case lexer.MINUS:
		p.advance()
		left = ast.NewUnaryExpr(ast.OpSub, p.parseTerm(), line)
	default:
		left = p.parseTerm()
	}

	for p.curIs(lexer.PLUS) || p.curIs(lexer.MINUS) {
		op := ast.OpAdd
		if p.curIs(lexer.MINUS) {
			op = ast.OpSub
		}
		opLine := p.curTok.Pos.Line
		p.advance()
		right := p.parseTerm()
		left = ast.NewBinaryExpr(op, left, right, opLine)
	}
	return left
}

// parseTerm = factor {("*"|"/") factor}
func (p *Parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for p.curIs(lexer.STAR) || p.curIs(lexer.SLASH) {
		op := ast.OpMul
		if p.curIs(lexer.SLASH) {
			op = ast.OpDiv
		}
		line := p.curTok.Pos.Line
		p.advance()
		right := p.parseFactor()
		left = ast.NewBinaryExpr(op, left, right, line)
	}
	return left
}

// parseFactor = ident | ident "[" expr "]" | ident "(" [arglist] ")"
//             | unsigned | char | "(" expr ")"
func (p *Parser) parseFactor() ast.Expr {
	line := p.curTok.Pos.Line

	switch p.curTok.Type {
	case lexer.UNSIGNED:
		v, raw := p.parseUnsigned()
		return ast.NewUnsignedLit(v, raw, line)

	case lexer.CHAR:
		v := p.curTok.Literal[0]
		p.advance()
		return ast.NewCharLit(v, line)

	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpr()
		p.expect(lexer.RPAREN)
		return ast.NewParenExpr(inner, line)

	case lexer.IDENT:
		name := p.parseIdent()
		switch p.curTok.Type {
		case lexer.LBRACK:
			p.advance()
			index := p.parseExpr()
			p.expect(lexer.RBRACK)
			return ast.NewArrayIndexExpr(name, index, line)
		case lexer.LPAREN:
			p.advance()
			var args *ast.ArgList
			if !p.curIs(lexer.RPAREN) {
				args = p.parseArgList()
			}
			p.expect(lexer.RPAREN)
			return ast.NewCallExpr(name, args, line)
		default:
			return ast.NewIdentExpr(name)
		}

	default:
		p.fatalf("expected a factor, got %v (%q)", p.curTok.Type, p.curTok.Literal)
		p.advance()
		return ast.NewUnsignedLit(0, "0", line)
	}
}

// cond = expr ("="|"<"|"<="|">"|">="|"<>") expr
func (p *Parser) parseCondition() *ast.Condition {
	line := p.curTok.Pos.Line
	left := p.parseExpr()

	var op ast.RelOp
	switch p.curTok.Type {
	case lexer.EQ:
		op = ast.OpEQ
	case lexer.LST:
		op = ast.OpLT
	case lexer.LEQ:
		op = ast.OpLE
	case lexer.GTT:
		op = ast.OpGT
	case lexer.GEQ:
		op = ast.OpGE
	case lexer.NEQ:
		op = ast.OpNE
	default:
		p.fatalf("expected a relational operator, got %v (%q)", p.curTok.Type, p.curTok.Literal)
		return ast.NewCondition(left, ast.OpEQ, left, line)
	}
	p.advance()
	right := p.parseExpr()
	return ast.NewCondition(left, op, right, line)
}

// arglist = expr {"," expr}
func (p *Parser) parseArgList() *ast.ArgList {
	head := ast.NewArgList(p.parseExpr(), lineOf(p))
	tail := head
	for p.curIs(lexer.COMMA) {
		p.advance()
		next := ast.NewArgList(p.parseExpr(), lineOf(p))
		tail.Next = next
		tail = next
	}
	return head
}

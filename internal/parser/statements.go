package parser

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/lexer"
)

// parseStmt = assignstmt | ifstmt | repeatstmt | forstmt | pcallstmt
//           | compstmt | readstmt | writestmt | <empty>
func (p *Parser) parseStmt() ast.Stmt {
	switch p.curTok.Type {
	case lexer.KW_IF:
		return p.parseIfStmt()
	case lexer.KW_REPEAT:
		return p.parseRepeatStmt()
	case lexer.KW_FOR:
		return p.parseForStmt()
	case lexer.KW_BEGIN:
		return p.parseCompoundStmt()
	case lexer.KW_READ:
		return p.parseReadStmt()
	case lexer.KW_WRITE:
		return p.parseWriteStmt()
	case lexer.IDENT:
		return p.parseIdentLedStmt()
	default:
		return ast.NewNullStmt(p.curTok.Pos.Line)
	}
}

// parseIdentLedStmt disambiguates assignstmt, array assignstmt, and
// pcallstmt by a single token of lookahead after the identifier.
func (p *Parser) parseIdentLedStmt() ast.Stmt {
	line := p.curTok.Pos.Line
	name := p.parseIdent()
	name.FromPrevToken = true

	switch p.curTok.Type {
	case lexer.LBRACK:
		p.advance()
		index := p.parseExpr()
		p.expect(lexer.RBRACK)
		if !p.expectAssignOp() {
			return ast.NewNullStmt(line)
		}
		value := p.parseExpr()
		return ast.NewArrayAssignStmt(name, index, value, line)

	case lexer.ASGN:
		p.advance()
		value := p.parseExpr()
		return ast.NewAssignStmt(name, value, line)

	case lexer.EQ:
		// "=" in an assignment position is a recoverable mistake for ":=".
		p.recoverablef("expected ':=', got '=' in assignment")
		p.advance()
		value := p.parseExpr()
		return ast.NewAssignStmt(name, value, line)

	case lexer.LPAREN:
		p.advance()
		var args *ast.ArgList
		if !p.curIs(lexer.RPAREN) {
			args = p.parseArgList()
		}
		p.expect(lexer.RPAREN)
		return ast.NewPCallStmt(name, args, line)

	default:
		// A bare identifier with no following call parens is still a
		// zero-argument procedure call.
		return ast.NewPCallStmt(name, nil, line)
	}
}

// expectAssignOp accepts ":=" or, recoverably, "=" where ":=" was meant.
func (p *Parser) expectAssignOp() bool {
	if p.curIs(lexer.ASGN) {
		p.advance()
		return true
	}
	if p.curIs(lexer.EQ) {
		p.recoverablef("expected ':=', got '=' in assignment")
		p.advance()
		return true
	}
	p.fatalf("expected ':=', got %v (%q)", p.curTok.Type, p.curTok.Literal)
	return false
}

// compstmt = "begin" stmt {";" stmt} "end"
func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	line := p.curTok.Pos.Line
	p.advance() // "begin"

	head := ast.NewStmtList(p.parseStmt(), lineOf(p))
	tail := head
	for p.curIs(lexer.SEMICOLON) {
		p.advance()
		next := ast.NewStmtList(p.parseStmt(), lineOf(p))
		tail.Next = next
		tail = next
	}
	p.expect(lexer.KW_END)
	return ast.NewCompoundStmt(head, line)
}

func lineOf(p *Parser) int { return p.curTok.Pos.Line }

// ifstmt = "if" cond "then" stmt ["else" stmt]
func (p *Parser) parseIfStmt() *ast.IfStmt {
	line := p.curTok.Pos.Line
	p.advance() // "if"
	cond := p.parseCondition()
	p.expect(lexer.KW_THEN)
	then := p.parseStmt()
	var els ast.Stmt
	if p.curIs(lexer.KW_ELSE) {
		p.advance()
		els = p.parseStmt()
	}
	return ast.NewIfStmt(cond, then, els, line)
}

// repeatstmt = "repeat" stmt "until" cond
//
// The grammar's "stmt" here is actually the body of the loop; in practice
// bodies are compound, but the production only requires a single stmt, so
// a bare statement list (without begin/end) is also accepted.
func (p *Parser) parseRepeatStmt() *ast.RepeatStmt {
	line := p.curTok.Pos.Line
	p.advance() // "repeat"

	head := ast.NewStmtList(p.parseStmt(), lineOf(p))
	tail := head
	for p.curIs(lexer.SEMICOLON) {
		p.advance()
		next := ast.NewStmtList(p.parseStmt(), lineOf(p))
		tail.Next = next
		tail = next
	}
	p.expect(lexer.KW_UNTIL)
	cond := p.parseCondition()
	return ast.NewRepeatStmt(head, cond, line)
}

// forstmt = "for" ident ":=" expr ("to"|"downto") expr "do" stmt
func (p *Parser) parseForStmt() *ast.ForStmt {
	line := p.curTok.Pos.Line
	p.advance() // "for"
	loop := p.parseIdent()
	p.expect(lexer.ASGN)
	start := p.parseExpr()

	downto := false
	if p.curIs(lexer.KW_DOWNTO) {
		downto = true
		p.advance()
	} else {
		p.expect(lexer.KW_TO)
	}
	stop := p.parseExpr()
	p.expect(lexer.KW_DO)
	body := p.parseStmt()
	return ast.NewForStmt(loop, start, stop, downto, body, line)
}

// readstmt = "read" "(" ident {"," ident} ")"
func (p *Parser) parseReadStmt() *ast.ReadStmt {
	line := p.curTok.Pos.Line
	p.advance() // "read"
	p.expect(lexer.LPAREN)

	head := p.parseReadArg()
	tail := head
	for p.curIs(lexer.COMMA) {
		p.advance()
		next := p.parseReadArg()
		tail.Next = next
		tail = next
	}
	p.expect(lexer.RPAREN)
	return ast.NewReadStmt(head, line)
}

func (p *Parser) parseReadArg() *ast.ReadArg {
	line := p.curTok.Pos.Line
	name := p.parseIdent()
	if p.curIs(lexer.LBRACK) {
		p.advance()
		index := p.parseExpr()
		p.expect(lexer.RBRACK)
		return ast.NewReadArg(name, index, line)
	}
	return ast.NewReadArg(name, nil, line)
}

// writestmt = "write" "(" (string ["," expr] | expr) ")"
func (p *Parser) parseWriteStmt() *ast.WriteStmt {
	line := p.curTok.Pos.Line
	newline := p.curTok.Literal == "writeln"
	p.advance() // "write"
	p.expect(lexer.LPAREN)

	var head *ast.WriteArg
	if p.curIs(lexer.STRING) {
		lit := p.curTok.Literal
		argLine := p.curTok.Pos.Line
		p.advance()
		head = ast.NewWriteStringArg(lit, argLine)
		if p.curIs(lexer.COMMA) {
			p.advance()
			head.Next = ast.NewWriteArg(p.parseExpr(), lineOf(p))
		}
	} else {
		head = ast.NewWriteArg(p.parseExpr(), lineOf(p))
	}
	p.expect(lexer.RPAREN)
	return ast.NewWriteStmt(head, newline, line)
}

package ast

// Stmt is implemented by every statement node (spec grammar: stmt).
type Stmt interface {
	Node
	stmtNode()
}

// StmtList is one link in a semicolon-separated statement sequence.
type StmtList struct {
	Stmt Stmt
	Next *StmtList
	line int
}

// NewStmtList creates a single-element statement-list link.
func NewStmtList(stmt Stmt, line int) *StmtList { return &StmtList{Stmt: stmt, line: line} }

// CompoundStmt is a begin...end block: a possibly-empty statement chain.
type CompoundStmt struct {
	Stmts *StmtList
	line  int
}

func NewCompoundStmt(stmts *StmtList, line int) *CompoundStmt {
	return &CompoundStmt{Stmts: stmts, line: line}
}
func (c *CompoundStmt) TokenLiteral() string { return "begin" }
func (c *CompoundStmt) String() string       { return "begin ... end" }
func (c *CompoundStmt) Line() int            { return c.line }
func (c *CompoundStmt) stmtNode()            {}

// AssignStmt is "ident := expr", where ident names a scalar variable.
type AssignStmt struct {
	Target *Identifier
	Value  Expr
	line   int
}

func NewAssignStmt(target *Identifier, value Expr, line int) *AssignStmt {
	return &AssignStmt{Target: target, Value: value, line: line}
}
func (a *AssignStmt) TokenLiteral() string { return a.Target.Name }
func (a *AssignStmt) String() string       { return a.Target.Name + " := " + a.Value.String() }
func (a *AssignStmt) Line() int            { return a.line }
func (a *AssignStmt) stmtNode()            {}

// ArrayAssignStmt is "ident[index] := expr".
type ArrayAssignStmt struct {
	Target *Identifier
	Index  Expr
	Value  Expr
	line   int
}

func NewArrayAssignStmt(target *Identifier, index, value Expr, line int) *ArrayAssignStmt {
	return &ArrayAssignStmt{Target: target, Index: index, Value: value, line: line}
}
func (a *ArrayAssignStmt) TokenLiteral() string { return a.Target.Name }
func (a *ArrayAssignStmt) String() string {
	return a.Target.Name + "[" + a.Index.String() + "] := " + a.Value.String()
}
func (a *ArrayAssignStmt) Line() int { return a.line }
func (a *ArrayAssignStmt) stmtNode() {}

// ArgList is one link in a procedure/function call's actual-argument chain.
type ArgList struct {
	Arg  Expr
	Next *ArgList
	line int
}

// NewArgList creates a single-element argument-list link.
func NewArgList(arg Expr, line int) *ArgList { return &ArgList{Arg: arg, line: line} }
func (a *ArgList) Line() int                 { return a.line }

// PCallStmt is a procedure call used as a statement: "ident(args)" or "ident".
type PCallStmt struct {
	Callee *Identifier
	Args   *ArgList
	line   int
}

func NewPCallStmt(callee *Identifier, args *ArgList, line int) *PCallStmt {
	return &PCallStmt{Callee: callee, Args: args, line: line}
}
func (p *PCallStmt) TokenLiteral() string { return p.Callee.Name }
func (p *PCallStmt) String() string       { return p.Callee.Name + "(...)" }
func (p *PCallStmt) Line() int            { return p.line }
func (p *PCallStmt) stmtNode()            {}

// ReadArg is one link in a read statement's target chain: a scalar variable
// or an array element.
type ReadArg struct {
	Target *Identifier
	Index  Expr // non-nil for an array element target
	Next   *ReadArg
	line   int
}

// NewReadArg creates a single-element read-argument link.
func NewReadArg(target *Identifier, index Expr, line int) *ReadArg {
	return &ReadArg{Target: target, Index: index, line: line}
}
func (r *ReadArg) Line() int { return r.line }

// ReadStmt is "read(target, ...)".
type ReadStmt struct {
	Args *ReadArg
	line int
}

func NewReadStmt(args *ReadArg, line int) *ReadStmt { return &ReadStmt{Args: args, line: line} }
func (r *ReadStmt) TokenLiteral() string            { return "read" }
func (r *ReadStmt) String() string                  { return "read(...)" }
func (r *ReadStmt) Line() int                        { return r.line }
func (r *ReadStmt) stmtNode()                        {}

// WriteArg is one link in a write statement's argument chain: either a
// quoted string literal or an expression.
type WriteArg struct {
	StringLit string
	IsString  bool
	Value     Expr
	Next      *WriteArg
	line      int
}

// NewWriteArg creates a single-element write-argument link for an expression.
func NewWriteArg(value Expr, line int) *WriteArg { return &WriteArg{Value: value, line: line} }

// NewWriteStringArg creates a single-element write-argument link for a string literal.
func NewWriteStringArg(s string, line int) *WriteArg {
	return &WriteArg{StringLit: s, IsString: true, line: line}
}
func (w *WriteArg) Line() int { return w.line }

// WriteStmt is "write(string)", "write(string, expr)" or "write(expr)".
type WriteStmt struct {
	Args    *WriteArg
	Newline bool // set only when the statement's keyword literal is "writeln"; the lexer has no such keyword, so the parser leaves it false
	line    int
}

func NewWriteStmt(args *WriteArg, newline bool, line int) *WriteStmt {
	return &WriteStmt{Args: args, Newline: newline, line: line}
}
func (w *WriteStmt) TokenLiteral() string {
	if w.Newline {
		return "writeln"
	}
	return "write"
}
func (w *WriteStmt) String() string { return w.TokenLiteral() + "(...)" }
func (w *WriteStmt) Line() int      { return w.line }
func (w *WriteStmt) stmtNode()      {}

// NullStmt is the empty statement produced by an elided alternative in the
// stmt grammar (e.g. a bare semicolon, or an empty statement before "end").
type NullStmt struct{ line int }

func NewNullStmt(line int) *NullStmt      { return &NullStmt{line: line} }
func (n *NullStmt) TokenLiteral() string { return "" }
func (n *NullStmt) String() string       { return "" }
func (n *NullStmt) Line() int            { return n.line }
func (n *NullStmt) stmtNode()            {}

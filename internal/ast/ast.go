// Package ast defines the typed tree nodes for every production of the
// Pascal-subset grammar (spec §4.2). Chain-type productions (expressions,
// parameter lists, declaration lists, compound statements) are modeled as
// ordered linked sequences with a head, traversed in source order.
package ast

import (
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	// TokenLiteral returns the literal text of the token the node starts with.
	TokenLiteral() string
	// String renders the node for debugging and tree dumps.
	String() string
	// Line returns the source line the node was parsed from.
	Line() int
}

// IdentKind is the closed set of roles an identifier node can play, set by
// the parser at construction time and refined by the semantic analyzer.
type IdentKind int

const (
	IdentInitial IdentKind = iota // not yet classified
	IdentIntVar
	IdentUintVar
	IdentCharVar
	IdentIntConst
	IdentUintConst
	IdentCharConst
	IdentIntArrVar
	IdentUintArrVar
	IdentCharArrVar
	IdentIntByVal
	IdentUintByVal
	IdentCharByVal
	IdentIntByRef
	IdentUintByRef
	IdentCharByRef
	IdentIntFunc
	IdentUintFunc
	IdentCharFunc
	IdentProc
	IdentMain
)

// Identifier is the AST's identifier node (spec §3). It carries enough
// information for the semantic analyzer to classify and resolve it without
// consulting the parser again, plus a lazily-filled back reference to the
// resolved symbol table entry.
type Identifier struct {
	Name       string
	Kind       IdentKind
	Value      int64 // literal value, for constant identifiers
	ArrayLen   int   // declared length, for array identifiers
	SourceLine int
	// FromPrevToken is set by the parser on the identifier that opens a
	// statement (an assignment, array assignment or procedure call). No later
	// phase reads it.
	FromPrevToken bool
	Symbol        *symtab.Symbol
}

func (i *Identifier) TokenLiteral() string { return i.Name }
func (i *Identifier) String() string       { return i.Name }
func (i *Identifier) Line() int            { return i.SourceLine }

// Program is the root node: a single block terminated by '.'.
type Program struct {
	Block *Block
	line  int
}

func NewProgram(block *Block, line int) *Program { return &Program{Block: block, line: line} }
func (p *Program) TokenLiteral() string          { return "program" }
func (p *Program) String() string {
	if p.Block == nil {
		return "."
	}
	return p.Block.String() + "."
}
func (p *Program) Line() int { return p.line }

// Block groups the four optional sections of a program or subprogram body.
type Block struct {
	Consts *ConstDecl
	Vars   *VarDecl
	PFDecl *PFDecl
	Body   *CompoundStmt
	line   int
}

func (b *Block) TokenLiteral() string { return "block" }
func (b *Block) String() string {
	s := ""
	if b.Body != nil {
		s = b.Body.String()
	}
	return s
}
func (b *Block) Line() int { return b.line }

func NewBlock(consts *ConstDecl, vars *VarDecl, pf *PFDecl, body *CompoundStmt, line int) *Block {
	return &Block{Consts: consts, Vars: vars, PFDecl: pf, Body: body, line: line}
}

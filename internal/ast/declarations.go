package ast

// BasicType is the closed set of scalar types nameable in a declaration.
type BasicType int

const (
	TypeVoid BasicType = iota
	TypeInt
	TypeUint
	TypeChar
)

func (t BasicType) String() string {
	switch t {
	case TypeInt:
		return "integer"
	case TypeUint:
		return "uinteger"
	case TypeChar:
		return "char"
	default:
		return "void"
	}
}

// ConstDecl is one link in the const-declaration chain: "ident = value".
type ConstDecl struct {
	Name *Identifier
	Next *ConstDecl
	line int
}

func NewConstDecl(name *Identifier, line int) *ConstDecl {
	return &ConstDecl{Name: name, line: line}
}
func (c *ConstDecl) TokenLiteral() string { return "const" }
func (c *ConstDecl) String() string       { return c.Name.String() }
func (c *ConstDecl) Line() int            { return c.line }

// VarDecl is one link in the var-declaration chain: a group of names sharing
// a type, optionally an array of a given length.
type VarDecl struct {
	Names    []*Identifier
	Type     BasicType
	IsArray  bool
	ArrayLen int
	Next     *VarDecl
	line     int
}

func NewVarDecl(names []*Identifier, typ BasicType, isArray bool, arrayLen int, line int) *VarDecl {
	return &VarDecl{Names: names, Type: typ, IsArray: isArray, ArrayLen: arrayLen, line: line}
}
func (v *VarDecl) TokenLiteral() string { return "var" }
func (v *VarDecl) String() string {
	s := ""
	for i, n := range v.Names {
		if i > 0 {
			s += ", "
		}
		s += n.Name
	}
	return s + ": " + v.Type.String()
}
func (v *VarDecl) Line() int { return v.line }

// Param is one link in a formal parameter list, grouping names that share a
// by-reference modifier and a type (spec grammar: paradef).
type Param struct {
	Names []*Identifier
	ByRef bool
	Type  BasicType
	Next  *Param
	line  int
}

func NewParam(names []*Identifier, byRef bool, typ BasicType, line int) *Param {
	return &Param{Names: names, ByRef: byRef, Type: typ, line: line}
}
func (p *Param) TokenLiteral() string { return "param" }
func (p *Param) String() string {
	s := ""
	if p.ByRef {
		s = "var "
	}
	for i, n := range p.Names {
		if i > 0 {
			s += ", "
		}
		s += n.Name
	}
	return s + ": " + p.Type.String()
}
func (p *Param) Line() int { return p.line }

// ProcDecl is a procedure declaration: header plus its own block.
type ProcDecl struct {
	Name   *Identifier
	Params *Param
	Body   *Block
	line   int
}

func (d *ProcDecl) TokenLiteral() string { return "procedure" }
func (d *ProcDecl) String() string       { return "procedure " + d.Name.Name }
func (d *ProcDecl) Line() int            { return d.line }

func NewProcDecl(name *Identifier, params *Param, body *Block, line int) *ProcDecl {
	return &ProcDecl{Name: name, Params: params, Body: body, line: line}
}

// FuncDecl is a function declaration: header (with return type) plus its own block.
type FuncDecl struct {
	Name       *Identifier
	Params     *Param
	ReturnType BasicType
	Body       *Block
	line       int
}

func (d *FuncDecl) TokenLiteral() string { return "function" }
func (d *FuncDecl) String() string       { return "function " + d.Name.Name }
func (d *FuncDecl) Line() int            { return d.line }

func NewFuncDecl(name *Identifier, params *Param, ret BasicType, body *Block, line int) *FuncDecl {
	return &FuncDecl{Name: name, Params: params, ReturnType: ret, Body: body, line: line}
}

// PFDecl is one link in the chain of procedure/function declarations that
// follow the var section of a block. Exactly one of Proc/Func is set.
type PFDecl struct {
	Proc *ProcDecl
	Func *FuncDecl
	Next *PFDecl
}

func (p *PFDecl) TokenLiteral() string {
	if p.Proc != nil {
		return "procedure"
	}
	return "function"
}
func (p *PFDecl) String() string {
	if p.Proc != nil {
		return p.Proc.String()
	}
	return p.Func.String()
}
func (p *PFDecl) Line() int {
	if p.Proc != nil {
		return p.Proc.Line()
	}
	return p.Func.Line()
}

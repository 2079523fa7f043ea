package semantic

import (
	"github.com/hiperion-pscc/pscc/internal/ast"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// Type is the value-type domain used during inference: the three scalar
// types, plus "string" (write-only) and "literal" (an unsigned-integer
// token whose sign has not yet been resolved to int or uint).
type Type int

const (
	TypeVoid Type = iota
	TypeInt
	TypeUint
	TypeChar
	TypeString
	TypeLiteral
)

func (t Type) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeChar:
		return "char"
	case TypeString:
		return "string"
	case TypeLiteral:
		return "literal"
	default:
		return "void"
	}
}

// suffix is the two-character name-mangling code for a formal parameter's
// declared type (spec §4.4.2): _V|_I|_U|_C|_S|_L.
func (t Type) suffix() string {
	switch t {
	case TypeInt:
		return "_I"
	case TypeUint:
		return "_U"
	case TypeChar:
		return "_C"
	case TypeString:
		return "_S"
	case TypeLiteral:
		return "_L"
	default:
		return "_V"
	}
}

func fromBasicType(bt ast.BasicType) Type {
	switch bt {
	case ast.TypeInt:
		return TypeInt
	case ast.TypeUint:
		return TypeUint
	case ast.TypeChar:
		return TypeChar
	default:
		return TypeVoid
	}
}

func toSymTabType(t Type) symtab.Type {
	switch t {
	case TypeInt, TypeLiteral:
		return symtab.TypeInt
	case TypeUint:
		return symtab.TypeUint
	case TypeChar:
		return symtab.TypeChar
	default:
		return symtab.TypeVoid
	}
}

func fromSymTabType(t symtab.Type) Type {
	switch t {
	case symtab.TypeInt:
		return TypeInt
	case symtab.TypeUint:
		return TypeUint
	case symtab.TypeChar:
		return TypeChar
	default:
		return TypeVoid
	}
}

// joinTypes is the two-operand inference table (spec §4.4): matching
// scalar types join to themselves; literal joins with literal to literal;
// any mismatch propagates the left-hand type (coercions are out of scope).
func joinTypes(left, right Type) Type {
	if left == right {
		return left
	}
	return left
}

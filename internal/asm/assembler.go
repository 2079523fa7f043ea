// Package asm renders a generated program's flat IR into the line-oriented
// textual format fixed by spec §4.9/§6: one FN_START/body/FN_END region per
// function, each followed by its argument/local/temporary/literal/string
// tables, in declaration order.
package asm

import (
	"fmt"
	"io"
	"strconv"

	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// Assembler writes the textual IR format for a set of functions sharing one
// flat instruction list.
type Assembler struct {
	w io.Writer
}

// New returns an Assembler writing to w.
func New(w io.Writer) *Assembler { return &Assembler{w: w} }

// Emit writes every function in funcs, in the order given (the generator's
// nested-first, program-entry-last order).
func (a *Assembler) Emit(funcs []*ir.Function) error {
	for _, fn := range funcs {
		if err := a.emitFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) emitFunction(fn *ir.Function) error {
	for in := fn.Start; in != nil; in = in.Next() {
		if _, err := fmt.Fprintln(a.w, formatInstruction(in)); err != nil {
			return err
		}
		if in == fn.End {
			break
		}
	}
	return a.emitTables(fn.Scope)
}

func (a *Assembler) emitTables(s *symtab.Scope) error {
	for _, sym := range s.Symbols() {
		var line string
		switch sym.Category {
		case symtab.CategoryByValue, symtab.CategoryByReference:
			line = fmt.Sprintf("fn_arg %s %s %d", sym.Label, sym.Name, sym.Offset)
		case symtab.CategoryVariable, symtab.CategoryArray:
			line = fmt.Sprintf("fn_locale %s %s %d", sym.Label, sym.Name, sym.Offset)
		case symtab.CategoryTemp:
			line = fmt.Sprintf("fn_temp %s %d", sym.Label, sym.Offset)
		case symtab.CategoryNumber:
			line = fmt.Sprintf("fn_literal %s %d", sym.Label, sym.InitVal)
		case symtab.CategoryString:
			line = fmt.Sprintf("fn_string %s %q", sym.Label, sym.Name)
		default:
			continue
		}
		if _, err := fmt.Fprintln(a.w, line); err != nil {
			return err
		}
	}
	return nil
}

// formatInstruction renders one line of the authoritative textual format.
// Operands are substituted by label, except literal-valued operands
// (category Number), which are inlined as their decimal value.
func formatInstruction(in *ir.Instruction) string {
	switch in.Op {
	case ir.OpFnStart:
		s := in.FnScope
		return fmt.Sprintf("FN_START %s %04d %04d %04d %s", s.Name, s.ArgOff, s.VarOff, s.TmpOff, s.Owner.Label)
	case ir.OpFnEnd:
		return fmt.Sprintf("FN_END %s", in.FnScope.Name)
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpLoadArray, ir.OpStoreArray:
		return fmt.Sprintf("%s %s %s %s", in.Op, operand(in.Dest), operand(in.Src1), operand(in.Src2))
	case ir.OpInc, ir.OpDec:
		return fmt.Sprintf("%s %s", in.Op, operand(in.Dest))
	case ir.OpNeg, ir.OpStoreVar:
		return fmt.Sprintf("%s %s %s", in.Op, operand(in.Dest), operand(in.Src1))
	case ir.OpBranchEqu, ir.OpBranchNeq, ir.OpBranchGtt, ir.OpBranchGeq, ir.OpBranchLst, ir.OpBranchLeq:
		return fmt.Sprintf("%s %s %s %s", in.Op, operand(in.Dest), operand(in.Src1), operand(in.Src2))
	case ir.OpJump, ir.OpLabel:
		return fmt.Sprintf("%s %s", in.Op, operand(in.Dest))
	case ir.OpPushVal, ir.OpReadInt, ir.OpReadUint, ir.OpReadChar,
		ir.OpWriteString, ir.OpWriteInt, ir.OpWriteUint, ir.OpWriteChar:
		return fmt.Sprintf("%s %s", in.Op, operand(in.Dest))
	case ir.OpPushAddr:
		if in.Src1 != nil {
			return fmt.Sprintf("%s %s %s", in.Op, operand(in.Dest), operand(in.Src1))
		}
		return fmt.Sprintf("%s %s", in.Op, operand(in.Dest))
	case ir.OpPop:
		return "POP"
	case ir.OpCall:
		if in.Dest != nil {
			return fmt.Sprintf("%s %s %s", in.Op, operand(in.Dest), operand(in.Src1))
		}
		return fmt.Sprintf("%s %s", in.Op, operand(in.Src1))
	default:
		return in.Op.String()
	}
}

// operand renders one operand: its label, unless it's a bare literal
// (category Number), in which case its decimal value is inlined.
func operand(s *symtab.Symbol) string {
	if s == nil {
		return "-"
	}
	if s.Category == symtab.CategoryNumber {
		return strconv.FormatInt(s.InitVal, 10)
	}
	return s.Label
}

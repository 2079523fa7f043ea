package ir

import (
	"fmt"

	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// Instruction is one node of the flat, doubly-linked IR list (spec §3/§4.5).
// Operand roles are fixed per opcode; see opcode.go for the mapping onto
// Dest/Src1/Src2. Dest also carries the LABEL operand for branches, jumps,
// and label pseudo-instructions, and the Fn operand for FN_START/FN_END;
// CALL carries its callee in Src1 and its result temporary in Dest.
type Instruction struct {
	ID   int
	Op   OpCode
	Dest *symtab.Symbol
	Src1 *symtab.Symbol
	Src2 *symtab.Symbol

	// FnScope is set only on FN_START/FN_END: the callable's own scope,
	// carrying its final argument/variable/temporary offsets for the
	// assembler's per-function header line and metadata tables.
	FnScope *symtab.Scope

	prev, next *Instruction
}

func (i *Instruction) Next() *Instruction { return i.next }
func (i *Instruction) Prev() *Instruction { return i.prev }

// String renders the instruction for debugging: the mnemonic followed by
// the labels of whichever operands that opcode defines. It is not the
// assembler's output format, which inlines literal values and prints the
// frame offsets on FN_START lines.
func (i *Instruction) String() string {
	op := i.Op.String()
	switch i.Op {
	case OpAdd, OpSub, OpMul, OpDiv, OpLoadArray, OpStoreArray:
		return fmt.Sprintf("%s %s %s %s", op, label(i.Dest), label(i.Src1), label(i.Src2))
	case OpInc, OpDec:
		return fmt.Sprintf("%s %s", op, label(i.Dest))
	case OpNeg, OpStoreVar:
		return fmt.Sprintf("%s %s %s", op, label(i.Dest), label(i.Src1))
	case OpBranchEqu, OpBranchNeq, OpBranchGtt, OpBranchGeq, OpBranchLst, OpBranchLeq:
		return fmt.Sprintf("%s %s %s %s", op, label(i.Dest), label(i.Src1), label(i.Src2))
	case OpJump, OpLabel:
		return fmt.Sprintf("%s %s", op, label(i.Dest))
	case OpPushVal, OpReadInt, OpReadUint, OpReadChar, OpWriteString, OpWriteInt, OpWriteUint, OpWriteChar:
		return fmt.Sprintf("%s %s", op, label(i.Dest))
	case OpPushAddr:
		if i.Src1 != nil {
			return fmt.Sprintf("%s %s %s", op, label(i.Dest), label(i.Src1))
		}
		return fmt.Sprintf("%s %s", op, label(i.Dest))
	case OpPop:
		return op
	case OpCall:
		if i.Dest != nil {
			return fmt.Sprintf("%s %s %s", op, label(i.Dest), label(i.Src1))
		}
		return fmt.Sprintf("%s %s", op, label(i.Src1))
	case OpFnStart, OpFnEnd:
		return fmt.Sprintf("%s %s", op, label(i.Dest))
	default:
		return op
	}
}

func label(s *symtab.Symbol) string {
	if s == nil {
		return "-"
	}
	return s.Label
}

// List is the compiler-wide instruction list: a single doubly-linked chain
// in program order, with a monotonic instruction-id counter.
type List struct {
	head, tail *Instruction
	nextID     int
}

// NewList returns an empty instruction list.
func NewList() *List { return &List{} }

// Head returns the first instruction, or nil if the list is empty.
func (l *List) Head() *Instruction { return l.head }

// Tail returns the last instruction, or nil if the list is empty.
func (l *List) Tail() *Instruction { return l.tail }

// Emit appends a new instruction built from op and up to three operands,
// returning it so callers can reference it (e.g. to patch LABEL targets).
func (l *List) Emit(op OpCode, dest, src1, src2 *symtab.Symbol) *Instruction {
	l.nextID++
	in := &Instruction{ID: l.nextID, Op: op, Dest: dest, Src1: src1, Src2: src2}
	if l.tail == nil {
		l.head = in
		l.tail = in
	} else {
		in.prev = l.tail
		l.tail.next = in
		l.tail = in
	}
	return in
}

// NewDetached builds an instruction with a fresh id drawn from l's counter
// but does not link it into the list. Callers splice the result in later
// via ReplaceRange — used by the DAG optimizer to rebuild a block's
// instruction stream before substituting it back in.
func (l *List) NewDetached(op OpCode, dest, src1, src2 *symtab.Symbol) *Instruction {
	l.nextID++
	return &Instruction{ID: l.nextID, Op: op, Dest: dest, Src1: src1, Src2: src2}
}

// ReplaceRange swaps the contiguous run [first, last] (inclusive, both
// already members of l) for newInstrs, relinking the list around it. Used
// to substitute a basic block's DAG-regenerated instructions back into
// the flat program-order list.
func (l *List) ReplaceRange(first, last *Instruction, newInstrs []*Instruction) {
	before := first.prev
	after := last.next

	for i := 1; i < len(newInstrs); i++ {
		newInstrs[i-1].next = newInstrs[i]
		newInstrs[i].prev = newInstrs[i-1]
	}

	var newFirst, newLast *Instruction
	if len(newInstrs) > 0 {
		newFirst, newLast = newInstrs[0], newInstrs[len(newInstrs)-1]
	}

	if before != nil {
		before.next = newFirst
	} else {
		l.head = newFirst
	}
	if newFirst != nil {
		newFirst.prev = before
	}

	if after != nil {
		after.prev = newLast
	} else {
		l.tail = newLast
	}
	if newLast != nil {
		newLast.next = after
	}

	if newFirst == nil {
		if before != nil {
			before.next = after
		} else {
			l.head = after
		}
		if after != nil {
			after.prev = before
		} else {
			l.tail = before
		}
	}
}

// Remove unlinks in from the list. in must currently be a member of l.
func (l *List) Remove(in *Instruction) {
	if in.prev != nil {
		in.prev.next = in.next
	} else {
		l.head = in.next
	}
	if in.next != nil {
		in.next.prev = in.prev
	} else {
		l.tail = in.prev
	}
	in.prev, in.next = nil, nil
}

// Slice returns every instruction in program order, for callers (CFG
// construction, the assembler) that want random access.
func (l *List) Slice() []*Instruction {
	out := make([]*Instruction, 0, l.nextID)
	for i := l.head; i != nil; i = i.next {
		out = append(out, i)
	}
	return out
}

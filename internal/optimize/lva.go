package optimize

import (
	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// trackable reports whether sym denotes an actual storage location whose
// liveness is worth tracking — literals, labels, and callable names carry
// no runtime slot and are excluded.
func trackable(s *symtab.Symbol) bool {
	if s == nil {
		return false
	}
	switch s.Category {
	case symtab.CategoryVariable, symtab.CategoryArray, symtab.CategoryByValue, symtab.CategoryByReference, symtab.CategoryTemp:
		return true
	default:
		return false
	}
}

// readSymbols returns the trackable symbols in's execution reads, per the
// operand roles fixed in ir.OpCode's documentation.
func readSymbols(in *ir.Instruction) []*symtab.Symbol {
	var out []*symtab.Symbol
	add := func(s *symtab.Symbol) {
		if trackable(s) {
			out = append(out, s)
		}
	}
	switch in.Op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		add(in.Src1)
		add(in.Src2)
	case ir.OpNeg:
		add(in.Src1)
	case ir.OpInc, ir.OpDec:
		add(in.Dest)
	case ir.OpLoadArray:
		add(in.Src1)
		add(in.Src2)
	case ir.OpStoreVar:
		add(in.Src1)
	case ir.OpStoreArray:
		// an element store leaves the rest of the array live — treat the
		// whole array symbol as read, never killed.
		add(in.Dest)
		add(in.Src1)
		add(in.Src2)
	case ir.OpBranchEqu, ir.OpBranchNeq, ir.OpBranchGtt, ir.OpBranchGeq, ir.OpBranchLst, ir.OpBranchLeq:
		add(in.Src1)
		add(in.Src2)
	case ir.OpPushVal:
		add(in.Dest)
	case ir.OpPushAddr:
		add(in.Dest)
		add(in.Src1)
	case ir.OpWriteString, ir.OpWriteInt, ir.OpWriteUint, ir.OpWriteChar:
		add(in.Dest)
	}
	return out
}

// writeSymbol returns the trackable symbol in defines, or nil.
func writeSymbol(in *ir.Instruction) *symtab.Symbol {
	switch in.Op {
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpNeg, ir.OpLoadArray, ir.OpStoreVar,
		ir.OpInc, ir.OpDec, ir.OpReadInt, ir.OpReadUint, ir.OpReadChar, ir.OpCall:
		if trackable(in.Dest) {
			return in.Dest
		}
	}
	return nil
}

// computeUseDef fills each block's Use/Def sets with a single forward scan
// (spec §4.8): a symbol counts toward Use only if it is read before any
// definition of it within the same block.
func computeUseDef(blocks []*BasicBlock) {
	for _, b := range blocks {
		b.Use, b.Def = map[int]bool{}, map[int]bool{}
		for _, in := range b.Instrs {
			for _, r := range readSymbols(in) {
				if !b.Def[r.ID] {
					b.Use[r.ID] = true
				}
			}
			if w := writeSymbol(in); w != nil {
				b.Def[w.ID] = true
			}
		}
		b.In, b.Out = map[int]bool{}, map[int]bool{}
	}
}

// solveLiveness runs the backward IN/OUT dataflow to a fixed point:
// OUT[b] = union of IN[s] over successors s; IN[b] = Use[b] ∪ (OUT[b] - Def[b]).
func solveLiveness(blocks []*BasicBlock) {
	changed := true
	for changed {
		changed = false
		for i := len(blocks) - 1; i >= 0; i-- {
			b := blocks[i]
			newOut := map[int]bool{}
			for _, s := range b.Succs {
				for id := range s.In {
					newOut[id] = true
				}
			}
			newIn := map[int]bool{}
			for id := range b.Use {
				newIn[id] = true
			}
			for id := range newOut {
				if !b.Def[id] {
					newIn[id] = true
				}
			}
			if !setEqual(newIn, b.In) || !setEqual(newOut, b.Out) {
				changed = true
			}
			b.In, b.Out = newIn, newOut
		}
	}
}

// eliminateDeadStores walks each block backward from its Out set, dropping
// any STORE_VAR whose destination is not subsequently read (spec §4.8). A
// block ending in FN_END also counts its function's return slot and
// by-reference parameters as live at its end. It
// removes the dropped instructions from list so the block's own content
// and the program's flat instruction stream stay in sync.
func eliminateDeadStores(list *ir.List, blocks []*BasicBlock) {
	for _, b := range blocks {
		live := map[int]bool{}
		for id := range b.Out {
			live[id] = true
		}
		// A function's return slot and by-reference parameters are read by
		// the caller after FN_END, so they are live at the end of its exit block.
		if n := len(b.Instrs); n > 0 && b.Instrs[n-1].Op == ir.OpFnEnd && b.Func != nil {
			if rs := b.Func.Scope.RetSlot; rs != nil {
				live[rs.ID] = true
			}
			for _, sym := range b.Func.Scope.Symbols() {
				if sym.Category == symtab.CategoryByReference {
					live[sym.ID] = true
				}
			}
		}
		var kept []*ir.Instruction
		for i := len(b.Instrs) - 1; i >= 0; i-- {
			in := b.Instrs[i]
			if in.Op == ir.OpStoreVar && !live[in.Dest.ID] {
				list.Remove(in)
				continue
			}
			kept = append([]*ir.Instruction{in}, kept...)
			if w := writeSymbol(in); w != nil {
				delete(live, w.ID)
			}
			for _, r := range readSymbols(in) {
				live[r.ID] = true
			}
		}
		b.Instrs = kept
	}
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if !b[id] {
			return false
		}
	}
	return true
}

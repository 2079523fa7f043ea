// Package optimize implements the two per-function passes that run over the
// flat IR before assembly: basic-block partitioning and per-block DAG value
// numbering (spec §4.7), followed by live-variable dataflow with dead-store
// elimination (spec §4.8).
package optimize

import (
	"github.com/hiperion-pscc/pscc/internal/ir"
)

// maxSuccessors bounds a basic block's outgoing edges (spec §4.6): every
// IR terminator produces at most a branch target and a fall-through, so
// this is generous headroom rather than a tight limit.
const maxSuccessors = 32

// BasicBlock is a maximal straight-line run of the flat instruction list:
// no instruction inside it other than the last is a jump, branch, call, or
// FN_END, and no instruction inside it other than the first is a LABEL.
type BasicBlock struct {
	ID    int
	Func  *ir.Function
	first *ir.Instruction

	Instrs []*ir.Instruction // current content (post-DAG, if eligible)
	Succs  []*BasicBlock

	Use, Def, In, Out map[int]bool // keyed by symtab.Symbol.ID, filled by LVA
}

func (b *BasicBlock) addSucc(t *BasicBlock) {
	if t == nil || len(b.Succs) >= maxSuccessors {
		return
	}
	for _, s := range b.Succs {
		if s == t {
			return
		}
	}
	b.Succs = append(b.Succs, t)
}

// CFG is the control-flow graph built over one program's whole flat
// instruction list, partitioned into per-function block groups.
type CFG struct {
	Blocks    []*BasicBlock
	ByFunc    map[*ir.Function][]*BasicBlock
}

// BuildCFG partitions list into basic blocks and wires successor edges,
// per spec §4.6: leaders are the first instruction, any LABEL, and any
// instruction immediately following a branch, jump, call, or FN_END.
func BuildCFG(list *ir.List, funcs []*ir.Function) *CFG {
	all := list.Slice()
	if len(all) == 0 {
		return &CFG{ByFunc: map[*ir.Function][]*BasicBlock{}}
	}

	leaderAt := make([]bool, len(all))
	leaderAt[0] = true
	for i := 1; i < len(all); i++ {
		if all[i].Op == ir.OpLabel {
			leaderAt[i] = true
			continue
		}
		prev := all[i-1]
		if prev.Op.IsBranch() || prev.Op == ir.OpJump || prev.Op == ir.OpCall || prev.Op == ir.OpFnEnd {
			leaderAt[i] = true
		}
	}

	cfg := &CFG{ByFunc: map[*ir.Function][]*BasicBlock{}}
	var starts []int
	for i, isLeader := range leaderAt {
		if isLeader {
			starts = append(starts, i)
		}
	}

	labelBlock := map[int]*BasicBlock{}
	for bi, start := range starts {
		end := len(all)
		if bi+1 < len(starts) {
			end = starts[bi+1]
		}
		b := &BasicBlock{ID: bi, first: all[start], Instrs: append([]*ir.Instruction(nil), all[start:end]...)}
		b.Func = ownerFunc(funcs, b.Instrs[0].ID)
		cfg.Blocks = append(cfg.Blocks, b)
		cfg.ByFunc[b.Func] = append(cfg.ByFunc[b.Func], b)
		if b.Instrs[0].Op == ir.OpLabel {
			labelBlock[b.Instrs[0].Dest.ID] = b
		}
	}

	for bi, b := range cfg.Blocks {
		last := b.Instrs[len(b.Instrs)-1]
		switch {
		case last.Op == ir.OpFnEnd:
			// function exit: no successors
		case last.Op == ir.OpJump:
			b.addSucc(labelBlock[last.Dest.ID])
		case last.Op.IsBranch():
			b.addSucc(labelBlock[last.Dest.ID])
			if bi+1 < len(cfg.Blocks) {
				b.addSucc(cfg.Blocks[bi+1])
			}
		default:
			if bi+1 < len(cfg.Blocks) {
				b.addSucc(cfg.Blocks[bi+1])
			}
		}
	}

	return cfg
}

func ownerFunc(funcs []*ir.Function, id int) *ir.Function {
	for _, f := range funcs {
		if id >= f.Start.ID && id <= f.End.ID {
			return f
		}
	}
	return nil
}

package optimize

import (
	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// isDAGEligible reports whether instrs contain none of the opcodes that take
// a block out of DAG consideration entirely (spec §4.7): array stores, the argument stack,
// calls, and I/O all carry ordering or aliasing effects value numbering
// does not model, so such a block is passed through unchanged.
func isDAGEligible(instrs []*ir.Instruction) bool {
	for _, in := range instrs {
		switch in.Op {
		case ir.OpStoreArray, ir.OpPushVal, ir.OpPushAddr, ir.OpPop, ir.OpCall,
			ir.OpReadInt, ir.OpReadUint, ir.OpReadChar,
			ir.OpWriteString, ir.OpWriteInt, ir.OpWriteUint, ir.OpWriteChar:
			return false
		}
	}
	return true
}

type nodeKind int

const (
	leafNode nodeKind = iota
	opNode
)

// node is one DAG vertex: either a leaf wrapping a symbol whose value
// already exists coming into the block, or an operation hash-consed on
// (opcode, left, right) so that repeated subexpressions collapse onto the
// same node.
type node struct {
	kind  nodeKind
	sym   *symtab.Symbol // leaf only
	op    ir.OpCode      // op only
	left  *node
	right *node

	finalAliases []*symtab.Symbol // symbols whose value at block exit is this node
	needed       bool
	regenDest    *symtab.Symbol // symbol this node's value is materialized under, once regenerated
}

type opKey struct {
	op          ir.OpCode
	left, right *node
}

// dag is the per-block value-numbering graph plus enough bookkeeping
// (every symbol ever written in the block, in first-write order) to
// rebuild a correct instruction stream afterward.
type dag struct {
	leaves   map[int]*node // symbol id -> node currently bound to it
	opIndex  map[opKey]*node
	order    []*node // op nodes in creation order (children precede parents)
	dests    []*symtab.Symbol
	seenDest map[int]bool
}

func newDAG() *dag {
	return &dag{leaves: map[int]*node{}, opIndex: map[opKey]*node{}, seenDest: map[int]bool{}}
}

func (d *dag) leafFor(sym *symtab.Symbol) *node {
	if sym == nil {
		return nil
	}
	if n, ok := d.leaves[sym.ID]; ok {
		return n
	}
	n := &node{kind: leafNode, sym: sym}
	d.leaves[sym.ID] = n
	return n
}

func (d *dag) opNodeFor(op ir.OpCode, left, right *node) *node {
	key := opKey{op, left, right}
	if n, ok := d.opIndex[key]; ok {
		return n
	}
	n := &node{kind: opNode, op: op, left: left, right: right}
	d.opIndex[key] = n
	d.order = append(d.order, n)
	return n
}

func (d *dag) rebind(dest *symtab.Symbol, n *node) {
	d.leaves[dest.ID] = n
	if !d.seenDest[dest.ID] {
		d.seenDest[dest.ID] = true
		d.dests = append(d.dests, dest)
	}
}

// buildDAG scans body (a block's value-computing instructions, with any
// leading LABEL and trailing branch/jump/FN_END already stripped) once in
// program order, building hash-consed operation nodes and recording each
// written symbol's final binding.
func buildDAG(body []*ir.Instruction) *dag {
	d := newDAG()
	for _, in := range body {
		switch in.Op {
		case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv, ir.OpLoadArray:
			n := d.opNodeFor(in.Op, d.leafFor(in.Src1), d.leafFor(in.Src2))
			d.rebind(in.Dest, n)
		case ir.OpNeg:
			n := d.opNodeFor(in.Op, d.leafFor(in.Src1), nil)
			d.rebind(in.Dest, n)
		case ir.OpInc, ir.OpDec:
			n := d.opNodeFor(in.Op, d.leafFor(in.Dest), nil)
			d.rebind(in.Dest, n)
		case ir.OpStoreVar:
			d.rebind(in.Dest, d.leafFor(in.Src1))
		}
	}

	for _, sym := range d.dests {
		n := d.leaves[sym.ID]
		n.finalAliases = append(n.finalAliases, sym)
	}
	for _, n := range d.order {
		if len(n.finalAliases) > 0 {
			n.needed = true
		}
	}
	for i := len(d.order) - 1; i >= 0; i-- {
		n := d.order[i]
		if !n.needed {
			continue
		}
		markNeeded(n.left)
		markNeeded(n.right)
	}
	return d
}

func markNeeded(n *node) {
	if n != nil && n.kind == opNode {
		n.needed = true
	}
}

func operandSym(n *node) *symtab.Symbol {
	if n == nil {
		return nil
	}
	if n.kind == leafNode {
		return n.sym
	}
	return n.regenDest
}

// resolveOperand maps sym to its current DAG representative — used to
// rewrite the trailing branch/jump's operands after regeneration, since
// the value they read may now live under a different symbol.
func (d *dag) resolveOperand(sym *symtab.Symbol) *symtab.Symbol {
	if sym == nil {
		return nil
	}
	n, ok := d.leaves[sym.ID]
	if !ok {
		return sym
	}
	return operandSym(n)
}

func inferType(n *node) symtab.Type {
	if t := operandSym(n.left); t != nil {
		return t.Type
	}
	if t := operandSym(n.right); t != nil {
		return t.Type
	}
	return symtab.TypeInt
}

// regenerateBlock rebuilds one DAG-eligible block's instruction stream:
// each distinct operation is emitted exactly once, into the symbol that
// was last stored into (spec §4.7); any other non-temporary alias of that
// same value gets a trailing copy so code outside this block still sees
// the right value under its own name. A plain copy (STORE_VAR with no
// arithmetic) never needs its own instruction — aliasing is handled the
// same way, against the leaf's original symbol.
func regenerateBlock(table *symtab.Table, scope *symtab.Scope, list *ir.List, instrs []*ir.Instruction) []*ir.Instruction {
	body := instrs
	var leading, trailing *ir.Instruction

	if len(body) > 0 && (body[0].Op == ir.OpLabel || body[0].Op == ir.OpFnStart) {
		leading = body[0]
		body = body[1:]
	}
	if len(body) > 0 {
		last := body[len(body)-1]
		if last.Op == ir.OpJump || last.Op.IsBranch() || last.Op == ir.OpFnEnd {
			trailing = last
			body = body[:len(body)-1]
		}
	}

	d := buildDAG(body)

	var out []*ir.Instruction
	if leading != nil {
		out = append(out, leading)
	}

	for _, n := range d.order {
		if !n.needed {
			continue
		}
		dest := pickDest(table, scope, n)
		n.regenDest = dest

		var src1, src2 *symtab.Symbol
		switch n.op {
		case ir.OpInc, ir.OpDec:
			// no source operands beyond dest itself
		case ir.OpNeg:
			src1 = operandSym(n.left)
		default:
			src1, src2 = operandSym(n.left), operandSym(n.right)
		}
		out = append(out, list.NewDetached(n.op, dest, src1, src2))

		for _, alias := range n.finalAliases {
			if alias == dest || alias.Category == symtab.CategoryTemp {
				continue
			}
			out = append(out, list.NewDetached(ir.OpStoreVar, alias, dest, nil))
		}
	}

	for _, sym := range d.dests {
		n := d.leaves[sym.ID]
		if n.kind != leafNode || sym == n.sym || sym.Category == symtab.CategoryTemp {
			continue
		}
		out = append(out, list.NewDetached(ir.OpStoreVar, sym, n.sym, nil))
	}

	if trailing != nil {
		if trailing.Op == ir.OpFnEnd {
			// FN_END's Dest names the callable, not a DAG value, and carries
			// FnScope metadata the assembler needs — keep the instruction as is.
			out = append(out, trailing)
		} else {
			out = append(out, list.NewDetached(trailing.Op,
				d.resolveOperand(trailing.Dest), d.resolveOperand(trailing.Src1), d.resolveOperand(trailing.Src2)))
		}
	}

	return out
}

func pickDest(table *symtab.Table, scope *symtab.Scope, n *node) *symtab.Symbol {
	if len(n.finalAliases) > 0 {
		return n.finalAliases[len(n.finalAliases)-1]
	}
	return table.AllocTemp(scope, inferType(n))
}

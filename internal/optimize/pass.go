package optimize

import (
	"github.com/hiperion-pscc/pscc/internal/ir"
	"github.com/hiperion-pscc/pscc/internal/symtab"
)

// Run builds the CFG over list, regenerates every DAG-eligible block, and
// then eliminates dead STORE_VARs by live-variable dataflow (spec §4.7,
// §4.8), mutating list and returning the CFG with each block's final
// content and liveness sets attached.
func Run(table *symtab.Table, list *ir.List, funcs []*ir.Function) *CFG {
	cfg := BuildCFG(list, funcs)

	for _, b := range cfg.Blocks {
		if !isDAGEligible(b.Instrs) {
			continue
		}
		scope := b.Func.Scope
		regen := regenerateBlock(table, scope, list, b.Instrs)
		list.ReplaceRange(b.Instrs[0], b.Instrs[len(b.Instrs)-1], regen)
		b.Instrs = regen
	}

	computeUseDef(cfg.Blocks)
	seedExitLiveness(cfg)
	solveLiveness(cfg.Blocks)
	eliminateDeadStores(list, cfg.Blocks)

	return cfg
}

// seedExitLiveness marks a function's return slot and by-reference
// parameters live at its FN_END block, since nothing inside the IR ever
// reads them explicitly — their value only matters to the caller, through
// the call's return temp and the pushed addresses respectively. Without
// this, LVA would see the final STORE_VAR into them as dead and delete it.
func seedExitLiveness(cfg *CFG) {
	for fn, blocks := range cfg.ByFunc {
		if fn == nil || len(blocks) == 0 {
			continue
		}
		exit := blocks[len(blocks)-1]
		if last := exit.Instrs[len(exit.Instrs)-1]; last.Op != ir.OpFnEnd {
			continue
		}
		if fn.Scope.RetSlot != nil {
			exit.Use[fn.Scope.RetSlot.ID] = true
		}
		for _, sym := range fn.Scope.Symbols() {
			if sym.Category == symtab.CategoryByReference {
				exit.Use[sym.ID] = true
			}
		}
	}
}

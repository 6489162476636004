package netlist

import "sort"

// ConstantFold eliminates full adders whose operands are all constants,
// resolves the replacement chain through every operand, and prunes ops that
// do not feed the decision signal. It returns a new Netlist over the same
// arena; existing records are never edited.
func (nl *Netlist) ConstantFold() *Netlist {
	repl := make(map[int]int)
	resolve := func(id int) int {
		for {
			r, ok := repl[id]
			if !ok {
				return id
			}
			id = r
		}
	}

	ops := make([]FullAdder, 0, len(nl.Ops))
	for _, op := range nl.Ops {
		op.A = resolve(op.A)
		op.B = resolve(op.B)
		op.Cin = resolve(op.Cin)
		ones, allConst := 0, true
		for _, in := range op.Operands() {
			v, isConst := nl.Arena.IsConst(in)
			if !isConst {
				allConst = false
				break
			}
			if v {
				ones++
			}
		}
		if allConst {
			repl[op.Sum] = nl.Arena.CanonConst(ones&1 == 1)
			repl[op.Cout] = nl.Arena.CanonConst(ones >= 2)
			continue
		}
		op.Sum = resolve(op.Sum)
		op.Cout = resolve(op.Cout)
		ops = append(ops, op)
	}

	maj := resolve(nl.MajSignal)
	ops = pruneDead(nl.Arena, ops, maj)

	return &Netlist{
		Arena:     nl.Arena,
		Name:      nl.Name,
		NbInputs:  nl.NbInputs,
		Inputs:    nl.Inputs,
		Const1s:   collectNamedConst1s(nl.Arena, ops, maj),
		Ops:       ops,
		MajSignal: maj,
	}
}

// pruneDead walks the op list backwards, keeping only ops whose outputs are
// needed by the decision signal or by a later kept op.
func pruneDead(a *Arena, ops []FullAdder, maj int) []FullAdder {
	needed := map[int]bool{maj: true}
	kept := make([]FullAdder, 0, len(ops))
	for i := len(ops) - 1; i >= 0; i-- {
		op := ops[i]
		if !needed[op.Sum] && !needed[op.Cout] {
			continue
		}
		kept = append(kept, op)
		for _, in := range op.Operands() {
			if _, isConst := a.IsConst(in); !isConst {
				needed[in] = true
			}
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

// collectNamedConst1s gathers the named constant-1 signals still referenced
// after folding, sorted by name for stable emission.
func collectNamedConst1s(a *Arena, ops []FullAdder, maj int) []int {
	seen := make(map[int]bool)
	var used []int
	note := func(id int) {
		s := a.Signal(id)
		if s.Kind == KindConst1 && s.Named && !seen[id] {
			seen[id] = true
			used = append(used, id)
		}
	}
	for _, op := range ops {
		for _, in := range op.Operands() {
			note(in)
		}
	}
	note(maj)
	sort.Slice(used, func(i, j int) bool {
		return a.Name(used[i]) < a.Name(used[j])
	})
	return used
}

package synth

import (
	"fmt"

	"github.com/silogic/majsynth/csa"
	"github.com/silogic/majsynth/netlist"
)

// BuildFoldedBias synthesizes the folded-bias majority circuit: the n
// inputs plus the bias constant K are compressed by the column scheduler up
// to column WBits-1, and the last carry-out of that column is the decision.
// No comparator stage exists; the bias shifts the decision boundary so the
// overflow bit directly encodes "count >= threshold".
func BuildFoldedBias(n int) (*netlist.Netlist, BiasConfig, error) {
	if err := CheckN(n); err != nil {
		return nil, BiasConfig{}, err
	}
	cfg := NewBiasConfig(n)

	arena := netlist.NewArena()
	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = arena.NewInput(i)
	}

	sched := csa.New(arena)
	sched.PushRaw(inputs...)
	var const1s []int
	for _, j := range cfg.KBits {
		id := arena.NewNamedConst1(fmt.Sprintf("K%d", j))
		sched.PushConst(j, id)
		const1s = append(const1s, id)
	}
	sched.Run(cfg.WBits - 1)

	maj, ok := sched.LastCout(cfg.WBits - 1)
	if !ok {
		panic(fmt.Sprintf("synth: no carry produced at column %d for n=%d", cfg.WBits-1, n))
	}

	nl := &netlist.Netlist{
		Arena:     arena,
		Name:      fmt.Sprintf("maj_fb_%d", n),
		NbInputs:  n,
		Inputs:    inputs,
		Const1s:   const1s,
		Ops:       append([]netlist.FullAdder(nil), arena.Ops...),
		MajSignal: maj,
	}
	if err := netlist.Validate(nl); err != nil {
		panic(err)
	}
	return nl, cfg, nil
}

package synth

import (
	"fmt"

	"github.com/silogic/majsynth/csa"
	"github.com/silogic/majsynth/netlist"
)

// BuildBaselineStrict synthesizes the two-step baseline: the n inputs are
// embedded into a scaffold of 2^P - 1 signals with paired 1/0 constants,
// the scheduler compresses the scaffold into its binary population count
// (one bit per column), and a width-P ripple comparator adds th_N - 1 with
// an initial carry of 1. The chain's final carry is 1 iff the population
// count reaches the scaffold threshold.
func BuildBaselineStrict(n int) (*netlist.Netlist, ScaffoldConfig, error) {
	if err := CheckN(n); err != nil {
		return nil, ScaffoldConfig{}, err
	}
	cfg := NewScaffoldConfig(n)

	arena := netlist.NewArena()
	inputs := make([]int, n)
	for i := range inputs {
		inputs[i] = arena.NewInput(i)
	}

	sched := csa.New(arena)
	sched.PushRaw(inputs...)
	for i := 0; i < cfg.NumFixedPairs; i++ {
		sched.PushRaw(arena.NewConst1())
	}
	for i := 0; i < cfg.NumFixedPairs; i++ {
		sched.PushRaw(arena.NewConst0())
	}
	sched.Run(cfg.P - 1)

	// Population-count bits, one surviving signal per column.
	hw := make([]int, cfg.ComparatorWidth)
	for i := range hw {
		if id, ok := sched.Residual(i); ok {
			hw[i] = id
		} else {
			hw[i] = arena.NewConst0()
		}
	}

	// Ripple comparator: hw + (th_N - 1) + 1 overflows iff hw >= th_N.
	cin := arena.NewNamedConst1("c2_0")
	const1s := []int{cin}
	mask := cfg.ScaffoldThreshold - 1
	for i := 0; i < cfg.ComparatorWidth; i++ {
		var b int
		if (mask>>i)&1 == 1 {
			b = arena.NewNamedConst1(fmt.Sprintf("T%d", i))
			const1s = append(const1s, b)
		} else {
			b = arena.NewConst0()
		}
		_, cout := arena.NewComparatorAdder(i, hw[i], b, cin)
		cin = cout
	}

	nl := &netlist.Netlist{
		Arena:     arena,
		Name:      fmt.Sprintf("maj_baseline_strict_%d", n),
		NbInputs:  n,
		Inputs:    inputs,
		Const1s:   const1s,
		Ops:       append([]netlist.FullAdder(nil), arena.Ops...),
		MajSignal: cin,
	}
	if err := netlist.Validate(nl); err != nil {
		panic(err)
	}
	return nl, cfg, nil
}

// Package gadget exports synthesized majority netlists as gnark circuit
// gadgets, so the exact gate structure emitted to Verilog and BLIF can be
// constrained and proven inside a SNARK circuit.
package gadget

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/silogic/majsynth/netlist"
	"github.com/silogic/majsynth/synth"
)

// FullAdder constrains one 3:2 compressor over boolean variables and
// returns (sum, cout).
func FullAdder(api frontend.API, a, b, cin frontend.Variable) (frontend.Variable, frontend.Variable) {
	axb := api.Xor(a, b)
	sum := api.Xor(axb, cin)
	cout := api.Or(api.And(a, b), api.And(axb, cin))
	return sum, cout
}

// FromNetlist instantiates the netlist gate by gate over the witness bits x
// and returns the majority output variable. The inputs must already be
// boolean-constrained by the caller.
func FromNetlist(api frontend.API, nl *netlist.Netlist, x []frontend.Variable) (frontend.Variable, error) {
	if len(x) != nl.NbInputs {
		return nil, fmt.Errorf("gadget: netlist %s expects %d inputs, got %d", nl.Name, nl.NbInputs, len(x))
	}

	values := make(map[int]frontend.Variable, len(nl.Arena.Signals))
	for _, id := range nl.Inputs {
		values[id] = x[nl.Arena.Signal(id).Index]
	}
	resolve := func(id int) frontend.Variable {
		if v, ok := values[id]; ok {
			return v
		}
		if c1, isConst := nl.Arena.IsConst(id); isConst {
			if c1 {
				return frontend.Variable(1)
			}
			return frontend.Variable(0)
		}
		panic(fmt.Sprintf("gadget: signal %d used before definition", id))
	}

	for _, op := range nl.Ops {
		sum, cout := FullAdder(api, resolve(op.A), resolve(op.B), resolve(op.Cin))
		values[op.Sum] = sum
		values[op.Cout] = cout
	}
	return resolve(nl.MajSignal), nil
}

// MajorityCircuit asserts that Maj equals the majority of the X bits, using
// the synthesized gate structure rather than a counting argument.
type MajorityCircuit struct {
	X   []frontend.Variable
	Maj frontend.Variable `gnark:",public"`
	// Baseline selects the baseline-strict architecture; the default is
	// folded-bias.
	Baseline bool
}

func (c *MajorityCircuit) Define(api frontend.API) error {
	for _, xi := range c.X {
		api.AssertIsBoolean(xi)
	}

	var nl *netlist.Netlist
	var err error
	if c.Baseline {
		nl, _, err = synth.BuildBaselineStrict(len(c.X))
	} else {
		nl, _, err = synth.BuildFoldedBias(len(c.X))
	}
	if err != nil {
		return err
	}

	maj, err := FromNetlist(api, nl, c.X)
	if err != nil {
		return err
	}
	api.AssertIsEqual(maj, c.Maj)
	return nil
}

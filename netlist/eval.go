package netlist

import "fmt"

// Eval computes the value of every signal under the given input assignment.
// The returned slice is indexed by signal id. Signals not reachable from the
// op list keep the zero value.
func (nl *Netlist) Eval(assignment []bool) ([]bool, error) {
	if len(assignment) != nl.NbInputs {
		return nil, fmt.Errorf("netlist %s: assignment has %d bits, want %d", nl.Name, len(assignment), nl.NbInputs)
	}
	vals := make([]bool, len(nl.Arena.Signals))
	for id, s := range nl.Arena.Signals {
		switch s.Kind {
		case KindConst1:
			vals[id] = true
		case KindInput:
			if s.Index < len(assignment) {
				vals[id] = assignment[s.Index]
			}
		}
	}
	for _, op := range nl.Ops {
		ones := 0
		for _, in := range op.Operands() {
			if vals[in] {
				ones++
			}
		}
		vals[op.Sum] = ones&1 == 1
		vals[op.Cout] = ones >= 2
	}
	return vals, nil
}

// EvalOutput evaluates the majority decision signal.
func (nl *Netlist) EvalOutput(assignment []bool) (bool, error) {
	vals, err := nl.Eval(assignment)
	if err != nil {
		return false, err
	}
	return vals[nl.MajSignal], nil
}

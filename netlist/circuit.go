package netlist

import "fmt"

// Netlist is one completed majority circuit: the op sequence in creation
// order, the primary inputs in declared order, and the single decision
// signal. It is read-only after the build; constant folding produces a new
// Netlist instead of editing this one.
type Netlist struct {
	Arena *Arena
	// Name is the model name, e.g. maj_fb_9.
	Name     string
	NbInputs int
	// Inputs holds the primary-input signal ids by declared index.
	Inputs []int
	// Const1s lists the named constant-1 signals referenced by the ops.
	Const1s []int
	// Ops is the topologically ordered full-adder sequence.
	Ops []FullAdder
	// MajSignal is the majority decision output.
	MajSignal int
}

// Validate checks the structural invariants of a netlist: input ids are
// declared in index order, every op operand is a constant, an input, or the
// output of an earlier op, and the decision signal is defined.
func Validate(nl *Netlist) error {
	if nl.NbInputs != len(nl.Inputs) {
		return fmt.Errorf("netlist %s: NbInputs %d does not match %d declared inputs", nl.Name, nl.NbInputs, len(nl.Inputs))
	}
	defined := make(map[int]bool)
	for i, id := range nl.Inputs {
		if id < 0 || id >= len(nl.Arena.Signals) {
			return fmt.Errorf("netlist %s: input %d id %d out of range", nl.Name, i, id)
		}
		s := nl.Arena.Signal(id)
		if s.Kind != KindInput {
			return fmt.Errorf("netlist %s: input %d is not a primary input", nl.Name, i)
		}
		if s.Index != i {
			return fmt.Errorf("netlist %s: input %d has declared index %d", nl.Name, i, s.Index)
		}
		defined[id] = true
	}
	for id, s := range nl.Arena.Signals {
		if s.Kind == KindConst0 || s.Kind == KindConst1 {
			defined[id] = true
		}
	}
	for i, op := range nl.Ops {
		for _, in := range op.Operands() {
			if in < 0 || in >= len(nl.Arena.Signals) {
				return fmt.Errorf("netlist %s: op %d operand %d out of range", nl.Name, i, in)
			}
			if !defined[in] {
				return fmt.Errorf("netlist %s: op %d operand %s is not defined yet", nl.Name, i, nl.Arena.Name(in))
			}
		}
		defined[op.Sum] = true
		defined[op.Cout] = true
	}
	if nl.MajSignal < 0 || nl.MajSignal >= len(nl.Arena.Signals) {
		return fmt.Errorf("netlist %s: decision signal %d out of range", nl.Name, nl.MajSignal)
	}
	if !defined[nl.MajSignal] {
		return fmt.Errorf("netlist %s: decision signal %s is never driven", nl.Name, nl.Arena.Name(nl.MajSignal))
	}
	return nil
}

// SignalName returns the stable textual name of a signal.
func (nl *Netlist) SignalName(id int) string {
	return nl.Arena.Name(id)
}

// CountOps returns the number of ops in the given stage.
func (nl *Netlist) CountOps(stage Stage) int {
	n := 0
	for _, op := range nl.Ops {
		if op.Stage == stage {
			n++
		}
	}
	return n
}

// MaxLevel returns the maximum logic depth over the ops of a stage.
func (nl *Netlist) MaxLevel(stage Stage) int {
	m := 0
	for _, op := range nl.Ops {
		if op.Stage == stage && op.Level > m {
			m = op.Level
		}
	}
	return m
}

// Print dumps the op list for debugging.
func (nl *Netlist) Print() {
	fmt.Printf("Netlist %s nbIn=%d nbFA=%d maj=%s =================\n",
		nl.Name, nl.NbInputs, len(nl.Ops), nl.SignalName(nl.MajSignal))
	for _, op := range nl.Ops {
		fmt.Printf("fa c%d l%d: %s, %s, %s -> %s, %s\n",
			op.Column, op.Level,
			nl.SignalName(op.A), nl.SignalName(op.B), nl.SignalName(op.Cin),
			nl.SignalName(op.Sum), nl.SignalName(op.Cout))
	}
}

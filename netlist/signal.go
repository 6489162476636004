// Package netlist holds the gate-graph model produced by the majority
// synthesizers: an arena of signals and full-adder instances addressed by
// integer ids, plus the completed netlist view consumed by statistics and
// the emitters.
package netlist

import "fmt"

// SignalKind classifies a signal node.
type SignalKind uint8

const (
	KindInput SignalKind = iota
	KindWire
	KindConst0
	KindConst1
)

// Signal is one node of the gate graph. Signals are created once by the
// arena and never modified afterwards.
type Signal struct {
	Kind SignalKind
	// Index is the declared primary-input position; meaningful only for
	// KindInput.
	Index int
	// Column is the binary weight the signal was created at.
	Column int
	// Level is the logic depth: 0 for inputs and constants, 1+max(inputs)
	// for gate outputs.
	Level int
	// Name is the stable textual identity used by the emitters.
	Name string
	// Named marks constant-1 signals that carry their own node name
	// (K0, T1, c2_0) as opposed to literal 1'b1 constants.
	Named bool
}

// OpKind records how the scheduler grouped the operands of a full adder.
type OpKind uint8

const (
	// OpRawTriple consumes three raw column-0 signals.
	OpRawTriple OpKind = iota
	// OpTriple consumes three signals during a column fold.
	OpTriple
	// OpPair consumes two signals plus a hard-wired constant 0.
	OpPair
	// OpComparator is one link of the baseline ripple comparator chain.
	OpComparator
)

// String returns the grouping label used in emitted instance names.
func (k OpKind) String() string {
	switch k {
	case OpRawTriple:
		return "raw_triple"
	case OpTriple:
		return "triple"
	case OpPair:
		return "pair"
	case OpComparator:
		return "th"
	}
	return "unknown"
}

// Stage separates the CSA compression tree from the ripple comparator for
// statistics purposes.
type Stage uint8

const (
	StageCSA Stage = iota
	StageComparator
)

// FullAdder is a 3:2 compressor instance. All five signal references are
// arena ids; the record is immutable once appended.
type FullAdder struct {
	A, B, Cin int
	Sum, Cout int
	Column    int
	Level     int
	Kind      OpKind
	Stage     Stage
}

// Operands returns the three input ids in instantiation order.
func (op FullAdder) Operands() [3]int {
	return [3]int{op.A, op.B, op.Cin}
}

// Arena is the exclusive owner of every signal and full adder of one build.
// Ids are assigned monotonically at creation; all other components hold
// only ids.
type Arena struct {
	Signals []Signal
	Ops     []FullAdder

	faSeq  int
	const0 int
	const1 int
}

func NewArena() *Arena {
	return &Arena{const0: -1, const1: -1}
}

func (a *Arena) add(s Signal) int {
	a.Signals = append(a.Signals, s)
	return len(a.Signals) - 1
}

// NewInput creates the primary input with the given declared index.
func (a *Arena) NewInput(index int) int {
	return a.add(Signal{Kind: KindInput, Index: index, Name: fmt.Sprintf("x[%d]", index)})
}

// NewConst0 creates a fresh hard-wired zero.
func (a *Arena) NewConst0() int {
	return a.add(Signal{Kind: KindConst0, Name: "1'b0"})
}

// NewConst1 creates a fresh literal one.
func (a *Arena) NewConst1() int {
	return a.add(Signal{Kind: KindConst1, Name: "1'b1"})
}

// NewNamedConst1 creates a constant-1 signal that is emitted as a named
// node (bias bits, threshold bits, the comparator carry-in).
func (a *Arena) NewNamedConst1(name string) int {
	return a.add(Signal{Kind: KindConst1, Name: name, Named: true})
}

// CanonConst returns a shared constant signal of the given value, creating
// it on first use. Constant folding substitutes these for folded wires.
func (a *Arena) CanonConst(v bool) int {
	if v {
		if a.const1 < 0 {
			a.const1 = a.NewConst1()
		}
		return a.const1
	}
	if a.const0 < 0 {
		a.const0 = a.NewConst0()
	}
	return a.const0
}

func (a *Arena) Signal(id int) Signal {
	return a.Signals[id]
}

func (a *Arena) Name(id int) string {
	return a.Signals[id].Name
}

// IsConst reports whether the signal is a constant, and its value.
func (a *Arena) IsConst(id int) (bool, bool) {
	switch a.Signals[id].Kind {
	case KindConst0:
		return false, true
	case KindConst1:
		return true, true
	}
	return false, false
}

func (a *Arena) level(id int) int {
	return a.Signals[id].Level
}

func (a *Arena) checkOperand(id int) {
	if id < 0 || id >= len(a.Signals) {
		panic(fmt.Sprintf("netlist: operand %d referenced before creation", id))
	}
}

func opTag(kind OpKind) string {
	switch kind {
	case OpRawTriple:
		return "raw_"
	case OpPair:
		return "p_"
	}
	return ""
}

// NewFullAdder appends a CSA-stage full adder at the given column, creating
// its sum wire in the same column and its carry wire in the next one. The
// wire names encode the grouping tag, the column, and a per-build sequence
// number, so identical builds name identical wires.
func (a *Arena) NewFullAdder(kind OpKind, column int, x, y, cin int) (sum, cout int) {
	a.checkOperand(x)
	a.checkOperand(y)
	a.checkOperand(cin)
	level := 1 + max3(a.level(x), a.level(y), a.level(cin))
	tag := opTag(kind)
	seq := a.faSeq
	a.faSeq++
	sum = a.add(Signal{
		Kind:   KindWire,
		Column: column,
		Level:  level,
		Name:   fmt.Sprintf("%ss_c%d_%d", tag, column, seq),
	})
	cout = a.add(Signal{
		Kind:   KindWire,
		Column: column + 1,
		Level:  level,
		Name:   fmt.Sprintf("%sc_c%d_%d", tag, column, seq),
	})
	a.Ops = append(a.Ops, FullAdder{
		A: x, B: y, Cin: cin,
		Sum: sum, Cout: cout,
		Column: column,
		Level:  level,
		Kind:   kind,
		Stage:  StageCSA,
	})
	return sum, cout
}

// NewComparatorAdder appends one link of the ripple comparator at bit
// position pos, with the fixed s2_<pos> / c2_<pos+1> wire names.
func (a *Arena) NewComparatorAdder(pos int, x, y, cin int) (sum, cout int) {
	a.checkOperand(x)
	a.checkOperand(y)
	a.checkOperand(cin)
	level := 1 + max3(a.level(x), a.level(y), a.level(cin))
	sum = a.add(Signal{
		Kind:   KindWire,
		Column: pos,
		Level:  level,
		Name:   fmt.Sprintf("s2_%d", pos),
	})
	cout = a.add(Signal{
		Kind:   KindWire,
		Column: pos + 1,
		Level:  level,
		Name:   fmt.Sprintf("c2_%d", pos+1),
	})
	a.Ops = append(a.Ops, FullAdder{
		A: x, B: y, Cin: cin,
		Sum: sum, Cout: cout,
		Column: pos,
		Level:  level,
		Kind:   OpComparator,
		Stage:  StageComparator,
	})
	return sum, cout
}

func max3(a, b, c int) int {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

// Package csa implements the column scheduler shared by both majority
// architectures: it compresses per-column signal multisets into full adders,
// keeping sums in place and forwarding carries to the next column.
package csa

import (
	"fmt"

	"github.com/silogic/majsynth/netlist"
)

// Scheduler runs the carry-save compression over an arena. Signals are
// grouped strictly in insertion order, so identical inputs always produce
// identical gate graphs.
//
// Column 0 is processed in two phases: first raw triples (three raw signals
// per full adder), then a serial fold of the stage sums, the leftover raw
// signals, and any column-0 constants. Every later column serially folds its
// accumulated carries followed by its constants.
type Scheduler struct {
	arena *netlist.Arena

	raw    []int
	consts map[int][]int

	queues   map[int][]int
	residual map[int]int
	lastCout map[int]int

	ran bool
}

func New(arena *netlist.Arena) *Scheduler {
	return &Scheduler{
		arena:    arena,
		consts:   make(map[int][]int),
		queues:   make(map[int][]int),
		residual: make(map[int]int),
		lastCout: make(map[int]int),
	}
}

// PushRaw appends raw signals to column 0 in insertion order.
func (s *Scheduler) PushRaw(ids ...int) {
	s.raw = append(s.raw, ids...)
}

// PushConst schedules a constant signal into the given column. Constants
// are folded after the column's carries.
func (s *Scheduler) PushConst(col int, id int) {
	s.consts[col] = append(s.consts[col], id)
}

// Run processes columns 0 through maxCol from least to most significant
// weight. It may only be called once per scheduler.
func (s *Scheduler) Run(maxCol int) {
	if s.ran {
		panic("csa: scheduler already ran")
	}
	s.ran = true

	// Phase one: raw column-0 triples.
	raw := s.raw
	var col0 []int
	for len(raw) >= 3 {
		sum, cout := s.arena.NewFullAdder(netlist.OpRawTriple, 0, raw[0], raw[1], raw[2])
		raw = raw[3:]
		col0 = append(col0, sum)
		s.forward(0, cout)
	}
	col0 = append(col0, raw...)
	col0 = append(col0, s.consts[0]...)
	s.fold(0, col0)

	for j := 1; j <= maxCol; j++ {
		queue := append(s.queues[j], s.consts[j]...)
		delete(s.queues, j)
		s.fold(j, queue)
	}
}

// fold serially compresses one column down to a single residual signal.
// The accumulator starts at the first queued signal; each full adder chains
// its sum back into the accumulator and forwards its carry.
func (s *Scheduler) fold(col int, queue []int) {
	if len(queue) == 0 {
		return
	}
	acc := queue[0]
	queue = queue[1:]
	for len(queue) >= 2 {
		sum, cout := s.arena.NewFullAdder(netlist.OpTriple, col, acc, queue[0], queue[1])
		queue = queue[2:]
		s.forward(col, cout)
		acc = sum
	}
	if len(queue) == 1 {
		zero := s.arena.NewConst0()
		sum, cout := s.arena.NewFullAdder(netlist.OpPair, col, acc, queue[0], zero)
		queue = queue[1:]
		s.forward(col, cout)
		acc = sum
	}
	if len(queue) != 0 {
		panic(fmt.Sprintf("csa: column %d not reduced, %d signals left", col, len(queue)))
	}
	s.residual[col] = acc
}

func (s *Scheduler) forward(col int, cout int) {
	s.queues[col+1] = append(s.queues[col+1], cout)
	s.lastCout[col] = cout
}

// Residual returns the single signal a processed column folded down to.
func (s *Scheduler) Residual(col int) (int, bool) {
	id, ok := s.residual[col]
	return id, ok
}

// LastCout returns the carry-out of the last full adder created at the
// given column. For the folded-bias architecture this is the majority
// decision when col is the top scheduled column.
func (s *Scheduler) LastCout(col int) (int, bool) {
	id, ok := s.lastCout[col]
	return id, ok
}

// Pending returns the carries forwarded into a column that was never
// processed (columns above the configured limit).
func (s *Scheduler) Pending(col int) []int {
	return s.queues[col]
}

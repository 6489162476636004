// Package blif emits a netlist as canonical BLIF: sorted gate inputs,
// minimal deduplicated truth-table cubes, explicit constant nodes, and a
// fixed topological cell order, so identical netlists always produce
// byte-identical files.
package blif

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/silogic/majsynth/netlist"
)

// Options selects the full-adder decomposition.
type Options struct {
	// MajOnly expands each full adder into three majority cells with the
	// negations folded into the cube literals:
	//   cout = MAJ(a, b, cin)
	//   t    = MAJ(NOT a, b, cin)
	//   sum  = MAJ(t, a, NOT cout)
	// Otherwise sum is a 3-input XOR cell and cout a majority cell.
	MajOnly bool
}

// Write emits the canonical BLIF for the netlist. The netlist is expected
// to be constant-folded already; literal constants that survive become
// shared CONST0/CONST1 nodes.
func Write(out io.Writer, nl *netlist.Netlist, opts Options) error {
	_, err := out.Write(Bytes(nl, opts))
	return err
}

// Bytes renders the canonical BLIF text.
func Bytes(nl *netlist.Netlist, opts Options) []byte {
	w := &writer{nl: nl}

	w.linef(".model %s", nl.Name)
	inputs := make([]string, nl.NbInputs)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("x%d", i)
	}
	if len(inputs) > 0 {
		w.linef(".inputs %s", strings.Join(inputs, " "))
	}
	w.linef(".outputs maj")

	// Named constant-1 nodes, sorted for stable emission.
	named := make([]string, 0, len(nl.Const1s))
	for _, id := range nl.Const1s {
		named = append(named, sanitize(nl.Arena.Name(id)))
	}
	sort.Strings(named)
	emitted := make(map[string]bool)
	for _, name := range named {
		if !emitted[name] {
			emitted[name] = true
			w.emitConst1(name)
		}
	}

	for i, op := range nl.Ops {
		a := w.mapSignal(op.A)
		b := w.mapSignal(op.B)
		c := w.mapSignal(op.Cin)
		s := sanitize(nl.Arena.Name(op.Sum))
		k := sanitize(nl.Arena.Name(op.Cout))
		if opts.MajOnly {
			w.emitMaj3(a, b, c, k, noMask)
			t := fmt.Sprintf("fa%d_op1", i)
			w.emitMaj3(a, b, c, t, mask3{true, false, false})
			w.emitMaj3(t, a, k, s, mask3{false, false, true})
		} else {
			w.emitXor3(a, b, c, s)
			w.emitMaj3(a, b, c, k, noMask)
		}
	}

	if w.usedConst1 && !emitted["CONST1"] {
		w.emitConst1("CONST1")
	}
	if w.usedConst0 {
		w.linef(".names CONST0")
	}

	w.linef(".names %s maj", w.mapSignal(nl.MajSignal))
	w.linef("1 1")
	w.linef(".end")

	return []byte(strings.Join(w.lines, "\n") + "\n")
}

type mask3 [3]bool

var noMask mask3

type writer struct {
	nl         *netlist.Netlist
	lines      []string
	usedConst0 bool
	usedConst1 bool
}

func (w *writer) linef(format string, args ...interface{}) {
	w.lines = append(w.lines, fmt.Sprintf(format, args...))
}

func (w *writer) emitConst1(name string) {
	w.linef(".names %s", name)
	w.linef("1")
}

// mapSignal resolves an operand to its BLIF node name. Literal constants
// collapse to the shared CONST0/CONST1 nodes; named constants keep their
// own node.
func (w *writer) mapSignal(id int) string {
	s := w.nl.Arena.Signal(id)
	switch s.Kind {
	case netlist.KindConst0:
		w.usedConst0 = true
		return "CONST0"
	case netlist.KindConst1:
		if s.Named {
			return sanitize(s.Name)
		}
		w.usedConst1 = true
		return "CONST1"
	}
	return sanitize(s.Name)
}

// emitMaj3 writes one majority cell with inputs sorted alphabetically. The
// mask inverts the corresponding original operands; inversion is encoded in
// the cubes, never as a separate NOT node.
func (w *writer) emitMaj3(a, b, c, out string, m mask3) {
	names, perm := sorted3(a, b, c)
	var sortedMask mask3
	for i := 0; i < 3; i++ {
		sortedMask[i] = m[perm[i]]
	}

	var rows []string
	for v := 0; v < 8; v++ {
		bits := [3]int{v >> 2 & 1, v >> 1 & 1, v & 1}
		ones := 0
		for i := 0; i < 3; i++ {
			x := bits[i]
			if sortedMask[i] {
				x ^= 1
			}
			ones += x
		}
		if ones >= 2 {
			rows = append(rows, fmt.Sprintf("%d%d%d", bits[0], bits[1], bits[2]))
		}
	}
	rows = dedupeSorted(rows)

	w.linef(".names %s %s %s %s", names[0], names[1], names[2], out)
	for _, r := range rows {
		w.linef("%s 1", r)
	}
}

// emitXor3 writes one odd-parity cell with inputs sorted alphabetically;
// the canonical minterm patterns are permuted to the sorted order.
func (w *writer) emitXor3(a, b, c, out string) {
	names, perm := sorted3(a, b, c)
	base := []string{"001", "010", "100", "111"}
	rows := make([]string, len(base))
	for i, p := range base {
		rows[i] = permutePattern(p, perm)
	}
	w.linef(".names %s %s %s %s", names[0], names[1], names[2], out)
	for _, r := range rows {
		w.linef("%s 1", r)
	}
}

// sorted3 sorts three node names alphabetically and returns the permutation
// mapping sorted position to original position.
func sorted3(a, b, c string) ([3]string, [3]int) {
	orig := [3]string{a, b, c}
	srt := [3]string{a, b, c}
	sort.Strings(srt[:])
	var perm [3]int
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if orig[j] == srt[i] {
				perm[i] = j
				break
			}
		}
	}
	return srt, perm
}

func permutePattern(p string, perm [3]int) string {
	return string([]byte{p[perm[0]], p[perm[1]], p[perm[2]]})
}

func dedupeSorted(rows []string) []string {
	sort.Strings(rows)
	out := rows[:0]
	for i, r := range rows {
		if i == 0 || rows[i-1] != r {
			out = append(out, r)
		}
	}
	return out
}

// sanitize makes a signal name BLIF-safe: x[3] becomes x3, separators
// become underscores.
func sanitize(name string) string {
	r := strings.NewReplacer("[", "", "]", "", " ", "_", ".", "_")
	return r.Replace(name)
}

// Package draw renders a netlist as a Graphviz dot graph for quick visual
// inspection of the compression tree.
package draw

import (
	"fmt"
	"io"
	"strings"

	"github.com/silogic/majsynth/netlist"
)

// Dot renders the netlist: primary inputs as ellipses, constant taps as
// gold boxes, full adders as rounded blue boxes labelled with column and
// level, and the module output as a double circle.
func Dot(nl *netlist.Netlist) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", nl.Name)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [fontsize=10];\n")

	for _, id := range nl.Inputs {
		fmt.Fprintf(&b, "  s%d [shape=ellipse, style=filled, fillcolor=\"#e6f2ff\", label=%q];\n", id, nl.SignalName(id))
	}

	declared := make(map[int]bool)
	for _, id := range nl.Inputs {
		declared[id] = true
	}
	declConst := func(id int) {
		if declared[id] {
			return
		}
		declared[id] = true
		fmt.Fprintf(&b, "  s%d [shape=box, style=filled, fillcolor=\"#fdebd0\", label=%q];\n", id, nl.SignalName(id))
	}

	for i, op := range nl.Ops {
		for _, in := range op.Operands() {
			if _, isConst := nl.Arena.IsConst(in); isConst {
				declConst(in)
			}
		}
		fmt.Fprintf(&b, "  fa%d [shape=box, style=\"rounded,filled\", fillcolor=\"#aed6f1\", label=\"fa%d c%d l%d\"];\n",
			i, i, op.Column, op.Level)
	}

	// Sum/cout wires attach to the producing adder, not separate nodes.
	producer := make(map[int]string)
	for i, op := range nl.Ops {
		producer[op.Sum] = fmt.Sprintf("fa%d", i)
		producer[op.Cout] = fmt.Sprintf("fa%d", i)
	}
	src := func(id int) string {
		if p, ok := producer[id]; ok {
			return p
		}
		return fmt.Sprintf("s%d", id)
	}

	for i, op := range nl.Ops {
		for _, in := range op.Operands() {
			fmt.Fprintf(&b, "  %s -> fa%d;\n", src(in), i)
		}
	}

	fmt.Fprintf(&b, "  maj [shape=doublecircle, style=filled, fillcolor=\"#d5f5e3\"];\n")
	fmt.Fprintf(&b, "  %s -> maj;\n", src(nl.MajSignal))
	b.WriteString("}\n")
	return []byte(b.String())
}

// WriteDot writes the dot rendering to w.
func WriteDot(w io.Writer, nl *netlist.Netlist) error {
	_, err := w.Write(Dot(nl))
	return err
}

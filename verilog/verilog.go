// Package verilog renders synthesized majority netlists as structural
// Verilog over a single `fa` primitive. The emitted text is deterministic:
// identical netlists produce identical files.
package verilog

import (
	"fmt"
	"io"
	"strings"

	"github.com/silogic/majsynth/netlist"
	"github.com/silogic/majsynth/synth"
)

func header(n int, title string) []string {
	return []string{
		"// -----------------------------------------------------------------------------",
		"// " + title,
		fmt.Sprintf("// n = %d", n),
		"// Expect FA primitive: module fa(input a,b,cin, output sum,cout);",
		"// -----------------------------------------------------------------------------",
		"",
	}
}

// FoldedBias renders the folded-bias module maj_fb_<n>.
func FoldedBias(nl *netlist.Netlist, cfg synth.BiasConfig) string {
	lines := header(cfg.N, "Folded-Bias Majority (CSA-only, macro-structured)")
	lines = append(lines, fmt.Sprintf("module maj_fb_%d (input  wire [%d:0] x, output wire maj);", cfg.N, cfg.N-1))
	lines = append(lines, fmt.Sprintf("  // Parameters: th=%d, w=%d, K=%d", cfg.Threshold, cfg.WBits, cfg.BiasK))
	for _, j := range cfg.KBits {
		lines = append(lines, fmt.Sprintf("  wire K%d = 1'b1;", j))
	}

	if len(nl.Ops) > 0 {
		lines = append(lines, "", "  // -------- CSA macro schedule --------")
		lines = append(lines, wireDecls(nl, netlist.StageCSA)...)
		lines = append(lines, instances(nl, netlist.StageCSA)...)
	}

	lines = append(lines, "", fmt.Sprintf("  assign maj = %s;", nl.SignalName(nl.MajSignal)), "endmodule", "")
	lines = append(lines, fmt.Sprintf("// FA count (folded-bias, CSA-only) for n=%d: total=%d", cfg.N, len(nl.Ops)))
	return strings.Join(lines, "\n")
}

// BaselineStrict renders the baseline module maj_baseline_strict_<n>: the
// CSA compression of the scaffold, the single-rail population-count bits,
// and the width-P ripple comparator.
func BaselineStrict(nl *netlist.Netlist, cfg synth.ScaffoldConfig) string {
	lines := header(cfg.N, "Baseline STRICT (paper scaffold): CSA (N=2^p-1) -> HW + th_N - 1 + Cin")
	lines = append(lines, fmt.Sprintf("module maj_baseline_strict_%d (input  wire [%d:0] x, output wire maj);", cfg.N, cfg.N-1))
	lines = append(lines, fmt.Sprintf("  // Scaffold parameters: p=%d, N=2^%d-1=%d, th_N=%d, paired constants=%d",
		cfg.P, cfg.P, cfg.ScaffoldInputs, cfg.ScaffoldThreshold, cfg.NumFixedPairs))

	if nl.CountOps(netlist.StageCSA) > 0 {
		lines = append(lines, "", "  // -------- CSA macro schedule on scaffold inputs --------")
		lines = append(lines, wireDecls(nl, netlist.StageCSA)...)
		lines = append(lines, instances(nl, netlist.StageCSA)...)
	}

	var cmpOps []netlist.FullAdder
	for _, op := range nl.Ops {
		if op.Stage == netlist.StageComparator {
			cmpOps = append(cmpOps, op)
		}
	}

	lines = append(lines, "", "  // -------- HW bits after CSA (single-rail) --------")
	for i, op := range cmpOps {
		lines = append(lines, fmt.Sprintf("  wire hw_%d = %s;", i, nl.SignalName(op.A)))
	}

	var thDecls []string
	for _, op := range cmpOps {
		if s := nl.Arena.Signal(op.B); s.Kind == netlist.KindConst1 && s.Named {
			thDecls = append(thDecls, fmt.Sprintf("  wire %s = 1'b1;", s.Name))
		}
	}
	if len(thDecls) > 0 {
		lines = append(lines, "", "  // Threshold constant bits (th_N - 1)")
		lines = append(lines, thDecls...)
	}

	lines = append(lines, "", fmt.Sprintf("  // -------- Full ripple (%d bits) for HW + (th_N - 1) + Cin=1 --------", cfg.ComparatorWidth))
	lines = append(lines, "  wire c2_0 = 1'b1; // Cin = 1 (paper comparator)")
	for i, op := range cmpOps {
		lines = append(lines, fmt.Sprintf("  wire s2_%d, c2_%d;", i, i+1))
		lines = append(lines, fmt.Sprintf("  fa u_th_%d(.a(hw_%d), .b(%s), .cin(c2_%d), .sum(s2_%d), .cout(c2_%d));",
			i, i, nl.SignalName(op.B), i, i, i+1))
	}

	m := cfg.ComparatorWidth
	lines = append(lines, fmt.Sprintf("  wire c2_m = c2_%d;", m), "", "  assign maj = c2_m;", "endmodule", "")
	lines = append(lines, fmt.Sprintf("// FA count (baseline STRICT, scaffold) for n=%d: CSA=%d, CPA(th)=%d, total=%d",
		cfg.N, nl.CountOps(netlist.StageCSA), m, nl.CountOps(netlist.StageCSA)+m))
	return strings.Join(lines, "\n")
}

// FoldedBiasWrapper renders maj_fb_majpath_<n>, which fixes the scaffold's
// extra inputs and instantiates the size-nBig folded-bias module.
func FoldedBiasWrapper(n, nBig int, mapping []string, layout string) string {
	lines := header(n, "Folded-Bias Majority (Maj-path constant fixing)")
	lines = append(lines, fmt.Sprintf("module maj_fb_majpath_%d (input  wire [%d:0] x, output wire maj);", n, n-1))
	lines = append(lines, fmt.Sprintf("  // Derived from maj_fb_%d with layout='%s'", nBig, layout))
	lines = append(lines, wrapperBody(nBig, mapping, fmt.Sprintf("maj_fb_%d u_fb_big(.x(x_big), .maj(maj));", nBig))...)
	return strings.Join(lines, "\n")
}

// BaselineWrapper renders maj_baseline_majpath_<n> around the size-nBig
// baseline module.
func BaselineWrapper(n, nBig int, mapping []string, layout string) string {
	lines := header(n, "Baseline STRICT (Maj-path constant fixing)")
	lines = append(lines, fmt.Sprintf("module maj_baseline_majpath_%d (input  wire [%d:0] x, output wire maj);", n, n-1))
	lines = append(lines, fmt.Sprintf("  // Derived from maj_baseline_strict_%d with layout='%s'", nBig, layout))
	lines = append(lines, wrapperBody(nBig, mapping, fmt.Sprintf("maj_baseline_strict_%d u_base_big(.x(x_big), .maj(maj));", nBig))...)
	return strings.Join(lines, "\n")
}

func wrapperBody(nBig int, mapping []string, inst string) []string {
	lines := []string{fmt.Sprintf("  wire [%d:0] x_big;", nBig-1)}
	for idx, source := range mapping {
		lines = append(lines, fmt.Sprintf("  assign x_big[%d] = %s;", idx, source))
	}
	return append(lines, inst, "endmodule", "")
}

func wireDecls(nl *netlist.Netlist, stage netlist.Stage) []string {
	var lines []string
	for _, op := range nl.Ops {
		if op.Stage == stage {
			lines = append(lines, fmt.Sprintf("  wire %s, %s;", nl.SignalName(op.Sum), nl.SignalName(op.Cout)))
		}
	}
	return lines
}

func instances(nl *netlist.Netlist, stage netlist.Stage) []string {
	var lines []string
	for _, op := range nl.Ops {
		if op.Stage != stage {
			continue
		}
		lines = append(lines, fmt.Sprintf("  fa u_c%d_%s_%s(.a(%s), .b(%s), .cin(%s), .sum(%s), .cout(%s));",
			op.Column, op.Kind, nl.SignalName(op.Sum),
			nl.SignalName(op.A), nl.SignalName(op.B), nl.SignalName(op.Cin),
			nl.SignalName(op.Sum), nl.SignalName(op.Cout)))
	}
	return lines
}

// Bundle accumulates rendered modules under one file banner, deduplicating
// by module name so shared scaffold bases appear once.
type Bundle struct {
	n       int
	modules []string
	emitted map[string]bool
}

func NewBundle(n int) *Bundle {
	return &Bundle{n: n, emitted: make(map[string]bool)}
}

// Add appends the rendered module unless one with the same name is already
// present.
func (b *Bundle) Add(name, src string) {
	if src == "" || b.emitted[name] {
		return
	}
	b.emitted[name] = true
	b.modules = append(b.modules, src)
}

// Has reports whether a module with the given name was added.
func (b *Bundle) Has(name string) bool {
	return b.emitted[name]
}

func (b *Bundle) banner() []string {
	return []string{
		"// Auto-generated majority circuits (canonical BLIF emission)",
		fmt.Sprintf("// n = %d", b.n),
		"// Top modules present (depending on config):",
		"//   - maj_fb_<n>                (folded-bias; CSA-only, macro schedule)",
		"//   - maj_baseline_strict_<n>   (baseline threshold path)",
		"//   - maj_fb_majpath_<n>        (folded-bias; scaffold constant-fix)",
		"//   - maj_baseline_majpath_<n>  (baseline STRICT; scaffold constant-fix)",
		"// You must provide: module fa(input a,b,cin, output sum,cout);",
		"",
	}
}

// Bytes renders the banner and all added modules.
func (b *Bundle) Bytes() []byte {
	return []byte(strings.Join(append(b.banner(), b.modules...), "\n"))
}

func (b *Bundle) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.Bytes())
	return int64(n), err
}

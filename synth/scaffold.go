package synth

import (
	"fmt"
	"math/rand"

	"github.com/silogic/majsynth/netlist"
)

// The scaffold wrappers embed Maj_n into the minimal larger instance via
// Maj_{2k+1}(x) = Maj_{2(k+1)+1}(0, 1, x): the target is built at size n+2
// with one fixed 1/0 pair, several deterministic input layouts are tried,
// and the layout whose constant-folded netlist has the fewest full adders
// wins. Experimental; kept for architecture-space exploration.

// ScaffoldedResult is a wrapper build outcome.
type ScaffoldedResult struct {
	Netlist *netlist.Netlist
	// Layout is the label of the winning input layout.
	Layout string
	// ScaffoldN is the embedding size the design was built at.
	ScaffoldN int
	// Mapping gives, per scaffold input position, the wrapped source:
	// x[i], 1'b1 or 1'b0. Consumed by the structural Verilog wrapper.
	Mapping []string
}

const scaffoldRandLayouts = 12

type layoutToken struct {
	kind byte // 'x', '1' or '0'
	idx  int
}

type scaffoldLayout struct {
	label string
	seq   []layoutToken
}

// BuildFoldedBiasScaffolded builds the folded-bias design at size n+2 and
// fixes the extra inputs per the best layout.
func BuildFoldedBiasScaffolded(n int) (*ScaffoldedResult, error) {
	if err := CheckN(n); err != nil {
		return nil, err
	}
	big, _, err := BuildFoldedBias(n + 2)
	if err != nil {
		return nil, err
	}
	return selectScaffoldLayout(big, n, fmt.Sprintf("maj_fb_majpath_%d", n))
}

// BuildBaselineScaffolded builds the baseline-strict design at size n+2 and
// fixes the extra inputs per the best layout.
func BuildBaselineScaffolded(n int) (*ScaffoldedResult, error) {
	if err := CheckN(n); err != nil {
		return nil, err
	}
	big, _, err := BuildBaselineStrict(n + 2)
	if err != nil {
		return nil, err
	}
	return selectScaffoldLayout(big, n, fmt.Sprintf("maj_baseline_majpath_%d", n))
}

func selectScaffoldLayout(big *netlist.Netlist, n int, name string) (*ScaffoldedResult, error) {
	const numFix = 1
	nBig := big.NbInputs

	var best *ScaffoldedResult
	bestOps := -1
	for _, layout := range scaffoldLayouts(n, numFix, nBig) {
		candidate := remapInputs(big, layout.seq, n, name).ConstantFold()
		if bestOps < 0 || len(candidate.Ops) < bestOps {
			bestOps = len(candidate.Ops)
			best = &ScaffoldedResult{
				Netlist:   candidate,
				Layout:    layout.label,
				ScaffoldN: nBig,
				Mapping:   renderLayout(layout.seq),
			}
		}
	}
	if best == nil {
		panic("synth: no scaffold layout produced a netlist")
	}
	if err := netlist.Validate(best.Netlist); err != nil {
		panic(err)
	}
	return best, nil
}

// remapInputs rewires the big netlist's primary inputs per the layout:
// scaffold position i takes x[idx], a constant 1, or a constant 0. The
// result shares the arena; only operand references change.
func remapInputs(big *netlist.Netlist, seq []layoutToken, n int, name string) *netlist.Netlist {
	repl := make(map[int]int, len(seq))
	for pos, tok := range seq {
		target := big.Inputs[pos]
		switch tok.kind {
		case 'x':
			repl[target] = big.Inputs[tok.idx]
		case '1':
			repl[target] = big.Arena.CanonConst(true)
		default:
			repl[target] = big.Arena.CanonConst(false)
		}
	}
	r := func(id int) int {
		if v, ok := repl[id]; ok {
			return v
		}
		return id
	}
	ops := make([]netlist.FullAdder, len(big.Ops))
	for i, op := range big.Ops {
		op.A, op.B, op.Cin = r(op.A), r(op.B), r(op.Cin)
		ops[i] = op
	}
	return &netlist.Netlist{
		Arena:     big.Arena,
		Name:      name,
		NbInputs:  n,
		Inputs:    big.Inputs[:n],
		Const1s:   big.Const1s,
		Ops:       ops,
		MajSignal: r(big.MajSignal),
	}
}

// scaffoldLayouts enumerates the candidate placements of the n real inputs
// and the numFix constant pairs over the nBig scaffold positions. The set
// and its order are fixed, so layout selection is deterministic.
func scaffoldLayouts(n, numFix, nBig int) []scaffoldLayout {
	if numFix <= 0 {
		seq := make([]layoutToken, n)
		for i := range seq {
			seq[i] = layoutToken{'x', i}
		}
		return []scaffoldLayout{{"identity", seq}}
	}

	layouts := []scaffoldLayout{
		{"clustered", layoutClustered(n, numFix)},
		{"interleaved", layoutInterleaved(n, numFix)},
		{"alternating", layoutAlternating(n, numFix, nBig)},
		{"alt_off1", layoutAltOffset1(n, numFix, nBig)},
	}
	base := layoutClustered(n, numFix)
	for seed := 0; seed < scaffoldRandLayouts; seed++ {
		seq := append([]layoutToken(nil), base...)
		rng := rand.New(rand.NewSource(int64(seed)))
		rng.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
		layouts = append(layouts, scaffoldLayout{fmt.Sprintf("rand%d", seed), trunc(seq, nBig)})
	}
	for i := range layouts {
		layouts[i].seq = trunc(layouts[i].seq, nBig)
	}
	return layouts
}

func layoutClustered(n, numFix int) []layoutToken {
	seq := make([]layoutToken, 0, n+2*numFix)
	for i := 0; i < n; i++ {
		seq = append(seq, layoutToken{'x', i})
	}
	for idx := 0; idx < numFix; idx++ {
		seq = append(seq, layoutToken{'1', idx}, layoutToken{'0', idx})
	}
	return seq
}

func layoutInterleaved(n, numFix int) []layoutToken {
	var seq []layoutToken
	ones, zeros := 0, 0
	for idx := 0; idx < n; idx++ {
		seq = append(seq, layoutToken{'x', idx})
		if ones < numFix {
			seq = append(seq, layoutToken{'1', ones})
			ones++
		}
		if zeros < numFix {
			seq = append(seq, layoutToken{'0', zeros})
			zeros++
		}
	}
	for ones < numFix || zeros < numFix {
		if ones < numFix {
			seq = append(seq, layoutToken{'1', ones})
			ones++
		}
		if zeros < numFix {
			seq = append(seq, layoutToken{'0', zeros})
			zeros++
		}
	}
	return seq
}

func layoutAlternating(n, numFix, nBig int) []layoutToken {
	var seq []layoutToken
	ones, zeros, x := 0, 0, 0
	for len(seq) < nBig && (x < n || ones < numFix || zeros < numFix) {
		if x < n {
			seq = append(seq, layoutToken{'x', x})
			x++
		}
		if ones < numFix && len(seq) < nBig {
			seq = append(seq, layoutToken{'1', ones})
			ones++
		}
		if x < n && len(seq) < nBig {
			seq = append(seq, layoutToken{'x', x})
			x++
		}
		if zeros < numFix && len(seq) < nBig {
			seq = append(seq, layoutToken{'0', zeros})
			zeros++
		}
	}
	return seq
}

func layoutAltOffset1(n, numFix, nBig int) []layoutToken {
	var seq []layoutToken
	ones, zeros, x := 0, 0, 0
	for toggle := 0; len(seq) < nBig; toggle++ {
		switch {
		case toggle%2 == 0 && x < n:
			seq = append(seq, layoutToken{'x', x})
			x++
		case toggle%4 == 1 && ones < numFix:
			seq = append(seq, layoutToken{'1', ones})
			ones++
		case toggle%4 == 3 && zeros < numFix:
			seq = append(seq, layoutToken{'0', zeros})
			zeros++
		default:
			if x < n {
				seq = append(seq, layoutToken{'x', x})
				x++
			} else if ones < numFix {
				seq = append(seq, layoutToken{'1', ones})
				ones++
			} else if zeros < numFix {
				seq = append(seq, layoutToken{'0', zeros})
				zeros++
			}
		}
	}
	return seq
}

func renderLayout(seq []layoutToken) []string {
	out := make([]string, len(seq))
	for i, tok := range seq {
		switch tok.kind {
		case 'x':
			out[i] = fmt.Sprintf("x[%d]", tok.idx)
		case '1':
			out[i] = "1'b1"
		default:
			out[i] = "1'b0"
		}
	}
	return out
}

func trunc(seq []layoutToken, n int) []layoutToken {
	if len(seq) > n {
		return seq[:n]
	}
	return seq
}

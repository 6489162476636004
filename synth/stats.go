package synth

import (
	"strconv"
	"strings"

	"github.com/silogic/majsynth/netlist"
)

// KV is one printed statistics entry. Key names and their order are part of
// the external interface consumed by downstream reporting; do not rename.
type KV struct {
	Key   string
	Value string
}

// FoldedBiasStats summarizes a folded-bias netlist. Derivable entirely from
// the netlist and its config; holds no construction state.
type FoldedBiasStats struct {
	N         int
	Threshold int
	WBits     int
	BiasK     int
	KBitsSet  []int
	FACount   int
	FALevels  int
	MajSignal string
}

func CollectFoldedBias(nl *netlist.Netlist, cfg BiasConfig) FoldedBiasStats {
	return FoldedBiasStats{
		N:         cfg.N,
		Threshold: cfg.Threshold,
		WBits:     cfg.WBits,
		BiasK:     cfg.BiasK,
		KBitsSet:  cfg.KBits,
		FACount:   len(nl.Ops),
		FALevels:  nl.MaxLevel(netlist.StageCSA),
		MajSignal: nl.SignalName(nl.MajSignal),
	}
}

func (s FoldedBiasStats) KeyValues() []KV {
	return []KV{
		{"n", strconv.Itoa(s.N)},
		{"threshold", strconv.Itoa(s.Threshold)},
		{"w_bits", strconv.Itoa(s.WBits)},
		{"bias_K", strconv.Itoa(s.BiasK)},
		{"K_bits_set", formatIntList(s.KBitsSet)},
		{"fa_count", strconv.Itoa(s.FACount)},
		{"fa_levels", strconv.Itoa(s.FALevels)},
		{"maj_signal", s.MajSignal},
	}
}

// BaselineStats summarizes a baseline-strict netlist. TotalLevels adds the
// comparator width to the CSA depth, since the ripple chain is strictly
// sequential.
type BaselineStats struct {
	N                 int
	Threshold         int
	ScaffoldP         int
	ScaffoldInputs    int
	ScaffoldThreshold int
	ComparatorWidth   int
	NumFixedPairs     int
	CinInit           int
	CSAFACount        int
	ComparatorFACount int
	TotalFACount      int
	CSALevels         int
	TotalLevels       int
	MajSignal         string
}

func CollectBaseline(nl *netlist.Netlist, cfg ScaffoldConfig) BaselineStats {
	csaCount := nl.CountOps(netlist.StageCSA)
	cmpCount := nl.CountOps(netlist.StageComparator)
	csaLevels := nl.MaxLevel(netlist.StageCSA)
	return BaselineStats{
		N:                 cfg.N,
		Threshold:         cfg.Threshold,
		ScaffoldP:         cfg.P,
		ScaffoldInputs:    cfg.ScaffoldInputs,
		ScaffoldThreshold: cfg.ScaffoldThreshold,
		ComparatorWidth:   cfg.ComparatorWidth,
		NumFixedPairs:     cfg.NumFixedPairs,
		CinInit:           1,
		CSAFACount:        csaCount,
		ComparatorFACount: cmpCount,
		TotalFACount:      csaCount + cmpCount,
		CSALevels:         csaLevels,
		TotalLevels:       csaLevels + cfg.ComparatorWidth,
		MajSignal:         nl.SignalName(nl.MajSignal),
	}
}

func (s BaselineStats) KeyValues() []KV {
	return []KV{
		{"n", strconv.Itoa(s.N)},
		{"threshold", strconv.Itoa(s.Threshold)},
		{"scaffold_p", strconv.Itoa(s.ScaffoldP)},
		{"scaffold_inputs", strconv.Itoa(s.ScaffoldInputs)},
		{"scaffold_threshold", strconv.Itoa(s.ScaffoldThreshold)},
		{"comparator_width", strconv.Itoa(s.ComparatorWidth)},
		{"num_fixed_pairs", strconv.Itoa(s.NumFixedPairs)},
		{"cin_init", strconv.Itoa(s.CinInit)},
		{"csa_fa_count", strconv.Itoa(s.CSAFACount)},
		{"comparator_fa_count", strconv.Itoa(s.ComparatorFACount)},
		{"total_fa_count", strconv.Itoa(s.TotalFACount)},
		{"csa_levels", strconv.Itoa(s.CSALevels)},
		{"total_levels", strconv.Itoa(s.TotalLevels)},
		{"maj_signal", s.MajSignal},
	}
}

func formatIntList(xs []int) string {
	if len(xs) == 0 {
		return "-"
	}
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = strconv.Itoa(x)
	}
	return strings.Join(parts, ", ")
}

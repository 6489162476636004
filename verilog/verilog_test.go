package verilog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silogic/majsynth/synth"
)

func TestFoldedBiasModule(t *testing.T) {
	nl, cfg, err := synth.BuildFoldedBias(9)
	require.NoError(t, err)
	src := FoldedBias(nl, cfg)

	require.Contains(t, src, "module maj_fb_9 (input  wire [8:0] x, output wire maj);")
	require.Contains(t, src, "// Parameters: th=5, w=3, K=3")
	require.Contains(t, src, "  wire K0 = 1'b1;")
	require.Contains(t, src, "  wire K1 = 1'b1;")
	require.NotContains(t, src, "wire K2")
	require.Contains(t, src, "endmodule")
	require.Contains(t, src, "// FA count (folded-bias, CSA-only) for n=9: total=9")

	require.Equal(t, 9, strings.Count(src, "  fa u_c"))
	require.Equal(t, 1, strings.Count(src, "assign maj = "))
}

func TestBaselineModule(t *testing.T) {
	nl, cfg, err := synth.BuildBaselineStrict(9)
	require.NoError(t, err)
	src := BaselineStrict(nl, cfg)

	require.Contains(t, src, "module maj_baseline_strict_9 (input  wire [8:0] x, output wire maj);")
	require.Contains(t, src, "// Scaffold parameters: p=4, N=2^4-1=15, th_N=8, paired constants=3")
	require.Contains(t, src, "  wire c2_0 = 1'b1;")
	require.Contains(t, src, "  wire c2_m = c2_4;")
	require.Contains(t, src, "  assign maj = c2_m;")
	require.Contains(t, src, "  fa u_th_0(.a(hw_0), .b(T0), .cin(c2_0), .sum(s2_0), .cout(c2_1));")
	require.Contains(t, src, "// FA count (baseline STRICT, scaffold) for n=9: CSA=11, CPA(th)=4, total=15")

	// One hw alias per comparator bit.
	for _, alias := range []string{"wire hw_0 = ", "wire hw_1 = ", "wire hw_2 = ", "wire hw_3 = "} {
		require.Contains(t, src, alias)
	}
}

func TestWrapperModules(t *testing.T) {
	sr, err := synth.BuildFoldedBiasScaffolded(9)
	require.NoError(t, err)
	src := FoldedBiasWrapper(9, sr.ScaffoldN, sr.Mapping, sr.Layout)

	require.Contains(t, src, "module maj_fb_majpath_9 (input  wire [8:0] x, output wire maj);")
	require.Contains(t, src, "  wire [10:0] x_big;")
	require.Contains(t, src, "maj_fb_11 u_fb_big(.x(x_big), .maj(maj));")
	require.Equal(t, sr.ScaffoldN, strings.Count(src, "  assign x_big["))
}

func TestBundleDeduplicatesModules(t *testing.T) {
	b := NewBundle(9)
	b.Add("maj_fb_9", "module maj_fb_9 ...")
	b.Add("maj_fb_9", "module maj_fb_9 duplicate")
	require.True(t, b.Has("maj_fb_9"))

	out := string(b.Bytes())
	require.Equal(t, 1, strings.Count(out, "module maj_fb_9"))
	require.Contains(t, out, "// Auto-generated majority circuits")
	require.Contains(t, out, "// n = 9")
}

func TestEmissionDeterministic(t *testing.T) {
	build := func() string {
		nl, cfg, err := synth.BuildBaselineStrict(9)
		require.NoError(t, err)
		return BaselineStrict(nl, cfg)
	}
	require.Equal(t, build(), build())
}

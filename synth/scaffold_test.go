package synth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFoldedBiasScaffoldMatchesMajority(t *testing.T) {
	for _, n := range []int{3, 5, 7, 9} {
		sr, err := BuildFoldedBiasScaffolded(n)
		require.NoError(t, err)
		require.Equal(t, n+2, sr.ScaffoldN)
		require.Equal(t, n, sr.Netlist.NbInputs)
		checkMajority(t, sr.Netlist, n)
	}
}

func TestBaselineScaffoldMatchesMajority(t *testing.T) {
	for _, n := range []int{3, 5, 7} {
		sr, err := BuildBaselineScaffolded(n)
		require.NoError(t, err)
		require.Equal(t, n+2, sr.ScaffoldN)
		checkMajority(t, sr.Netlist, n)
	}
}

func TestScaffoldFoldedNetlistNonEmpty(t *testing.T) {
	// The wrapper pays for the larger embedding; after constant folding it
	// must still be a valid circuit, never an empty one.
	sr, err := BuildFoldedBiasScaffolded(9)
	require.NoError(t, err)
	require.NotEmpty(t, sr.Netlist.Ops)
}

func TestScaffoldDeterministic(t *testing.T) {
	a, err := BuildFoldedBiasScaffolded(9)
	require.NoError(t, err)
	b, err := BuildFoldedBiasScaffolded(9)
	require.NoError(t, err)
	require.Equal(t, a.Layout, b.Layout)
	require.Equal(t, a.Netlist.Serialize(), b.Netlist.Serialize())
}

func TestScaffoldMappingCoversAllPositions(t *testing.T) {
	sr, err := BuildFoldedBiasScaffolded(5)
	require.NoError(t, err)
	require.Len(t, sr.Mapping, sr.ScaffoldN)

	seenX := make(map[string]int)
	ones, zeros := 0, 0
	for _, src := range sr.Mapping {
		switch src {
		case "1'b1":
			ones++
		case "1'b0":
			zeros++
		default:
			seenX[src]++
		}
	}
	require.Equal(t, 1, ones)
	require.Equal(t, 1, zeros)
	require.Len(t, seenX, 5)
	for src, count := range seenX {
		require.Equal(t, 1, count, "input %s placed %d times", src, count)
	}
}

func TestScaffoldLayoutEnumeration(t *testing.T) {
	layouts := scaffoldLayouts(5, 1, 7)
	require.Len(t, layouts, 4+scaffoldRandLayouts)
	labels := map[string]bool{}
	for _, l := range layouts {
		require.Len(t, l.seq, 7, "layout %s", l.label)
		require.False(t, labels[l.label], "duplicate label %s", l.label)
		labels[l.label] = true
	}
	require.True(t, labels["clustered"])
	require.True(t, labels["interleaved"])
	require.True(t, labels["alternating"])
	require.True(t, labels["alt_off1"])
	require.True(t, labels["rand0"])
	require.True(t, labels["rand11"])
}

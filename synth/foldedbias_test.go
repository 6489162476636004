package synth

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silogic/majsynth/netlist"
)

func assignmentFromMask(n, mask int) []bool {
	a := make([]bool, n)
	for i := range a {
		a[i] = mask>>i&1 == 1
	}
	return a
}

func isMajority(n, mask int) bool {
	return bits.OnesCount(uint(mask)) >= (n+1)/2
}

// checkMajority exhaustively compares a netlist against the majority
// function.
func checkMajority(t *testing.T, nl *netlist.Netlist, n int) {
	t.Helper()
	for mask := 0; mask < 1<<n; mask++ {
		got, err := nl.EvalOutput(assignmentFromMask(n, mask))
		require.NoError(t, err)
		require.Equal(t, isMajority(n, mask), got, "n=%d mask=%b", n, mask)
	}
}

func TestFoldedBiasConfig(t *testing.T) {
	cfg := NewBiasConfig(9)
	require.Equal(t, 5, cfg.Threshold)
	require.Equal(t, 3, cfg.WBits)
	require.Equal(t, 3, cfg.BiasK)
	require.Equal(t, []int{0, 1}, cfg.KBits)

	cfg = NewBiasConfig(3)
	require.Equal(t, 2, cfg.Threshold)
	require.Equal(t, 1, cfg.WBits)
	require.Equal(t, 0, cfg.BiasK)
	require.Empty(t, cfg.KBits)
}

func TestFoldedBiasN9(t *testing.T) {
	nl, cfg, err := BuildFoldedBias(9)
	require.NoError(t, err)

	stats := CollectFoldedBias(nl, cfg)
	require.Equal(t, 9, stats.FACount)
	require.Equal(t, 6, stats.FALevels)
	require.Equal(t, "maj_fb_9", nl.Name)

	checkMajority(t, nl, 9)
}

func TestFoldedBiasMatchesMajority(t *testing.T) {
	for _, n := range []int{3, 5, 7, 11} {
		nl, _, err := BuildFoldedBias(n)
		require.NoError(t, err)
		checkMajority(t, nl, n)
	}
}

func TestFoldedBiasN5TrueCount(t *testing.T) {
	nl, _, err := BuildFoldedBias(5)
	require.NoError(t, err)
	trues := 0
	for mask := 0; mask < 1<<5; mask++ {
		got, err := nl.EvalOutput(assignmentFromMask(5, mask))
		require.NoError(t, err)
		if got {
			trues++
		}
	}
	require.Equal(t, 16, trues)
}

func TestLargeNSampled(t *testing.T) {
	// Exhaustive checks stop being practical past n=11; sample assignments
	// with a fixed seed instead.
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{17, 33} {
		fb, _, err := BuildFoldedBias(n)
		require.NoError(t, err)
		bs, _, err := BuildBaselineStrict(n)
		require.NoError(t, err)

		for trial := 0; trial < 200; trial++ {
			a := make([]bool, n)
			ones := 0
			for i := range a {
				a[i] = rng.Intn(2) == 1
				if a[i] {
					ones++
				}
			}
			want := ones >= (n+1)/2

			got, err := fb.EvalOutput(a)
			require.NoError(t, err)
			require.Equal(t, want, got, "folded-bias n=%d trial=%d", n, trial)

			got, err = bs.EvalOutput(a)
			require.NoError(t, err)
			require.Equal(t, want, got, "baseline n=%d trial=%d", n, trial)
		}
	}
}

func TestFoldedBiasRejectsBadSizes(t *testing.T) {
	for _, n := range []int{0, 1, 2, 4, 10} {
		_, _, err := BuildFoldedBias(n)
		require.Error(t, err, "n=%d", n)
	}
}

func TestFoldedBiasStatsKeyOrder(t *testing.T) {
	nl, cfg, err := BuildFoldedBias(9)
	require.NoError(t, err)
	kvs := CollectFoldedBias(nl, cfg).KeyValues()
	var keys []string
	for _, kv := range kvs {
		keys = append(keys, kv.Key)
	}
	require.Equal(t, []string{
		"n", "threshold", "w_bits", "bias_K", "K_bits_set",
		"fa_count", "fa_levels", "maj_signal",
	}, keys)
}

func TestFoldedBiasDeterministic(t *testing.T) {
	a, _, err := BuildFoldedBias(9)
	require.NoError(t, err)
	b, _, err := BuildFoldedBias(9)
	require.NoError(t, err)
	require.Equal(t, a.Serialize(), b.Serialize())
}

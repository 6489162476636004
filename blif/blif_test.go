package blif

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/silogic/majsynth/synth"
)

type testGate struct {
	inputs []string
	output string
	cubes  []string
}

// parseBlif splits the emitted text into gates in file order, keeping the
// model metadata for the structural checks.
func parseBlif(t *testing.T, text string) (model string, inputs []string, gates []testGate) {
	t.Helper()
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, ".model "):
			model = strings.TrimPrefix(line, ".model ")
		case strings.HasPrefix(line, ".inputs "):
			inputs = strings.Fields(strings.TrimPrefix(line, ".inputs "))
		case strings.HasPrefix(line, ".names "):
			fields := strings.Fields(line)[1:]
			g := testGate{output: fields[len(fields)-1], inputs: fields[:len(fields)-1]}
			for i+1 < len(lines) && !strings.HasPrefix(lines[i+1], ".") {
				i++
				g.cubes = append(g.cubes, lines[i])
			}
			gates = append(gates, g)
		case line == ".outputs maj" || line == ".end" || line == "":
		default:
			t.Fatalf("unexpected line %q", line)
		}
	}
	return model, inputs, gates
}

// evalBlif evaluates the gate list in file order under one assignment.
// Constant nodes may appear after their uses (BLIF does not require
// definition before use), so they are registered first.
func evalBlif(t *testing.T, gates []testGate, assignment map[string]bool) bool {
	t.Helper()
	values := make(map[string]bool, len(assignment)+len(gates))
	for k, v := range assignment {
		values[k] = v
	}
	for _, g := range gates {
		if len(g.inputs) != 0 {
			continue
		}
		fired := false
		for _, cube := range g.cubes {
			require.Equal(t, "1", cube, "constant node %s", g.output)
			fired = true
		}
		values[g.output] = fired
	}
	var out string
	for _, g := range gates {
		if len(g.inputs) == 0 {
			continue
		}
		fired := false
		for _, cube := range g.cubes {
			parts := strings.Fields(cube)
			require.Len(t, parts, 2, "cube %q of %s", cube, g.output)
			require.Equal(t, "1", parts[1])
			pattern := parts[0]
			require.Len(t, pattern, len(g.inputs))
			match := true
			for i, in := range g.inputs {
				v, ok := values[in]
				require.True(t, ok, "gate %s uses undefined node %s", g.output, in)
				if v != (pattern[i] == '1') {
					match = false
					break
				}
			}
			if match {
				fired = true
			}
		}
		values[g.output] = fired
		out = g.output
	}
	require.Equal(t, "maj", out, "the final gate must drive the output")
	return values["maj"]
}

func checkBlifMajority(t *testing.T, n int, majOnly bool) {
	t.Helper()
	nl, _, err := synth.BuildFoldedBias(n)
	require.NoError(t, err)
	text := string(Bytes(nl.ConstantFold(), Options{MajOnly: majOnly}))

	model, inputs, gates := parseBlif(t, text)
	require.Equal(t, fmt.Sprintf("maj_fb_%d", n), model)
	require.Len(t, inputs, n)

	for mask := 0; mask < 1<<n; mask++ {
		assignment := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			assignment[fmt.Sprintf("x%d", i)] = mask>>i&1 == 1
		}
		want := bits.OnesCount(uint(mask)) >= (n+1)/2
		require.Equal(t, want, evalBlif(t, gates, assignment), "n=%d mask=%b majOnly=%v", n, mask, majOnly)
	}
}

func TestBlifMajOnlyComputesMajority(t *testing.T) {
	for _, n := range []int{3, 5, 9} {
		checkBlifMajority(t, n, true)
	}
}

func TestBlifHybridComputesMajority(t *testing.T) {
	for _, n := range []int{3, 5, 9} {
		checkBlifMajority(t, n, false)
	}
}

func TestBlifBaselineComputesMajority(t *testing.T) {
	nl, _, err := synth.BuildBaselineStrict(5)
	require.NoError(t, err)
	_, _, gates := parseBlif(t, string(Bytes(nl.ConstantFold(), Options{MajOnly: true})))

	for mask := 0; mask < 1<<5; mask++ {
		assignment := make(map[string]bool, 5)
		for i := 0; i < 5; i++ {
			assignment[fmt.Sprintf("x%d", i)] = mask>>i&1 == 1
		}
		want := bits.OnesCount(uint(mask)) >= 3
		require.Equal(t, want, evalBlif(t, gates, assignment), "mask=%b", mask)
	}
}

func TestBlifCanonicalForm(t *testing.T) {
	nl, _, err := synth.BuildFoldedBias(9)
	require.NoError(t, err)
	_, _, gates := parseBlif(t, string(Bytes(nl.ConstantFold(), Options{MajOnly: true})))

	for _, g := range gates {
		require.True(t, sort.StringsAreSorted(g.inputs), "gate %s inputs %v not sorted", g.output, g.inputs)
		seen := map[string]bool{}
		for _, cube := range g.cubes {
			require.False(t, seen[cube], "gate %s has duplicate cube %q", g.output, cube)
			seen[cube] = true
		}
		if len(g.inputs) == 3 {
			require.True(t, sort.StringsAreSorted(g.cubes), "gate %s cubes %v not sorted", g.output, g.cubes)
		}
	}
}

func TestBlifDeterministic(t *testing.T) {
	build := func() []byte {
		nl, _, err := synth.BuildFoldedBias(9)
		require.NoError(t, err)
		return Bytes(nl.ConstantFold(), Options{MajOnly: true})
	}
	require.Equal(t, build(), build())
}

func TestSorted3Permutation(t *testing.T) {
	names, perm := sorted3("c", "a", "b")
	require.Equal(t, [3]string{"a", "b", "c"}, names)
	require.Equal(t, [3]int{1, 2, 0}, perm)
	require.Equal(t, "bca", permutePattern("abc", perm))
}

func TestMaj3InversionMask(t *testing.T) {
	// sum = MAJ(MAJ(NOT a, b, c), a, NOT cout) over all eight inputs.
	w := &writer{}
	w.emitMaj3("a", "b", "c", "t", mask3{true, false, false})
	require.Equal(t, []string{
		".names a b c t",
		"001 1",
		"010 1",
		"011 1",
		"111 1",
	}, w.lines)
}

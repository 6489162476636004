// Package synth builds majority netlists: the folded-bias and
// baseline-strict architectures plus their experimental scaffold-embedded
// wrappers, and the read-only statistics collected from the results.
package synth

import "fmt"

// Architecture is the closed set of circuit architectures a build can
// request.
type Architecture int

const (
	FoldedBias Architecture = iota
	BaselineStrict
	FoldedBiasScaffolded
	BaselineScaffolded
)

func (a Architecture) String() string {
	switch a {
	case FoldedBias:
		return "folded_bias"
	case BaselineStrict:
		return "baseline_strict"
	case FoldedBiasScaffolded:
		return "folded_bias_majpath"
	case BaselineScaffolded:
		return "baseline_majpath"
	}
	return fmt.Sprintf("architecture(%d)", int(a))
}

// CheckN validates the majority input size.
func CheckN(n int) error {
	if n < 3 || n%2 == 0 {
		return fmt.Errorf("majority size n must be odd and >= 3, got %d", n)
	}
	return nil
}

// BiasConfig holds the folded-bias parameters: adding K to the input
// population count makes the carry into column WBits equal the majority
// decision.
type BiasConfig struct {
	N         int
	Threshold int
	WBits     int
	BiasK     int
	// KBits lists the bit positions of BiasK that are set.
	KBits []int
}

func NewBiasConfig(n int) BiasConfig {
	th := (n + 1) / 2
	w := ceilLog2(th)
	k := (1 << w) - th
	var bits []int
	for j := 0; j < w; j++ {
		if (k>>j)&1 == 1 {
			bits = append(bits, j)
		}
	}
	return BiasConfig{N: n, Threshold: th, WBits: w, BiasK: k, KBits: bits}
}

// ScaffoldConfig holds the baseline-strict parameters: the input set is
// embedded into the next full scaffold of size 2^P - 1 with paired 1/0
// constants, and a width-P comparator tests the population count against
// the scaffold threshold.
type ScaffoldConfig struct {
	N                 int
	Threshold         int
	P                 int
	ScaffoldInputs    int
	ScaffoldThreshold int
	ComparatorWidth   int
	NumFixedPairs     int
}

func NewScaffoldConfig(n int) ScaffoldConfig {
	p := ceilLog2(n + 1)
	scaffold := (1 << p) - 1
	return ScaffoldConfig{
		N:                 n,
		Threshold:         (n + 1) / 2,
		P:                 p,
		ScaffoldInputs:    scaffold,
		ScaffoldThreshold: (scaffold + 1) / 2,
		ComparatorWidth:   p,
		NumFixedPairs:     (scaffold-1)/2 - (n-1)/2,
	}
}

// ceilLog2 returns the smallest w with 2^w >= x.
func ceilLog2(x int) int {
	w := 0
	for (1 << w) < x {
		w++
	}
	return w
}

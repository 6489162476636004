package gadget

import (
	"math/bits"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/silogic/majsynth/synth"
)

func boolToVar(b bool) frontend.Variable {
	if b {
		return 1
	}
	return 0
}

func majorityAssignment(n, mask int, baseline bool) *MajorityCircuit {
	c := &MajorityCircuit{X: make([]frontend.Variable, n), Baseline: baseline}
	for i := 0; i < n; i++ {
		c.X[i] = boolToVar(mask>>i&1 == 1)
	}
	c.Maj = boolToVar(bits.OnesCount(uint(mask)) >= (n+1)/2)
	return c
}

func TestMajorityCircuitFoldedBias(t *testing.T) {
	const n = 5
	circuit := &MajorityCircuit{X: make([]frontend.Variable, n)}
	for mask := 0; mask < 1<<n; mask++ {
		assignment := majorityAssignment(n, mask, false)
		err := test.IsSolved(circuit, assignment, ecc.BN254.ScalarField())
		require.NoError(t, err, "mask=%b", mask)
	}
}

func TestMajorityCircuitBaseline(t *testing.T) {
	const n = 5
	circuit := &MajorityCircuit{X: make([]frontend.Variable, n), Baseline: true}
	for mask := 0; mask < 1<<n; mask++ {
		assignment := majorityAssignment(n, mask, true)
		err := test.IsSolved(circuit, assignment, ecc.BN254.ScalarField())
		require.NoError(t, err, "mask=%b", mask)
	}
}

func TestMajorityCircuitRejectsWrongOutput(t *testing.T) {
	const n = 3
	circuit := &MajorityCircuit{X: make([]frontend.Variable, n)}
	assignment := majorityAssignment(n, 0b111, false)
	assignment.Maj = 0 // majority of all-ones is 1
	err := test.IsSolved(circuit, assignment, ecc.BN254.ScalarField())
	require.Error(t, err)
}

func TestFromNetlistRejectsWidthMismatch(t *testing.T) {
	nl, _, err := synth.BuildFoldedBias(5)
	require.NoError(t, err)
	_, err = FromNetlist(nil, nl, make([]frontend.Variable, 3))
	require.Error(t, err)
}

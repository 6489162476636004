// Package majsynth synthesizes n-input majority circuits from full adders
// and emits them as structural Verilog, canonical BLIF, and gnark gadgets.
package majsynth

import (
	"fmt"

	"github.com/silogic/majsynth/netlist"
	"github.com/silogic/majsynth/synth"
)

// Config selects the input width and the architectures to synthesize.
type Config struct {
	// N is the input count; it must be odd and at least 3.
	N int

	// FoldedBias enables the CSA-only folded-bias architecture.
	FoldedBias bool
	// BaselineStrict enables the scaffold-plus-comparator baseline.
	BaselineStrict bool
	// FoldedBiasScaffold enables the constant-fixing wrapper around the
	// size N+2 folded-bias design. Requires FoldedBias.
	FoldedBiasScaffold bool
	// BaselineScaffold enables the constant-fixing wrapper around the
	// size N+2 baseline design. Requires BaselineStrict.
	BaselineScaffold bool

	// MajOnlyFA expands full adders in BLIF with majority cells only,
	// instead of the hybrid XOR3 plus MAJ3 form.
	MajOnlyFA bool
}

// DefaultConfig enables the two direct architectures with majority-only
// BLIF expansion.
func DefaultConfig(n int) Config {
	return Config{
		N:              n,
		FoldedBias:     true,
		BaselineStrict: true,
		MajOnlyFA:      true,
	}
}

func (c Config) Validate() error {
	if err := synth.CheckN(c.N); err != nil {
		return err
	}
	if !c.FoldedBias && !c.BaselineStrict && !c.FoldedBiasScaffold && !c.BaselineScaffold {
		return fmt.Errorf("majsynth: no architecture enabled")
	}
	if c.FoldedBiasScaffold && !c.FoldedBias {
		return fmt.Errorf("majsynth: FoldedBiasScaffold requires FoldedBias")
	}
	if c.BaselineScaffold && !c.BaselineStrict {
		return fmt.Errorf("majsynth: BaselineScaffold requires BaselineStrict")
	}
	return nil
}

// ArchResult is one synthesized architecture: the emit-ready netlist after
// constant folding, its canonical BLIF, and the collected statistics.
type ArchResult struct {
	Arch    synth.Architecture
	Netlist *netlist.Netlist
	// FACount is the full-adder count of the emitted netlist.
	FACount int
	// Stats holds the printable key/value block; empty for the scaffold
	// wrappers, which report only their FA count.
	Stats []synth.KV
	// Layout and ScaffoldN describe the winning wrapper layout; set only
	// for the scaffold architectures.
	Layout    string
	ScaffoldN int
	// BLIF is the canonical serialization of Netlist.
	BLIF []byte
}

// Result is the full synthesis output for one Config.
type Result struct {
	Config Config
	// Verilog is the single structural bundle holding every enabled
	// module over the shared fa primitive.
	Verilog []byte
	// Archs lists the enabled architectures in fixed order: folded-bias,
	// baseline, then the two wrappers.
	Archs []ArchResult
}

// Arch returns the result for the given architecture, if enabled.
func (r *Result) Arch(a synth.Architecture) (ArchResult, bool) {
	for _, ar := range r.Archs {
		if ar.Arch == a {
			return ar, true
		}
	}
	return ArchResult{}, false
}

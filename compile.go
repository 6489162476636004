package majsynth

import (
	"github.com/consensys/gnark/logger"

	"github.com/silogic/majsynth/blif"
	"github.com/silogic/majsynth/netlist"
	"github.com/silogic/majsynth/synth"
	"github.com/silogic/majsynth/verilog"
)

// Compile synthesizes every architecture the config enables and renders
// the shared Verilog bundle plus one canonical BLIF per architecture. The
// output is fully deterministic for a given config.
func Compile(cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.Logger()

	res := &Result{Config: cfg}
	bundle := verilog.NewBundle(cfg.N)
	opts := blif.Options{MajOnly: cfg.MajOnlyFA}

	if cfg.FoldedBias {
		nl, bcfg, err := synth.BuildFoldedBias(cfg.N)
		if err != nil {
			return nil, err
		}
		bundle.Add(nl.Name, verilog.FoldedBias(nl, bcfg))
		folded := nl.ConstantFold()
		res.Archs = append(res.Archs, ArchResult{
			Arch:    synth.FoldedBias,
			Netlist: folded,
			FACount: len(nl.Ops),
			Stats:   synth.CollectFoldedBias(nl, bcfg).KeyValues(),
			BLIF:    blif.Bytes(folded, opts),
		})
		log.Info().
			Int("n", cfg.N).
			Int("faCount", len(nl.Ops)).
			Int("faLevels", nl.MaxLevel(netlist.StageCSA)).
			Msg("synthesized folded-bias")
	}

	if cfg.BaselineStrict {
		nl, scfg, err := synth.BuildBaselineStrict(cfg.N)
		if err != nil {
			return nil, err
		}
		bundle.Add(nl.Name, verilog.BaselineStrict(nl, scfg))
		folded := nl.ConstantFold()
		res.Archs = append(res.Archs, ArchResult{
			Arch:    synth.BaselineStrict,
			Netlist: folded,
			FACount: len(nl.Ops),
			Stats:   synth.CollectBaseline(nl, scfg).KeyValues(),
			BLIF:    blif.Bytes(folded, opts),
		})
		log.Info().
			Int("n", cfg.N).
			Int("csaFaCount", nl.CountOps(netlist.StageCSA)).
			Int("comparatorWidth", scfg.ComparatorWidth).
			Msg("synthesized baseline-strict")
	}

	if cfg.FoldedBiasScaffold {
		sr, err := synth.BuildFoldedBiasScaffolded(cfg.N)
		if err != nil {
			return nil, err
		}
		bigNl, bigCfg, err := synth.BuildFoldedBias(sr.ScaffoldN)
		if err != nil {
			return nil, err
		}
		bundle.Add(bigNl.Name, verilog.FoldedBias(bigNl, bigCfg))
		bundle.Add(sr.Netlist.Name, verilog.FoldedBiasWrapper(cfg.N, sr.ScaffoldN, sr.Mapping, sr.Layout))
		res.Archs = append(res.Archs, ArchResult{
			Arch:      synth.FoldedBiasScaffolded,
			Netlist:   sr.Netlist,
			FACount:   len(sr.Netlist.Ops),
			Layout:    sr.Layout,
			ScaffoldN: sr.ScaffoldN,
			BLIF:      blif.Bytes(sr.Netlist, opts),
		})
		log.Info().
			Int("n", cfg.N).
			Int("scaffoldN", sr.ScaffoldN).
			Str("layout", sr.Layout).
			Int("faCount", len(sr.Netlist.Ops)).
			Msg("synthesized folded-bias scaffold wrapper")
	}

	if cfg.BaselineScaffold {
		sr, err := synth.BuildBaselineScaffolded(cfg.N)
		if err != nil {
			return nil, err
		}
		bigNl, bigCfg, err := synth.BuildBaselineStrict(sr.ScaffoldN)
		if err != nil {
			return nil, err
		}
		bundle.Add(bigNl.Name, verilog.BaselineStrict(bigNl, bigCfg))
		bundle.Add(sr.Netlist.Name, verilog.BaselineWrapper(cfg.N, sr.ScaffoldN, sr.Mapping, sr.Layout))
		res.Archs = append(res.Archs, ArchResult{
			Arch:      synth.BaselineScaffolded,
			Netlist:   sr.Netlist,
			FACount:   len(sr.Netlist.Ops),
			Layout:    sr.Layout,
			ScaffoldN: sr.ScaffoldN,
			BLIF:      blif.Bytes(sr.Netlist, opts),
		})
		log.Info().
			Int("n", cfg.N).
			Int("scaffoldN", sr.ScaffoldN).
			Str("layout", sr.Layout).
			Int("faCount", len(sr.Netlist.Ops)).
			Msg("synthesized baseline scaffold wrapper")
	}

	res.Verilog = bundle.Bytes()
	return res, nil
}

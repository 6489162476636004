package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/silogic/majsynth"
	"github.com/silogic/majsynth/draw"
	"github.com/silogic/majsynth/synth"
)

// genFileConfig mirrors the gen command's flags for config-file driven runs.
type genFileConfig struct {
	N              int    `yaml:"n"`
	FoldedBias     *bool  `yaml:"folded_bias"`
	BaselineStrict *bool  `yaml:"baseline_strict"`
	FoldedBiasMajP *bool  `yaml:"folded_bias_majpath"`
	BaselineMajP   *bool  `yaml:"baseline_majpath"`
	MajOnlyFA      *bool  `yaml:"maj_only_fa"`
	OutDir         string `yaml:"out_dir"`
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Synthesize the majority circuits and write Verilog and BLIF",
	RunE:  runGen,
}

func init() {
	genCmd.Flags().Int("n", 9, "Majority input size (odd, >= 3)")
	genCmd.Flags().String("out", ".", "Output directory")
	genCmd.Flags().String("config", "", "YAML config file; explicit flags override it")
	genCmd.Flags().Bool("folded-bias", true, "Emit the folded-bias architecture")
	genCmd.Flags().Bool("baseline", true, "Emit the baseline-strict architecture")
	genCmd.Flags().Bool("fb-majpath", false, "Emit the folded-bias scaffold wrapper")
	genCmd.Flags().Bool("baseline-majpath", false, "Emit the baseline scaffold wrapper")
	genCmd.Flags().Bool("hybrid-fa", false, "Expand BLIF full adders as XOR3+MAJ3 instead of MAJ-only")
	genCmd.Flags().Bool("dot", false, "Also write a Graphviz dot file per architecture")
	rootCmd.AddCommand(genCmd)
}

func runGen(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	n, _ := flags.GetInt("n")
	outDir, _ := flags.GetString("out")
	foldedBias, _ := flags.GetBool("folded-bias")
	baseline, _ := flags.GetBool("baseline")
	fbMajPath, _ := flags.GetBool("fb-majpath")
	bsMajPath, _ := flags.GetBool("baseline-majpath")
	hybrid, _ := flags.GetBool("hybrid-fa")

	if path, _ := flags.GetString("config"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		var fc genFileConfig
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
		if fc.N != 0 && !flags.Changed("n") {
			n = fc.N
		}
		if fc.OutDir != "" && !flags.Changed("out") {
			outDir = fc.OutDir
		}
		override := func(dst *bool, src *bool, flag string) {
			if src != nil && !flags.Changed(flag) {
				*dst = *src
			}
		}
		override(&foldedBias, fc.FoldedBias, "folded-bias")
		override(&baseline, fc.BaselineStrict, "baseline")
		override(&fbMajPath, fc.FoldedBiasMajP, "fb-majpath")
		override(&bsMajPath, fc.BaselineMajP, "baseline-majpath")
		if fc.MajOnlyFA != nil && !flags.Changed("hybrid-fa") {
			hybrid = !*fc.MajOnlyFA
		}
	}

	cfg := majsynth.Config{
		N:                  n,
		FoldedBias:         foldedBias,
		BaselineStrict:     baseline,
		FoldedBiasScaffold: fbMajPath,
		BaselineScaffold:   bsMajPath,
		MajOnlyFA:          !hybrid,
	}
	res, err := majsynth.Compile(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	outV := filepath.Join(outDir, fmt.Sprintf("maj%d_generated_canon.v", n))
	if err := os.WriteFile(outV, res.Verilog, 0o644); err != nil {
		return err
	}
	fmt.Println("Wrote Verilog:", outV)
	for _, ar := range res.Archs {
		fmt.Printf("FA count [%s]: %d\n", ar.Arch, ar.FACount)
	}

	printStats := func(title string, kvs []synth.KV) {
		if len(kvs) == 0 {
			return
		}
		fmt.Printf("\n[%s]\n", title)
		for _, kv := range kvs {
			fmt.Printf("  %s: %s\n", kv.Key, kv.Value)
		}
	}
	if ar, ok := res.Arch(synth.FoldedBias); ok {
		printStats("Folded-Bias Stats", ar.Stats)
	}
	if ar, ok := res.Arch(synth.BaselineStrict); ok {
		printStats("Baseline STRICT Stats", ar.Stats)
	}

	writeDot, _ := flags.GetBool("dot")
	for _, ar := range res.Archs {
		blifPath := filepath.Join(outDir, ar.Netlist.Name+".blif")
		if err := os.WriteFile(blifPath, ar.BLIF, 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote BLIF (%s): %s\n", ar.Arch, blifPath)
		if writeDot {
			dotPath := filepath.Join(outDir, ar.Netlist.Name+".dot")
			if err := os.WriteFile(dotPath, draw.Dot(ar.Netlist), 0o644); err != nil {
				return err
			}
			log.Debug().Str("path", dotPath).Msg("wrote dot")
		}
	}
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/chaoskb/internal/config"
	"github.com/marcus/chaoskb/internal/output"
	"github.com/marcus/chaoskb/internal/remap"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate one mapping and print it",
	Long: `Generate a single mapping the way a shuffle would and print a sample of it.
Use --seed to reproduce a mapping and --all to print every entry.`,
	GroupID: "core",
	Example: `  chaoskb sample --seed 42
  chaoskb sample --probability 1 --all
  chaoskb sample --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		jsonOutput, _ := cmd.Flags().GetBool("json")
		return runSample(cmd, cfg, all, jsonOutput)
	},
}

type sampleEntry struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type sampleResult struct {
	Seed    int64         `json:"seed,omitempty"`
	Keys    int           `json:"keys"`
	Entries []sampleEntry `json:"entries"`
	Dropped []string      `json:"dropped"`
}

func runSample(cmd *cobra.Command, c *config.Config, all, jsonOutput bool) error {
	out := cmd.OutOrStdout()
	m := remap.NewGenerator(c.Seed, remap.WithProbability(c.Probability)).Generate()

	if jsonOutput {
		res := sampleResult{Seed: c.Seed, Keys: m.Len(), Entries: []sampleEntry{}, Dropped: []string{}}
		for _, e := range m.Entries() {
			res.Entries = append(res.Entries, sampleEntry{From: e.From.Label(), To: e.To.Label()})
		}
		for _, k := range m.Dropped() {
			res.Dropped = append(res.Dropped, k.Label())
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	n := c.SampleSize
	if all {
		n = m.Len()
	}
	output.SetOutput(out)
	output.Success("Remapped %d keys", m.Len())
	fmt.Fprintln(out)
	fmt.Fprint(out, output.FormatSample(m, n))
	if dropped := m.Dropped(); len(dropped) > 0 {
		labels := make([]string, 0, len(dropped))
		for _, k := range dropped {
			labels = append(labels, k.Label())
		}
		fmt.Fprintf(out, "\nDropped special keys (no target left): %v\n", labels)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	cfg.BindFlags(sampleCmd.Flags())
	sampleCmd.Flags().Bool("all", false, "Print every entry instead of a sample")
	sampleCmd.Flags().Bool("json", false, "Output as JSON")
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/touchboard/internal/adapters/dataset"
	"github.com/okian/touchboard/internal/sampledata"
)

func newSampleCmd(st *state) *cobra.Command {
	cfg := sampledata.DefaultConfig()
	var out string
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Generate a synthetic player spreadsheet.",
		Long: `Generate a synthetic player spreadsheet for demos and tests.

The output format follows the file extension (xlsx, csv or parquet) and
defaults to the configured data_path. The same seed always produces the
same players.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				out = st.cfg.DataPath
			}
			if _, err := dataset.FormatOf(out); err != nil {
				return err
			}
			ds, err := sampledata.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if err := dataset.WriteFile(out, ds); err != nil {
				return err
			}
			_, err = summaryColor.Fprintf(cmd.OutOrStdout(), "Wrote %d players to %s\n", ds.Len(), out)
			return err
		},
	}
	cmd.Flags().IntVarP(&cfg.Players, "players", "n", cfg.Players, "Number of players to generate")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().Float64Var(&cfg.MissingRate, "missing-rate", cfg.MissingRate, "Chance that an optional cell is left blank")
	cmd.Flags().StringVar(&out, "out", "", "Output file (default data_path)")
	return cmd
}

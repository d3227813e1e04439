package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/touchboard/internal/adapters/dataset"
	"github.com/okian/touchboard/internal/domain/player"
)

func newConvertCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <src> <dst>",
		Short: "Convert a player spreadsheet between xlsx, csv and parquet.",
		Long: `Convert a player spreadsheet between xlsx, csv and parquet.

Formats follow the file extensions. The source is validated exactly as the
server would load it, so convert doubles as a check of an input file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			if _, err := dataset.FormatOf(dst); err != nil {
				return err
			}
			records, err := dataset.ReadFile(cmd.Context(), src, st.cfg.Sheet)
			if err != nil {
				return err
			}
			if err := dataset.WriteFile(dst, player.NewDataset(records)); err != nil {
				return err
			}
			_, err = summaryColor.Fprintf(cmd.OutOrStdout(), "Converted %d players from %s to %s\n", len(records), src, dst)
			return err
		},
	}
}

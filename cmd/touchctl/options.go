package main

import (
	"github.com/spf13/cobra"
)

func newOptionsCmd(st *state) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the competitions, positions, teams and ranges in the dataset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(output, outputTable, outputJSON); err != nil {
				return err
			}
			svc, err := st.service(cmd.Context())
			if err != nil {
				return err
			}
			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), svc.Options())
			}
			return writeOptionsTable(cmd.OutOrStdout(), svc.Options())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table or json")
	return cmd
}

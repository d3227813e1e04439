package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/okian/touchboard/internal/adapters/dataset"
	app "github.com/okian/touchboard/internal/app"
	"github.com/okian/touchboard/internal/config"
	"github.com/okian/touchboard/pkg/logger"
)

// Set by the linker at release time.
var version = "dev"

// state is shared by subcommands once the root pre-run has resolved config.
type state struct {
	cfg *config.Config
}

// service loads the configured spreadsheet and wraps it in a query service.
func (s *state) service(ctx context.Context) (*app.Service, error) {
	ds, err := dataset.NewLoader(s.cfg.DataPath, dataset.WithSheet(s.cfg.Sheet)).Load(ctx)
	if err != nil {
		return nil, err
	}
	return app.New(ds,
		app.WithDefaultUsageMin(s.cfg.DefaultUsageMin),
		app.WithMaxResultRows(s.cfg.MaxResultRows),
	), nil
}

func newRootCmd() *cobra.Command {
	var (
		dataPath string
		sheet    string
		noColor  bool
		verbose  bool
	)
	st := &state{}

	root := &cobra.Command{
		Use:   "touchctl",
		Short: "Filter and summarize player touch and OBV spreadsheets.",
		Long: `Filter and summarize player touch and OBV spreadsheets.

Reads the same xlsx, csv or parquet file the dashboard serves and runs the
same filter pipeline, printing a table, JSON or CSV.

Examples:
  # Centre backs in the Premier League, most touches first
  touchctl query --competition "Premier League" --position "Centre Back"

  # Dashboard defaults, top 20 by OBV rank, as JSON
  touchctl query --defaults --sort obv_rank --limit 20 --output json

  # Generate a demo workbook and convert it to parquet
  touchctl sample --out touch_analysis.xlsx
  touchctl convert touch_analysis.xlsx touch_analysis.parquet`,
		Version:            version,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			if dataPath != "" {
				cfg.DataPath = dataPath
			}
			if sheet != "" {
				cfg.Sheet = sheet
			}
			if noColor {
				color.NoColor = true
			}

			format, _ := logger.ParseFormat(cfg.LogFormat) // validated by config.Load
			if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(format)); err != nil {
				return fmt.Errorf("failed to initialize logging: %w", err)
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			if err := logger.SetLevelString(level); err != nil {
				return err
			}

			st.cfg = cfg
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&dataPath, "data", "", "Spreadsheet to read (overrides data_path)")
	root.PersistentFlags().StringVar(&sheet, "sheet", "", "Workbook sheet to read (xlsx only)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(
		newQueryCmd(st),
		newOptionsCmd(st),
		newSampleCmd(st),
		newConvertCmd(st),
	)
	return root
}

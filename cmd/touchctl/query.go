package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/touchboard/internal/adapters/dataset"
	"github.com/okian/touchboard/internal/domain/filter"
	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/internal/domain/types"
)

type queryFlags struct {
	competitions []string
	positions    []string
	teams        []string

	ageMin, ageMax     float64
	usageMin, usageMax float64
	defaults           bool

	sort  string
	order string
	limit int

	output     string
	outputFile string
}

func newQueryCmd(st *state) *cobra.Command {
	f := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Filter players and print the table and summary.",
		Long: `Filter players by competition, position, team, age and usage, then print the
matching rows with their count and mean touches per 90, OBV and OBV rank.

Category flags repeat or take comma-separated values; an empty category
imposes no restriction. Ranges are inclusive. A range with one bound is open
on the other side. --defaults starts from the dashboard's initial criteria.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkOutput(f.output, outputTable, outputJSON, outputCSV); err != nil {
				return err
			}
			svc, err := st.service(cmd.Context())
			if err != nil {
				return err
			}

			var base filter.Criteria
			if f.defaults {
				base = svc.Defaults()
			}
			q, err := f.query(cmd.Flags().Changed, base)
			if err != nil {
				return err
			}
			res, err := svc.Query(cmd.Context(), q)
			if err != nil {
				return err
			}

			if f.outputFile != "" {
				if err := dataset.WriteFile(f.outputFile, player.NewDataset(res.Players)); err != nil {
					return err
				}
				if _, err := summaryColor.Fprintf(cmd.OutOrStdout(), "Wrote %d players to %s\n", len(res.Players), f.outputFile); err != nil {
					return err
				}
				return writeTruncated(cmd.OutOrStdout(), res)
			}
			return writeResult(cmd.OutOrStdout(), f.output, res)
		},
	}

	fl := cmd.Flags()
	fl.StringSliceVar(&f.competitions, "competition", nil, "Competitions to keep (repeatable)")
	fl.StringSliceVar(&f.positions, "position", nil, "Positions to keep (repeatable)")
	fl.StringSliceVar(&f.teams, "team", nil, "Teams to keep (repeatable)")
	fl.Float64Var(&f.ageMin, "age-min", 0, "Minimum age, inclusive")
	fl.Float64Var(&f.ageMax, "age-max", 0, "Maximum age, inclusive")
	fl.Float64Var(&f.usageMin, "usage-min", 0, "Minimum usage percentage, inclusive")
	fl.Float64Var(&f.usageMax, "usage-max", 0, "Maximum usage percentage, inclusive")
	fl.BoolVar(&f.defaults, "defaults", false, "Start from the dashboard's default criteria")
	fl.StringVar(&f.sort, "sort", string(player.MetricTouchesPer90), "Metric to order by")
	fl.StringVar(&f.order, "order", "desc", "Sort order: asc or desc")
	fl.IntVarP(&f.limit, "limit", "l", 0, "Maximum rows to print (0 = max_result_rows)")
	fl.StringVarP(&f.output, "output", "o", outputTable, "Output format: table or json or csv")
	fl.StringVar(&f.outputFile, "output-file", "", "Write matching rows to an xlsx, csv or parquet file instead")
	return cmd
}

// query builds a service query from the flags. changed reports whether a
// flag was set explicitly, so a zero bound is distinguishable from no bound.
func (f *queryFlags) query(changed func(string) bool, base filter.Criteria) (types.Query, error) {
	c := base.Clone()
	if len(f.competitions) > 0 {
		c.Competitions = trimmed(f.competitions)
	}
	if len(f.positions) > 0 {
		c.Positions = trimmed(f.positions)
	}
	if len(f.teams) > 0 {
		c.Teams = trimmed(f.teams)
	}
	c.Age = withBounds(c.Age, f.ageMin, f.ageMax, changed("age-min"), changed("age-max"))
	c.Usage = withBounds(c.Usage, f.usageMin, f.usageMax, changed("usage-min"), changed("usage-max"))

	sortBy, err := player.ParseMetric(f.sort)
	if err != nil {
		return types.Query{}, fmt.Errorf("%w: %w", filter.ErrInvalidCriteria, err)
	}
	q := types.Query{Criteria: c, Sort: sortBy, Desc: true}

	switch strings.ToLower(strings.TrimSpace(f.order)) {
	case "", "desc":
	case "asc":
		q.Desc = false
	default:
		return types.Query{}, fmt.Errorf("%w: order must be asc or desc, got %q", filter.ErrInvalidCriteria, f.order)
	}

	if f.limit < 0 {
		return types.Query{}, fmt.Errorf("%w: limit must not be negative, got %d", filter.ErrInvalidCriteria, f.limit)
	}
	q.Limit = f.limit
	return q, nil
}

// withBounds overrides the set bounds of base. Without a base, an unset
// side is open.
func withBounds(base *filter.Range, lo, hi float64, hasLo, hasHi bool) *filter.Range {
	if !hasLo && !hasHi {
		return base
	}
	r := filter.Range{Min: -math.MaxFloat64, Max: math.MaxFloat64}
	if base != nil {
		r = *base
	}
	if hasLo {
		r.Min = lo
	}
	if hasHi {
		r.Max = hi
	}
	return &r
}

func trimmed(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func rangeText(r *filter.Range) string {
	if r == nil {
		return "any"
	}
	return fmt.Sprintf("%g to %g", r.Min, r.Max)
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/okian/touchboard/internal/adapters/dataset"
	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/internal/domain/types"
)

// Output formats for stdout.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputCSV   = "csv"
)

var errUnknownOutput = errors.New("unknown output format")

var (
	summaryColor = color.New(color.FgGreen, color.Bold)
	noticeColor  = color.New(color.FgYellow)
	missingColor = color.New(color.FgHiBlack)
)

func checkOutput(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("%w: %q (want %s)", errUnknownOutput, format, strings.Join(allowed, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult prints a query result in the requested format.
func writeResult(w io.Writer, format string, res types.QueryResult) error {
	switch format {
	case outputJSON:
		return writeJSON(w, res)
	case outputCSV:
		return dataset.Encode(w, dataset.FormatCSV, res.Players)
	default:
		return writePlayerTable(w, res)
	}
}

func writePlayerTable(w io.Writer, res types.QueryResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Player", "Team", "Competition", "Position", "Age", "Usage", "Touches/90", "OBV", "OBV Rank"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(res.Players))
	for i, r := range res.Players {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Player,
			text(r.Team),
			text(r.Competition),
			text(r.Position),
			integer(r.Age),
			number(r.Usage, 1),
			number(r.TouchesPer90, 2),
			number(r.OBV, 3),
			number(r.OBVRank, 0),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writeSummary(w, res)
}

func writeSummary(w io.Writer, res types.QueryResult) error {
	s := res.Summary
	if _, err := summaryColor.Fprintf(w, "%d players", s.Count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, " | mean touches/90 %s | mean OBV %s | mean OBV rank %s\n",
		number(s.MeanTouchesPer90, 2), number(s.MeanOBV, 3), number(s.MeanOBVRank, 1)); err != nil {
		return err
	}
	return writeTruncated(w, res)
}

// writeTruncated notes when the row limit cut the result short.
func writeTruncated(w io.Writer, res types.QueryResult) error {
	if !res.Truncated {
		return nil
	}
	_, err := noticeColor.Fprintf(w, "showing first %d of %d; raise --limit to see more\n", len(res.Players), res.Summary.Count)
	return err
}

// writeOptionsTable prints facets and the default criteria.
func writeOptionsTable(w io.Writer, opts types.Options) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Facet", "Count", "Values"})

	f := opts.Facets
	data := [][]string{
		{"competition", strconv.Itoa(len(f.Competitions)), strings.Join(f.Competitions, ", ")},
		{"position", strconv.Itoa(len(f.Positions)), strings.Join(f.Positions, ", ")},
		{"team", strconv.Itoa(len(f.Teams)), strings.Join(f.Teams, ", ")},
		{"age", "", bounds(f.Age)},
		{"usage", "", bounds(f.Usage)},
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	d := opts.Defaults
	_, err := summaryColor.Fprintf(w, "defaults: age %s, usage %s\n", rangeText(d.Age), rangeText(d.Usage))
	return err
}

func text(o player.Optional[string]) string {
	if v, ok := o.Get(); ok {
		return v
	}
	return missingColor.Sprint("-")
}

func integer(o player.Optional[int]) string {
	if v, ok := o.Get(); ok {
		return strconv.Itoa(v)
	}
	return missingColor.Sprint("-")
}

func number(o player.Optional[float64], prec int) string {
	if v, ok := o.Get(); ok {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
	return missingColor.Sprint("-")
}

func bounds(b player.Bounds) string {
	if !b.Valid {
		return missingColor.Sprint("-")
	}
	return fmt.Sprintf("%d to %d", b.Min, b.Max)
}

package dataset

import (
	"fmt"
	"io"

	"github.com/okian/touchboard/internal/domain/player"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Players"

// readXLSX reads the named sheet, or the first sheet when sheet is empty.
func readXLSX(r io.Reader, sheet string) ([]player.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %w", ErrDataUnavailable, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrDataUnavailable)
		}
		sheet = sheets[0]
	}
	// Raw values: number formats would otherwise round what GetRows returns.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrDataUnavailable, sheet, err)
	}
	return parseRows(rows)
}

// writeXLSX writes records to a single-sheet workbook.
func writeXLSX(w io.Writer, records []player.Record) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), defaultSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, 1, WriteColumns); err != nil {
		return err
	}
	for i, r := range records {
		if err := setRow(f, i+2, formatCells(r)); err != nil {
			return err
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func setRow[T any](f *excelize.File, row int, values []T) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(defaultSheet, cell, &cells); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}

// formatCells keeps numbers numeric so the workbook sorts and charts like a
// hand-made one. Absent values are left blank.
func formatCells(r player.Record) []any {
	num := func(o player.Optional[float64]) any {
		if v, ok := o.Get(); ok {
			return v
		}
		return nil
	}
	var age any
	if v, ok := r.Age.Get(); ok {
		age = v
	}
	str := func(o player.Optional[string]) any {
		if v, ok := o.Get(); ok {
			return v
		}
		return nil
	}
	return []any{
		r.Player,
		str(r.Team),
		str(r.Competition),
		str(r.Position),
		age,
		num(r.Usage),
		num(r.TouchesPer90),
		num(r.OBV),
		num(r.OBVRank),
		num(r.PassOBVRank),
		num(r.DribbleCarryOBVRank),
		num(r.ShotOBVRank),
	}
}

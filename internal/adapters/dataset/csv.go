package dataset

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okian/touchboard/internal/domain/player"
)

func readCSV(r io.Reader) ([]player.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv: %w", ErrDataUnavailable, err)
	}
	return parseRows(rows)
}

func writeCSV(w io.Writer, records []player.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(WriteColumns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(formatRow(r)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

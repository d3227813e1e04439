package dataset

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/okian/touchboard/internal/domain/player"
	"github.com/parquet-go/parquet-go"
)

// parquetRow is the on-disk schema. Column names match the spreadsheet
// headings; everything except the player name is nullable.
type parquetRow struct {
	PlayerName          string   `parquet:"Player Name,snappy"`
	Team                *string  `parquet:"Team,optional,snappy"`
	Competition         *string  `parquet:"Competition,optional,snappy"`
	Position            *string  `parquet:"Position,optional,snappy"`
	Age                 *int64   `parquet:"Age,optional,snappy"`
	Usage               *float64 `parquet:"Usage,optional,snappy"`
	TouchesPer90        *float64 `parquet:"Touches per 90,optional,snappy"`
	OBV                 *float64 `parquet:"OBV,optional,snappy"`
	OBVRank             *float64 `parquet:"OBV Rank,optional,snappy"`
	PassOBVRank         *float64 `parquet:"Pass OBV Rank,optional,snappy"`
	DribbleCarryOBVRank *float64 `parquet:"Dribble & Carry OBV Rank,optional,snappy"`
	ShotOBVRank         *float64 `parquet:"Shot OBV Rank,optional,snappy"`
}

func readParquet(r io.ReaderAt, size int64) ([]player.Record, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet: %w", ErrDataUnavailable, err)
	}

	names := make([]string, 0, len(pf.Schema().Fields()))
	for _, field := range pf.Schema().Fields() {
		names = append(names, field.Name())
	}
	if _, err := newHeader(names); err != nil {
		return nil, err
	}

	reader := parquet.NewGenericReader[parquetRow](r)
	defer func() { _ = reader.Close() }()

	rows := make([]parquetRow, pf.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: read parquet rows: %w", ErrDataUnavailable, err)
	}
	rows = rows[:n]

	records := make([]player.Record, 0, len(rows))
	for i, row := range rows {
		name := strings.TrimSpace(row.PlayerName)
		if isMissing(name) {
			return nil, fmt.Errorf("%w: row %d has no %s", ErrDataUnavailable, i+1, ColPlayerName)
		}
		records = append(records, player.Record{
			Player:              name,
			Team:                optText(row.Team),
			Competition:         optText(row.Competition),
			Position:            optText(row.Position),
			Age:                 optInt(row.Age),
			Usage:               optFloat(row.Usage),
			TouchesPer90:        optFloat(row.TouchesPer90),
			OBV:                 optFloat(row.OBV),
			OBVRank:             optFloat(row.OBVRank),
			PassOBVRank:         optFloat(row.PassOBVRank),
			DribbleCarryOBVRank: optFloat(row.DribbleCarryOBVRank),
			ShotOBVRank:         optFloat(row.ShotOBVRank),
		})
	}
	return records, nil
}

func writeParquet(w io.Writer, records []player.Record) error {
	rows := make([]parquetRow, len(records))
	for i, r := range records {
		rows[i] = parquetRow{
			PlayerName:          r.Player,
			Team:                ptr(r.Team),
			Competition:         ptr(r.Competition),
			Position:            ptr(r.Position),
			Usage:               ptr(r.Usage),
			TouchesPer90:        ptr(r.TouchesPer90),
			OBV:                 ptr(r.OBV),
			OBVRank:             ptr(r.OBVRank),
			PassOBVRank:         ptr(r.PassOBVRank),
			DribbleCarryOBVRank: ptr(r.DribbleCarryOBVRank),
			ShotOBVRank:         ptr(r.ShotOBVRank),
		}
		if age, ok := r.Age.Get(); ok {
			a := int64(age)
			rows[i].Age = &a
		}
	}

	writer := parquet.NewGenericWriter[parquetRow](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}

func optText(s *string) player.Optional[string] {
	if s == nil || isMissing(strings.TrimSpace(*s)) {
		return player.None[string]()
	}
	return player.Some(strings.TrimSpace(*s))
}

func optFloat(f *float64) player.Optional[float64] {
	if f == nil || math.IsNaN(*f) {
		return player.None[float64]()
	}
	return player.Some(*f)
}

func optInt(i *int64) player.Optional[int] {
	if i == nil {
		return player.None[int]()
	}
	return player.Some(int(*i))
}

func ptr[T any](o player.Optional[T]) *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/touchboard/internal/adapters/dataset"
	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func init() {
	if err := logger.Init(logger.WithWriter(os.Stderr)); err != nil {
		panic(err)
	}
}

const header = "Player Name,Team,Competition,Position,Age,Usage,Touches per 90,OBV,OBV Rank,Pass OBV Rank,Dribble & Carry OBV Rank,Shot OBV Rank\n"

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func fixture() *player.Dataset {
	return player.NewDataset([]player.Record{
		{
			Player:              "Bukayo Saka",
			Team:                player.Some("Arsenal"),
			Competition:         player.Some("Premier League"),
			Position:            player.Some("Right Wing"),
			Age:                 player.Some(23),
			Usage:               player.Some(88.5),
			TouchesPer90:        player.Some(61.25),
			OBV:                 player.Some(0.42),
			OBVRank:             player.Some(97.0),
			PassOBVRank:         player.Some(90.0),
			DribbleCarryOBVRank: player.Some(99.0),
			ShotOBVRank:         player.Some(85.0),
		},
		{
			Player:       "Unknown Keeper",
			Team:         player.Some("Ajax"),
			Position:     player.Some("Goalkeeper"),
			Usage:        player.Some(100.0),
			TouchesPer90: player.Some(35.5),
		},
	})
}

func TestReadCSV(t *testing.T) {
	Convey("Given a CSV file with gaps", t, func() {
		ctx := context.Background()
		path := writeTemp(t, "players.csv", header+
			"A. Player, Arsenal ,Premier League,Centre Forward,21,55.5,38.2,0.31,88,70,60,91\n"+
			",,,,,,,,,,,\n"+
			"B. Player,Ajax,NA,Centre Midfield,,91.6%,71,N/A,,,,\n")

		Convey("When reading it", func() {
			recs, err := dataset.ReadFile(ctx, path, "")

			Convey("Then blank rows are skipped and missing tokens become absent", func() {
				So(err, ShouldBeNil)
				So(len(recs), ShouldEqual, 2)

				So(recs[0].Player, ShouldEqual, "A. Player")
				So(recs[0].Team.OrElse(""), ShouldEqual, "Arsenal")
				So(recs[0].Age.OrElse(0), ShouldEqual, 21)
				So(recs[0].ShotOBVRank.OrElse(0), ShouldEqual, 91.0)

				So(recs[1].Competition.Present(), ShouldBeFalse)
				So(recs[1].Age.Present(), ShouldBeFalse)
				So(recs[1].Usage.OrElse(0), ShouldEqual, 91.6)
				So(recs[1].OBV.Present(), ShouldBeFalse)
			})
		})
	})

	Convey("Given a CSV with only a header", t, func() {
		path := writeTemp(t, "empty.csv", header)

		Convey("Then it loads as an empty dataset", func() {
			recs, err := dataset.ReadFile(context.Background(), path, "")
			So(err, ShouldBeNil)
			So(recs, ShouldBeEmpty)
		})
	})
}

func TestReadFailures(t *testing.T) {
	Convey("Given malformed sources", t, func() {
		ctx := context.Background()

		Convey("When a required column is missing", func() {
			path := writeTemp(t, "short.csv", "Player Name,Team\nX,Y\n")
			_, err := dataset.ReadFile(ctx, path, "")

			Convey("Then the data is unavailable and the columns are named", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "Touches per 90")
			})
		})

		Convey("When a numeric cell is garbage", func() {
			path := writeTemp(t, "bad.csv", header+"A,B,C,D,twenty,1,1,1,1,1,1,1\n")
			_, err := dataset.ReadFile(ctx, path, "")

			Convey("Then the row and column are reported", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "row 2")
				So(err.Error(), ShouldContainSubstring, `"Age"`)
			})
		})

		Convey("When an age is fractional", func() {
			path := writeTemp(t, "age.csv", header+"A,B,C,D,24.6,1,1,1,1,1,1,1\n")
			_, err := dataset.ReadFile(ctx, path, "")

			Convey("Then the row is rejected instead of rounded", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, `"Age"`)
				So(err.Error(), ShouldContainSubstring, "whole number")
			})
		})

		Convey("When a row has no player name", func() {
			path := writeTemp(t, "noname.csv", header+",Arsenal,,,,,,,,,,\n")
			_, err := dataset.ReadFile(ctx, path, "")

			Convey("Then the data is unavailable", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := dataset.ReadFile(ctx, filepath.Join(t.TempDir(), "missing.xlsx"), "")

			Convey("Then both the kind and the cause are visible", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
				So(errors.Is(err, os.ErrNotExist), ShouldBeTrue)
			})
		})

		Convey("When the extension is unknown", func() {
			path := writeTemp(t, "players.json", "[]")
			_, err := dataset.ReadFile(ctx, path, "")

			Convey("Then the format is rejected", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
				So(errors.Is(err, dataset.ErrUnsupportedFormat), ShouldBeTrue)
			})
		})

		Convey("When the workbook is corrupt", func() {
			path := writeTemp(t, "broken.xlsx", "not a zip")
			_, err := dataset.ReadFile(ctx, path, "")

			Convey("Then the data is unavailable", func() {
				So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := dataset.ReadFile(cctx, writeTemp(t, "p.csv", header), "")

			Convey("Then nothing is read", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}

func TestRoundTrip(t *testing.T) {
	Convey("Given a dataset with absent values", t, func() {
		ctx := context.Background()
		ds := fixture()

		for _, ext := range []string{"xlsx", "csv", "parquet"} {
			Convey("When writing and reading back "+ext, func() {
				path := filepath.Join(t.TempDir(), "players."+ext)
				So(dataset.WriteFile(path, ds), ShouldBeNil)

				recs, err := dataset.ReadFile(ctx, path, "")

				Convey("Then the records survive unchanged", func() {
					So(err, ShouldBeNil)
					So(recs, ShouldResemble, ds.Records())
				})
			})
		}

		Convey("When the output extension is unknown", func() {
			err := dataset.WriteFile(filepath.Join(t.TempDir(), "players.txt"), ds)

			Convey("Then writing is refused", func() {
				So(errors.Is(err, dataset.ErrUnsupportedFormat), ShouldBeTrue)
			})
		})

		Convey("When reading a workbook by sheet name", func() {
			path := filepath.Join(t.TempDir(), "players.xlsx")
			So(dataset.WriteFile(path, ds), ShouldBeNil)

			recs, err := dataset.ReadFile(ctx, path, "Players")
			So(err, ShouldBeNil)
			So(len(recs), ShouldEqual, 2)

			_, err = dataset.ReadFile(ctx, path, "Nope")
			So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)
		})
	})
}

func TestLoaderCache(t *testing.T) {
	Convey("Given a loader over a CSV file", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "players.csv")
		So(dataset.WriteFile(path, fixture()), ShouldBeNil)
		l := dataset.NewLoader(path)

		Convey("When loading twice after the file is removed", func() {
			first, err := l.Load(ctx)
			So(err, ShouldBeNil)
			So(os.Remove(path), ShouldBeNil)
			second, err := l.Load(ctx)

			Convey("Then the second call is served from the cache", func() {
				So(err, ShouldBeNil)
				So(second, ShouldPointTo, first)
				So(second.Len(), ShouldEqual, 2)
				So(l.Path(), ShouldEqual, path)
			})
		})
	})

	Convey("Given a loader whose file appears later", t, func() {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "late.csv")
		l := dataset.NewLoader(path, dataset.WithSheet("ignored"), dataset.WithLogger(logger.Get()))

		_, err := l.Load(ctx)
		So(errors.Is(err, dataset.ErrDataUnavailable), ShouldBeTrue)

		So(os.WriteFile(path, []byte(header+strings.Repeat("X,T,C,P,20,50,40,0.1,1,2,3,4\n", 3)), 0o600), ShouldBeNil)

		Convey("Then a failed load is retried", func() {
			ds, err := l.Load(ctx)
			So(err, ShouldBeNil)
			So(ds.Len(), ShouldEqual, 3)
		})
	})
}

func TestFormatOf(t *testing.T) {
	Convey("Given file names", t, func() {
		f, err := dataset.FormatOf("touch_analysis.XLSX")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, dataset.FormatXLSX)

		f, err = dataset.FormatOf("a.parquet")
		So(err, ShouldBeNil)
		So(f, ShouldEqual, dataset.FormatParquet)

		_, err = dataset.FormatOf("a")
		So(err, ShouldNotBeNil)
	})
}

func TestEncode(t *testing.T) {
	Convey("Given records", t, func() {
		records := fixture().Records()

		Convey("When encoded as csv", func() {
			var buf strings.Builder
			So(dataset.Encode(&buf, dataset.FormatCSV, records), ShouldBeNil)

			Convey("Then the header and one line per record are written", func() {
				lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
				So(lines, ShouldHaveLength, 3)
				So(lines[0], ShouldStartWith, "Player Name")
				So(lines[1], ShouldContainSubstring, "Bukayo Saka")
			})
		})

		Convey("When the format is unknown", func() {
			var buf strings.Builder
			err := dataset.Encode(&buf, dataset.Format("ods"), records)

			Convey("Then it fails with ErrUnsupportedFormat", func() {
				So(errors.Is(err, dataset.ErrUnsupportedFormat), ShouldBeTrue)
			})
		})
	})
}

// writeStyledWorkbook saves one player whose numeric cells carry display
// formats that round or group the stored values.
func writeStyledWorkbook(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	head := make([]any, len(dataset.WriteColumns))
	for i, c := range dataset.WriteColumns {
		head[i] = c
	}
	row := []any{"Styled Player", "Arsenal", "Premier League", "Centre Back", 24, 19.96, 1234.5678, 0.3149, 88.4, 70.25, 60.5, 12.75}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow(sheet, "A2", &row); err != nil {
		t.Fatal(err)
	}

	oneDecimal := "0.0"
	styles := []struct {
		from, to string
		style    excelize.Style
	}{
		{"E2", "E2", excelize.Style{NumFmt: 1}},                 // 0
		{"F2", "F2", excelize.Style{CustomNumFmt: &oneDecimal}}, // 0.0
		{"G2", "G2", excelize.Style{NumFmt: 4}},                 // #,##0.00
		{"H2", "H2", excelize.Style{NumFmt: 2}},                 // 0.00
		{"I2", "L2", excelize.Style{NumFmt: 1}},                 // 0
	}
	for _, s := range styles {
		id, err := f.NewStyle(&s.style)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetCellStyle(sheet, s.from, s.to, id); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "styled.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFormattedWorkbook(t *testing.T) {
	Convey("Given a workbook whose number formats round the display", t, func() {
		path := writeStyledWorkbook(t)

		Convey("When it is read", func() {
			recs, err := dataset.ReadFile(context.Background(), path, "")
			So(err, ShouldBeNil)
			So(recs, ShouldHaveLength, 1)
			r := recs[0]

			Convey("Then the stored values come back unrounded", func() {
				So(r.Age, ShouldResemble, player.Some(24))
				So(r.Usage, ShouldResemble, player.Some(19.96))
				So(r.TouchesPer90, ShouldResemble, player.Some(1234.5678))
				So(r.OBV, ShouldResemble, player.Some(0.3149))
				So(r.OBVRank, ShouldResemble, player.Some(88.4))
				So(r.PassOBVRank, ShouldResemble, player.Some(70.25))
				So(r.DribbleCarryOBVRank, ShouldResemble, player.Some(60.5))
				So(r.ShotOBVRank, ShouldResemble, player.Some(12.75))
			})

			Convey("Then a usage just under 20 stays under 20", func() {
				usage, ok := r.Usage.Get()
				So(ok, ShouldBeTrue)
				So(usage, ShouldBeLessThan, 20.0)
			})
		})
	})
}

package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/touchboard/internal/domain/player"
)

// Spreadsheet column headings.
const (
	ColCompetition  = "Competition"
	ColPosition     = "Position"
	ColTeam         = "Team"
	ColAge          = "Age"
	ColUsage        = "Usage"
	ColPlayerName   = "Player Name"
	ColTouchesPer90 = "Touches per 90"
	ColOBV          = "OBV"
	ColOBVRank      = "OBV Rank"
	ColPassOBVRank  = "Pass OBV Rank"
	ColDribbleRank  = "Dribble & Carry OBV Rank"
	ColShotOBVRank  = "Shot OBV Rank"
)

// RequiredColumns must all be present in the header row.
var RequiredColumns = []string{
	ColCompetition,
	ColPosition,
	ColTeam,
	ColAge,
	ColUsage,
	ColPlayerName,
	ColTouchesPer90,
	ColOBV,
	ColOBVRank,
	ColPassOBVRank,
	ColDribbleRank,
	ColShotOBVRank,
}

// WriteColumns is the column order used when exporting.
var WriteColumns = []string{
	ColPlayerName,
	ColTeam,
	ColCompetition,
	ColPosition,
	ColAge,
	ColUsage,
	ColTouchesPer90,
	ColOBV,
	ColOBVRank,
	ColPassOBVRank,
	ColDribbleRank,
	ColShotOBVRank,
}

// missingTokens are cell contents treated as an absent value.
var missingTokens = map[string]struct{}{
	"":     {},
	"na":   {},
	"n/a":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"#n/a": {},
	"<na>": {},
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.ToLower(s)]
	return ok
}

// header maps column names to their index in a row.
type header map[string]int

func newHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c)
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrDataUnavailable, strings.Join(missing, ", "))
	}
	return h, nil
}

// maxInteger is the largest whole number a float64 cell holds exactly.
const maxInteger = 1 << 53

// rowParser turns string cells into a Record, collecting the first error.
type rowParser struct {
	h     header
	cells []string
	line  int
	err   error
}

func (p *rowParser) cell(col string) string {
	i := p.h[col]
	if i >= len(p.cells) {
		return ""
	}
	return strings.TrimSpace(p.cells[i])
}

func (p *rowParser) text(col string) player.Optional[string] {
	v := p.cell(col)
	if isMissing(v) {
		return player.None[string]()
	}
	return player.Some(v)
}

func (p *rowParser) number(col string) player.Optional[float64] {
	v := p.cell(col)
	if isMissing(v) {
		return player.None[float64]()
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
	if err != nil || math.IsInf(f, 0) {
		p.fail(col, v, "a number")
		return player.None[float64]()
	}
	if math.IsNaN(f) {
		return player.None[float64]()
	}
	return player.Some(f)
}

func (p *rowParser) integer(col string) player.Optional[int] {
	f, ok := p.number(col).Get()
	if !ok {
		return player.None[int]()
	}
	if f != math.Trunc(f) || math.Abs(f) > maxInteger {
		p.fail(col, p.cell(col), "a whole number")
		return player.None[int]()
	}
	return player.Some(int(f))
}

func (p *rowParser) fail(col, v, want string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: row %d column %q: cannot parse %q as %s", ErrDataUnavailable, p.line, col, v, want)
	}
}

// blank reports whether every cell is empty.
func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRows converts a header row plus data rows into records. line numbers
// are 1-based and count the header.
func parseRows(rows [][]string) ([]player.Record, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrDataUnavailable)
	}
	h, err := newHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]player.Record, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if blank(cells) {
			continue
		}
		p := &rowParser{h: h, cells: cells, line: i + 2}
		name := p.cell(ColPlayerName)
		if isMissing(name) {
			return nil, fmt.Errorf("%w: row %d has no %s", ErrDataUnavailable, p.line, ColPlayerName)
		}
		r := player.Record{
			Player:              name,
			Team:                p.text(ColTeam),
			Competition:         p.text(ColCompetition),
			Position:            p.text(ColPosition),
			Age:                 p.integer(ColAge),
			Usage:               p.number(ColUsage),
			TouchesPer90:        p.number(ColTouchesPer90),
			OBV:                 p.number(ColOBV),
			OBVRank:             p.number(ColOBVRank),
			PassOBVRank:         p.number(ColPassOBVRank),
			DribbleCarryOBVRank: p.number(ColDribbleRank),
			ShotOBVRank:         p.number(ColShotOBVRank),
		}
		if p.err != nil {
			return nil, p.err
		}
		records = append(records, r)
	}
	return records, nil
}

// formatRow renders a record in WriteColumns order. Absent values are empty.
func formatRow(r player.Record) []string {
	num := func(o player.Optional[float64]) string {
		v, ok := o.Get()
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	age := ""
	if v, ok := r.Age.Get(); ok {
		age = strconv.Itoa(v)
	}
	return []string{
		r.Player,
		r.Team.OrElse(""),
		r.Competition.OrElse(""),
		r.Position.OrElse(""),
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

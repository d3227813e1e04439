// Package sampledata generates synthetic touch and OBV spreadsheets for demos
// and tests. Output is deterministic for a given seed.
package sampledata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/okian/touchboard/internal/domain/player"
	"github.com/okian/touchboard/pkg/logger"
)

// ErrInvalidConfig is returned for unusable generator settings.
var ErrInvalidConfig = errors.New("invalid sample config")

// Config controls generation.
type Config struct {
	Players int
	Seed    uint64
	// MissingRate is the chance that any optional cell is left blank.
	MissingRate float64
}

// DefaultConfig returns a modest league-sized sample.
func DefaultConfig() Config {
	return Config{Players: 400, Seed: 1, MissingRate: 0.02}
}

func (c Config) validate() error {
	switch {
	case c.Players < 0:
		return fmt.Errorf("%w: players must not be negative, got %d", ErrInvalidConfig, c.Players)
	case math.IsNaN(c.MissingRate) || c.MissingRate < 0 || c.MissingRate > 1:
		return fmt.Errorf("%w: missing rate must be within [0, 1], got %v", ErrInvalidConfig, c.MissingRate)
	}
	return nil
}

var competitions = map[string][]string{
	"Premier League": {"Arsenal", "Brighton", "Chelsea", "Liverpool", "Manchester City", "Newcastle"},
	"La Liga":        {"Athletic Club", "Barcelona", "Real Betis", "Real Madrid", "Real Sociedad", "Villarreal"},
	"Bundesliga":     {"Bayer Leverkusen", "Bayern Munich", "Borussia Dortmund", "Freiburg", "RB Leipzig", "Stuttgart"},
	"Serie A":        {"Atalanta", "Bologna", "Inter", "Juventus", "Milan", "Napoli"},
}

// competitionOrder keeps generation independent of map iteration order.
var competitionOrder = []string{"Premier League", "La Liga", "Bundesliga", "Serie A"}

var positions = []string{
	"Goalkeeper", "Centre Back", "Full Back", "Defensive Midfielder",
	"Central Midfielder", "Attacking Midfielder", "Winger", "Centre Forward",
}

var firstNames = []string{
	"Alex", "Bruno", "Carlos", "Daniel", "Emil", "Felix", "Gabriel", "Hugo",
	"Ivan", "Jonas", "Kai", "Luca", "Mateo", "Nico", "Oscar", "Pedro",
	"Rafael", "Samuel", "Tomas", "Victor",
}

var lastNames = []string{
	"Almeida", "Becker", "Costa", "Dias", "Eriksen", "Fischer", "Garcia", "Hansen",
	"Iglesias", "Jensen", "Keller", "Lopez", "Moreau", "Novak", "Ortega", "Petit",
	"Rossi", "Silva", "Torres", "Weber",
}

// touchBase is the typical touches per 90 by position.
var touchBase = map[string]float64{
	"Goalkeeper":           35,
	"Centre Back":          70,
	"Full Back":            68,
	"Defensive Midfielder": 78,
	"Central Midfielder":   74,
	"Attacking Midfielder": 62,
	"Winger":               55,
	"Centre Forward":       38,
}

// tier scales a player's output; most players are average.
type tier struct {
	weight float64
	scale  float64
}

var tiers = []tier{
	{weight: 0.05, scale: 1.35}, // elite
	{weight: 0.20, scale: 1.15}, // high
	{weight: 0.55, scale: 1.00}, // average
	{weight: 0.20, scale: 0.80}, // low
}

// Generate builds a dataset of cfg.Players records.
func Generate(ctx context.Context, cfg Config) (*player.Dataset, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))
	g := &generator{rng: rng, missing: cfg.MissingRate}

	records := make([]player.Record, 0, cfg.Players)
	for i := range cfg.Players {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("generate sample: %w", err)
			}
		}
		records = append(records, g.record())
	}

	logger.Get().Debug(ctx, "generated sample dataset",
		logger.Int("players", cfg.Players),
		logger.Any("seed", cfg.Seed),
	)
	return player.NewDataset(records), nil
}

type generator struct {
	rng     *rand.Rand
	missing float64
}

func (g *generator) record() player.Record {
	comp := competitionOrder[g.rng.IntN(len(competitionOrder))]
	teams := competitions[comp]
	pos := positions[g.rng.IntN(len(positions))]
	scale := g.tier()

	name := fmt.Sprintf("%s %s", firstNames[g.rng.IntN(len(firstNames))], lastNames[g.rng.IntN(len(lastNames))])

	touches := clamp(touchBase[pos]*scale+g.rng.NormFloat64()*8, 5, 140)
	obv := (scale-1)*0.25 + g.rng.NormFloat64()*0.08
	rank := func(bias float64) float64 {
		return clamp(50+(scale-1)*120+bias+g.rng.NormFloat64()*18, 0, 100)
	}

	return player.Record{
		Player:              name,
		Team:                g.maybe(player.Some(teams[g.rng.IntN(len(teams))])),
		Competition:         g.maybe(player.Some(comp)),
		Position:            g.maybe(player.Some(pos)),
		Age:                 g.maybeInt(17 + g.rng.IntN(20)),
		Usage:               g.maybeFloat(round2(clamp(18+(scale-1)*30+g.rng.NormFloat64()*5, 5, 40))),
		TouchesPer90:        g.maybeFloat(round2(touches)),
		OBV:                 g.maybeFloat(round2(obv)),
		OBVRank:             g.maybeFloat(round2(rank(0))),
		PassOBVRank:         g.maybeFloat(round2(rank(touches/10 - 5))),
		DribbleCarryOBVRank: g.maybeFloat(round2(rank(0))),
		ShotOBVRank:         g.maybeFloat(round2(rank(5 - touches/10))),
	}
}

func (g *generator) tier() float64 {
	x := g.rng.Float64()
	for _, t := range tiers {
		if x < t.weight {
			return t.scale
		}
		x -= t.weight
	}
	return 1
}

func (g *generator) drop() bool {
	return g.missing > 0 && g.rng.Float64() < g.missing
}

func (g *generator) maybe(o player.Optional[string]) player.Optional[string] {
	if g.drop() {
		return player.None[string]()
	}
	return o
}

func (g *generator) maybeFloat(v float64) player.Optional[float64] {
	if g.drop() {
		return player.None[float64]()
	}
	return player.Some(v)
}

func (g *generator) maybeInt(v int) player.Optional[int] {
	if g.drop() {
		return player.None[int]()
	}
	return player.Some(v)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

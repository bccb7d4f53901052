package games

import (
	"fmt"

	"github.com/tradege/stek-sub013/internal/engine"
)

// SlotsGame draws one symbol per reel with engine.IntAt and pays on the
// run of consecutive reels (from the left) matching the first reel's
// symbol. Paytables are indexed [symbol][runLength] and rescaled at
// config time so the exact expected multiplier equals 1-houseEdge.
type SlotsGame struct{}

func (g *SlotsGame) Spec() GameSpec {
	return GameSpec{
		ID:          "slots",
		Name:        "Slots",
		MetricLabel: "multiplier",
	}
}

func (g *SlotsGame) FloatCount(cfg Config) int {
	normalized, err := cfg.Normalize("slots")
	if err != nil {
		return defaultReels
	}
	return normalized.Reels
}

func (g *SlotsGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	return evaluateReels(g.Spec().ID, seeds, nonce, cfg)
}

// OlympusGame is the five-reel slot variant with a larger symbol set.
// Same draw and run-pay rules as SlotsGame, different defaults.
type OlympusGame struct{}

func (g *OlympusGame) Spec() GameSpec {
	return GameSpec{
		ID:          "olympus",
		Name:        "Olympus",
		MetricLabel: "multiplier",
	}
}

func (g *OlympusGame) FloatCount(cfg Config) int {
	normalized, err := cfg.Normalize("olympus")
	if err != nil {
		return olympusReels
	}
	return normalized.Reels
}

func (g *OlympusGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	return evaluateReels(g.Spec().ID, seeds, nonce, cfg)
}

func evaluateReels(gameID string, seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	cfg, err := cfg.Normalize(gameID)
	if err != nil {
		return Result{}, err
	}

	reels := make([]int, cfg.Reels)
	for i := range reels {
		reels[i] = int(engine.IntAt(seeds.Server, seeds.Client, nonce, uint64(i), uint64(cfg.SymbolCount)))
	}

	run := 1
	for i := 1; i < len(reels) && reels[i] == reels[0]; i++ {
		run++
	}

	multiplier := 0.0
	if run >= 2 {
		multiplier = cfg.Paytable[reels[0]][run]
	}

	return Result{
		Metric:      multiplier,
		MetricLabel: "multiplier",
		Details: map[string]any{
			"reels":      reels,
			"symbol":     reels[0],
			"run":        run,
			"multiplier": multiplier,
		},
	}, nil
}

// runProbability is the joint probability that the first reel shows one
// particular symbol and exactly runLen leading reels match it.
func runProbability(symbolCount, reels, runLen int) float64 {
	p := 1.0
	for i := 0; i < runLen; i++ {
		p /= float64(symbolCount)
	}
	if runLen < reels {
		p *= float64(symbolCount-1) / float64(symbolCount)
	}
	return p
}

// paytableEV is the expected multiplier of one spin under the table.
func paytableEV(paytable [][]float64, symbolCount, reels int) float64 {
	ev := 0.0
	for s := 0; s < symbolCount; s++ {
		for k := 2; k <= reels; k++ {
			ev += paytable[s][k] * runProbability(symbolCount, reels, k)
		}
	}
	return ev
}

// defaultPaytable builds the base payout shape: higher symbol indexes
// pay more, each extra matched reel triples the pay. Absolute values do
// not matter; normalization rescales to the configured house edge.
func defaultPaytable(symbolCount, reels int) [][]float64 {
	paytable := make([][]float64, symbolCount)
	for s := range paytable {
		row := make([]float64, reels+1)
		pay := float64(s + 1)
		for k := 2; k <= reels; k++ {
			row[k] = pay
			pay *= 3
		}
		paytable[s] = row
	}
	return paytable
}

// normalizedPaytable validates the configured paytable (or builds the
// default) and rescales a copy so paytableEV == 1-houseEdge exactly.
func normalizedPaytable(cfg Config) ([][]float64, error) {
	base := cfg.Paytable
	if base == nil {
		base = defaultPaytable(cfg.SymbolCount, cfg.Reels)
	}

	if len(base) != cfg.SymbolCount {
		return nil, fmt.Errorf("%w: paytable has %d symbol rows, want %d",
			engine.ErrConfiguration, len(base), cfg.SymbolCount)
	}
	for s, row := range base {
		if len(row) != cfg.Reels+1 {
			return nil, fmt.Errorf("%w: paytable row %d has %d entries, want %d",
				engine.ErrConfiguration, s, len(row), cfg.Reels+1)
		}
		for k, pay := range row {
			if pay < 0 {
				return nil, fmt.Errorf("%w: negative paytable entry at [%d][%d]",
					engine.ErrConfiguration, s, k)
			}
			if k < 2 && pay != 0 {
				return nil, fmt.Errorf("%w: paytable pays %d-run at [%d][%d]; runs below 2 never pay",
					engine.ErrConfiguration, k, s, k)
			}
		}
	}

	ev := paytableEV(base, cfg.SymbolCount, cfg.Reels)
	if ev <= 0 {
		return nil, fmt.Errorf("%w: paytable has zero expected value", engine.ErrConfiguration)
	}

	scale := (1.0 - cfg.HouseEdge) / ev
	normalized := make([][]float64, len(base))
	for s, row := range base {
		scaled := make([]float64, len(row))
		for k, pay := range row {
			scaled[k] = pay * scale
		}
		normalized[s] = scaled
	}

	return normalized, nil
}

package games

import (
	"github.com/tradege/stek-sub013/internal/engine"
)

// PlinkoGame drops a ball through Rows peg levels. Each level consumes
// one float: below 0.5 the ball deflects left, otherwise right. The
// terminal bucket is the count of rights, and its multiplier comes from
// the per-(rows, risk) table scaled to the configured house edge.
type PlinkoGame struct{}

func (g *PlinkoGame) Spec() GameSpec {
	return GameSpec{
		ID:          "plinko",
		Name:        "Plinko",
		MetricLabel: "multiplier",
	}
}

func (g *PlinkoGame) FloatCount(cfg Config) int {
	normalized, err := cfg.Normalize("plinko")
	if err != nil {
		return plinkoDefaultRows
	}
	return normalized.Rows
}

func (g *PlinkoGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	cfg, err := cfg.Normalize("plinko")
	if err != nil {
		return Result{}, err
	}

	table, err := plinkoTable(cfg.Risk, cfg.Rows, cfg.HouseEdge)
	if err != nil {
		return Result{}, err
	}

	floats := engine.Floats(seeds.Server, seeds.Client, nonce, 0, cfg.Rows)

	directions := make([]string, cfg.Rows)
	bucket := 0
	for i, f := range floats {
		if f < 0.5 {
			directions[i] = "left"
		} else {
			directions[i] = "right"
			bucket++
		}
	}

	multiplier := table[bucket]

	return Result{
		Metric:      multiplier,
		MetricLabel: "multiplier",
		Details: map[string]any{
			"rows":       cfg.Rows,
			"risk":       cfg.Risk,
			"directions": directions,
			"bucket":     bucket,
			"multiplier": multiplier,
		},
	}, nil
}

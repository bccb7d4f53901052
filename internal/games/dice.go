package games

import (
	"math"

	"github.com/tradege/stek-sub013/internal/engine"
)

// DiceGame maps one float onto a roll in [0.00, 100.00) with exactly
// 10,000 discrete outcomes (0.00, 0.01, ..., 99.99). Whether the roll
// wins against a rollOver/rollUnder target is the payout layer's
// business, not the mapper's.
type DiceGame struct{}

func (g *DiceGame) Spec() GameSpec {
	return GameSpec{
		ID:          "dice",
		Name:        "Dice",
		MetricLabel: "roll",
	}
}

func (g *DiceGame) FloatCount(cfg Config) int {
	return 1
}

func (g *DiceGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	if _, err := cfg.Normalize("dice"); err != nil {
		return Result{}, err
	}

	f := engine.FloatAt(seeds.Server, seeds.Client, nonce, 0)
	roll := math.Floor(f*10000) / 100

	return Result{
		Metric:      roll,
		MetricLabel: "roll",
		Details: map[string]any{
			"raw_float": f,
			"roll":      roll,
		},
	}, nil
}

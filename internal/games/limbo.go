package games

import (
	"math"

	"github.com/tradege/stek-sub013/internal/engine"
)

// LimboGame is the cashout-target crash variant: the full house edge
// lives in the inverse formula, there is no instant-bust floor.
type LimboGame struct{}

func (g *LimboGame) Spec() GameSpec {
	return GameSpec{
		ID:          "limbo",
		Name:        "Limbo",
		MetricLabel: "multiplier",
	}
}

func (g *LimboGame) FloatCount(cfg Config) int {
	return 1
}

func (g *LimboGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	cfg, err := cfg.Normalize("limbo")
	if err != nil {
		return Result{}, err
	}

	f := engine.FloatAt(seeds.Server, seeds.Client, nonce, 0)
	multiplier := limboMultiplier(f, cfg.HouseEdge)

	return Result{
		Metric:      multiplier,
		MetricLabel: "multiplier",
		Details: map[string]any{
			"raw_float":  f,
			"multiplier": multiplier,
		},
	}, nil
}

// limboMultiplier inverts a draw into the round multiplier. A zero draw
// (the lowest of the 2^32 stream values) is lifted to the next
// representable draw so the result stays finite and JSON-encodable.
func limboMultiplier(f, houseEdge float64) float64 {
	if f == 0 {
		f = 1.0 / (1 << 32)
	}
	multiplier := math.Floor((1.0-houseEdge)/f*100) / 100
	return math.Max(multiplier, 1.0)
}

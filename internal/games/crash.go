package games

import (
	"math"

	"github.com/tradege/stek-sub013/internal/engine"
)

// CrashGame maps one float onto the multiplier at which the round
// busts. Resolution happens in two ordered steps: first the instant
// bust check (f below the configured floor resolves at 1.00, a loss,
// with no further computation), then an inverse transform over the
// remaining probability mass. Non-bust rounds never land on 1.00, so
// the fraction of rounds at exactly 1.00 equals InstantBust.
type CrashGame struct{}

// crashMinPoint is the lowest multiplier a non-bust round can resolve
// at. The house-edge mass below it compresses onto this value.
const crashMinPoint = 1.01

func (g *CrashGame) Spec() GameSpec {
	return GameSpec{
		ID:          "crash",
		Name:        "Crash",
		MetricLabel: "crash_point",
	}
}

func (g *CrashGame) FloatCount(cfg Config) int {
	return 1
}

func (g *CrashGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	cfg, err := cfg.Normalize("crash")
	if err != nil {
		return Result{}, err
	}

	f := engine.FloatAt(seeds.Server, seeds.Client, nonce, 0)

	if f < cfg.InstantBust {
		return Result{
			Metric:      1.0,
			MetricLabel: "crash_point",
			Details: map[string]any{
				"raw_float":    f,
				"crash_point":  1.0,
				"instant_bust": true,
			},
		}, nil
	}

	// Renormalize the surviving mass back onto [0, 1) and invert.
	u := (f - cfg.InstantBust) / (1.0 - cfg.InstantBust)
	point := math.Floor(100.0*(1.0-cfg.HouseEdge)/(1.0-u)) / 100.0
	point = math.Max(point, crashMinPoint)

	return Result{
		Metric:      point,
		MetricLabel: "crash_point",
		Details: map[string]any{
			"raw_float":    f,
			"crash_point":  point,
			"instant_bust": false,
		},
	}, nil
}

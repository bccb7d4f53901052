package games

import (
	"math"
	"sort"

	"github.com/tradege/stek-sub013/internal/engine"
)

// MinesGame places MineCount mines on a GridSize-cell grid via a
// Fisher-Yates selection: one float per draw picks an index into the
// shrinking pool of remaining cells, so the layout is a prefix of a
// full permutation. The draw budget is always GridSize-1 floats (the
// last pool element is forced), keeping recomputation exact regardless
// of mine count.
type MinesGame struct{}

func (g *MinesGame) Spec() GameSpec {
	return GameSpec{
		ID:          "mines",
		Name:        "Mines",
		MetricLabel: "first_mine",
	}
}

func (g *MinesGame) FloatCount(cfg Config) int {
	normalized, err := cfg.Normalize("mines")
	if err != nil {
		return defaultGridSize - 1
	}
	return normalized.GridSize - 1
}

func (g *MinesGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	cfg, err := cfg.Normalize("mines")
	if err != nil {
		return Result{}, err
	}

	floats := engine.Floats(seeds.Server, seeds.Client, nonce, 0, cfg.GridSize-1)

	pool := make([]int, cfg.GridSize)
	for i := range pool {
		pool[i] = i
	}

	permutation := make([]int, 0, cfg.GridSize-1)
	for _, f := range floats {
		if len(pool) == 0 {
			break
		}

		index := int(math.Floor(f * float64(len(pool))))
		if index >= len(pool) {
			index = len(pool) - 1
		}

		permutation = append(permutation, pool[index])
		pool = append(pool[:index], pool[index+1:]...)
	}

	mines := make([]int, cfg.MineCount)
	copy(mines, permutation[:cfg.MineCount])

	mineSet := make(map[int]bool, cfg.MineCount)
	firstMine := cfg.GridSize
	for _, pos := range mines {
		mineSet[pos] = true
		if pos < firstMine {
			firstMine = pos
		}
	}

	sorted := make([]int, len(mines))
	copy(sorted, mines)
	sort.Ints(sorted)

	return Result{
		Metric:      float64(firstMine),
		MetricLabel: "first_mine",
		Details: map[string]any{
			"grid_size":      cfg.GridSize,
			"mine_count":     cfg.MineCount,
			"mine_positions": sorted,
			"draw_order":     mines,
			"first_mine":     firstMine,
		},
	}, nil
}

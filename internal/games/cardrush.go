package games

import (
	"github.com/tradege/stek-sub013/internal/engine"
)

// CardRushGame deals CardsPerHand ranks to the player, then the same
// number to the dealer, in a fixed cursor order (player cards first).
// Each draw is IntAt(..., 13)+1 over an unlimited deck; hand value is
// the sum of rank values with faces capped at 10. Higher sum wins,
// equal sums push.
type CardRushGame struct{}

// Round outcomes as metric values.
const (
	CardRushLose = 0.0
	CardRushPush = 1.0
	CardRushWin  = 2.0
)

func (g *CardRushGame) Spec() GameSpec {
	return GameSpec{
		ID:          "cardrush",
		Name:        "Card Rush",
		MetricLabel: "outcome",
	}
}

func (g *CardRushGame) FloatCount(cfg Config) int {
	normalized, err := cfg.Normalize("cardrush")
	if err != nil {
		return 2 * defaultCardsPerHand
	}
	return 2 * normalized.CardsPerHand
}

func (g *CardRushGame) Evaluate(seeds engine.Seeds, nonce uint64, cfg Config) (Result, error) {
	cfg, err := cfg.Normalize("cardrush")
	if err != nil {
		return Result{}, err
	}

	n := cfg.CardsPerHand
	player := make([]int, n)
	dealer := make([]int, n)
	playerTotal, dealerTotal := 0, 0

	for i := 0; i < n; i++ {
		rank := int(engine.IntAt(seeds.Server, seeds.Client, nonce, uint64(i), 13)) + 1
		player[i] = rank
		playerTotal += cardRankValue(rank)
	}
	for i := 0; i < n; i++ {
		rank := int(engine.IntAt(seeds.Server, seeds.Client, nonce, uint64(n+i), 13)) + 1
		dealer[i] = rank
		dealerTotal += cardRankValue(rank)
	}

	outcome := CardRushPush
	label := "push"
	switch {
	case playerTotal > dealerTotal:
		outcome = CardRushWin
		label = "win"
	case playerTotal < dealerTotal:
		outcome = CardRushLose
		label = "lose"
	}

	return Result{
		Metric:      outcome,
		MetricLabel: "outcome",
		Details: map[string]any{
			"player_cards": player,
			"dealer_cards": dealer,
			"player_total": playerTotal,
			"dealer_total": dealerTotal,
			"outcome":      label,
		},
	}, nil
}

// cardRankValue maps rank 1..13 (A..K) to its hand value; J, Q, K cap
// at 10.
func cardRankValue(rank int) int {
	if rank > 10 {
		return 10
	}
	return rank
}

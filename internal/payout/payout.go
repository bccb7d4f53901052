// Package payout turns outcomes and bet amounts into deterministic
// monetary quotes. All arithmetic runs on shopspring decimals so
// aggregate accounting does not drift the way binary floats would over
// millions of rounds; the general law is
//
//	multiplier = (1 - houseEdge) / trueProbabilityOfOutcome
//
// so the long-run expected payout per unit bet is 1-houseEdge. House
// edge bounds are enforced when configs are normalized, never here.
package payout

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/tradege/stek-sub013/internal/engine"
	"github.com/tradege/stek-sub013/internal/games"
)

// Quote is the monetary result of one round. All values are unrounded;
// call Rounded for the 2-decimal display form.
type Quote struct {
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
	Profit     decimal.Decimal `json:"profit"`
}

// Rounded returns the quote with every value rounded to 2 decimal
// places for display. Aggregation code must keep using the unrounded
// quote.
func (q Quote) Rounded() Quote {
	return Quote{
		Multiplier: q.Multiplier.Round(2),
		Payout:     q.Payout.Round(2),
		Profit:     q.Profit.Round(2),
	}
}

var one = decimal.NewFromInt(1)

// FromMultiplier quotes a round whose multiplier is already fully
// determined by the outcome (plinko buckets, slot paytables, crash
// cashouts).
func FromMultiplier(bet, multiplier decimal.Decimal) (Quote, error) {
	if bet.IsNegative() {
		return Quote{}, fmt.Errorf("%w: negative bet amount %s", engine.ErrInvalidInput, bet)
	}
	if multiplier.IsNegative() {
		return Quote{}, fmt.Errorf("%w: negative multiplier %s", engine.ErrInvalidInput, multiplier)
	}

	pay := bet.Mul(multiplier)
	return Quote{
		Multiplier: multiplier,
		Payout:     pay,
		Profit:     pay.Sub(bet),
	}, nil
}

// DiceWins reports whether a roll beats the target in the chosen
// direction. Rolls exactly on the target lose either way.
func DiceWins(roll, target float64, rollOver bool) bool {
	if rollOver {
		return roll > target
	}
	return roll < target
}

// DiceMultiplier computes the win multiplier for a dice target. The
// roll space has exactly 10,000 outcomes (0.00..99.99), so win
// probabilities are exact integer ratios.
func DiceMultiplier(target float64, rollOver bool, cfg games.Config) (decimal.Decimal, error) {
	cfg, err := cfg.Normalize("dice")
	if err != nil {
		return decimal.Decimal{}, err
	}

	targetIdx := int64(math.Round(target * 100))
	if targetIdx < 1 || targetIdx > 9999 {
		return decimal.Decimal{}, fmt.Errorf("%w: dice target %.2f outside [0.01, 99.99]",
			engine.ErrInvalidInput, target)
	}

	var winning int64
	if rollOver {
		winning = 9999 - targetIdx
	} else {
		winning = targetIdx
	}
	if winning < 1 {
		return decimal.Decimal{}, fmt.Errorf("%w: dice target %.2f leaves no winning rolls",
			engine.ErrInvalidInput, target)
	}

	probability := decimal.New(winning, -4) // winning / 10000
	return edgeFactor(cfg).Div(probability), nil
}

// DiceQuote resolves a dice round against a target.
func DiceQuote(bet decimal.Decimal, roll, target float64, rollOver bool, cfg games.Config) (Quote, error) {
	multiplier, err := DiceMultiplier(target, rollOver, cfg)
	if err != nil {
		return Quote{}, err
	}
	if !DiceWins(roll, target, rollOver) {
		multiplier = decimal.Zero
	}
	return FromMultiplier(bet, multiplier)
}

// MinesMultiplier is the cashout multiplier after revealing
// safeRevealed tiles without hitting a mine: the inverse of the exact
// hypergeometric odds of that streak, scaled by 1-houseEdge:
//
//	(1-he) * ∏_{i=0}^{k-1} N-i / (N-m-i)
func MinesMultiplier(safeRevealed int, cfg games.Config) (decimal.Decimal, error) {
	cfg, err := cfg.Normalize("mines")
	if err != nil {
		return decimal.Decimal{}, err
	}

	safeTiles := cfg.GridSize - cfg.MineCount
	if safeRevealed < 1 || safeRevealed > safeTiles {
		return decimal.Decimal{}, fmt.Errorf("%w: %d revealed tiles outside [1, %d]",
			engine.ErrInvalidInput, safeRevealed, safeTiles)
	}

	multiplier := edgeFactor(cfg)
	for i := 0; i < safeRevealed; i++ {
		multiplier = multiplier.
			Mul(decimal.NewFromInt(int64(cfg.GridSize - i))).
			Div(decimal.NewFromInt(int64(safeTiles - i)))
	}
	return multiplier, nil
}

// MinesQuote quotes a cashout after a streak of safe reveals.
func MinesQuote(bet decimal.Decimal, safeRevealed int, cfg games.Config) (Quote, error) {
	multiplier, err := MinesMultiplier(safeRevealed, cfg)
	if err != nil {
		return Quote{}, err
	}
	return FromMultiplier(bet, multiplier)
}

// CrashQuote resolves a crash round for a player who set an automatic
// cashout. The bet pays cashout times the stake when the round survives
// to the cashout point and is lost otherwise.
func CrashQuote(bet decimal.Decimal, crashPoint float64, cashout decimal.Decimal) (Quote, error) {
	if cashout.LessThan(one) {
		return Quote{}, fmt.Errorf("%w: cashout %s below 1", engine.ErrInvalidInput, cashout)
	}

	multiplier := decimal.Zero
	if decimal.NewFromFloat(crashPoint).GreaterThanOrEqual(cashout) {
		multiplier = cashout
	}
	return FromMultiplier(bet, multiplier)
}

// CardRushWinOdds returns the exact probability of the player hand
// beating the dealer hand as an integer ratio, computed by convolving
// the single-card value distribution (values 1..9 once, 10 four times
// out of 13 ranks).
func CardRushWinOdds(cfg games.Config) (wins, total int64, err error) {
	cfg, err = cfg.Normalize("cardrush")
	if err != nil {
		return 0, 0, err
	}

	n := cfg.CardsPerHand

	// ways[s] = number of rank sequences of length n with value sum s.
	ways := []int64{1}
	for c := 0; c < n; c++ {
		next := make([]int64, len(ways)+10)
		for s, w := range ways {
			if w == 0 {
				continue
			}
			for v := 1; v <= 10; v++ {
				count := int64(1)
				if v == 10 {
					count = 4 // ranks 10, J, Q, K
				}
				next[s+v] += w * count
			}
		}
		ways = next
	}

	perHand := int64(1)
	for i := 0; i < n; i++ {
		perHand *= 13
	}

	for ps, pw := range ways {
		for ds, dw := range ways {
			if ps > ds {
				wins += pw * dw
			}
		}
	}
	return wins, perHand * perHand, nil
}

// CardRushQuote resolves a round from its outcome metric. Pushes return
// the stake, losses pay nothing, and wins pay
// ((1-he)*total - pushes) / wins so the expected payout per unit bet,
// push refunds included, is exactly 1-houseEdge.
func CardRushQuote(bet decimal.Decimal, outcome float64, cfg games.Config) (Quote, error) {
	normalized, err := cfg.Normalize("cardrush")
	if err != nil {
		return Quote{}, err
	}

	switch outcome {
	case games.CardRushLose:
		return FromMultiplier(bet, decimal.Zero)
	case games.CardRushPush:
		return FromMultiplier(bet, one)
	case games.CardRushWin:
		wins, total, err := CardRushWinOdds(cfg)
		if err != nil {
			return Quote{}, err
		}
		// Both hands draw from the identical distribution, so losses
		// mirror wins and the remainder is the push mass. The stake
		// refunded on pushes comes out of the win multiplier:
		// (wins*m + pushes) / total = 1-he.
		pushes := total - 2*wins
		multiplier := edgeFactor(normalized).
			Mul(decimal.NewFromInt(total)).
			Sub(decimal.NewFromInt(pushes)).
			Div(decimal.NewFromInt(wins))
		return FromMultiplier(bet, multiplier)
	default:
		return Quote{}, fmt.Errorf("%w: unknown card rush outcome %v", engine.ErrInvalidInput, outcome)
	}
}

// edgeFactor is 1-houseEdge as a decimal. Configs are normalized before
// this is called, so HouseEdge is always in bounds.
func edgeFactor(cfg games.Config) decimal.Decimal {
	return one.Sub(decimal.NewFromFloat(cfg.HouseEdge))
}

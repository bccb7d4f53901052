package payout

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tradege/stek-sub013/internal/engine"
	"github.com/tradege/stek-sub013/internal/games"
)

func TestFromMultiplier(t *testing.T) {
	bet := decimal.RequireFromString("12.50")
	mult := decimal.RequireFromString("2.4")

	quote, err := FromMultiplier(bet, mult)
	if err != nil {
		t.Fatal(err)
	}
	if got := quote.Payout.String(); got != "30" {
		t.Errorf("payout %s, want 30", got)
	}
	if got := quote.Profit.String(); got != "17.5" {
		t.Errorf("profit %s, want 17.5", got)
	}

	if _, err := FromMultiplier(decimal.NewFromInt(-1), mult); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("negative bet: got %v, want ErrInvalidInput", err)
	}
	if _, err := FromMultiplier(bet, decimal.NewFromInt(-1)); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("negative multiplier: got %v, want ErrInvalidInput", err)
	}
}

func TestQuoteRounded(t *testing.T) {
	quote, err := FromMultiplier(decimal.RequireFromString("10"), decimal.RequireFromString("1.996842"))
	if err != nil {
		t.Fatal(err)
	}

	rounded := quote.Rounded()
	if got := rounded.Payout.String(); got != "19.97" {
		t.Errorf("rounded payout %s, want 19.97", got)
	}
	// The original quote stays unrounded for aggregation.
	if got := quote.Payout.String(); got != "19.96842" {
		t.Errorf("unrounded payout %s, want 19.96842", got)
	}
}

func TestDiceWins(t *testing.T) {
	tests := []struct {
		roll, target float64
		rollOver     bool
		want         bool
	}{
		{60.00, 50.00, true, true},
		{40.00, 50.00, true, false},
		{40.00, 50.00, false, true},
		{60.00, 50.00, false, false},
		// Exactly on target loses both directions.
		{50.00, 50.00, true, false},
		{50.00, 50.00, false, false},
	}
	for _, tt := range tests {
		if got := DiceWins(tt.roll, tt.target, tt.rollOver); got != tt.want {
			t.Errorf("DiceWins(%v, %v, %v) = %v, want %v", tt.roll, tt.target, tt.rollOver, got, tt.want)
		}
	}
}

func TestDiceMultiplier(t *testing.T) {
	// Under 50.00: 5000 of 10000 rolls win, multiplier 0.96/0.5.
	mult, err := DiceMultiplier(50.00, false, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := mult.String(); got != "1.92" {
		t.Errorf("under 50 multiplier %s, want 1.92", got)
	}

	// Under 49.99: 4999 winning rolls, 9600/4999 exactly.
	mult, err = DiceMultiplier(49.99, false, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := mult.InexactFloat64(); math.Abs(got-1.920384076815363) > 1e-12 {
		t.Errorf("under 49.99 multiplier %v, want 1.920384076815363", got)
	}

	// Over 49.99 wins on 4999 rolls too (the 9999 target grid minus
	// 5000 losing outcomes at and below the target): symmetric odds.
	over, err := DiceMultiplier(50.00, true, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := over.InexactFloat64(); math.Abs(got-0.96/0.4999) > 1e-12 {
		t.Errorf("over 50 multiplier %v, want %v", got, 0.96/0.4999)
	}

	// Targets outside the playable band.
	for _, target := range []float64{0.00, 100.00, -3.0} {
		if _, err := DiceMultiplier(target, false, games.Config{}); !errors.Is(err, engine.ErrInvalidInput) {
			t.Errorf("target %v: got %v, want ErrInvalidInput", target, err)
		}
	}
	// Over 99.99 leaves zero winning rolls.
	if _, err := DiceMultiplier(99.99, true, games.Config{}); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("over 99.99: got %v, want ErrInvalidInput", err)
	}
}

func TestDiceQuote(t *testing.T) {
	bet := decimal.NewFromInt(100)

	win, err := DiceQuote(bet, 16.41, 50.00, false, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := win.Payout.String(); got != "192" {
		t.Errorf("winning payout %s, want 192", got)
	}

	loss, err := DiceQuote(bet, 60.00, 50.00, false, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !loss.Payout.IsZero() {
		t.Errorf("losing payout %s, want 0", loss.Payout)
	}
	if got := loss.Profit.String(); got != "-100" {
		t.Errorf("losing profit %s, want -100", got)
	}
}

// Long-run dice return must track 1-houseEdge.
func TestDiceReturnToPlayer(t *testing.T) {
	game, _ := games.Get("dice")
	seeds := engine.Seeds{Server: "sim_server_seed", Client: "sim_client_seed"}
	bet := decimal.NewFromInt(1)

	const rounds = 100000
	total := decimal.Zero
	for n := uint64(0); n < rounds; n++ {
		result, err := game.Evaluate(seeds, n, games.Config{})
		if err != nil {
			t.Fatal(err)
		}
		quote, err := DiceQuote(bet, result.Metric, 50.00, false, games.Config{})
		if err != nil {
			t.Fatal(err)
		}
		total = total.Add(quote.Payout)
	}

	rtp := total.Div(decimal.NewFromInt(rounds)).InexactFloat64()
	if rtp < 0.92 || rtp > 0.99 {
		t.Errorf("return to player %.4f, want near 0.96", rtp)
	}
}

func TestMinesMultiplier(t *testing.T) {
	// Default grid 25, 3 mines. One safe reveal: 0.96 * 25/22.
	mult, err := MinesMultiplier(1, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := mult.InexactFloat64(); math.Abs(got-0.96*25.0/22.0) > 1e-12 {
		t.Errorf("k=1 multiplier %v, want %v", got, 0.96*25.0/22.0)
	}

	// Five reveals: 0.96 * (25*24*23)/(20*19*18) = 184/95 exactly.
	mult, err = MinesMultiplier(5, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := mult.InexactFloat64(); math.Abs(got-184.0/95.0) > 1e-9 {
		t.Errorf("k=5 multiplier %v, want %v", got, 184.0/95.0)
	}

	// Multipliers grow strictly with each safe reveal.
	prev := decimal.Zero
	for k := 1; k <= 22; k++ {
		m, err := MinesMultiplier(k, games.Config{})
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if !m.GreaterThan(prev) {
			t.Fatalf("k=%d multiplier %s not above k=%d %s", k, m, k-1, prev)
		}
		prev = m
	}

	// Beyond the safe tile count there is nothing left to reveal.
	if _, err := MinesMultiplier(23, games.Config{}); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("k=23: got %v, want ErrInvalidInput", err)
	}
	if _, err := MinesMultiplier(0, games.Config{}); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("k=0: got %v, want ErrInvalidInput", err)
	}
}

func TestCrashQuote(t *testing.T) {
	bet := decimal.NewFromInt(10)

	survived, err := CrashQuote(bet, 58.85, decimal.RequireFromString("2.00"))
	if err != nil {
		t.Fatal(err)
	}
	if got := survived.Payout.String(); got != "20" {
		t.Errorf("survived payout %s, want 20", got)
	}

	busted, err := CrashQuote(bet, 1.00, decimal.RequireFromString("2.00"))
	if err != nil {
		t.Fatal(err)
	}
	if !busted.Payout.IsZero() {
		t.Errorf("busted payout %s, want 0", busted.Payout)
	}

	// Cashout exactly at the crash point still pays.
	exact, err := CrashQuote(bet, 2.00, decimal.RequireFromString("2.00"))
	if err != nil {
		t.Fatal(err)
	}
	if got := exact.Payout.String(); got != "20" {
		t.Errorf("exact cashout payout %s, want 20", got)
	}

	if _, err := CrashQuote(bet, 2.00, decimal.RequireFromString("0.50")); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("cashout below 1: got %v, want ErrInvalidInput", err)
	}
}

func TestCardRushWinOdds(t *testing.T) {
	wins, total, err := CardRushWinOdds(games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if total != 4826809 { // 13^6
		t.Errorf("total %d, want 4826809", total)
	}
	if wins != 2290770 {
		t.Errorf("wins %d, want 2290770", wins)
	}

	// Single-card hands: 13^2 sequences, wins by symmetry below half.
	wins, total, err = CardRushWinOdds(games.Config{CardsPerHand: 1})
	if err != nil {
		t.Fatal(err)
	}
	if total != 169 {
		t.Errorf("total %d, want 169", total)
	}
	if wins*2 >= total {
		t.Errorf("wins %d of %d; win and loss must leave push mass", wins, total)
	}
}

func TestCardRushQuote(t *testing.T) {
	bet := decimal.NewFromInt(10)

	win, err := CardRushQuote(bet, games.CardRushWin, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	// 245269 of the 13^6 sequences push and refund the stake; the win
	// multiplier carries the rest of the 0.96 return.
	want := (0.96*4826809.0 - 245269.0) / 2290770.0
	if got := win.Multiplier.InexactFloat64(); math.Abs(got-want) > 1e-9 {
		t.Errorf("win multiplier %v, want %v", got, want)
	}

	push, err := CardRushQuote(bet, games.CardRushPush, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := push.Payout.String(); got != "10" {
		t.Errorf("push payout %s, want the stake back", got)
	}
	if !push.Profit.IsZero() {
		t.Errorf("push profit %s, want 0", push.Profit)
	}

	lose, err := CardRushQuote(bet, games.CardRushLose, games.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !lose.Payout.IsZero() {
		t.Errorf("lose payout %s, want 0", lose.Payout)
	}

	if _, err := CardRushQuote(bet, 7.5, games.Config{}); !errors.Is(err, engine.ErrInvalidInput) {
		t.Errorf("unknown outcome: got %v, want ErrInvalidInput", err)
	}
}

// Expected payout per unit bet — win mass times the win multiplier plus
// the push refunds — must equal 1-houseEdge for every hand size.
func TestCardRushExpectedValue(t *testing.T) {
	for hand := 1; hand <= 5; hand++ {
		cfg := games.Config{CardsPerHand: hand}

		wins, total, err := CardRushWinOdds(cfg)
		if err != nil {
			t.Fatalf("hand size %d: %v", hand, err)
		}
		pushes := total - 2*wins

		win, err := CardRushQuote(decimal.NewFromInt(1), games.CardRushWin, cfg)
		if err != nil {
			t.Fatalf("hand size %d: %v", hand, err)
		}

		ev := win.Payout.
			Mul(decimal.NewFromInt(wins)).
			Add(decimal.NewFromInt(pushes)).
			Div(decimal.NewFromInt(total))
		if got := ev.InexactFloat64(); math.Abs(got-0.96) > 1e-12 {
			t.Errorf("hand size %d: expected payout %.15f per unit bet, want 0.96", hand, got)
		}
	}
}

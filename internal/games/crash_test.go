package games

import (
	"testing"

	"github.com/tradege/stek-sub013/internal/engine"
)

func TestCrashGoldenVector(t *testing.T) {
	seeds := engine.Seeds{Server: "abc", Client: "def"}
	game := &CrashGame{}

	result, err := game.Evaluate(seeds, 5, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Metric != 58.85 {
		t.Errorf("crash point %v, want 58.85", result.Metric)
	}
	if result.Details["instant_bust"] != false {
		t.Error("golden round flagged as instant bust")
	}
}

func TestCrashInstantBust(t *testing.T) {
	// Nonce 50 under abc/def draws 0.00196..., below the 0.02 floor.
	seeds := engine.Seeds{Server: "abc", Client: "def"}
	game := &CrashGame{}

	result, err := game.Evaluate(seeds, 50, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Metric != 1.0 {
		t.Errorf("instant bust resolved at %v, want 1.00", result.Metric)
	}
	if result.Details["instant_bust"] != true {
		t.Error("instant bust not flagged")
	}
}

// The fraction of rounds resolving at exactly 1.00 must match the
// configured instant-bust probability, because non-bust rounds are
// floored at 1.01.
func TestCrashBustFraction(t *testing.T) {
	seeds := engine.Seeds{Server: "sim_server_seed", Client: "sim_client_seed"}
	game := &CrashGame{}

	const rounds = 100000
	busts := 0
	for n := uint64(0); n < rounds; n++ {
		result, err := game.Evaluate(seeds, n, Config{})
		if err != nil {
			t.Fatal(err)
		}
		if result.Metric == 1.0 {
			busts++
		} else if result.Metric < crashMinPoint {
			t.Fatalf("nonce %d: non-bust point %v below %v", n, result.Metric, crashMinPoint)
		}
	}

	fraction := float64(busts) / rounds
	if fraction < 0.015 || fraction > 0.025 {
		t.Errorf("instant bust fraction %.5f, want 0.02 ± 0.005", fraction)
	}
}

func TestCrashRejectsBadInstantBust(t *testing.T) {
	game := &CrashGame{}
	seeds := engine.Seeds{Server: "abc", Client: "def"}
	if _, err := game.Evaluate(seeds, 0, Config{InstantBust: 0.5}); err == nil {
		t.Error("out-of-bounds instant bust accepted")
	}
}

package games

import (
	"math"
	"reflect"
	"testing"

	"github.com/tradege/stek-sub013/internal/engine"
)

func TestSlotsGoldenVectors(t *testing.T) {
	seeds := engine.Seeds{Server: "abc", Client: "def"}
	game := &SlotsGame{}

	// Nonce 3: no leading run, zero pay.
	result, err := game.Evaluate(seeds, 3, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Details["reels"].([]int); !reflect.DeepEqual(got, []int{5, 3, 2}) {
		t.Errorf("reels %v, want [5 3 2]", got)
	}
	if result.Metric != 0 {
		t.Errorf("multiplier %v, want 0 for run of 1", result.Metric)
	}

	// Nonce 1: symbol 4 twice, a paying two-run.
	result, err = game.Evaluate(seeds, 1, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Details["reels"].([]int); !reflect.DeepEqual(got, []int{4, 4, 3}) {
		t.Errorf("reels %v, want [4 4 3]", got)
	}
	if math.Abs(result.Metric-6.533333333333333) > 1e-12 {
		t.Errorf("multiplier %v, want 6.5333...", result.Metric)
	}
}

func TestOlympusGoldenVectors(t *testing.T) {
	seeds := engine.Seeds{Server: "abc", Client: "def"}
	game := &OlympusGame{}

	result, err := game.Evaluate(seeds, 3, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Details["reels"].([]int); !reflect.DeepEqual(got, []int{7, 4, 3, 7, 7}) {
		t.Errorf("reels %v, want [7 4 3 7 7]", got)
	}
	// Matches off the leading run do not pay.
	if result.Metric != 0 {
		t.Errorf("multiplier %v, want 0", result.Metric)
	}

	result, err = game.Evaluate(seeds, 1, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if got := result.Details["reels"].([]int); !reflect.DeepEqual(got, []int{5, 5, 3, 6, 8}) {
		t.Errorf("reels %v, want [5 5 3 6 8]", got)
	}
	if math.Abs(result.Metric-7.8486728971962645) > 1e-12 {
		t.Errorf("multiplier %v, want 7.8486...", result.Metric)
	}
}

// The normalized paytable must hit the configured return exactly.
func TestPaytableNormalization(t *testing.T) {
	for _, he := range []float64{0.01, 0.04, 0.10} {
		cfg, err := Config{HouseEdge: he}.Normalize("slots")
		if err != nil {
			t.Fatal(err)
		}
		ev := paytableEV(cfg.Paytable, cfg.SymbolCount, cfg.Reels)
		if math.Abs(ev-(1.0-he)) > 1e-12 {
			t.Errorf("house edge %v: paytable EV %.15f, want %.15f", he, ev, 1.0-he)
		}
	}
}

// Run probabilities over all symbols and lengths must sum with the
// no-run mass to 1.
func TestRunProbabilityComplete(t *testing.T) {
	const symbols, reels = 7, 3

	total := 0.0
	for k := 1; k <= reels; k++ {
		total += float64(symbols) * runProbability(symbols, reels, k)
	}
	if math.Abs(total-1.0) > 1e-12 {
		t.Errorf("run probabilities sum to %.15f, want 1", total)
	}
}

func TestCustomPaytableValidation(t *testing.T) {
	seeds := engine.Seeds{Server: "abc", Client: "def"}
	game := &SlotsGame{}

	// Wrong row count.
	bad := Config{Paytable: [][]float64{{0, 0, 1, 2}}}
	if _, err := game.Evaluate(seeds, 0, bad); err == nil {
		t.Error("paytable with wrong symbol count accepted")
	}

	// Pay on a run of 1.
	rows := make([][]float64, 7)
	for i := range rows {
		rows[i] = []float64{0, 1, 2, 3}
	}
	if _, err := game.Evaluate(seeds, 0, Config{Paytable: rows}); err == nil {
		t.Error("paytable paying single-reel runs accepted")
	}

	// A valid custom table normalizes to the house edge.
	for i := range rows {
		rows[i] = []float64{0, 0, float64(i + 1), float64(2 * (i + 1))}
	}
	cfg, err := Config{Paytable: rows}.Normalize("slots")
	if err != nil {
		t.Fatal(err)
	}
	ev := paytableEV(cfg.Paytable, cfg.SymbolCount, cfg.Reels)
	if math.Abs(ev-0.96) > 1e-12 {
		t.Errorf("custom paytable EV %.15f, want 0.96", ev)
	}
}

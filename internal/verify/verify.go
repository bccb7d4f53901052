// Package verify recomputes round outcomes from revealed seeds so any
// party can confirm that nothing was altered after commitment. It is
// pure recomputation: no side effects, nothing retryable.
package verify

import (
	"fmt"

	"github.com/tradege/stek-sub013/internal/engine"
	"github.com/tradege/stek-sub013/internal/games"
)

// Request names one round to recompute. ServerSeedHash is the
// commitment published before play; when present it is checked against
// ServerSeed before anything is derived.
type Request struct {
	ServerSeed     string       `json:"server_seed"`
	ServerSeedHash string       `json:"server_seed_hash,omitempty"`
	ClientSeed     string       `json:"client_seed"`
	Nonce          uint64       `json:"nonce"`
	Game           string       `json:"game"`
	Config         games.Config `json:"config"`
}

// Recompute replays the round and returns the outcome the engine would
// have served. If the revealed server seed does not match the
// commitment, verification fails closed with ErrVerificationMismatch —
// it never falls back to a default outcome.
func Recompute(req Request) (games.Result, error) {
	if req.ServerSeed == "" {
		return games.Result{}, fmt.Errorf("%w: server seed is required", engine.ErrInvalidInput)
	}
	if req.ClientSeed == "" {
		return games.Result{}, fmt.Errorf("%w: client seed is required", engine.ErrInvalidInput)
	}

	if req.ServerSeedHash != "" && !engine.CheckSeedHash(req.ServerSeed, req.ServerSeedHash) {
		return games.Result{}, fmt.Errorf("%w: server seed does not match commitment %s",
			engine.ErrVerificationMismatch, req.ServerSeedHash)
	}

	game, ok := games.Get(req.Game)
	if !ok {
		return games.Result{}, fmt.Errorf("%w: %q", engine.ErrUnknownGame, req.Game)
	}

	cfg, err := req.Config.Normalize(req.Game)
	if err != nil {
		return games.Result{}, err
	}

	seeds := engine.Seeds{Server: req.ServerSeed, Client: req.ClientSeed}
	return game.Evaluate(seeds, req.Nonce, cfg)
}

// Check recomputes the round and compares it against the metric that
// was served. A mismatch is a definite failure, never transient.
func Check(req Request, servedMetric float64) (games.Result, error) {
	result, err := Recompute(req)
	if err != nil {
		return games.Result{}, err
	}

	if result.Metric != servedMetric {
		return result, fmt.Errorf("%w: recomputed %s %v, served %v",
			engine.ErrVerificationMismatch, result.MetricLabel, result.Metric, servedMetric)
	}

	return result, nil
}

package api

import (
	"github.com/tradege/stek-sub013/internal/games"
	"github.com/tradege/stek-sub013/internal/verify"
)

// EngineVersion is reported on every response so verifiers can pin the
// exact algorithm revision they recomputed against.
const EngineVersion = "1.0.0"

// Error type identifiers used in structured error responses.
const (
	ErrTypeValidation   = "VALIDATION_ERROR"
	ErrTypeConfig       = "CONFIGURATION_ERROR"
	ErrTypeMismatch     = "VERIFICATION_MISMATCH"
	ErrTypeGameNotFound = "GAME_NOT_FOUND"
	ErrTypeProtocol     = "COMMITMENT_PROTOCOL_ERROR"
	ErrTypeInternal     = "INTERNAL_ERROR"
)

// EngineError is the structured error payload.
type EngineError struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

func (e EngineError) Error() string {
	return e.Message
}

// VerifyRequest asks the server to recompute a round from a revealed
// server seed. ServedMetric is optional; when present the response
// reports whether the recomputed outcome matches it.
type VerifyRequest struct {
	ServerSeed     string        `json:"server_seed"`
	ServerSeedHash string        `json:"server_seed_hash,omitempty"`
	ClientSeed     string        `json:"client_seed"`
	Nonce          uint64        `json:"nonce"`
	Game           string        `json:"game"`
	Config         games.Config  `json:"config"`
	ServedMetric   *float64      `json:"served_metric,omitempty"`
}

// VerifyResponse carries the recomputed outcome.
type VerifyResponse struct {
	Nonce         uint64       `json:"nonce"`
	Game          string       `json:"game"`
	Result        games.Result `json:"result"`
	Matches       *bool        `json:"matches,omitempty"`
	EngineVersion string       `json:"engine_version"`
}

// SeedHashRequest asks for the commitment of a server seed.
type SeedHashRequest struct {
	ServerSeed string `json:"server_seed"`
}

type SeedHashResponse struct {
	Hash          string `json:"hash"`
	EngineVersion string `json:"engine_version"`
}

// CommitRequest opens a new seed pair for a client seed.
type CommitRequest struct {
	ClientSeed string `json:"client_seed"`
}

// CommitResponse exposes only the commitment, never the seed.
type CommitResponse struct {
	SeedPairID     string `json:"seed_pair_id"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	EngineVersion  string `json:"engine_version"`
}

// RevealRequest retires a pair and discloses its server seed.
type RevealRequest struct {
	SeedPairID string `json:"seed_pair_id"`
}

type RevealResponse struct {
	SeedPairID     string `json:"seed_pair_id"`
	ServerSeed     string `json:"server_seed"`
	ServerSeedHash string `json:"server_seed_hash"`
	ClientSeed     string `json:"client_seed"`
	Rounds         uint64 `json:"rounds"`
	EngineVersion  string `json:"engine_version"`
}

// GamesResponse lists the registered games.
type GamesResponse struct {
	Games         []games.GameSpec `json:"games"`
	EngineVersion string           `json:"engine_version"`
}

func (r VerifyRequest) toVerify() verify.Request {
	return verify.Request{
		ServerSeed:     r.ServerSeed,
		ServerSeedHash: r.ServerSeedHash,
		ClientSeed:     r.ClientSeed,
		Nonce:          r.Nonce,
		Game:           r.Game,
		Config:         r.Config,
	}
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tradege/stek-sub013/internal/engine"
	"github.com/tradege/stek-sub013/internal/games"
	"github.com/tradege/stek-sub013/internal/store"
	"github.com/tradege/stek-sub013/internal/verify"
)

// handleVerify recomputes a round from a revealed server seed.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", map[string]any{
			"error": err.Error(),
		})
		return
	}

	if err := ValidateVerifyRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	// Seeds are never logged raw, only as commitments.
	s.log.WithFields(logrus.Fields{
		"game":        req.Game,
		"server_hash": engine.HashServerSeed(req.ServerSeed),
		"client_seed": req.ClientSeed,
		"nonce":       req.Nonce,
	}).Info("verify request")

	result, err := verify.Recompute(req.toVerify())
	if err != nil {
		status, errType := classifyError(err)
		s.writeError(w, status, errType, err.Error(), map[string]any{
			"game":  req.Game,
			"nonce": req.Nonce,
		})
		return
	}

	resp := VerifyResponse{
		Nonce:         req.Nonce,
		Game:          req.Game,
		Result:        result,
		EngineVersion: EngineVersion,
	}
	if req.ServedMetric != nil {
		matches := result.Metric == *req.ServedMetric
		resp.Matches = &matches
	}

	s.writeJSON(w, http.StatusOK, resp)
}

// handleSeedHash returns the SHA-256 commitment of a server seed.
func (s *Server) handleSeedHash(w http.ResponseWriter, r *http.Request) {
	var req SeedHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", nil)
		return
	}
	if err := ValidateSeedHashRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	hash := engine.HashServerSeed(req.ServerSeed)
	s.log.WithField("hash", hash).Info("seed hash request")

	s.writeJSON(w, http.StatusOK, SeedHashResponse{
		Hash:          hash,
		EngineVersion: EngineVersion,
	})
}

// handleCommit opens a new seed pair: generates a server seed, stores
// the pair, returns the commitment only.
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	var req CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", nil)
		return
	}
	if err := ValidateCommitRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	serverSeed, err := engine.GenerateServerSeed()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "seed generation failed", nil)
		return
	}

	pair := &store.SeedPair{
		ServerSeed:     serverSeed,
		ServerSeedHash: engine.HashServerSeed(serverSeed),
		ClientSeed:     req.ClientSeed,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.db.SaveSeedPair(pair); err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to store seed pair", nil)
		return
	}

	s.log.WithFields(logrus.Fields{
		"seed_pair_id": pair.ID,
		"server_hash":  pair.ServerSeedHash,
	}).Info("seed pair committed")

	s.writeJSON(w, http.StatusOK, CommitResponse{
		SeedPairID:     pair.ID,
		ServerSeedHash: pair.ServerSeedHash,
		ClientSeed:     pair.ClientSeed,
		EngineVersion:  EngineVersion,
	})
}

// handleReveal retires a pair and discloses its server seed. Once
// retired the pair is immutable audit data; disclosure is safe because
// no further rounds can be played under it.
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	var req RevealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", nil)
		return
	}
	if req.SeedPairID == "" {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "seed_pair_id is required", nil)
		return
	}

	if err := s.db.RetireSeedPair(req.SeedPairID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, ErrTypeProtocol, "seed pair was never committed", nil)
			return
		}
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to retire seed pair", nil)
		return
	}

	pair, err := s.db.GetSeedPair(req.SeedPairID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, ErrTypeInternal, "failed to load seed pair", nil)
		return
	}

	s.log.WithFields(logrus.Fields{
		"seed_pair_id": pair.ID,
		"server_hash":  pair.ServerSeedHash,
		"rounds":       pair.Nonce,
	}).Info("seed pair revealed")

	s.writeJSON(w, http.StatusOK, RevealResponse{
		SeedPairID:     pair.ID,
		ServerSeed:     pair.ServerSeed,
		ServerSeedHash: pair.ServerSeedHash,
		ClientSeed:     pair.ClientSeed,
		Rounds:         pair.Nonce,
		EngineVersion:  EngineVersion,
	})
}

// handleListGames returns the registered game specs.
func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GamesResponse{
		Games:         games.List(),
		EngineVersion: EngineVersion,
	})
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.startTime).Seconds()),
		"engine_version": EngineVersion,
	})
}

// classifyError maps engine error sentinels onto HTTP statuses and
// structured error types.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, engine.ErrVerificationMismatch):
		return http.StatusUnprocessableEntity, ErrTypeMismatch
	case errors.Is(err, engine.ErrUnknownGame):
		return http.StatusNotFound, ErrTypeGameNotFound
	case errors.Is(err, engine.ErrConfiguration):
		return http.StatusBadRequest, ErrTypeConfig
	case errors.Is(err, engine.ErrInvalidInput):
		return http.StatusBadRequest, ErrTypeValidation
	case errors.Is(err, engine.ErrSeedNotCommitted), errors.Is(err, engine.ErrSeedNotRetired):
		return http.StatusConflict, ErrTypeProtocol
	default:
		return http.StatusInternalServerError, ErrTypeInternal
	}
}

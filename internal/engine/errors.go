package engine

import "errors"

// Core failure taxonomy. Nothing here is retryable: every operation is
// deterministic, so a failure with the same inputs fails the same way.
var (
	// ErrInvalidInput marks malformed seeds, out-of-range parameters or
	// anything else rejected before stream derivation starts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration marks a game configuration outside its allowed
	// bounds. Raised at config-update time, never during evaluation.
	ErrConfiguration = errors.New("invalid game configuration")

	// ErrVerificationMismatch marks a recomputed outcome or seed hash
	// that does not match the claimed one. Always a definite failure.
	ErrVerificationMismatch = errors.New("verification mismatch")

	// ErrUnknownGame marks a game ID with no registered mapper.
	ErrUnknownGame = errors.New("unknown game")

	// ErrSeedNotCommitted is returned when a reveal refers to a hash
	// that was never committed through this manager.
	ErrSeedNotCommitted = errors.New("server seed was never committed")

	// ErrSeedNotRetired is returned when a reveal is attempted while
	// rounds may still be played under the seed.
	ErrSeedNotRetired = errors.New("server seed is not retired yet")
)

package api

import (
	"fmt"
	"strings"
)

const (
	maxSeedLength       = 256
	maxClientSeedLength = 128
)

// ValidateVerifyRequest checks structural validity before any engine
// call. Config bounds are the games package's job.
func ValidateVerifyRequest(req *VerifyRequest) error {
	if strings.TrimSpace(req.ServerSeed) == "" {
		return fmt.Errorf("server_seed is required")
	}
	if len(req.ServerSeed) > maxSeedLength {
		return fmt.Errorf("server_seed exceeds %d characters", maxSeedLength)
	}
	if strings.TrimSpace(req.ClientSeed) == "" {
		return fmt.Errorf("client_seed is required")
	}
	if len(req.ClientSeed) > maxClientSeedLength {
		return fmt.Errorf("client_seed exceeds %d characters", maxClientSeedLength)
	}
	if strings.TrimSpace(req.Game) == "" {
		return fmt.Errorf("game is required")
	}
	return nil
}

// ValidateSeedHashRequest checks a hash request.
func ValidateSeedHashRequest(req *SeedHashRequest) error {
	if strings.TrimSpace(req.ServerSeed) == "" {
		return fmt.Errorf("server_seed is required")
	}
	if len(req.ServerSeed) > maxSeedLength {
		return fmt.Errorf("server_seed exceeds %d characters", maxSeedLength)
	}
	return nil
}

// ValidateCommitRequest checks a commit request.
func ValidateCommitRequest(req *CommitRequest) error {
	if strings.TrimSpace(req.ClientSeed) == "" {
		return fmt.Errorf("client_seed is required")
	}
	if len(req.ClientSeed) > maxClientSeedLength {
		return fmt.Errorf("client_seed exceeds %d characters", maxClientSeedLength)
	}
	return nil
}

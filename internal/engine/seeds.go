package engine

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

const serverSeedBytes = 32 // 256 bits of entropy per commitment

// SeedPair binds a committed server seed to a client seed. The hash is
// published before any round is played; the server seed itself stays
// secret until the pair is retired.
type SeedPair struct {
	ServerSeed     string    `json:"server_seed,omitempty"`
	ServerSeedHash string    `json:"server_seed_hash"`
	ClientSeed     string    `json:"client_seed"`
	Nonce          uint64    `json:"nonce"`
	Retired        bool      `json:"retired"`
	CreatedAt      time.Time `json:"created_at"`
}

// GenerateServerSeed returns a fresh 256-bit secret as lowercase hex.
func GenerateServerSeed() (string, error) {
	raw := make([]byte, serverSeedBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("server seed entropy: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashServerSeed computes the SHA-256 commitment of a server seed.
// The seed string is hashed as-is, without hex-decoding.
func HashServerSeed(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// CheckSeedHash reports whether serverSeed matches the published
// commitment. Comparison is constant-time.
func CheckSeedHash(serverSeed, serverSeedHash string) bool {
	computed := HashServerSeed(serverSeed)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(serverSeedHash)) == 1
}

// CommitmentManager enforces the commit/reveal protocol for server
// seeds: a seed must be committed before play and may only be revealed
// after its pair is retired. It holds no persistent state; the session
// layer stores pairs and allocates nonces.
type CommitmentManager struct {
	mu    sync.Mutex
	pairs map[string]*SeedPair // keyed by server seed hash
}

func NewCommitmentManager() *CommitmentManager {
	return &CommitmentManager{pairs: make(map[string]*SeedPair)}
}

// Commit generates a fresh server seed, records the active pair and
// returns it. Callers must only ever publish ServerSeedHash until the
// pair is retired.
func (m *CommitmentManager) Commit(clientSeed string) (*SeedPair, error) {
	if clientSeed == "" {
		return nil, fmt.Errorf("%w: client seed must not be empty", ErrInvalidInput)
	}

	serverSeed, err := GenerateServerSeed()
	if err != nil {
		return nil, err
	}

	pair := &SeedPair{
		ServerSeed:     serverSeed,
		ServerSeedHash: HashServerSeed(serverSeed),
		ClientSeed:     clientSeed,
		CreatedAt:      time.Now().UTC(),
	}

	m.mu.Lock()
	m.pairs[pair.ServerSeedHash] = pair
	m.mu.Unlock()

	return pair, nil
}

// Retire marks the pair as finished. No further rounds may be played
// under it; the server seed becomes eligible for reveal.
func (m *CommitmentManager) Retire(serverSeedHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, ok := m.pairs[serverSeedHash]
	if !ok {
		return fmt.Errorf("%w: hash %s", ErrSeedNotCommitted, serverSeedHash)
	}
	pair.Retired = true
	return nil
}

// Reveal discloses the server seed of a retired pair. Revealing an
// unknown or still-active pair is a protocol violation.
func (m *CommitmentManager) Reveal(serverSeedHash string) (*SeedPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pair, ok := m.pairs[serverSeedHash]
	if !ok {
		return nil, fmt.Errorf("%w: hash %s", ErrSeedNotCommitted, serverSeedHash)
	}
	if !pair.Retired {
		return nil, fmt.Errorf("%w: hash %s", ErrSeedNotRetired, serverSeedHash)
	}

	copied := *pair
	return &copied, nil
}

package store

import (
	"time"
)

// DB is the audit persistence interface: seed pair lifecycle plus the
// round log. It is the session layer's collaborator — the outcome
// engine itself never touches it.
type DB interface {
	Close() error
	Migrate() error

	SaveSeedPair(pair *SeedPair) error
	GetSeedPair(id string) (*SeedPair, error)
	GetSeedPairByHash(serverSeedHash string) (*SeedPair, error)
	// NextNonce allocates the next round nonce for an active pair.
	// Allocation is serialized by the database so every round under a
	// pair gets a unique, monotonically increasing nonce.
	NextNonce(id string) (uint64, error)
	// RetireSeedPair ends the pair's life: no further nonces are
	// allocated and the row becomes immutable audit data.
	RetireSeedPair(id string) error

	SaveRound(round *Round) error
	ListRounds(seedPairID string, limit, offset int) ([]Round, error)
}

// SeedPair is the stored commitment lifecycle record. ServerSeed stays
// in the row from the start but is only ever exposed once Retired.
type SeedPair struct {
	ID             string     `json:"id" db:"id"`
	ServerSeed     string     `json:"server_seed,omitempty" db:"server_seed"`
	ServerSeedHash string     `json:"server_seed_hash" db:"server_seed_hash"`
	ClientSeed     string     `json:"client_seed" db:"client_seed"`
	Nonce          uint64     `json:"nonce" db:"nonce"`
	Retired        bool       `json:"retired" db:"retired"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	RetiredAt      *time.Time `json:"retired_at,omitempty" db:"retired_at"`
}

// Round is one played round's audit record.
type Round struct {
	ID          string    `json:"id" db:"id"`
	SeedPairID  string    `json:"seed_pair_id" db:"seed_pair_id"`
	Game        string    `json:"game" db:"game"`
	Nonce       uint64    `json:"nonce" db:"nonce"`
	Metric      float64   `json:"metric" db:"metric"`
	MetricLabel string    `json:"metric_label" db:"metric_label"`
	Details     string    `json:"details" db:"details"` // JSON string
	BetAmount   string    `json:"bet_amount" db:"bet_amount"`
	Payout      string    `json:"payout" db:"payout"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

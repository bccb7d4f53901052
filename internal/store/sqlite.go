package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a seed pair does not exist.
var ErrNotFound = errors.New("store: not found")

// ErrRetired is returned when an operation needs an active pair but
// the pair is already retired.
var ErrRetired = errors.New("store: seed pair is retired")

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the audit database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps readers unblocked while rounds are appended.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS seed_pairs (
			id TEXT PRIMARY KEY,
			server_seed TEXT NOT NULL,
			server_seed_hash TEXT NOT NULL UNIQUE,
			client_seed TEXT NOT NULL,
			nonce INTEGER NOT NULL DEFAULT 0,
			retired INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			retired_at DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS rounds (
			id TEXT PRIMARY KEY,
			seed_pair_id TEXT NOT NULL,
			game TEXT NOT NULL,
			nonce INTEGER NOT NULL,
			metric REAL NOT NULL,
			metric_label TEXT NOT NULL,
			details TEXT,
			bet_amount TEXT NOT NULL DEFAULT '0',
			payout TEXT NOT NULL DEFAULT '0',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (seed_pair_id) REFERENCES seed_pairs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_pair ON rounds(seed_pair_id, nonce)`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_game ON rounds(game)`,
		`CREATE INDEX IF NOT EXISTS idx_seed_pairs_hash ON seed_pairs(server_seed_hash)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveSeedPair inserts a freshly committed pair.
func (s *SQLiteDB) SaveSeedPair(pair *SeedPair) error {
	if pair.ID == "" {
		pair.ID = uuid.New().String()
	}
	if pair.CreatedAt.IsZero() {
		pair.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO seed_pairs (id, server_seed, server_seed_hash, client_seed, nonce, retired, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		pair.ID, pair.ServerSeed, pair.ServerSeedHash, pair.ClientSeed,
		pair.Nonce, boolToInt(pair.Retired), pair.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save seed pair: %w", err)
	}
	return nil
}

// GetSeedPair loads a pair by ID.
func (s *SQLiteDB) GetSeedPair(id string) (*SeedPair, error) {
	return s.getSeedPair(`SELECT id, server_seed, server_seed_hash, client_seed, nonce, retired, created_at, retired_at
		FROM seed_pairs WHERE id = ?`, id)
}

// GetSeedPairByHash loads a pair by its published commitment.
func (s *SQLiteDB) GetSeedPairByHash(serverSeedHash string) (*SeedPair, error) {
	return s.getSeedPair(`SELECT id, server_seed, server_seed_hash, client_seed, nonce, retired, created_at, retired_at
		FROM seed_pairs WHERE server_seed_hash = ?`, serverSeedHash)
}

func (s *SQLiteDB) getSeedPair(query, arg string) (*SeedPair, error) {
	var pair SeedPair
	var retired int
	var retiredAt sql.NullTime

	err := s.db.QueryRow(query, arg).Scan(
		&pair.ID, &pair.ServerSeed, &pair.ServerSeedHash, &pair.ClientSeed,
		&pair.Nonce, &retired, &pair.CreatedAt, &retiredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get seed pair: %w", err)
	}

	pair.Retired = retired != 0
	if retiredAt.Valid {
		pair.RetiredAt = &retiredAt.Time
	}
	return &pair, nil
}

// NextNonce atomically increments and returns the pair's round counter.
// The UPDATE only matches active pairs, so retired pairs can never
// allocate another round.
func (s *SQLiteDB) NextNonce(id string) (uint64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("next nonce: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE seed_pairs SET nonce = nonce + 1 WHERE id = ? AND retired = 0`, id)
	if err != nil {
		return 0, fmt.Errorf("next nonce: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("next nonce: %w", err)
	}
	if affected == 0 {
		var retired int
		err := tx.QueryRow(`SELECT retired FROM seed_pairs WHERE id = ?`, id).Scan(&retired)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		if err != nil {
			return 0, fmt.Errorf("next nonce: %w", err)
		}
		return 0, ErrRetired
	}

	var nonce uint64
	if err := tx.QueryRow(`SELECT nonce FROM seed_pairs WHERE id = ?`, id).Scan(&nonce); err != nil {
		return 0, fmt.Errorf("next nonce: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("next nonce: %w", err)
	}

	// Nonces start at 0: the stored counter is the number of rounds
	// played, the allocated nonce is counter-1.
	return nonce - 1, nil
}

// RetireSeedPair marks the pair retired. Idempotent.
func (s *SQLiteDB) RetireSeedPair(id string) error {
	res, err := s.db.Exec(
		`UPDATE seed_pairs SET retired = 1, retired_at = COALESCE(retired_at, ?) WHERE id = ?`,
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("retire seed pair: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("retire seed pair: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveRound appends one round's audit record.
func (s *SQLiteDB) SaveRound(round *Round) error {
	if round.ID == "" {
		round.ID = uuid.New().String()
	}
	if round.CreatedAt.IsZero() {
		round.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO rounds (id, seed_pair_id, game, nonce, metric, metric_label, details, bet_amount, payout, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		round.ID, round.SeedPairID, round.Game, round.Nonce, round.Metric,
		round.MetricLabel, round.Details, round.BetAmount, round.Payout, round.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("save round: %w", err)
	}
	return nil
}

// ListRounds returns rounds for a pair ordered by nonce.
func (s *SQLiteDB) ListRounds(seedPairID string, limit, offset int) ([]Round, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(
		`SELECT id, seed_pair_id, game, nonce, metric, metric_label, details, bet_amount, payout, created_at
		 FROM rounds WHERE seed_pair_id = ? ORDER BY nonce ASC LIMIT ? OFFSET ?`,
		seedPairID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		var details sql.NullString
		if err := rows.Scan(&r.ID, &r.SeedPairID, &r.Game, &r.Nonce, &r.Metric,
			&r.MetricLabel, &details, &r.BetAmount, &r.Payout, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list rounds: %w", err)
		}
		r.Details = details.String
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

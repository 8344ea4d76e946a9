package snapshot

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
)

// Storage keys, one per resource type. Each key is single-writer: only
// the owning synchronizer touches it.
const (
	KeyUsers      = "cached_users"
	KeyTasks      = "cached_tasks"
	KeyChores     = "cached_chores"
	KeyHouses     = "cached_houses"
	KeyScriptures = "cached_scriptures"
	KeyFeedback   = "cached_feedback"
	KeyChats      = "cached_chats"
	KeyAuth       = "auth_state"
)

// Store persists the last successfully fetched payload per resource type.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Get returns the stored payload for key, or nil on first run.
func (s *Store) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM snapshots WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %q: %w", key, err)
	}
	return value, nil
}

// Checksum returns the stored content hash for key, or "" when absent.
// Lets callers skip a deep comparison when the hashes already differ.
func (s *Store) Checksum(key string) (string, error) {
	var sum string
	err := s.db.QueryRow(`SELECT checksum FROM snapshots WHERE key = ?`, key).Scan(&sum)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get checksum %q: %w", key, err)
	}
	return sum, nil
}

// Set stores value under key, replacing any previous payload.
func (s *Store) Set(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (key, value, checksum, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, checksum = excluded.checksum, updated_at = CURRENT_TIMESTAMP`,
		key, value, Sum(value),
	)
	if err != nil {
		return fmt.Errorf("set snapshot %q: %w", key, err)
	}
	return nil
}

// Clear removes the payload for key. Clearing an absent key is a no-op.
func (s *Store) Clear(key string) error {
	_, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("clear snapshot %q: %w", key, err)
	}
	return nil
}

// ClearAll removes every stored snapshot, including the auth state.
func (s *Store) ClearAll() error {
	_, err := s.db.Exec(`DELETE FROM snapshots`)
	if err != nil {
		return fmt.Errorf("clear snapshots: %w", err)
	}
	return nil
}

// Sum returns the hex SHA-256 of a serialized payload.
func Sum(value []byte) string {
	h := sha256.Sum256(value)
	return hex.EncodeToString(h[:])
}

package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Snapshot keys, one per logical collection.
const (
	KeyHabits       = "mindflow-habits"
	KeyNotes        = "mindflow-notes"
	KeyAchievements = "mindflow-achievements"
	KeySettings     = "mindflow-settings"
	KeyProfileImage = "mindflow-profile-image"
)

// SnapshotRepository stores JSON values by string key in the snapshots table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new [SnapshotRepository] with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get decodes the value at key into dst. It reports false, leaving dst untouched, when the key is absent.
func (r *SnapshotRepository) Get(key string, dst any) (bool, error) {
	var raw string
	err := r.db.QueryRow("SELECT value FROM snapshots WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query snapshot %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}
	return true, nil
}

// Put encodes v and overwrites the value at key.
func (r *SnapshotRepository) Put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}

	query := `
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := r.db.Exec(query, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *SnapshotRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM snapshots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in lexical order.
func (r *SnapshotRepository) Keys() ([]string, error) {
	rows, err := r.db.Query("SELECT key FROM snapshots ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Clear deletes every snapshot.
func (r *SnapshotRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM snapshots"); err != nil {
		return fmt.Errorf("failed to clear local store: %w", err)
	}
	return nil
}

// UpdatedAt returns when key was last written.
func (r *SnapshotRepository) UpdatedAt(key string) (time.Time, error) {
	var ts time.Time
	err := r.db.QueryRow("SELECT updated_at FROM snapshots WHERE key = ?", key).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, fmt.Errorf("snapshot not found: %s", key)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query snapshot %s: %w", key, err)
	}
	return ts, nil
}

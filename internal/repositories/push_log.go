package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// PushLogRepository tracks which local records were uploaded to the remote store for a user.
type PushLogRepository struct {
	db *sql.DB
}

// NewPushLogRepository creates a new [PushLogRepository] with the given database connection
func NewPushLogRepository(db *sql.DB) *PushLogRepository {
	return &PushLogRepository{db: db}
}

// MarkPushed records that the record (kind, id) exists remotely for userID.
func (r *PushLogRepository) MarkPushed(userID, kind, id string) error {
	query := `
		INSERT INTO push_log (record_id, kind, user_id, pushed_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(record_id, kind, user_id) DO UPDATE SET pushed_at = excluded.pushed_at
	`
	if _, err := r.db.Exec(query, id, kind, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record push: %w", err)
	}
	return nil
}

// Pushed returns the set of record ids of kind already pushed for userID.
func (r *PushLogRepository) Pushed(userID, kind string) (map[string]bool, error) {
	rows, err := r.db.Query("SELECT record_id FROM push_log WHERE user_id = ? AND kind = ?", userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to query push log: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan push log: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}

// Forget drops the push history for userID.
func (r *PushLogRepository) Forget(userID string) error {
	if _, err := r.db.Exec("DELETE FROM push_log WHERE user_id = ?", userID); err != nil {
		return fmt.Errorf("failed to reset push log: %w", err)
	}
	return nil
}

// Clear drops the push history of every user.
func (r *PushLogRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM push_log"); err != nil {
		return fmt.Errorf("failed to clear push log: %w", err)
	}
	return nil
}

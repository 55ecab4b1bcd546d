package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

const habitColumns = `id, user_id, name, description, category, color, icon, frequency, streak, completions, created_at`

func scanHabit(s scanner) (models.Habit, error) {
	var (
		rec models.HabitRecord
		raw []byte
	)
	err := s.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Description, &rec.Category,
		&rec.Color, &rec.Icon, &rec.Frequency, &rec.Streak, &raw, &rec.CreatedAt)
	if err != nil {
		return models.Habit{}, err
	}
	if err := decodeJSON(raw, &rec.Completions); err != nil {
		return models.Habit{}, fmt.Errorf("%w: completions of habit %s: %v", models.ErrInvalidRecord, rec.ID, err)
	}
	return models.HabitFromRecord(rec)
}

// FetchHabits returns the user's habits, newest first. Rows that fail validation are skipped.
func (c *Client) FetchHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if errors.Is(err, models.ErrInvalidRecord) {
			c.logger.Warn("skipping habit row", "err", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	return habits, nil
}

// InsertHabit stores h for userID and returns the stored row.
func (c *Client) InsertHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error) {
	rec := models.HabitRecordFrom(h, userID)
	completions, err := jsonArg(rec.Completions)
	if err != nil {
		return models.Habit{}, err
	}

	row := c.db.QueryRowContext(ctx,
		`INSERT INTO habits (`+habitColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+habitColumns,
		rec.ID, rec.UserID, rec.Name, rec.Description, rec.Category, rec.Color, rec.Icon,
		rec.Frequency, rec.Streak, completions, rec.CreatedAt)

	out, err := scanHabit(row)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to insert habit: %w", err)
	}
	return out, nil
}

// UpdateHabit overwrites the editable columns of h and returns the stored row.
func (c *Client) UpdateHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error) {
	rec := models.HabitRecordFrom(h, userID)
	completions, err := jsonArg(rec.Completions)
	if err != nil {
		return models.Habit{}, err
	}

	row := c.db.QueryRowContext(ctx,
		`UPDATE habits
		 SET name = $1, description = $2, category = $3, color = $4, icon = $5,
		     frequency = $6, streak = $7, completions = $8
		 WHERE id = $9 AND user_id = $10
		 RETURNING `+habitColumns,
		rec.Name, rec.Description, rec.Category, rec.Color, rec.Icon,
		rec.Frequency, rec.Streak, completions, rec.ID, userID)

	out, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Habit{}, fmt.Errorf("%w: habit %s", shared.ErrNotFound, h.ID)
	}
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit: %w", err)
	}
	return out, nil
}

// DeleteHabit removes the habit. Deleting a missing habit is not an error.
func (c *Client) DeleteHabit(ctx context.Context, userID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

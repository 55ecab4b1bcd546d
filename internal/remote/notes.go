package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

const noteColumns = `id, user_id, title, content, type, mediaurl, tags, stickers, mood, created_at, updated_at`

func scanNote(s scanner) (models.Note, error) {
	var (
		rec            models.NoteRecord
		tags, stickers []byte
		mood           sql.NullInt32
	)
	err := s.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Content, &rec.Type, &rec.MediaURL,
		&tags, &stickers, &mood, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return models.Note{}, err
	}
	if err := decodeJSON(tags, &rec.Tags); err != nil {
		return models.Note{}, fmt.Errorf("%w: tags of note %s: %v", models.ErrInvalidRecord, rec.ID, err)
	}
	if err := decodeJSON(stickers, &rec.Stickers); err != nil {
		return models.Note{}, fmt.Errorf("%w: stickers of note %s: %v", models.ErrInvalidRecord, rec.ID, err)
	}
	if mood.Valid {
		rec.Mood = models.IntPtr(int(mood.Int32))
	}
	return models.NoteFromRecord(rec)
}

func moodArg(m *int) any {
	if m == nil {
		return nil
	}
	return *m
}

// FetchNotes returns the user's notes, newest first. Rows that fail validation are skipped.
func (c *Client) FetchNotes(ctx context.Context, userID string) ([]models.Note, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if errors.Is(err, models.ErrInvalidRecord) {
			c.logger.Warn("skipping note row", "err", err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notes: %w", err)
	}
	return notes, nil
}

// InsertNote stores n for userID and returns the stored row.
func (c *Client) InsertNote(ctx context.Context, userID string, n models.Note) (models.Note, error) {
	rec := models.NoteRecordFrom(n, userID)
	tags, err := jsonArg(rec.Tags)
	if err != nil {
		return models.Note{}, err
	}
	stickers, err := jsonArg(rec.Stickers)
	if err != nil {
		return models.Note{}, err
	}

	row := c.db.QueryRowContext(ctx,
		`INSERT INTO notes (`+noteColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+noteColumns,
		rec.ID, rec.UserID, rec.Title, rec.Content, rec.Type, rec.MediaURL,
		tags, stickers, moodArg(rec.Mood), rec.CreatedAt, rec.UpdatedAt)

	out, err := scanNote(row)
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	return out, nil
}

// UpdateNote sets only the columns named by patch, plus updated_at, and returns the stored row.
func (c *Client) UpdateNote(ctx context.Context, userID, id string, patch models.NotePatch, updatedAt time.Time) (models.Note, error) {
	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	applied := patch.Apply(models.Note{}, updatedAt)
	if patch.Title != nil {
		set("title", applied.Title)
	}
	if patch.Content != nil {
		set("content", applied.Content)
	}
	if patch.Type != nil {
		set("type", string(applied.Type))
	}
	if patch.MediaURL != nil {
		set("mediaurl", applied.MediaURL)
	}
	if patch.Tags != nil {
		v, err := jsonArg(applied.Tags)
		if err != nil {
			return models.Note{}, err
		}
		set("tags", v)
	}
	if patch.Stickers != nil {
		v, err := jsonArg(applied.Stickers)
		if err != nil {
			return models.Note{}, err
		}
		set("stickers", v)
	}
	switch {
	case patch.ClearMood:
		set("mood", nil)
	case patch.Mood != nil:
		set("mood", *patch.Mood)
	}
	set("updated_at", updatedAt)

	args = append(args, id, userID)
	query := fmt.Sprintf(`UPDATE notes SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), noteColumns)

	out, err := scanNote(c.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Note{}, fmt.Errorf("%w: note %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to update note: %w", err)
	}
	return out, nil
}

// DeleteNote removes the note. Deleting a missing note is not an error.
func (c *Client) DeleteNote(ctx context.Context, userID, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

// NoteRemote is the remote notes table. Updates are partial.
type NoteRemote interface {
	FetchNotes(ctx context.Context, userID string) ([]models.Note, error)
	InsertNote(ctx context.Context, userID string, n models.Note) (models.Note, error)
	UpdateNote(ctx context.Context, userID, id string, patch models.NotePatch, updatedAt time.Time) (models.Note, error)
	DeleteNote(ctx context.Context, userID, id string) error
}

// Notes is the note collection. Newest notes come first.
type Notes struct {
	c      *collection[models.Note]
	remote NoteRemote
}

// NewNotes builds the collection. A nil remote means local-only mode.
func NewNotes(local Snapshot[models.Note], remote NoteRemote, opts Options) *Notes {
	return &Notes{
		c:      newCollection(local, remote != nil, opts, "notes", models.Note.Clone),
		remote: remote,
	}
}

// Load fills the collection from the remote store or, failing that, the local snapshot.
func (n *Notes) Load(ctx context.Context) error {
	return n.c.load(ctx, func(ctx context.Context, uid string) ([]models.Note, error) {
		return n.remote.FetchNotes(ctx, uid)
	})
}

// Loading reports whether a [Notes.Load] is in progress.
func (n *Notes) Loading() bool { return n.c.isLoading() }

// List returns a copy of the notes.
func (n *Notes) List() []models.Note { return n.c.list() }

// Get returns a copy of the note with id.
func (n *Notes) Get(id string) (models.Note, bool) { return n.c.get(id) }

// OnChange registers fn to run after every change to the collection.
func (n *Notes) OnChange(fn func()) { n.c.onChange(fn) }

// Wait blocks until in-flight remote writes have finished.
func (n *Notes) Wait() { n.c.inflight.Wait() }

// Add creates a note stamped with the current time.
func (n *Notes) Add(in models.NoteInput) (models.Note, error) {
	in = in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Note{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	uid := n.c.userID()
	now := n.c.opts.Clock.Now()
	note := models.Note{
		ID:        shared.GenerateID(),
		UserID:    uid,
		Title:     in.Title,
		Content:   in.Content,
		Type:      in.Type,
		MediaURL:  in.MediaURL,
		Tags:      in.Tags,
		Stickers:  in.Stickers,
		Mood:      in.Mood,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := n.c.mutate(func(items []models.Note) ([]models.Note, []string, error) {
		return append([]models.Note{note}, items...), []string{note.ID}, nil
	})

	if uid != "" {
		snapshot := note.Clone()
		n.c.mirror("insert", note.ID, func(ctx context.Context) (*models.Note, error) {
			out, err := n.remote.InsertNote(ctx, uid, snapshot)
			return &out, err
		})
	}
	return note.Clone(), err
}

// Update merges patch into the note with id and refreshes its update time.
// Only the patched fields are sent to the remote store.
func (n *Notes) Update(id string, patch models.NotePatch) (models.Note, error) {
	now := n.c.opts.Clock.Now()

	var updated models.Note
	err := n.c.mutate(func(items []models.Note) ([]models.Note, []string, error) {
		i := models.IndexOf(items, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: note %s", shared.ErrNotFound, id)
		}
		next := patch.Apply(items[i], now)
		if err := next.Validate(); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		items[i] = next
		updated = next
		return items, []string{id}, nil
	})
	if updated.ID == "" {
		return models.Note{}, err
	}

	if uid := n.c.userID(); uid != "" {
		n.c.mirror("update", id, func(ctx context.Context) (*models.Note, error) {
			out, err := n.remote.UpdateNote(ctx, uid, id, patch, now)
			return &out, err
		})
	}
	return updated.Clone(), err
}

// Delete removes the note with id.
func (n *Notes) Delete(id string) error {
	err := n.c.mutate(func(items []models.Note) ([]models.Note, []string, error) {
		i := models.IndexOf(items, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: note %s", shared.ErrNotFound, id)
		}
		return slices.Delete(items, i, i+1), []string{id}, nil
	})
	if err != nil && !isLocalSaveErr(err) {
		return err
	}

	if uid := n.c.userID(); uid != "" {
		n.c.mirror("delete", id, func(ctx context.Context) (*models.Note, error) {
			return nil, n.remote.DeleteNote(ctx, uid, id)
		})
	}
	return err
}

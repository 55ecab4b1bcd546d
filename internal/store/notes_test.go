package store

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	mocks "github.com/desertthunder/mindflow/internal/testing"
)

func TestNotes(t *testing.T) {
	t.Run("add stamps times and keeps tags as entered", func(t *testing.T) {
		snap := &mocks.MemorySnapshot[models.Note]{}
		notes := NewNotes(snap, nil, testOptions(""))

		n, err := notes.Add(models.NoteInput{
			Title:   "Morning",
			Content: "Felt rested",
			Tags:    []string{"sleep", "sleep", " "},
			Mood:    models.IntPtr(4),
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if n.Type != models.NoteText {
			t.Errorf("expected text type, got %q", n.Type)
		}
		if !n.CreatedAt.Equal(now) || !n.UpdatedAt.Equal(now) {
			t.Errorf("unexpected timestamps %v/%v", n.CreatedAt, n.UpdatedAt)
		}
		if len(n.Tags) != 2 {
			t.Errorf("expected duplicate tags kept and blanks dropped, got %v", n.Tags)
		}
		if len(snap.Snapshot()) != 1 {
			t.Error("expected note saved locally")
		}
	})

	t.Run("add rejects unknown stickers and empty notes", func(t *testing.T) {
		notes := NewNotes(&mocks.MemorySnapshot[models.Note]{}, nil, testOptions(""))

		tests := []struct {
			name  string
			input models.NoteInput
		}{
			{"empty", models.NoteInput{}},
			{"unknown sticker", models.NoteInput{Title: "x", Stickers: []string{"no-such-sticker"}}},
			{"mood out of range", models.NoteInput{Title: "x", Mood: models.IntPtr(9)}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if _, err := notes.Add(tt.input); !errors.Is(err, shared.ErrInvalidInput) {
					t.Errorf("expected ErrInvalidInput, got %v", err)
				}
			})
		}
	})

	t.Run("partial update", func(t *testing.T) {
		remote := mocks.NewMockRemote()
		notes := NewNotes(&mocks.MemorySnapshot[models.Note]{}, remote, testOptions("user-1"))
		n, _ := notes.Add(models.NoteInput{Title: "Evening", Content: "Long day", Mood: models.IntPtr(2)})
		notes.Wait()

		title := "Late evening"
		got, err := notes.Update(n.ID, models.NotePatch{Title: &title})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		notes.Wait()

		if got.Title != title || got.Content != "Long day" || got.Mood == nil || *got.Mood != 2 {
			t.Errorf("expected only title changed, got %+v", got)
		}
		r := remote.Notes[n.ID]
		if r.Title != title || r.Content != "Long day" {
			t.Errorf("expected remote note patched, got %+v", r)
		}
	})

	t.Run("clear mood", func(t *testing.T) {
		notes := NewNotes(&mocks.MemorySnapshot[models.Note]{}, nil, testOptions(""))
		n, _ := notes.Add(models.NoteInput{Title: "x", Mood: models.IntPtr(3)})

		got, err := notes.Update(n.ID, models.NotePatch{ClearMood: true})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if got.HasMood() {
			t.Error("expected mood cleared")
		}
	})

	t.Run("update errors leave note unchanged", func(t *testing.T) {
		notes := NewNotes(&mocks.MemorySnapshot[models.Note]{}, nil, testOptions(""))
		n, _ := notes.Add(models.NoteInput{Title: "Keep", Content: "me"})

		if _, err := notes.Update("missing", models.NotePatch{}); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		empty := ""
		_, err := notes.Update(n.ID, models.NotePatch{Title: &empty, Content: &empty})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		got, _ := notes.Get(n.ID)
		if got.Title != "Keep" {
			t.Errorf("expected note unchanged, got %+v", got)
		}
	})

	t.Run("remote failure keeps local note", func(t *testing.T) {
		remote := mocks.NewMockRemote()
		remote.Fail = true
		snap := &mocks.MemorySnapshot[models.Note]{}
		notes := NewNotes(snap, remote, testOptions("user-1"))

		n, err := notes.Add(models.NoteInput{Content: "offline thought"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		notes.Wait()

		if _, ok := notes.Get(n.ID); !ok {
			t.Error("expected note in memory")
		}
		if len(snap.Snapshot()) != 1 {
			t.Error("expected note in local store")
		}
	})

	t.Run("load and delete", func(t *testing.T) {
		remote := mocks.NewMockRemote()
		remote.Notes["n1"] = models.Note{ID: "n1", UserID: "user-1", Title: "Remote", Type: models.NoteText}
		notes := NewNotes(&mocks.MemorySnapshot[models.Note]{}, remote, testOptions("user-1"))

		if err := notes.Load(context.Background()); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(notes.List()) != 1 {
			t.Fatalf("expected remote note, got %+v", notes.List())
		}

		if err := notes.Delete("n1"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		notes.Wait()
		if len(notes.List()) != 0 {
			t.Error("expected note removed")
		}
		if _, ok := remote.Notes["n1"]; ok {
			t.Error("expected remote note removed")
		}
	})
}

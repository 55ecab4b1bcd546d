package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHabitFromRecord(t *testing.T) {
	t.Run("fills display defaults", func(t *testing.T) {
		h, err := HabitFromRecord(HabitRecord{ID: "h1", Name: "Stretch"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if h.Category != CategoryMental || h.Color != "#3B82F6" || h.Icon != "target" || h.Frequency != FrequencyDaily {
			t.Errorf("defaults not applied: %+v", h)
		}
	})

	t.Run("collapses duplicate dates", func(t *testing.T) {
		h, err := HabitFromRecord(HabitRecord{
			ID:   "h1",
			Name: "Stretch",
			Completions: []Completion{
				{Date: "2024-01-01", Completed: true},
				{Date: "2024-01-02", Completed: true},
				{Date: "2024-01-01", Completed: false},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(h.Completions) != 2 {
			t.Fatalf("expected 2 completions, got %d", len(h.Completions))
		}
		if h.CompletedOn("2024-01-01") {
			t.Error("last record for a date should win")
		}
	})

	t.Run("rejects invalid rows", func(t *testing.T) {
		_, err := HabitFromRecord(HabitRecord{ID: "h1", Name: "x", Category: "cosmic"})
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("expected ErrInvalidRecord, got %v", err)
		}

		_, err = HabitFromRecord(HabitRecord{Name: "x"})
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("expected ErrInvalidRecord for missing id, got %v", err)
		}
	})

	t.Run("record carries owner", func(t *testing.T) {
		rec := HabitRecordFrom(Habit{ID: "h1", Name: "x"}, "u1")
		if rec.UserID != "u1" || rec.Completions == nil {
			t.Errorf("unexpected record %+v", rec)
		}
	})
}

func TestNoteFromRecord(t *testing.T) {
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("media column uses the remote spelling", func(t *testing.T) {
		data, err := json.Marshal(NoteRecordFrom(Note{ID: "n1", Title: "x", MediaURL: "https://example.com/a.png"}, "u1"))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if !strings.Contains(string(data), `"mediaurl":"https://example.com/a.png"`) {
			t.Errorf("expected mediaurl key, got %s", data)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		n, err := NoteFromRecord(NoteRecord{ID: "n1", Title: "x", CreatedAt: created})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if n.Type != NoteText {
			t.Errorf("expected text type, got %q", n.Type)
		}
		if !n.UpdatedAt.Equal(created) {
			t.Errorf("expected UpdatedAt to default to CreatedAt")
		}
		if n.Tags == nil || n.Stickers == nil {
			t.Error("expected non-nil tag and sticker slices")
		}
	})

	t.Run("rejects out of range mood", func(t *testing.T) {
		_, err := NoteFromRecord(NoteRecord{ID: "n1", Title: "x", Mood: IntPtr(9)})
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("expected ErrInvalidRecord, got %v", err)
		}
	})
}

func TestCatalogs(t *testing.T) {
	if got := len(Stickers()); got != 48 {
		t.Errorf("expected 48 stickers, got %d", got)
	}

	for _, c := range StickerCategories {
		if got := len(StickersIn(c)); got != 8 {
			t.Errorf("category %s: expected 8 stickers, got %d", c, got)
		}
	}

	if s, ok := StickerByID("lightbulb"); !ok || s.Category != "objects" {
		t.Errorf("unexpected lookup result %+v %v", s, ok)
	}

	if got := len(CuratedPlaylists()); got != 5 {
		t.Errorf("expected 5 curated playlists, got %d", got)
	}

	if err := DefaultSettings().Validate(); err != nil {
		t.Errorf("default settings should validate: %v", err)
	}
}

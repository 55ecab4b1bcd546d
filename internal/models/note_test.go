package models

import (
	"testing"
	"time"
)

func TestNote(t *testing.T) {
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	base := Note{
		ID:        "n1",
		Title:     "Morning pages",
		Content:   "Slept well",
		Type:      NoteText,
		Tags:      []string{"sleep", "sleep"},
		Mood:      IntPtr(4),
		CreatedAt: created,
		UpdatedAt: created,
	}

	t.Run("Patch merges fields and refreshes UpdatedAt", func(t *testing.T) {
		now := created.Add(time.Hour)
		title := "Evening pages"
		got := NotePatch{Title: &title}.Apply(base, now)

		if got.Title != "Evening pages" || got.Content != base.Content {
			t.Errorf("unexpected merge %+v", got)
		}
		if !got.UpdatedAt.Equal(now) {
			t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
		}
		if !got.CreatedAt.Equal(created) {
			t.Error("CreatedAt must not change")
		}
	})

	t.Run("Patch can clear and set mood", func(t *testing.T) {
		cleared := NotePatch{ClearMood: true}.Apply(base, created)
		if cleared.HasMood() {
			t.Error("expected mood to be cleared")
		}

		set := NotePatch{Mood: IntPtr(2)}.Apply(cleared, created)
		if !set.HasMood() || *set.Mood != 2 {
			t.Errorf("expected mood 2, got %v", set.Mood)
		}
		if *base.Mood != 4 {
			t.Error("patch must not alias the original mood")
		}
	})

	t.Run("duplicate tags are kept", func(t *testing.T) {
		in := NoteInput{Title: "x", Tags: []string{"a", " a ", ""}}.Normalize()
		if len(in.Tags) != 2 {
			t.Errorf("expected 2 tags, got %v", in.Tags)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name    string
			mutate  func(n *Note)
			wantErr bool
		}{
			{name: "valid", mutate: func(n *Note) {}},
			{name: "title only", mutate: func(n *Note) { n.Content = "" }},
			{name: "empty title and content", mutate: func(n *Note) { n.Title, n.Content = "", "" }, wantErr: true},
			{name: "mood too high", mutate: func(n *Note) { n.Mood = IntPtr(6) }, wantErr: true},
			{name: "mood absent", mutate: func(n *Note) { n.Mood = nil }},
			{name: "unknown type", mutate: func(n *Note) { n.Type = "video" }, wantErr: true},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				n := base.Clone()
				tt.mutate(&n)
				err := n.Validate()
				if (err != nil) != tt.wantErr {
					t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			})
		}
	})

	t.Run("Empty patch", func(t *testing.T) {
		if !(NotePatch{}).Empty() {
			t.Error("zero patch should be empty")
		}
		if (NotePatch{ClearMood: true}).Empty() {
			t.Error("ClearMood patch is not empty")
		}
	})
}

func TestNoteInputStickers(t *testing.T) {
	if err := Validate(NoteInput{Title: "x", Stickers: []string{"sun", "moon"}}); err != nil {
		t.Errorf("catalog stickers should validate: %v", err)
	}
	if err := Validate(NoteInput{Title: "x", Stickers: []string{"dragon"}}); err == nil {
		t.Error("unknown sticker should fail validation")
	}
}

func TestMoodEmoji(t *testing.T) {
	if got := MoodEmoji(nil); got != "😐" {
		t.Errorf("expected neutral for no mood, got %s", got)
	}
	if got := MoodEmoji(IntPtr(5)); got != "😁" {
		t.Errorf("expected 😁 for 5, got %s", got)
	}
	if got := MoodEmoji(IntPtr(9)); got != "😐" {
		t.Errorf("expected neutral for out of range, got %s", got)
	}
}

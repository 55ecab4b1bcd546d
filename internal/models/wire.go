package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRecord is returned when a remote row cannot be mapped to a domain value.
var ErrInvalidRecord = errors.New("invalid remote record")

// HabitRecord is the remote row shape of a habit.
type HabitRecord struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Color       string       `json:"color"`
	Icon        string       `json:"icon"`
	Frequency   string       `json:"frequency"`
	Streak      int          `json:"streak"`
	Completions []Completion `json:"completions"`
	CreatedAt   time.Time    `json:"created_at"`
}

// NoteRecord is the remote row shape of a note. The media column is spelled "mediaurl".
type NoteRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	MediaURL  string    `json:"mediaurl"`
	Tags      []string  `json:"tags"`
	Stickers  []string  `json:"stickers"`
	Mood      *int      `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HabitFromRecord maps a remote row to a [Habit], filling display defaults and
// collapsing duplicate completion dates (the last record for a date wins).
func HabitFromRecord(r HabitRecord) (Habit, error) {
	h := Habit{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Category:    Category(r.Category),
		Color:       r.Color,
		Icon:        r.Icon,
		Frequency:   Frequency(r.Frequency),
		Streak:      r.Streak,
		Completions: dedupeCompletions(r.Completions),
		CreatedAt:   r.CreatedAt,
	}
	if h.Category == "" {
		h.Category = DefaultHabitCategory
	}
	if h.Color == "" {
		h.Color = DefaultHabitColor
	}
	if h.Icon == "" {
		h.Icon = DefaultHabitIcon
	}
	if h.Frequency == "" {
		h.Frequency = DefaultHabitFrequency
	}

	if h.ID == "" {
		return Habit{}, fmt.Errorf("%w: habit without id", ErrInvalidRecord)
	}
	if err := h.Validate(); err != nil {
		return Habit{}, fmt.Errorf("%w: habit %s: %v", ErrInvalidRecord, h.ID, err)
	}
	return h, nil
}

// HabitRecordFrom maps a [Habit] to its remote row for userID.
func HabitRecordFrom(h Habit, userID string) HabitRecord {
	completions := h.Completions
	if completions == nil {
		completions = []Completion{}
	}
	return HabitRecord{
		ID:          h.ID,
		UserID:      userID,
		Name:        h.Name,
		Description: h.Description,
		Category:    string(h.Category),
		Color:       h.Color,
		Icon:        h.Icon,
		Frequency:   string(h.Frequency),
		Streak:      h.Streak,
		Completions: completions,
		CreatedAt:   h.CreatedAt,
	}
}

// NoteFromRecord maps a remote row to a [Note], defaulting the type to text.
func NoteFromRecord(r NoteRecord) (Note, error) {
	n := Note{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Content:   r.Content,
		Type:      NoteType(r.Type),
		MediaURL:  r.MediaURL,
		Tags:      nonNil(r.Tags),
		Stickers:  nonNil(r.Stickers),
		Mood:      r.Mood,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if n.Type == "" {
		n.Type = NoteText
	}
	if n.UpdatedAt.IsZero() {
		n.UpdatedAt = n.CreatedAt
	}

	if n.ID == "" {
		return Note{}, fmt.Errorf("%w: note without id", ErrInvalidRecord)
	}
	if err := n.Validate(); err != nil {
		return Note{}, fmt.Errorf("%w: note %s: %v", ErrInvalidRecord, n.ID, err)
	}
	return n, nil
}

// NoteRecordFrom maps a [Note] to its remote row for userID.
func NoteRecordFrom(n Note, userID string) NoteRecord {
	return NoteRecord{
		ID:        n.ID,
		UserID:    userID,
		Title:     n.Title,
		Content:   n.Content,
		Type:      string(n.Type),
		MediaURL:  n.MediaURL,
		Tags:      nonNil(n.Tags),
		Stickers:  nonNil(n.Stickers),
		Mood:      n.Mood,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func dedupeCompletions(in []Completion) []Completion {
	out := make([]Completion, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, c := range in {
		if i, ok := pos[c.Date]; ok {
			out[i] = c
			continue
		}
		pos[c.Date] = len(out)
		out = append(out, c)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

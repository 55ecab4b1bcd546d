package models

import (
	"slices"
	"strings"
	"time"
)

// NoteType tags the content kind of a note. Only text is produced by the CLI and dashboard.
type NoteType string

const (
	NoteText  NoteType = "text"
	NoteImage NoteType = "image"
	NoteVoice NoteType = "voice"
)

// Note is a journal entry. Tags are kept as entered, duplicates included.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	Title     string    `json:"title" validate:"required_without=Content,max=200"`
	Content   string    `json:"content" validate:"required_without=Title"`
	Type      NoteType  `json:"type" validate:"oneof=text image voice"`
	MediaURL  string    `json:"mediaUrl,omitempty" validate:"omitempty,url"`
	Tags      []string  `json:"tags"`
	Stickers  []string  `json:"stickers"`
	Mood      *int      `json:"mood,omitempty" validate:"omitempty,min=1,max=5"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (n Note) GetID() string { return n.ID }

func (n Note) Validate() error { return Validate(n) }

// HasMood reports whether a mood was recorded.
func (n Note) HasMood() bool { return n.Mood != nil }

// Clone returns a copy that shares no slices or pointers with n.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	n.Stickers = slices.Clone(n.Stickers)
	if n.Mood != nil {
		m := *n.Mood
		n.Mood = &m
	}
	return n
}

// NoteInput carries the fields of a new note.
type NoteInput struct {
	Title    string   `validate:"required_without=Content,max=200"`
	Content  string   `validate:"required_without=Title"`
	Type     NoteType `validate:"omitempty,oneof=text image voice"`
	MediaURL string   `validate:"omitempty,url"`
	Tags     []string `validate:"dive,max=40"`
	Stickers []string `validate:"dive,sticker"`
	Mood     *int     `validate:"omitempty,min=1,max=5"`
}

// Normalize trims text, drops blank tags and defaults the type to text.
func (in NoteInput) Normalize() NoteInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Type == "" {
		in.Type = NoteText
	}
	in.Tags = cleanList(in.Tags)
	in.Stickers = cleanList(in.Stickers)
	return in
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NotePatch holds optional edits to a note. ClearMood removes a recorded mood.
type NotePatch struct {
	Title     *string
	Content   *string
	Type      *NoteType
	MediaURL  *string
	Tags      *[]string
	Stickers  *[]string
	Mood      *int
	ClearMood bool
}

// Empty reports whether the patch changes nothing.
func (p NotePatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Type == nil && p.MediaURL == nil &&
		p.Tags == nil && p.Stickers == nil && p.Mood == nil && !p.ClearMood
}

// Apply merges the patch into n and stamps UpdatedAt.
func (p NotePatch) Apply(n Note, now time.Time) Note {
	out := n.Clone()
	if p.Title != nil {
		out.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		out.Content = strings.TrimSpace(*p.Content)
	}
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.MediaURL != nil {
		out.MediaURL = *p.MediaURL
	}
	if p.Tags != nil {
		out.Tags = cleanList(*p.Tags)
	}
	if p.Stickers != nil {
		out.Stickers = cleanList(*p.Stickers)
	}
	switch {
	case p.ClearMood:
		out.Mood = nil
	case p.Mood != nil:
		m := *p.Mood
		out.Mood = &m
	}
	out.UpdatedAt = now
	return out
}

// IntPtr is a convenience for building optional moods.
func IntPtr(i int) *int { return &i }

var moodEmojis = []string{"😢", "😔", "😐", "😊", "😁"}

// MoodEmoji renders a 1..5 mood. Anything else, including no mood, is neutral.
func MoodEmoji(mood *int) string {
	if mood == nil || *mood < 1 || *mood > len(moodEmojis) {
		return moodEmojis[2]
	}
	return moodEmojis[*mood-1]
}

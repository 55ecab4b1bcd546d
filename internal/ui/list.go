package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/services"
)

var (
	_ list.Item = habitItem{}
	_ list.Item = noteItem{}
	_ list.Item = playlistItem{}
)

// habitItem wraps [models.Habit] to implement [list.Item], with today's completion state.
type habitItem struct {
	habit models.Habit
	today string
}

func (i habitItem) FilterValue() string { return i.habit.Name }
func (i habitItem) Title() string {
	mark := "○"
	if i.habit.CompletedOn(i.today) {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, i.habit.Name)
}
func (i habitItem) Description() string {
	desc := fmt.Sprintf("%s • %s • %d day streak", i.habit.Category, i.habit.Frequency, i.habit.Streak)
	if i.habit.Description != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.habit.Description)
	}
	return desc
}

// noteItem wraps [models.Note] to implement [list.Item].
type noteItem struct {
	note models.Note
}

func (i noteItem) FilterValue() string {
	return i.note.Title + " " + strings.Join(i.note.Tags, " ")
}
func (i noteItem) Title() string {
	return fmt.Sprintf("%s %s", models.MoodEmoji(i.note.Mood), noteTitle(i.note))
}
func (i noteItem) Description() string {
	parts := []string{i.note.CreatedAt.Format("Jan 2 15:04")}
	if len(i.note.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(i.note.Tags, " #"))
	}
	if s := stickerString(i.note.Stickers); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " • ")
}

// playlistItem is either a curated playlist or one from the linked account.
type playlistItem struct {
	name   string
	detail string
	url    string
}

func curatedItem(p models.Playlist) playlistItem {
	return playlistItem{name: p.Name, detail: fmt.Sprintf("%s • %s", p.Category, p.Description), url: p.SpotifyURL}
}

func linkedItem(p services.Playlist) playlistItem {
	detail := fmt.Sprintf("%d tracks", p.TrackCount)
	if p.Owner != "" {
		detail = fmt.Sprintf("%s • by %s", detail, p.Owner)
	}
	return playlistItem{name: p.Name, detail: detail, url: p.URL}
}

func (i playlistItem) FilterValue() string { return i.name }
func (i playlistItem) Title() string       { return i.name }
func (i playlistItem) Description() string { return i.detail }

// noteTitle falls back to the first line of content for untitled notes.
func noteTitle(n models.Note) string {
	if n.Title != "" {
		return n.Title
	}
	line, _, _ := strings.Cut(strings.TrimSpace(n.Content), "\n")
	if r := []rune(line); len(r) > 40 {
		line = string(r[:40]) + "…"
	}
	if line == "" {
		return "Untitled"
	}
	return line
}

func stickerString(ids []string) string {
	var b strings.Builder
	for _, id := range ids {
		if s, ok := models.StickerByID(id); ok {
			b.WriteString(s.Emoji)
		}
	}
	return b.String()
}

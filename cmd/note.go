package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
)

// NoteAdd writes a note from flags.
func (r *Runner) NoteAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	in := models.NoteInput{
		Title:    cmd.String("title"),
		Content:  cmd.String("content"),
		Tags:     cmd.StringSlice("tag"),
		Stickers: cmd.StringSlice("sticker"),
	}
	if cmd.IsSet("mood") {
		in.Mood = models.IntPtr(int(cmd.Int("mood")))
	}

	n, err := r.notes.Add(in)
	if err != nil {
		return err
	}

	r.logger.Info("note created", "id", n.ID)
	r.writePlain("✓ Saved note %s (%s)\n", noteTitle(n), shortID(n.ID))
	r.celebrate()
	return nil
}

// NoteList prints notes newest first, optionally only those carrying --tag.
func (r *Runner) NoteList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	notes := r.notes.List()
	if tag := cmd.String("tag"); tag != "" {
		notes = slices.DeleteFunc(notes, func(n models.Note) bool {
			return !slices.Contains(n.Tags, tag)
		})
	}

	if cmd.Bool("json") {
		return r.writeJSON(notes, cmd.Bool("pretty"))
	}
	if len(notes) == 0 {
		return r.writePlain("No notes found.\n")
	}

	for _, n := range notes {
		r.writePlain("%s %s  %s  %s\n", models.MoodEmoji(n.Mood), shortID(n.ID), n.CreatedAt.Local().Format("Jan 2 15:04"), noteTitle(n))
		if n.Content != "" && n.Title != "" {
			r.writePlain("             %s\n", preview(n.Content, 72))
		}
		if len(n.Tags) > 0 || len(n.Stickers) > 0 {
			r.writePlain("             %s%s\n", tagLine(n.Tags), stickerLine(n.Stickers))
		}
	}
	return nil
}

// NoteEdit applies the flags that were set to an existing note.
func (r *Runner) NoteEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	id, err := resolveID(r.notes.List(), cmd.StringArg("id"), "note")
	if err != nil {
		return err
	}

	var patch models.NotePatch
	if cmd.IsSet("title") {
		v := cmd.String("title")
		patch.Title = &v
	}
	if cmd.IsSet("content") {
		v := cmd.String("content")
		patch.Content = &v
	}
	if cmd.IsSet("tag") {
		v := cmd.StringSlice("tag")
		patch.Tags = &v
	}
	if cmd.IsSet("sticker") {
		v := cmd.StringSlice("sticker")
		patch.Stickers = &v
	}
	if cmd.IsSet("mood") {
		patch.Mood = models.IntPtr(int(cmd.Int("mood")))
	}
	patch.ClearMood = cmd.Bool("clear-mood")
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to change", shared.ErrMissingArgument)
	}

	n, err := r.notes.Update(id, patch)
	if err != nil {
		return err
	}
	r.writePlain("✓ Updated note %s\n", noteTitle(n))
	r.celebrate()
	return nil
}

// NoteDelete removes a note.
func (r *Runner) NoteDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	id, err := resolveID(r.notes.List(), cmd.StringArg("id"), "note")
	if err != nil {
		return err
	}
	n, _ := r.notes.Get(id)

	if err := r.notes.Delete(id); err != nil {
		return err
	}
	r.logger.Info("note deleted", "id", id)
	return r.writePlain("✓ Deleted note %s\n", noteTitle(n))
}

func noteTitle(n models.Note) string {
	if n.Title != "" {
		return n.Title
	}
	return preview(n.Content, 40)
}

func preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > max {
		return string(r[:max-1]) + "…"
	}
	return s
}

func tagLine(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return "#" + strings.Join(tags, " #") + " "
}

func stickerLine(ids []string) string {
	var b strings.Builder
	for _, id := range ids {
		if s, ok := models.StickerByID(id); ok {
			b.WriteString(s.Emoji)
		}
	}
	return b.String()
}

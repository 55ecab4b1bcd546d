package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
)

// HabitAdd creates a habit from flags.
func (r *Runner) HabitAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	h, err := r.habits.Add(models.HabitInput{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Category:    models.Category(cmd.String("category")),
		Color:       cmd.String("color"),
		Icon:        cmd.String("icon"),
		Frequency:   models.Frequency(cmd.String("frequency")),
	})
	if err != nil {
		return err
	}

	r.logger.Info("habit created", "id", h.ID, "name", h.Name)
	r.writePlain("✓ Created habit %s (%s)\n", h.Name, shortID(h.ID))
	r.celebrate()
	return nil
}

// HabitList prints every habit with today's completion state and streak.
func (r *Runner) HabitList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	habits := r.habits.List()
	if cmd.Bool("json") {
		return r.writeJSON(habits, cmd.Bool("pretty"))
	}

	if len(habits) == 0 {
		return r.writePlain("No habits yet. Create one with: mindflow habit add --name \"Meditate\"\n")
	}

	today := shared.Day(r.clock.Now())
	done := 0
	for _, h := range habits {
		mark := "○"
		if h.CompletedOn(today) {
			mark = "✓"
			done++
		}
		r.writePlain("%s %s  %-24s %-10s 🔥 %d\n", mark, shortID(h.ID), h.Name, h.Category, h.Streak)
		if h.Description != "" {
			r.writePlain("             %s\n", h.Description)
		}
	}
	return r.writePlain("\n%d/%d completed today\n", done, len(habits))
}

// HabitToggle flips a habit's completion for today or --date.
func (r *Runner) HabitToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	id, err := resolveID(r.habits.List(), cmd.StringArg("id"), "habit")
	if err != nil {
		return err
	}

	day := shared.Day(r.clock.Now())
	if d := cmd.String("date"); d != "" {
		if _, err := time.Parse(shared.DayLayout, d); err != nil {
			return fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", shared.ErrInvalidFlag, d)
		}
		day = d
	}

	h, err := r.habits.Toggle(id, day)
	if err != nil {
		return err
	}

	if h.CompletedOn(day) {
		r.writePlain("✓ %s completed for %s (streak %d)\n", h.Name, day, h.Streak)
	} else {
		r.writePlain("○ %s unmarked for %s (streak %d)\n", h.Name, day, h.Streak)
	}
	r.celebrate()
	return nil
}

// HabitEdit applies the flags that were set to an existing habit.
func (r *Runner) HabitEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	id, err := resolveID(r.habits.List(), cmd.StringArg("id"), "habit")
	if err != nil {
		return err
	}

	var patch models.HabitPatch
	if cmd.IsSet("name") {
		v := cmd.String("name")
		patch.Name = &v
	}
	if cmd.IsSet("description") {
		v := cmd.String("description")
		patch.Description = &v
	}
	if cmd.IsSet("category") {
		v := models.Category(cmd.String("category"))
		patch.Category = &v
	}
	if cmd.IsSet("color") {
		v := cmd.String("color")
		patch.Color = &v
	}
	if cmd.IsSet("icon") {
		v := cmd.String("icon")
		patch.Icon = &v
	}
	if cmd.IsSet("frequency") {
		v := models.Frequency(cmd.String("frequency"))
		patch.Frequency = &v
	}
	if patch == (models.HabitPatch{}) {
		return fmt.Errorf("%w: nothing to change", shared.ErrMissingArgument)
	}

	h, err := r.habits.Update(id, patch)
	if err != nil {
		return err
	}
	return r.writePlain("✓ Updated habit %s\n", h.Name)
}

// HabitDelete removes a habit.
func (r *Runner) HabitDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	id, err := resolveID(r.habits.List(), cmd.StringArg("id"), "habit")
	if err != nil {
		return err
	}
	h, _ := r.habits.Get(id)

	if err := r.habits.Delete(id); err != nil {
		return err
	}
	r.logger.Info("habit deleted", "id", id)
	return r.writePlain("✓ Deleted habit %s\n", h.Name)
}

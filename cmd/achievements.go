package main

import (
	"context"
	"strings"

	"github.com/desertthunder/mindflow/internal/achievements"
	"github.com/desertthunder/mindflow/internal/insights"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/services"
	"github.com/urfave/cli/v3"
)

// achievementRow is the JSON shape of one achievement with its progress.
type achievementRow struct {
	models.Achievement
	achievements.Progress
	Unlocked bool `json:"unlocked"`
}

// AchievementsList prints the catalog with progress toward each achievement.
func (r *Runner) AchievementsList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	progress := r.tracker.Progress(r.habits.List(), r.notes.List())
	onlyUnlocked := cmd.Bool("unlocked")

	rows := make([]achievementRow, 0, len(progress))
	for _, a := range achievements.Catalog() {
		unlocked := r.tracker.IsUnlocked(a.ID)
		if onlyUnlocked && !unlocked {
			continue
		}
		rows = append(rows, achievementRow{Achievement: a, Progress: progress[a.ID], Unlocked: unlocked})
	}

	if cmd.Bool("json") {
		return r.writeJSON(rows, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Achievements")
	var category models.AchievementCategory
	for _, row := range rows {
		if row.Category != category {
			category = row.Category
			r.writePlain("\n%s\n", strings.ToUpper(string(category)))
		}

		mark := "🔒"
		if row.Unlocked {
			mark = row.Icon
		}
		r.writePlain("%s %-22s %-9s %s\n", mark, row.Title, row.Rarity, row.Description)
		if !row.Unlocked {
			r.writePlain("   %s %.0f/%.0f\n", progressBar(row.Percentage, 20), row.Current, row.Total)
		}
	}
	return r.writePlain("\n%d/%d unlocked\n", len(r.tracker.Unlocked()), len(achievements.Catalog()))
}

// AchievementsCheck evaluates achievements and reports new unlocks.
func (r *Runner) AchievementsCheck(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}
	if _, err := r.tracker.Check(r.habits.List(), r.notes.List()); err != nil {
		return err
	}

	if len(r.tracker.Celebration()) == 0 {
		return r.writePlain("No new achievements.\n")
	}
	r.celebrate()
	return nil
}

// Insights prints weekly completion, streak and mood statistics.
func (r *Runner) Insights(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	s := insights.Compute(r.habits.List(), r.notes.List(), r.clock.Now())
	if cmd.Bool("json") {
		return r.writeJSON(s, cmd.Bool("pretty"))
	}

	r.writePlainHeader("Insights")
	r.writePlain("Habits:          %d\n", s.TotalHabits)
	r.writePlain("Today:           %d/%d (%d%%)\n", s.TodayCompletions, s.TotalHabits, s.TodayRate)
	r.writePlain("Total streak:    %d days (avg %d)\n", s.TotalStreak, s.AvgStreak)
	r.writePlain("Notes:           %d (%d this week)\n", s.TotalNotes, s.NotesThisWeek)
	r.writePlain("Average mood:    %.1f %s\n", s.AvgMood, insights.MoodLabel(s.AvgMood))

	r.writePlain("\nThis week\n")
	for _, d := range s.Weekly {
		r.writePlain("  %s %s %d/%d\n", d.Weekday, progressBar(float64(d.Percentage), 20), d.Completions, d.Total)
	}

	if s.TotalHabits > 0 {
		r.writePlain("\nCategories\n")
		for _, c := range models.Categories() {
			if n := s.CategoryBreakdown[c]; n > 0 {
				r.writePlain("  %-10s %d\n", c, n)
			}
		}
	}
	return nil
}

// Stickers prints the sticker catalog grouped by category.
func (r *Runner) Stickers(ctx context.Context, cmd *cli.Command) error {
	stickers := services.Stickers(cmd.String("category"))
	if cmd.Bool("json") {
		return r.writeJSON(stickers, cmd.Bool("pretty"))
	}
	if len(stickers) == 0 {
		return r.writePlain("No stickers in category %q. Categories: %s\n", cmd.String("category"), strings.Join(models.StickerCategories, ", "))
	}

	category := ""
	for _, s := range stickers {
		if s.Category != category {
			category = s.Category
			r.writePlain("\n%s\n", strings.ToUpper(category))
		}
		r.writePlain("  %s  %-12s %s\n", s.Emoji, s.ID, s.Name)
	}
	return nil
}

func progressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

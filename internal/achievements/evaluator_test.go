package achievements

import (
	"fmt"
	"testing"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func day(n int) string {
	return now.AddDate(0, 0, -n).Format(time.DateOnly)
}

func habitsWithStreaks(streaks ...int) []models.Habit {
	out := make([]models.Habit, len(streaks))
	for i, s := range streaks {
		out[i] = models.Habit{ID: fmt.Sprintf("h%d", i), Name: "habit", Category: models.CategoryMental, Streak: s}
	}
	return out
}

func notesN(n int) []models.Note {
	out := make([]models.Note, n)
	for i := range out {
		out[i] = models.Note{ID: fmt.Sprintf("n%d", i), Title: "note", CreatedAt: now}
	}
	return out
}

func TestCatalog(t *testing.T) {
	defs := Catalog()
	if len(defs) != 21 {
		t.Fatalf("expected 21 achievements, got %d", len(defs))
	}

	seen := map[string]bool{}
	for _, a := range defs {
		if seen[a.ID] {
			t.Errorf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
		if a.Requirement.Target <= 0 {
			t.Errorf("%s has non-positive target", a.ID)
		}
	}

	if a, ok := Lookup("habit_starter"); !ok || a.Requirement.Target != 3 {
		t.Errorf("unexpected habit_starter lookup: %+v", a)
	}

	if a, ok := Lookup(RainbowCollector); !ok || a.Requirement.Target != float64(len(models.Categories())) {
		t.Errorf("expected rainbow collector target of %d categories, got %+v", len(models.Categories()), a)
	}
}

func TestEvaluate(t *testing.T) {
	t.Run("streak totals", func(t *testing.T) {
		p := Evaluate(habitsWithStreaks(3, 7, 0), nil, now)

		if got := p["week_warrior"].Current; got != 10 {
			t.Errorf("streak_total progress = %v, want 10", got)
		}
		if got := p["consistency_king"].Current; got != 7 {
			t.Errorf("streak_single progress = %v, want 7", got)
		}
		if got := p["consistency_king"].Percentage; got != 100 {
			t.Errorf("streak_single percentage = %v, want 100", got)
		}
		if got := p["week_warrior"].Percentage; got != 100 {
			t.Errorf("percentage should cap at 100, got %v", got)
		}
	})

	t.Run("streak_single is zero without habits", func(t *testing.T) {
		p := Evaluate(nil, nil, now)
		if got := p["iron_will"].Current; got != 0 {
			t.Errorf("expected 0, got %v", got)
		}
	})

	t.Run("counts", func(t *testing.T) {
		p := Evaluate(habitsWithStreaks(0, 0), notesN(5), now)

		if got := p["habit_starter"]; got.Current != 2 || got.Total != 3 {
			t.Errorf("unexpected habit_starter progress %+v", got)
		}
		if got := p["note_taker"].Percentage; got != 100 {
			t.Errorf("note_taker percentage = %v", got)
		}
		if got := p["prolific_writer"].Percentage; got != 20 {
			t.Errorf("prolific_writer percentage = %v, want 20", got)
		}
	})

	t.Run("weekly completion rate", func(t *testing.T) {
		h := models.Habit{ID: "h", Name: "x", Category: models.CategoryMental}
		for i := range 7 {
			h.Completions = append(h.Completions, models.Completion{Date: day(i), Completed: true})
		}
		h.Completions = append(h.Completions,
			models.Completion{Date: day(7), Completed: true},
			models.Completion{Date: day(8), Completed: true},
		)
		other := models.Habit{ID: "o", Name: "y", Category: models.CategoryMental, Completions: []models.Completion{
			{Date: day(0), Completed: false},
		}}

		p := Evaluate([]models.Habit{h, other}, nil, now)
		if got := p["perfectionist"].Current; got != 50 {
			t.Errorf("completion rate = %v, want 50", got)
		}

		p = Evaluate([]models.Habit{h}, nil, now)
		if !p["perfectionist"].Complete() {
			t.Errorf("expected perfect week, got %+v", p["perfectionist"])
		}
	})

	t.Run("consecutive days stop at the first empty day", func(t *testing.T) {
		a := models.Habit{ID: "a", Completions: []models.Completion{{Date: day(0), Completed: true}, {Date: day(2), Completed: true}}}
		b := models.Habit{ID: "b", Completions: []models.Completion{{Date: day(1), Completed: true}, {Date: day(4), Completed: true}}}

		p := Evaluate([]models.Habit{a, b}, nil, now)
		if got := p["zen_master"].Current; got != 3 {
			t.Errorf("consecutive days = %v, want 3", got)
		}
	})

	t.Run("mood average excludes missing moods and old notes", func(t *testing.T) {
		notes := []models.Note{
			{ID: "1", Mood: models.IntPtr(5), CreatedAt: now.Add(-time.Hour)},
			{ID: "2", Mood: models.IntPtr(4), CreatedAt: now.AddDate(0, 0, -2)},
			{ID: "3", Mood: models.IntPtr(4), CreatedAt: now.AddDate(0, 0, -3)},
			{ID: "4", CreatedAt: now},
			{ID: "5", Mood: models.IntPtr(1), CreatedAt: now.AddDate(0, 0, -10)},
		}

		p := Evaluate(nil, notes, now)
		if got := p["mood_master"].Current; got != 4.3 {
			t.Errorf("mood average = %v, want 4.3", got)
		}
		if !p["mood_master"].Complete() {
			t.Error("expected mood_master to be complete")
		}
	})

	t.Run("distinct tags and stickers", func(t *testing.T) {
		notes := []models.Note{
			{ID: "1", Tags: []string{"a", "b", "a"}, Stickers: []string{"sun"}},
			{ID: "2", Tags: []string{"b", "c"}, Stickers: []string{"sun", "moon"}},
		}

		p := Evaluate(nil, notes, now)
		if got := p["tag_master"].Current; got != 3 {
			t.Errorf("tags used = %v, want 3", got)
		}
		if got := p["sticker_enthusiast"].Current; got != 2 {
			t.Errorf("stickers used = %v, want 2", got)
		}
	})

	t.Run("special rules", func(t *testing.T) {
		var habits []models.Habit
		for i, c := range models.Categories() {
			habits = append(habits, models.Habit{ID: fmt.Sprint(i), Category: c})
		}
		notes := []models.Note{
			{ID: "1", CreatedAt: time.Date(2024, 6, 10, 23, 0, 0, 0, time.Local)},
			{ID: "2", CreatedAt: time.Date(2024, 6, 10, 22, 30, 0, 0, time.Local)},
			{ID: "3", CreatedAt: time.Date(2024, 6, 11, 22, 0, 0, 0, time.Local)},
			{ID: "4", CreatedAt: time.Date(2024, 6, 12, 21, 59, 0, 0, time.Local)},
		}

		p := Evaluate(habits, notes, now)
		if !p[RainbowCollector].Complete() {
			t.Errorf("expected rainbow collector with all categories, got %+v", p[RainbowCollector])
		}
		if got := p[NightOwl].Current; got != 2 {
			t.Errorf("night owl days = %v, want 2", got)
		}
		if got := p[EarlyBird].Current; got != 0 {
			t.Errorf("early bird should not progress, got %v", got)
		}
	})

	t.Run("percentage never decreases as collections grow", func(t *testing.T) {
		var habits []models.Habit
		var notes []models.Note
		prev := Evaluate(habits, notes, now)

		for i := range 30 {
			habits = append(habits, models.Habit{
				ID:       fmt.Sprintf("h%d", i),
				Category: models.Categories()[i%5],
				Streak:   i,
			})
			notes = append(notes, models.Note{
				ID:        fmt.Sprintf("n%d", i),
				Tags:      []string{fmt.Sprintf("t%d", i)},
				Stickers:  []string{fmt.Sprintf("s%d", i)},
				CreatedAt: now.AddDate(0, 0, -30),
			})

			next := Evaluate(habits, notes, now)
			for _, a := range catalog {
				if a.Requirement.Type == models.ReqCompletionRate || a.Requirement.Type == models.ReqMoodAverage {
					continue
				}
				if next[a.ID].Percentage < prev[a.ID].Percentage {
					t.Fatalf("%s decreased from %v to %v", a.ID, prev[a.ID].Percentage, next[a.ID].Percentage)
				}
			}
			prev = next
		}
	})
}

func TestNewlyUnlocked(t *testing.T) {
	t.Run("fourth habit unlocks habit_starter but not habit_collector", func(t *testing.T) {
		unlocked := []models.UnlockedAchievement{{ID: "first_habit"}}
		got := NewlyUnlocked(Evaluate(habitsWithStreaks(0, 0, 0, 0), nil, now), unlocked)

		ids := map[string]bool{}
		for _, a := range got {
			ids[a.ID] = true
		}
		if !ids["habit_starter"] {
			t.Error("expected habit_starter to unlock")
		}
		if ids["habit_collector"] {
			t.Error("habit_collector should not unlock with 4 habits")
		}
		if ids["first_habit"] {
			t.Error("already unlocked achievements must not be returned")
		}
	})

	t.Run("catalog order", func(t *testing.T) {
		got := NewlyUnlocked(Evaluate(habitsWithStreaks(0, 0, 0), notesN(1), now), nil)
		want := []string{"first_habit", "first_note", "habit_starter"}

		if len(got) != len(want) {
			t.Fatalf("expected %v, got %d achievements", want, len(got))
		}
		for i, a := range got {
			if a.ID != want[i] {
				t.Errorf("position %d: got %s, want %s", i, a.ID, want[i])
			}
		}
	})
}

package models

import (
	"slices"
	"strings"
	"time"
)

// Category groups habits for display and for the category-diversity achievement.
type Category string

const (
	CategoryPhysical  Category = "physical"
	CategoryMental    Category = "mental"
	CategorySocial    Category = "social"
	CategorySpiritual Category = "spiritual"
	CategoryCreative  Category = "creative"
)

// Categories lists every habit category in display order.
func Categories() []Category {
	return []Category{CategoryPhysical, CategoryMental, CategorySocial, CategorySpiritual, CategoryCreative}
}

func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

// Frequency is how often a habit is meant to be performed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly || f == FrequencyMonthly
}

// Defaults applied to habits whose stored representation omits display fields.
const (
	DefaultHabitColor     = "#3B82F6"
	DefaultHabitIcon      = "target"
	DefaultHabitCategory  = CategoryMental
	DefaultHabitFrequency = FrequencyDaily
)

// Completion marks a calendar day (YYYY-MM-DD) as done or not done.
type Completion struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Habit is a tracked habit. Completions hold at most one record per date.
type Habit struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId,omitempty"`
	Name        string       `json:"name" validate:"required,max=100"`
	Description string       `json:"description" validate:"max=500"`
	Category    Category     `json:"category" validate:"oneof=physical mental social spiritual creative"`
	Color       string       `json:"color" validate:"omitempty,hexcolor"`
	Icon        string       `json:"icon"`
	Frequency   Frequency    `json:"frequency" validate:"oneof=daily weekly monthly"`
	Streak      int          `json:"streak" validate:"gte=0"`
	Completions []Completion `json:"completions"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (h Habit) GetID() string { return h.ID }

func (h Habit) Validate() error { return Validate(h) }

// CompletedOn reports whether the habit has a completed record for day.
func (h Habit) CompletedOn(day string) bool {
	for _, c := range h.Completions {
		if c.Date == day {
			return c.Completed
		}
	}
	return false
}

// ToggleCompletion flips the record for day, creating a completed one when none exists,
// and recomputes the streak relative to today. The receiver is not modified.
func (h Habit) ToggleCompletion(day string, today time.Time) Habit {
	out := h.Clone()

	found := false
	for i := range out.Completions {
		if out.Completions[i].Date == day {
			out.Completions[i].Completed = !out.Completions[i].Completed
			found = true
			break
		}
	}
	if !found {
		out.Completions = append(out.Completions, Completion{Date: day, Completed: true})
	}

	out.Streak = ComputeStreak(out.Completions, today)
	return out
}

// Clone returns a copy that shares no slices with h.
func (h Habit) Clone() Habit {
	h.Completions = slices.Clone(h.Completions)
	return h
}

// ComputeStreak counts consecutive calendar days ending today that have a completed record.
// The walk stops at the first day without one, so an incomplete today yields zero.
func ComputeStreak(completions []Completion, today time.Time) int {
	done := make(map[string]bool, len(completions))
	for _, c := range completions {
		if c.Completed {
			done[c.Date] = true
		}
	}

	streak := 0
	for d := today; done[d.Format(time.DateOnly)]; d = d.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}

// HabitInput carries the user-editable fields of a new habit.
type HabitInput struct {
	Name        string    `validate:"required,max=100"`
	Description string    `validate:"max=500"`
	Category    Category  `validate:"oneof=physical mental social spiritual creative"`
	Color       string    `validate:"omitempty,hexcolor"`
	Icon        string    `validate:"max=32"`
	Frequency   Frequency `validate:"oneof=daily weekly monthly"`
}

// Normalize trims text and fills display defaults.
func (in HabitInput) Normalize() HabitInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if in.Category == "" {
		in.Category = DefaultHabitCategory
	}
	if in.Color == "" {
		in.Color = DefaultHabitColor
	}
	if in.Icon == "" {
		in.Icon = DefaultHabitIcon
	}
	if in.Frequency == "" {
		in.Frequency = DefaultHabitFrequency
	}
	return in
}

// HabitPatch holds optional edits to a habit. Nil fields are left unchanged.
type HabitPatch struct {
	Name        *string
	Description *string
	Category    *Category
	Color       *string
	Icon        *string
	Frequency   *Frequency
}

// Apply returns h with the patch merged in.
func (p HabitPatch) Apply(h Habit) Habit {
	out := h.Clone()
	if p.Name != nil {
		out.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		out.Description = strings.TrimSpace(*p.Description)
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	if p.Icon != nil {
		out.Icon = *p.Icon
	}
	if p.Frequency != nil {
		out.Frequency = *p.Frequency
	}
	return out
}

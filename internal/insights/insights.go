// Package insights derives the summary statistics shown on the dashboard and insights screens.
//
// [Compute] is pure: it reads habits and notes and never mutates them.
package insights

import (
	"math"
	"slices"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

// neutralMood stands in for notes without a mood and for an empty journal.
const neutralMood = 3

// RecentLimit is how many notes [Insights.RecentNotes] holds.
const RecentLimit = 3

// DayStat is one day of the weekly completion chart.
type DayStat struct {
	Date        string `json:"date"`
	Weekday     string `json:"weekday"`
	Completions int    `json:"completions"`
	Total       int    `json:"total"`
	Percentage  int    `json:"percentage"`
}

// Insights is a snapshot of progress across habits and notes.
type Insights struct {
	TotalHabits       int                     `json:"totalHabits"`
	TotalStreak       int                     `json:"totalStreak"`
	AvgStreak         int                     `json:"avgStreak"`
	TodayCompletions  int                     `json:"todayCompletions"`
	TodayRate         int                     `json:"completionRate"`
	Weekly            []DayStat               `json:"weeklyData"`
	CategoryBreakdown map[models.Category]int `json:"categoryBreakdown"`
	NotesThisWeek     int                     `json:"notesThisWeek"`
	AvgMood           float64                 `json:"avgMood"`
	TotalNotes        int                     `json:"totalNotes"`
	RecentNotes       []models.Note           `json:"recentNotes"`
}

// Compute builds insights relative to now. Notes are expected newest first.
func Compute(habits []models.Habit, notes []models.Note, now time.Time) Insights {
	out := Insights{
		TotalHabits:       len(habits),
		CategoryBreakdown: map[models.Category]int{},
		TotalNotes:        len(notes),
		AvgMood:           neutralMood,
	}

	for _, h := range habits {
		out.TotalStreak += h.Streak
		out.CategoryBreakdown[h.Category]++
	}
	out.AvgStreak = percentOf(out.TotalStreak, out.TotalHabits, 1)

	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		done := completionsOn(habits, shared.Day(day))
		out.Weekly = append(out.Weekly, DayStat{
			Date:        shared.Day(day),
			Weekday:     day.Format("Mon"),
			Completions: done,
			Total:       len(habits),
			Percentage:  percentOf(done, len(habits), 100),
		})
	}
	out.TodayCompletions = out.Weekly[6].Completions
	out.TodayRate = out.Weekly[6].Percentage

	weekAgo := now.AddDate(0, 0, -7)
	moodSum := 0
	for _, n := range notes {
		if !n.CreatedAt.Before(weekAgo) {
			out.NotesThisWeek++
		}
		if n.Mood != nil {
			moodSum += *n.Mood
		} else {
			moodSum += neutralMood
		}
	}
	if len(notes) > 0 {
		out.AvgMood = math.Round(float64(moodSum)/float64(len(notes))*10) / 10
	}

	out.RecentNotes = slices.Clone(notes[:min(RecentLimit, len(notes))])
	return out
}

func completionsOn(habits []models.Habit, day string) int {
	n := 0
	for _, h := range habits {
		if h.CompletedOn(day) {
			n++
		}
	}
	return n
}

// percentOf returns round(part/whole*scale), or 0 when whole is 0.
func percentOf(part, whole, scale int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * float64(scale)))
}

// MoodLabel names an average mood.
func MoodLabel(mood float64) string {
	switch {
	case mood >= 4.5:
		return "Excellent"
	case mood >= 3.5:
		return "Good"
	case mood >= 2.5:
		return "Okay"
	case mood >= 1.5:
		return "Difficult"
	default:
		return "Challenging"
	}
}

package achievements

import (
	"math"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
)

// nightOwlHour is the local hour from which a note counts toward [NightOwl].
const nightOwlHour = 22

// Progress is the measurement of one achievement.
//
// Percentage is capped at 100.
type Progress struct {
	Current    float64 `json:"progress"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Complete reports whether the threshold has been reached.
func (p Progress) Complete() bool { return p.Percentage >= 100 }

// Evaluate measures every catalog achievement against the collections as of now.
func Evaluate(habits []models.Habit, notes []models.Note, now time.Time) map[string]Progress {
	out := make(map[string]Progress, len(catalog))
	for _, a := range catalog {
		out[a.ID] = ProgressFor(a, habits, notes, now)
	}
	return out
}

// ProgressFor measures a single achievement.
func ProgressFor(a models.Achievement, habits []models.Habit, notes []models.Note, now time.Time) Progress {
	target := a.Requirement.Target
	current := measure(a, habits, notes, now)

	pct := 0.0
	if target > 0 {
		pct = math.Min(current/target*100, 100)
	}
	return Progress{Current: current, Total: target, Percentage: pct}
}

func measure(a models.Achievement, habits []models.Habit, notes []models.Note, now time.Time) float64 {
	r := a.Requirement
	switch r.Type {
	case models.ReqHabitCount:
		return float64(len(habits))
	case models.ReqNoteCount:
		return float64(len(notes))
	case models.ReqStreakTotal:
		total := 0
		for _, h := range habits {
			total += h.Streak
		}
		return float64(total)
	case models.ReqStreakSingle:
		best := 0
		for _, h := range habits {
			best = max(best, h.Streak)
		}
		return float64(best)
	case models.ReqCompletionRate:
		if r.Timeframe != models.TimeframeWeek {
			return 0
		}
		return weeklyCompletionRate(habits, now)
	case models.ReqConsecutiveDays:
		return float64(consecutiveActiveDays(habits, now, int(r.Target)))
	case models.ReqMoodAverage:
		if r.Timeframe != models.TimeframeWeek {
			return 0
		}
		return weeklyMoodAverage(notes, now)
	case models.ReqTagsUsed:
		return float64(distinct(notes, func(n models.Note) []string { return n.Tags }))
	case models.ReqStickersUsed:
		return float64(distinct(notes, func(n models.Note) []string { return n.Stickers }))
	case models.ReqSpecial:
		return special(a.ID, habits, notes)
	}
	return 0
}

// weeklyCompletionRate is completed records in the trailing 7 calendar days over habits×7, as a rounded percentage.
func weeklyCompletionRate(habits []models.Habit, now time.Time) float64 {
	if len(habits) == 0 {
		return 0
	}

	window := trailingDays(now, 7)
	completed := 0
	for _, h := range habits {
		for _, c := range h.Completions {
			if c.Completed && window[c.Date] {
				completed++
			}
		}
	}
	return math.Round(float64(completed) / float64(len(habits)*7) * 100)
}

// consecutiveActiveDays walks back from today, at most limit days, counting days on which any habit was completed.
func consecutiveActiveDays(habits []models.Habit, now time.Time, limit int) int {
	active := make(map[string]bool)
	for _, h := range habits {
		for _, c := range h.Completions {
			if c.Completed {
				active[c.Date] = true
			}
		}
	}

	n := 0
	for i := 0; i < limit; i++ {
		if !active[now.AddDate(0, 0, -i).Format(time.DateOnly)] {
			break
		}
		n++
	}
	return n
}

// weeklyMoodAverage averages recorded moods of notes created in the last 7 days, to one decimal.
// Notes without a mood are excluded rather than counted as zero.
func weeklyMoodAverage(notes []models.Note, now time.Time) float64 {
	since := now.AddDate(0, 0, -7)
	sum, count := 0, 0
	for _, n := range notes {
		if n.Mood == nil || n.CreatedAt.Before(since) {
			continue
		}
		sum += *n.Mood
		count++
	}
	if count == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(count)*10) / 10
}

func distinct(notes []models.Note, values func(models.Note) []string) int {
	seen := make(map[string]struct{})
	for _, n := range notes {
		for _, v := range values(n) {
			seen[v] = struct{}{}
		}
	}
	return len(seen)
}

func special(id string, habits []models.Habit, notes []models.Note) float64 {
	switch id {
	case RainbowCollector:
		cats := make(map[models.Category]struct{})
		for _, h := range habits {
			cats[h.Category] = struct{}{}
		}
		return float64(len(cats))
	case NightOwl:
		days := make(map[string]struct{})
		for _, n := range notes {
			local := n.CreatedAt.Local()
			if local.Hour() >= nightOwlHour {
				days[local.Format(time.DateOnly)] = struct{}{}
			}
		}
		return float64(len(days))
	case EarlyBird:
		// completions record a day, not a time of day
		return 0
	}
	return 0
}

// trailingDays returns the set of the n calendar days ending with now's day.
func trailingDays(now time.Time, n int) map[string]bool {
	out := make(map[string]bool, n)
	for i := range n {
		out[now.AddDate(0, 0, -i).Format(time.DateOnly)] = true
	}
	return out
}

// NewlyUnlocked returns, in catalog order, the achievements that are complete in progress but absent from unlocked.
func NewlyUnlocked(progress map[string]Progress, unlocked []models.UnlockedAchievement) []models.Achievement {
	have := make(map[string]bool, len(unlocked))
	for _, u := range unlocked {
		have[u.ID] = true
	}

	var out []models.Achievement
	for _, a := range catalog {
		if have[a.ID] {
			continue
		}
		if p, ok := progress[a.ID]; ok && p.Complete() {
			out = append(out, a)
		}
	}
	return out
}

package achievements

import (
	"slices"

	"github.com/desertthunder/mindflow/internal/models"
)

// Achievement IDs with hand-coded special rules.
const (
	EarlyBird        = "early_bird"
	NightOwl         = "night_owl"
	RainbowCollector = "rainbow_collector"
)

func def(id, title, desc, icon, color string, cat models.AchievementCategory, rarity models.Rarity, req models.Requirement) models.Achievement {
	return models.Achievement{
		ID:          id,
		Title:       title,
		Description: desc,
		Icon:        icon,
		Color:       color,
		Category:    cat,
		Rarity:      rarity,
		Requirement: req,
	}
}

func req(t models.RequirementType, target float64) models.Requirement {
	return models.Requirement{Type: t, Target: target}
}

func weekly(t models.RequirementType, target float64) models.Requirement {
	return models.Requirement{Type: t, Target: target, Timeframe: models.TimeframeWeek}
}

var catalog = []models.Achievement{
	def("first_habit", "First Steps", "Create your first habit", "🎯", "#3B82F6",
		models.AchievementHabits, models.RarityCommon, req(models.ReqHabitCount, 1)),
	def("first_note", "Thoughtful Beginning", "Write your first note", "📝", "#22C55E",
		models.AchievementNotes, models.RarityCommon, req(models.ReqNoteCount, 1)),
	def("habit_starter", "Habit Builder", "Create 3 habits", "🏗️", "#3B82F6",
		models.AchievementHabits, models.RarityCommon, req(models.ReqHabitCount, 3)),
	def("note_taker", "Note Taker", "Write 5 notes", "📚", "#22C55E",
		models.AchievementNotes, models.RarityCommon, req(models.ReqNoteCount, 5)),

	def("week_warrior", "Week Warrior", "Achieve a 7-day total streak", "🔥", "#F97316",
		models.AchievementStreaks, models.RarityRare, req(models.ReqStreakTotal, 7)),
	def("consistency_king", "Consistency Champion", "Maintain a single habit for 7 days", "👑", "#EAB308",
		models.AchievementStreaks, models.RarityRare, req(models.ReqStreakSingle, 7)),
	def("month_master", "Month Master", "Achieve a 30-day total streak", "🏆", "#A855F7",
		models.AchievementStreaks, models.RarityEpic, req(models.ReqStreakTotal, 30)),
	def("dedication_diamond", "Diamond Dedication", "Maintain a single habit for 30 days", "💎", "#06B6D4",
		models.AchievementStreaks, models.RarityEpic, req(models.ReqStreakSingle, 30)),

	def("habit_collector", "Habit Collector", "Create 10 different habits", "🎪", "#6366F1",
		models.AchievementHabits, models.RarityEpic, req(models.ReqHabitCount, 10)),
	def("prolific_writer", "Prolific Writer", "Write 25 notes", "✍️", "#10B981",
		models.AchievementNotes, models.RarityEpic, req(models.ReqNoteCount, 25)),
	def("perfectionist", "Perfectionist", "Achieve 100% completion rate for a week", "⭐", "#F59E0B",
		models.AchievementMilestones, models.RarityEpic, weekly(models.ReqCompletionRate, 100)),
	def("mood_master", "Mood Master", "Maintain an average mood of 4+ for a week", "😊", "#EC4899",
		models.AchievementMilestones, models.RarityRare, weekly(models.ReqMoodAverage, 4)),
	def("tag_master", "Tag Master", "Use 20 different tags across your notes", "🏷️", "#14B8A6",
		models.AchievementNotes, models.RarityRare, req(models.ReqTagsUsed, 20)),
	def("sticker_enthusiast", "Sticker Enthusiast", "Use 30 different stickers in your notes", "🎨", "#F43F5E",
		models.AchievementNotes, models.RarityRare, req(models.ReqStickersUsed, 30)),

	def("century_club", "Century Club", "Achieve a 100-day total streak", "🌟", "#EF4444",
		models.AchievementStreaks, models.RarityLegendary, req(models.ReqStreakTotal, 100)),
	def("iron_will", "Iron Will", "Maintain a single habit for 100 days", "🛡️", "#6B7280",
		models.AchievementStreaks, models.RarityLegendary, req(models.ReqStreakSingle, 100)),
	def("mindflow_master", "MindFlow Master", "Write 100 notes", "🧠", "#D946EF",
		models.AchievementNotes, models.RarityLegendary, req(models.ReqNoteCount, 100)),
	def("zen_master", "Zen Master", "Complete habits for 30 consecutive days", "🧘", "#8B5CF6",
		models.AchievementMilestones, models.RarityLegendary, req(models.ReqConsecutiveDays, 30)),

	def(EarlyBird, "Early Bird", "Complete habits before 8 AM for 7 days", "🌅", "#FBBF24",
		models.AchievementSpecial, models.RarityRare, req(models.ReqSpecial, 7)),
	def(NightOwl, "Night Owl", "Write notes after 10 PM for 5 days", "🦉", "#7C3AED",
		models.AchievementSpecial, models.RarityRare, req(models.ReqSpecial, 5)),
	// Target is one habit per category, matching the description.
	def(RainbowCollector, "Rainbow Collector", "Create habits in all 5 categories", "🌈", "#60A5FA",
		models.AchievementSpecial, models.RarityEpic, req(models.ReqSpecial, 5)),
}

// Catalog returns every achievement definition in display order.
func Catalog() []models.Achievement {
	return slices.Clone(catalog)
}

// Lookup finds a definition by ID.
func Lookup(id string) (models.Achievement, bool) {
	i := slices.IndexFunc(catalog, func(a models.Achievement) bool { return a.ID == id })
	if i < 0 {
		return models.Achievement{}, false
	}
	return catalog[i], true
}

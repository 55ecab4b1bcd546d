package models

import "time"

// RequirementType selects how progress toward an achievement is measured.
type RequirementType string

const (
	ReqHabitCount      RequirementType = "habit_count"
	ReqNoteCount       RequirementType = "note_count"
	ReqStreakTotal     RequirementType = "streak_total"
	ReqStreakSingle    RequirementType = "streak_single"
	ReqCompletionRate  RequirementType = "completion_rate"
	ReqConsecutiveDays RequirementType = "consecutive_days"
	ReqMoodAverage     RequirementType = "mood_average"
	ReqTagsUsed        RequirementType = "tags_used"
	ReqStickersUsed    RequirementType = "stickers_used"
	ReqSpecial         RequirementType = "special"
)

// Timeframe narrows a requirement to a trailing window.
type Timeframe string

const (
	TimeframeNone Timeframe = ""
	TimeframeDay  Timeframe = "day"
	TimeframeWeek Timeframe = "week"
)

// AchievementCategory groups achievements on the badges screen.
type AchievementCategory string

const (
	AchievementHabits     AchievementCategory = "habits"
	AchievementNotes      AchievementCategory = "notes"
	AchievementStreaks    AchievementCategory = "streaks"
	AchievementMilestones AchievementCategory = "milestones"
	AchievementSpecial    AchievementCategory = "special"
)

// Rarity is the display tier of an achievement.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Requirement is the threshold rule of an achievement.
type Requirement struct {
	Type      RequirementType `json:"type"`
	Target    float64         `json:"target"`
	Timeframe Timeframe       `json:"timeframe,omitempty"`
}

// Achievement is a static catalog definition.
type Achievement struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	Color       string              `json:"color"`
	Category    AchievementCategory `json:"category"`
	Rarity      Rarity              `json:"rarity"`
	Requirement Requirement         `json:"requirement"`
}

// UnlockedAchievement records when an achievement was first earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlockedAt"`
}

func (u UnlockedAchievement) GetID() string { return u.ID }

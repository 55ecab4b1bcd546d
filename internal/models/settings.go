package models

// Settings are the application preferences kept in the local store.
type Settings struct {
	Notifications NotificationSettings `json:"notifications"`
	Privacy       PrivacySettings      `json:"privacy"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Habits        HabitSettings        `json:"habits"`
	Notes         NoteSettings         `json:"notes"`
	Data          DataSettings         `json:"data"`
}

type NotificationSettings struct {
	HabitReminders          bool `json:"habitReminders"`
	AchievementCelebrations bool `json:"achievementCelebrations"`
	DailySummary            bool `json:"dailySummary"`
	WeeklyReports           bool `json:"weeklyReports"`
	SoundEnabled            bool `json:"soundEnabled"`
	VibrationEnabled        bool `json:"vibrationEnabled"`
}

type PrivacySettings struct {
	DataCollection bool `json:"dataCollection"`
	Analytics      bool `json:"analytics"`
	CrashReports   bool `json:"crashReports"`
	ShareProgress  bool `json:"shareProgress"`
}

type AppearanceSettings struct {
	DarkMode          bool   `json:"darkMode"`
	CompactMode       bool   `json:"compactMode"`
	AnimationsEnabled bool   `json:"animationsEnabled"`
	HighContrast      bool   `json:"highContrast"`
	FontSize          string `json:"fontSize" validate:"oneof=small medium large"`
	AccentColor       string `json:"accentColor" validate:"hexcolor"`
}

type HabitSettings struct {
	DefaultReminder      string `json:"defaultReminder"`
	WeekStartsOn         string `json:"weekStartsOn" validate:"oneof=sunday monday"`
	ShowStreakAnimations bool   `json:"showStreakAnimations"`
	AutoCompleteEnabled  bool   `json:"autoCompleteEnabled"`
}

type NoteSettings struct {
	AutoSave       bool `json:"autoSave"`
	DefaultMood    int  `json:"defaultMood" validate:"min=1,max=5"`
	ShowWordCount  bool `json:"showWordCount"`
	EnableMarkdown bool `json:"enableMarkdown"`
}

type DataSettings struct {
	AutoBackup      bool   `json:"autoBackup"`
	BackupFrequency string `json:"backupFrequency" validate:"oneof=daily weekly monthly"`
	ExportFormat    string `json:"exportFormat" validate:"oneof=json csv markdown"`
}

// Validate checks enumerated settings values.
func (s Settings) Validate() error { return Validate(s) }

// DefaultSettings returns the preferences used before the user changes anything.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			HabitReminders:          true,
			AchievementCelebrations: true,
			SoundEnabled:            true,
			VibrationEnabled:        true,
		},
		Privacy: PrivacySettings{
			DataCollection: true,
			CrashReports:   true,
		},
		Appearance: AppearanceSettings{
			AnimationsEnabled: true,
			FontSize:          "medium",
			AccentColor:       "#3B82F6",
		},
		Habits: HabitSettings{
			DefaultReminder:      "09:00",
			WeekStartsOn:         "monday",
			ShowStreakAnimations: true,
		},
		Notes: NoteSettings{
			AutoSave:    true,
			DefaultMood: 3,
		},
		Data: DataSettings{
			AutoBackup:      true,
			BackupFrequency: "weekly",
			ExportFormat:    "json",
		},
	}
}

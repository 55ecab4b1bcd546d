package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/mindflow/internal/achievements"
	"github.com/desertthunder/mindflow/internal/insights"
	"github.com/desertthunder/mindflow/internal/models"
)

const barWidth = 20

func (m *Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if Tab(i) == m.tab {
			tabs[i] = styles.activeTab.Render(label)
		} else {
			tabs[i] = styles.tab.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *Model) renderDashboard() string {
	if m.busy() && m.stats.TotalHabits == 0 && m.stats.TotalNotes == 0 {
		return styles.help.Render("Loading your habits and notes...")
	}

	s := m.stats
	var b strings.Builder
	b.WriteString(styles.title.Render(greeting(m.opts.Session)))
	b.WriteString("\n")

	cards := []string{
		styles.card.Render(fmt.Sprintf("Today\n%d/%d habits\n%s", s.TodayCompletions, s.TotalHabits, bar(s.TodayRate))),
		styles.card.Render(fmt.Sprintf("Streaks\n%d total\n%d average", s.TotalStreak, s.AvgStreak)),
		styles.card.Render(fmt.Sprintf("Mood\n%.1f\n%s", s.AvgMood, insights.MoodLabel(s.AvgMood))),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	b.WriteString(styles.ok.Render("Recent notes"))
	b.WriteString("\n")
	if len(s.RecentNotes) == 0 {
		b.WriteString(styles.help.Render("No notes yet."))
	}
	for _, n := range s.RecentNotes {
		fmt.Fprintf(&b, "%s %s  %s\n", models.MoodEmoji(n.Mood), noteTitle(n), styles.help.Render(n.CreatedAt.Format("Jan 2")))
	}
	return b.String()
}

func greeting(session *models.Session) string {
	if session == nil || session.User.FullName == "" {
		return "MindFlow"
	}
	return "Welcome back, " + session.User.FullName
}

func (m *Model) renderInsights() string {
	s := m.stats
	var b strings.Builder

	b.WriteString(styles.title.Render("This week"))
	b.WriteString("\n")
	for _, d := range s.Weekly {
		fmt.Fprintf(&b, "%-3s %s %d/%d\n", d.Weekday, bar(d.Percentage), d.Completions, d.Total)
	}

	b.WriteString("\n")
	b.WriteString(styles.ok.Render("Categories"))
	b.WriteString("\n")
	for _, c := range models.Categories() {
		if n := s.CategoryBreakdown[c]; n > 0 {
			fmt.Fprintf(&b, "%-10s %d\n", c, n)
		}
	}
	if s.TotalHabits == 0 {
		b.WriteString(styles.help.Render("No habits yet."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%d notes this week, %d total. Average mood %.1f (%s)\n",
		s.NotesThisWeek, s.TotalNotes, s.AvgMood, insights.MoodLabel(s.AvgMood))
	return b.String()
}

func (m *Model) renderProfile() string {
	var b strings.Builder

	if m.opts.Session != nil {
		u := m.opts.Session.User
		b.WriteString(styles.title.Render(u.Email))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.title.Render("Signed out"))
		b.WriteString("\n")
	}
	switch {
	case m.opts.Profile != nil && m.opts.Profile.SpotifyConnected():
		b.WriteString(styles.ok.Render("Spotify connected"))
	default:
		b.WriteString(styles.help.Render("Spotify not connected"))
	}
	b.WriteString("\n\n")

	var earned []string
	if m.opts.Tracker != nil {
		for _, a := range m.opts.Tracker.UnlockedDefinitions() {
			earned = append(earned, a.Icon)
		}
	}
	b.WriteString(styles.ok.Render(fmt.Sprintf("Achievements %d/%d", len(earned), len(achievements.Catalog()))))
	b.WriteString("  " + strings.Join(earned, " "))
	b.WriteString("\n")
	for _, a := range achievements.Catalog() {
		b.WriteString(m.renderBadge(a))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) renderBadge(a models.Achievement) string {
	p := m.progress[a.ID]
	state := fmt.Sprintf("%3.0f%%", p.Percentage)
	if m.opts.Tracker != nil && m.opts.Tracker.IsUnlocked(a.ID) {
		state = styles.ok.Render("  ✓ ")
	}
	return fmt.Sprintf("%s %s %-22s %s", state, a.Icon, a.Title, rarity(a.Rarity))
}

func (m *Model) renderCelebration() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Achievement unlocked!"))
	b.WriteString("\n")
	for _, a := range m.celebration {
		fmt.Fprintf(&b, "%s %s  %s\n%s\n", a.Icon, a.Title, rarity(a.Rarity), styles.help.Render(a.Description))
	}
	b.WriteString("\n")
	b.WriteString(styles.help.Render("Press any key to continue"))
	return styles.overlay.Render(b.String())
}

// bar draws a percentage as a fixed-width block gauge.
func bar(percent int) string {
	filled := max(0, min(barWidth, percent*barWidth/100))
	return styles.ok.Render(strings.Repeat("█", filled)) + styles.help.Render(strings.Repeat("░", barWidth-filled))
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/mindflow/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Rarity colors follow the badge colors of the achievement catalog.
var rarityColors = map[models.Rarity]lipgloss.Color{
	models.RarityCommon:    lipgloss.Color("#9CA3AF"),
	models.RarityRare:      lipgloss.Color("#3B82F6"),
	models.RarityEpic:      lipgloss.Color("#8B5CF6"),
	models.RarityLegendary: lipgloss.Color("#F59E0B"),
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title     lipgloss.Style
	ok        lipgloss.Style
	err       lipgloss.Style
	warn      lipgloss.Style
	help      lipgloss.Style
	tab       lipgloss.Style
	activeTab lipgloss.Style
	card      lipgloss.Style
	overlay   lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:     NewBold(t).MarginBottom(1),
		ok:        NewBold(s),
		err:       NewBold(e),
		warn:      NewStyle(w),
		help:      NewEm(h),
		tab:       NewStyle(h).Padding(0, 1),
		activeTab: NewBold("#FFFFFF").Background(lipgloss.Color(t)).Padding(0, 1),
		card:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
		overlay:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(w)).Padding(1, 3),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// rarity renders the rarity label in its badge color.
func rarity(r models.Rarity) string {
	c, ok := rarityColors[r]
	if !ok {
		c = rarityColors[models.RarityCommon]
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(string(r))
}

package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/achievements"
	"github.com/desertthunder/mindflow/internal/auth"
	"github.com/desertthunder/mindflow/internal/insights"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/services"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/desertthunder/mindflow/internal/store"
	"golang.org/x/sync/errgroup"
)

// Tab is one of the six screens. Navigation is a flat selection with no history.
type Tab int

const (
	DashboardTab Tab = iota
	TrackerTab
	NotesTab
	MusicTab
	InsightsTab
	ProfileTab
)

var tabNames = []string{"Dashboard", "Tracker", "Notes", "Music", "Insights", "Profile"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return ""
	}
	return tabNames[t]
}

// PlaylistSource lists the linked music account's playlists.
type PlaylistSource interface {
	Playlists(ctx context.Context) ([]services.Playlist, error)
}

// SessionEvents streams session changes.
type SessionEvents interface {
	Subscribe() (<-chan auth.Event, func())
}

// Options carries the dashboard's collaborators. Session, Profile, Music and Sessions may be nil.
type Options struct {
	Habits   *store.Habits
	Notes    *store.Notes
	Tracker  *achievements.Tracker
	Clock    shared.Clock
	Session  *models.Session
	Profile  *models.UserProfile
	Music    PlaylistSource
	Sessions SessionEvents
	Logger   *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx         context.Context
	opts        Options
	tab         Tab
	width       int
	height      int
	habitList   list.Model
	noteList    list.Model
	musicList   list.Model
	linked      []services.Playlist
	stats       insights.Insights
	progress    map[string]achievements.Progress
	celebration []models.Achievement
	loading     bool
	status      string
	err         error
	help        help.Model
	keys        keyMap
}

func newList(title string) list.Model {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

// NewModel creates a new TUI model over already-constructed collections.
func NewModel(ctx context.Context, opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = shared.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	m := &Model{
		ctx:       ctx,
		opts:      opts,
		tab:       DashboardTab,
		habitList: newList("Today's Habits"),
		noteList:  newList("Notes"),
		musicList: newList("Music"),
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.refresh()
	return m
}

// Run starts the program on the alternate screen and forwards collection changes into it.
func Run(ctx context.Context, opts Options) error {
	m := NewModel(ctx, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	store.Watch(opts.Habits, opts.Notes, func([]models.Habit, []models.Note) {
		go p.Send(changedMsg())
	})

	if opts.Sessions != nil {
		events, stop := opts.Sessions.Subscribe()
		defer stop()
		go func() {
			for e := range events {
				p.Send(sessionMsg(e))
			}
		}()
	}

	_, err := p.Run()
	return err
}

// Init loads both collections and, when an account is linked, its playlists.
func (m *Model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.load(), m.fetchPlaylists())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.habitList, &m.noteList, &m.musicList} {
			l.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateList(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgLoaded:
		m.loading = false
		m.err = msg.data.(loadedData).err
		return m, m.refresh()

	case MsgToggled:
		data := msg.data.(toggledData)
		if data.err != nil {
			m.err = data.err
			return m, nil
		}
		m.err = nil
		if data.habit.CompletedOn(m.today()) {
			m.status = styles.ok.Render("✓ " + data.habit.Name + " completed")
		} else {
			m.status = styles.warn.Render("○ " + data.habit.Name + " unmarked")
		}
		return m, m.refresh()

	case MsgPlaylistsFetched:
		data := msg.data.(playlistsData)
		if data.err != nil {
			m.opts.Logger.Warn("failed to fetch linked playlists", "err", data.err)
			m.status = styles.warn.Render("Could not load Spotify playlists")
		}
		m.linked = data.playlists
		return m, m.refresh()

	case MsgChanged:
		return m, m.refresh()

	case MsgSession:
		e := msg.data.(auth.Event)
		m.opts.Session = e.Session
		if e.Type != auth.UserUpdated {
			m.opts.Profile = nil
			m.linked = nil
			m.loading = true
			return m, m.load()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.celebration) > 0 {
		m.opts.Tracker.Dismiss()
		m.celebration = nil
		return m, nil
	}

	if l := m.activeList(); l != nil && l.FilterState() == list.Filtering {
		return m.updateList(msg)
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.prev):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		return m, nil
	case key.Matches(msg, m.keys.jump):
		m.tab = Tab(msg.Runes[0] - '1')
		return m, nil
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		m.loading = true
		return m, m.load()
	case m.tab == TrackerTab && key.Matches(msg, m.keys.toggle):
		if item, ok := m.habitList.SelectedItem().(habitItem); ok {
			return m, m.toggle(item.habit.ID)
		}
		return m, nil
	}

	return m.updateList(msg)
}

func (m *Model) activeList() *list.Model {
	switch m.tab {
	case TrackerTab:
		return &m.habitList
	case NotesTab:
		return &m.noteList
	case MusicTab:
		return &m.musicList
	default:
		return nil
	}
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	l := m.activeList()
	if l == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m *Model) today() string {
	return shared.Day(m.opts.Clock.Now())
}

// refresh rebuilds every derived view from the current collections.
func (m *Model) refresh() tea.Cmd {
	habits := m.opts.Habits.List()
	notes := m.opts.Notes.List()
	today := m.today()

	habitItems := make([]list.Item, len(habits))
	for i, h := range habits {
		habitItems[i] = habitItem{habit: h, today: today}
	}
	noteItems := make([]list.Item, len(notes))
	for i, n := range notes {
		noteItems[i] = noteItem{note: n}
	}
	var musicItems []list.Item
	for _, p := range m.linked {
		musicItems = append(musicItems, linkedItem(p))
	}
	for _, p := range services.CuratedPlaylists("") {
		musicItems = append(musicItems, curatedItem(p))
	}

	now := m.opts.Clock.Now()
	m.stats = insights.Compute(habits, notes, now)
	if m.opts.Tracker != nil {
		m.progress = m.opts.Tracker.Progress(habits, notes)
		m.celebration = m.opts.Tracker.Celebration()
	}

	return tea.Batch(
		m.habitList.SetItems(habitItems),
		m.noteList.SetItems(noteItems),
		m.musicList.SetItems(musicItems),
	)
}

// busy reports whether either collection is still loading.
func (m *Model) busy() bool {
	return m.loading || m.opts.Habits.Loading() || m.opts.Notes.Loading()
}

// load reads both collections concurrently.
func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		g, ctx := errgroup.WithContext(m.ctx)
		g.Go(func() error { return m.opts.Habits.Load(ctx) })
		g.Go(func() error { return m.opts.Notes.Load(ctx) })
		return loadedMsg(g.Wait())
	}
}

func (m *Model) toggle(id string) tea.Cmd {
	return func() tea.Msg {
		h, err := m.opts.Habits.ToggleToday(id)
		return toggledMsg(h, err)
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	if m.opts.Music == nil {
		return nil
	}
	return func() tea.Msg {
		playlists, err := m.opts.Music.Playlists(m.ctx)
		return playlistsFetchedMsg(playlists, err)
	}
}

// View renders the UI based on the current tab.
func (m *Model) View() string {
	if len(m.celebration) > 0 {
		return m.renderCelebration()
	}

	var body string
	switch m.tab {
	case DashboardTab:
		body = m.renderDashboard()
	case TrackerTab:
		body = m.habitList.View()
	case NotesTab:
		body = m.noteList.View()
	case MusicTab:
		body = m.musicList.View()
	case InsightsTab:
		body = m.renderInsights()
	case ProfileTab:
		body = m.renderProfile()
	}

	footer := m.help.View(m.keys)
	if m.err != nil {
		footer = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n" + footer
	} else if m.status != "" {
		footer = m.status + "\n" + footer
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s", m.renderTabs(), body, footer)
}

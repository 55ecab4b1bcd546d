package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mindflow/internal/auth"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/services"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLoaded MsgKind = iota
	MsgToggled
	MsgPlaylistsFetched
	MsgChanged
	MsgSession
)

type loadedData struct {
	err error
}

type toggledData struct {
	habit models.Habit
	err   error
}

type playlistsData struct {
	playlists []services.Playlist
	err       error
}

// loadedMsg is the constructor for [MsgLoaded]
func loadedMsg(err error) Msg {
	return Msg{kind: MsgLoaded, data: loadedData{err}}
}

// toggledMsg is the constructor for [MsgToggled]
func toggledMsg(habit models.Habit, err error) Msg {
	return Msg{kind: MsgToggled, data: toggledData{habit, err}}
}

// playlistsFetchedMsg is the constructor for [MsgPlaylistsFetched]
func playlistsFetchedMsg(playlists []services.Playlist, err error) Msg {
	return Msg{kind: MsgPlaylistsFetched, data: playlistsData{playlists, err}}
}

// changedMsg is the constructor for [MsgChanged], sent when a collection changes outside the TUI's own commands.
func changedMsg() Msg {
	return Msg{kind: MsgChanged}
}

// sessionMsg is the constructor for [MsgSession], sent when the user signs in, out or is renamed.
func sessionMsg(e auth.Event) Msg {
	return Msg{kind: MsgSession, data: e}
}

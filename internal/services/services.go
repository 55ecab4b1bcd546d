package services

import (
	"context"

	"github.com/desertthunder/mindflow/internal/models"
	"golang.org/x/oauth2"
)

// MusicService is a streaming provider a user can link to their profile.
type MusicService interface {
	// Name returns the display name of the provider.
	Name() string

	// AuthURL returns the consent page URL carrying state.
	AuthURL(state string) string

	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)

	// Authenticate installs stored tokens for subsequent API calls.
	Authenticate(ctx context.Context, token *oauth2.Token) error

	// Playlists lists the linked account's playlists.
	Playlists(ctx context.Context) ([]Playlist, error)
}

// Playlist is a playlist owned or followed by the linked account.
type Playlist struct {
	ID          string
	Name        string
	Description string
	Owner       string
	TrackCount  int
	Public      bool
	URL         string
}

// CuratedPlaylists returns the built-in wellness playlists, optionally filtered by category.
func CuratedPlaylists(category string) []models.Playlist {
	all := models.CuratedPlaylists()
	if category == "" {
		return all
	}

	var out []models.Playlist
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Stickers returns the sticker catalog, optionally filtered by category.
func Stickers(category string) []models.Sticker {
	if category == "" {
		return models.Stickers()
	}
	return models.StickersIn(category)
}

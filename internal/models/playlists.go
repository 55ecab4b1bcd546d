package models

import "slices"

// Playlist is a curated Spotify playlist shown on the music screen.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	SpotifyURL  string `json:"spotifyUrl"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Category    string `json:"category"`
}

var curated = []Playlist{
	{
		ID:          "1",
		Name:        "Peaceful Mind",
		Description: "Calming sounds for meditation and relaxation",
		SpotifyURL:  "https://open.spotify.com/playlist/37i9dQZF1DWZeKCadgRdKQ",
		ImageURL:    "https://images.pexels.com/photos/3760269/pexels-photo-3760269.jpeg?auto=compress&cs=tinysrgb&w=300",
		Category:    "meditation",
	},
	{
		ID:          "2",
		Name:        "Focus Flow",
		Description: "Instrumental music to enhance concentration",
		SpotifyURL:  "https://open.spotify.com/playlist/37i9dQZF1DX0XUsuxWHRQd",
		ImageURL:    "https://images.pexels.com/photos/3184360/pexels-photo-3184360.jpeg?auto=compress&cs=tinysrgb&w=300",
		Category:    "focus",
	},
	{
		ID:          "3",
		Name:        "Evening Unwind",
		Description: "Gentle melodies for winding down",
		SpotifyURL:  "https://open.spotify.com/playlist/37i9dQZF1DX3Ogo9pFvBkY",
		ImageURL:    "https://images.pexels.com/photos/1939485/pexels-photo-1939485.jpeg?auto=compress&cs=tinysrgb&w=300",
		Category:    "relaxation",
	},
	{
		ID:          "4",
		Name:        "Morning Motivation",
		Description: "Uplifting tracks to start your day right",
		SpotifyURL:  "https://open.spotify.com/playlist/37i9dQZF1DX0UrRvztWcAU",
		ImageURL:    "https://images.pexels.com/photos/1568607/pexels-photo-1568607.jpeg?auto=compress&cs=tinysrgb&w=300",
		Category:    "motivation",
	},
	{
		ID:          "5",
		Name:        "Sleep Sounds",
		Description: "Soothing sounds for better sleep",
		SpotifyURL:  "https://open.spotify.com/playlist/37i9dQZF1DWS4yGHoJsXtz",
		ImageURL:    "https://images.pexels.com/photos/1482476/pexels-photo-1482476.jpeg?auto=compress&cs=tinysrgb&w=300",
		Category:    "sleep",
	},
}

// CuratedPlaylists returns the built-in playlist catalog.
func CuratedPlaylists() []Playlist {
	return slices.Clone(curated)
}

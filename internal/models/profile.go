package models

import "time"

// User is an account in the remote auth store.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	FullName  string    `json:"fullName" validate:"max=100"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is the signed-in state cached by the auth service.
type Session struct {
	User        User      `json:"user"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserID returns the owning user for collection writes, or "" when there is no session.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// UserProfile is the remote profile row that carries linked-account tokens.
type UserProfile struct {
	ID                  string     `json:"id"`
	FullName            string     `json:"fullName,omitempty"`
	SpotifyAccessToken  string     `json:"-"`
	SpotifyRefreshToken string     `json:"-"`
	SpotifyConnectedAt  *time.Time `json:"spotifyConnectedAt,omitempty"`
}

// SpotifyConnected reports whether an access token is stored.
func (p UserProfile) SpotifyConnected() bool {
	return p.SpotifyAccessToken != ""
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/server"
	"github.com/desertthunder/mindflow/internal/services"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const defaultConnectTimeout = 2 * time.Minute

// profileReader reads the remote profile carrying linked-account tokens.
type profileReader interface {
	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
}

// linkedSpotify lists playlists with the tokens stored on the user's profile.
type linkedSpotify struct {
	svc      *services.SpotifyService
	profiles profileReader
	userID   string
}

func (l *linkedSpotify) Playlists(ctx context.Context) ([]services.Playlist, error) {
	if !l.svc.Authenticated() {
		profile, err := l.profiles.GetProfile(ctx, l.userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}
		if !profile.SpotifyConnected() {
			return nil, fmt.Errorf("%w: spotify is not connected, run `mindflow spotify connect`", shared.ErrMissingCredentials)
		}

		token := &oauth2.Token{
			AccessToken:  profile.SpotifyAccessToken,
			RefreshToken: profile.SpotifyRefreshToken,
			TokenType:    "Bearer",
		}
		if err := l.svc.Authenticate(ctx, token); err != nil {
			return nil, err
		}
	}
	return l.svc.Playlists(ctx)
}

// SpotifyConnect runs the authorization flow: a local server receives the redirect, exchanges the
// code and stores the tokens on the signed-in user's profile.
func (r *Runner) SpotifyConnect(ctx context.Context, cmd *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: set credentials.spotify.client_id and client_secret in config.toml", shared.ErrMissingCredentials)
	}

	var profiles server.ProfileLinker
	if r.remote != nil {
		profiles = r.remote
	}
	callback := server.NewSpotifyCallback(r.spotify, profiles, r.auth, r.clock, r.logger)
	router := server.NewCallbackRouter(callback, r.logger)

	listener, err := server.Listen(r.config.Server.Addr(), router, r.logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		listener.Shutdown(shutdownCtx)
	}()

	authURL := r.spotify.AuthURL(r.auth.UserID())
	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	timeout := cmd.Duration("timeout")
	r.writePlain("→ Waiting for authorization (%s timeout)...\n", timeout)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var result server.CallbackResult
	select {
	case result = <-callback.Result():
	case err := <-listener.Errors():
		return fmt.Errorf("server error: %w", err)
	case <-timer.C:
		return fmt.Errorf("%w: authorization timed out after %s", shared.ErrTimeout, timeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := result.Error(); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	r.writePlainln("✓ Spotify connected")
	r.writePlain("You can now use: mindflow spotify playlists\n")
	return nil
}

// SpotifyDisconnect removes the stored tokens from the profile.
func (r *Runner) SpotifyDisconnect(ctx context.Context, cmd *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}
	if err := r.remote.UnlinkSpotify(ctx, r.auth.UserID()); err != nil {
		return err
	}
	return r.writePlain("✓ Spotify disconnected\n")
}

// SpotifyPlaylists lists the linked account's playlists with optional limit.
func (r *Runner) SpotifyPlaylists(ctx context.Context, cmd *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}
	source := r.musicSource()
	if source == nil {
		return fmt.Errorf("%w: Spotify credentials not configured", shared.ErrServiceUnavailable)
	}

	limit := cmd.Int("limit")
	r.logger.Infof("listing spotify playlists with limit %v", limit)

	playlists, err := source.Playlists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if limit > 0 && int(limit) < len(playlists) {
		playlists = playlists[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, p := range playlists {
		r.writePlain("%d. %s\n", i+1, p.Name)
		if p.Description != "" {
			r.writePlain("   Description: %s\n", p.Description)
		}
		r.writePlain("   Tracks: %d\n", p.TrackCount)
		if p.Public {
			r.writePlain("   Visibility: Public\n")
		} else {
			r.writePlain("   Visibility: Private\n")
		}
		if p.URL != "" {
			r.writePlain("   %s\n", p.URL)
		}
		r.writePlain("\n")
	}
	return nil
}

// SpotifyCurated lists the built-in wellness playlists.
func (r *Runner) SpotifyCurated(ctx context.Context, cmd *cli.Command) error {
	playlists := services.CuratedPlaylists(cmd.String("category"))
	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	for _, p := range playlists {
		r.writePlain("%-20s [%s]\n", p.Name, p.Category)
		r.writePlain("   %s\n", p.Description)
		r.writePlain("   %s\n\n", p.SpotifyURL)
	}
	return nil
}

// musicSource returns the linked-account playlist source, or nil when Spotify or the remote store
// is unavailable or nobody is signed in.
func (r *Runner) musicSource() *linkedSpotify {
	if r.spotify == nil || r.remote == nil || r.auth.UserID() == "" {
		return nil
	}
	return &linkedSpotify{svc: r.spotify, profiles: r.remote, userID: r.auth.UserID()}
}

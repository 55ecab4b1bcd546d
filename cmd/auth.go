package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/desertthunder/mindflow/internal/auth"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthSignIn signs in with email and password, prompting for whichever was not passed.
func (r *Runner) AuthSignIn(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRemote(ctx); err != nil {
		return err
	}

	email, password := cmd.String("email"), cmd.String("password")
	if err := r.promptCredentials(ctx, &email, &password, nil); err != nil {
		return err
	}

	session, err := r.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	r.logger.Info("signed in", "user", session.User.ID)
	r.writePlain("✓ Signed in as %s\n", session.User.Email)
	r.writePlain("Run `mindflow push` to upload habits and notes created while signed out.\n")
	return nil
}

// AuthSignUp creates an account and signs in to it.
func (r *Runner) AuthSignUp(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRemote(ctx); err != nil {
		return err
	}

	email, password, name := cmd.String("email"), cmd.String("password"), cmd.String("name")
	if err := r.promptCredentials(ctx, &email, &password, &name); err != nil {
		return err
	}

	session, err := r.auth.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}

	r.logger.Info("account created", "user", session.User.ID)
	r.writePlain("✓ Account created for %s\n", session.User.Email)
	return nil
}

// AuthSignOut forgets the stored session.
func (r *Runner) AuthSignOut(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireRemote(ctx); err != nil {
		return err
	}
	if err := r.auth.SignOut(ctx); err != nil {
		return err
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus restores the stored session and prints who is signed in.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.wired(ctx); err != nil {
		return err
	}
	if !r.auth.Configured() {
		return r.writePlain("Remote store: ✗ Not configured (local-only)\n")
	}
	r.writePlain("Remote store: ✓ Connected\n")

	session, err := r.auth.Session(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return r.writePlain("Session: ✗ Signed out\n")
	}

	r.writePlain("Session: ✓ Signed in as %s\n", session.User.Email)
	if session.User.FullName != "" {
		r.writePlain("Name: %s\n", session.User.FullName)
	}
	r.writePlain("Expires: %s\n", session.ExpiresAt.Local().Format("2006-01-02 15:04"))

	if profile, err := r.remote.GetProfile(ctx, session.User.ID); err == nil {
		r.writePlain("Spotify: %s\n", spotifyState(profile))
	} else {
		r.logger.Warn("failed to load profile", "err", err)
	}
	return nil
}

// AuthRename changes the signed-in account's display name.
func (r *Runner) AuthRename(ctx context.Context, cmd *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}

	name := cmd.String("name")
	session, err := r.auth.UpdateUser(ctx, auth.UserUpdate{FullName: &name})
	if err != nil {
		return err
	}
	return r.writePlain("✓ Name changed to %s\n", session.User.FullName)
}

// requireRemote opens the stores and fails when no remote store is reachable.
func (r *Runner) requireRemote(ctx context.Context) error {
	if err := r.wired(ctx); err != nil {
		return err
	}
	if !r.auth.Configured() {
		return fmt.Errorf("%w: set remote.url in config.toml or %s", shared.ErrRemoteUnavailable, shared.EnvRemoteURL)
	}
	return nil
}

// signedIn restores the session and fails when nobody is signed in.
func (r *Runner) signedIn(ctx context.Context) error {
	if err := r.requireRemote(ctx); err != nil {
		return err
	}
	session, err := r.auth.Session(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("%w: run `mindflow auth signin` first", shared.ErrNotAuthenticated)
	}
	return nil
}

// promptCredentials asks for missing values in a terminal. name is only prompted when non-nil.
func (r *Runner) promptCredentials(ctx context.Context, email, password, name *string) error {
	if *email != "" && *password != "" {
		return nil
	}
	if !r.interactive() {
		return fmt.Errorf("%w: --email and --password are required outside a terminal", shared.ErrMissingArgument)
	}

	fields := []huh.Field{
		huh.NewInput().Title("Email").Value(email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Validate(func(s string) error {
				if len(s) < auth.MinPasswordLength {
					return fmt.Errorf("at least %d characters", auth.MinPasswordLength)
				}
				return nil
			}).
			Value(password),
	}
	if name != nil {
		fields = append(fields, huh.NewInput().Title("Full name").Value(name))
	}

	if err := huh.NewForm(huh.NewGroup(fields...)).RunWithContext(ctx); err != nil {
		return fmt.Errorf("failed to read credentials: %w", err)
	}
	return nil
}

func spotifyState(p models.UserProfile) string {
	if !p.SpotifyConnected() {
		return "✗ Not connected"
	}
	if p.SpotifyConnectedAt != nil {
		return "✓ Connected since " + p.SpotifyConnectedAt.Local().Format("2006-01-02")
	}
	return "✓ Connected"
}

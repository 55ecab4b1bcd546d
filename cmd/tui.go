package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/desertthunder/mindflow/internal/ui"
	"github.com/urfave/cli/v3"
)

// Dashboard launches the interactive terminal UI.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	if r.habits == nil {
		r.SetLogger(shared.NewFileLogger(r.config.Log.File, r.verbose))
	}

	if err := r.ready(ctx); err != nil {
		return err
	}

	opts := ui.Options{
		Habits:  r.habits,
		Notes:   r.notes,
		Tracker: r.tracker,
		Clock:   r.clock,
		Session: r.auth.Current(),
		Logger:  r.logger,
	}
	if r.auth.Configured() {
		opts.Sessions = r.auth
	}

	if r.remote != nil && opts.Session != nil {
		profile, err := r.remote.GetProfile(ctx, opts.Session.User.ID)
		if err != nil {
			r.logger.Warn("failed to load profile", "err", err)
		} else {
			opts.Profile = &profile
		}
	}
	if src := r.musicSource(); src != nil && opts.Profile != nil && opts.Profile.SpotifyConnected() {
		opts.Music = src
	}

	if err := ui.Run(ctx, opts); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

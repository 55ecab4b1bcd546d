package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/desertthunder/mindflow/internal/remote"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupInit writes config.toml from the template when missing and initializes the local store.
func (r *Runner) SetupInit(ctx context.Context, cmd *cli.Command) error {
	path := r.configPath
	if path == "" {
		path = "config.toml"
	}

	if _, err := os.Stat(path); err != nil {
		r.logger.Info("config file not found, creating from template", "path", path)
		if err := shared.CreateConfigFile(path); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		r.writePlain("✓ Config created at %s\n", path)
		if created, err := shared.LoadConfig(path); err == nil && r.config.Auth.JWTSecret == shared.PlaceholderJWTSecret {
			r.config.Auth.JWTSecret = created.Auth.JWTSecret
		}
	} else {
		r.writePlain("✓ Config found at %s\n", path)
	}

	if cmd.IsSet("remote-url") || cmd.IsSet("db") {
		cfg, err := shared.LoadConfig(path)
		if err != nil {
			return err
		}
		if cmd.IsSet("remote-url") {
			cfg.Remote.URL = cmd.String("remote-url")
			r.config.Remote.URL = cfg.Remote.URL
		}
		if cmd.IsSet("db") {
			cfg.Database.Path = cmd.String("db")
			r.config.Database.Path = cfg.Database.Path
		}
		if err := shared.SaveConfig(path, cfg); err != nil {
			return err
		}
		r.writePlain("✓ Config updated\n")
	}

	if r.db == nil {
		r.logger.Info("initializing database", "path", r.config.Database.Path)
		db, err := shared.OpenLocalStore(r.config.Database)
		if err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		defer db.Close()
	}

	r.writePlain("✓ Local store ready at %s\n", r.config.Database.Path)
	if !r.config.Remote.Configured() {
		r.writePlainln("Running local-only. Set remote.url (or %s) to sync with a remote store.", shared.EnvRemoteURL)
	}
	return nil
}

// SetupMigrate applies pending migrations to the local store and, when configured, the remote store.
func (r *Runner) SetupMigrate(ctx context.Context, cmd *cli.Command) error {
	db := r.db
	if db == nil {
		opened, err := shared.OpenLocalStore(r.config.Database)
		if err != nil {
			return err
		}
		defer opened.Close()
		db = opened
	} else if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	statuses, err := shared.MigrationStatuses(db)
	if err != nil {
		return err
	}

	r.writePlainHeader("Local migrations")
	for _, s := range statuses {
		mark := "○"
		if s.Applied {
			mark = "✓"
		}
		r.writePlain("%s %03d %s\n", mark, s.Version, s.Name)
	}

	if !r.config.Remote.Configured() {
		r.writePlainln("Remote store not configured; skipped remote migrations.")
		return nil
	}

	if r.remote != nil {
		if err := r.remote.Migrate(ctx); err != nil {
			return err
		}
	} else {
		client, err := remote.Open(ctx, r.config.Remote.URL, r.logger)
		if err != nil {
			return fmt.Errorf("failed to migrate remote store: %w", err)
		}
		defer client.Close()
	}
	r.writePlainln("✓ Remote migrations applied")
	return nil
}

// SetupRollback reverts the most recently applied local migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	statuses, err := shared.MigrationStatuses(db)
	if err != nil {
		return err
	}
	var last *shared.MigrationStatus
	for i := range statuses {
		if statuses[i].Applied {
			last = &statuses[i]
		}
	}
	if last == nil {
		return r.writePlain("No migrations to roll back.\n")
	}

	if err := shared.RollbackMigration(db); err != nil {
		return err
	}
	r.logger.Warn("migration rolled back", "version", last.Version, "name", last.Name)
	return r.writePlain("✓ Rolled back %03d %s\n", last.Version, last.Name)
}

// SetupReset clears every locally stored collection, setting and push record.
func (r *Runner) SetupReset(ctx context.Context, cmd *cli.Command) error {
	confirmed := cmd.Bool("yes")
	if !confirmed {
		if !r.interactive() {
			return fmt.Errorf("%w: pass --yes to confirm outside a terminal", shared.ErrMissingArgument)
		}
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all local data?").
				Description("Habits, notes, achievements and settings stored on this machine will be deleted.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		))
		if err := form.RunWithContext(ctx); err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
	}
	if !confirmed {
		r.writePlain("Cancelled.\n")
		return nil
	}

	if err := r.wired(ctx); err != nil {
		return err
	}

	keys, err := r.snapshots.Keys()
	if err != nil {
		return err
	}
	if err := r.snapshots.Clear(); err != nil {
		return err
	}
	if err := r.pushLog.Clear(); err != nil {
		return err
	}
	r.loaded = false

	r.logger.Info("local data cleared", "keys", keys)
	r.writePlain("✓ All local data cleared (%d collections)\n", len(keys))
	return nil
}

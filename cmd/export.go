package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/mindflow/internal/formatter"
	"github.com/desertthunder/mindflow/internal/repositories"
	"github.com/desertthunder/mindflow/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes habits, notes, unlocked achievements and settings to disk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.ready(ctx); err != nil {
		return err
	}

	settings, err := r.settings.Get()
	if err != nil {
		return err
	}

	format := cmd.String("format")
	if format == "" {
		format = settings.Data.ExportFormat
	}

	snapshot := formatter.ExportSnapshot{
		ExportedAt:   r.clock.Now().UTC(),
		Habits:       r.habits.List(),
		Notes:        r.notes.List(),
		Achievements: r.tracker.Unlocked(),
		Settings:     settings,
	}

	files, err := formatter.Write(format, cmd.String("output"), snapshot)
	if err != nil {
		return err
	}

	r.logger.Info("export written", "format", format, "files", files)
	r.writePlain("✓ Exported %d habits, %d notes and %d achievements\n",
		len(snapshot.Habits), len(snapshot.Notes), len(snapshot.Achievements))
	for _, f := range files {
		r.writePlain("  %s\n", f)
	}
	return nil
}

// Push uploads habits and notes the remote store does not have yet for the signed-in user.
func (r *Runner) Push(ctx context.Context, cmd *cli.Command) error {
	if err := r.signedIn(ctx); err != nil {
		return err
	}

	// The local snapshots hold what was recorded on this machine, signed in or not.
	habits, err := repositories.Habits(r.snapshots).Load()
	if err != nil {
		return err
	}
	notes, err := repositories.Notes(r.snapshots).Load()
	if err != nil {
		return err
	}

	var remote tasks.Remote
	if r.remote != nil {
		remote = r.remote
	}
	engine := tasks.NewPushEngine(remote, r.pushLog, r.logger, tasks.PushOpts{
		Workers:   int(cmd.Int("workers")),
		RateLimit: cmd.Float("rate"),
	})

	r.writePlain("Pushing local data to the remote store...\n")

	progressCh := make(chan tasks.ProgressUpdate, 50)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		for update := range progressCh {
			switch update.Phase {
			case tasks.Preparing:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.Habits, tasks.Notes:
				if update.Step == 1 {
					r.writePlain("\n📝 %s\n", update.Phase)
				}
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Push(ctx, progressCh, r.auth.UserID(), habits, notes)
	close(progressCh)
	<-printed

	if err != nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Push Complete!")
	r.writePlain("Habits pushed: %d\n", result.HabitsPushed)
	r.writePlain("Notes pushed:  %d\n", result.NotesPushed)
	r.writePlain("Skipped:       %d\n", result.Skipped)

	if result.Failed > 0 {
		r.writePlain("\nFailed to push %d records:\n", result.Failed)
		for _, e := range result.Errors {
			r.writePlain("  - %s\n", e.Error())
		}
		return fmt.Errorf("%d records failed to push", result.Failed)
	}
	return nil
}

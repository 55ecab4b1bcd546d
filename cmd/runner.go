package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/achievements"
	"github.com/desertthunder/mindflow/internal/auth"
	"github.com/desertthunder/mindflow/internal/formatter"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/remote"
	"github.com/desertthunder/mindflow/internal/repositories"
	"github.com/desertthunder/mindflow/internal/services"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/desertthunder/mindflow/internal/store"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The local store, remote client and collections are opened on first use so that commands like
// `setup init` work before any configuration exists.
type Runner struct {
	config      *shared.Config
	configPath  string
	configured  bool
	verbose     bool
	logger      *log.Logger
	output      io.Writer
	clock       shared.Clock
	interactive func() bool

	db        *sql.DB
	remote    *remote.Client
	tokens    auth.TokenStore
	auth      *auth.Service
	habits    *store.Habits
	notes     *store.Notes
	tracker   *achievements.Tracker
	snapshots *repositories.SnapshotRepository
	settings  *repositories.SettingsRepository
	pushLog   *repositories.PushLogRepository
	spotify   *services.SpotifyService
	loaded    bool
}

// RunnerOpts contains configuration options for creating a Runner.
//
// When DB is set the runner is wired immediately against it, with Remote as the optional remote
// store. Otherwise both are opened from the configuration on first use.
type RunnerOpts struct {
	Config      *shared.Config
	ConfigPath  string
	Logger      *log.Logger
	Output      io.Writer
	Clock       shared.Clock
	DB          *sql.DB
	Remote      *remote.Client
	Tokens      auth.TokenStore
	Spotify     *services.SpotifyService
	Interactive func() bool
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	configured := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = shared.RealClock{}
	}
	if opts.Interactive == nil {
		opts.Interactive = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}

	r := &Runner{
		config:      opts.Config,
		configPath:  opts.ConfigPath,
		configured:  configured,
		logger:      opts.Logger,
		output:      opts.Output,
		clock:       opts.Clock,
		interactive: opts.Interactive,
		tokens:      opts.Tokens,
		spotify:     opts.Spotify,
	}

	if opts.DB != nil {
		if err := r.wire(opts.DB, opts.Remote); err != nil {
			r.logger.Error("failed to wire runner", "err", err)
		}
	}
	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, habitCommand, noteCommand, achievementsCommand, insightsCommand, authCommand,
		spotifyCommand, stickersCommand, settingsCommand, exportCommand, pushCommand, dashboardCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the logger used for components opened after the call.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// configure loads the config file named by --config, overlays .env and the environment, and sets
// the log level. It is a no-op for runners constructed with an explicit config.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	r.verbose = cmd.Bool("verbose")
	if r.configured {
		return ctx, nil
	}

	r.configPath = cmd.String("config")
	if err := shared.LoadDotEnv(); err != nil {
		r.logger.Warn("failed to load .env", "err", err)
	}

	if _, err := os.Stat(r.configPath); err == nil {
		cfg, err := shared.LoadConfig(r.configPath)
		if err != nil {
			return ctx, err
		}
		r.config = cfg
	} else {
		r.logger.Debug("config file not found, using defaults", "path", r.configPath)
	}
	shared.ApplyEnv(r.config)
	r.configured = true

	level := shared.ParseLogLevel(r.config.Log.Level)
	if r.verbose {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// open connects the local store and, when configured, the remote store. An unreachable remote is
// logged and the runner continues local-only.
func (r *Runner) open(ctx context.Context) error {
	db, err := shared.OpenLocalStore(r.config.Database)
	if err != nil {
		return fmt.Errorf("failed to open local store: %w", err)
	}

	var client *remote.Client
	if r.config.Remote.Configured() {
		openCtx, cancel := context.WithTimeout(ctx, r.config.Remote.LoadTimeout())
		client, err = remote.Open(openCtx, r.config.Remote.URL, r.logger)
		cancel()
		if err != nil {
			r.logger.Warn("remote store unavailable; running local-only", "err", err)
			client = nil
		}
	}

	if r.tokens == nil {
		r.tokens = auth.NewKeyringStore("")
	}
	if r.spotify == nil && r.config.Credentials.Spotify.Configured() {
		if svc, err := services.NewSpotifyService(r.config.Credentials.Spotify.Map()); err == nil {
			r.spotify = svc
		} else {
			r.logger.Warn("spotify credentials rejected", "err", err)
		}
	}

	return r.wire(db, client)
}

// wire builds the repositories, session service, collections and achievement tracker.
//
// The remote client is handed to every consumer as an untyped nil when absent so that their
// "remote configured" checks see a nil interface.
func (r *Runner) wire(db *sql.DB, client *remote.Client) error {
	r.db = db
	r.remote = client
	r.snapshots = repositories.NewSnapshotRepository(db)
	r.settings = repositories.NewSettingsRepository(r.snapshots)
	r.pushLog = repositories.NewPushLogRepository(db)

	var (
		users       auth.Users
		habitRemote store.HabitRemote
		noteRemote  store.NoteRemote
	)
	if client != nil {
		users, habitRemote, noteRemote = client, client, client
	}

	r.auth = auth.NewService(users, r.tokens, auth.Options{
		Secret:  r.config.Auth.JWTSecret,
		TTL:     r.config.Auth.TTL(),
		Timeout: r.config.Remote.LoadTimeout(),
		Clock:   r.clock,
		Logger:  r.logger,
	})

	opts := store.Options{
		Session:      r.auth,
		Clock:        r.clock,
		Logger:       r.logger,
		LoadTimeout:  r.config.Remote.LoadTimeout(),
		WriteTimeout: r.config.Remote.MirrorTimeout(),
	}
	r.habits = store.NewHabits(repositories.Habits(r.snapshots), habitRemote, opts)
	r.notes = store.NewNotes(repositories.Notes(r.snapshots), noteRemote, opts)

	tracker, err := achievements.NewTracker(repositories.Achievements(r.snapshots), r.clock, r.logger)
	if err != nil {
		return err
	}
	r.tracker = tracker
	store.Watch(r.habits, r.notes, func(habits []models.Habit, notes []models.Note) {
		if _, err := r.tracker.Check(habits, notes); err != nil {
			r.logger.Warn("achievement check failed", "err", err)
		}
	})
	return nil
}

// wired opens the stores on first use without loading the collections.
func (r *Runner) wired(ctx context.Context) error {
	if r.habits != nil {
		return nil
	}
	return r.open(ctx)
}

// ready opens the stores if needed, restores the session and loads both collections concurrently.
func (r *Runner) ready(ctx context.Context) error {
	if r.loaded {
		return nil
	}
	if err := r.wired(ctx); err != nil {
		return err
	}

	if r.auth.Configured() {
		if _, err := r.auth.Session(ctx); err != nil {
			r.logger.Warn("failed to restore session", "err", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return r.habits.Load(gctx) })
	g.Go(func() error { return r.notes.Load(gctx) })
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to load collections: %w", err)
	}

	if err := r.habits.RefreshStreaks(); err != nil {
		r.logger.Warn("failed to refresh streaks", "err", err)
	}
	if _, err := r.tracker.Check(r.habits.List(), r.notes.List()); err != nil {
		r.logger.Warn("achievement check failed", "err", err)
	}

	r.loaded = true
	return nil
}

// Close waits for in-flight remote writes and releases the stores.
func (r *Runner) Close() error {
	if r.habits != nil {
		r.habits.Wait()
	}
	if r.notes != nil {
		r.notes.Wait()
	}

	var errs []error
	if r.remote != nil {
		errs = append(errs, r.remote.Close())
	}
	if r.db != nil {
		errs = append(errs, r.db.Close())
	}
	return errors.Join(errs...)
}

// celebrate prints achievements unlocked by the command, once.
func (r *Runner) celebrate() {
	unlocked := r.tracker.Celebration()
	if len(unlocked) == 0 {
		return
	}
	r.tracker.Dismiss()

	if s, err := r.settings.Get(); err == nil && !s.Notifications.AchievementCelebrations {
		return
	}
	for _, a := range unlocked {
		r.writePlain("🎉 Achievement unlocked: %s %s (%s)\n", a.Icon, a.Title, a.Rarity)
	}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := formatter.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}

// resolveID matches a full id or a unique prefix of one, as printed by the list commands.
func resolveID[T models.Identifiable](items []T, ref, kind string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("%w: %s id", shared.ErrMissingArgument, kind)
	}

	var match string
	for _, it := range items {
		id := it.GetID()
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("%w: %q matches more than one %s", shared.ErrInvalidArgument, ref, kind)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s %s", shared.ErrNotFound, kind, ref)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

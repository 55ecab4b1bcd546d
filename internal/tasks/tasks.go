package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Record kinds stored in the push log.
const (
	KindHabit = "habit"
	KindNote  = "note"
)

// Remote is the part of the remote store the push task writes to.
type Remote interface {
	FetchHabits(ctx context.Context, userID string) ([]models.Habit, error)
	FetchNotes(ctx context.Context, userID string) ([]models.Note, error)
	InsertHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error)
	InsertNote(ctx context.Context, userID string, n models.Note) (models.Note, error)
}

// PushLog remembers which records were already uploaded for a user.
type PushLog interface {
	MarkPushed(userID, kind, id string) error
	Pushed(userID, kind string) (map[string]bool, error)
}

// PushOpts configures a [PushEngine].
type PushOpts struct {
	Workers   int     // Concurrent uploads (default: 4, max: 10)
	RateLimit float64 // Inserts per second (default: 10)
}

// PushError describes one record that failed to upload.
type PushError struct {
	Kind string
	ID   string
	Err  error
}

func (e PushError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.ID, e.Err)
}

// PushResult counts the outcome of a push run.
type PushResult struct {
	HabitsPushed int
	NotesPushed  int
	Skipped      int // Already present remotely or in the push log
	Failed       int
	Errors       []PushError
}

// Total is the number of records considered.
func (r *PushResult) Total() int {
	return r.HabitsPushed + r.NotesPushed + r.Skipped + r.Failed
}

// PushEngine uploads local-only records to the remote store, typically after the first sign-in.
type PushEngine struct {
	remote  Remote
	log     PushLog
	logger  *log.Logger
	limiter *rate.Limiter
	workers int
}

// NewPushEngine creates a push engine. log may be nil, in which case only remote ids are used to skip records.
func NewPushEngine(remote Remote, log PushLog, logger *log.Logger, opts PushOpts) *PushEngine {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PushEngine{
		remote:  remote,
		log:     log,
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		workers: opts.Workers,
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *PushEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Push uploads every habit and note not yet known remotely for userID.
//
// Individual failures are counted in the result and never abort the run. An error is returned only
// when the run cannot start or ctx is cancelled, and the partial result is still returned with it.
func (e *PushEngine) Push(ctx context.Context, prog chan<- ProgressUpdate, userID string, habits []models.Habit, notes []models.Note) (*PushResult, error) {
	if e.remote == nil {
		return nil, shared.ErrRemoteUnavailable
	}
	if userID == "" {
		return nil, shared.ErrNotAuthenticated
	}

	e.sendProgress(prog, preparingUpdate(len(habits)+len(notes)))

	knownHabits, err := e.known(ctx, userID, KindHabit, func(ctx context.Context) ([]string, error) {
		rows, err := e.remote.FetchHabits(ctx, userID)
		return ids(rows), err
	})
	if err != nil {
		return nil, err
	}
	knownNotes, err := e.known(ctx, userID, KindNote, func(ctx context.Context) ([]string, error) {
		rows, err := e.remote.FetchNotes(ctx, userID)
		return ids(rows), err
	})
	if err != nil {
		return nil, err
	}

	result := &PushResult{}
	var mu sync.Mutex

	habitJobs := make([]job, 0, len(habits))
	for _, h := range habits {
		if knownHabits[h.ID] {
			result.Skipped++
			continue
		}
		habitJobs = append(habitJobs, job{kind: KindHabit, id: h.ID, label: h.Name, run: func(ctx context.Context) error {
			_, err := e.remote.InsertHabit(ctx, userID, h)
			return err
		}})
	}
	if err := e.run(ctx, prog, Habits, userID, habitJobs, result, &mu, &result.HabitsPushed); err != nil {
		return result, err
	}

	noteJobs := make([]job, 0, len(notes))
	for _, n := range notes {
		if knownNotes[n.ID] {
			result.Skipped++
			continue
		}
		label := n.Title
		if label == "" {
			label = "untitled note"
		}
		noteJobs = append(noteJobs, job{kind: KindNote, id: n.ID, label: label, run: func(ctx context.Context) error {
			_, err := e.remote.InsertNote(ctx, userID, n)
			return err
		}})
	}
	if err := e.run(ctx, prog, Notes, userID, noteJobs, result, &mu, &result.NotesPushed); err != nil {
		return result, err
	}

	e.sendProgress(prog, completeUpdate(result))
	e.logger.Info("push finished", "habits", result.HabitsPushed, "notes", result.NotesPushed,
		"skipped", result.Skipped, "failed", result.Failed)
	return result, nil
}

type job struct {
	kind  string
	id    string
	label string
	run   func(ctx context.Context) error
}

// run executes jobs on a bounded worker group, waiting on the shared limiter before each insert.
func (e *PushEngine) run(ctx context.Context, prog chan<- ProgressUpdate, phase Phase, userID string, jobs []job, result *PushResult, mu *sync.Mutex, pushed *int) error {
	var g errgroup.Group
	g.SetLimit(e.workers)

	done := 0
	for _, j := range jobs {
		if err := e.limiter.Wait(ctx); err != nil {
			g.Wait()
			return fmt.Errorf("push interrupted: %w", err)
		}

		g.Go(func() error {
			err := j.run(ctx)
			if err == nil && e.log != nil {
				if logErr := e.log.MarkPushed(userID, j.kind, j.id); logErr != nil {
					e.logger.Warn("failed to record push", "kind", j.kind, "id", j.id, "err", logErr)
				}
			}

			mu.Lock()
			defer mu.Unlock()
			done++
			if err != nil {
				e.logger.Warn("push failed", "kind", j.kind, "id", j.id, "err", err)
				result.Failed++
				result.Errors = append(result.Errors, PushError{Kind: j.kind, ID: j.id, Err: err})
				e.sendProgress(prog, recordFailedUpdate(phase, done, len(jobs), j.label, err))
				return nil
			}
			*pushed++
			e.sendProgress(prog, recordPushedUpdate(phase, done, len(jobs), j.label))
			return nil
		})
	}
	return g.Wait()
}

// known merges remote ids with the push log for kind.
func (e *PushEngine) known(ctx context.Context, userID, kind string, fetch func(context.Context) ([]string, error)) (map[string]bool, error) {
	out := map[string]bool{}
	if e.log != nil {
		pushed, err := e.log.Pushed(userID, kind)
		if err != nil {
			e.logger.Warn("failed to read push log", "kind", kind, "err", err)
		}
		for id := range pushed {
			out[id] = true
		}
	}

	remoteIDs, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list remote %ss: %v", shared.ErrServiceUnavailable, kind, err)
	}
	for _, id := range remoteIDs {
		out[id] = true
	}
	return out, nil
}

func ids[T models.Identifiable](rows []T) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.GetID()
	}
	return out
}

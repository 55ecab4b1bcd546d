package store

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

// HabitRemote is the remote habits table.
type HabitRemote interface {
	FetchHabits(ctx context.Context, userID string) ([]models.Habit, error)
	InsertHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error)
	UpdateHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error)
	DeleteHabit(ctx context.Context, userID, id string) error
}

// Habits is the habit collection. Newest habits come first.
type Habits struct {
	c      *collection[models.Habit]
	remote HabitRemote
}

// NewHabits builds the collection. A nil remote means local-only mode.
func NewHabits(local Snapshot[models.Habit], remote HabitRemote, opts Options) *Habits {
	return &Habits{
		c:      newCollection(local, remote != nil, opts, "habits", models.Habit.Clone),
		remote: remote,
	}
}

// Load fills the collection from the remote store or, failing that, the local snapshot.
func (h *Habits) Load(ctx context.Context) error {
	return h.c.load(ctx, func(ctx context.Context, uid string) ([]models.Habit, error) {
		return h.remote.FetchHabits(ctx, uid)
	})
}

// Loading reports whether a [Habits.Load] is in progress.
func (h *Habits) Loading() bool { return h.c.isLoading() }

// List returns a copy of the habits.
func (h *Habits) List() []models.Habit { return h.c.list() }

// Get returns a copy of the habit with id.
func (h *Habits) Get(id string) (models.Habit, bool) { return h.c.get(id) }

// OnChange registers fn to run after every change to the collection.
func (h *Habits) OnChange(fn func()) { h.c.onChange(fn) }

// Wait blocks until in-flight remote writes have finished.
func (h *Habits) Wait() { h.c.inflight.Wait() }

// Add creates a habit with a fresh ID, zero streak and no completions.
func (h *Habits) Add(in models.HabitInput) (models.Habit, error) {
	in = in.Normalize()
	if err := models.Validate(in); err != nil {
		return models.Habit{}, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	uid := h.c.userID()
	habit := models.Habit{
		ID:          shared.GenerateID(),
		UserID:      uid,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Color:       in.Color,
		Icon:        in.Icon,
		Frequency:   in.Frequency,
		Streak:      0,
		Completions: []models.Completion{},
		CreatedAt:   h.c.opts.Clock.Now(),
	}

	err := h.c.mutate(func(items []models.Habit) ([]models.Habit, []string, error) {
		return append([]models.Habit{habit}, items...), []string{habit.ID}, nil
	})

	if uid != "" {
		h.c.mirror("insert", habit.ID, func(ctx context.Context) (*models.Habit, error) {
			out, err := h.remote.InsertHabit(ctx, uid, habit)
			return &out, err
		})
	}
	return habit.Clone(), err
}

// Update applies patch to the habit with id.
func (h *Habits) Update(id string, patch models.HabitPatch) (models.Habit, error) {
	return h.modify(id, "update", func(cur models.Habit) (models.Habit, error) {
		next := patch.Apply(cur)
		if err := next.Validate(); err != nil {
			return cur, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		return next, nil
	})
}

// Toggle flips completion of the habit on day (YYYY-MM-DD) and recomputes its streak.
func (h *Habits) Toggle(id, day string) (models.Habit, error) {
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		return models.Habit{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", shared.ErrInvalidArgument, day)
	}

	return h.modify(id, "toggle", func(cur models.Habit) (models.Habit, error) {
		return cur.ToggleCompletion(day, h.c.opts.Clock.Now()), nil
	})
}

// ToggleToday is [Habits.Toggle] for the current day.
func (h *Habits) ToggleToday(id string) (models.Habit, error) {
	return h.Toggle(id, shared.Day(h.c.opts.Clock.Now()))
}

// RefreshStreaks recomputes every streak against today, for collections loaded on a later day.
func (h *Habits) RefreshStreaks() error {
	today := h.c.opts.Clock.Now()
	return h.c.mutate(func(items []models.Habit) ([]models.Habit, []string, error) {
		var touched []string
		for i := range items {
			if s := models.ComputeStreak(items[i].Completions, today); s != items[i].Streak {
				items[i] = items[i].Clone()
				items[i].Streak = s
				touched = append(touched, items[i].ID)
			}
		}
		return items, touched, nil
	})
}

func (h *Habits) modify(id, op string, fn func(models.Habit) (models.Habit, error)) (models.Habit, error) {
	var updated models.Habit
	err := h.c.mutate(func(items []models.Habit) ([]models.Habit, []string, error) {
		i := models.IndexOf(items, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: habit %s", shared.ErrNotFound, id)
		}
		next, err := fn(items[i])
		if err != nil {
			return nil, nil, err
		}
		items[i] = next
		updated = next
		return items, []string{id}, nil
	})
	if updated.ID == "" {
		return models.Habit{}, err
	}

	if uid := h.c.userID(); uid != "" {
		snapshot := updated.Clone()
		h.c.mirror(op, id, func(ctx context.Context) (*models.Habit, error) {
			out, err := h.remote.UpdateHabit(ctx, uid, snapshot)
			return &out, err
		})
	}
	return updated.Clone(), err
}

// Delete removes the habit with id.
func (h *Habits) Delete(id string) error {
	err := h.c.mutate(func(items []models.Habit) ([]models.Habit, []string, error) {
		i := models.IndexOf(items, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("%w: habit %s", shared.ErrNotFound, id)
		}
		return slices.Delete(items, i, i+1), []string{id}, nil
	})
	if err != nil && !isLocalSaveErr(err) {
		return err
	}

	if uid := h.c.userID(); uid != "" {
		h.c.mirror("delete", id, func(ctx context.Context) (*models.Habit, error) {
			return nil, h.remote.DeleteHabit(ctx, uid, id)
		})
	}
	return err
}

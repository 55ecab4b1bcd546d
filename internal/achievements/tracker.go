package achievements

import (
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

// UnlockStore persists the unlocked set as a whole.
type UnlockStore interface {
	LoadUnlocked() ([]models.UnlockedAchievement, error)
	SaveUnlocked([]models.UnlockedAchievement) error
}

// Tracker re-evaluates achievements on every collection change and records new unlocks.
type Tracker struct {
	mu       sync.Mutex
	store    UnlockStore
	clock    shared.Clock
	logger   *log.Logger
	unlocked []models.UnlockedAchievement
	pending  []models.Achievement
}

// NewTracker loads the persisted unlocked set. Duplicate IDs in storage are collapsed.
func NewTracker(store UnlockStore, clock shared.Clock, logger *log.Logger) (*Tracker, error) {
	if clock == nil {
		clock = shared.RealClock{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	stored, err := store.LoadUnlocked()
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}

	seen := make(map[string]bool, len(stored))
	unlocked := make([]models.UnlockedAchievement, 0, len(stored))
	for _, u := range stored {
		if seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		unlocked = append(unlocked, u)
	}

	return &Tracker{
		store:    store,
		clock:    clock,
		logger:   shared.WithLogger(logger, "component", "achievements"),
		unlocked: unlocked,
	}, nil
}

// Progress evaluates the catalog without recording anything.
func (t *Tracker) Progress(habits []models.Habit, notes []models.Note) map[string]Progress {
	return Evaluate(habits, notes, t.clock.Now())
}

// Check evaluates the catalog, appends newly met achievements to the unlocked set and queues them for celebration.
//
// The new unlocks are returned even when persisting fails; they stay in memory so a later Check does not
// celebrate them twice.
func (t *Tracker) Check(habits []models.Habit, notes []models.Note) ([]models.Achievement, error) {
	now := t.clock.Now()
	progress := Evaluate(habits, notes, now)

	t.mu.Lock()
	defer t.mu.Unlock()

	fresh := NewlyUnlocked(progress, t.unlocked)
	if len(fresh) == 0 {
		return nil, nil
	}

	for _, a := range fresh {
		t.unlocked = append(t.unlocked, models.UnlockedAchievement{ID: a.ID, UnlockedAt: now})
		t.logger.Info("achievement unlocked", "id", a.ID, "title", a.Title)
	}
	t.pending = append(t.pending, fresh...)

	if err := t.store.SaveUnlocked(slices.Clone(t.unlocked)); err != nil {
		t.logger.Error("failed to persist unlocked achievements", "err", err)
		return fresh, fmt.Errorf("failed to save unlocked achievements: %w", err)
	}
	return fresh, nil
}

// Celebration returns the achievements unlocked since the last [Tracker.Dismiss].
func (t *Tracker) Celebration() []models.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.pending)
}

// Dismiss clears the pending celebration.
func (t *Tracker) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = nil
}

// Unlocked returns the unlocked set in unlock order.
func (t *Tracker) Unlocked() []models.UnlockedAchievement {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.unlocked)
}

// IsUnlocked reports membership of id in the unlocked set.
func (t *Tracker) IsUnlocked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return models.IndexOf(t.unlocked, id) >= 0
}

// UnlockedDefinitions returns the catalog entries that have been unlocked, in catalog order.
func (t *Tracker) UnlockedDefinitions() []models.Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []models.Achievement
	for _, a := range catalog {
		if models.IndexOf(t.unlocked, a.ID) >= 0 {
			out = append(out, a)
		}
	}
	return out
}

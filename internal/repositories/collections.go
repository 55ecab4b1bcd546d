package repositories

import (
	"slices"

	"github.com/desertthunder/mindflow/internal/models"
)

// Collection is a typed, wholesale-overwritten snapshot of a slice under one key.
type Collection[T any] struct {
	snaps *SnapshotRepository
	key   string
}

// NewCollection binds a [Collection] to key.
func NewCollection[T any](snaps *SnapshotRepository, key string) *Collection[T] {
	return &Collection[T]{snaps: snaps, key: key}
}

// Habits is the local habits snapshot.
func Habits(snaps *SnapshotRepository) *Collection[models.Habit] {
	return NewCollection[models.Habit](snaps, KeyHabits)
}

// Notes is the local notes snapshot.
func Notes(snaps *SnapshotRepository) *Collection[models.Note] {
	return NewCollection[models.Note](snaps, KeyNotes)
}

// UnlockedRepository is the local unlocked-achievement set. It backs an achievements.Tracker.
type UnlockedRepository struct {
	*Collection[models.UnlockedAchievement]
}

// Achievements is the local unlocked-achievement set.
func Achievements(snaps *SnapshotRepository) *UnlockedRepository {
	return &UnlockedRepository{NewCollection[models.UnlockedAchievement](snaps, KeyAchievements)}
}

func (r *UnlockedRepository) LoadUnlocked() ([]models.UnlockedAchievement, error) { return r.Load() }

func (r *UnlockedRepository) SaveUnlocked(items []models.UnlockedAchievement) error {
	return r.Save(items)
}

// Load returns the stored slice, or an empty one when nothing has been saved.
func (c *Collection[T]) Load() ([]T, error) {
	var items []T
	if _, err := c.snaps.Get(c.key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save overwrites the snapshot with items.
func (c *Collection[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.snaps.Put(c.key, slices.Clone(items))
}

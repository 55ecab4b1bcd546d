package store

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	mocks "github.com/desertthunder/mindflow/internal/testing"
)

var now = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

func testOptions(userID string) Options {
	return Options{
		Session:      mocks.StaticSession(userID),
		Clock:        shared.FixedClock{T: now},
		Logger:       shared.NewLogger(io.Discard),
		LoadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

func TestFetchWithTimeout(t *testing.T) {
	t.Run("returns fetched items", func(t *testing.T) {
		items, err := fetchWithTimeout(context.Background(), time.Second, func(context.Context) ([]int, error) {
			return []int{1, 2}, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(items) != 2 {
			t.Errorf("expected 2 items, got %v", items)
		}
	})

	t.Run("times out without waiting for the fetch", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		start := time.Now()
		_, err := fetchWithTimeout(context.Background(), 20*time.Millisecond, func(context.Context) ([]int, error) {
			<-release
			return nil, nil
		})
		if !errors.Is(err, shared.ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("fetch was awaited for %v", elapsed)
		}
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		_, err := fetchWithTimeout(context.Background(), time.Second, func(context.Context) ([]int, error) {
			return nil, mocks.ErrRemoteDown
		})
		if !errors.Is(err, mocks.ErrRemoteDown) {
			t.Errorf("expected remote error, got %v", err)
		}
	})
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	if o.LoadTimeout != DefaultLoadTimeout || o.WriteTimeout != DefaultWriteTimeout {
		t.Errorf("unexpected timeouts %v/%v", o.LoadTimeout, o.WriteTimeout)
	}
	if o.Clock == nil || o.Logger == nil {
		t.Error("expected clock and logger defaults")
	}
}

func TestOnChange(t *testing.T) {
	snap := &mocks.MemorySnapshot[models.Habit]{}
	habits := NewHabits(snap, nil, testOptions(""))

	calls := 0
	habits.OnChange(func() { calls++ })

	h, err := habits.Add(models.HabitInput{Name: "Meditate"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := habits.ToggleToday(h.ID); err != nil {
		t.Fatalf("ToggleToday failed: %v", err)
	}
	if err := habits.Delete(h.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 change notifications, got %d", calls)
	}

	if _, err := habits.ToggleToday("missing"); err == nil {
		t.Fatal("expected error for missing habit")
	}
	if calls != 3 {
		t.Errorf("failed mutation should not notify, got %d calls", calls)
	}
}

func TestWatch(t *testing.T) {
	habits := NewHabits(&mocks.MemorySnapshot[models.Habit]{}, nil, testOptions(""))
	notes := NewNotes(&mocks.MemorySnapshot[models.Note]{}, nil, testOptions(""))

	var gotHabits, gotNotes int
	Watch(habits, notes, func(hs []models.Habit, ns []models.Note) {
		gotHabits, gotNotes = len(hs), len(ns)
	})

	if _, err := habits.Add(models.HabitInput{Name: "Walk"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if gotHabits != 1 || gotNotes != 0 {
		t.Errorf("expected 1 habit 0 notes, got %d %d", gotHabits, gotNotes)
	}
	if _, err := notes.Add(models.NoteInput{Title: "Hello"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if gotHabits != 1 || gotNotes != 1 {
		t.Errorf("expected 1 habit 1 note, got %d %d", gotHabits, gotNotes)
	}
}

// gatedSnapshot blocks the save numbered blockOn until release is closed.
type gatedSnapshot struct {
	mocks.MemorySnapshot[models.Habit]
	mu      sync.Mutex
	saves   int
	blockOn int
	entered chan struct{}
	release chan struct{}
}

func (g *gatedSnapshot) Save(items []models.Habit) error {
	g.mu.Lock()
	g.saves++
	n := g.saves
	g.mu.Unlock()

	if n == g.blockOn {
		close(g.entered)
		<-g.release
	}
	return g.MemorySnapshot.Save(items)
}

func TestLocalSaveOrdering(t *testing.T) {
	t.Run("reconcile does not overwrite a later delete", func(t *testing.T) {
		remote := mocks.NewMockRemote()
		remote.Habits["c1"] = models.Habit{ID: "c1", UserID: "user-1", Name: "Read"}
		snap := &gatedSnapshot{blockOn: 2, entered: make(chan struct{}), release: make(chan struct{})}
		habits := NewHabits(snap, remote, testOptions("user-1"))

		if err := habits.Load(context.Background()); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		added, err := habits.Add(models.HabitInput{Name: "Walk"})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}

		select {
		case <-snap.entered:
		case <-time.After(time.Second):
			t.Fatal("reconcile save never started")
		}

		deleted := make(chan error, 1)
		go func() { deleted <- habits.Delete("c1") }()

		deadline := time.Now().Add(time.Second)
		for len(habits.List()) != 1 {
			if time.Now().After(deadline) {
				t.Fatal("delete was not applied in memory")
			}
			time.Sleep(time.Millisecond)
		}
		close(snap.release)

		if err := <-deleted; err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		habits.Wait()

		var ids []string
		for _, h := range snap.Snapshot() {
			ids = append(ids, h.ID)
		}
		if !slices.Equal(ids, []string{added.ID}) {
			t.Errorf("expected local snapshot to match memory [%s], got %v", added.ID, ids)
		}
	})
}

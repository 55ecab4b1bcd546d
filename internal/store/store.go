// Package store presents habits and notes as always-available in-memory collections.
//
// Writes follow a local-first policy. A mutation is applied to memory and to the local snapshot
// synchronously. It is then mirrored to the remote store in the background when a remote is configured
// and a user is signed in. Remote failures are logged and otherwise ignored. The local copy stays
// authoritative, and nothing is retried or rolled back.
//
// On success, the remote's canonical record replaces the in-memory entry, unless the entry changed
// locally while the write was in flight.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

const (
	DefaultLoadTimeout  = 5 * time.Second
	DefaultWriteTimeout = 10 * time.Second
)

// ErrLocalSave wraps a failed local snapshot write. The in-memory change has still been applied.
var ErrLocalSave = errors.New("local snapshot write failed")

// SessionSource reports the signed-in user. An empty ID means no session.
type SessionSource interface {
	UserID() string
}

// Snapshot is the local persistent copy of a collection.
type Snapshot[T any] interface {
	Load() ([]T, error)
	Save([]T) error
}

// Options configures a collection.
type Options struct {
	Session      SessionSource
	Clock        shared.Clock
	Logger       *log.Logger
	LoadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Clock == nil {
		o.Clock = shared.RealClock{}
	}
	if o.Logger == nil {
		o.Logger = shared.NewLogger(nil)
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = DefaultLoadTimeout
	}
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	return o
}

// collection is the shared dual-write machinery behind [Habits] and [Notes].
type collection[T models.Identifiable] struct {
	mu        sync.Mutex
	saveMu    sync.Mutex // orders local saves; acquired before mu
	items     []T
	versions  map[string]uint64
	loading   bool
	local     Snapshot[T]
	remoteOn  bool
	opts      Options
	logger    *log.Logger
	inflight  sync.WaitGroup
	listeners []func()
	clone     func(T) T
}

func newCollection[T models.Identifiable](local Snapshot[T], remoteOn bool, opts Options, name string, clone func(T) T) *collection[T] {
	opts = opts.withDefaults()
	return &collection[T]{
		items:    []T{},
		versions: make(map[string]uint64),
		local:    local,
		remoteOn: remoteOn,
		opts:     opts,
		logger:   shared.WithLogger(opts.Logger, "component", name),
		clone:    clone,
	}
}

// userID returns the owner for remote writes, or "" when remote paths are off.
func (c *collection[T]) userID() string {
	if !c.remoteOn || c.opts.Session == nil {
		return ""
	}
	return c.opts.Session.UserID()
}

func (c *collection[T]) list() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, len(c.items))
	for i, it := range c.items {
		out[i] = c.clone(it)
	}
	return out
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := models.IndexOf(c.items, id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return c.clone(c.items[i]), true
}

// mutate runs fn on the current items under the lock, then persists the result locally.
// fn returns the new slice and the ids whose in-memory version should be bumped.
func (c *collection[T]) mutate(fn func(items []T) ([]T, []string, error)) error {
	c.mu.Lock()
	next, touched, err := fn(slices.Clone(c.items))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.items = next
	for _, id := range touched {
		c.versions[id]++
	}
	c.mu.Unlock()

	saveErr := c.persist()
	if saveErr != nil {
		c.logger.Error("failed to write local snapshot", "err", saveErr)
	}
	c.notify()

	if saveErr != nil {
		return fmt.Errorf("%w: %v", ErrLocalSave, saveErr)
	}
	return nil
}

// persist writes the current items to the local snapshot.
// The items are read after saveMu is held, so the last save always carries the latest state.
func (c *collection[T]) persist() error {
	c.saveMu.Lock()
	defer c.saveMu.Unlock()

	c.mu.Lock()
	snapshot := slices.Clone(c.items)
	c.mu.Unlock()

	return c.local.Save(snapshot)
}

func (c *collection[T]) version(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[id]
}

// mirror runs write in the background under the write timeout.
// A non-nil canonical record from write is reconciled into memory if the entry is unchanged since issue.
func (c *collection[T]) mirror(op, id string, write func(ctx context.Context) (*T, error)) {
	issued := c.version(id)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.opts.WriteTimeout)
		defer cancel()

		canonical, err := write(ctx)
		if err != nil {
			c.logger.Warn("remote write failed; keeping local copy", "op", op, "id", id, "err", err)
			return
		}
		c.logger.Debug("remote write succeeded", "op", op, "id", id)

		if canonical != nil {
			c.reconcile(*canonical, issued)
		}
	}()
}

func (c *collection[T]) reconcile(canonical T, issued uint64) {
	id := canonical.GetID()

	c.mu.Lock()
	i := models.IndexOf(c.items, id)
	if i < 0 || c.versions[id] != issued {
		c.mu.Unlock()
		return
	}
	c.items[i] = canonical
	c.mu.Unlock()

	if err := c.persist(); err != nil {
		c.logger.Error("failed to write reconciled snapshot", "id", id, "err", err)
	}
	c.notify()
}

// load replaces the in-memory items from the remote store when possible, else from the local snapshot.
func (c *collection[T]) load(ctx context.Context, fetch func(ctx context.Context, userID string) ([]T, error)) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if uid := c.userID(); uid != "" {
		items, err := fetchWithTimeout(ctx, c.opts.LoadTimeout, func(ctx context.Context) ([]T, error) {
			return fetch(ctx, uid)
		})
		if err == nil {
			c.replace(items)
			return nil
		}
		c.logger.Warn("remote load failed; falling back to local store", "err", err)
	}

	items, err := c.local.Load()
	if err != nil {
		return fmt.Errorf("failed to load local snapshot: %w", err)
	}
	c.replace(items)
	return nil
}

func (c *collection[T]) replace(items []T) {
	if items == nil {
		items = []T{}
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	c.notify()
}

func (c *collection[T]) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
}

func (c *collection[T]) isLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *collection[T]) onChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *collection[T]) notify() {
	c.mu.Lock()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// fetchWithTimeout races fetch against the timeout. On timeout the fetch is abandoned, not awaited.
func fetchWithTimeout[T any](ctx context.Context, timeout time.Duration, fetch func(context.Context) ([]T, error)) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		items []T
		err   error
	}
	done := make(chan result, 1)
	go func() {
		items, err := fetch(ctx)
		done <- result{items, err}
	}()

	select {
	case r := <-done:
		return r.items, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", shared.ErrTimeout, ctx.Err())
	}
}

func isLocalSaveErr(err error) bool {
	return errors.Is(err, ErrLocalSave)
}

// Watch registers fn on both collections. fn receives fresh copies of both after every change to either.
func Watch(habits *Habits, notes *Notes, fn func([]models.Habit, []models.Note)) {
	cb := func() { fn(habits.List(), notes.List()) }
	habits.OnChange(cb)
	notes.OnChange(cb)
}

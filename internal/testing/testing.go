// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

var (
	// ErrRemoteDown is returned by [MockRemote] when Fail is set.
	ErrRemoteDown = errors.New("remote unavailable")
	// ErrNoUser wraps [shared.ErrNotFound] for unknown accounts.
	ErrNoUser = fmt.Errorf("%w: user", shared.ErrNotFound)
	// ErrUserTaken wraps [shared.ErrUserExists].
	ErrUserTaken = fmt.Errorf("%w: email taken", shared.ErrUserExists)
)

// MockRemote is an in-memory remote store implementing the habit, note and profile tables.
//
// Set Fail to make every call error, or Delay to make calls block (honoring context cancellation).
type MockRemote struct {
	mu       sync.Mutex
	Fail     bool
	Delay    time.Duration
	Habits   map[string]models.Habit
	Notes    map[string]models.Note
	Profiles map[string]models.UserProfile
	Users    map[string]MockUser
	Calls    []string
	// Normalize, when set, is applied to habit names on write to mimic server-side normalization.
	Normalize func(string) string
}

func NewMockRemote() *MockRemote {
	return &MockRemote{
		Habits:   map[string]models.Habit{},
		Notes:    map[string]models.Note{},
		Profiles: map[string]models.UserProfile{},
		Users:    map[string]MockUser{},
	}
}

// MockUser is an account row held by [MockRemote].
type MockUser struct {
	User models.User
	Hash string
}

func (m *MockRemote) enter(ctx context.Context, call string) error {
	m.mu.Lock()
	m.Calls = append(m.Calls, call)
	fail, delay := m.Fail, m.Delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if fail {
		return ErrRemoteDown
	}
	return nil
}

// CallCount returns how many calls named call were made.
func (m *MockRemote) CallCount(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// SetFail toggles failure injection.
func (m *MockRemote) SetFail(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fail = v
}

func (m *MockRemote) FetchHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	if err := m.enter(ctx, "FetchHabits"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Habit
	for _, h := range m.Habits {
		if h.UserID == userID {
			out = append(out, h.Clone())
		}
	}
	slices.SortFunc(out, func(a, b models.Habit) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (m *MockRemote) InsertHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error) {
	if err := m.enter(ctx, "InsertHabit"); err != nil {
		return models.Habit{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	h = h.Clone()
	h.UserID = userID
	if m.Normalize != nil {
		h.Name = m.Normalize(h.Name)
	}
	m.Habits[h.ID] = h
	return h.Clone(), nil
}

func (m *MockRemote) UpdateHabit(ctx context.Context, userID string, h models.Habit) (models.Habit, error) {
	if err := m.enter(ctx, "UpdateHabit"); err != nil {
		return models.Habit{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if cur, ok := m.Habits[h.ID]; !ok || cur.UserID != userID {
		return models.Habit{}, errors.New("habit not found")
	}
	h = h.Clone()
	h.UserID = userID
	m.Habits[h.ID] = h
	return h.Clone(), nil
}

func (m *MockRemote) DeleteHabit(ctx context.Context, userID, id string) error {
	if err := m.enter(ctx, "DeleteHabit"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Habits, id)
	return nil
}

func (m *MockRemote) FetchNotes(ctx context.Context, userID string) ([]models.Note, error) {
	if err := m.enter(ctx, "FetchNotes"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Note
	for _, n := range m.Notes {
		if n.UserID == userID {
			out = append(out, n.Clone())
		}
	}
	slices.SortFunc(out, func(a, b models.Note) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (m *MockRemote) InsertNote(ctx context.Context, userID string, n models.Note) (models.Note, error) {
	if err := m.enter(ctx, "InsertNote"); err != nil {
		return models.Note{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	n = n.Clone()
	n.UserID = userID
	m.Notes[n.ID] = n
	return n.Clone(), nil
}

func (m *MockRemote) UpdateNote(ctx context.Context, userID, id string, patch models.NotePatch, updatedAt time.Time) (models.Note, error) {
	if err := m.enter(ctx, "UpdateNote"); err != nil {
		return models.Note{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.Notes[id]
	if !ok || cur.UserID != userID {
		return models.Note{}, errors.New("note not found")
	}
	next := patch.Apply(cur, updatedAt)
	m.Notes[id] = next
	return next.Clone(), nil
}

func (m *MockRemote) DeleteNote(ctx context.Context, userID, id string) error {
	if err := m.enter(ctx, "DeleteNote"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Notes, id)
	return nil
}

func (m *MockRemote) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	if err := m.enter(ctx, "GetProfile"); err != nil {
		return models.UserProfile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.Profiles[userID]
	if !ok {
		return models.UserProfile{ID: userID}, nil
	}
	return p, nil
}

func (m *MockRemote) LinkSpotify(ctx context.Context, userID, access, refresh string, at time.Time) error {
	if err := m.enter(ctx, "LinkSpotify"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.Profiles[userID]
	p.ID = userID
	p.SpotifyAccessToken = access
	p.SpotifyRefreshToken = refresh
	p.SpotifyConnectedAt = &at
	m.Profiles[userID] = p
	return nil
}

func (m *MockRemote) UnlinkSpotify(ctx context.Context, userID string) error {
	if err := m.enter(ctx, "UnlinkSpotify"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p := m.Profiles[userID]
	p.ID = userID
	p.SpotifyAccessToken, p.SpotifyRefreshToken, p.SpotifyConnectedAt = "", "", nil
	m.Profiles[userID] = p
	return nil
}

func (m *MockRemote) UpdateFullName(ctx context.Context, userID, name string) error {
	if err := m.enter(ctx, "UpdateFullName"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.Users[userID]
	if !ok {
		return errors.New("user not found")
	}
	u.User.FullName = name
	m.Users[userID] = u

	p := m.Profiles[userID]
	p.ID = userID
	p.FullName = name
	m.Profiles[userID] = p
	return nil
}

func (m *MockRemote) CreateUser(ctx context.Context, email, hash, fullName string) (models.User, error) {
	if err := m.enter(ctx, "CreateUser"); err != nil {
		return models.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.User.Email == email {
			return models.User{}, ErrUserTaken
		}
	}
	u := models.User{
		ID:       fmt.Sprintf("user-%d", len(m.Users)+1),
		Email:    email,
		FullName: fullName,
	}
	m.Users[u.ID] = MockUser{User: u, Hash: hash}
	m.Profiles[u.ID] = models.UserProfile{ID: u.ID, FullName: fullName}
	return u, nil
}

func (m *MockRemote) UserByEmail(ctx context.Context, email string) (models.User, string, error) {
	if err := m.enter(ctx, "UserByEmail"); err != nil {
		return models.User{}, "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.Users {
		if u.User.Email == email {
			return u.User, u.Hash, nil
		}
	}
	return models.User{}, "", ErrNoUser
}

func (m *MockRemote) UserByID(ctx context.Context, id string) (models.User, error) {
	if err := m.enter(ctx, "UserByID"); err != nil {
		return models.User{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.Users[id]; ok {
		return u.User, nil
	}
	return models.User{}, ErrNoUser
}

// StaticSession is a fixed session source; an empty ID means signed out.
type StaticSession string

func (s StaticSession) UserID() string { return string(s) }

// MemorySnapshot is an in-memory local store. SaveErr makes Save fail.
type MemorySnapshot[T any] struct {
	mu      sync.Mutex
	Items   []T
	Saves   int
	SaveErr error
}

func (m *MemorySnapshot[T]) Load() ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Items), nil
}

func (m *MemorySnapshot[T]) Save(items []T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Items = slices.Clone(items)
	return nil
}

// Snapshot returns a copy of the stored items.
func (m *MemorySnapshot[T]) Snapshot() []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.Items)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

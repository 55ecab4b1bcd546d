// Package auth manages the signed-in session against the remote users table.
//
// Sessions are HS256 access tokens kept in the OS keyring, so a sign-in survives restarts. When no
// remote store is configured every operation fails with [shared.ErrRemoteUnavailable] and the app
// runs in local-only mode.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// DefaultTimeout bounds each call to the remote users table.
const DefaultTimeout = 5 * time.Second

type EventType string

const (
	SignedIn    EventType = "signed_in"
	SignedOut   EventType = "signed_out"
	UserUpdated EventType = "user_updated"
)

// Event reports a session change. Session is nil for [SignedOut].
type Event struct {
	Type    EventType
	Session *models.Session
}

// UserUpdate holds optional account edits.
type UserUpdate struct {
	FullName *string
}

// Provider is the session API used by the CLI and dashboard.
type Provider interface {
	Session(ctx context.Context) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignUp(ctx context.Context, email, password, fullName string) (*models.Session, error)
	SignOut(ctx context.Context) error
	UpdateUser(ctx context.Context, update UserUpdate) (*models.Session, error)
	Subscribe() (<-chan Event, func())
}

// Users is the remote accounts table.
type Users interface {
	CreateUser(ctx context.Context, email, passwordHash, fullName string) (models.User, error)
	UserByEmail(ctx context.Context, email string) (models.User, string, error)
	UserByID(ctx context.Context, id string) (models.User, error)
	UpdateFullName(ctx context.Context, userID, name string) error
}

// Options configures a [Service].
type Options struct {
	Secret  string
	TTL     time.Duration
	Timeout time.Duration
	Clock   shared.Clock
	Logger  *log.Logger
}

// Service implements [Provider]. It also reports the cached user id for collection writes.
type Service struct {
	users   Users
	tokens  TokenStore
	secret  []byte
	ttl     time.Duration
	timeout time.Duration
	clock   shared.Clock
	logger  *log.Logger

	mu      sync.Mutex
	current *models.Session
	subs    map[int]chan Event
	nextSub int
}

var _ Provider = (*Service)(nil)

// NewService builds the session service. A nil users table means no remote store is configured.
func NewService(users Users, tokens TokenStore, opts Options) *Service {
	if opts.TTL <= 0 {
		opts.TTL = 7 * 24 * time.Hour
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Clock == nil {
		opts.Clock = shared.RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	logger := shared.WithLogger(opts.Logger, "component", "auth")
	if users != nil && opts.Secret == shared.PlaceholderJWTSecret {
		logger.Warn("sessions are signed with the example jwt_secret; set auth.jwt_secret or " + shared.EnvJWTSecret)
	}
	return &Service{
		users:   users,
		tokens:  tokens,
		secret:  []byte(opts.Secret),
		ttl:     opts.TTL,
		timeout: opts.Timeout,
		clock:   opts.Clock,
		logger:  logger,
		subs:    make(map[int]chan Event),
	}
}

// Configured reports whether a remote store backs the service.
func (s *Service) Configured() bool { return s.users != nil }

// UserID returns the cached session's user id, or "" when signed out.
func (s *Service) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.UserID()
}

// Current returns the cached session without touching the keyring.
func (s *Service) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}

// Session restores the session from the keyring. A missing, expired or invalid token yields a nil
// session; the latter two are also removed from the keyring.
//
// User details are refreshed from the remote store under the service timeout. When that fails for
// any reason other than a deleted account, the details in the token are used.
func (s *Service) Session(ctx context.Context) (*models.Session, error) {
	if !s.Configured() {
		return nil, shared.ErrRemoteUnavailable
	}

	tok, err := s.tokens.Get()
	if errors.Is(err, ErrNoToken) {
		s.setCurrent(nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	claims, err := ParseToken(tok, s.secret, s.clock.Now())
	if err != nil {
		s.logger.Info("discarding stored session", "reason", err)
		s.clearToken()
		s.setCurrent(nil)
		return nil, nil
	}
	session := sessionFromClaims(tok, claims)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.UserByID(ctx, claims.Subject)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		s.logger.Warn("session user no longer exists", "user", claims.Subject)
		s.clearToken()
		s.setCurrent(nil)
		return nil, nil
	case err != nil:
		s.logger.Warn("could not refresh user details; using token claims", "err", err)
	default:
		session.User = user
	}

	s.setCurrent(session)
	return session, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	if !s.Configured() {
		return nil, shared.ErrRemoteUnavailable
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingArgument)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, hash, err := s.users.UserByEmail(ctx, email)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	session, err := s.establish(user)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: SignedIn, Session: session})
	return session, nil
}

func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (*models.Session, error) {
	if !s.Configured() {
		return nil, shared.ErrRemoteUnavailable
	}
	email = normalizeEmail(email)
	fullName = strings.TrimSpace(fullName)

	if err := models.Validate(models.User{Email: email, FullName: fullName}); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}
	if len(password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrInvalidInput, MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.CreateUser(ctx, email, string(hash), fullName)
	if err != nil {
		return nil, err
	}

	session, err := s.establish(user)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: SignedIn, Session: session})
	return session, nil
}

// SignOut forgets the session locally. Collections keep their in-memory data.
func (s *Service) SignOut(ctx context.Context) error {
	if !s.Configured() {
		return shared.ErrRemoteUnavailable
	}
	if err := s.tokens.Delete(); err != nil {
		return err
	}
	s.setCurrent(nil)
	s.publish(Event{Type: SignedOut})
	return nil
}

// UpdateUser edits the signed-in account and reissues the token so its claims stay current.
func (s *Service) UpdateUser(ctx context.Context, update UserUpdate) (*models.Session, error) {
	if !s.Configured() {
		return nil, shared.ErrRemoteUnavailable
	}
	current := s.Current()
	if current == nil {
		return nil, shared.ErrNotAuthenticated
	}

	user := current.User
	if update.FullName != nil {
		name := strings.TrimSpace(*update.FullName)
		if err := models.Validate(models.User{Email: user.Email, FullName: name}); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}

		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.users.UpdateFullName(ctx, user.ID, name); err != nil {
			return nil, err
		}
		user.FullName = name
	}

	session, err := s.establish(user)
	if err != nil {
		return nil, err
	}
	s.publish(Event{Type: UserUpdated, Session: session})
	return session, nil
}

// Subscribe returns a channel of session events and a function that cancels the subscription.
// Events are dropped for subscribers that are not keeping up.
func (s *Service) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Event, 8)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *Service) establish(user models.User) (*models.Session, error) {
	tok, expires, err := IssueToken(user, s.secret, s.clock.Now(), s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(tok); err != nil {
		return nil, err
	}

	session := &models.Session{User: user, AccessToken: tok, ExpiresAt: expires}
	s.setCurrent(session)
	return session, nil
}

func (s *Service) setCurrent(session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = session
}

func (s *Service) clearToken() {
	if err := s.tokens.Delete(); err != nil {
		s.logger.Warn("failed to clear stored token", "err", err)
	}
}

func (s *Service) publish(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- e:
		default:
			s.logger.Debug("dropping session event for slow subscriber", "type", e.Type)
		}
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

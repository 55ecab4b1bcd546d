package server

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mindflow/internal/shared"
	"golang.org/x/oauth2"
)

// CallbackPath is the redirect route registered with Spotify.
const CallbackPath = "/spotify-callback"

// Redirect codes placed on the landing page query string.
const (
	CodeConnected          = "connected"
	CodeRemoteUnconfigured = "remote_not_configured"
	CodeInvalidCallback    = "invalid_spotify_callback"
	CodeTokenFailed        = "spotify_token_failed"
	CodeConnectionFailed   = "spotify_connection_failed"
	authErrorPrefix        = "spotify_auth_"
)

// TokenExchanger trades an authorization code for tokens.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
}

// ProfileLinker stores linked-account tokens on the user's profile.
type ProfileLinker interface {
	LinkSpotify(ctx context.Context, userID, access, refresh string, at time.Time) error
}

// SessionSource reports the signed-in user, or "" when signed out.
type SessionSource interface {
	UserID() string
}

// CallbackResult is the outcome of one callback request.
type CallbackResult struct {
	// Location is the landing page redirect the browser received.
	Location string
	Token    *oauth2.Token
	err      error
}

func (c *CallbackResult) Error() error {
	return c.err
}

// SpotifyCallback handles the Spotify authorization redirect and links the tokens to the
// signed-in user's profile.
//
// A nil profiles store means the remote store is not configured.
type SpotifyCallback struct {
	exchanger   TokenExchanger
	profiles    ProfileLinker
	session     SessionSource
	clock       shared.Clock
	logger      *log.Logger
	resultChan  chan CallbackResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewSpotifyCallback creates a callback handler. Pass an untyped nil profiles when no remote store is configured.
func NewSpotifyCallback(exchanger TokenExchanger, profiles ProfileLinker, session SessionSource, clock shared.Clock, logger *log.Logger) *SpotifyCallback {
	if clock == nil {
		clock = shared.RealClock{}
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &SpotifyCallback{
		exchanger:  exchanger,
		profiles:   profiles,
		session:    session,
		clock:      clock,
		logger:     logger,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *SpotifyCallback) Routes() []string {
	return []string{CallbackPath}
}

// ServeHTTP handles the callback request and always answers with a redirect to the landing page.
func (h *SpotifyCallback) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	result := h.handle(r)
	h.Send(result)
	http.Redirect(w, r, result.Location, http.StatusFound)
}

func (h *SpotifyCallback) handle(r *http.Request) CallbackResult {
	if h.profiles == nil {
		return failure(CodeRemoteUnconfigured, shared.ErrRemoteUnavailable)
	}

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		return failure(authErrorPrefix+e, fmt.Errorf("%w: spotify returned %s", shared.ErrAuthFailed, e))
	}

	code, state := q.Get("code"), q.Get("state")
	userID := ""
	if h.session != nil {
		userID = h.session.UserID()
	}
	if code == "" || state == "" || state != userID {
		return failure(CodeInvalidCallback, shared.ErrStateMismatch)
	}

	token, err := h.exchanger.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Warn("token exchange failed", "err", err)
		return failure(CodeTokenFailed, fmt.Errorf("token exchange failed: %w", err))
	}

	if err := h.profiles.LinkSpotify(r.Context(), userID, token.AccessToken, token.RefreshToken, h.clock.Now()); err != nil {
		h.logger.Warn("failed to store spotify tokens", "user", userID, "err", err)
		return failure(CodeConnectionFailed, fmt.Errorf("failed to store tokens: %w", err))
	}

	h.logger.Info("spotify connected", "user", userID)
	return CallbackResult{Location: "/?spotify=" + CodeConnected, Token: token}
}

func failure(code string, err error) CallbackResult {
	return CallbackResult{Location: "/?error=" + url.QueryEscape(code), err: err}
}

// Send sends the result through the channel (only once).
func (h *SpotifyCallback) Send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel.
//
// Channel will receive exactly one result and then be closed.
func (h *SpotifyCallback) Result() <-chan CallbackResult {
	return h.resultChan
}

var outcomeMessages = map[string]string{
	CodeRemoteUnconfigured: "The remote store is not configured, so the account cannot be linked.",
	CodeInvalidCallback:    "The callback did not match the signed-in user.",
	CodeTokenFailed:        "Spotify did not accept the authorization code.",
	CodeConnectionFailed:   "The tokens could not be saved to your profile.",
}

// Landing renders the page the callback redirects to.
func Landing() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		title, color, message := "Spotify Connected", "#1DB954", "You can close this window and return to the terminal."
		if code := r.URL.Query().Get("error"); code != "" {
			title, color = "Spotify Connection Failed", "#E22134"
			message = outcomeMessages[code]
			if message == "" {
				message = "Spotify reported: " + code
			}
		} else if r.URL.Query().Get("spotify") != CodeConnected {
			title, message = "MindFlow", "Waiting for Spotify authorization."
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>%[1]s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: %[2]s; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%[1]s</h1>
        <p>%[3]s</p>
    </div>
</body>
</html>
`, title, color, html.EscapeString(message))
	})
}

// NewCallbackRouter wires the callback and landing page behind request logging.
func NewCallbackRouter(callback *SpotifyCallback, logger *log.Logger) *BasicRouter {
	router := NewBasicRouter()
	router.Use(Logging(logger))
	router.Handler(callback)
	router.Handle(http.MethodGet, "/", Landing())
	return router
}

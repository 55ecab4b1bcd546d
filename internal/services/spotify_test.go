package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/mindflow/internal/shared"
	"golang.org/x/oauth2"
)

func newTestService(t *testing.T) *SpotifyService {
	t.Helper()
	srv, err := NewSpotifyService(map[string]string{
		"client_id":     "test_client_id",
		"client_secret": "test_client_secret",
	})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return srv
}

func TestSpotifyService(t *testing.T) {
	t.Run("NewSpotifyService", func(t *testing.T) {
		t.Run("With Valid Credentials", func(t *testing.T) {
			srv := newTestService(t)
			if srv.Name() != "Spotify" {
				t.Errorf("expected service name 'Spotify', got %s", srv.Name())
			}
			if srv.config.RedirectURL != DefaultRedirectURI {
				t.Errorf("expected default redirect URI, got %s", srv.config.RedirectURL)
			}
		})

		t.Run("Missing Client ID", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Missing Client Secret", func(t *testing.T) {
			_, err := NewSpotifyService(map[string]string{"client_id": "id"})
			if !errors.Is(err, shared.ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})
	})

	t.Run("AuthURL", func(t *testing.T) {
		srv := newTestService(t)
		authURL := srv.AuthURL("user-123")

		u, err := url.Parse(authURL)
		if err != nil {
			t.Fatalf("invalid auth URL: %v", err)
		}
		if u.Host != "accounts.spotify.com" {
			t.Errorf("unexpected host %s", u.Host)
		}
		q := u.Query()
		if q.Get("state") != "user-123" || q.Get("client_id") != "test_client_id" || q.Get("response_type") != "code" {
			t.Errorf("unexpected query %v", q)
		}
		if got := strings.Fields(q.Get("scope")); len(got) != 7 {
			t.Errorf("expected 7 scopes, got %v", got)
		}
		if q.Get("redirect_uri") != DefaultRedirectURI {
			t.Errorf("unexpected redirect %s", q.Get("redirect_uri"))
		}
	})

	t.Run("Exchange", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "test_client_id" || pass != "test_client_secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if err := r.ParseForm(); err != nil || r.Form.Get("code") != "good" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_grant"}`)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"access","refresh_token":"refresh","token_type":"Bearer","expires_in":3600}`)
		}))
		defer ts.Close()

		srv := newTestService(t)
		srv.config.Endpoint.TokenURL = ts.URL + "/api/token"

		tok, err := srv.Exchange(context.Background(), "good")
		if err != nil {
			t.Fatalf("Exchange failed: %v", err)
		}
		if tok.AccessToken != "access" || tok.RefreshToken != "refresh" {
			t.Errorf("unexpected token %+v", tok)
		}

		if _, err := srv.Exchange(context.Background(), "bad"); err == nil {
			t.Error("expected error for rejected code")
		}
		if _, err := srv.Exchange(context.Background(), ""); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Authenticate", func(t *testing.T) {
		srv := newTestService(t)
		if err := srv.Authenticate(context.Background(), nil); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if srv.Authenticated() {
			t.Error("expected unauthenticated")
		}
		if err := srv.Authenticate(context.Background(), &oauth2.Token{AccessToken: "a"}); err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if !srv.Authenticated() {
			t.Error("expected authenticated")
		}
	})

	t.Run("API calls", func(t *testing.T) {
		var auth string
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			switch {
			case r.URL.Path == "/me":
				fmt.Fprint(w, `{"id":"sp1","display_name":"Ada","product":"premium"}`)
			case r.URL.Path == "/me/playlists" && r.URL.Query().Get("offset") == "0":
				fmt.Fprintf(w, `{"items":[{"id":"p1","name":"Calm","owner":{"display_name":"Ada"},"tracks":{"total":12},"external_urls":{"spotify":"https://open.spotify.com/playlist/p1"}}],"next":"%s/me/playlists?offset=50"}`, "http://"+r.Host)
			case r.URL.Path == "/me/playlists":
				fmt.Fprint(w, `{"items":[{"id":"p2","name":"Focus","tracks":{"total":3}}],"next":null}`)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer ts.Close()

		srv := newTestService(t)
		srv.baseURL = ts.URL

		if _, err := srv.CurrentUser(context.Background()); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated before Authenticate, got %v", err)
		}

		if err := srv.Authenticate(context.Background(), &oauth2.Token{AccessToken: "access"}); err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}

		user, err := srv.CurrentUser(context.Background())
		if err != nil {
			t.Fatalf("CurrentUser failed: %v", err)
		}
		if user.ID != "sp1" || user.DisplayName != "Ada" {
			t.Errorf("unexpected user %+v", user)
		}
		if auth != "Bearer access" {
			t.Errorf("unexpected auth header %q", auth)
		}

		playlists, err := srv.Playlists(context.Background())
		if err != nil {
			t.Fatalf("Playlists failed: %v", err)
		}
		if len(playlists) != 2 || playlists[0].TrackCount != 12 || playlists[1].ID != "p2" {
			t.Errorf("unexpected playlists %+v", playlists)
		}
		if playlists[0].URL != "https://open.spotify.com/playlist/p1" {
			t.Errorf("unexpected url %s", playlists[0].URL)
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		srv := newTestService(t)
		srv.baseURL = ts.URL
		_ = srv.Authenticate(context.Background(), &oauth2.Token{AccessToken: "stale"})

		if _, err := srv.CurrentUser(context.Background()); !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestCatalogs(t *testing.T) {
	if got := CuratedPlaylists(""); len(got) != 5 {
		t.Errorf("expected 5 curated playlists, got %d", len(got))
	}
	if got := CuratedPlaylists("sleep"); len(got) != 1 || got[0].Name != "Sleep Sounds" {
		t.Errorf("unexpected sleep playlists %+v", got)
	}
	if got := CuratedPlaylists("polka"); len(got) != 0 {
		t.Errorf("expected no playlists, got %+v", got)
	}
	if len(Stickers("")) == 0 {
		t.Error("expected sticker catalog")
	}
}

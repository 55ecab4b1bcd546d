package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvRemoteURL           = "MINDFLOW_REMOTE_URL"
	EnvJWTSecret           = "MINDFLOW_JWT_SECRET"
	EnvDatabasePath        = "MINDFLOW_DB_PATH"
	EnvSpotifyClientID     = "SPOTIFY_CLIENT_ID"
	EnvSpotifyClientSecret = "SPOTIFY_CLIENT_SECRET"
	EnvSpotifyRedirectURI  = "SPOTIFY_REDIRECT_URI"
	EnvRemoteTimeout       = "MINDFLOW_REMOTE_TIMEOUT"
	EnvServerPort          = "MINDFLOW_CALLBACK_PORT"
)

// LoadDotEnv loads variables from the given .env files (default ".env") without overriding the process environment.
// A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	return godotenv.Load(present...)
}

// ApplyEnv overlays environment-supplied endpoint, credential and timeout values onto cfg.
func ApplyEnv(cfg *Config) {
	cfg.Remote.URL = GetEnvAsString(EnvRemoteURL, cfg.Remote.URL)
	cfg.Auth.JWTSecret = GetEnvAsString(EnvJWTSecret, cfg.Auth.JWTSecret)
	cfg.Database.Path = GetEnvAsString(EnvDatabasePath, cfg.Database.Path)
	cfg.Credentials.Spotify.ClientID = GetEnvAsString(EnvSpotifyClientID, cfg.Credentials.Spotify.ClientID)
	cfg.Credentials.Spotify.ClientSecret = GetEnvAsString(EnvSpotifyClientSecret, cfg.Credentials.Spotify.ClientSecret)
	cfg.Credentials.Spotify.RedirectURI = GetEnvAsString(EnvSpotifyRedirectURI, cfg.Credentials.Spotify.RedirectURI)
	cfg.Server.Port = GetEnvAsInt(EnvServerPort, cfg.Server.Port)

	if timeout := GetEnvAsDuration(EnvRemoteTimeout, 0); timeout > 0 {
		cfg.Remote.Timeout = timeout.String()
	}
}

func GetEnvAsString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

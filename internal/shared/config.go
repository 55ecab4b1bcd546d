package shared

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// PlaceholderJWTSecret is the signing secret shipped in the example config.
const PlaceholderJWTSecret = "change-me"

const (
	defaultRemoteTimeout = 5 * time.Second
	defaultWriteTimeout  = 10 * time.Second
	defaultSessionTTL    = 7 * 24 * time.Hour
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Remote      RemoteConfig      `toml:"remote"`
	Auth        AuthConfig        `toml:"auth"`
	Server      ServerConfig      `toml:"server"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify API credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
}

// Configured reports whether both halves of the client credentials are present.
func (s SpotifyConfig) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != ""
}

// Map returns the credentials in the shape [services.NewSpotifyService] expects.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
		"redirect_uri":  s.RedirectURI,
	}
}

// DatabaseConfig contains local database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// RemoteConfig points at the hosted Postgres store. An empty URL means local-only mode.
type RemoteConfig struct {
	URL          string `toml:"url"`
	Timeout      string `toml:"timeout"`
	WriteTimeout string `toml:"write_timeout"`
}

// Configured reports whether a remote store endpoint was supplied.
func (r RemoteConfig) Configured() bool {
	return r.URL != ""
}

// LoadTimeout is the bound on the initial remote fetch.
func (r RemoteConfig) LoadTimeout() time.Duration {
	return parseDuration(r.Timeout, defaultRemoteTimeout)
}

// MirrorTimeout is the bound on each best-effort remote write.
func (r RemoteConfig) MirrorTimeout() time.Duration {
	return parseDuration(r.WriteTimeout, defaultWriteTimeout)
}

// AuthConfig contains session signing settings.
type AuthConfig struct {
	JWTSecret  string `toml:"jwt_secret"`
	SessionTTL string `toml:"session_ttl"`
}

// TTL is how long an issued session token stays valid.
func (a AuthConfig) TTL() time.Duration {
	return parseDuration(a.SessionTTL, defaultSessionTTL)
}

// ServerConfig contains settings for the OAuth callback listener.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr joins host and port for [net/http.Server].
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig controls the log level and the dashboard's log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
// The placeholder JWT secret is replaced with a freshly generated one.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	placeholder := []byte(fmt.Sprintf("jwt_secret = %q", PlaceholderJWTSecret))
	content := bytes.Replace(exampleConf, placeholder, []byte(fmt.Sprintf("jwt_secret = %q", GenerateState())), 1)

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig encodes cfg as TOML and overwrites path.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringService is the OS keyring service the session token is stored under.
const KeyringService = "mindflow"

// ErrNoToken is returned when no session token is stored.
var ErrNoToken = errors.New("no session token stored")

// TokenStore persists the session token between runs.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// KeyringStore keeps the token in the OS keyring.
type KeyringStore struct {
	Service string
	User    string
}

// NewKeyringStore stores tokens under [KeyringService] for the given account label.
func NewKeyringStore(user string) *KeyringStore {
	if user == "" {
		user = "session"
	}
	return &KeyringStore{Service: KeyringService, User: user}
}

func (k *KeyringStore) Get() (string, error) {
	tok, err := keyring.Get(k.Service, k.User)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read keyring: %w", err)
	}
	return tok, nil
}

func (k *KeyringStore) Set(token string) error {
	if token == "" {
		return errors.New("token cannot be empty")
	}
	if err := keyring.Set(k.Service, k.User, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Delete removes the token. A missing token is not an error.
func (k *KeyringStore) Delete() error {
	err := keyring.Delete(k.Service, k.User)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}

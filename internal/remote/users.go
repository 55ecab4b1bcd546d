package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

const userColumns = `id, email, full_name, created_at, updated_at`

func scanUser(s scanner, extra ...any) (models.User, error) {
	var u models.User
	dest := append([]any{&u.ID, &u.Email, &u.FullName, &u.CreatedAt, &u.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// CreateUser registers an account and its empty profile. A taken email yields [shared.ErrUserExists].
func (c *Client) CreateUser(ctx context.Context, email, passwordHash, fullName string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	now := time.Now().UTC()
	id := shared.GenerateID()

	var user models.User
	err := c.withTx(ctx, func(tx DBTX) error {
		row := tx.QueryRowContext(ctx,
			`INSERT INTO users (id, email, password_hash, full_name, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $5)
			 ON CONFLICT (email) DO NOTHING
			 RETURNING `+userColumns,
			id, email, passwordHash, fullName, now)

		var err error
		user, err = scanUser(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", shared.ErrUserExists, email)
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_profiles (id, full_name, updated_at) VALUES ($1, $2, $3)`,
			id, fullName, now); err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UserByEmail returns the account and its password hash.
func (c *Client) UserByEmail(ctx context.Context, email string) (models.User, string, error) {
	var hash string
	row := c.db.QueryRowContext(ctx,
		`SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))

	u, err := scanUser(row, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, "", fmt.Errorf("%w: user %s", shared.ErrNotFound, email)
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to query user: %w", err)
	}
	return u, hash, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (models.User, error) {
	u, err := scanUser(c.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("%w: user %s", shared.ErrNotFound, id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
)

// GetProfile returns the user's profile. A missing row yields an empty profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	var (
		p               models.UserProfile
		access, refresh sql.NullString
		connectedAt     sql.NullTime
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT id, full_name, spotify_access_token, spotify_refresh_token, spotify_connected_at
		 FROM user_profiles WHERE id = $1`, userID).
		Scan(&p.ID, &p.FullName, &access, &refresh, &connectedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserProfile{ID: userID}, nil
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to query profile: %w", err)
	}

	p.SpotifyAccessToken = access.String
	p.SpotifyRefreshToken = refresh.String
	if connectedAt.Valid {
		t := connectedAt.Time
		p.SpotifyConnectedAt = &t
	}
	return p, nil
}

// LinkSpotify upserts the user's Spotify tokens and connection time.
func (c *Client) LinkSpotify(ctx context.Context, userID, access, refresh string, at time.Time) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO user_profiles (id, spotify_access_token, spotify_refresh_token, spotify_connected_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (id) DO UPDATE SET
		     spotify_access_token = EXCLUDED.spotify_access_token,
		     spotify_refresh_token = EXCLUDED.spotify_refresh_token,
		     spotify_connected_at = EXCLUDED.spotify_connected_at,
		     updated_at = EXCLUDED.updated_at`,
		userID, access, refresh, at)
	if err != nil {
		return fmt.Errorf("failed to store spotify tokens: %w", err)
	}
	return nil
}

// UnlinkSpotify clears the stored Spotify tokens.
func (c *Client) UnlinkSpotify(ctx context.Context, userID string) error {
	_, err := c.db.ExecContext(ctx,
		`UPDATE user_profiles
		 SET spotify_access_token = NULL, spotify_refresh_token = NULL, spotify_connected_at = NULL, updated_at = now()
		 WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear spotify tokens: %w", err)
	}
	return nil
}

// UpdateFullName renames the account and its profile together.
func (c *Client) UpdateFullName(ctx context.Context, userID, name string) error {
	return c.withTx(ctx, func(tx DBTX) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET full_name = $1, updated_at = now() WHERE id = $2`, name, userID)
		if err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: user %s", shared.ErrNotFound, userID)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_profiles (id, full_name, updated_at) VALUES ($1, $2, now())
			 ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, updated_at = now()`,
			userID, name)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	})
}

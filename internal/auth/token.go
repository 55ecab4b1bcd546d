package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/mindflow/internal/models"
	"github.com/desertthunder/mindflow/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the access token claims. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"name,omitempty"`
}

const issuer = "mindflow"

// IssueToken signs an HS256 access token for user valid for ttl from now.
func IssueToken(user models.User, secret []byte, now time.Time, ttl time.Duration) (string, time.Time, error) {
	expires := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Email:    user.Email,
		FullName: user.FullName,
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expires, nil
}

// ParseToken verifies signature and expiry as of now and returns the claims.
func ParseToken(tokenString string, secret []byte, now time.Time) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, shared.ErrTokenExpired
	case err != nil:
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	case !token.Valid || claims.Subject == "":
		return nil, shared.ErrAuthFailed
	}
	return claims, nil
}

// sessionFromClaims rebuilds a session without a round trip to the remote store.
func sessionFromClaims(token string, c *Claims) *models.Session {
	s := &models.Session{
		User:        models.User{ID: c.Subject, Email: c.Email, FullName: c.FullName},
		AccessToken: token,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

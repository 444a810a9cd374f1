package session

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/wedlink-admin/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Account is what the access token says about the signed-in admin. The
// signature is not verified here; the backend does that on every request.
type Account struct {
	ID        string
	Email     string
	Role      string
	ExpiresAt time.Time
}

type accountClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ErrNotAuthenticated is returned when there is no access token to describe.
var ErrNotAuthenticated = fmt.Errorf("not authenticated: %w", common.ErrNoToken)

// ParseAccount decodes the claims of token without verifying it.
func ParseAccount(token string) (Account, error) {
	if token == "" {
		return Account{}, ErrNotAuthenticated
	}

	var claims accountClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Account{}, fmt.Errorf("decode token: %w: %w", common.ErrInvalidToken, err)
	}

	a := Account{ID: claims.ID, Email: claims.Email, Role: claims.Role}
	if a.ID == "" {
		a.ID = claims.Subject
	}
	if claims.ExpiresAt != nil {
		a.ExpiresAt = claims.ExpiresAt.Time
	}
	return a, nil
}

// Expired reports whether the token expiry has passed at now.
func (a Account) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && !now.Before(a.ExpiresAt)
}

// Package services contains the console's application services. Each one
// validates its input, then talks to the session manager or the API client.
package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/session"
)

// SessionManager is the part of session.Manager the auth service drives.
type SessionManager interface {
	Login(ctx context.Context, email, password string) error
	Signup(ctx context.Context, name, email, password string) error
	Logout(ctx context.Context)
	Snapshot() session.Snapshot
}

// AuthService defines authentication operations for the console.
//
// Contract:
//   - Signup: validate and create an admin account; does not sign in.
//   - Login: validate and sign in; the session becomes authenticated.
//   - Logout: end the session locally, then on the server (best effort).
//   - Account: describe the signed-in admin from the access token.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context)
	Account() (session.Account, session.Snapshot, error)
}

type authService struct {
	session SessionManager
}

func NewAuthService(s SessionManager) AuthService {
	return &authService{session: s}
}

func (a *authService) Signup(ctx context.Context, name, email, password string) error {
	if err := ValidateSignup(name, email, password); err != nil {
		return err
	}
	return a.session.Signup(ctx, strings.TrimSpace(name), strings.TrimSpace(email), password)
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	if err := ValidateLogin(email, password); err != nil {
		return err
	}
	return a.session.Login(ctx, strings.TrimSpace(email), password)
}

func (a *authService) Logout(ctx context.Context) {
	a.session.Logout(ctx)
}

func (a *authService) Account() (session.Account, session.Snapshot, error) {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		return session.Account{}, snap, session.ErrNotAuthenticated
	}
	acc, err := session.ParseAccount(snap.Token)
	return acc, snap, err
}

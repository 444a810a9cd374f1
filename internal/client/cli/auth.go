package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/wedlink-admin/internal/client/guard"
	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

// getSimpleText, getDefaultText, getPassword, getMultiline and confirm are
// indirections used to facilitate testing. They point to interactive input
// helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getDefaultText = GetDefaultText
var getPassword = GetPassword
var getMultiline = GetMultiline
var confirm = Confirm

// Signup prompts for a name, email and password and creates an admin
// account. It does not sign in; the console moves to the login screen.
func (a *App) Signup(ctx context.Context) error {
	if err := a.enter(ctx, guard.PathSignup); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Signup(ctx, name, email, string(password)); err != nil {
		return failed("Signup failed", err)
	}

	a.println("Account created. Please log in.")
	_, _, _ = a.router.Navigate(ctx, guard.PathLogin)
	return nil
}

// Login prompts for credentials, signs in and shows the dashboard.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if err := a.enter(ctx, guard.PathLogin); err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, string(password)); err != nil {
		a.log.Info(ctx, "login unsuccessful", "error", err)
		return failed("Login failed", err)
	}

	a.log.Info(ctx, "login successful")
	a.println("Login successful")
	return a.Dashboard(ctx)
}

// Logout ends the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	_, _, _ = a.router.Navigate(ctx, guard.PathLogin)
	a.println("Logged out")
	return nil
}

// WhoAmI prints what the access token says about the signed-in admin.
func (a *App) WhoAmI(ctx context.Context) error {
	acc, snap, err := a.authService.Account()
	if err != nil {
		return failed(fmt.Sprintf("Session is %s", snap.State), err)
	}

	a.println("Email:", acc.Email)
	if acc.Role != "" {
		a.println("Role:", acc.Role)
	}
	if acc.ID != "" {
		a.println("ID:", acc.ID)
	}
	if !acc.ExpiresAt.IsZero() {
		a.println("Token expires:", acc.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

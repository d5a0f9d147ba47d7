package cli

import (
	"context"
	"errors"
	"os"

	"github.com/mentorlink/client/internal/client/api"
	"github.com/mentorlink/client/internal/client/credentials"
	"github.com/mentorlink/client/internal/client/routing"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// ErrNoRefreshToken means logout was requested with no refresh token
// stored; the operation fails fast without touching the network.
var ErrNoRefreshToken = errors.New("no refresh token stored")

// Login prompts for credentials, authenticates, persists the returned
// session, and reports the role's dashboard path.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	s, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		printlnFn("Login failed: " + userMessage(err))
		return err
	}

	if err := a.saveSession(ctx, s); err != nil {
		return err
	}

	printlnFn("Logged in. Redirecting to " + routing.DashboardPath(s.Role))
	return nil
}

// Register prompts for the full registration payload and creates an
// account. Token and redirect handling mirror Login.
func (a *App) Register(ctx context.Context) error {
	reg := api.Registration{}

	var err error
	if reg.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if reg.Username, err = getSimpleText(a.reader, "Choose a username", os.Stdout); err != nil {
		return err
	}
	if reg.FullName, err = getSimpleText(a.reader, "Enter full name", os.Stdout); err != nil {
		return err
	}
	if reg.PhoneNumber, err = getSimpleText(a.reader, "Enter phone number", os.Stdout); err != nil {
		return err
	}

	userType, err := getSimpleText(a.reader, "Account type (amateur, professional, institution)", os.Stdout)
	if err != nil {
		return err
	}
	if _, ok := routing.ParseRole(userType); !ok {
		printlnFn("Unknown account type: " + userType)
		return errors.New("unknown account type")
	}
	reg.UserType = userType

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password)

	password2, err := getPassword("Repeat password", os.Stdout)
	if err != nil {
		return err
	}
	defer wipe(password2)

	reg.Password = string(password)
	reg.Password2 = string(password2)

	s, err := a.client.Register(ctx, reg)
	if err != nil {
		printlnFn("Registration failed: " + userMessage(err))
		return err
	}

	if s.Token != "" {
		if err := a.saveSession(ctx, s); err != nil {
			return err
		}
	}

	printlnFn("Account created. Redirecting to " + routing.DashboardPath(s.Role))
	return nil
}

// Logout attempts the server-side logout first, then clears the local
// store regardless of the server outcome. With no refresh token stored it
// fails fast locally, skips the network, and still lands on /login.
func (a *App) Logout(ctx context.Context) error {
	creds, err := a.store.Read(ctx)
	if err != nil {
		return err
	}
	if creds == nil {
		printlnFn("Not logged in.")
		return nil
	}

	if creds.RefreshToken == "" {
		a.clearSession(ctx)
		printlnFn("Redirecting to " + routing.PathLogin)
		return ErrNoRefreshToken
	}

	if err := a.client.Logout(ctx, creds.Token, creds.RefreshToken); err != nil {
		a.log.Warn(ctx, "logout request failed, clearing local session anyway", "error", err)
	}

	a.clearSession(ctx)
	printlnFn("Logged out. Redirecting to " + routing.PathLogin)
	return nil
}

// WhoAmI reports the stored session identity.
func (a *App) WhoAmI(ctx context.Context) error {
	creds, err := a.store.Read(ctx)
	if err != nil {
		return err
	}
	if creds == nil {
		printlnFn("Not logged in.")
		return nil
	}
	printlnFn("Logged in with role: " + creds.Role)
	return nil
}

func (a *App) saveSession(ctx context.Context, s *api.Session) error {
	err := a.store.Save(ctx, credentials.Credentials{
		Token:        s.Token,
		RefreshToken: s.RefreshToken,
		Role:         s.Role,
	})
	if err != nil {
		a.log.Error(ctx, "failed to persist session", "error", err)
		return err
	}
	a.guard.Invalidate()
	return nil
}

func (a *App) clearSession(ctx context.Context) {
	if err := a.store.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
	a.guard.Invalidate()
}

// userMessage converts backend errors to a short human-readable reason.
func userMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "invalid credentials"
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable, please try again"
	default:
		return err.Error()
	}
}

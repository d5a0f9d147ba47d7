// Package api defines the client for the Mentorlink backend and the data
// shapes it exchanges. The rest of the client depends on the Client
// interface only, which keeps network access swappable in tests.
package api

import "context"

// Session is the credential material returned by login and registration.
// Token and RefreshToken are opaque; the client never inspects them.
type Session struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	Role         string `json:"user_type"`
}

// Registration is the payload for creating a new account.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Password2   string `json:"password2"`
	UserType    string `json:"user_type"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
	FullName    string `json:"full_name"`
}

// Client defines the backend operations the flow controller consumes.
//
// Contract:
//   - Login/Register: authenticate or create an account, returning a Session.
//   - Logout: invalidate the refresh token server-side.
//   - VerifySession: confirm the given bearer token is currently valid.
//   - RequestPasswordReset/VerifyResetCode/ConfirmPasswordReset: the three
//     network stages of password recovery.
//
// All methods honor context cancellation. Failures are reported through the
// sentinel errors in errors.go; callers match with errors.Is.
type Client interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	Register(ctx context.Context, reg Registration) (*Session, error)
	Logout(ctx context.Context, token, refreshToken string) error
	VerifySession(ctx context.Context, token string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword, confirmPassword string) error
	Close() error
}

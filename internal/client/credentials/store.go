// Package credentials persists the client's session material (bearer token,
// refresh token, role) across restarts. It is a dumb key-value layer: tokens
// are opaque pass-through strings and no validation happens here.
package credentials

import "context"

// Credentials is the session material held by the store.
type Credentials struct {
	Token        string
	RefreshToken string
	Role         string
}

// Store is the narrow contract the rest of the client depends on.
//
//   - Save writes all fields, replacing whatever was stored.
//   - Read returns the stored credentials, or nil when no token is stored.
//   - Clear removes everything session-scoped; safe to call when empty.
//     Callers observe the clear as atomic: no partial state survives.
type Store interface {
	Save(ctx context.Context, creds Credentials) error
	Read(ctx context.Context) (*Credentials, error)
	Clear(ctx context.Context) error
}

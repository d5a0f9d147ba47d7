// Package session checks whether the locally stored session is still valid
// according to the backend.
package session

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/mentorlink/client/internal/client/credentials"
	"github.com/mentorlink/client/internal/logging"
)

// ErrNoSession is returned when there is no stored token to verify.
var ErrNoSession = errors.New("no session stored")

// TokenChecker is the single backend call the verifier needs.
type TokenChecker interface {
	VerifySession(ctx context.Context, token string) error
}

// CredentialReader is the read-only slice of the credential store. The
// verifier never mutates storage; on failure that is the caller's job.
type CredentialReader interface {
	Read(ctx context.Context) (*credentials.Credentials, error)
}

// Verifier asks the backend whether the stored token is currently valid.
//
// Concurrent Verify calls share a single in-flight request: route guards can
// fire verification from several places at once and must all observe one
// network round-trip with one consistent outcome.
type Verifier struct {
	client TokenChecker
	creds  CredentialReader
	log    logging.Logger
	group  singleflight.Group
}

func NewVerifier(client TokenChecker, creds CredentialReader, log logging.Logger) *Verifier {
	return &Verifier{client: client, creds: creds, log: log.With("component", "session")}
}

// Verify succeeds when the backend confirms the stored token is valid.
// It fails with ErrNoSession when nothing is stored, and with the backend
// client's error otherwise. Late callers joining a pending verification
// receive the pending call's outcome.
func (v *Verifier) Verify(ctx context.Context) error {
	_, err, shared := v.group.Do("verify", func() (any, error) {
		// Re-read on every call: a logout elsewhere must be visible here.
		creds, err := v.creds.Read(ctx)
		if err != nil {
			return nil, err
		}
		if creds == nil {
			return nil, ErrNoSession
		}
		return nil, v.client.VerifySession(ctx, creds.Token)
	})

	if err != nil {
		v.log.Debug(ctx, "session verification failed", "shared", shared, "error", err)
	}
	return err
}

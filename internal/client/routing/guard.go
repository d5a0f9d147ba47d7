package routing

import (
	"context"
	"errors"
	"sync"

	"github.com/mentorlink/client/internal/client/api"
	"github.com/mentorlink/client/internal/client/credentials"
	"github.com/mentorlink/client/internal/logging"
)

// Decision is the outcome of resolving access to a route.
type Decision int

const (
	// DecisionAllow renders the requested view.
	DecisionAllow Decision = iota
	// DecisionRedirectLogin sends the visitor to /login.
	DecisionRedirectLogin
	// DecisionRedirectHome sends the visitor to / (wrong role).
	DecisionRedirectHome
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect:" + PathLogin
	case DecisionRedirectHome:
		return "redirect:" + PathHome
	default:
		return "unknown"
	}
}

// State reports where the guard is in its resolution cycle. While checking,
// the caller must render a neutral placeholder, never the protected view.
type State int

const (
	StateChecking State = iota
	StateResolved
)

// SessionChecker verifies the stored session against the backend.
type SessionChecker interface {
	Verify(ctx context.Context) error
}

// CredentialStore is what the guard needs from the credential layer:
// presence reads, and a clear when the backend rejects the token.
type CredentialStore interface {
	Read(ctx context.Context) (*credentials.Credentials, error)
	Clear(ctx context.Context) error
}

// Guard is the route access controller.
//
// A Resolve call with the same (path, rule) pair as the previous one returns
// the cached decision without another verification round-trip; changing
// either key re-runs the check, mirroring a fresh mount of the route.
// Any verification error fails closed: the visitor is treated as not
// authenticated.
type Guard struct {
	creds    CredentialStore
	sessions SessionChecker
	log      logging.Logger

	mu       sync.Mutex
	state    State
	lastKey  guardKey
	lastDec  Decision
	resolved bool
}

type guardKey struct {
	path string
	rule Rule
}

func NewGuard(creds CredentialStore, sessions SessionChecker, log logging.Logger) *Guard {
	return &Guard{
		creds:    creds,
		sessions: sessions,
		log:      log.With("component", "guard"),
	}
}

// State returns the guard's current resolution state.
func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Invalidate drops the cached decision so the next Resolve re-checks.
// Call it after anything that changes session state, e.g. logout.
func (g *Guard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resolved = false
	g.state = StateChecking
}

// Resolve decides access for path under rule.
func (g *Guard) Resolve(ctx context.Context, path string, rule Rule) Decision {
	key := guardKey{path: path, rule: rule}

	g.mu.Lock()
	if g.resolved && g.lastKey == key {
		d := g.lastDec
		g.mu.Unlock()
		return d
	}
	g.state = StateChecking
	g.resolved = false
	g.lastKey = key
	g.mu.Unlock()

	decision := g.check(ctx, path, rule)

	g.mu.Lock()
	if g.lastKey == key {
		g.lastDec = decision
		g.resolved = true
		g.state = StateResolved
	}
	g.mu.Unlock()

	g.log.Debug(ctx, "route resolved", "path", path, "decision", decision.String())
	return decision
}

func (g *Guard) check(ctx context.Context, path string, rule Rule) Decision {
	if rule.Public {
		return DecisionAllow
	}

	creds, err := g.creds.Read(ctx)
	if err != nil {
		g.log.Warn(ctx, "credential read failed, failing closed", "path", path, "error", err)
		return DecisionRedirectLogin
	}
	if creds == nil {
		return DecisionRedirectLogin
	}

	if err := g.sessions.Verify(ctx); err != nil {
		// A backend rejection means the token is dead: drop it so the rest
		// of the client immediately sees the logged-out state. Transport
		// failures keep the token; they still fail closed for this route.
		if errors.Is(err, api.ErrUnauthorized) {
			if clearErr := g.creds.Clear(ctx); clearErr != nil {
				g.log.Error(ctx, "failed to clear rejected credentials", "error", clearErr)
			}
		}
		return DecisionRedirectLogin
	}

	if rule.Required != "" && Role(creds.Role) != rule.Required {
		return DecisionRedirectHome
	}
	return DecisionAllow
}

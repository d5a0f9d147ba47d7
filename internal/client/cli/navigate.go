package cli

import (
	"context"

	"github.com/mentorlink/client/internal/client/routing"
)

// Open resolves access to path through the route guard and reports the
// outcome the way the web client would: render, or redirect.
func (a *App) Open(ctx context.Context, path string) error {
	rule := a.routes.Lookup(path)

	switch a.guard.Resolve(ctx, path, rule) {
	case routing.DecisionAllow:
		printlnFn("Rendering " + path)
	case routing.DecisionRedirectLogin:
		printlnFn("Redirecting to " + routing.PathLogin)
	case routing.DecisionRedirectHome:
		printlnFn("Redirecting to " + routing.PathHome)
	}
	return nil
}

// Package cli wires the auth flow controller into an interactive terminal
// application: login, registration, logout, route navigation, and the
// password recovery flow.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"os"
	"time"

	"github.com/mentorlink/client/internal/client/api"
	"github.com/mentorlink/client/internal/client/config"
	"github.com/mentorlink/client/internal/client/credentials"
	"github.com/mentorlink/client/internal/client/routing"
	"github.com/mentorlink/client/internal/client/session"
	"github.com/mentorlink/client/internal/logging"
)

type App struct {
	config   *config.Config
	log      logging.Logger
	client   api.Client
	db       *sql.DB
	store    credentials.Store
	verifier *session.Verifier
	guard    *routing.Guard
	routes   routing.Table
	reader   *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := credentials.InitDatabase(ctx, c.CredentialsDBPath)
	if err != nil {
		log.Error(ctx, "error initializing credentials database", "error", err)
		return nil, err
	}

	store := credentials.NewSQLiteStore(db)
	client := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	verifier := session.NewVerifier(client, store, log)
	guard := routing.NewGuard(store, verifier, log)

	return &App{
		config:   c,
		log:      log,
		client:   client,
		db:       db,
		store:    store,
		verifier: verifier,
		guard:    guard,
		routes:   routing.DefaultTable(),
		reader:   bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.client.Close()
		_ = a.db.Close()
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	creds, err := a.store.Read(context.Background())
	return err == nil && creds != nil
}

// StartSessionWatcher periodically re-verifies the stored session so an
// expired session surfaces without waiting for the next navigation. The
// verifier de-duplicates, so a watcher probe and a route guard firing at
// the same moment still cost one request.
func (a *App) StartSessionWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := a.verifier.Verify(ctx)
			if err == nil || errors.Is(err, session.ErrNoSession) {
				continue
			}
			if errors.Is(err, api.ErrUnauthorized) {
				if clearErr := a.store.Clear(ctx); clearErr != nil {
					a.log.Error(ctx, "failed to clear expired session", "error", clearErr)
				}
				a.guard.Invalidate()
				printlnFn("Your session has expired. Please log in again.")
			}

		case <-ctx.Done():
			return
		}
	}
}

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/mentorlink/client/internal/client/api"
	"github.com/mentorlink/client/internal/client/config"
	"github.com/mentorlink/client/internal/client/credentials"
	"github.com/mentorlink/client/internal/client/routing"
	"github.com/mentorlink/client/internal/client/session"
	"github.com/mentorlink/client/internal/logging"
)

// ------------ input/output seams ------------

// stubIO queues lines for the text prompt, passwords for the password
// prompt, and records everything printed.
type stubIO struct {
	lines     []string
	passwords [][]byte
	printed   []string
}

func (s *stubIO) install(t *testing.T) {
	t.Helper()

	origText, origPassword, origPrintln := getSimpleText, getPassword, printlnFn
	t.Cleanup(func() {
		getSimpleText, getPassword, printlnFn = origText, origPassword, origPrintln
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(s.lines) == 0 {
			return "", io.EOF
		}
		line := s.lines[0]
		s.lines = s.lines[1:]
		return line, nil
	}
	getPassword = func(_ string, _ io.Writer) ([]byte, error) {
		if len(s.passwords) == 0 {
			return nil, io.EOF
		}
		pw := s.passwords[0]
		s.passwords = s.passwords[1:]
		return pw, nil
	}
	printlnFn = func(a ...any) {
		s.printed = append(s.printed, fmt.Sprintln(a...))
	}
}

func (s *stubIO) output() string {
	return strings.Join(s.printed, "")
}

// ------------ fake backend client ------------

type fakeAPI struct {
	loginSession *api.Session
	loginErr     error
	lastEmail    string
	lastPassword string

	registerSession *api.Session
	registerErr     error
	lastReg         api.Registration

	logoutErr   error
	logoutCalls int
	lastRefresh string

	verifyErr   error
	verifyCalls int

	requestErr      error
	requestCalls    int
	codeVerifyErrs  []error // popped per call; empty means success
	codeVerifyCalls int
	confirmErr      error
	confirmCalls    int
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*api.Session, error) {
	f.lastEmail, f.lastPassword = email, password
	return f.loginSession, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, reg api.Registration) (*api.Session, error) {
	f.lastReg = reg
	return f.registerSession, f.registerErr
}

func (f *fakeAPI) Logout(ctx context.Context, token, refreshToken string) error {
	f.logoutCalls++
	f.lastRefresh = refreshToken
	return f.logoutErr
}

func (f *fakeAPI) VerifySession(ctx context.Context, token string) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeAPI) RequestPasswordReset(ctx context.Context, email string) error {
	f.requestCalls++
	return f.requestErr
}

func (f *fakeAPI) VerifyResetCode(ctx context.Context, email, code string) error {
	f.codeVerifyCalls++
	if len(f.codeVerifyErrs) == 0 {
		return nil
	}
	err := f.codeVerifyErrs[0]
	f.codeVerifyErrs = f.codeVerifyErrs[1:]
	return err
}

func (f *fakeAPI) ConfirmPasswordReset(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	f.confirmCalls++
	return f.confirmErr
}

func (f *fakeAPI) Close() error { return nil }

// ------------ in-memory credential store ------------

type memStore struct {
	creds  *credentials.Credentials
	clears int
}

func (m *memStore) Save(ctx context.Context, c credentials.Credentials) error {
	m.creds = &c
	return nil
}

func (m *memStore) Read(ctx context.Context) (*credentials.Credentials, error) {
	if m.creds == nil || m.creds.Token == "" {
		return nil, nil
	}
	c := *m.creds
	return &c, nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.clears++
	m.creds = nil
	return nil
}

// ------------ app under test ------------

func newTestApp(client api.Client, store credentials.Store) *App {
	log := logging.New(io.Discard, "error")
	verifier := session.NewVerifier(client, store, log)
	guard := routing.NewGuard(store, verifier, log)

	return &App{
		config:   &config.Config{},
		log:      log,
		client:   client,
		store:    store,
		verifier: verifier,
		guard:    guard,
		routes:   routing.DefaultTable(),
		reader:   bufio.NewReader(strings.NewReader("")),
	}
}

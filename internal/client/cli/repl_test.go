package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// replStub records which commands the loop dispatched.
type replStub struct {
	loggedIn bool
	calls    []string
	openPath string
}

func (r *replStub) isLoggedIn() bool { return r.loggedIn }

func (r *replStub) Login(ctx context.Context) error {
	r.calls = append(r.calls, "login")
	return nil
}

func (r *replStub) Register(ctx context.Context) error {
	r.calls = append(r.calls, "register")
	return nil
}

func (r *replStub) Logout(ctx context.Context) error {
	r.calls = append(r.calls, "logout")
	return nil
}

func (r *replStub) Open(ctx context.Context, path string) error {
	r.calls = append(r.calls, "open")
	r.openPath = path
	return nil
}

func (r *replStub) Recover(ctx context.Context) error {
	r.calls = append(r.calls, "recover")
	return nil
}

func (r *replStub) WhoAmI(ctx context.Context) error {
	r.calls = append(r.calls, "whoami")
	return nil
}

func runScript(t *testing.T, stub *replStub, script string) *stubIO {
	t.Helper()
	io := &stubIO{}
	io.install(t)
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, scanner)
	return io
}

func TestREPL_DispatchesCommands(t *testing.T) {
	stub := &replStub{}
	runScript(t, stub, "login\nrecover\nwhoami\nexit\n")
	assert.Equal(t, []string{"login", "recover", "whoami"}, stub.calls)
}

func TestREPL_OpenPassesPath(t *testing.T) {
	stub := &replStub{}
	runScript(t, stub, "open /events\nexit\n")
	assert.Equal(t, []string{"open"}, stub.calls)
	assert.Equal(t, "/events", stub.openPath)
}

func TestREPL_OpenWithoutPathPrintsUsage(t *testing.T) {
	stub := &replStub{}
	io := runScript(t, stub, "open\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, io.output(), "Usage: open <path>")
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub := &replStub{}
	io := runScript(t, stub, "frobnicate\nexit\n")
	assert.Empty(t, stub.calls)
	assert.Contains(t, io.output(), "Unknown command")
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	out := runScript(t, &replStub{}, "help\nexit\n")
	assert.Contains(t, out.output(), "login, register, recover")

	out = runScript(t, &replStub{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, out.output(), "whoami, logout")
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	stub := &replStub{}
	runScript(t, stub, "whoami\n")
	assert.Equal(t, []string{"whoami"}, stub.calls)
}

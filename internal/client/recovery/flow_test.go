package recovery

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/client/internal/client/api"
	"github.com/mentorlink/client/internal/logging"
)

const (
	timeout      = time.Second
	pollInterval = time.Millisecond
)

// fakeResets implements ResetClient for flow tests.
type fakeResets struct {
	expectedCode string

	requestErr error
	confirmErr error

	requestCalls int
	verifyCalls  int
	confirmCalls int

	release chan struct{} // when non-nil, RequestPasswordReset blocks
}

func (f *fakeResets) RequestPasswordReset(ctx context.Context, email string) error {
	f.requestCalls++
	if f.release != nil {
		<-f.release
	}
	return f.requestErr
}

func (f *fakeResets) VerifyResetCode(ctx context.Context, email, code string) error {
	f.verifyCalls++
	if f.expectedCode != "" && code != f.expectedCode {
		return fmt.Errorf("%w: wrong code", api.ErrRejected)
	}
	return nil
}

func (f *fakeResets) ConfirmPasswordReset(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	f.confirmCalls++
	return f.confirmErr
}

func newTestFlow(t *testing.T, resets *fakeResets) *Flow {
	t.Helper()
	f := NewFlow(resets, logging.New(io.Discard, "error"))
	t.Cleanup(f.Close)
	return f
}

func expireCooldown(f *Flow) {
	f.cooldown.mu.Lock()
	f.cooldown.remaining = 0
	f.cooldown.mu.Unlock()
}

func TestFlow_EndToEnd(t *testing.T) {
	resets := &fakeResets{expectedCode: "123456"}
	f := newTestFlow(t, resets)
	ctx := context.Background()

	// forgot → verify
	require.NoError(t, f.SubmitEmail(ctx, "user@test.com"))
	assert.Equal(t, StageVerify, f.Stage())
	assert.Equal(t, 60, f.Cooldown().Remaining())

	// wrong code: rejection keeps the stage, surfaces a message
	f.Code().Paste("000000")
	err := f.SubmitCode(ctx)
	require.ErrorIs(t, err, api.ErrRejected)
	assert.Equal(t, StageVerify, f.Stage())
	assert.Equal(t, "wrong code", f.StageError())

	// correct code → reset
	f.Code().Paste("123456")
	require.NoError(t, f.SubmitCode(ctx))
	assert.Equal(t, StageReset, f.Stage())
	assert.Empty(t, f.StageError())

	// valid matching password → success
	f.SetNewPassword("Passw0rd")
	f.SetConfirmPassword("Passw0rd")
	require.True(t, f.CanSubmitReset())
	require.NoError(t, f.SubmitReset(ctx))
	assert.Equal(t, StageSuccess, f.Stage())
}

func TestSubmitEmail_EmptyEmailNoNetworkCall(t *testing.T) {
	resets := &fakeResets{}
	f := newTestFlow(t, resets)

	err := f.SubmitEmail(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmailRequired)
	assert.Zero(t, resets.requestCalls)
	assert.Equal(t, StageForgot, f.Stage())
	assert.NotEmpty(t, f.StageError())
}

func TestSubmitEmail_BackendFailureKeepsStage(t *testing.T) {
	resets := &fakeResets{requestErr: fmt.Errorf("%w: unknown email", api.ErrRejected)}
	f := newTestFlow(t, resets)

	err := f.SubmitEmail(context.Background(), "user@test.com")
	require.ErrorIs(t, err, api.ErrRejected)
	assert.Equal(t, StageForgot, f.Stage())
	assert.Equal(t, "unknown email", f.StageError())
	assert.False(t, f.Cooldown().IsActive())
}

func TestSubmitEmail_TransportFailureGenericMessage(t *testing.T) {
	resets := &fakeResets{requestErr: api.ErrUnavailable}
	f := newTestFlow(t, resets)

	err := f.SubmitEmail(context.Background(), "user@test.com")
	require.ErrorIs(t, err, api.ErrUnavailable)
	assert.Equal(t, transportFailureMessage, f.StageError())
}

func TestSubmitCode_IncompleteCodeNoNetworkCall(t *testing.T) {
	resets := &fakeResets{}
	f := newTestFlow(t, resets)
	require.NoError(t, f.SubmitEmail(context.Background(), "user@test.com"))

	f.Code().Paste("123")
	err := f.SubmitCode(context.Background())
	require.ErrorIs(t, err, ErrCodeIncomplete)
	assert.Zero(t, resets.verifyCalls)
}

func TestResend_BlockedWhileCooldownActive(t *testing.T) {
	resets := &fakeResets{}
	f := newTestFlow(t, resets)
	require.NoError(t, f.SubmitEmail(context.Background(), "user@test.com"))
	require.Equal(t, 1, resets.requestCalls)

	err := f.Resend(context.Background())
	require.ErrorIs(t, err, ErrCooldownActive)
	assert.Equal(t, 1, resets.requestCalls)
}

func TestResend_AfterCooldownRestartsIt(t *testing.T) {
	resets := &fakeResets{}
	f := newTestFlow(t, resets)
	require.NoError(t, f.SubmitEmail(context.Background(), "user@test.com"))

	expireCooldown(f)
	require.NoError(t, f.Resend(context.Background()))
	assert.Equal(t, 2, resets.requestCalls)
	assert.Equal(t, StageVerify, f.Stage())
	assert.Equal(t, 60, f.Cooldown().Remaining())
}

func TestSubmitReset_GatesBeforeNetwork(t *testing.T) {
	resets := &fakeResets{expectedCode: "123456"}
	f := newTestFlow(t, resets)
	ctx := context.Background()
	require.NoError(t, f.SubmitEmail(ctx, "user@test.com"))
	f.Code().Paste("123456")
	require.NoError(t, f.SubmitCode(ctx))

	f.SetNewPassword("weak")
	f.SetConfirmPassword("weak")
	require.ErrorIs(t, f.SubmitReset(ctx), ErrPasswordInvalid)

	f.SetNewPassword("Passw0rd")
	f.SetConfirmPassword("Passw0rd2")
	require.ErrorIs(t, f.SubmitReset(ctx), ErrPasswordMismatch)

	f.SetConfirmPassword("")
	require.ErrorIs(t, f.SubmitReset(ctx), ErrPasswordMismatch)

	assert.Zero(t, resets.confirmCalls)
	assert.Equal(t, StageReset, f.Stage())
}

func TestBack_ClearsOnlyCurrentStageError(t *testing.T) {
	resets := &fakeResets{expectedCode: "123456"}
	f := newTestFlow(t, resets)
	ctx := context.Background()
	require.NoError(t, f.SubmitEmail(ctx, "user@test.com"))

	f.Code().Paste("000000")
	_ = f.SubmitCode(ctx)
	require.NotEmpty(t, f.StageError())

	f.Back()
	assert.Equal(t, StageForgot, f.Stage())

	// The verify stage error was cleared on departure.
	f.mu.Lock()
	_, hasVerifyErr := f.stageErrs[StageVerify]
	f.mu.Unlock()
	assert.False(t, hasVerifyErr)
}

func TestBack_FromResetReturnsToVerify(t *testing.T) {
	resets := &fakeResets{expectedCode: "123456"}
	f := newTestFlow(t, resets)
	ctx := context.Background()
	require.NoError(t, f.SubmitEmail(ctx, "user@test.com"))
	f.Code().Paste("123456")
	require.NoError(t, f.SubmitCode(ctx))

	f.Back()
	assert.Equal(t, StageVerify, f.Stage())
}

func TestBack_IgnoredInForgotAndSuccess(t *testing.T) {
	f := newTestFlow(t, &fakeResets{})
	f.Back()
	assert.Equal(t, StageForgot, f.Stage())
}

func TestSubmitActions_RejectedInWrongStage(t *testing.T) {
	f := newTestFlow(t, &fakeResets{})
	ctx := context.Background()

	require.ErrorIs(t, f.SubmitCode(ctx), ErrInvalidStage)
	require.ErrorIs(t, f.Resend(ctx), ErrInvalidStage)
	require.ErrorIs(t, f.SubmitReset(ctx), ErrInvalidStage)
}

func TestSubmitEmail_RejectsWhilePending(t *testing.T) {
	release := make(chan struct{})
	resets := &fakeResets{release: release}
	f := newTestFlow(t, resets)

	done := make(chan error, 1)
	go func() { done <- f.SubmitEmail(context.Background(), "user@test.com") }()

	// Wait for the first call to be in flight.
	require.Eventually(t, f.Pending, timeout, pollInterval)

	err := f.SubmitEmail(context.Background(), "user@test.com")
	require.ErrorIs(t, err, ErrRequestPending)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, resets.requestCalls)
}

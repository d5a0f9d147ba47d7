// Package recovery drives the multi-stage password recovery process:
// request a code by email, verify the one-time code, set a new password,
// confirm. It owns the code input, the password validity flags, the resend
// cooldown, and per-stage error messages.
package recovery

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/mentorlink/client/internal/client/api"
	"github.com/mentorlink/client/internal/logging"
)

// Stage is the closed set of recovery stages. Transitions happen only
// through Flow methods, which makes invalid jumps impossible.
type Stage int

const (
	StageForgot Stage = iota
	StageVerify
	StageReset
	StageSuccess
)

func (s Stage) String() string {
	switch s {
	case StageForgot:
		return "forgot"
	case StageVerify:
		return "verify"
	case StageReset:
		return "reset"
	case StageSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// DefaultCooldownSeconds is the wait imposed between code sends.
const DefaultCooldownSeconds = 60

// Local validation errors. These are detected before any network call.
var (
	ErrInvalidStage     = errors.New("action not valid in current stage")
	ErrEmailRequired    = errors.New("email is required")
	ErrCodeIncomplete   = errors.New("code is incomplete")
	ErrPasswordInvalid  = errors.New("password does not meet requirements")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrCooldownActive   = errors.New("resend not allowed yet")
	ErrRequestPending   = errors.New("request already in progress")
)

// transportFailureMessage is shown for errors where the request never
// completed; the user can simply retry.
const transportFailureMessage = "Something went wrong. Please try again."

// ResetClient is the slice of the backend client the flow consumes.
type ResetClient interface {
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code string) error
	ConfirmPasswordReset(ctx context.Context, email, code, newPassword, confirmPassword string) error
}

// Flow is the password recovery state machine. Create a fresh Flow when the
// recovery view mounts and Close it on teardown.
//
// Error policy: a backend rejection surfaces a stage-local message and
// leaves the stage unchanged; the user retries or goes back explicitly.
type Flow struct {
	resets          ResetClient
	log             logging.Logger
	cooldownSeconds int

	mu              sync.Mutex
	stage           Stage
	email           string
	code            *CodeInput
	newPassword     string
	confirmPassword string
	stageErrs       map[Stage]string
	pending         bool
	cooldown        *Cooldown
}

// NewFlow builds a flow in the forgot stage with a one-second cooldown tick.
func NewFlow(resets ResetClient, log logging.Logger) *Flow {
	return &Flow{
		resets:          resets,
		log:             log.With("component", "recovery"),
		cooldownSeconds: DefaultCooldownSeconds,
		stage:           StageForgot,
		code:            NewCodeInput(),
		stageErrs:       make(map[Stage]string),
		cooldown:        NewCooldown(time.Second),
	}
}

// Stage returns the current stage.
func (f *Flow) Stage() Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stage
}

// Email returns the address the recovery code was requested for.
func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Code exposes the one-time-code input. Only the code manager mutates the
// digit cells; the flow reads them at submission time.
func (f *Flow) Code() *CodeInput {
	return f.code
}

// Cooldown exposes the resend cooldown for display.
func (f *Flow) Cooldown() *Cooldown {
	return f.cooldown
}

// Pending reports whether a network call for this flow is in flight.
// Submission actions are rejected while pending.
func (f *Flow) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// StageError returns the error message local to the current stage, or "".
func (f *Flow) StageError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stageErrs[f.stage]
}

// SetNewPassword records a keystroke-level update of the new password.
func (f *Flow) SetNewPassword(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newPassword = s
}

// SetConfirmPassword records the confirmation field.
func (f *Flow) SetConfirmPassword(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmPassword = s
}

// Checks evaluates the password requirements for the current new password.
func (f *Flow) Checks() Checks {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CheckPassword(f.newPassword)
}

// CanSubmitReset reports whether the reset form may be submitted: all three
// checks pass, the confirmation is non-empty, and both fields match.
func (f *Flow) CanSubmitReset() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return CheckPassword(f.newPassword).AllPassed() &&
		f.confirmPassword != "" &&
		f.newPassword == f.confirmPassword
}

// SubmitEmail requests a recovery code for email. On success the flow
// advances to the verify stage and the resend cooldown starts.
func (f *Flow) SubmitEmail(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)

	f.mu.Lock()
	if f.stage != StageForgot {
		f.mu.Unlock()
		return ErrInvalidStage
	}
	if email == "" {
		f.stageErrs[StageForgot] = "Please enter your email address."
		f.mu.Unlock()
		return ErrEmailRequired
	}
	if f.pending {
		f.mu.Unlock()
		return ErrRequestPending
	}
	f.pending = true
	f.email = email
	f.mu.Unlock()

	err := f.resets.RequestPasswordReset(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if err != nil {
		f.stageErrs[StageForgot] = failureMessage(err)
		return err
	}

	delete(f.stageErrs, StageForgot)
	f.stage = StageVerify
	f.cooldown.Start(f.cooldownSeconds)
	f.log.Info(ctx, "recovery code requested", "stage", f.stage.String())
	return nil
}

// Resend requests the code again. Allowed only in the verify stage and only
// once the cooldown has run out; a successful resend restarts it.
func (f *Flow) Resend(ctx context.Context) error {
	f.mu.Lock()
	if f.stage != StageVerify {
		f.mu.Unlock()
		return ErrInvalidStage
	}
	if f.cooldown.IsActive() {
		f.mu.Unlock()
		return ErrCooldownActive
	}
	if f.pending {
		f.mu.Unlock()
		return ErrRequestPending
	}
	f.pending = true
	email := f.email
	f.mu.Unlock()

	err := f.resets.RequestPasswordReset(ctx, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if err != nil {
		f.stageErrs[StageVerify] = failureMessage(err)
		return err
	}

	delete(f.stageErrs, StageVerify)
	f.cooldown.Start(f.cooldownSeconds)
	return nil
}

// SubmitCode sends the entered code for verification. On success the flow
// advances to the reset stage.
func (f *Flow) SubmitCode(ctx context.Context) error {
	f.mu.Lock()
	if f.stage != StageVerify {
		f.mu.Unlock()
		return ErrInvalidStage
	}
	if !f.code.IsComplete() {
		f.stageErrs[StageVerify] = "Please enter the full 6-digit code."
		f.mu.Unlock()
		return ErrCodeIncomplete
	}
	if f.pending {
		f.mu.Unlock()
		return ErrRequestPending
	}
	f.pending = true
	email, code := f.email, f.code.Joined()
	f.mu.Unlock()

	err := f.resets.VerifyResetCode(ctx, email, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if err != nil {
		f.stageErrs[StageVerify] = failureMessage(err)
		return err
	}

	delete(f.stageErrs, StageVerify)
	f.stage = StageReset
	return nil
}

// SubmitReset sends the new password. On success the flow reaches its
// terminal success stage and the cooldown stops.
func (f *Flow) SubmitReset(ctx context.Context) error {
	f.mu.Lock()
	if f.stage != StageReset {
		f.mu.Unlock()
		return ErrInvalidStage
	}
	if !CheckPassword(f.newPassword).AllPassed() {
		f.stageErrs[StageReset] = "Password does not meet the requirements."
		f.mu.Unlock()
		return ErrPasswordInvalid
	}
	if f.confirmPassword == "" || f.newPassword != f.confirmPassword {
		f.stageErrs[StageReset] = "Passwords do not match."
		f.mu.Unlock()
		return ErrPasswordMismatch
	}
	if f.pending {
		f.mu.Unlock()
		return ErrRequestPending
	}
	f.pending = true
	email, code := f.email, f.code.Joined()
	newPass, confirm := f.newPassword, f.confirmPassword
	f.mu.Unlock()

	err := f.resets.ConfirmPasswordReset(ctx, email, code, newPass, confirm)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false
	if err != nil {
		f.stageErrs[StageReset] = failureMessage(err)
		return err
	}

	delete(f.stageErrs, StageReset)
	f.stage = StageSuccess
	f.cooldown.Stop()
	f.log.Info(ctx, "password reset completed")
	return nil
}

// Back steps to the previous stage: verify→forgot, reset→verify. It clears
// only the departing stage's error message. Other stages ignore it.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.stage {
	case StageVerify:
		delete(f.stageErrs, StageVerify)
		f.stage = StageForgot
	case StageReset:
		delete(f.stageErrs, StageReset)
		f.stage = StageVerify
	}
}

// Close tears the flow down, cancelling the cooldown so no stale tick can
// leak into a freshly mounted flow.
func (f *Flow) Close() {
	f.cooldown.Stop()
}

// failureMessage converts a backend error into the stage-local message shown
// to the user.
func failureMessage(err error) string {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		return transportFailureMessage
	case errors.Is(err, api.ErrRejected):
		msg := strings.TrimPrefix(err.Error(), api.ErrRejected.Error()+": ")
		if msg == "" || msg == api.ErrRejected.Error() {
			return "The request was refused."
		}
		return msg
	case errors.Is(err, api.ErrUnauthorized):
		return "The request was not authorized."
	default:
		return transportFailureMessage
	}
}

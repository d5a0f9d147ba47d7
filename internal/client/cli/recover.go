package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mentorlink/client/internal/client/recovery"
)

// Recover walks the user through the password recovery flow: request a
// code, verify it, set a new password. The flow is created fresh here and
// closed on return, so no cooldown timer survives the view.
func (a *App) Recover(ctx context.Context) error {
	flow := recovery.NewFlow(a.client, a.log)
	defer flow.Close()

	for {
		switch flow.Stage() {
		case recovery.StageForgot:
			if done, err := a.recoverForgot(ctx, flow); done || err != nil {
				return err
			}
		case recovery.StageVerify:
			if done, err := a.recoverVerify(ctx, flow); done || err != nil {
				return err
			}
		case recovery.StageReset:
			if done, err := a.recoverReset(ctx, flow); done || err != nil {
				return err
			}
		case recovery.StageSuccess:
			printlnFn("Password updated. You can now log in with your new password.")
			return nil
		}
	}
}

func (a *App) recoverForgot(ctx context.Context, flow *recovery.Flow) (bool, error) {
	email, err := getSimpleText(a.reader, "Enter your account email (empty line to cancel)", os.Stdout)
	if err != nil {
		return true, err
	}
	if email == "" {
		return true, nil
	}

	if err := flow.SubmitEmail(ctx, email); err != nil {
		printlnFn(flow.StageError())
		return false, nil
	}
	printlnFn(fmt.Sprintf("A 6-digit code was sent to %s.", flow.Email()))
	return false, nil
}

func (a *App) recoverVerify(ctx context.Context, flow *recovery.Flow) (bool, error) {
	prompt := "Enter the 6-digit code ('resend', 'back', empty line to cancel)"
	line, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return true, err
	}

	switch line {
	case "":
		return true, nil

	case "back":
		flow.Back()
		return false, nil

	case "resend":
		if err := flow.Resend(ctx); err != nil {
			if errors.Is(err, recovery.ErrCooldownActive) {
				printlnFn(fmt.Sprintf("Please wait %d seconds before resending.", flow.Cooldown().Remaining()))
			} else {
				printlnFn(flow.StageError())
			}
			return false, nil
		}
		printlnFn("Code sent again.")
		return false, nil

	default:
		flow.Code().Clear()
		flow.Code().Paste(line)
		if err := flow.SubmitCode(ctx); err != nil {
			printlnFn(flow.StageError())
			return false, nil
		}
		return false, nil
	}
}

func (a *App) recoverReset(ctx context.Context, flow *recovery.Flow) (bool, error) {
	password, err := getPassword("New password (empty to go back)", os.Stdout)
	if err != nil {
		return true, err
	}
	defer wipe(password)

	if len(password) == 0 {
		flow.Back()
		return false, nil
	}

	flow.SetNewPassword(string(password))
	checks := flow.Checks()
	if !checks.AllPassed() {
		printlnFn("Password strength: " + checks.Strength().String())
		if !checks.Length {
			printlnFn("  - must be at least 8 characters")
		}
		if !checks.HasDigit {
			printlnFn("  - must contain a digit")
		}
		if !checks.MixedCase {
			printlnFn("  - must mix lowercase and uppercase letters")
		}
		return false, nil
	}

	confirm, err := getPassword("Repeat new password", os.Stdout)
	if err != nil {
		return true, err
	}
	defer wipe(confirm)

	flow.SetConfirmPassword(string(confirm))
	if !flow.CanSubmitReset() {
		printlnFn("Passwords do not match.")
		return false, nil
	}

	if err := flow.SubmitReset(ctx); err != nil {
		printlnFn(flow.StageError())
	}
	return false, nil
}

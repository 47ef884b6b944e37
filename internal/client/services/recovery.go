package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

const (
	msgCodeFailed     = "Failed to send reset code. Please try again."
	msgCodeSent       = "Reset code sent! Check your email."
	msgResetNoPattern = "Please draw your new pattern."
	msgResetFailed    = "Failed to reset pattern. Please verify the code and try again."
	msgResetSucceeded = "Pattern reset successfully! You can now log in with your new pattern."
)

// RecoveryStep is the step of a RecoveryFlow.
type RecoveryStep int

const (
	RecoveryRequestingCode RecoveryStep = iota
	RecoveryAwaitingReset
	RecoveryReset
)

func (s RecoveryStep) String() string {
	switch s {
	case RecoveryRequestingCode:
		return "requesting-code"
	case RecoveryAwaitingReset:
		return "awaiting-reset"
	case RecoveryReset:
		return "reset"
	default:
		return fmt.Sprintf("RecoveryStep(%d)", int(s))
	}
}

// RecoveryFlow resets a forgotten pattern with an emailed one-time code.
// There is no way back from AwaitingReset.
//
// A pattern captured for a failed reset stays attached to the flow and is
// sent again on the next SubmitReset unless the user redraws or clears it.
type RecoveryFlow struct {
	client client.Client
	logger logging.Logger

	mu      sync.Mutex
	step    RecoveryStep
	email   string
	code    string
	pattern capture.Pattern
	errMsg  string
	notice  string
	pending int
}

func NewRecoveryFlow(c client.Client, logger logging.Logger) *RecoveryFlow {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &RecoveryFlow{client: c, logger: logger.With("flow", "recovery")}
}

// RequestCode asks the collaborator to send a reset code to email.
func (f *RecoveryFlow) RequestCode(ctx context.Context, email string) error {
	f.mu.Lock()
	if f.step != RecoveryRequestingCode {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	f.email = email
	f.errMsg = ""
	f.notice = ""
	f.mu.Unlock()

	done := f.begin()
	defer done()

	log := f.logger.With("email", email)
	res, err := f.client.ForgotPattern(ctx, models.ForgotPatternRequest{Email: email})
	if err != nil {
		log.Error(ctx, "reset code request failed", "error", err)
		return f.fail(transportFailure(msgCodeFailed, err))
	}
	if res.Failed() {
		log.Warn(ctx, "reset code request rejected", "reason", res.Message())
		return f.fail(rejected(res.Message()))
	}

	f.mu.Lock()
	f.step = RecoveryAwaitingReset
	f.notice = msgCodeSent
	f.mu.Unlock()

	log.Info(ctx, "reset code issued")
	return nil
}

// OnPatternChanged is the capture.Listener for the new-pattern pad.
func (f *RecoveryFlow) OnPatternChanged(ev capture.PatternChanged) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == RecoveryAwaitingReset {
		f.pattern = ev.Pattern
	}
}

// SubmitReset sends {email, code, pattern}. On success the flow is done and
// the user goes to login. On failure it stays at AwaitingReset with the
// pattern untouched.
func (f *RecoveryFlow) SubmitReset(ctx context.Context, code string) (Screen, error) {
	f.mu.Lock()
	if f.step != RecoveryAwaitingReset {
		f.mu.Unlock()
		return ScreenNone, ErrInvalidTransition
	}
	f.code = code
	f.errMsg = ""
	f.notice = ""
	email, pattern := f.email, f.pattern
	f.mu.Unlock()

	if !pattern.Present() {
		return ScreenNone, f.fail(validationFailure(msgResetNoPattern))
	}

	done := f.begin()
	defer done()

	log := f.logger.With("email", email, "pattern", cryptox.Short([]byte(pattern)))
	res, err := f.client.ResetPattern(ctx, models.ResetPatternRequest{
		Email:   email,
		Code:    code,
		Pattern: pattern,
	})
	if err != nil {
		log.Error(ctx, "reset call failed", "error", err)
		return ScreenNone, f.fail(transportFailure(msgResetFailed, err))
	}
	if res.Failed() {
		log.Warn(ctx, "reset rejected", "reason", res.Message())
		return ScreenNone, f.fail(rejected(res.Message()))
	}

	f.mu.Lock()
	f.step = RecoveryReset
	f.notice = msgResetSucceeded
	f.mu.Unlock()

	log.Info(ctx, "pattern reset")
	return ScreenLogin, nil
}

func (f *RecoveryFlow) Step() RecoveryStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *RecoveryFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

// Code is the code sent with the last reset attempt.
func (f *RecoveryFlow) Code() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code
}

// Pattern is the pattern the next SubmitReset would send.
func (f *RecoveryFlow) Pattern() capture.Pattern {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pattern
}

func (f *RecoveryFlow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Notice is the informational message of the last successful step.
func (f *RecoveryFlow) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// Busy reports whether a collaborator call is outstanding. It is for
// display only and does not block further submissions.
func (f *RecoveryFlow) Busy() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending > 0
}

func (f *RecoveryFlow) begin() func() {
	f.mu.Lock()
	f.pending++
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.pending--
		f.mu.Unlock()
	}
}

func (f *RecoveryFlow) fail(e *StepError) error {
	f.mu.Lock()
	f.errMsg = e.Message
	f.mu.Unlock()
	return e
}

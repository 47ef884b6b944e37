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
	msgLookupFailed   = "Failed to find user. Please check email."
	msgLoginNoPattern = "Please draw the pattern."
	msgVerifyFailed   = "Verification failed."
)

// LoginStep is the step of a LoginFlow.
type LoginStep int

const (
	LoginEmailEntered LoginStep = iota
	LoginAwaitingPattern
	LoginAuthenticated
)

func (s LoginStep) String() string {
	switch s {
	case LoginEmailEntered:
		return "email-entered"
	case LoginAwaitingPattern:
		return "awaiting-pattern"
	case LoginAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("LoginStep(%d)", int(s))
	}
}

// LoginFlow is the two-step challenge-response: identity lookup first, then
// pattern verification. Only a successful verification writes Session State.
//
// A verification still in flight when Back is called is discarded on
// arrival: it neither writes Session State nor advances the flow.
type LoginFlow struct {
	client   client.Client
	sessions SessionStore
	logger   logging.Logger

	mu      sync.Mutex
	step    LoginStep
	email   string
	pattern capture.Pattern
	user    models.User
	errMsg  string
}

func NewLoginFlow(c client.Client, sessions SessionStore, logger logging.Logger) *LoginFlow {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &LoginFlow{client: c, sessions: sessions, logger: logger.With("flow", "login")}
}

// SubmitEmail looks the identity up. On success the flow waits for a
// pattern; on failure it stays at EmailEntered with the error shown.
func (f *LoginFlow) SubmitEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	if f.step != LoginEmailEntered {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	f.email = email
	f.errMsg = ""
	f.mu.Unlock()

	log := f.logger.With("email", email)
	res, err := f.client.LoginChallenge(ctx, models.LoginChallengeRequest{Email: email})
	if err != nil {
		log.Error(ctx, "login challenge failed", "error", err)
		return f.fail(transportFailure(msgLookupFailed, err))
	}
	if res.Failed() {
		log.Warn(ctx, "login challenge rejected", "reason", res.Message())
		return f.fail(rejected(res.Message()))
	}

	f.mu.Lock()
	f.step = LoginAwaitingPattern
	f.pattern = capture.NoPattern
	f.mu.Unlock()

	log.Info(ctx, "identity found, awaiting pattern")
	return nil
}

// OnPatternChanged is the capture.Listener for the step-two pad. Events
// outside AwaitingPattern are ignored because no pad is shown then.
func (f *LoginFlow) OnPatternChanged(ev capture.PatternChanged) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step == LoginAwaitingPattern {
		f.pattern = ev.Pattern
	}
}

// SubmitPattern verifies the captured pattern. Success stores the returned
// identity in Session State and leads to the welcome surface. Failure keeps
// the flow at AwaitingPattern so the user can redraw and retry.
func (f *LoginFlow) SubmitPattern(ctx context.Context) (Screen, error) {
	f.mu.Lock()
	if f.step != LoginAwaitingPattern {
		f.mu.Unlock()
		return ScreenNone, ErrInvalidTransition
	}
	f.errMsg = ""
	email, pattern := f.email, f.pattern
	f.mu.Unlock()

	if !pattern.Present() {
		return ScreenNone, f.fail(validationFailure(msgLoginNoPattern))
	}

	log := f.logger.With("email", email, "pattern", cryptox.Short([]byte(pattern)))
	res, err := f.client.Verify(ctx, models.VerifyRequest{Email: email, Pattern: pattern})
	if err != nil {
		log.Error(ctx, "verification call failed", "error", err)
		return ScreenNone, f.fail(transportFailure(msgVerifyFailed, err))
	}
	if res.Failed() {
		log.Warn(ctx, "pattern rejected", "reason", res.Message())
		return ScreenNone, f.fail(rejected(res.Message()))
	}

	if f.stale(email) {
		log.Warn(ctx, "verification answered after the flow moved back, discarded")
		return ScreenNone, ErrInvalidTransition
	}

	verified := res.Payload()
	if err := f.sessions.Set(ctx, models.Session{User: verified.User, Token: verified.Token}); err != nil {
		log.Error(ctx, "storing session failed", "error", err)
		return ScreenNone, f.fail(transportFailure(msgVerifyFailed, err))
	}

	f.mu.Lock()
	if f.step == LoginEmailEntered || f.email != email {
		f.mu.Unlock()
		return ScreenNone, ErrInvalidTransition
	}
	f.step = LoginAuthenticated
	f.user = verified.User
	f.mu.Unlock()

	log.Info(ctx, "authenticated", "match_percentage", verified.MatchPercentage)
	return ScreenWelcome, nil
}

// Back returns from AwaitingPattern to EmailEntered, discarding the captured
// pattern and keeping the email.
func (f *LoginFlow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != LoginAwaitingPattern {
		return ErrInvalidTransition
	}
	f.step = LoginEmailEntered
	f.pattern = capture.NoPattern
	f.errMsg = ""
	return nil
}

func (f *LoginFlow) Step() LoginStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *LoginFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *LoginFlow) Pattern() capture.Pattern {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pattern
}

// User is the authenticated identity once the flow reached Authenticated.
func (f *LoginFlow) User() (models.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.user, f.step == LoginAuthenticated
}

func (f *LoginFlow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// stale reports whether the flow left the pattern step for email while a
// verification was outstanding.
func (f *LoginFlow) stale(email string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step == LoginEmailEntered || f.email != email
}

func (f *LoginFlow) fail(e *StepError) error {
	f.mu.Lock()
	f.errMsg = e.Message
	f.mu.Unlock()
	return e
}

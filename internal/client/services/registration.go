package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gatekeeper/internal/capture"
	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/cryptox"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

const (
	msgRegisterNoPattern = "Please draw your security pattern."
	msgRegisterFailed    = "Registration failed. Please try again."
)

// RegistrationState is the step of a RegistrationFlow.
type RegistrationState int

const (
	RegistrationEditing RegistrationState = iota
	RegistrationDone
)

func (s RegistrationState) String() string {
	if s == RegistrationDone {
		return "registered"
	}
	return "editing"
}

// RegistrationFlow submits a new identity and its pattern in one shot.
type RegistrationFlow struct {
	client client.Client
	logger logging.Logger

	mu      sync.Mutex
	state   RegistrationState
	pattern capture.Pattern
	errMsg  string
}

func NewRegistrationFlow(c client.Client, logger logging.Logger) *RegistrationFlow {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &RegistrationFlow{client: c, logger: logger.With("flow", "registration")}
}

// OnPatternChanged is the capture.Listener for the registration pad.
func (f *RegistrationFlow) OnPatternChanged(ev capture.PatternChanged) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pattern = ev.Pattern
}

// Submit sends {name, email, pattern} to the registration collaborator.
// Success moves to the login entry point; any failure leaves the form in
// place for another attempt.
func (f *RegistrationFlow) Submit(ctx context.Context, name, email string) (Screen, error) {
	f.mu.Lock()
	if f.state != RegistrationEditing {
		f.mu.Unlock()
		return ScreenNone, ErrInvalidTransition
	}
	f.errMsg = ""
	draft := models.IdentityDraft{Name: name, Email: email, Pattern: f.pattern}
	f.mu.Unlock()

	if !draft.Submittable() {
		return ScreenNone, f.fail(validationFailure(msgRegisterNoPattern))
	}

	log := f.logger.With("email", email, "pattern", cryptox.Short([]byte(draft.Pattern)))
	res, err := f.client.Register(ctx, models.RegisterRequest{
		Name:    draft.Name,
		Email:   draft.Email,
		Pattern: draft.Pattern,
	})
	if err != nil {
		log.Error(ctx, "registration call failed", "error", err)
		return ScreenNone, f.fail(transportFailure(msgRegisterFailed, err))
	}
	if res.Failed() {
		log.Warn(ctx, "registration rejected", "reason", res.Message())
		return ScreenNone, f.fail(rejected(res.Message()))
	}

	f.mu.Lock()
	f.state = RegistrationDone
	f.mu.Unlock()

	log.Info(ctx, "identity registered")
	return ScreenLogin, nil
}

// State reports the current step.
func (f *RegistrationFlow) State() RegistrationState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Pattern is the most recently captured pattern.
func (f *RegistrationFlow) Pattern() capture.Pattern {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pattern
}

// ErrorMessage is the error currently shown on the form.
func (f *RegistrationFlow) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

func (f *RegistrationFlow) fail(e *StepError) error {
	f.mu.Lock()
	f.errMsg = e.Message
	f.mu.Unlock()
	return e
}

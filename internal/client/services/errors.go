package services

import "errors"

var (
	// ErrPatternRequired is wrapped by validation failures: the step needs a
	// drawn pattern and none is present.
	ErrPatternRequired = errors.New("pattern required")

	// ErrRejected is wrapped by failures the collaborator reported.
	ErrRejected = errors.New("rejected by collaborator")

	// ErrInvalidTransition is returned when an operation is not allowed in
	// the flow's current step.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNoSession is returned when an operation needs an authenticated
	// identity and Session State is empty.
	ErrNoSession = errors.New("no authenticated session")
)

// FailureKind classifies why a step did not advance.
type FailureKind int

const (
	// KindValidation: rejected locally, no collaborator was called.
	KindValidation FailureKind = iota + 1
	// KindRejected: the collaborator answered with an error message.
	KindRejected
	// KindTransport: the call itself failed.
	KindTransport
)

func (k FailureKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRejected:
		return "rejected"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// StepError is returned by a flow step that did not advance.
type StepError struct {
	Kind FailureKind
	// Message is the user-facing text: verbatim from the collaborator for
	// KindRejected, fixed otherwise.
	Message string
	Err     error
}

func (e *StepError) Error() string { return e.Message }

func (e *StepError) Unwrap() error { return e.Err }

func validationFailure(msg string) *StepError {
	return &StepError{Kind: KindValidation, Message: msg, Err: ErrPatternRequired}
}

func rejected(msg string) *StepError {
	return &StepError{Kind: KindRejected, Message: msg, Err: ErrRejected}
}

func transportFailure(msg string, err error) *StepError {
	return &StepError{Kind: KindTransport, Message: msg, Err: err}
}

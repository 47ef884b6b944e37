package client

// Result is the outcome of a collaborator call that got an answer: either a
// success carrying a payload or a failure carrying the collaborator's
// message.
type Result[T any] struct {
	payload T
	message string
	failed  bool
}

// Success wraps a successful payload.
func Success[T any](payload T) Result[T] {
	return Result[T]{payload: payload}
}

// Failure wraps a collaborator-reported error message.
func Failure[T any](message string) Result[T] {
	return Result[T]{message: message, failed: true}
}

// Failed reports whether the collaborator rejected the call.
func (r Result[T]) Failed() bool { return r.failed }

// Message is the collaborator's error text; empty on success.
func (r Result[T]) Message() string { return r.message }

// Payload is the success body; the zero value on failure.
func (r Result[T]) Payload() T { return r.payload }

package client

import "errors"

var (
	// ErrUnavailable marks transport failures: the call did not complete or
	// its answer could not be read.
	ErrUnavailable = errors.New("collaborator unavailable")

	// ErrMalformedResponse is wrapped together with ErrUnavailable when the
	// body is not the JSON the contract promises.
	ErrMalformedResponse = errors.New("malformed response")
)

// Package client talks to the gatekeeper collaborators.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (Client) for the five auth calls
//     (register, login-challenge, verify, forgot-pattern, reset-pattern)
//     plus score submission.
//  2. HTTPClient, the JSON-over-HTTP implementation. Every call carries an
//     X-Request-ID and honours the configured timeout.
//  3. Local database bootstrap (InitDatabase, RunMigrations) applying the
//     embedded goose migrations to an SQLite file.
//
// # Results and errors
//
// A call that reaches the collaborator and gets a readable answer yields a
// Result: Success(payload) or Failure(message). The decision is made once,
// here, from the presence of an "error" field in the body; callers never
// inspect raw responses. A call that cannot complete (network failure,
// unreadable body) returns an error wrapping ErrUnavailable instead.
package client

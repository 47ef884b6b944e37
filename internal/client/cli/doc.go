// Package cli provides the interactive gatekeeper command-line client.
//
// It wires configuration, local Session State, the collaborator API client
// and the pattern capture surface into a REPL. Patterns are drawn by
// replaying stroke scripts (see capture.Script) onto the surface; every
// replayed stroke is emitted to the active flow exactly as a pointer stroke
// would be.
//
// Commands:
//   - register: name, email and pattern
//   - login: email, then pattern ("back" returns to the email step)
//   - forgot: request a reset code, then enter it with a new pattern
//   - welcome: show the stored identity
//   - play: memory game for authenticated users; the score is submitted
//   - logout: clear Session State
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

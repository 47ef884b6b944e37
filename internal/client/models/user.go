// Package models holds the client's domain and wire types.
package models

import "github.com/dmitrijs2005/gatekeeper/internal/capture"

// User is the identity returned by a successful verification and kept in
// Session State.
type User struct {
	ID    int64  `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// IdentityDraft is what the registration form collects. It cannot be
// submitted while Pattern is absent.
type IdentityDraft struct {
	Name    string
	Email   string
	Pattern capture.Pattern
}

// Submittable reports whether the draft carries a pattern.
func (d IdentityDraft) Submittable() bool {
	return d.Pattern.Present()
}

// Session is the durable Session State record: the authenticated identity
// and the opaque token issued with it.
type Session struct {
	User  User
	Token string
}

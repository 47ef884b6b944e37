// Package models holds the records the development server persists.
package models

import "time"

// User is a registered identity. The pattern itself is never stored, only
// its digest.
type User struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PatternDigest string    `json:"pattern_digest"`
	CreatedAt     time.Time `json:"created_at"`
}

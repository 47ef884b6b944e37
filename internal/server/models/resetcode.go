package models

import "time"

// ResetCode is an outstanding pattern reset for Email. Only the bcrypt hash
// of the code is kept.
type ResetCode struct {
	Email     string    `json:"email"`
	CodeHash  []byte    `json:"code_hash"`
	Expires   time.Time `json:"expires"`
	CreatedAt time.Time `json:"created_at"`
}

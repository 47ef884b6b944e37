package models

import "time"

type Score struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Score     int       `json:"score"`
	Moves     int       `json:"moves"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import "github.com/dmitrijs2005/gatekeeper/internal/capture"

type RegisterRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Pattern capture.Pattern `json:"image_data,omitempty"`
}

type LoginChallengeRequest struct {
	Email string `json:"email"`
}

type VerifyRequest struct {
	Email   string          `json:"email"`
	Pattern capture.Pattern `json:"image_data,omitempty"`
}

type ForgotPatternRequest struct {
	Email string `json:"email"`
}

type ResetPatternRequest struct {
	Email   string          `json:"email"`
	Code    string          `json:"code"`
	Pattern capture.Pattern `json:"image_data,omitempty"`
}

type ScoreRequest struct {
	Email string `json:"email"`
	Score int    `json:"score"`
	Moves int    `json:"moves"`
}

// Ack is the opaque success body of calls whose payload the client ignores.
type Ack struct {
	Message string `json:"message,omitempty"`
}

// VerifyResponse is the success body of the verify call.
type VerifyResponse struct {
	Message         string  `json:"message,omitempty"`
	Token           string  `json:"token,omitempty"`
	User            User    `json:"user"`
	Distance        int     `json:"distance,omitempty"`
	MatchPercentage float64 `json:"match_percentage,omitempty"`
}

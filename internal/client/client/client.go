package client

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
)

// Client is the collaborator contract consumed by the flows.
// A non-nil error always means a transport failure.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) (Result[models.Ack], error)
	LoginChallenge(ctx context.Context, req models.LoginChallengeRequest) (Result[models.Ack], error)
	Verify(ctx context.Context, req models.VerifyRequest) (Result[models.VerifyResponse], error)
	ForgotPattern(ctx context.Context, req models.ForgotPatternRequest) (Result[models.Ack], error)
	ResetPattern(ctx context.Context, req models.ResetPatternRequest) (Result[models.Ack], error)
	SubmitScore(ctx context.Context, token string, req models.ScoreRequest) (Result[models.Ack], error)
}

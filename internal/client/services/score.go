package services

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/client/client"
	"github.com/dmitrijs2005/gatekeeper/internal/client/models"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
)

const msgScoreFailed = "Failed to save score."

// ScoreService records finished game scores for the authenticated identity.
type ScoreService struct {
	client   client.Client
	sessions SessionStore
	logger   logging.Logger
}

func NewScoreService(c client.Client, sessions SessionStore, logger logging.Logger) *ScoreService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &ScoreService{client: c, sessions: sessions, logger: logger.With("component", "score")}
}

// Submit posts the score under the stored identity.
func (s *ScoreService) Submit(ctx context.Context, score, moves int) error {
	sess, ok, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}

	log := s.logger.With("email", sess.User.Email, "score", score, "moves", moves)
	res, err := s.client.SubmitScore(ctx, sess.Token, models.ScoreRequest{
		Email: sess.User.Email,
		Score: score,
		Moves: moves,
	})
	if err != nil {
		log.Error(ctx, "score submission failed", "error", err)
		return transportFailure(msgScoreFailed, err)
	}
	if res.Failed() {
		log.Warn(ctx, "score rejected", "reason", res.Message())
		return rejected(res.Message())
	}

	log.Info(ctx, "score saved")
	return nil
}

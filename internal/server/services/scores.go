package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/repomanager"
)

// ScoreService records game results for registered identities.
type ScoreService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewScoreService(m repomanager.RepositoryManager, logger logging.Logger) *ScoreService {
	if logger == nil {
		logger = logging.NopLogger{}
	}
	return &ScoreService{repomanager: m, logger: logger.With("module", "score_service")}
}

func (s *ScoreService) Record(ctx context.Context, email string, score, moves int) (*models.Score, error) {
	if email == "" || score < 0 || moves < 0 {
		return nil, common.ErrorValidation
	}

	var saved *models.Score
	err := s.repomanager.DB().Update(func(tx *bolt.Tx) error {
		if _, err := s.repomanager.Users(tx).GetUserByEmail(ctx, email); err != nil {
			return err
		}
		var err error
		saved, err = s.repomanager.Scores(tx).Create(ctx, &models.Score{Email: email, Score: score, Moves: moves})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error saving score: %w", err)
	}

	s.logger.Info(ctx, "score recorded", "email", email, "score", score, "moves", moves)
	return saved, nil
}

func (s *ScoreService) List(ctx context.Context, email string) ([]*models.Score, error) {
	var out []*models.Score
	err := s.repomanager.DB().View(func(tx *bolt.Tx) error {
		var err error
		out, err = s.repomanager.Scores(tx).ListByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("error listing scores: %w", err)
	}
	return out, nil
}

// Package scores declares the repository contract for finished game scores.
package scores

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, score *models.Score) (*models.Score, error)
	// ListByEmail returns the scores of email, oldest first.
	ListByEmail(ctx context.Context, email string) ([]*models.Score, error)
}

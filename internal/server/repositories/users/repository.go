// Package users declares the repository contract for registered identities.
package users

import (
	"context"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

type Repository interface {
	// Create stores a new user and assigns its ID. An email that is already
	// registered yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByEmail returns common.ErrorNotFound when nobody registered email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePatternDigest replaces the stored pattern digest of email.
	UpdatePatternDigest(ctx context.Context, email string, digest string) error
}

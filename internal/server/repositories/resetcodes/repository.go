// Package resetcodes declares the repository contract for outstanding
// pattern reset codes.
package resetcodes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// Repository keeps at most one outstanding code per email.
type Repository interface {
	// Create stores codeHash for email with an expiry of now+validity,
	// replacing any earlier code.
	Create(ctx context.Context, email string, codeHash []byte, validity time.Duration) error

	// Find returns common.ErrorNotFound when email has no outstanding code.
	Find(ctx context.Context, email string) (*models.ResetCode, error)

	// Delete removes the code of email. Deleting a missing code is not an error.
	Delete(ctx context.Context, email string) error
}

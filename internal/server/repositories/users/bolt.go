package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// BucketName is the bolt bucket holding users keyed by email.
const BucketName = "users"

// BoltRepository works inside a single bolt transaction.
type BoltRepository struct {
	tx *bolt.Tx
}

func NewBoltRepository(tx *bolt.Tx) *BoltRepository {
	return &BoltRepository{tx: tx}
}

func (r *BoltRepository) bucket() (*bolt.Bucket, error) {
	b := r.tx.Bucket([]byte(BucketName))
	if b == nil {
		return nil, fmt.Errorf("bucket %q missing", BucketName)
	}
	return b, nil
}

func (r *BoltRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}
	if b.Get([]byte(user.Email)) != nil {
		return nil, common.ErrorAlreadyExists
	}

	id, err := b.NextSequence()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	u := *user
	u.ID = int64(id)
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	if err := r.put(b, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *BoltRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}

	raw := b.Get([]byte(email))
	if raw == nil {
		return nil, common.ErrorNotFound
	}

	u := &models.User{}
	if err := json.Unmarshal(raw, u); err != nil {
		return nil, fmt.Errorf("cant parse user: %w", err)
	}
	return u, nil
}

func (r *BoltRepository) UpdatePatternDigest(ctx context.Context, email string, digest string) error {
	u, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	b, err := r.bucket()
	if err != nil {
		return err
	}
	u.PatternDigest = digest
	return r.put(b, u)
}

func (r *BoltRepository) put(b *bolt.Bucket, u *models.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cant encode user: %w", err)
	}
	if err := b.Put([]byte(u.Email), raw); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

package resetcodes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/common"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// BucketName is the bolt bucket holding reset codes keyed by email.
const BucketName = "reset_codes"

type BoltRepository struct {
	tx  *bolt.Tx
	now func() time.Time
}

func NewBoltRepository(tx *bolt.Tx) *BoltRepository {
	return &BoltRepository{tx: tx, now: time.Now}
}

func (r *BoltRepository) bucket() (*bolt.Bucket, error) {
	b := r.tx.Bucket([]byte(BucketName))
	if b == nil {
		return nil, fmt.Errorf("bucket %q missing", BucketName)
	}
	return b, nil
}

func (r *BoltRepository) Create(ctx context.Context, email string, codeHash []byte, validity time.Duration) error {
	b, err := r.bucket()
	if err != nil {
		return err
	}

	now := r.now().UTC()
	raw, err := json.Marshal(&models.ResetCode{
		Email:     email,
		CodeHash:  codeHash,
		Expires:   now.Add(validity),
		CreatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("cant encode reset code: %w", err)
	}
	if err := b.Put([]byte(email), raw); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *BoltRepository) Find(ctx context.Context, email string) (*models.ResetCode, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}

	raw := b.Get([]byte(email))
	if raw == nil {
		return nil, common.ErrorNotFound
	}

	code := &models.ResetCode{}
	if err := json.Unmarshal(raw, code); err != nil {
		return nil, fmt.Errorf("cant parse reset code: %w", err)
	}
	return code, nil
}

func (r *BoltRepository) Delete(ctx context.Context, email string) error {
	b, err := r.bucket()
	if err != nil {
		return err
	}
	if err := b.Delete([]byte(email)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

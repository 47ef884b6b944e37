package scores

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/server/models"
)

// BucketName is the bolt bucket holding scores keyed by sequence number.
const BucketName = "scores"

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

func (r *BoltRepository) Create(ctx context.Context, score *models.Score) (*models.Score, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}

	id, err := b.NextSequence()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	s := *score
	s.ID = id
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	raw, err := json.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("cant encode score: %w", err)
	}

	// big-endian keys keep the cursor in insertion order
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)
	if err := b.Put(key, raw); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &s, nil
}

func (r *BoltRepository) ListByEmail(ctx context.Context, email string) ([]*models.Score, error) {
	b, err := r.bucket()
	if err != nil {
		return nil, err
	}

	var out []*models.Score
	err = b.ForEach(func(_, v []byte) error {
		s := &models.Score{}
		if err := json.Unmarshal(v, s); err != nil {
			return fmt.Errorf("cant parse score: %w", err)
		}
		if s.Email == email {
			out = append(out, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

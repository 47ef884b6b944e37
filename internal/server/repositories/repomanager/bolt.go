package repomanager

import (
	"context"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/dmitrijs2005/gatekeeper/internal/filex"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/resetcodes"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/scores"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/users"
)

type BoltRepositoryManager struct {
	db *bolt.DB
}

// NewBoltRepositoryManager opens (creating if needed) the bolt file at path.
func NewBoltRepositoryManager(path string) (*BoltRepositoryManager, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	return &BoltRepositoryManager{db: db}, nil
}

func (m *BoltRepositoryManager) Init(ctx context.Context) error {
	return m.db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{users.BucketName, resetcodes.BucketName, scores.BucketName} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

func (m *BoltRepositoryManager) DB() *bolt.DB {
	return m.db
}

func (m *BoltRepositoryManager) Users(tx *bolt.Tx) users.Repository {
	return users.NewBoltRepository(tx)
}

func (m *BoltRepositoryManager) ResetCodes(tx *bolt.Tx) resetcodes.Repository {
	return resetcodes.NewBoltRepository(tx)
}

func (m *BoltRepositoryManager) Scores(tx *bolt.Tx) scores.Repository {
	return scores.NewBoltRepository(tx)
}

func (m *BoltRepositoryManager) Close() error {
	return m.db.Close()
}
